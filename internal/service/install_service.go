package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/Web-A1/hauls-service/internal/model"
)

type PortalRepository interface {
	Upsert(ctx context.Context, portal *model.Portal) error
	Find(ctx context.Context, memberID string) (*model.Portal, error)
}

type TokenIssuer interface {
	Issue(actor model.Actor) (token string, expiresAt time.Time, err error)
}

// InstallService сохраняет OAuth-токены портала при установке приложения и
// выдаёт сессионные токены для iframe-плейсмента. Протокол OAuth сверх
// хранения токенов не реализуется.
type InstallService struct {
	portals PortalRepository
	issuer  TokenIssuer
	now     func() time.Time
}

func NewInstallService(portals PortalRepository, issuer TokenIssuer) *InstallService {
	return &InstallService{
		portals: portals,
		issuer:  issuer,
		now:     time.Now,
	}
}

type InstallInput struct {
	Domain       string
	MemberID     string
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
}

type SessionInput struct {
	MemberID string
	UserID   *int64
	UserName *string
	IsAdmin  bool
	IsDriver bool
}

type Session struct {
	Token     string
	ExpiresAt time.Time
	Actor     model.Actor
}

func (s *InstallService) Install(ctx context.Context, input InstallInput) (*model.Portal, error) {
	if strings.TrimSpace(input.MemberID) == "" {
		return nil, fmt.Errorf("%w: member_id is required", ErrInvalidInput)
	}
	if strings.TrimSpace(input.Domain) == "" {
		return nil, fmt.Errorf("%w: domain is required", ErrInvalidInput)
	}
	if strings.TrimSpace(input.AccessToken) == "" {
		return nil, fmt.Errorf("%w: access token is required", ErrInvalidInput)
	}

	now := s.now()
	portal := &model.Portal{
		MemberID:     input.MemberID,
		Domain:       input.Domain,
		AccessToken:  input.AccessToken,
		RefreshToken: input.RefreshToken,
		ExpiresAt:    now.Add(time.Duration(input.ExpiresIn) * time.Second),
		InstalledAt:  now,
		UpdatedAt:    now,
	}
	if err := s.portals.Upsert(ctx, portal); err != nil {
		return nil, err
	}
	return portal, nil
}

// CreateSession превращает данные плейсмента в сессионный токен. Роль без
// явных флагов по умолчанию — менеджер.
func (s *InstallService) CreateSession(ctx context.Context, input SessionInput) (*Session, error) {
	if strings.TrimSpace(input.MemberID) == "" {
		return nil, fmt.Errorf("%w: member_id is required", ErrInvalidInput)
	}
	if _, err := s.portals.Find(ctx, input.MemberID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	role := model.RoleManager
	switch {
	case input.IsAdmin:
		role = model.RoleAdmin
	case input.IsDriver:
		role = model.RoleDriver
	}

	actor := model.Actor{
		ID:   input.UserID,
		Name: input.UserName,
		Role: role,
	}
	token, expiresAt, err := s.issuer.Issue(actor)
	if err != nil {
		return nil, err
	}
	return &Session{Token: token, ExpiresAt: expiresAt, Actor: actor}, nil
}
