package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Web-A1/hauls-service/internal/model"
	"github.com/Web-A1/hauls-service/internal/service"
)

type fakePortalRepo struct {
	portals map[string]model.Portal
}

func newFakePortalRepo() *fakePortalRepo {
	return &fakePortalRepo{portals: make(map[string]model.Portal)}
}

func (f *fakePortalRepo) Upsert(_ context.Context, portal *model.Portal) error {
	f.portals[portal.MemberID] = *portal
	return nil
}

func (f *fakePortalRepo) Find(_ context.Context, memberID string) (*model.Portal, error) {
	portal, ok := f.portals[memberID]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &portal, nil
}

type fakeIssuer struct {
	lastActor model.Actor
}

func (f *fakeIssuer) Issue(actor model.Actor) (string, time.Time, error) {
	f.lastActor = actor
	return "signed-token", time.Now().Add(12 * time.Hour), nil
}

func TestInstallService_Install(t *testing.T) {
	ctx := context.Background()

	t.Run("stores portal tokens", func(t *testing.T) {
		repo := newFakePortalRepo()
		svc := service.NewInstallService(repo, &fakeIssuer{})

		portal, err := svc.Install(ctx, service.InstallInput{
			Domain:       "example.bitrix24.ru",
			MemberID:     "member-1",
			AccessToken:  "access",
			RefreshToken: "refresh",
			ExpiresIn:    3600,
		})

		require.NoError(t, err)
		assert.Equal(t, "example.bitrix24.ru", portal.Domain)
		assert.Contains(t, repo.portals, "member-1")
	})

	t.Run("reinstall overwrites tokens", func(t *testing.T) {
		repo := newFakePortalRepo()
		svc := service.NewInstallService(repo, &fakeIssuer{})

		_, err := svc.Install(ctx, service.InstallInput{Domain: "a.bitrix24.ru", MemberID: "m", AccessToken: "old"})
		require.NoError(t, err)
		_, err = svc.Install(ctx, service.InstallInput{Domain: "a.bitrix24.ru", MemberID: "m", AccessToken: "new"})
		require.NoError(t, err)

		assert.Equal(t, "new", repo.portals["m"].AccessToken)
	})

	t.Run("rejects empty member_id", func(t *testing.T) {
		svc := service.NewInstallService(newFakePortalRepo(), &fakeIssuer{})
		_, err := svc.Install(ctx, service.InstallInput{Domain: "a.bitrix24.ru", AccessToken: "x"})
		assert.ErrorIs(t, err, service.ErrInvalidInput)
	})

	t.Run("rejects empty access token", func(t *testing.T) {
		svc := service.NewInstallService(newFakePortalRepo(), &fakeIssuer{})
		_, err := svc.Install(ctx, service.InstallInput{Domain: "a.bitrix24.ru", MemberID: "m"})
		assert.ErrorIs(t, err, service.ErrInvalidInput)
	})
}

func TestInstallService_CreateSession(t *testing.T) {
	ctx := context.Background()

	installed := func(t *testing.T, issuer *fakeIssuer) *service.InstallService {
		t.Helper()
		repo := newFakePortalRepo()
		svc := service.NewInstallService(repo, issuer)
		_, err := svc.Install(ctx, service.InstallInput{Domain: "a.bitrix24.ru", MemberID: "m", AccessToken: "x"})
		require.NoError(t, err)
		return svc
	}

	t.Run("admin flag wins over driver flag", func(t *testing.T) {
		issuer := &fakeIssuer{}
		svc := installed(t, issuer)

		session, err := svc.CreateSession(ctx, service.SessionInput{
			MemberID: "m",
			UserID:   int64Ptr(7),
			IsAdmin:  true,
			IsDriver: true,
		})

		require.NoError(t, err)
		assert.Equal(t, "signed-token", session.Token)
		assert.Equal(t, model.RoleAdmin, issuer.lastActor.Role)
	})

	t.Run("driver flag yields driver role", func(t *testing.T) {
		issuer := &fakeIssuer{}
		svc := installed(t, issuer)

		_, err := svc.CreateSession(ctx, service.SessionInput{MemberID: "m", UserID: int64Ptr(7), IsDriver: true})
		require.NoError(t, err)
		assert.Equal(t, model.RoleDriver, issuer.lastActor.Role)
	})

	t.Run("no flags default to manager", func(t *testing.T) {
		issuer := &fakeIssuer{}
		svc := installed(t, issuer)

		_, err := svc.CreateSession(ctx, service.SessionInput{MemberID: "m", UserID: int64Ptr(7)})
		require.NoError(t, err)
		assert.Equal(t, model.RoleManager, issuer.lastActor.Role)
	})

	t.Run("uninstalled portal", func(t *testing.T) {
		svc := service.NewInstallService(newFakePortalRepo(), &fakeIssuer{})
		_, err := svc.CreateSession(ctx, service.SessionInput{MemberID: "ghost"})
		assert.ErrorIs(t, err, service.ErrNotFound)
	})
}
