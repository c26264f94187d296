package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/Web-A1/hauls-service/internal/http/middleware"
	"github.com/Web-A1/hauls-service/internal/model"
)

type stubParser struct {
	actor model.Actor
	err   error
}

func (s stubParser) Parse(string) (model.Actor, error) {
	return s.actor, s.err
}

func newTestRouter(parser middleware.TokenParser) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/protected", middleware.Auth(parser), func(c *gin.Context) {
		actor, ok := middleware.MustActor(c)
		if !ok {
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, gin.H{"role": actor.Role})
	})
	return router
}

func TestAuthRejectsMissingHeader(t *testing.T) {
	router := newTestRouter(stubParser{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRejectsMalformedHeader(t *testing.T) {
	router := newTestRouter(stubParser{})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Token abc")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthRejectsInvalidToken(t *testing.T) {
	router := newTestRouter(stubParser{err: errors.New("bad signature")})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer broken")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthPassesActorThrough(t *testing.T) {
	id := int64(7)
	router := newTestRouter(stubParser{actor: model.Actor{ID: &id, Role: model.RoleDriver}})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer good")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"role":"driver"}`, w.Body.String())
}
