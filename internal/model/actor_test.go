package model_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Web-A1/hauls-service/internal/model"
)

func int64Ptr(v int64) *int64 {
	return &v
}

func TestNormalizeRole(t *testing.T) {
	assert.Equal(t, model.RoleAdmin, model.NormalizeRole("admin", model.RoleManager))
	assert.Equal(t, model.RoleAdmin, model.NormalizeRole(" Admin ", model.RoleManager))
	assert.Equal(t, model.RoleDriver, model.NormalizeRole("DRIVER", model.RoleManager))
	assert.Equal(t, model.RoleManager, model.NormalizeRole("manager", model.RoleDriver))
	assert.Equal(t, model.RoleManager, model.NormalizeRole("dispatcher", model.RoleManager))
	assert.Equal(t, model.RoleManager, model.NormalizeRole("", model.RoleManager))
}

func TestActor_Roles(t *testing.T) {
	assert.True(t, model.Actor{Role: "admin"}.IsAdmin())
	assert.True(t, model.Actor{Role: "Admin"}.IsAdmin())
	assert.False(t, model.Actor{Role: "manager"}.IsAdmin())
	assert.True(t, model.Actor{Role: "driver"}.IsDriver())
	assert.False(t, model.Actor{Role: "manager"}.IsDriver())
}

func TestActor_Owns(t *testing.T) {
	haul := model.NewHaul("h-1", 10, time.Now())
	haul.AssignResponsible(int64Ptr(55))

	t.Run("matching id owns", func(t *testing.T) {
		actor := model.Actor{ID: int64Ptr(55), Role: model.RoleDriver}
		assert.True(t, actor.Owns(haul))
	})

	t.Run("different id does not own", func(t *testing.T) {
		actor := model.Actor{ID: int64Ptr(10), Role: model.RoleManager}
		assert.False(t, actor.Owns(haul))
	})

	t.Run("anonymous actor does not own", func(t *testing.T) {
		actor := model.Actor{Role: model.RoleDriver}
		assert.False(t, actor.Owns(haul))
	})

	t.Run("unassigned haul is not owned", func(t *testing.T) {
		unassigned := model.NewHaul("h-2", 10, time.Now())
		actor := model.Actor{ID: int64Ptr(55), Role: model.RoleDriver}
		assert.False(t, actor.Owns(unassigned))
	})
}
