package model_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Web-A1/hauls-service/internal/model"
)

func allStatuses() []model.HaulStatus {
	return []model.HaulStatus{
		model.StatusPreparation,
		model.StatusInProgress,
		model.StatusLoaded,
		model.StatusUnloaded,
		model.StatusVerified,
	}
}

func TestHaulStatus_Label(t *testing.T) {
	t.Run("known statuses have labels", func(t *testing.T) {
		assert.Equal(t, "Подготовка", model.StatusPreparation.Label())
		assert.Equal(t, "В работе", model.StatusInProgress.Label())
		assert.Equal(t, "Загружен", model.StatusLoaded.Label())
		assert.Equal(t, "Разгружен", model.StatusUnloaded.Label())
		assert.Equal(t, "Проверен", model.StatusVerified.Label())
	})

	t.Run("unknown status", func(t *testing.T) {
		assert.Equal(t, "Неизвестно", model.HaulStatus(-1).Label())
		assert.Equal(t, "Неизвестно", model.HaulStatus(99).Label())
	})
}

func TestSanitizeStatus(t *testing.T) {
	assert.Equal(t, model.StatusPreparation, model.SanitizeStatus(-5))
	assert.Equal(t, model.StatusPreparation, model.SanitizeStatus(0))
	assert.Equal(t, model.StatusLoaded, model.SanitizeStatus(2))
	assert.Equal(t, model.StatusVerified, model.SanitizeStatus(4))
	assert.Equal(t, model.StatusVerified, model.SanitizeStatus(99))
}

func TestHaulStatus_IsDriverVisible(t *testing.T) {
	assert.False(t, model.StatusPreparation.IsDriverVisible())
	assert.True(t, model.StatusInProgress.IsDriverVisible())
	assert.True(t, model.StatusLoaded.IsDriverVisible())
	assert.True(t, model.StatusUnloaded.IsDriverVisible())
	assert.False(t, model.StatusVerified.IsDriverVisible())
}

func TestHaulStatus_CanTransitionTo(t *testing.T) {
	t.Run("same status is a no-op for every role", func(t *testing.T) {
		for _, status := range allStatuses() {
			for _, role := range []string{model.RoleAdmin, model.RoleDriver, model.RoleManager, "dispatcher", ""} {
				assert.True(t, status.CanTransitionTo(status, role),
					"status %d role %q", int(status), role)
			}
		}
	})

	t.Run("office roles are unrestricted", func(t *testing.T) {
		for _, role := range []string{model.RoleAdmin, model.RoleManager, "dispatcher"} {
			for _, current := range allStatuses() {
				for _, next := range allStatuses() {
					assert.True(t, current.CanTransitionTo(next, role),
						"%d -> %d role %q", int(current), int(next), role)
				}
			}
		}
	})

	t.Run("driver forward and revert moves", func(t *testing.T) {
		assert.True(t, model.StatusInProgress.CanTransitionTo(model.StatusLoaded, model.RoleDriver))
		assert.True(t, model.StatusLoaded.CanTransitionTo(model.StatusInProgress, model.RoleDriver))
		assert.True(t, model.StatusLoaded.CanTransitionTo(model.StatusUnloaded, model.RoleDriver))
	})

	t.Run("driver cannot skip loading", func(t *testing.T) {
		assert.False(t, model.StatusInProgress.CanTransitionTo(model.StatusUnloaded, model.RoleDriver))
	})

	t.Run("unloaded is terminal for driver", func(t *testing.T) {
		for _, next := range allStatuses() {
			if next == model.StatusUnloaded {
				continue
			}
			assert.False(t, model.StatusUnloaded.CanTransitionTo(next, model.RoleDriver),
				"unloaded -> %d", int(next))
		}
	})

	t.Run("driver cannot start or finalize hauls", func(t *testing.T) {
		assert.False(t, model.StatusPreparation.CanTransitionTo(model.StatusInProgress, model.RoleDriver))
		for _, current := range allStatuses() {
			if current == model.StatusVerified {
				continue
			}
			assert.False(t, current.CanTransitionTo(model.StatusVerified, model.RoleDriver),
				"%d -> verified", int(current))
		}
	})

	t.Run("driver targets outside the active window are rejected", func(t *testing.T) {
		assert.False(t, model.StatusInProgress.CanTransitionTo(model.StatusPreparation, model.RoleDriver))
		assert.False(t, model.StatusLoaded.CanTransitionTo(model.StatusVerified, model.RoleDriver))
	})

	t.Run("role compare is case-insensitive", func(t *testing.T) {
		assert.False(t, model.StatusInProgress.CanTransitionTo(model.StatusUnloaded, "Driver"))
		assert.True(t, model.StatusInProgress.CanTransitionTo(model.StatusLoaded, "DRIVER"))
	})
}

func TestHaulStatus_DriverMatrixExhaustive(t *testing.T) {
	allowed := map[string]bool{
		"1->2": true, // в работе -> загружен
		"2->1": true, // откат
		"2->3": true, // загружен -> разгружен
	}

	for _, current := range allStatuses() {
		for _, next := range allStatuses() {
			key := fmt.Sprintf("%d->%d", int(current), int(next))
			want := current == next || allowed[key]
			assert.Equal(t, want, current.CanTransitionTo(next, model.RoleDriver), key)
		}
	}
}
