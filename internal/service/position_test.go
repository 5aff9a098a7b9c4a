package service_test

import (
	"testing"

	"taskboard/internal/apperror"
	"taskboard/internal/service"

	"github.com/stretchr/testify/assert"
)

func TestClampPosition(t *testing.T) {
	tests := []struct {
		name      string
		requested *int
		upper     int
		want      int
	}{
		{"absent", nil, 4, 4},
		{"in range", intPtr(2), 4, 2},
		{"upper bound", intPtr(4), 4, 4},
		{"above", intPtr(9), 4, 4},
		{"zero", intPtr(0), 4, 1},
		{"negative", intPtr(-3), 4, 1},
		{"single slot", intPtr(3), 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, service.ClampPosition(tt.requested, tt.upper))
		})
	}
}

func TestAssertOwnership(t *testing.T) {
	assert.NoError(t, service.AssertOwnership("u1", "u1"))

	err := service.AssertOwnership("u1", "u2")
	assert.ErrorIs(t, err, apperror.ErrForbidden)
	assert.Equal(t, "Forbidden", err.Error())
}
