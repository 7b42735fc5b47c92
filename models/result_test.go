package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResultBeforeCreateAssignsID(t *testing.T) {
	r := &Result{UserID: "u1", TestID: "t1"}
	require.NoError(t, r.BeforeCreate(nil))
	assert.NotEmpty(t, r.ID)

	fixed := &Result{ID: "existing", UserID: "u1", TestID: "t1"}
	require.NoError(t, fixed.BeforeCreate(nil))
	assert.Equal(t, "existing", fixed.ID)
}

func TestResultPercentage(t *testing.T) {
	tests := []struct {
		name   string
		result Result
		want   float64
	}{
		{"full marks", Result{Score: 50, TotalPoints: 50}, 100},
		{"partial", Result{Score: 30, TotalPoints: 40}, 75},
		{"zero score", Result{Score: 0, TotalPoints: 20}, 0},
		{"no points defined", Result{Score: 10, TotalPoints: 0}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.result.Percentage())
		})
	}
}
