//nolint:revive // types is a standard Go package name pattern
package types

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMatchRequest_Validation(t *testing.T) {
	validate := validator.New()

	tests := []struct {
		name    string
		request MatchRequest
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid request",
			request: MatchRequest{
				Name:       "Bench Press",
				Muscle:     "Chest",
				Equipment:  "Barbell",
				Difficulty: "intermediate",
				PoolSize:   15,
			},
			wantErr: false,
		},
		{
			name: "valid request without difficulty",
			request: MatchRequest{
				Name:      "Bench Press",
				Muscle:    "Chest",
				Equipment: "Barbell",
			},
			wantErr: false,
		},
		{
			name: "missing name",
			request: MatchRequest{
				Muscle:    "Chest",
				Equipment: "Barbell",
			},
			wantErr: true,
			errMsg:  "required",
		},
		{
			name: "missing muscle",
			request: MatchRequest{
				Name:      "Bench Press",
				Equipment: "Barbell",
			},
			wantErr: true,
			errMsg:  "required",
		},
		{
			name: "missing equipment",
			request: MatchRequest{
				Name:   "Bench Press",
				Muscle: "Chest",
			},
			wantErr: true,
			errMsg:  "required",
		},
		{
			name: "unknown difficulty",
			request: MatchRequest{
				Name:       "Bench Press",
				Muscle:     "Chest",
				Equipment:  "Barbell",
				Difficulty: "expert",
			},
			wantErr: true,
			errMsg:  "oneof",
		},
		{
			name: "negative pool size",
			request: MatchRequest{
				Name:      "Bench Press",
				Muscle:    "Chest",
				Equipment: "Barbell",
				PoolSize:  -1,
			},
			wantErr: true,
			errMsg:  "min",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validate.Struct(tt.request)
			if tt.wantErr {
				require.Error(t, err)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestMatchRequest_ValidateMethod(t *testing.T) {
	req := MatchRequest{
		Name:      "Bench Press",
		Muscle:    "Chest",
		Equipment: "Barbell",
	}
	err := req.Validate()
	require.NoError(t, err)

	req.Difficulty = "impossible"
	err = req.Validate()
	require.Error(t, err)
}

func TestMatchResult_Resolved(t *testing.T) {
	assert.False(t, MatchResult{Status: StatusNoMatch}.Resolved())
	assert.False(t, MatchResult{Status: StatusMatched}.Resolved(), "no exercise attached")

	ex := &CatalogExercise{ID: "br_001", Name: "Bench Press"}
	assert.True(t, MatchResult{Exercise: ex, Score: 0.92, Status: StatusMatched}.Resolved())
	assert.True(t, MatchResult{Exercise: ex, Score: 0.5, Status: StatusPendingReview, Nominal: true}.Resolved())
	assert.False(t, MatchResult{Exercise: ex, Status: StatusNoMatch}.Resolved())
}
