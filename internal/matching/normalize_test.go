package matching

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercases", "Barbell Bench Press", "barbell bench press"},
		{"collapses whitespace", "  Lat   Pulldown ", "lat pulldown"},
		{"tabs and newlines", "Leg\tPress\n", "leg press"},
		{"already normalized", "goblet squat", "goblet squat"},
		{"keeps hyphens", "T-Bar Row", "t-bar row"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeName(tt.in))
		})
	}
}

func TestExpandAbbreviations(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"dumbbell shorthand", "db bench press", "dumbbell bench press"},
		{"barbell shorthand", "bb row", "barbell row"},
		{"overhead press", "seated ohp", "seated overhead press"},
		{"romanian deadlift", "rdl", "romanian deadlift"},
		{"single leg", "sl glute bridge", "single leg glute bridge"},
		{"hyphens spaced out", "chin-up", "chin up"},
		{"hyphen plus shorthand", "kb goblet-squat", "kettlebell goblet squat"},
		{"embedded shorthand untouched", "dbell press", "dbell press"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExpandAbbreviations(tt.in))
		})
	}
}

func TestExpandAbbreviations_NoChangeReturnsInput(t *testing.T) {
	in := "barbell bench press"
	assert.Equal(t, in, ExpandAbbreviations(in))
}
