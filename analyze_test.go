package mediaq

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSatisfiable(t *testing.T) {
	tests := []struct {
		query string
		want  bool
	}{
		{"screen", true},
		{"all", true},
		{"tv", false},
		{"not all", false},
		{"not tv", true},
		{"not all and (color)", true},
		{"(min-width: 400px) and (max-width: 800px)", true},
		{"(min-width: 800px) and (max-width: 400px)", false},
		{"(min-width: 400px) and (max-width: 400px)", true},
		{"(width > 400px) and (max-width: 400px)", false},
		{"(400px < width < 400px)", false},
		{"(min-width: 5in) and (max-width: 400px)", false},
		{"(min-width: 40em) and (max-width: 100px)", true},
		{"(orientation: portrait) and (orientation: landscape)", false},
		{"(orientation: portrait) and (orientation: portrait)", true},
		{"(min-resolution: 2dppx) and (max-resolution: 96dpi)", false},
		{"(min-aspect-ratio: 16/9) and (max-aspect-ratio: 4/3)", false},
		{"(min-aspect-ratio: 16/9) and (max-aspect-ratio: 32/18)", true},
		{"(aspect-ratio > 16/9) and (max-aspect-ratio: 32/18)", false},
		{"(min-aspect-ratio: 9223372036854775807/9223372036854775806) and (max-aspect-ratio: 9223372036854775806/9223372036854775805)", true},
		{"(min-aspect-ratio: 9223372036854775806/9223372036854775805) and (max-aspect-ratio: 9223372036854775807/9223372036854775806)", false},
		{"(min-aspect-ratio: 3074457345618258603/1) and (max-aspect-ratio: 16/9)", false},
		{"(min-color: 8) and (max-color: 4)", false},
		{"(min-width: 400px) and (max-height: 300px)", true},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			list := MustParse(tt.query)
			assert.Len(t, list, 1)
			assert.Equal(t, tt.want, list[0].Satisfiable())
		})
	}
}

func TestKnownType(t *testing.T) {
	assert.True(t, MediaType("").KnownType())
	assert.True(t, MediaScreen.KnownType())
	assert.True(t, MediaPrint.KnownType())
	assert.False(t, MediaType("speech").KnownType())
}
