package mediaq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestString(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"screen", "screen"},
		{"all", "all"},
		{"SCREEN  AND (MIN-WIDTH:400PX)", "screen and (min-width: 400px)"},
		{"(min-width: 400px) and (max-width: 800px)", "(min-width: 400px) and (max-width: 800px)"},
		{"(width >= 600px)", "(min-width: 600px)"},
		{"(600px < width)", "(width > 600px)"},
		{"(400px <= width < 800px)", "(min-width: 400px) and (width < 800px)"},
		{"not (color)", "not all and (color)"},
		{"not screen and (color)", "not screen and (color)"},
		{"only screen, print", "only screen, print"},
		{"(min-resolution: 192dpi)", "(min-resolution: 2dppx)"},
		{"(aspect-ratio: 16 / 9)", "(aspect-ratio: 16/9)"},
		{"(min-width: 0)", "(min-width: 0px)"},
		{"(max-width: 1.50em)", "(max-width: 1.5em)"},
		{"print and (orientation: LANDSCAPE)", "print and (orientation: landscape)"},
		{"(min-color: 4)", "(min-color: 4)"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			list, err := Parse(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, list.String())
		})
	}
}

func TestString_RoundTrip(t *testing.T) {
	inputs := []string{
		"screen and (min-width: 600px), print",
		"not screen and (color)",
		"(400px <= width < 800px)",
		"only all and (min-device-aspect-ratio: 4/3) and (max-resolution: 300dpi)",
	}
	env := Environment{Width: 700, Height: 500, Resolution: 2, DeviceWidth: 1400, DeviceHeight: 1000, Color: 8}

	for _, input := range inputs {
		first := MustParse(input)
		second, err := Parse(first.String())
		require.NoError(t, err, first.String())
		assert.Equal(t, first.String(), second.String())
		assert.Equal(t, first.Matches(env), second.Matches(env), input)
	}
}
