package mediaq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tdewolff/parse/v2/css"
)

func TestSplitDimension(t *testing.T) {
	tests := []struct {
		text   string
		number string
		unit   string
	}{
		{"400px", "400", "px"},
		{"1.5dppx", "1.5", "dppx"},
		{"2x", "2", "x"},
		{"40em", "40", "em"},
		{"1e3px", "1e3", "px"},
		{"2E+1PX", "2E+1", "px"},
		{"-10px", "-10", "px"},
		{".5in", ".5", "in"},
		{"3.rem", "3", ".rem"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			number, unit := splitDimension(tt.text)
			assert.Equal(t, tt.number, number)
			assert.Equal(t, tt.unit, unit)
		})
	}
}

func TestTokenize_Offsets(t *testing.T) {
	tokens, err := tokenize("screen and (min-width: 400px)")
	require.NoError(t, err)

	want := []token{
		{typ: css.IdentToken, text: "screen", offset: 0},
		{typ: css.IdentToken, text: "and", offset: 7},
		{typ: css.LeftParenthesisToken, text: "(", offset: 11},
		{typ: css.IdentToken, text: "min-width", offset: 12},
		{typ: css.ColonToken, text: ":", offset: 21},
		{typ: css.DimensionToken, text: "400px", offset: 23},
		{typ: css.RightParenthesisToken, text: ")", offset: 28},
	}
	assert.Equal(t, want, tokens)
}
