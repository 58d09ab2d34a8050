package mediaq

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name  string
		query string
		env   Environment
		want  bool
	}{
		{"min-width below", "(min-width: 400px)", Environment{Width: 399}, false},
		{"min-width at", "(min-width: 400px)", Environment{Width: 400}, true},
		{"max-width above", "(max-width: 600px)", Environment{Width: 601}, false},
		{"max-width at", "(max-width: 600px)", Environment{Width: 600}, true},
		{"exact width", "(width: 1024px)", Environment{Width: 1024}, true},
		{"exact width off by one", "(width: 1024px)", Environment{Width: 1023}, false},
		{"device width", "(min-device-width: 320px)", Environment{Width: 100, DeviceWidth: 375}, true},
		{"device height unknown", "(min-device-height: 320px)", Environment{Width: 400, Height: 800}, false},
		{"width in inches", "(min-width: 5in)", Environment{Width: 480}, true},
		{"width in em", "(min-width: 40em)", Environment{Width: 640}, true},
		{"width in em with larger font", "(min-width: 40em)", Environment{Width: 640, FontSize: 20}, false},
		{"unknown width", "(min-width: 400px)", Environment{}, false},
		{"width existence", "(width)", Environment{Width: 1}, true},
		{"width existence unknown", "(width)", Environment{}, false},

		{"derived landscape", "(orientation: landscape)", Environment{Width: 800, Height: 600}, true},
		{"derived portrait", "(orientation: portrait)", Environment{Width: 600, Height: 800}, true},
		{"square is landscape", "(orientation: landscape)", Environment{Width: 500, Height: 500}, true},
		{"supplied orientation wins", "(orientation: portrait)", Environment{Width: 800, Height: 600, Orientation: OrientationPortrait}, true},
		{"orientation needs both sides", "(orientation: landscape)", Environment{Width: 800}, false},

		{"derived aspect ratio", "(aspect-ratio: 16/9)", Environment{Width: 1920, Height: 1080}, true},
		{"min aspect ratio", "(min-aspect-ratio: 4/3)", Environment{Width: 1920, Height: 1080}, true},
		{"max aspect ratio", "(max-aspect-ratio: 4/3)", Environment{Width: 1920, Height: 1080}, false},
		{"aspect ratio not reduced", "(aspect-ratio: 32/18)", Environment{Width: 1920, Height: 1080}, true},
		{"aspect ratio override", "(aspect-ratio: 21/9)", Environment{Width: 1920, Height: 1080, AspectRatio: Ratio{Num: 21, Den: 9}}, true},
		{"device aspect ratio", "(device-aspect-ratio: 9/16)", Environment{DeviceWidth: 1080, DeviceHeight: 1920}, true},
		{"max aspect ratio huge term", "(max-aspect-ratio: 3074457345618258603/1)", Environment{Width: 1600, Height: 900}, true},
		{"min aspect ratio huge term", "(min-aspect-ratio: 3074457345618258603/1)", Environment{Width: 1600, Height: 900}, false},
		{"min aspect ratio huge denominator", "(min-aspect-ratio: 1/9223372036854775807)", Environment{Width: 1600, Height: 900}, true},
		{"max aspect ratio huge denominator", "(max-aspect-ratio: 1/9223372036854775807)", Environment{Width: 1600, Height: 900}, false},
		{"device aspect ratio unknown", "(device-aspect-ratio: 9/16)", Environment{Width: 1080, Height: 1920}, false},

		{"resolution dpi equals dppx", "(resolution: 192dpi)", Environment{Resolution: 2}, true},
		{"min resolution", "(min-resolution: 1.5dppx)", Environment{Resolution: 2}, true},
		{"max resolution", "(max-resolution: 1.5x)", Environment{Resolution: 2}, false},
		{"resolution dpcm", "(min-resolution: 75dpcm)", Environment{Resolution: 2}, true},
		{"resolution unknown", "(min-resolution: 1dppx)", Environment{}, false},

		{"color existence", "(color)", Environment{Color: 8}, true},
		{"monochrome", "(color)", Environment{}, false},
		{"min color", "(min-color: 8)", Environment{Color: 8}, true},
		{"max color on monochrome", "(max-color: 1)", Environment{}, true},

		{"range strict", "(width > 600px)", Environment{Width: 600}, false},
		{"range value first", "(600px < width)", Environment{Width: 601}, true},
		{"double range lower edge", "(400px <= width < 800px)", Environment{Width: 400}, true},
		{"double range upper edge", "(400px <= width < 800px)", Environment{Width: 800}, false},
		{"double range below", "(400px <= width < 800px)", Environment{Width: 399}, false},

		{"screen env default", "screen", Environment{}, true},
		{"print vs screen", "print", Environment{}, false},
		{"all matches print", "all", Environment{MediaType: MediaPrint}, true},
		{"deprecated type against screen", "tv", Environment{}, false},
		{"only has no effect", "only screen and (min-width: 100px)", Environment{Width: 100}, true},
		{"not all", "not all", Environment{}, false},
		{"not inverts condition", "not (min-width: 400px)", Environment{Width: 300}, true},

		{"comma or print", "screen and (min-width: 600px), print", Environment{MediaType: MediaPrint, Width: 10}, true},
		{"comma or screen wide", "screen and (min-width: 600px), print", Environment{Width: 600}, true},
		{"comma or screen narrow", "screen and (min-width: 600px), print", Environment{Width: 599}, false},

		{"not screen on print", "not screen and (color)", Environment{MediaType: MediaPrint}, true},
		{"not screen on color screen", "not screen and (color)", Environment{MediaType: MediaScreen, Color: 8}, false},
		{"not screen on monochrome screen", "not screen and (color)", Environment{MediaType: MediaScreen}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, err := Parse(tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, Evaluate(list, tt.env))
		})
	}
}

func TestEvaluate_EmptyListMatchesNothing(t *testing.T) {
	assert.False(t, Evaluate(MediaQueryList{}, Environment{Width: 800, Height: 600}))
	assert.False(t, Evaluate(nil, Environment{}))
}

func TestEvaluate_MinWidthMonotonic(t *testing.T) {
	for _, n := range []int{1, 320, 400, 768, 1024, 1440} {
		list := MustParse("(min-width: " + Integer(n).String() + "px)")
		for w := n - 3; w <= n+3; w++ {
			if w <= 0 {
				continue
			}
			assert.Equal(t, w >= n, list.Matches(Environment{Width: w}), "n=%d width=%d", n, w)
		}
	}
}

func TestEvaluate_Idempotent(t *testing.T) {
	list := MustParse("screen and (min-width: 600px) and (orientation: landscape), print and (color)")
	env := Environment{Width: 800, Height: 600, Color: 8}

	first := list.Matches(env)
	for range 5 {
		assert.Equal(t, first, list.Matches(env))
	}
	assert.True(t, first)
}

// panicCondition makes the evaluator panic if it is ever walked.
type panicCondition struct{}

func (panicCondition) String() string { return "(panic)" }
func (panicCondition) condition()     {}

func TestEvaluate_TypeMismatchSkipsCondition(t *testing.T) {
	q := MediaQuery{Type: MediaPrint, Condition: &And{Left: panicCondition{}, Right: panicCondition{}}}
	assert.NotPanics(t, func() {
		assert.False(t, q.Matches(Environment{}))
	})

	// And short-circuits once the left side is false.
	q = MediaQuery{Type: MediaAll, Condition: &And{
		Left:  &FeatureTest{Feature: FeatureWidth, Comparator: CompareGreaterEqual, Value: Length{Value: 100, Unit: "px"}},
		Right: panicCondition{},
	}}
	assert.NotPanics(t, func() {
		assert.False(t, q.Matches(Environment{Width: 50}))
	})
}

func TestEvaluate_ConcurrentReaders(t *testing.T) {
	list := MustParse("(min-width: 500px)")
	done := make(chan bool)
	for i := range 8 {
		go func(w int) {
			done <- list.Matches(Environment{Width: w})
		}(495 + i*2)
	}
	matches := 0
	for range 8 {
		if <-done {
			matches++
		}
	}
	// widths 495..509 step 2: 501, 503, 505, 507, 509 match
	assert.Equal(t, 5, matches)
}
