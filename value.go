package mediaq

import (
	"cmp"
	"fmt"
	"math/bits"
	"strconv"
	"strings"

	"github.com/tdewolff/parse/v2/css"
)

// Value is the right-hand side of a feature test: Length, Resolution, Ratio,
// Orientation or Integer.
type Value interface {
	String() string
	value()
}

// Length is a CSS length. Unit is lowercase.
type Length struct {
	Value float64
	Unit  string
}

// Resolution is a display density in dots per CSS pixel.
// dpi and dpcm are converted when parsed.
type Resolution struct {
	DPPX float64
}

// Ratio is a width/height ratio with positive terms.
type Ratio struct {
	Num int64
	Den int64
}

// Orientation is the portrait/landscape keyword.
type Orientation string

const (
	OrientationPortrait  Orientation = "portrait"
	OrientationLandscape Orientation = "landscape"
)

// Integer is a bare integer value, as used by color.
type Integer int64

func (Length) value()      {}
func (Resolution) value()  {}
func (Ratio) value()       {}
func (Orientation) value() {}
func (Integer) value()     {}

// pxPerUnit converts absolute CSS units to px.
var pxPerUnit = map[string]float64{
	"px": 1,
	"cm": 96 / 2.54,
	"mm": 96 / 25.4,
	"q":  96 / 101.6,
	"in": 96,
	"pt": 96.0 / 72,
	"pc": 16,
}

// fontRelativeUnits resolve against the environment's font size.
var fontRelativeUnits = map[string]bool{
	"em":  true,
	"rem": true,
}

// toDPPX converts a resolution in the given unit to dppx.
func toDPPX(n float64, unit string) (float64, bool) {
	switch unit {
	case "dppx", "x":
		return n, true
	case "dpi":
		return n / 96, true
	case "dpcm":
		return n * 2.54 / 96, true
	}
	return 0, false
}

// Pixels returns the length in CSS px, resolving em and rem against fontSize.
func (l Length) Pixels(fontSize float64) float64 {
	if fontRelativeUnits[l.Unit] {
		return l.Value * fontSize
	}
	return l.Value * pxPerUnit[l.Unit]
}

// IsAbsolute reports whether the length does not depend on the font size.
func (l Length) IsAbsolute() bool {
	return !fontRelativeUnits[l.Unit]
}

// IsZero reports whether either term of the ratio is zero.
func (r Ratio) IsZero() bool {
	return r.Num == 0 || r.Den == 0
}

// Reduce returns the ratio in lowest terms.
func (r Ratio) Reduce() Ratio {
	if r.IsZero() {
		return r
	}
	g := gcd(r.Num, r.Den)
	return Ratio{Num: r.Num / g, Den: r.Den / g}
}

// Compare compares two ratios by cross-multiplication and returns -1, 0 or +1.
// Products are formed in 128 bits so that any pair of positive int64 terms
// compares exactly.
func (r Ratio) Compare(other Ratio) int {
	lhsHi, lhsLo := bits.Mul64(uint64(r.Num), uint64(other.Den))
	rhsHi, rhsLo := bits.Mul64(uint64(other.Num), uint64(r.Den))
	if lhsHi != rhsHi {
		return cmp.Compare(lhsHi, rhsHi)
	}
	return cmp.Compare(lhsLo, rhsLo)
}

func gcd(a, b int64) int64 {
	if a < 0 {
		a = -a
	}
	if b < 0 {
		b = -b
	}
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

// ParseRatio parses a ratio such as "16/9" or "2".
func ParseRatio(text string) (Ratio, error) {
	tokens, err := tokenize(text)
	if err != nil {
		return Ratio{}, err
	}
	if len(tokens) == 0 {
		return Ratio{}, errorAtEnd(MalformedValue, text, "expected "+kindRatio.String())
	}
	v, err := parseValue(text, kindRatio, tokens)
	if err != nil {
		return Ratio{}, err
	}
	return v.(Ratio), nil
}

// parseValue parses the tokens of a feature value for the given kind.
// tokens is never empty.
func parseValue(src string, kind valueKind, tokens []token) (Value, error) {
	first, last := tokens[0], tokens[len(tokens)-1]
	malformed := func() error {
		return errorSpan(MalformedValue, src, first.offset, last.end(), "expected "+kind.String())
	}

	if kind == kindRatio {
		return parseRatioTokens(tokens, malformed)
	}
	if len(tokens) != 1 {
		return nil, malformed()
	}

	tok := first
	switch kind {
	case kindLength:
		if tok.is(css.NumberToken) {
			// Only a bare zero may omit the unit.
			n, err := strconv.ParseFloat(tok.text, 64)
			if err != nil || n != 0 {
				return nil, malformed()
			}
			return Length{Value: 0, Unit: "px"}, nil
		}
		if !tok.is(css.DimensionToken) {
			return nil, malformed()
		}
		number, unit := splitDimension(tok.text)
		n, err := strconv.ParseFloat(number, 64)
		if err != nil || n < 0 {
			return nil, malformed()
		}
		if _, ok := pxPerUnit[unit]; !ok && !fontRelativeUnits[unit] {
			return nil, malformed()
		}
		return Length{Value: n, Unit: unit}, nil

	case kindResolution:
		if !tok.is(css.DimensionToken) {
			return nil, malformed()
		}
		number, unit := splitDimension(tok.text)
		n, err := strconv.ParseFloat(number, 64)
		if err != nil || n < 0 {
			return nil, malformed()
		}
		dppx, ok := toDPPX(n, unit)
		if !ok {
			return nil, malformed()
		}
		return Resolution{DPPX: dppx}, nil

	case kindOrientation:
		switch {
		case tok.isIdent(string(OrientationPortrait)):
			return OrientationPortrait, nil
		case tok.isIdent(string(OrientationLandscape)):
			return OrientationLandscape, nil
		}
		return nil, malformed()

	default:
		n, ok := parseInteger(tok)
		if !ok || n < 0 {
			return nil, malformed()
		}
		return Integer(n), nil
	}
}

// parseRatioTokens accepts "n" or "n / d" with positive integer terms.
func parseRatioTokens(tokens []token, malformed func() error) (Value, error) {
	num, ok := parseInteger(tokens[0])
	if !ok || num <= 0 {
		return nil, malformed()
	}
	if len(tokens) == 1 {
		return Ratio{Num: num, Den: 1}, nil
	}
	if len(tokens) != 3 || !tokens[1].isDelim('/') {
		return nil, malformed()
	}
	den, ok := parseInteger(tokens[2])
	if !ok || den <= 0 {
		return nil, malformed()
	}
	return Ratio{Num: num, Den: den}, nil
}

// parseInteger accepts a number token without fraction or exponent.
func parseInteger(tok token) (int64, bool) {
	if !tok.is(css.NumberToken) || strings.ContainsAny(tok.text, ".eE") {
		return 0, false
	}
	n, err := strconv.ParseInt(strings.TrimPrefix(tok.text, "+"), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// formatNumber prints a float without trailing zeros.
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func (l Length) String() string {
	return formatNumber(l.Value) + l.Unit
}

func (r Resolution) String() string {
	return formatNumber(r.DPPX) + "dppx"
}

func (r Ratio) String() string {
	return fmt.Sprintf("%d/%d", r.Num, r.Den)
}

func (o Orientation) String() string {
	return string(o)
}

func (i Integer) String() string {
	return strconv.FormatInt(int64(i), 10)
}
