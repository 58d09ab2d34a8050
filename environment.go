package mediaq

import (
	"fmt"
	"strings"
)

// DefaultFontSize is the px size of 1em when Environment.FontSize is unset.
const DefaultFontSize = 16

// Environment is the context a media query list is evaluated against.
// Zero values mean "unknown" unless noted otherwise; a feature test that needs
// an unknown value does not match.
type Environment struct {
	MediaType MediaType // Reported media type; empty means screen

	Width        int // Viewport width in CSS px
	Height       int // Viewport height in CSS px
	DeviceWidth  int // Output device width in CSS px
	DeviceHeight int // Output device height in CSS px

	Resolution float64 // Device pixel ratio in dppx

	Orientation       Orientation // Derived from Width/Height when empty
	AspectRatio       Ratio       // Derived from Width/Height when zero
	DeviceAspectRatio Ratio       // Derived from DeviceWidth/DeviceHeight when zero

	Color int // Bits per color component; zero means monochrome

	FontSize float64 // px per em and rem; DefaultFontSize when zero
}

// Type returns the reported media type.
func (e Environment) Type() MediaType {
	if e.MediaType == "" {
		return MediaScreen
	}
	return e.MediaType
}

// EffectiveOrientation returns the supplied orientation, or derives it:
// landscape when width >= height, portrait otherwise. ok is false when
// neither is possible.
func (e Environment) EffectiveOrientation() (o Orientation, ok bool) {
	if e.Orientation != "" {
		return e.Orientation, true
	}
	if e.Width <= 0 || e.Height <= 0 {
		return "", false
	}
	if e.Width >= e.Height {
		return OrientationLandscape, true
	}
	return OrientationPortrait, true
}

// EffectiveAspectRatio returns the supplied aspect ratio, or width/height in
// lowest terms.
func (e Environment) EffectiveAspectRatio() (Ratio, bool) {
	return effectiveRatio(e.AspectRatio, e.Width, e.Height)
}

// EffectiveDeviceAspectRatio returns the supplied device aspect ratio, or
// device-width/device-height in lowest terms.
func (e Environment) EffectiveDeviceAspectRatio() (Ratio, bool) {
	return effectiveRatio(e.DeviceAspectRatio, e.DeviceWidth, e.DeviceHeight)
}

func effectiveRatio(override Ratio, w, h int) (Ratio, bool) {
	if override.Num > 0 && override.Den > 0 {
		return override.Reduce(), true
	}
	if w <= 0 || h <= 0 {
		return Ratio{}, false
	}
	return Ratio{Num: int64(w), Den: int64(h)}.Reduce(), true
}

// EffectiveFontSize returns the px size used for em and rem.
func (e Environment) EffectiveFontSize() float64 {
	if e.FontSize <= 0 {
		return DefaultFontSize
	}
	return e.FontSize
}

// lengthOf returns the environment's px value for a length feature.
func (e Environment) lengthOf(f Feature) (int, bool) {
	var v int
	switch f {
	case FeatureWidth:
		v = e.Width
	case FeatureHeight:
		v = e.Height
	case FeatureDeviceWidth:
		v = e.DeviceWidth
	case FeatureDeviceHeight:
		v = e.DeviceHeight
	}
	return v, v > 0
}

// String describes the known values of the environment, such as
// "screen 1024x768 2dppx color=8".
func (e Environment) String() string {
	parts := []string{string(e.Type())}
	if e.Width > 0 || e.Height > 0 {
		parts = append(parts, fmt.Sprintf("%dx%d", e.Width, e.Height))
	}
	if e.DeviceWidth > 0 || e.DeviceHeight > 0 {
		parts = append(parts, fmt.Sprintf("device=%dx%d", e.DeviceWidth, e.DeviceHeight))
	}
	if e.Resolution > 0 {
		parts = append(parts, Resolution{DPPX: e.Resolution}.String())
	}
	if e.Orientation != "" {
		parts = append(parts, string(e.Orientation))
	}
	if !e.AspectRatio.IsZero() {
		parts = append(parts, "aspect-ratio="+e.AspectRatio.String())
	}
	if !e.DeviceAspectRatio.IsZero() {
		parts = append(parts, "device-aspect-ratio="+e.DeviceAspectRatio.String())
	}
	if e.Color > 0 {
		parts = append(parts, fmt.Sprintf("color=%d", e.Color))
	}
	if e.FontSize > 0 {
		parts = append(parts, "font-size="+formatNumber(e.FontSize)+"px")
	}
	return strings.Join(parts, " ")
}
