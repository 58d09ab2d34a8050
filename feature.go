package mediaq

import "strings"

// Feature identifies a media feature independent of its min-/max- prefix.
type Feature int

// Supported media features.
const (
	FeatureWidth Feature = iota
	FeatureHeight
	FeatureDeviceWidth
	FeatureDeviceHeight
	FeatureResolution
	FeatureOrientation
	FeatureAspectRatio
	FeatureDeviceAspectRatio
	FeatureColor
)

// valueKind is the shape of value a feature accepts.
type valueKind int

const (
	kindLength valueKind = iota
	kindResolution
	kindRatio
	kindOrientation
	kindInteger
)

func (k valueKind) String() string {
	switch k {
	case kindLength:
		return "a length such as 600px"
	case kindResolution:
		return "a resolution such as 2dppx or 192dpi"
	case kindRatio:
		return "a ratio such as 16/9"
	case kindOrientation:
		return "portrait or landscape"
	default:
		return "a non-negative integer"
	}
}

// featureInfo describes one feature.
type featureInfo struct {
	name   string
	kind   valueKind
	ranged bool // accepts min-/max- prefixes and the range syntax
}

var featureTable = map[Feature]featureInfo{
	FeatureWidth:             {name: "width", kind: kindLength, ranged: true},
	FeatureHeight:            {name: "height", kind: kindLength, ranged: true},
	FeatureDeviceWidth:       {name: "device-width", kind: kindLength, ranged: true},
	FeatureDeviceHeight:      {name: "device-height", kind: kindLength, ranged: true},
	FeatureResolution:        {name: "resolution", kind: kindResolution, ranged: true},
	FeatureOrientation:       {name: "orientation", kind: kindOrientation},
	FeatureAspectRatio:       {name: "aspect-ratio", kind: kindRatio, ranged: true},
	FeatureDeviceAspectRatio: {name: "device-aspect-ratio", kind: kindRatio, ranged: true},
	FeatureColor:             {name: "color", kind: kindInteger, ranged: true},
}

// featuresByName is the reverse of featureTable, keyed by unprefixed name.
var featuresByName = func() map[string]Feature {
	m := make(map[string]Feature, len(featureTable))
	for f, info := range featureTable {
		m[info.name] = f
	}
	return m
}()

// String returns the unprefixed CSS name of the feature.
func (f Feature) String() string {
	if info, ok := featureTable[f]; ok {
		return info.name
	}
	return "unknown"
}

// IsRange reports whether the feature accepts min-/max- prefixes.
func (f Feature) IsRange() bool {
	return featureTable[f].ranged
}

func (f Feature) kind() valueKind {
	return featureTable[f].kind
}

// lookupFeature resolves a lowercase feature name, including its min-/max-
// prefix, to a feature and the comparator the prefix encodes.
// prefixed reports whether a prefix was present.
func lookupFeature(name string) (f Feature, cmp Comparator, prefixed bool, ok bool) {
	if f, ok := featuresByName[name]; ok {
		return f, CompareEqual, false, true
	}

	switch {
	case strings.HasPrefix(name, "min-"):
		cmp = CompareGreaterEqual
		name = strings.TrimPrefix(name, "min-")
	case strings.HasPrefix(name, "max-"):
		cmp = CompareLessEqual
		name = strings.TrimPrefix(name, "max-")
	default:
		return 0, CompareEqual, false, false
	}

	f, ok = featuresByName[name]
	if !ok || !f.IsRange() {
		return 0, CompareEqual, false, false
	}
	return f, cmp, true, true
}
