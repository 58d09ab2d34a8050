package mediaq

import (
	"cmp"
	"fmt"
	"math"
)

// resolutionEpsilon absorbs rounding from dpi and dpcm conversion.
const resolutionEpsilon = 1e-9

// Evaluate reports whether list matches env. It is equivalent to
// list.Matches(env).
func Evaluate(list MediaQueryList, env Environment) bool {
	return list.Matches(env)
}

// Matches reports whether any query of the list matches env.
// An empty list matches nothing.
func (l MediaQueryList) Matches(env Environment) bool {
	for _, q := range l {
		if q.Matches(env) {
			return true
		}
	}
	return false
}

// Matches reports whether the query matches env. The media type is checked
// first; the condition is only evaluated when the type is compatible.
// "not" inverts the combined result.
func (q MediaQuery) Matches(env Environment) bool {
	matched := q.typeMatches(env) && (q.Condition == nil || evalCondition(q.Condition, env))
	if q.Not {
		return !matched
	}
	return matched
}

func (q MediaQuery) typeMatches(env Environment) bool {
	t := q.Type
	if t == "" || t == MediaAll {
		return true
	}
	return t == env.Type()
}

func evalCondition(c Condition, env Environment) bool {
	switch n := c.(type) {
	case *And:
		return evalCondition(n.Left, env) && evalCondition(n.Right, env)
	case *FeatureTest:
		return n.Matches(env)
	}
	panic(fmt.Sprintf("mediaq: unexpected condition %T", c))
}

// Matches evaluates a single feature test against env.
func (t *FeatureTest) Matches(env Environment) bool {
	switch t.Feature {
	case FeatureWidth, FeatureHeight, FeatureDeviceWidth, FeatureDeviceHeight:
		px, ok := env.lengthOf(t.Feature)
		if !ok {
			return false
		}
		if t.IsExistence() {
			return true
		}
		l, ok := t.Value.(Length)
		if !ok {
			return false
		}
		return compareWith(t.Comparator, compareFloat(float64(px), l.Pixels(env.EffectiveFontSize())))

	case FeatureResolution:
		if env.Resolution <= 0 {
			return false
		}
		if t.IsExistence() {
			return true
		}
		r, ok := t.Value.(Resolution)
		if !ok {
			return false
		}
		return compareWith(t.Comparator, compareFloat(env.Resolution, r.DPPX))

	case FeatureOrientation:
		o, ok := env.EffectiveOrientation()
		if !ok {
			return false
		}
		if t.IsExistence() {
			return true
		}
		want, ok := t.Value.(Orientation)
		return ok && o == want

	case FeatureAspectRatio, FeatureDeviceAspectRatio:
		actual, ok := env.EffectiveAspectRatio()
		if t.Feature == FeatureDeviceAspectRatio {
			actual, ok = env.EffectiveDeviceAspectRatio()
		}
		if !ok {
			return false
		}
		if t.IsExistence() {
			return true
		}
		r, ok := t.Value.(Ratio)
		if !ok {
			return false
		}
		return compareWith(t.Comparator, actual.Compare(r))

	case FeatureColor:
		if t.IsExistence() {
			return env.Color > 0
		}
		n, ok := t.Value.(Integer)
		if !ok {
			return false
		}
		return compareWith(t.Comparator, cmp.Compare(int64(env.Color), int64(n)))
	}
	return false
}

// compareWith applies a comparator to the result of comparing the
// environment value with the test value (-1, 0, +1).
func compareWith(c Comparator, order int) bool {
	switch c {
	case CompareEqual:
		return order == 0
	case CompareGreaterEqual:
		return order >= 0
	case CompareLessEqual:
		return order <= 0
	case CompareGreater:
		return order > 0
	case CompareLess:
		return order < 0
	}
	return false
}

// compareFloat compares with a relative tolerance so that 192dpi equals 2dppx.
func compareFloat(a, b float64) int {
	scale := math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
	if math.Abs(a-b) <= resolutionEpsilon*scale {
		return 0
	}
	return cmp.Compare(a, b)
}
