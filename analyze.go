package mediaq

// KnownType reports whether the media type is one that can match:
// all, screen or print.
func (t MediaType) KnownType() bool {
	switch t {
	case "", MediaAll, MediaScreen, MediaPrint:
		return true
	}
	return false
}

// bound is one end of an interval of feature values.
type bound struct {
	value     float64
	inclusive bool
	set       bool
}

// interval collects the constraints placed on one numeric feature.
type interval struct {
	lo, hi bound
}

func (iv *interval) raiseLow(v float64, inclusive bool) {
	if !iv.lo.set || v > iv.lo.value || (v == iv.lo.value && !inclusive) {
		iv.lo = bound{value: v, inclusive: inclusive, set: true}
	}
}

func (iv *interval) lowerHigh(v float64, inclusive bool) {
	if !iv.hi.set || v < iv.hi.value || (v == iv.hi.value && !inclusive) {
		iv.hi = bound{value: v, inclusive: inclusive, set: true}
	}
}

func (iv *interval) empty() bool {
	if !iv.lo.set || !iv.hi.set {
		return false
	}
	if iv.lo.value > iv.hi.value {
		return true
	}
	return iv.lo.value == iv.hi.value && (!iv.lo.inclusive || !iv.hi.inclusive)
}

// ratioBound is one end of an interval of ratio values, kept as a Ratio so
// that bounds compare exactly.
type ratioBound struct {
	value     Ratio
	inclusive bool
	set       bool
}

type ratioInterval struct {
	lo, hi ratioBound
}

func (iv *ratioInterval) raiseLow(v Ratio, inclusive bool) {
	if !iv.lo.set {
		iv.lo = ratioBound{value: v, inclusive: inclusive, set: true}
		return
	}
	if c := v.Compare(iv.lo.value); c > 0 || (c == 0 && !inclusive) {
		iv.lo = ratioBound{value: v, inclusive: inclusive, set: true}
	}
}

func (iv *ratioInterval) lowerHigh(v Ratio, inclusive bool) {
	if !iv.hi.set {
		iv.hi = ratioBound{value: v, inclusive: inclusive, set: true}
		return
	}
	if c := v.Compare(iv.hi.value); c < 0 || (c == 0 && !inclusive) {
		iv.hi = ratioBound{value: v, inclusive: inclusive, set: true}
	}
}

func (iv *ratioInterval) empty() bool {
	if !iv.lo.set || !iv.hi.set {
		return false
	}
	c := iv.lo.value.Compare(iv.hi.value)
	return c > 0 || (c == 0 && (!iv.lo.inclusive || !iv.hi.inclusive))
}

// Satisfiable reports whether some environment could match the query.
// It returns false for media types no screen or print environment reports,
// for "not all", and for
// conditions whose bounds contradict each other, such as
// (min-width: 800px) and (max-width: 400px). Font-relative lengths are
// skipped because their px value depends on the environment.
func (q MediaQuery) Satisfiable() bool {
	if q.Not {
		return !(q.Condition == nil && (q.Type == "" || q.Type == MediaAll))
	}
	if !q.Type.KnownType() {
		return false
	}
	if q.Condition == nil {
		return true
	}

	intervals := make(map[Feature]*interval)
	ratios := make(map[Feature]*ratioInterval)
	orientations := make(map[Orientation]bool)

	for _, t := range features(q.Condition) {
		var v float64
		switch val := t.Value.(type) {
		case Length:
			if !val.IsAbsolute() {
				continue
			}
			v = val.Pixels(DefaultFontSize)
		case Resolution:
			v = val.DPPX
		case Ratio:
			riv, ok := ratios[t.Feature]
			if !ok {
				riv = &ratioInterval{}
				ratios[t.Feature] = riv
			}
			switch t.Comparator {
			case CompareEqual:
				riv.raiseLow(val, true)
				riv.lowerHigh(val, true)
			case CompareGreaterEqual:
				riv.raiseLow(val, true)
			case CompareGreater:
				riv.raiseLow(val, false)
			case CompareLessEqual:
				riv.lowerHigh(val, true)
			case CompareLess:
				riv.lowerHigh(val, false)
			}
			continue
		case Integer:
			v = float64(val)
		case Orientation:
			orientations[val] = true
			continue
		default:
			continue
		}

		iv, ok := intervals[t.Feature]
		if !ok {
			iv = &interval{}
			intervals[t.Feature] = iv
		}
		switch t.Comparator {
		case CompareEqual:
			iv.raiseLow(v, true)
			iv.lowerHigh(v, true)
		case CompareGreaterEqual:
			iv.raiseLow(v, true)
		case CompareGreater:
			iv.raiseLow(v, false)
		case CompareLessEqual:
			iv.lowerHigh(v, true)
		case CompareLess:
			iv.lowerHigh(v, false)
		}
	}

	if len(orientations) > 1 {
		return false
	}
	for _, iv := range intervals {
		if iv.empty() {
			return false
		}
	}
	for _, iv := range ratios {
		if iv.empty() {
			return false
		}
	}
	return true
}
