package mediaq

import "strings"

// String returns the canonical form of the list, queries joined by ", ".
func (l MediaQueryList) String() string {
	parts := make([]string, len(l))
	for i, q := range l {
		parts[i] = q.String()
	}
	return strings.Join(parts, ", ")
}

// String returns the canonical form of the query. An implicit "all" type is
// omitted unless the query has no condition.
func (q MediaQuery) String() string {
	var b strings.Builder
	switch {
	case q.Not:
		b.WriteString("not ")
	case q.Only:
		b.WriteString("only ")
	}

	writeType := (q.Type != "" && q.Type != MediaAll) || q.Condition == nil || q.Not || q.Only
	if writeType {
		t := q.Type
		if t == "" {
			t = MediaAll
		}
		b.WriteString(string(t))
	}

	if q.Condition != nil {
		if writeType {
			b.WriteString(" and ")
		}
		b.WriteString(q.Condition.String())
	}
	return b.String()
}

func (a *And) String() string {
	return a.Left.String() + " and " + a.Right.String()
}

// String prints prefix form for =, >= and <=, and range form for > and <.
func (t *FeatureTest) String() string {
	name := t.Feature.String()
	if t.Value == nil {
		return "(" + name + ")"
	}

	switch t.Comparator {
	case CompareGreaterEqual:
		return "(min-" + name + ": " + t.Value.String() + ")"
	case CompareLessEqual:
		return "(max-" + name + ": " + t.Value.String() + ")"
	case CompareGreater, CompareLess:
		return "(" + name + " " + t.Comparator.String() + " " + t.Value.String() + ")"
	default:
		return "(" + name + ": " + t.Value.String() + ")"
	}
}
