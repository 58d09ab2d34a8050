package stylesheet

// Kind tells where a media query list was found.
type Kind int

const (
	// KindMedia is the prelude of an @media block.
	KindMedia Kind = iota
	// KindImport is the trailing media list of an @import rule.
	KindImport
)

func (k Kind) String() string {
	if k == KindImport {
		return "@import"
	}
	return "@media"
}

// Block is one media query list found in a stylesheet.
type Block struct {
	Kind  Kind
	Query string // Raw query text with surrounding whitespace trimmed

	Offset   int    // Byte offset of Query in the file
	Line     int    // 1-based line of Offset
	Column   int    // 1-based byte column of Offset
	LineText string // Source line containing Offset

	// Parent is the index of the enclosing @media block, or -1 at top level.
	Parent int
	Depth  int

	// Rules counts the blocks opened directly inside an @media block.
	Rules int
}

// Stylesheet holds the media query lists of one CSS source, in source order.
type Stylesheet struct {
	Path   string
	Blocks []Block
}

// Ancestors returns the blocks enclosing block i, innermost first.
func (s *Stylesheet) Ancestors(i int) []Block {
	var out []Block
	for p := s.Blocks[i].Parent; p >= 0; p = s.Blocks[p].Parent {
		out = append(out, s.Blocks[p])
	}
	return out
}
