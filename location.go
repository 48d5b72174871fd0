package jsyn

import (
	"encoding/json"
	"fmt"
)

// A Span describes a contiguous span of a source input.
type Span struct {
	Pos int // the start offset, 0-based
	End int // the end offset, 0-based (noninclusive)
}

// A LineCol describes the line number and column offset of a location in
// source text.
type LineCol struct {
	Line   int // line number, 1-based
	Column int // byte offset of column in line, 0-based
}

func (lc LineCol) String() string { return fmt.Sprintf("%d:%d", lc.Line, lc.Column) }

// A Location describes the complete location of a range of source text,
// including line and column offsets.
type Location struct {
	Span
	First, Last LineCol
}

// To returns a Location spanning from the start of l to the end of o.
func (l Location) To(o Location) Location {
	return Location{
		Span:  Span{Pos: l.Pos, End: o.End},
		First: l.First,
		Last:  o.Last,
	}
}

type lineColJSON struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// MarshalJSON encodes l as {"start":{"line","column"},"end":{"line","column"}}.
// The offset span is not included; callers that need it encode l.Span
// alongside.
func (l Location) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Start lineColJSON `json:"start"`
		End   lineColJSON `json:"end"`
	}{
		Start: lineColJSON{Line: l.First.Line, Column: l.First.Column},
		End:   lineColJSON{Line: l.Last.Line, Column: l.Last.Column},
	})
}
