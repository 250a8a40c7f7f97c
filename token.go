// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package bentree

// Kind is the type of a value in the bencode grammar.
type Kind byte

// Constants defining the valid Kind values.
const (
	Invalid Kind = iota // invalid or missing value
	Integer             // integer: i<digits>e
	String              // byte string: <length>:<bytes>
	List                // list: l<values>e
	Dict                // dictionary: d<key><value>...e
	End                 // end marker closing a list or dictionary
)

var kindStr = [...]string{
	Invalid: "invalid",
	Integer: "integer",
	String:  "string",
	List:    "list",
	Dict:    "dict",
	End:     "end",
}

func (k Kind) String() string {
	v := int(k)
	if v >= len(kindStr) {
		return kindStr[Invalid]
	}
	return kindStr[v]
}

// A Token describes the location and extent of a single value in the source
// buffer. Tokens are stored in document order, so the subtree of a container
// at index i occupies the tokens at indices i+1 through i+Extent, the last of
// which is the End token that closed it.
//
// All offsets are byte offsets into the source. Tokens do not hold decoded
// values; conversion happens on demand through a Node.
type Token struct {
	Kind Kind

	HeaderPos int32 // offset of the type prefix ("i", "12:", "l", "d", "e")
	HeaderLen int32 // length of the type prefix

	// For Integer, the sign and digits (the trailing "e" follows).
	// For String, the raw content bytes. Empty for other kinds.
	PayloadPos int32
	PayloadLen int32

	Extent int32 // for List and Dict, the number of tokens in the subtree
	Count  int32 // for List, the number of elements; for Dict, of pairs
}

// Span returns the location of the type prefix of t.
func (t Token) Span() Span {
	return Span{Pos: int(t.HeaderPos), End: int(t.HeaderPos + t.HeaderLen)}
}

// Payload returns the location of the payload of t. For containers and end
// markers the span is empty.
func (t Token) Payload() Span {
	return Span{Pos: int(t.PayloadPos), End: int(t.PayloadPos + t.PayloadLen)}
}

// next returns the index of the sibling following the token at i.
func (t Token) next(i int) int { return i + 1 + int(t.Extent) }
