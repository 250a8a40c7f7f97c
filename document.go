// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package bentree

import (
	"io"

	"go4.org/mem"
)

// A Document is a successfully tokenized bencode input: the source bytes
// together with their tokens. A Document is never modified after Parse
// returns, so it and all the Node values derived from it may be used
// concurrently by multiple goroutines without further synchronization.
type Document struct {
	data []byte
	toks []Token
}

// Parse tokenizes data, which must contain exactly one bencoded value, and
// returns a Document for it. The Document retains data; the caller must not
// modify the contents of data after Parse returns. In case of error, the
// error has concrete type *SyntaxError.
func Parse(data []byte, opts *Options) (*Document, error) {
	toks, err := Tokenize(data, opts)
	if err != nil {
		return nil, err
	}
	return &Document{data: data, toks: toks}, nil
}

// ParseReader reads all of r and parses the result as a single bencoded
// value. Errors reading r are returned without modification.
func ParseReader(r io.Reader, opts *Options) (*Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return Parse(data, opts)
}

// MustParse parses data with default options and returns the resulting
// Document. It panics if data is not a valid bencoded value.
func MustParse(data []byte) *Document {
	doc, err := Parse(data, nil)
	if err != nil {
		panic(err)
	}
	return doc
}

// Root returns the node for the top-level value of d.
func (d *Document) Root() Node { return Node{doc: d} }

// Len reports the total number of tokens in d, including end markers.
func (d *Document) Len() int { return len(d.toks) }

// Token returns the token at index i of d. It panics if i is out of range.
func (d *Document) Token(i int) Token { return d.toks[i] }

// Bytes returns a read-only view of the source bytes of d.
func (d *Document) Bytes() mem.RO { return mem.B(d.data) }

// Node returns the node for the token at index i of d, and reports whether i
// denotes a value. End markers are not values.
func (d *Document) Node(i int) (Node, bool) {
	if i < 0 || i >= len(d.toks) || d.toks[i].Kind == End {
		return Node{}, false
	}
	return Node{doc: d, idx: int32(i)}, true
}

func (d *Document) slice(pos, n int32) []byte {
	return d.data[pos : pos+n : pos+n]
}
