// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package bentree

import (
	"fmt"
	"iter"

	"go4.org/mem"
)

// A Node is a view of a single value in a Document. A Node is a small value
// (a document pointer and a token index) and does not own any data; copying
// a Node is cheap, and any number of nodes may refer to the same Document.
//
// The zero Node is invalid: its Kind is Invalid and its accessors report
// errors or empty results.
type Node struct {
	doc *Document
	idx int32
}

func (n Node) tok() Token { return n.doc.toks[n.idx] }

// Kind reports the kind of value n refers to.
func (n Node) Kind() Kind {
	if n.doc == nil {
		return Invalid
	}
	return n.tok().Kind
}

// IsValid reports whether n refers to a value.
func (n Node) IsValid() bool { return n.doc != nil }

// Index reports the index of the token for n in its document.
func (n Node) Index() int { return int(n.idx) }

// Document returns the document n belongs to, or nil if n is invalid.
func (n Node) Document() *Document { return n.doc }

// Clone returns a copy of n. The copy shares the document of n and may be
// used concurrently with n by another goroutine.
func (n Node) Clone() Node { return n }

// Int returns the value of an Integer node. The digits are converted at the
// time of the call. It reports ErrTypeMismatch if n is not an Integer.
func (n Node) Int() (int64, error) {
	if k := n.Kind(); k != Integer {
		return 0, typeError(Integer, k)
	}
	t := n.tok()
	return mem.ParseInt(mem.B(n.doc.slice(t.PayloadPos, t.PayloadLen)), 10, 64)
}

// Bytes returns the contents of a String node. The result aliases the source
// buffer of the document and must not be modified. It reports
// ErrTypeMismatch if n is not a String.
func (n Node) Bytes() ([]byte, error) {
	if k := n.Kind(); k != String {
		return nil, typeError(String, k)
	}
	t := n.tok()
	return n.doc.slice(t.PayloadPos, t.PayloadLen), nil
}

// Text returns a read-only view of the contents of a String node.
// It reports ErrTypeMismatch if n is not a String.
func (n Node) Text() (mem.RO, error) {
	b, err := n.Bytes()
	if err != nil {
		return mem.RO{}, err
	}
	return mem.B(b), nil
}

// Str returns a copy of the contents of a String node as a string.
// It reports ErrTypeMismatch if n is not a String.
func (n Node) Str() (string, error) {
	b, err := n.Bytes()
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Len reports the number of elements in a List, or the number of key/value
// pairs in a Dict. For any other kind of node Len returns 0.
func (n Node) Len() int {
	switch n.Kind() {
	case List, Dict:
		return int(n.tok().Count)
	}
	return 0
}

// child returns the token index of the ith direct child of the container n,
// counting the keys and values of a dictionary separately. The cost is
// linear in i, not in the size of the skipped subtrees.
func (n Node) child(i int) int {
	j := int(n.idx) + 1
	for ; i > 0; i-- {
		j = n.doc.toks[j].next(j)
	}
	return j
}

func (n Node) at(i int) Node { return Node{doc: n.doc, idx: int32(i)} }

// Item returns the element at offset i of a List, and reports whether it
// exists. It returns false if n is not a List or i is out of range.
func (n Node) Item(i int) (Node, bool) {
	if n.Kind() != List || i < 0 || i >= n.Len() {
		return Node{}, false
	}
	return n.at(n.child(i)), true
}

// itemAt returns the element at offset i of a List, or an error.
func (n Node) itemAt(i int) (Node, error) {
	if k := n.Kind(); k != List {
		return Node{}, typeError(List, k)
	}
	v, ok := n.Item(i)
	if !ok {
		return Node{}, fmt.Errorf("%w: index %d out of bounds (n=%d)", ErrNotFound, i, n.Len())
	}
	return v, nil
}

// IntAt returns the value of the Integer at offset i of a List. It reports
// ErrNotFound if i is out of range, and ErrTypeMismatch if n is not a List or
// the element is not an Integer.
func (n Node) IntAt(i int) (int64, error) {
	v, err := n.itemAt(i)
	if err != nil {
		return 0, err
	}
	return v.Int()
}

// BytesAt returns the contents of the String at offset i of a List. It
// reports ErrNotFound if i is out of range, and ErrTypeMismatch if n is not a
// List or the element is not a String.
func (n Node) BytesAt(i int) ([]byte, error) {
	v, err := n.itemAt(i)
	if err != nil {
		return nil, err
	}
	return v.Bytes()
}

// KeyAt returns the key of the pair at offset i of a Dict, and reports
// whether it exists. Keys are always String nodes.
func (n Node) KeyAt(i int) (Node, bool) {
	k, _, ok := n.Pair(i)
	return k, ok
}

// ValueAt returns the value of the pair at offset i of a Dict, and reports
// whether it exists.
func (n Node) ValueAt(i int) (Node, bool) {
	_, v, ok := n.Pair(i)
	return v, ok
}

// Pair returns the key and value of the pair at offset i of a Dict, and
// reports whether it exists. It returns false if n is not a Dict or i is out
// of range.
func (n Node) Pair(i int) (key, value Node, ok bool) {
	if n.Kind() != Dict || i < 0 || i >= n.Len() {
		return Node{}, Node{}, false
	}
	j := n.child(2 * i)
	return n.at(j), n.at(j + 1), true
}

// Find returns the value associated with key in a Dict, and reports whether
// it was found. Keys are compared byte-for-byte in document order and the
// first match wins; keys are not required to be sorted. Find returns false
// if n is not a Dict.
func (n Node) Find(key []byte) (Node, bool) { return n.find(mem.B(key)) }

// FindString is as Find, with a string key.
func (n Node) FindString(key string) (Node, bool) { return n.find(mem.S(key)) }

func (n Node) find(key mem.RO) (Node, bool) {
	if n.Kind() != Dict {
		return Node{}, false
	}
	toks := n.doc.toks
	j := int(n.idx) + 1
	for range n.tok().Count {
		k := toks[j]
		if mem.B(n.doc.slice(k.PayloadPos, k.PayloadLen)).Equal(key) {
			return n.at(j + 1), true
		}
		j = toks[j+1].next(j + 1)
	}
	return Node{}, false
}

// lookup returns the value for key in a Dict, or an error.
func (n Node) lookup(key string) (Node, error) {
	if k := n.Kind(); k != Dict {
		return Node{}, typeError(Dict, k)
	}
	v, ok := n.FindString(key)
	if !ok {
		return Node{}, fmt.Errorf("%w: key %q", ErrNotFound, key)
	}
	return v, nil
}

// FindInt returns the value of the Integer associated with key in a Dict.
// It reports ErrNotFound if the key is absent, and ErrTypeMismatch if n is
// not a Dict or the value is not an Integer.
func (n Node) FindInt(key string) (int64, error) {
	v, err := n.lookup(key)
	if err != nil {
		return 0, err
	}
	return v.Int()
}

// FindBytes returns the contents of the String associated with key in a
// Dict. Errors are as for FindInt.
func (n Node) FindBytes(key string) ([]byte, error) {
	v, err := n.lookup(key)
	if err != nil {
		return nil, err
	}
	return v.Bytes()
}

// FindList returns the elements of the List associated with key in a Dict.
// Errors are as for FindInt.
func (n Node) FindList(key string) ([]Node, error) {
	v, err := n.lookup(key)
	if err != nil {
		return nil, err
	} else if k := v.Kind(); k != List {
		return nil, typeError(List, k)
	}
	out := make([]Node, 0, v.Len())
	for _, elt := range v.Items() {
		out = append(out, elt)
	}
	return out, nil
}

// FindDict returns the pairs of the Dict associated with key in a Dict, as a
// map from key contents to values. If a key occurs more than once, the first
// occurrence is kept. Errors are as for FindInt.
func (n Node) FindDict(key string) (map[string]Node, error) {
	v, err := n.lookup(key)
	if err != nil {
		return nil, err
	} else if k := v.Kind(); k != Dict {
		return nil, typeError(Dict, k)
	}
	out := make(map[string]Node, v.Len())
	for k, val := range v.Pairs() {
		ks, _ := k.Str()
		if _, ok := out[ks]; !ok {
			out[ks] = val
		}
	}
	return out, nil
}

// Items returns an iterator over the offsets and elements of a List.
// If n is not a List, the sequence is empty.
func (n Node) Items() iter.Seq2[int, Node] {
	return func(yield func(int, Node) bool) {
		if n.Kind() != List {
			return
		}
		j := int(n.idx) + 1
		for i := range int(n.tok().Count) {
			if !yield(i, n.at(j)) {
				return
			}
			j = n.doc.toks[j].next(j)
		}
	}
}

// Pairs returns an iterator over the keys and values of a Dict in document
// order. If n is not a Dict, the sequence is empty.
func (n Node) Pairs() iter.Seq2[Node, Node] {
	return func(yield func(Node, Node) bool) {
		if n.Kind() != Dict {
			return
		}
		j := int(n.idx) + 1
		for range n.tok().Count {
			if !yield(n.at(j), n.at(j+1)) {
				return
			}
			j = n.doc.toks[j+1].next(j + 1)
		}
	}
}

// Span returns the location of the complete encoding of n in the source,
// from its type prefix through its terminator. The span of an invalid node
// is empty.
func (n Node) Span() Span {
	if !n.IsValid() {
		return Span{}
	}
	t := n.tok()
	end := t.PayloadPos + t.PayloadLen
	switch t.Kind {
	case Integer:
		end++ // the trailing "e"
	case List, Dict:
		e := n.doc.toks[int(n.idx)+int(t.Extent)]
		end = e.HeaderPos + e.HeaderLen
	}
	return Span{Pos: int(t.HeaderPos), End: int(end)}
}

// Raw returns the complete encoding of n, aliasing the source buffer of its
// document. The result must not be modified. For example, the identifying
// hash of a torrent is computed over the raw "info" dictionary.
func (n Node) Raw() []byte {
	if !n.IsValid() {
		return nil
	}
	s := n.Span()
	return n.doc.slice(int32(s.Pos), int32(s.Len()))
}
