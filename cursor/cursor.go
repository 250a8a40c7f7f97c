// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

// Package cursor implements path traversal over a decoded bencode value.
package cursor

import (
	"fmt"

	"github.com/creachadair/bentree"
)

// Path traverses a sequential path into the structure of v where path
// elements are as documented for the Cursor.Down method. This is a
// convenience wrapper for creating a cursor, applying path, and retrieving its
// value.
func Path(v bentree.Node, path ...any) (bentree.Node, error) {
	c := New(v).Down(path...)
	if err := c.Err(); err != nil {
		return bentree.Node{}, err
	}
	return c.Value(), nil
}

// A Cursor is a pointer that navigates into the structure of a bentree.Node.
type Cursor struct {
	org bentree.Node
	stk []bentree.Node
	err error
}

// New constructs a new Cursor to traverse the structure of origin.
func New(origin bentree.Node) *Cursor { return &Cursor{org: origin} }

// Origin returns the origin value of c.
func (c *Cursor) Origin() bentree.Node { return c.org }

// AtOrigin reports whether c is at its origin.
func (c *Cursor) AtOrigin() bool { return len(c.stk) == 0 }

// Value reports the current value under the cursor.
func (c *Cursor) Value() bentree.Node {
	if c.AtOrigin() {
		return c.org
	}
	return c.stk[len(c.stk)-1]
}

// Path reports the complete sequence of values from the origin to the current
// location in c.
func (c *Cursor) Path() []bentree.Node {
	return append([]bentree.Node{c.org}, c.stk...)
}

// Err reports the error from the most recent traversal operation, if any.
func (c *Cursor) Err() error { return c.err }

// Up moves the cursor one position upward in the structure, if possible.
// It returns c to permit chaining.
func (c *Cursor) Up() *Cursor {
	if n := len(c.stk); n > 0 {
		c.stk = c.stk[:n-1]
	}
	return c
}

// Reset resets the cursor to its origin and clears its error.
func (c *Cursor) Reset() { c.stk = c.stk[:0]; c.err = nil }

// Down traverses a sequential path into the structure of c starting from the
// current value, where path elements are strings or byte slices (denoting
// dictionary keys), integers (denoting offsets into lists), or functions (see
// below). If the path cannot be completely consumed, traversal stops at the
// last value reached and an error is recorded. Use Err to recover the error.
//
// If a path element is a string or []byte, the corresponding value must be a
// dictionary, and the element resolves to the value associated with that key.
//
// If a path element is an integer, the corresponding value must be a list or
// a dictionary. For a list, the integer resolves to the element at that
// offset. For a dictionary, it resolves to the value of the pair at that
// offset. Negative indices count backward from the end (-1 is last, -2
// second last). An error is reported if the index is out of bounds.
//
// If a path element is a function, the function is executed and its result
// becomes the next value in the sequence. The function must have a signature
//
//	func(bentree.Node) (bentree.Node, error)
//
// If the function reports an error, traversal stops and the error is recorded.
//
// Errors for missing keys and indices wrap bentree.ErrNotFound; errors for
// elements that do not apply to the current value wrap
// bentree.ErrTypeMismatch.
func (c *Cursor) Down(path ...any) *Cursor {
	c.err = nil // reset error
	cur := c.Value()
	for _, elt := range path {
		switch t := elt.(type) {
		case string:
			if cur.Kind() != bentree.Dict {
				return c.setErrorf(bentree.ErrTypeMismatch, "cannot traverse %v with %q", cur.Kind(), t)
			}
			v, ok := cur.FindString(t)
			if !ok {
				return c.setErrorf(bentree.ErrNotFound, "key %q not found", t)
			}
			cur = c.push(v)

		case []byte:
			if cur.Kind() != bentree.Dict {
				return c.setErrorf(bentree.ErrTypeMismatch, "cannot traverse %v with %q", cur.Kind(), t)
			}
			v, ok := cur.Find(t)
			if !ok {
				return c.setErrorf(bentree.ErrNotFound, "key %q not found", t)
			}
			cur = c.push(v)

		case int:
			var v bentree.Node
			switch cur.Kind() {
			case bentree.List:
				i, ok := fixArrayBound(cur.Len(), t)
				if !ok {
					return c.setErrorf(bentree.ErrNotFound, "list index %d out of bounds (n=%d)", i, cur.Len())
				}
				v, _ = cur.Item(i)
			case bentree.Dict:
				i, ok := fixArrayBound(cur.Len(), t)
				if !ok {
					return c.setErrorf(bentree.ErrNotFound, "dict index %d out of bounds (n=%d)", i, cur.Len())
				}
				v, _ = cur.ValueAt(i)
			default:
				return c.setErrorf(bentree.ErrTypeMismatch, "cannot traverse %v with %v", cur.Kind(), t)
			}
			cur = c.push(v)

		case func(bentree.Node) (bentree.Node, error):
			next, err := t(cur)
			if err != nil {
				c.err = err
				return c
			}
			cur = c.push(next)

		default:
			return c.setErrorf(bentree.ErrTypeMismatch, "invalid path element %T", elt)
		}
	}
	return c
}

func (c *Cursor) push(v bentree.Node) bentree.Node { c.stk = append(c.stk, v); return v }

func (c *Cursor) setErrorf(base error, msg string, args ...any) *Cursor {
	c.err = fmt.Errorf("%w: %s", base, fmt.Sprintf(msg, args...))
	return c
}

func fixArrayBound(n, i int) (int, bool) {
	if i < 0 {
		i += n
	}
	return i, i >= 0 && i < n
}
