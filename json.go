// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package bentree

import (
	"github.com/creachadair/bentree/internal/escape"
	"github.com/tailscale/hujson"
	"go4.org/mem"
)

// JSON renders n as compact JSON text. Integers are rendered as decimal
// numbers, strings as quoted JSON strings (see Quote for the escaping
// policy), lists as arrays and dictionaries as objects whose members are in
// document order. An invalid node renders as "null".
func (n Node) JSON() string { return string(n.AppendJSON(nil)) }

// String satisfies the fmt.Stringer interface. It returns n.JSON().
func (n Node) String() string { return n.JSON() }

// AppendJSON appends the compact JSON rendering of n to dst and returns the
// extended slice.
func (n Node) AppendJSON(dst []byte) []byte { return n.appendJSON(dst, false) }

// A jsonFrame records the state of an open list or dictionary.
type jsonFrame struct {
	dict bool
	n    int // number of children written, counting keys and values
}

// appendJSON renders n to dst. If pretty is true, each element of a
// non-empty list or dictionary begins a new line indented by one tab per
// level of nesting, and a space follows each colon. It does not recurse.
func (n Node) appendJSON(dst []byte, pretty bool) []byte {
	if !n.IsValid() {
		return append(dst, "null"...)
	}
	var stk []jsonFrame
	toks := n.doc.toks
	end := int(n.idx) + int(toks[n.idx].Extent)
	for j := int(n.idx); j <= end; j++ {
		t := toks[j]
		if t.Kind == End {
			top := stk[len(stk)-1]
			stk = stk[:len(stk)-1]
			if pretty && top.n > 0 {
				dst = appendIndent(dst, len(stk))
			}
			if top.dict {
				dst = append(dst, '}')
			} else {
				dst = append(dst, ']')
			}
			continue
		}

		if k := len(stk); k > 0 {
			top := &stk[k-1]
			switch {
			case top.dict && top.n%2 == 1:
				dst = append(dst, ':')
				if pretty {
					dst = append(dst, ' ')
				}
			case top.n > 0:
				dst = append(dst, ',')
				fallthrough
			default:
				if pretty {
					dst = appendIndent(dst, k)
				}
			}
			top.n++
		}

		switch t.Kind {
		case Integer:
			// The digits were validated by the tokenizer and are already a valid
			// JSON number.
			dst = append(dst, n.doc.slice(t.PayloadPos, t.PayloadLen)...)
		case String:
			dst = escape.Quote(dst, mem.B(n.doc.slice(t.PayloadPos, t.PayloadLen)))
		case List:
			dst = append(dst, '[')
			stk = append(stk, jsonFrame{})
		case Dict:
			dst = append(dst, '{')
			stk = append(stk, jsonFrame{dict: true})
		}
	}
	return dst
}

// appendIndent appends a newline followed by depth tabs to dst.
func appendIndent(dst []byte, depth int) []byte {
	dst = append(dst, '\n')
	for range depth {
		dst = append(dst, '\t')
	}
	return dst
}

// PrettyJSON renders n as indented JSON text, one list element or dictionary
// member per line, with a trailing newline. Strings are escaped exactly as
// in the compact rendering.
func (n Node) PrettyJSON() (string, error) {
	out := n.appendJSON(nil, true)
	if _, err := hujson.Parse(out); err != nil {
		return "", err
	}
	return string(append(out, '\n')), nil
}
