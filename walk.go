// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package bentree

import "errors"

// A Handler receives events from Walk describing the structure of a value.
// If a method reports an error, the walk stops and that error is returned to
// the caller of Walk, except as noted for SkipChildren.
//
// Walk ensures that Begin and End events are correctly paired, and that the
// members of a dictionary are reported as alternating Key and value events.
type Handler interface {
	// Begin a list. If BeginList returns SkipChildren, the elements of the
	// list are not visited and EndList is not called for it.
	BeginList(n Node) error

	// End the most-recently begun list.
	EndList(n Node) error

	// Begin a dictionary. If BeginDict returns SkipChildren, the members of
	// the dictionary are not visited and EndDict is not called for it.
	BeginDict(n Node) error

	// End the most-recently begun dictionary.
	EndDict(n Node) error

	// Report the key of a dictionary member. The corresponding value follows.
	Key(n Node) error

	// Report an integer or string value.
	Value(n Node) error
}

// SkipChildren is returned by the BeginList or BeginDict method of a Handler
// to skip the contents of the container.
var SkipChildren = errors.New("skip children")

type walkFrame struct {
	node Node
	key  bool // for a dictionary, whether a key is expected next
}

// Walk reports the structure of n to h in document order. Walk does not
// recurse, so its stack use does not depend on the nesting of n.
func Walk(n Node, h Handler) error {
	if !n.IsValid() {
		return nil
	}
	var stk []walkFrame
	toks := n.doc.toks
	end := int(n.idx) + int(toks[n.idx].Extent)

	// done records that the current child of the innermost container is done.
	done := func() {
		if k := len(stk); k > 0 && stk[k-1].node.Kind() == Dict {
			stk[k-1].key = !stk[k-1].key
		}
	}
	for j := int(n.idx); j <= end; j++ {
		cur := n.at(j)
		switch toks[j].Kind {
		case List, Dict:
			begin, kind := h.BeginList, List
			if toks[j].Kind == Dict {
				begin, kind = h.BeginDict, Dict
			}
			if err := begin(cur); errors.Is(err, SkipChildren) {
				j += int(toks[j].Extent)
				done()
				continue
			} else if err != nil {
				return err
			}
			stk = append(stk, walkFrame{node: cur, key: kind == Dict})

		case End:
			top := stk[len(stk)-1]
			stk = stk[:len(stk)-1]
			fin := h.EndList
			if top.node.Kind() == Dict {
				fin = h.EndDict
			}
			if err := fin(top.node); err != nil {
				return err
			}
			done()

		default:
			report := h.Value
			if k := len(stk); k > 0 && stk[k-1].key {
				report = h.Key
			}
			if err := report(cur); err != nil {
				return err
			}
			done()
		}
	}
	return nil
}
