// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"fmt"

	"github.com/creachadair/bentree"
)

// stats counts the values in a bencoded value.
type stats struct {
	Lists, Dicts      int
	Integers, Strings int // strings include dictionary keys
	Bytes             int // total length of string contents
	MaxDepth          int

	depth int
}

// Tokens reports the number of tokens the value occupies.
func (s *stats) Tokens() int { return 2*(s.Lists+s.Dicts) + s.Integers + s.Strings }

func (s *stats) String() string {
	return fmt.Sprintf("tokens=%d lists=%d dicts=%d integers=%d strings=%d bytes=%d depth=%d",
		s.Tokens(), s.Lists, s.Dicts, s.Integers, s.Strings, s.Bytes, s.MaxDepth)
}

func (s *stats) begin() {
	s.depth++
	s.MaxDepth = max(s.MaxDepth, s.depth)
}

func (s *stats) BeginList(bentree.Node) error { s.Lists++; s.begin(); return nil }
func (s *stats) BeginDict(bentree.Node) error { s.Dicts++; s.begin(); return nil }
func (s *stats) EndList(bentree.Node) error   { s.depth--; return nil }
func (s *stats) EndDict(bentree.Node) error   { s.depth--; return nil }
func (s *stats) Key(n bentree.Node) error     { return s.Value(n) }

func (s *stats) Value(n bentree.Node) error {
	switch n.Kind() {
	case bentree.Integer:
		s.Integers++
	case bentree.String:
		s.Strings++
		b, _ := n.Bytes()
		s.Bytes += len(b)
	}
	return nil
}

// collectStats walks n and returns its value counts.
func collectStats(n bentree.Node) (*stats, error) {
	s := new(stats)
	if err := bentree.Walk(n, s); err != nil {
		return nil, err
	}
	return s, nil
}
