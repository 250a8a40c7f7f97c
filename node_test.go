// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package bentree_test

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"sync"
	"testing"

	"github.com/creachadair/bentree"
	"github.com/google/go-cmp/cmp"
)

func mustParse(t *testing.T, input string) bentree.Node {
	t.Helper()
	doc, err := bentree.Parse([]byte(input), nil)
	if err != nil {
		t.Fatalf("Parse %q: unexpected error: %v", input, err)
	}
	return doc.Root()
}

func TestScenarios(t *testing.T) {
	t.Run("Integer", func(t *testing.T) {
		root := mustParse(t, "i42e")
		if k := root.Kind(); k != bentree.Integer {
			t.Errorf("Kind: got %v, want %v", k, bentree.Integer)
		}
		if v, err := root.Int(); err != nil || v != 42 {
			t.Errorf("Int: got (%v, %v), want (42, nil)", v, err)
		}
	})
	t.Run("String", func(t *testing.T) {
		root := mustParse(t, "4:spam")
		if k := root.Kind(); k != bentree.String {
			t.Errorf("Kind: got %v, want %v", k, bentree.String)
		}
		if v, err := root.Bytes(); err != nil || string(v) != "spam" {
			t.Errorf("Bytes: got (%q, %v), want (spam, nil)", v, err)
		}
	})
	t.Run("List", func(t *testing.T) {
		root := mustParse(t, "l4:spam4:eggse")
		if k, n := root.Kind(), root.Len(); k != bentree.List || n != 2 {
			t.Errorf("Root: got %v of length %d, want list of length 2", k, n)
		}
		for i, want := range []string{"spam", "eggs"} {
			v, ok := root.Item(i)
			if !ok {
				t.Fatalf("Item(%d): not found", i)
			}
			if got, err := v.Str(); err != nil || got != want {
				t.Errorf("Item(%d): got (%q, %v), want %q", i, got, err, want)
			}
		}
		if v, ok := root.Item(2); ok {
			t.Errorf("Item(2): got %v, want not found", v)
		}
	})
	t.Run("Dict", func(t *testing.T) {
		root := mustParse(t, "d3:cow3:moo4:spam4:eggse")
		if k := root.Kind(); k != bentree.Dict {
			t.Errorf("Kind: got %v, want %v", k, bentree.Dict)
		}
		for key, want := range map[string]string{"cow": "moo", "spam": "eggs"} {
			v, ok := root.FindString(key)
			if !ok {
				t.Errorf("Find %q: not found", key)
				continue
			}
			if got, err := v.Str(); err != nil || got != want {
				t.Errorf("Find %q: got (%q, %v), want %q", key, got, err, want)
			}
		}
		if v, ok := root.Find([]byte("absent")); ok {
			t.Errorf("Find absent: got %v, want not found", v)
		}
	})
	errorCases := []struct {
		name, input string
		want        error
	}{
		{"NegativeZero", "i-0e", bentree.ErrMalformedInteger},
		{"Unterminated", "d2:k1i1e", bentree.ErrUnterminated},
		{"TrailingData", "i1ex", bentree.ErrTrailingData},
	}
	for _, tc := range errorCases {
		t.Run(tc.name, func(t *testing.T) {
			doc, err := bentree.Parse([]byte(tc.input), nil)
			if !errors.Is(err, tc.want) {
				t.Errorf("Parse %q: got error %v, want %v", tc.input, err, tc.want)
			}
			if doc != nil {
				t.Errorf("Parse %q: got document %v, want nil", tc.input, doc.Root())
			}
		})
	}
}

func TestAccessorErrors(t *testing.T) {
	root := mustParse(t, "d3:inti5e3:str1:x4:listli1e1:ae4:dictd1:ki1eee")
	check := func(label string, err, want error) {
		t.Helper()
		if !errors.Is(err, want) {
			t.Errorf("%s: got error %v, want %v", label, err, want)
		} else {
			t.Logf("%s: got expected error: %v", label, err)
		}
	}

	_, err := root.Int()
	check("Int of dict", err, bentree.ErrTypeMismatch)
	_, err = root.Bytes()
	check("Bytes of dict", err, bentree.ErrTypeMismatch)
	_, err = root.IntAt(0)
	check("IntAt of dict", err, bentree.ErrTypeMismatch)

	_, err = root.FindInt("str")
	check("FindInt of string", err, bentree.ErrTypeMismatch)
	_, err = root.FindBytes("int")
	check("FindBytes of integer", err, bentree.ErrTypeMismatch)
	_, err = root.FindList("dict")
	check("FindList of dict", err, bentree.ErrTypeMismatch)
	_, err = root.FindDict("list")
	check("FindDict of list", err, bentree.ErrTypeMismatch)
	_, err = root.FindInt("nonesuch")
	check("FindInt missing", err, bentree.ErrNotFound)
	_, err = root.FindDict("nonesuch")
	check("FindDict missing", err, bentree.ErrNotFound)

	list, _ := root.FindString("list")
	_, err = list.IntAt(1)
	check("IntAt of string", err, bentree.ErrTypeMismatch)
	_, err = list.BytesAt(0)
	check("BytesAt of integer", err, bentree.ErrTypeMismatch)
	_, err = list.IntAt(2)
	check("IntAt out of range", err, bentree.ErrNotFound)
	_, err = list.BytesAt(-1)
	check("BytesAt negative", err, bentree.ErrNotFound)
	_, err = list.FindInt("x")
	check("FindInt of list", err, bentree.ErrTypeMismatch)

	// Lookups that do not apply report absence rather than failing.
	if _, ok := list.Find([]byte("x")); ok {
		t.Error("Find on a list: got ok, want not found")
	}
	if _, ok := root.Item(0); ok {
		t.Error("Item on a dict: got ok, want not found")
	}
	if _, _, ok := list.Pair(0); ok {
		t.Error("Pair on a list: got ok, want not found")
	}
}

func TestAccessors(t *testing.T) {
	const input = "d4:infod6:lengthi1024e4:name5:a.txt6:piecesl1:a1:b1:cee5:otheri-1ee"
	root := mustParse(t, input)

	if n := root.Len(); n != 2 {
		t.Errorf("Len: got %d, want 2", n)
	}
	info, err := root.FindDict("info")
	if err != nil {
		t.Fatalf("FindDict info: unexpected error: %v", err)
	}
	keys := slices.Sorted(maps.Keys(info))
	if diff := cmp.Diff([]string{"length", "name", "pieces"}, keys); diff != "" {
		t.Errorf("Info keys (-want, +got):\n%s", diff)
	}
	if v, err := info["length"].Int(); err != nil || v != 1024 {
		t.Errorf("length: got (%v, %v), want 1024", v, err)
	}

	infoNode, _ := root.FindString("info")
	if v, err := infoNode.FindBytes("name"); err != nil || string(v) != "a.txt" {
		t.Errorf("FindBytes name: got (%q, %v), want a.txt", v, err)
	}
	pieces, err := infoNode.FindList("pieces")
	if err != nil {
		t.Fatalf("FindList pieces: unexpected error: %v", err)
	}
	var got []string
	for _, p := range pieces {
		s, _ := p.Str()
		got = append(got, s)
	}
	if diff := cmp.Diff([]string{"a", "b", "c"}, got); diff != "" {
		t.Errorf("Pieces (-want, +got):\n%s", diff)
	}
	if v, err := root.FindInt("other"); err != nil || v != -1 {
		t.Errorf("FindInt other: got (%v, %v), want -1", v, err)
	}

	// Pairs and KeyAt/ValueAt agree with document order.
	var pairs []string
	for k, v := range infoNode.Pairs() {
		ks, _ := k.Str()
		pairs = append(pairs, fmt.Sprintf("%s=%v", ks, v.Kind()))
	}
	if diff := cmp.Diff([]string{"length=integer", "name=string", "pieces=list"}, pairs); diff != "" {
		t.Errorf("Pairs (-want, +got):\n%s", diff)
	}
	for i := range infoNode.Len() {
		k, ok1 := infoNode.KeyAt(i)
		v, ok2 := infoNode.ValueAt(i)
		pk, pv, ok3 := infoNode.Pair(i)
		if !ok1 || !ok2 || !ok3 {
			t.Fatalf("Pair %d: not found", i)
		}
		if k != pk || v != pv {
			t.Errorf("Pair %d: got (%v, %v), want (%v, %v)", i, pk, pv, k, v)
		}
	}
	if _, ok := infoNode.KeyAt(3); ok {
		t.Error("KeyAt(3): got ok, want not found")
	}

	// Raw returns the exact encoding, and Span locates it.
	if got, want := string(infoNode.Raw()), "d6:lengthi1024e4:name5:a.txt6:piecesl1:a1:b1:cee"; got != want {
		t.Errorf("Raw: got %q, want %q", got, want)
	}
	if got, want := infoNode.Span(), (bentree.Span{Pos: 7, End: 55}); got != want {
		t.Errorf("Span: got %v, want %v", got, want)
	}
	if got, want := string(root.Raw()), input; got != want {
		t.Errorf("Raw root: got %q, want %q", got, want)
	}
	other, _ := root.FindString("other")
	if got := string(other.Raw()); got != "i-1e" {
		t.Errorf("Raw integer: got %q, want %q", got, "i-1e")
	}
}

func TestItems(t *testing.T) {
	root := mustParse(t, "lli1eeli2ei3eedei4e0:e")
	var kinds []string
	for i, v := range root.Items() {
		w, ok := root.Item(i)
		if !ok || w != v {
			t.Errorf("Item(%d): got (%v, %v), want %v", i, w, ok, v)
		}
		kinds = append(kinds, fmt.Sprintf("%d:%v:%d", i, v.Kind(), v.Len()))
	}
	want := []string{"0:list:1", "1:list:2", "2:dict:0", "3:integer:0", "4:string:0"}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Errorf("Items (-want, +got):\n%s", diff)
	}

	// Stopping early does not visit further items.
	var n int
	for range root.Items() {
		n++
		if n == 2 {
			break
		}
	}
	if n != 2 {
		t.Errorf("Items with break: visited %d, want 2", n)
	}

	// Non-containers have no items or pairs.
	leaf, _ := root.Item(3)
	for range leaf.Items() {
		t.Error("Items of an integer: unexpected element")
	}
	for range leaf.Pairs() {
		t.Error("Pairs of an integer: unexpected element")
	}
}

func TestFindDuplicates(t *testing.T) {
	root := mustParse(t, "d1:bi1e1:ai2e1:bi3ee")
	if v, err := root.FindInt("b"); err != nil || v != 1 {
		t.Errorf("FindInt b: got (%v, %v), want 1", v, err)
	}
	if v, err := root.FindInt("a"); err != nil || v != 2 {
		t.Errorf("FindInt a: got (%v, %v), want 2", v, err)
	}

	// Keys are compared byte for byte, so a prefix does not match.
	if _, ok := root.FindString("bb"); ok {
		t.Error("Find bb: got ok, want not found")
	}
	if _, ok := root.FindString(""); ok {
		t.Error("Find empty: got ok, want not found")
	}
	empty := mustParse(t, "d0:i7ee")
	if v, err := empty.FindInt(""); err != nil || v != 7 {
		t.Errorf("FindInt empty key: got (%v, %v), want 7", v, err)
	}
}

func TestZeroNode(t *testing.T) {
	var z bentree.Node
	if z.IsValid() {
		t.Error("Zero node: IsValid is true")
	}
	if k := z.Kind(); k != bentree.Invalid {
		t.Errorf("Kind: got %v, want %v", k, bentree.Invalid)
	}
	if n := z.Len(); n != 0 {
		t.Errorf("Len: got %d, want 0", n)
	}
	if _, err := z.Int(); !errors.Is(err, bentree.ErrTypeMismatch) {
		t.Errorf("Int: got error %v, want %v", err, bentree.ErrTypeMismatch)
	}
	if _, ok := z.FindString("x"); ok {
		t.Error("FindString: got ok, want not found")
	}
	if raw := z.Raw(); raw != nil {
		t.Errorf("Raw: got %q, want nil", raw)
	}
	if d := z.Document(); d != nil {
		t.Errorf("Document: got %p, want nil", d)
	}
}

func TestClone(t *testing.T) {
	root := mustParse(t, "d5:filesld6:lengthi1e4:pathl1:aeed6:lengthi2e4:pathl1:beeee")
	want := root.JSON()

	const workers = 8
	var wg sync.WaitGroup
	results := make([]string, workers)
	for i := range workers {
		c := root.Clone()
		wg.Add(1)
		go func() {
			defer wg.Done()
			files, err := c.FindList("files")
			if err != nil {
				results[i] = err.Error()
				return
			}
			var total int64
			for _, f := range files {
				n, _ := f.FindInt("length")
				total += n
			}
			results[i] = fmt.Sprintf("%s total=%d", c.JSON(), total)
		}()
	}
	wg.Wait()
	for i, got := range results {
		if got != want+" total=3" {
			t.Errorf("Worker %d: got %q, want %q", i, got, want+" total=3")
		}
	}

	// A clone is interchangeable with the original.
	c := root.Clone()
	if c != root {
		t.Errorf("Clone: got %v, want %v", c, root)
	}
	if c.Index() != root.Index() || c.Document() != root.Document() {
		t.Error("Clone does not refer to the same value")
	}
}

func TestLargeString(t *testing.T) {
	payload := make([]byte, 100000)
	for i := range payload {
		payload[i] = byte(i)
	}
	input := append([]byte(fmt.Sprintf("l%d:", len(payload))), payload...)
	input = append(input, "i1ee"...)
	doc, err := bentree.Parse(input, nil)
	if err != nil {
		t.Fatalf("Parse: unexpected error: %v", err)
	}
	got, err := doc.Root().BytesAt(0)
	if err != nil {
		t.Fatalf("BytesAt: unexpected error: %v", err)
	}
	if string(got) != string(payload) {
		t.Error("BytesAt: payload does not match")
	}
	if cap(got) != len(got) {
		t.Errorf("BytesAt: capacity %d exceeds length %d", cap(got), len(got))
	}
	if v, err := doc.Root().IntAt(1); err != nil || v != 1 {
		t.Errorf("IntAt(1): got (%v, %v), want 1", v, err)
	}
}
