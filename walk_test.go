// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package bentree_test

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/creachadair/bentree"
	"github.com/google/go-cmp/cmp"
)

func TestWalk(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"i0e", "Value integer <i0e>"},
		{"0:", "Value string <0:>"},
		{"4:spam", "Value string <4:spam>"},

		{"le", "BeginList\nEndList"},
		{"de", "BeginDict\nEndDict"},

		{"li1ei-2e3:abce", `
BeginList
Value integer <i1e>
Value integer <i-2e>
Value string <3:abc>
EndList`},

		{"d1:ai15ee", `
BeginDict
Key <1:a>
Value integer <i15e>
EndDict`},

		{"d1:xle1:yl1:zdeee", `
BeginDict
Key <1:x>
BeginList
EndList
Key <1:y>
BeginList
Value string <1:z>
BeginDict
EndDict
EndList
EndDict`},

		{"ld1:kd1:ki1eeei2ee", `
BeginList
BeginDict
Key <1:k>
BeginDict
Key <1:k>
Value integer <i1e>
EndDict
EndDict
Value integer <i2e>
EndList`},
	}

	for _, test := range tests {
		doc, err := bentree.Parse([]byte(test.input), nil)
		if err != nil {
			t.Fatalf("Parse %q: unexpected error: %v", test.input, err)
		}
		th := new(testHandler)
		if err := bentree.Walk(doc.Root(), th); err != nil {
			t.Errorf("Walk failed: %v", err)
		}
		if diff := diffStrings(test.want, th.output()); diff != "" {
			t.Errorf("Input: %#q\nOutput: (-want, +got)\n%s", test.input, diff)
		}
	}
}

func TestWalkSubtree(t *testing.T) {
	doc := bentree.MustParse([]byte("d1:ali1ei2ee1:bi3ee"))
	a, ok := doc.Root().FindString("a")
	if !ok {
		t.Fatal(`Key "a" not found`)
	}
	th := new(testHandler)
	if err := bentree.Walk(a, th); err != nil {
		t.Fatalf("Walk failed: %v", err)
	}
	const want = "BeginList\nValue integer <i1e>\nValue integer <i2e>\nEndList"
	if diff := diffStrings(want, th.output()); diff != "" {
		t.Errorf("Output: (-want, +got)\n%s", diff)
	}

	if err := bentree.Walk(bentree.Node{}, th); err != nil {
		t.Errorf("Walk of invalid node: got %v, want nil", err)
	}
}

func TestWalkSkip(t *testing.T) {
	doc := bentree.MustParse([]byte("ld1:ali1eee3:endli9eee"))
	th := &testHandler{skip: true}
	if err := bentree.Walk(doc.Root(), th); err != nil {
		t.Fatalf("Walk failed: %v", err)
	}
	// The root is entered, but the nested containers are skipped whole.
	const want = `
BeginList
BeginDict
Value string <3:end>
BeginList
EndList`
	if diff := diffStrings(want, th.output()); diff != "" {
		t.Errorf("Output: (-want, +got)\n%s", diff)
	}
}

func TestWalkError(t *testing.T) {
	doc := bentree.MustParse([]byte("li1ei2ei3ee"))
	errStop := errors.New("stop")
	th := &testHandler{fail: errStop, failAfter: 2}
	if err := bentree.Walk(doc.Root(), th); !errors.Is(err, errStop) {
		t.Errorf("Walk: got error %v, want %v", err, errStop)
	}
	const want = "BeginList\nValue integer <i1e>\nValue integer <i2e>"
	if diff := diffStrings(want, th.output()); diff != "" {
		t.Errorf("Output: (-want, +got)\n%s", diff)
	}
}

func diffStrings(want, got string) string {
	return cmp.Diff(strings.Split(strings.TrimSpace(want), "\n"),
		strings.Split(strings.TrimSpace(got), "\n"))
}

type testHandler struct {
	buf bytes.Buffer

	skip      bool  // skip containers below the root
	depth     int   // current container depth
	fail      error // if set, report this error from Value
	failAfter int   // number of values to report before failing
	nvalues   int
}

func (t *testHandler) pr(msg string, args ...any) {
	if !strings.HasSuffix(msg, "\n") {
		msg += "\n"
	}
	fmt.Fprintf(&t.buf, msg, args...)
}

func (t *testHandler) output() string { return t.buf.String() }

func (t *testHandler) begin(label string) error {
	t.pr(label)
	if t.skip && t.depth > 0 {
		return bentree.SkipChildren
	}
	t.depth++
	return nil
}

func (t *testHandler) BeginList(n bentree.Node) error { return t.begin("BeginList") }
func (t *testHandler) BeginDict(n bentree.Node) error { return t.begin("BeginDict") }
func (t *testHandler) EndList(n bentree.Node) error   { t.depth--; t.pr("EndList"); return nil }
func (t *testHandler) EndDict(n bentree.Node) error   { t.depth--; t.pr("EndDict"); return nil }

func (t *testHandler) Key(n bentree.Node) error {
	t.pr("Key <%s>", n.Raw())
	return nil
}

func (t *testHandler) Value(n bentree.Node) error {
	if t.fail != nil && t.nvalues == t.failAfter {
		return t.fail
	}
	t.nvalues++
	t.pr("Value %s <%s>", n.Kind(), n.Raw())
	return nil
}
