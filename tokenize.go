// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package bentree

import (
	"bytes"
	"math"
)

// Default resource limits applied when Options does not specify them.
const (
	DefaultMaxDepth  = 100
	DefaultMaxTokens = 1_000_000
)

// Options control the behavior of Tokenize and Parse. A nil *Options is
// ready for use and selects the defaults.
type Options struct {
	// MaxDepth bounds the nesting of lists and dictionaries. A value at depth
	// MaxDepth is accepted; one more level is rejected with ErrDepthLimit.
	// If zero or negative, DefaultMaxDepth is used.
	MaxDepth int

	// MaxTokens bounds the total number of tokens, including the end markers
	// of containers. If zero or negative, DefaultMaxTokens is used.
	MaxTokens int

	// StrictKeys, if true, requires the keys of each dictionary to be in
	// strictly ascending order by their raw bytes. This rejects both unsorted
	// and duplicate keys with ErrUnsortedKeys.
	StrictKeys bool
}

func (o *Options) maxDepth() int {
	if o == nil || o.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return o.MaxDepth
}

func (o *Options) maxTokens() int {
	if o == nil || o.MaxTokens <= 0 {
		return DefaultMaxTokens
	}
	return o.MaxTokens
}

func (o *Options) strictKeys() bool { return o != nil && o.StrictKeys }

// Tokenize scans data, which must contain exactly one bencoded value, and
// returns its tokens in document order. In case of error, no tokens are
// returned and the error has concrete type *SyntaxError.
//
// Tokenize does not recurse: nesting is tracked on an explicit stack whose
// size is bounded by the MaxDepth option.
func Tokenize(data []byte, opts *Options) ([]Token, error) {
	if len(data) > math.MaxInt32 {
		return nil, syntaxError(0, ErrInputTooLarge, "%d bytes", len(data))
	}
	t := &tokenizer{
		data:   data,
		depth:  opts.maxDepth(),
		limit:  opts.maxTokens(),
		strict: opts.strictKeys(),
	}
	if err := t.run(); err != nil {
		return nil, err
	}
	return t.toks, nil
}

// A frame records the state of an open container.
type frame struct {
	tok  int32 // index of the container token
	n    int32 // number of complete children so far
	key  bool  // for a dictionary, whether a key is expected next
	prev int32 // for a dictionary, index of the most recent key token, or -1
}

type tokenizer struct {
	data []byte
	pos  int
	toks []Token
	stk  []frame

	depth, limit int
	strict       bool
}

func (t *tokenizer) run() error {
	if len(t.data) == 0 {
		return syntaxError(0, ErrUnexpectedToken, "empty input")
	}
	for {
		if t.pos >= len(t.data) {
			return syntaxError(t.pos, ErrUnterminated, "%d open at end of input", len(t.stk))
		}
		if err := t.step(); err != nil {
			return err
		}
		if len(t.stk) == 0 {
			break // the top-level value is complete
		}
	}
	if t.pos < len(t.data) {
		return syntaxError(t.pos, ErrTrailingData, "%d bytes", len(t.data)-t.pos)
	}
	return nil
}

// step consumes a single token at the current position.
func (t *tokenizer) step() error {
	ch := t.data[t.pos]
	if ch == 'e' {
		return t.close()
	}
	if top := t.top(); top != nil && top.key && !isDigit(ch) {
		return syntaxError(t.pos, ErrUnexpectedToken, "got %q, want dictionary key", ch)
	}
	switch {
	case ch == 'i':
		return t.scanInteger()
	case isDigit(ch):
		return t.scanString()
	case ch == 'l':
		return t.open(List)
	case ch == 'd':
		return t.open(Dict)
	default:
		return syntaxError(t.pos, ErrUnexpectedToken, "invalid %q", ch)
	}
}

func (t *tokenizer) top() *frame {
	if n := len(t.stk); n > 0 {
		return &t.stk[n-1]
	}
	return nil
}

// emit appends tok to the token array, subject to the token limit.
func (t *tokenizer) emit(tok Token) error {
	if len(t.toks) >= t.limit {
		return syntaxError(int(tok.HeaderPos), ErrTokenLimit, "limit is %d", t.limit)
	}
	t.toks = append(t.toks, tok)
	return nil
}

// complete records that a child value of the innermost container is done.
func (t *tokenizer) complete() {
	if top := t.top(); top != nil {
		top.n++
		if t.toks[top.tok].Kind == Dict {
			top.key = !top.key
		}
	}
}

func (t *tokenizer) open(kind Kind) error {
	if len(t.stk) >= t.depth {
		return syntaxError(t.pos, ErrDepthLimit, "limit is %d", t.depth)
	}
	idx := int32(len(t.toks))
	pos := int32(t.pos)
	if err := t.emit(Token{
		Kind:       kind,
		HeaderPos:  pos,
		HeaderLen:  1,
		PayloadPos: pos + 1,
	}); err != nil {
		return err
	}
	t.stk = append(t.stk, frame{tok: idx, key: kind == Dict, prev: -1})
	t.pos++
	return nil
}

func (t *tokenizer) close() error {
	top := t.top()
	if top == nil {
		return syntaxError(t.pos, ErrUnmatchedEnd, "")
	}
	c := &t.toks[top.tok]
	if c.Kind == Dict && !top.key {
		return syntaxError(t.pos, ErrUnexpectedToken, "missing value for dictionary key")
	}
	pos := int32(t.pos)
	if err := t.emit(Token{Kind: End, HeaderPos: pos, HeaderLen: 1, PayloadPos: pos + 1}); err != nil {
		return err
	}

	// Backfill the container now that its extent is known. Re-fetch the token
	// since emit may have moved the array.
	c = &t.toks[top.tok]
	c.Extent = int32(len(t.toks)-1) - top.tok
	if c.Kind == Dict {
		c.Count = top.n / 2
	} else {
		c.Count = top.n
	}
	t.stk = t.stk[:len(t.stk)-1]
	t.pos++
	t.complete()
	return nil
}

// scanInteger consumes an integer of the form i<digits>e.
// Precondition: t.data[t.pos] == 'i'.
func (t *tokenizer) scanInteger() error {
	start := t.pos
	p := start + 1
	neg := p < len(t.data) && t.data[p] == '-'
	if neg {
		p++
	}
	d := p
	for p < len(t.data) && isDigit(t.data[p]) {
		p++
	}
	digits := t.data[d:p]

	if p >= len(t.data) {
		return syntaxError(p, ErrMalformedInteger, "missing terminator")
	} else if t.data[p] != 'e' {
		return syntaxError(p, ErrMalformedInteger, "unexpected %q", t.data[p])
	} else if len(digits) == 0 {
		return syntaxError(d, ErrMalformedInteger, "no digits")
	} else if hasExtraLeadingZeroes(digits) {
		return syntaxError(d, ErrMalformedInteger, "extra leading zeroes")
	} else if neg && digits[0] == '0' {
		return syntaxError(start+1, ErrMalformedInteger, "negative zero")
	} else if !fitsInt64(digits, neg) {
		return syntaxError(d, ErrMalformedInteger, "value out of range")
	}

	if err := t.emit(Token{
		Kind:       Integer,
		HeaderPos:  int32(start),
		HeaderLen:  1,
		PayloadPos: int32(start + 1),
		PayloadLen: int32(p - start - 1),
	}); err != nil {
		return err
	}
	t.pos = p + 1
	t.complete()
	return nil
}

// scanString consumes a byte string of the form <length>:<bytes>.
// Precondition: t.data[t.pos] is a digit.
func (t *tokenizer) scanString() error {
	start := t.pos
	p := start
	var n int64
	for p < len(t.data) && isDigit(t.data[p]) {
		n = n*10 + int64(t.data[p]-'0')
		if n > math.MaxInt32 {
			return syntaxError(start, ErrMalformedString, "length out of range")
		}
		p++
	}
	if p >= len(t.data) {
		return syntaxError(p, ErrMalformedString, "missing separator")
	} else if t.data[p] != ':' {
		return syntaxError(p, ErrMalformedString, "got %q, want ':'", t.data[p])
	} else if hasExtraLeadingZeroes(t.data[start:p]) {
		return syntaxError(start, ErrMalformedString, "extra leading zeroes in length")
	}
	p++ // skip separator
	if rem := int64(len(t.data) - p); n > rem {
		return syntaxError(p, ErrMalformedString, "want %d bytes, have %d", n, rem)
	}

	idx := int32(len(t.toks))
	if err := t.emit(Token{
		Kind:       String,
		HeaderPos:  int32(start),
		HeaderLen:  int32(p - start),
		PayloadPos: int32(p),
		PayloadLen: int32(n),
	}); err != nil {
		return err
	}
	if top := t.top(); top != nil && top.key && t.strict {
		if top.prev >= 0 && !t.keyLess(top.prev, idx) {
			return syntaxError(start, ErrUnsortedKeys, "key %q", t.payload(idx))
		}
		top.prev = idx
	}
	t.pos = p + int(n)
	t.complete()
	return nil
}

func (t *tokenizer) payload(i int32) []byte {
	tok := t.toks[i]
	return t.data[tok.PayloadPos : tok.PayloadPos+tok.PayloadLen]
}

// keyLess reports whether the key at token a orders strictly before the key
// at token b.
func (t *tokenizer) keyLess(a, b int32) bool {
	return bytes.Compare(t.payload(a), t.payload(b)) < 0
}

func isDigit(ch byte) bool { return '0' <= ch && ch <= '9' }

// hasExtraLeadingZeroes reports whether the unsigned digit string in buf has
// redundant leading zeroes. A single "0" is OK; "00" and "01" are not.
func hasExtraLeadingZeroes(buf []byte) bool {
	return len(buf) > 1 && buf[0] == '0'
}

const (
	maxInt64Digits = "9223372036854775807"
	minInt64Digits = "9223372036854775808" // magnitude of math.MinInt64
)

// fitsInt64 reports whether the decimal digit string in buf, with the given
// sign, is within the range of int64. The digits must not have extra leading
// zeroes.
func fitsInt64(buf []byte, neg bool) bool {
	lim := maxInt64Digits
	if neg {
		lim = minInt64Digits
	}
	if len(buf) != len(lim) {
		return len(buf) < len(lim)
	}
	return string(buf) <= lim
}
