// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

package bentree

import (
	"errors"
	"strings"

	"github.com/creachadair/bentree/internal/escape"

	"go4.org/mem"
)

// Quote encodes src as a JSON string value, using the same escaping policy
// as the JSON rendering of String nodes: printable ASCII is copied, and any
// other byte is escaped so that each byte of src yields exactly one
// character of the result.
func Quote(src []byte) string { return string(escape.Quote(nil, mem.B(src))) }

// Unquote decodes a JSON string value produced by Quote, recovering the
// original bytes. Double quotation marks are removed, and escape sequences
// are replaced with the bytes they denote.
//
// Unquote reports an error for an incomplete or invalid escape sequence, or
// for a \u escape whose value exceeds 0xff.
func Unquote(src string) ([]byte, error) {
	if len(src) < 2 || !strings.HasPrefix(src, `"`) || !strings.HasSuffix(src, `"`) {
		return nil, errors.New("missing quotations")
	}
	return escape.Unquote(mem.S(src[1 : len(src)-1]))
}
