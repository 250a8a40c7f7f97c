// Copyright (C) 2023 Michael J. Fromberger. All Rights Reserved.

package escape

import "go4.org/mem"

var controlEsc = [...]byte{
	'\b': 'b',
	'\f': 'f',
	'\n': 'n',
	'\r': 'r',
	'\t': 't',
	' ':  ' ', // sentinel
}

var hexDigit = []byte("0123456789abcdef")

// Quote appends the JSON string encoding of the bytes in src to dst,
// including the enclosing double quotation marks, and returns the result.
//
// Each byte of src becomes exactly one character of the JSON string:
// Printable ASCII other than '"' and '\' is copied, '"' and '\' and the
// common control characters use backslash escapes, and every other byte
// (including all bytes >= 0x80) is written as \u00XX where XX is the byte
// value in hexadecimal. The output is therefore always ASCII and valid JSON,
// even if src is not valid UTF-8.
func Quote(dst []byte, src mem.RO) []byte {
	dst = append(dst, '"')
	for i := 0; i < src.Len(); i++ {
		b := src.At(i)
		switch {
		case b == '"' || b == '\\':
			dst = append(dst, '\\', b)
		case b >= ' ' && b < 0x7f:
			dst = append(dst, b)
		case b < ' ' && controlEsc[b] != 0:
			dst = append(dst, '\\', controlEsc[b])
		default:
			dst = append(dst, '\\', 'u', '0', '0', hexDigit[b>>4], hexDigit[b&15])
		}
	}
	return append(dst, '"')
}
