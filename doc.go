// Copyright (C) 2021 Michael J. Fromberger. All Rights Reserved.

// Package bentree implements a decoder for bencode, the serialization format
// used by BitTorrent metadata and peer protocols.
//
// # Parsing
//
// Call Parse with a byte slice containing exactly one bencoded value. Parse
// scans the input once and records the location and extent of every value
// in a flat array of tokens, without converting any values and without
// allocating per value:
//
//	doc, err := bentree.Parse(data, nil)
//	if err != nil {
//	   log.Fatalf("Parse failed: %v", err)
//	}
//	root := doc.Root()
//
// In case of error, Parse returns an error of concrete type
// *bentree.SyntaxError, which reports the byte offset of the problem and
// wraps one of the sentinel errors (ErrMalformedInteger, ErrDepthLimit, and
// so on) for use with errors.Is.
//
// The scanner does not recurse. Nesting is tracked on an explicit stack
// whose depth is bounded by Options.MaxDepth, and the total number of tokens
// is bounded by Options.MaxTokens, so that untrusted input cannot exhaust
// the stack or memory. A nil *Options selects DefaultMaxDepth and
// DefaultMaxTokens.
//
// # Nodes
//
// A Node is a lightweight view of one value in a Document. Integer and
// string values are decoded only when requested:
//
//	name, err := root.FindBytes("name")
//	size, err := root.FindInt("length")
//
// Lists and dictionaries are navigated with Item, Pair, Find and the Items
// and Pairs iterators. Each container token records the size of its subtree,
// so moving from one element to the next skips nested values in a single
// step. Accessors never panic on a value of the wrong kind; they report
// ErrTypeMismatch or ErrNotFound, or return false.
//
// A Document is immutable once Parse returns. Nodes may be copied freely
// and used concurrently from multiple goroutines.
//
// # Rendering
//
// The JSON and PrettyJSON methods render a node as JSON text. Because
// bencode strings are arbitrary bytes, each byte of a string becomes one
// character of the JSON string: printable ASCII is copied and all other
// bytes are escaped (see Quote). Unquote reverses this mapping.
//
// # Events
//
// Walk delivers the structure of a value to a Handler as a sequence of
// Begin, End, Key and Value events, in the manner of a stream parser.
package bentree
