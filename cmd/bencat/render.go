// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/creachadair/bentree"
	"github.com/creachadair/bentree/cmd/bencat/internal/config"
	"github.com/goccy/go-yaml"
	"github.com/theory/jsonpath"
)

// render formats n as selected by cfg. The result ends with a newline.
func render(n bentree.Node, cfg *config.Config) (string, error) {
	var text string
	var err error
	switch {
	case cfg.Query != "":
		text, err = query(n, cfg.Query, cfg.Pretty)
	case cfg.Pretty:
		text, err = n.PrettyJSON()
	default:
		text = n.JSON()
	}
	if err != nil {
		return "", err
	}
	if cfg.Format == config.FormatYAML {
		out, err := yaml.JSONToYAML([]byte(text))
		if err != nil {
			return "", fmt.Errorf("converting to YAML: %w", err)
		}
		text = string(out)
	}
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	return text, nil
}

// query evaluates the JSONPath expression expr against the JSON rendering
// of n, and returns a JSON array of the selected values.
func query(n bentree.Node, expr string, pretty bool) (string, error) {
	path, err := jsonpath.Parse(expr)
	if err != nil {
		return "", fmt.Errorf("invalid JSONPath %s: %w", expr, err)
	}

	// Decode numbers as json.Number so that integers outside the range of
	// float64 are preserved.
	dec := json.NewDecoder(bytes.NewReader(n.AppendJSON(nil)))
	dec.UseNumber()
	var data any
	if err := dec.Decode(&data); err != nil {
		return "", fmt.Errorf("decoding JSON: %w", err)
	}

	results := path.Select(data)
	items := make([]any, 0, len(results))
	for _, r := range results {
		items = append(items, r)
	}
	var out []byte
	if pretty {
		out, err = json.MarshalIndent(items, "", "\t")
	} else {
		out, err = json.Marshal(items)
	}
	if err != nil {
		return "", err
	}
	return string(out), nil
}
