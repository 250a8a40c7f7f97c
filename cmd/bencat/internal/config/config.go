// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Package config parses the command-line configuration of bencat.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/creachadair/bentree"
	"github.com/creachadair/bentree/cmd/bencat/internal/exit"
	"github.com/goccy/go-yaml"
)

// Output formats.
const (
	FormatJSON = "json"
	FormatYAML = "yaml"
)

var (
	ErrNoArguments   = errors.New("no arguments provided")
	ErrNoInputFiles  = errors.New("no input files specified")
	ErrInvalidFormat = errors.New("format must be json or yaml")
	ErrDiffArgs      = errors.New("-diff requires exactly two input files")
	ErrDiffStats     = errors.New("-diff and -stats cannot be combined")
	ErrNegativeLimit = errors.New("limits must not be negative")
)

// Config represents the complete configuration for the bencat tool.
type Config struct {
	Files []string

	// Output
	Pretty bool
	Format string
	Path   string // slash-separated cursor path, applied before Query
	Query  string // JSONPath expression over the JSON rendering
	Diff   bool
	Stats  bool

	// Decoder limits, see bentree.Options
	MaxDepth   int
	MaxTokens  int
	StrictKeys bool

	ConfigFile string
	Verbose    bool
}

// fileConfig is the schema of a YAML configuration file. Pointer fields
// distinguish an absent setting from a zero value.
type fileConfig struct {
	Pretty     *bool  `yaml:"pretty"`
	Format     string `yaml:"format"`
	MaxDepth   *int   `yaml:"max-depth"`
	MaxTokens  *int   `yaml:"max-tokens"`
	StrictKeys *bool  `yaml:"strict-keys"`
	Verbose    *bool  `yaml:"verbose"`
}

// Options returns the decoder options selected by c.
func (c *Config) Options() *bentree.Options {
	return &bentree.Options{
		MaxDepth:   c.MaxDepth,
		MaxTokens:  c.MaxTokens,
		StrictKeys: c.StrictKeys,
	}
}

// PathElements splits the Path setting into cursor path elements. A segment
// that parses as a decimal integer is an index; any other segment is a
// dictionary key. A segment enclosed in double quotes is always a key with the
// quotes removed, so "0" selects the key 0 rather than the first element.
// Empty segments are ignored.
func (c *Config) PathElements() []any {
	var out []any
	for seg := range strings.SplitSeq(c.Path, "/") {
		if seg == "" {
			continue
		}
		if len(seg) >= 2 && seg[0] == '"' && seg[len(seg)-1] == '"' {
			out = append(out, seg[1:len(seg)-1])
		} else if n, err := strconv.Atoi(seg); err == nil {
			out = append(out, n)
		} else {
			out = append(out, seg)
		}
	}
	return out
}

// Validate validates the configuration and returns an error if invalid.
func (c *Config) Validate() error {
	if len(c.Files) == 0 {
		return ErrNoInputFiles
	}
	if c.Format != FormatJSON && c.Format != FormatYAML {
		return fmt.Errorf("%w, got: %s", ErrInvalidFormat, c.Format)
	}
	if c.Diff && len(c.Files) != 2 {
		return ErrDiffArgs
	}
	if c.Diff && c.Stats {
		return ErrDiffStats
	}
	if c.MaxDepth < 0 || c.MaxTokens < 0 {
		return ErrNegativeLimit
	}
	return nil
}

// Parse parses command-line arguments and returns a validated Config.
// If parsing fails or help is requested, returns nil config and exit result.
func Parse(args []string) (*Config, *exit.Result) {
	if len(args) == 0 {
		return nil, exit.Usagef("Error: %v\n\n%s", ErrNoArguments, Usage())
	}

	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.Usage = func() {}
	fs.SetOutput(io.Discard)

	cfg := &Config{Pretty: true, Format: FormatJSON}
	fs.BoolVar(&cfg.Pretty, "pretty", cfg.Pretty, "Render indented JSON")
	fs.StringVar(&cfg.Format, "format", cfg.Format, "Output format (json or yaml)")
	fs.StringVar(&cfg.Path, "path", "", "Select a value by slash-separated path")
	fs.StringVar(&cfg.Query, "query", "", "Select values by JSONPath expression")
	fs.BoolVar(&cfg.Diff, "diff", false, "Compare the renderings of two files")
	fs.BoolVar(&cfg.Stats, "stats", false, "Print value counts instead of the value")
	fs.IntVar(&cfg.MaxDepth, "max-depth", 0, "Maximum nesting depth (0 for the default)")
	fs.IntVar(&cfg.MaxTokens, "max-tokens", 0, "Maximum number of tokens (0 for the default)")
	fs.BoolVar(&cfg.StrictKeys, "strict-keys", false, "Require sorted, unique dictionary keys")
	fs.StringVar(&cfg.ConfigFile, "config", "", "Path to YAML configuration file")
	fs.BoolVar(&cfg.Verbose, "v", false, "Enable debug logging")

	if err := fs.Parse(args[1:]); err != nil {
		if err == flag.ErrHelp {
			return nil, exit.Success(Usage())
		}
		return nil, exit.Usagef("Error: failed to parse arguments: %v\n\n%s", err, Usage())
	}
	cfg.Files = fs.Args()

	// Settings from the file apply unless the same flag was given.
	if cfg.ConfigFile != "" {
		fc, err := loadConfigFile(cfg.ConfigFile)
		if err != nil {
			return nil, exit.Errorf("Error: failed to load config file: %v\n", err)
		}
		set := make(map[string]bool)
		fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
		fc.apply(cfg, set)
	}

	if err := cfg.Validate(); err != nil {
		return nil, exit.Usagef("Error: %v\n\n%s", err, Usage())
	}
	return cfg, nil
}

func (fc *fileConfig) apply(cfg *Config, set map[string]bool) {
	if fc.Pretty != nil && !set["pretty"] {
		cfg.Pretty = *fc.Pretty
	}
	if fc.Format != "" && !set["format"] {
		cfg.Format = fc.Format
	}
	if fc.MaxDepth != nil && !set["max-depth"] {
		cfg.MaxDepth = *fc.MaxDepth
	}
	if fc.MaxTokens != nil && !set["max-tokens"] {
		cfg.MaxTokens = *fc.MaxTokens
	}
	if fc.StrictKeys != nil && !set["strict-keys"] {
		cfg.StrictKeys = *fc.StrictKeys
	}
	if fc.Verbose != nil && !set["v"] {
		cfg.Verbose = *fc.Verbose
	}
}

// loadConfigFile reads a YAML configuration file. Unknown fields are
// rejected.
func loadConfigFile(filename string) (*fileConfig, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	var fc fileConfig
	if err := yaml.UnmarshalWithOptions(data, &fc, yaml.Strict(), yaml.DisallowUnknownField()); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", filename, err)
	}
	return &fc, nil
}

// Usage returns a usage string for the CLI tool.
func Usage() string {
	return `bencat - print bencoded files as JSON

Usage: bencat [options] <file1> [file2] ...

Options:
  -pretty                 Render indented JSON (default true; use -pretty=false)
  -format FORMAT          Output format: json or yaml (default: json)
  -path PATH              Select a value by path, e.g. info/files/0/length
                          (quote a segment to use it as a key, e.g. info/"0")
  -query EXPR             Select values by JSONPath expression, e.g. $.info.name
  -diff                   Compare the renderings of exactly two files
  -stats                  Print value counts instead of the value
  -max-depth N            Maximum nesting depth (default: 100)
  -max-tokens N           Maximum number of tokens (default: 1000000)
  -strict-keys            Require sorted, unique dictionary keys
  -config FILE            Path to YAML file providing default settings
  -v                      Enable debug logging
  -h, -help               Show this help message

Examples:
  bencat a.torrent                       # Print a torrent as JSON
  bencat -path info/name a.torrent       # Print the name of a torrent
  bencat -query '$.info.files[*].length' a.torrent
  bencat -format yaml a.torrent          # Print a torrent as YAML
  bencat -diff a.torrent b.torrent       # Show differences between two files`
}
