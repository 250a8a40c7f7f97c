// Copyright (C) 2026 Michael J. Fromberger. All Rights Reserved.

// Program bencat decodes bencoded files, such as torrent metadata, and
// prints them as JSON or YAML.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/creachadair/bentree"
	"github.com/creachadair/bentree/cmd/bencat/internal/config"
	"github.com/creachadair/bentree/cmd/bencat/internal/exit"
	"github.com/creachadair/bentree/cursor"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

func main() {
	exitCode := run()
	os.Exit(exitCode)
}

func run() int {
	cfg, exitResult := config.Parse(os.Args)
	if exitResult != nil {
		exitResult.Print()
		return exitResult.ExitCode
	}
	a := &app{
		cfg:      cfg,
		log:      newLogger(os.Stderr, cfg.Verbose),
		stdout:   os.Stdout,
		stderr:   os.Stderr,
		colorOut: isTerminal(os.Stdout),
		colorErr: isTerminal(os.Stderr),
	}
	return a.run()
}

// isTerminal reports whether w is a file attached to a terminal.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

type app struct {
	cfg    *config.Config
	log    *slog.Logger
	stdout io.Writer
	stderr io.Writer

	colorOut, colorErr bool // whether to color output written to stdout, stderr
}

func (a *app) run() int {
	if a.cfg.Diff {
		return a.diff(a.cfg.Files[0], a.cfg.Files[1])
	}
	code := exit.CodeSuccess
	for _, path := range a.cfg.Files {
		if err := a.cat(path); err != nil {
			a.fail(path, err)
			code = exit.CodeFailure
		}
	}
	return code
}

// cat prints the selected value of the file at path.
func (a *app) cat(path string) error {
	n, err := a.load(path)
	if err != nil {
		return err
	}
	if a.cfg.Stats {
		s, err := collectStats(n)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.stdout, "%s: %s\n", path, s)
		return nil
	}
	text, err := render(n, a.cfg)
	if err != nil {
		return err
	}
	_, err = io.WriteString(a.stdout, text)
	return err
}

// load parses the file at path and returns the value selected by the path
// setting, or the root if there is none.
func (a *app) load(path string) (bentree.Node, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return bentree.Node{}, err
	}
	doc, err := bentree.Parse(data, a.cfg.Options())
	if err != nil {
		var serr *bentree.SyntaxError
		if errors.As(err, &serr) {
			a.log.Debug("parse failed", "file", path, "offset", serr.Offset)
		}
		return bentree.Node{}, err
	}
	a.log.Debug("parsed", "file", path, "bytes", len(data), "tokens", doc.Len())

	root := doc.Root()
	if elts := a.cfg.PathElements(); len(elts) != 0 {
		v, err := cursor.Path(root, elts...)
		if err != nil {
			return bentree.Node{}, fmt.Errorf("path %q: %w", a.cfg.Path, err)
		}
		return v, nil
	}
	return root, nil
}

// fail reports an error processing the file at path.
func (a *app) fail(path string, err error) {
	c := color.New(color.FgRed, color.Bold)
	if a.colorErr {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	c.Fprintf(a.stderr, "%s: %v\n", path, err)
}
