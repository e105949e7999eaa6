package main

import (
	"io"
	"os"
	"time"

	"golang.org/x/term"

	sitekit "github.com/alnah/go-sitekit"
)

// Environment holds injectable dependencies for testability.
type Environment struct {
	Now    func() time.Time
	Stdout io.Writer
	Stderr io.Writer
	Dir    string // working directory; config discovery and relative roots start here
	Color  bool   // colorize status words

	// Renderer replaces headless Chrome when set. Tests use it to build
	// PDFs without a browser.
	Renderer sitekit.Renderer
}

// DefaultEnv returns the production environment.
func DefaultEnv() *Environment {
	dir, err := os.Getwd()
	if err != nil {
		dir = "."
	}
	return &Environment{
		Now:    time.Now,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Dir:    dir,
		Color:  useColor(os.Stdout),
	}
}

// useColor enables color for terminals unless NO_COLOR is set.
func useColor(f *os.File) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return term.IsTerminal(int(f.Fd())) // #nosec G115 -- file descriptors fit in int
}

func (e *Environment) now() time.Time {
	if e.Now == nil {
		return time.Now()
	}
	return e.Now()
}

func (e *Environment) dir() string {
	if e.Dir == "" {
		return "."
	}
	return e.Dir
}
