package repl

import (
	"os"
	"sync"

	"github.com/mattn/go-isatty"

	"github.com/zepto-lang/zepto/internal/config"
)

var (
	colorOnce sync.Once
	colorOK   bool
)

// stdoutSupportsColor reports whether stdout looks like a color-capable
// terminal, honoring the NO_COLOR convention (https://no-color.org/).
func stdoutSupportsColor() bool {
	colorOnce.Do(func() {
		colorOK = detectColor()
	})
	return colorOK
}

func detectColor() bool {
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		return false
	}
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return false
	}
	if os.Getenv("TERM") == "dumb" {
		return false
	}
	return true
}

// useColor resolves a colors setting against the actual terminal.
func useColor(mode string) bool {
	switch mode {
	case config.ColorsAlways:
		return true
	case config.ColorsNever:
		return false
	default:
		return stdoutSupportsColor()
	}
}

// stdinIsTerminal reports whether the session is attached to a person
// rather than a pipe.
func stdinIsTerminal() bool {
	return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
}
