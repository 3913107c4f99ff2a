package main

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-isatty"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"faultline/internal/catalog"
	"faultline/internal/rupture"
)

const (
	ansiReset  = "\x1b[0m"
	ansiRed    = "\x1b[31m"
	ansiGreen  = "\x1b[32m"
	ansiYellow = "\x1b[33m"
)

func shouldColorize(writer io.Writer) bool {
	file, ok := writer.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func colorize(text, color string, enabled bool) string {
	if !enabled || color == "" {
		return text
	}
	return color + text + ansiReset
}

func outcomeLabel(outcome catalog.Outcome, enabled bool) string {
	switch outcome {
	case catalog.OutcomeOK:
		return colorize("OK", ansiGreen, enabled)
	case catalog.OutcomeFailed:
		return colorize("FAILED", ansiRed, enabled)
	default:
		return colorize(strings.ToUpper(string(outcome)), ansiYellow, enabled)
	}
}

// kindLabel turns "simple_fault" into "Simple Fault".
func kindLabel(kind rupture.Kind) string {
	if kind == "" {
		return "-"
	}
	return cases.Title(language.English).String(strings.ReplaceAll(string(kind), "_", " "))
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatOptional(v *float64) string {
	if v == nil {
		return "-"
	}
	return formatFloat(*v)
}

func orDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}
