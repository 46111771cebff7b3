package ui

import (
	"fmt"
	"os"

	"github.com/fatih/color"
)

var (
	HeaderColor  = color.New(color.FgBlue, color.Bold)
	InfoColor    = color.New(color.FgCyan)
	SuccessColor = color.New(color.FgGreen)
	WarningColor = color.New(color.FgYellow)
	ErrorColor   = color.New(color.FgRed)
	PathColor    = color.New(color.FgYellow)
)

func Header(format string, a ...interface{}) {
	HeaderColor.Fprintf(os.Stderr, format+"\n", a...)
}

func Info(format string, a ...interface{}) {
	InfoColor.Fprintf(os.Stderr, format+"\n", a...)
}

func Success(format string, a ...interface{}) {
	SuccessColor.Fprintf(os.Stderr, format+"\n", a...)
}

func Warning(format string, a ...interface{}) {
	WarningColor.Fprintf(os.Stderr, format+"\n", a...)
}

func Error(format string, a ...interface{}) {
	ErrorColor.Fprintf(os.Stderr, format+"\n", a...)
}

func Path(format string, a ...interface{}) {
	PathColor.Fprintf(os.Stderr, "  "+format+"\n", a...)
}

// PrintSummary prints the result of a generation run.
func PrintSummary(created, updated, deleted, degraded []string) {
	Header("\n--- Summary ---")

	if len(created) == 0 && len(updated) == 0 && len(deleted) == 0 {
		Info("No files were touched.")
		return
	}

	printGroup := func(label string, paths []string, c *color.Color) {
		if len(paths) == 0 {
			return
		}
		c.Fprintf(os.Stderr, "%s %d file(s):\n", label, len(paths))
		for _, f := range paths {
			fmt.Fprintf(os.Stderr, "  - %s\n", f)
		}
	}
	printGroup("Created", created, SuccessColor)
	printGroup("Updated", updated, SuccessColor)
	printGroup("Deleted", deleted, SuccessColor)
	printGroup("Degraded (placeholder content)", degraded, WarningColor)
}
