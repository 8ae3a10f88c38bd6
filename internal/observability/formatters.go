// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/formfill-agent/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 10
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if len(line) > boxWidth-4 {
			line = line[:boxWidth-7] + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// PrintDetectResult outputs a human-readable summary of discovered fields.
func (p *Printer) PrintDetectResult(result types.DetectResult) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Fields found: %d\n\n", result.Count))

	count := min(len(result.Fields), maxItemsToShow)
	for i := 0; i < count; i++ {
		f := result.Fields[i]
		label := f.Label
		if label == "" {
			label = "(no label)"
		}
		if len(label) > 40 {
			label = label[:37] + "..."
		}
		sb.WriteString(fmt.Sprintf("• %s\n", label))
		sb.WriteString(fmt.Sprintf("  [%s]", f.Type))
		if f.Required {
			sb.WriteString(" required")
		}
		sb.WriteString("\n")
	}
	if len(result.Fields) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more fields", len(result.Fields)-maxItemsToShow))
	}

	p.printBox("DETECTED FIELDS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintFillReport outputs the result of a fill pass.
func (p *Printer) PrintFillReport(report *types.FillReport) {
	if report == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Filled:   %d of %d fields\n", report.Filled, report.Total))

	if len(report.Errors) > 0 {
		sb.WriteString(fmt.Sprintf("\nErrors (%d):\n", len(report.Errors)))
		count := min(len(report.Errors), maxItemsToShow)
		for i := 0; i < count; i++ {
			msg := report.Errors[i]
			if len(msg) > 50 {
				msg = msg[:47] + "..."
			}
			sb.WriteString(fmt.Sprintf("⚠ %s\n", msg))
		}
		if len(report.Errors) > maxItemsToShow {
			sb.WriteString(fmt.Sprintf("... and %d more\n", len(report.Errors)-maxItemsToShow))
		}
	}

	if len(report.Suggestions) > 0 {
		sb.WriteString(fmt.Sprintf("\nSuggested profile updates (%d):\n", len(report.Suggestions)))
		count := min(len(report.Suggestions), maxItemsToShow)
		for i := 0; i < count; i++ {
			s := report.Suggestions[i]
			value := s.Value
			if len(value) > 30 {
				value = value[:27] + "..."
			}
			sb.WriteString(fmt.Sprintf("• %s = %s\n", s.Key, value))
		}
	}

	if report.Message != "" {
		sb.WriteString("\n" + report.Message + "\n")
	}

	p.printBox("FILL REPORT", strings.TrimSuffix(sb.String(), "\n"))
}
