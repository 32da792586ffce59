// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/jonathan/dev-portfolio/internal/resume"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for human-readable summaries
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// fit pads or truncates s to exactly width terminal cells.
func fit(s string, width int) string {
	return runewidth.FillRight(runewidth.Truncate(s, width, "..."), width)
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", fit(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", fit(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// writeList writes up to limit items under heading, noting how many were left out.
func writeList(sb *strings.Builder, heading string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(heading + ":\n")
	count := min(len(items), limit)
	for i := 0; i < count; i++ {
		sb.WriteString(fmt.Sprintf("  • %s\n", items[i]))
	}
	if len(items) > limit {
		sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(items)-limit))
	}
	sb.WriteString("\n")
}

// PrintResume outputs a human-readable summary of the parsed resume.
func (p *Printer) PrintResume(doc *resume.Document) {
	if doc == nil {
		return
	}

	var sb strings.Builder
	c := doc.Candidate
	for _, field := range [][2]string{
		{"Name", c.Name},
		{"Email", c.Email},
		{"Phone", c.Phone},
		{"GitHub", c.GithubURL},
		{"LinkedIn", c.LinkedinURL},
	} {
		if field[1] != "" {
			sb.WriteString(fmt.Sprintf("%-9s %s\n", field[0]+":", field[1]))
		}
	}
	sb.WriteString("\n")

	experience := make([]string, 0, len(doc.Experience))
	for _, e := range doc.Experience {
		line := e.Title
		if e.Company != "" {
			line += " @ " + e.Company
		}
		if span := dateSpan(e.StartDate, e.EndDate); span != "" {
			line += " (" + span + ")"
		}
		experience = append(experience, line)
	}
	writeList(&sb, "Experience", experience, maxItemsToShow)

	education := make([]string, 0, len(doc.Education))
	for _, e := range doc.Education {
		line := e.Course
		if e.Institution != "" {
			line += ", " + e.Institution
		}
		if e.GraduationDate != "" {
			line += " (" + e.GraduationDate + ")"
		}
		education = append(education, line)
	}
	writeList(&sb, "Education", education, 3)

	if len(doc.Skills) > 0 {
		sb.WriteString(fmt.Sprintf("Skills: %s\n", strings.Join(doc.Skills, ", ")))
	}

	p.printBox("RESUME", strings.TrimRight(sb.String(), "\n"))
}

func dateSpan(start, end string) string {
	switch {
	case start == "" && end == "":
		return ""
	case end == "":
		return start + " – present"
	case start == "":
		return "until " + end
	default:
		return start + " – " + end
	}
}
