// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/martin/listing-hunter/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
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

// PrintCriteria outputs a human-readable summary of the search criteria.
func (p *Printer) PrintCriteria(criteria *types.Criteria) {
	if criteria == nil {
		return
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Kind:     %s\n", criteria.Kind))
	if criteria.Query != "" {
		sb.WriteString(fmt.Sprintf("Query:    %s\n", criteria.Query))
	}
	if criteria.MaxBudget != nil {
		sb.WriteString(fmt.Sprintf("Budget:   up to %.0f CZK\n", *criteria.MaxBudget))
	}
	if criteria.MinBedrooms != nil {
		sb.WriteString(fmt.Sprintf("Bedrooms: %d+\n", *criteria.MinBedrooms))
	}
	if criteria.MinSizeM2 != nil {
		sb.WriteString(fmt.Sprintf("Size:     %.0f m²+\n", *criteria.MinSizeM2))
	}
	if len(criteria.PreferredLocations) > 0 {
		locations := strings.Join(criteria.PreferredLocations, ", ")
		if len(locations) > 40 {
			locations = locations[:37] + "..."
		}
		sb.WriteString(fmt.Sprintf("Areas:    %s\n", locations))
	}
	if len(criteria.MustHaveAmenities) > 0 {
		sb.WriteString(fmt.Sprintf("Needs:    %s\n", strings.Join(criteria.MustHaveAmenities, ", ")))
	}

	p.printBox("SEARCH CRITERIA", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintListings outputs the top listings with scores and sub-scores.
func (p *Printer) PrintListings(listings []types.Listing) {
	if len(listings) == 0 {
		p.printBox("TOP LISTINGS", "No listings matched the criteria.")
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total listings: %d\n\n", len(listings)))

	count := min(len(listings), maxItemsToShow)
	for i := 0; i < count; i++ {
		l := listings[i]
		title := l.Title
		if len(title) > 45 {
			title = title[:42] + "..."
		}
		sb.WriteString(fmt.Sprintf("#%d  %s\n", i+1, title))
		if l.Scored {
			sb.WriteString(fmt.Sprintf("    Score: %.1f", l.Score))
			if len(l.SubScores) > 0 {
				parts := make([]string, 0, len(l.SubScores))
				for _, dim := range []string{"price", "size", "location", "amenities"} {
					if v, ok := l.SubScores[dim]; ok {
						parts = append(parts, fmt.Sprintf("%s %.2f", dim, v))
					}
				}
				sb.WriteString(fmt.Sprintf(" (%s)", strings.Join(parts, ", ")))
			}
			sb.WriteString("\n")
		}
		location := l.Location
		if len(location) > 40 {
			location = location[:37] + "..."
		}
		sb.WriteString(fmt.Sprintf("    %s\n", location))
		if l.Price > 0 {
			sb.WriteString(fmt.Sprintf("    %.0f CZK/month\n", l.Price))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(listings) > maxItemsToShow {
		sb.WriteString(fmt.Sprintf("\n... and %d more listings", len(listings)-maxItemsToShow))
	}

	p.printBox("TOP LISTINGS", sb.String())
}

// PrintResult outputs the run outcome with per-stage statuses.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintResult(result *types.RunResult) {
	if result == nil {
		return
	}

	var sb strings.Builder

	switch {
	case result.Success:
		sb.WriteString("✅ Run completed\n")
	case result.Cancelled:
		sb.WriteString("✖ Run cancelled\n")
	default:
		sb.WriteString(fmt.Sprintf("⚠ Run failed at stage %q\n", result.FailedStage))
	}
	sb.WriteString(fmt.Sprintf("Session: %s\n\n", result.SessionID))

	for _, status := range result.StageStatuses {
		marker := " "
		switch status.Status {
		case types.StageCompleted:
			marker = "✓"
		case types.StageFailed:
			marker = "✗"
		case types.StageCancelled:
			marker = "✖"
		case types.StageNotRun:
			marker = "–"
		}
		sb.WriteString(fmt.Sprintf("%s %-8s %s\n", marker, status.Name, status.Status))
		if status.Error != "" {
			errMsg := status.Error
			if len(errMsg) > 45 {
				errMsg = errMsg[:42] + "..."
			}
			sb.WriteString(fmt.Sprintf("  %s\n", errMsg))
		}
	}

	if result.NotificationSent {
		sb.WriteString("\nNotification delivered")
	}

	p.printBox("RUN RESULT", strings.TrimSuffix(sb.String(), "\n"))
}
