// Package cliutil renders command output as tables, key-value views or JSON.
package cliutil

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"
)

type OutputFormat string

const (
	FormatTable OutputFormat = "table"
	FormatJSON  OutputFormat = "json"
)

// ParseOutputFormat falls back to a table for anything but "json".
func ParseOutputFormat(s string) OutputFormat {
	if OutputFormat(strings.ToLower(s)) == FormatJSON {
		return FormatJSON
	}
	return FormatTable
}

// Printer writes one command's result in the selected format.
type Printer struct {
	Format OutputFormat
	W      io.Writer
}

func NewPrinter(format string, w io.Writer) *Printer {
	return &Printer{Format: ParseOutputFormat(format), W: w}
}

func (p *Printer) IsJSON() bool { return p.Format == FormatJSON }

// JSON writes v as indented JSON.
func (p *Printer) JSON(v any) error {
	enc := json.NewEncoder(p.W)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Table writes header followed by rows, one tab-aligned line each.
func (p *Printer) Table(header []string, rows [][]string) {
	tw := tabwriter.NewWriter(p.W, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, strings.Join(header, "\t"))
	for _, row := range rows {
		_, _ = fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	_ = tw.Flush()
}

// KV prints a detail view.
func (p *Printer) KV(pairs [][2]string) {
	tw := tabwriter.NewWriter(p.W, 0, 4, 2, ' ', 0)
	for _, pair := range pairs {
		_, _ = fmt.Fprintf(tw, "%s:\t%s\n", pair[0], pair[1])
	}
	_ = tw.Flush()
}

// Line prints a plain message in table mode. JSON mode stays silent so the
// output remains parseable.
func (p *Printer) Line(format string, args ...any) {
	if p.IsJSON() {
		return
	}
	_, _ = fmt.Fprintf(p.W, format+"\n", args...)
}

// ParseID parses a positive numeric id argument.
func ParseID(s, what string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil || id < 1 {
		return 0, fmt.Errorf("invalid %s id %q", what, s)
	}
	return id, nil
}

func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatCalories renders nil as "-".
func FormatCalories(v *float64) string {
	if v == nil {
		return "-"
	}
	return FormatFloat(*v)
}

func FormatBool(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// FormatTime renders t in UTC, or "-" for the zero or nil time.
func FormatTime(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "-"
	}
	return t.UTC().Format("2006-01-02 15:04:05")
}
