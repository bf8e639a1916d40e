// Package render formats query result cells for table display. Formatting is
// a heuristic on the column name, evaluated as an ordered rule list where the
// first matching rule wins.
package render

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Null is how SQL NULL cells are rendered.
const Null = "-"

// Formatter renders one cell value.
type Formatter func(value string) string

// Rule pairs a column-name predicate with a formatter.
type Rule struct {
	Match  func(column string) bool
	Format Formatter
	Align  Alignment
}

// Alignment controls cell padding in table output.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// nameContains returns a predicate matching columns whose lowercased name
// contains any of the given substrings.
func nameContains(substrs ...string) func(string) bool {
	return func(column string) bool {
		lower := strings.ToLower(column)
		for _, s := range substrs {
			if strings.Contains(lower, s) {
				return true
			}
		}
		return false
	}
}

// formatTimestamp normalises timestamp-like values to a compact UTC form.
// Values that do not parse are returned unchanged.
func formatTimestamp(value string) string {
	layouts := []string{
		time.RFC3339,
		"2006-01-02 15:04:05.000",
		"2006-01-02 15:04:05",
		"2006-01-02",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
				return t.UTC().Format("2006-01-02")
			}
			return t.UTC().Format("2006-01-02 15:04:05")
		}
	}
	return value
}

// formatNumber adds thousands separators to integer values. Non-integers are
// returned unchanged.
func formatNumber(value string) string {
	n, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return value
	}
	s := strconv.FormatInt(n, 10)
	neg := strings.HasPrefix(s, "-")
	if neg {
		s = s[1:]
	}
	var parts []string
	for len(s) > 3 {
		parts = append([]string{s[len(s)-3:]}, parts...)
		s = s[:len(s)-3]
	}
	parts = append([]string{s}, parts...)
	out := strings.Join(parts, ",")
	if neg {
		out = "-" + out
	}
	return out
}

// DefaultRules is the rule list applied by the CLI table writer, evaluated in
// order with first match winning.
var DefaultRules = []Rule{
	{Match: nameContains("time", "date"), Format: formatTimestamp, Align: AlignLeft},
	{Match: nameContains("count", "bytes", "total"), Format: formatNumber, Align: AlignRight},
	{Match: func(string) bool { return true }, Format: func(v string) string { return v }, Align: AlignLeft},
}

// ruleFor returns the first rule matching the column name.
func ruleFor(column string, rules []Rule) Rule {
	for _, r := range rules {
		if r.Match(column) {
			return r
		}
	}
	return Rule{Format: func(v string) string { return v }}
}

// Cell renders one nullable cell under the default rules. nil is rendered as
// Null, never as an empty string.
func Cell(column string, value *string) string {
	if value == nil {
		return Null
	}
	return ruleFor(column, DefaultRules).Format(*value)
}

// AlignFor reports the alignment for a column under the default rules.
func AlignFor(column string) Alignment {
	return ruleFor(column, DefaultRules).Align
}

// Table writes columns and pre-rendered rows as an aligned text table.
func Table(columns []string, rows [][]string) string {
	widths := make([]int, len(columns))
	for i, c := range columns {
		widths[i] = len(c)
	}
	for _, row := range rows {
		for i, cell := range row {
			if i < len(widths) && len(cell) > widths[i] {
				widths[i] = len(cell)
			}
		}
	}

	var b strings.Builder
	writeRow := func(cells []string) {
		for i, cell := range cells {
			if i > 0 {
				b.WriteString("  ")
			}
			if i < len(columns) && AlignFor(columns[i]) == AlignRight {
				fmt.Fprintf(&b, "%*s", widths[i], cell)
			} else {
				fmt.Fprintf(&b, "%-*s", widths[i], cell)
			}
		}
		b.WriteString("\n")
	}

	writeRow(columns)
	sep := make([]string, len(columns))
	for i := range sep {
		sep[i] = strings.Repeat("-", widths[i])
	}
	writeRow(sep)
	for _, row := range rows {
		writeRow(row)
	}
	return b.String()
}
