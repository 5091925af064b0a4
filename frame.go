package surveyload

import "strings"

// Frame is a parsed export: ordered column names and string-valued data rows.
// Column names are normalized; row values are kept verbatim.
type Frame struct {
	Columns []string
	Rows    [][]string
}

func newFrame(header []string, rows [][]string) *Frame {
	f := &Frame{Columns: make([]string, len(header)), Rows: rows}
	for i, c := range header {
		f.Columns[i] = NormalizeColumn(c)
	}

	return f
}

// NormalizeColumn cleans an export header into a destination-friendly column
// name: trimmed, lowercased, spaces and hyphens replaced with underscores,
// ampersands spelled out. Normalization is idempotent.
func NormalizeColumn(name string) string {
	s := strings.TrimSpace(name)
	s = strings.ToLower(s)
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, "&", "and")
	s = strings.ReplaceAll(s, "-", "_")

	return s
}
