package surveyload

import (
	"context"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/xerrors"
)

// timestampColumns are source columns reinterpreted as timestamps during
// projection.
var timestampColumns = map[string]bool{
	"start": true,
	"end":   true,
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05.000",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006/01/02 15:04:05",
	"2006-01-02",
	"2006/01/02",
}

var errNoMappedColumns = xerrors.New("none of the mapped columns are present in the export")

// projection is the persisted subset of a Frame: destination column names and
// row values in insert order. Timestamp values are time.Time, unparseable
// ones nil, everything else string.
type projection struct {
	columns []string
	rows    [][]any
}

// project selects the mapped columns present in the frame, in mapping order,
// renamed to their destination names. Mapping entries whose source column is
// absent are skipped rather than null-filled; an empty intersection is an
// error.
func project(ctx context.Context, f *Frame, mapping []ColumnRename) (*projection, error) {
	l := log.Ctx(ctx)

	index := make(map[string]int, len(f.Columns))
	for i, c := range f.Columns {
		index[c] = i
	}

	var sources []string
	p := &projection{}

	for _, m := range mapping {
		if _, ok := index[m.Source]; !ok {
			continue
		}

		sources = append(sources, m.Source)
		p.columns = append(p.columns, m.Target)
	}

	if len(p.columns) == 0 {
		return nil, errNoMappedColumns
	}

	l.Info().Strs("columns", p.columns).Msg("columns to insert")

	p.rows = make([][]any, len(f.Rows))
	for i, row := range f.Rows {
		values := make([]any, len(sources))

		for j, src := range sources {
			var raw string
			if idx := index[src]; idx < len(row) {
				raw = row[idx]
			}

			if timestampColumns[src] {
				values[j] = coerceTimestamp(raw)
				continue
			}

			values[j] = raw
		}

		p.rows[i] = values
	}

	return p, nil
}

// coerceTimestamp parses a raw export value as a timestamp. Values that do
// not parse become nil instead of aborting the run.
func coerceTimestamp(raw string) any {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil
	}

	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}

	return nil
}
