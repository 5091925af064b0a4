package surveyload

import (
	"context"
	"encoding/csv"
	"io"

	"github.com/extrame/xls"
	"github.com/rs/zerolog/log"
	"gitlab.com/osaki-lab/iowrapper"
	"golang.org/x/xerrors"
)

// Parser parses a fetched export body into a Frame. The first record is the
// header row.
type Parser func(context.Context, io.Reader) (*Frame, error)

// CSVParser returns a Parser for delimiter-separated exports. Data rows that
// do not parse under the declared delimiter are skipped.
func CSVParser(comma rune) Parser {
	return func(ctx context.Context, r io.Reader) (*Frame, error) {
		l := log.Ctx(ctx)

		cr := csv.NewReader(r)
		cr.Comma = comma

		header, err := cr.Read()
		if err == io.EOF {
			return nil, xerrors.New("empty export: no header row")
		}
		if err != nil {
			return nil, xerrors.Errorf("failed to read header row: %w", err)
		}

		rows := [][]string{}
		skipped := 0

		for {
			record, err := cr.Read()
			if err == io.EOF {
				break
			}
			if err != nil {
				skipped++
				continue
			}

			rows = append(rows, record)
		}

		if skipped > 0 {
			l.Warn().Int("rows", skipped).Msg("skipped rows that did not parse")
		}

		return newFrame(header, rows), nil
	}
}

// XLSParser returns a Parser for XLS workbook exports, reading the sheet at
// the given index. The destination endpoint serves CSV by default; XLS covers
// export settings configured for workbook output.
func XLSParser(sheet int) Parser {
	getRow := func(ws *xls.WorkSheet, i int) (r *xls.Row, ok bool) {
		defer func() { recover() }()

		r = nil
		ok = false

		return ws.Row(i), true
	}

	return func(_ context.Context, r io.Reader) (*Frame, error) {
		wb, err := xls.OpenReader(iowrapper.NewSeeker(r), "utf-8")
		if err != nil {
			return nil, xerrors.Errorf("failed to open xls workbook: %w", err)
		}

		ws := wb.GetSheet(sheet)
		if ws == nil {
			return nil, xerrors.Errorf("xls workbook has no sheet %d", sheet)
		}

		var header []string
		rows := [][]string{}

		for i := 0; i <= int(ws.MaxRow); i++ {
			row, ok := getRow(ws, i)
			if !ok || row == nil {
				continue
			}

			record := []string{}
			for c := row.FirstCol(); c < row.LastCol(); c++ {
				record = append(record, row.Col(c))
			}

			if header == nil {
				header = record
				continue
			}

			rows = append(rows, record)
		}

		if header == nil {
			return nil, xerrors.New("empty export: no header row")
		}

		return newFrame(header, rows), nil
	}
}
