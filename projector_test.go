package surveyload

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestProject(t *testing.T) {
	frame := &Frame{
		Columns: []string{"start", "end", "age_range", "gender", "unmapped_extra"},
		Rows: [][]string{
			{"2023-01-01T10:00:00", "2023-01-01T10:30:00", "18-24", "Female", "ignored"},
		},
	}

	p, err := project(context.Background(), frame, DefaultMapping())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expectedColumns := []string{"start_time", "end_time", "age_range", "gender"}
	if len(p.columns) != len(expectedColumns) {
		t.Fatalf("expected %d columns, but %d: %v", len(expectedColumns), len(p.columns), p.columns)
	}
	for i, c := range expectedColumns {
		if p.columns[i] != c {
			t.Errorf("columns[%d] should be %q, but %q", i, c, p.columns[i])
		}
	}

	if len(p.rows) != 1 {
		t.Fatalf("expected 1 row, but %d", len(p.rows))
	}

	start, ok := p.rows[0][0].(time.Time)
	if !ok {
		t.Fatalf("start_time should be time.Time, but %T", p.rows[0][0])
	}
	if !start.Equal(time.Date(2023, 1, 1, 10, 0, 0, 0, time.UTC)) {
		t.Errorf("start_time should be 2023-01-01T10:00:00, but %v", start)
	}

	end, ok := p.rows[0][1].(time.Time)
	if !ok {
		t.Fatalf("end_time should be time.Time, but %T", p.rows[0][1])
	}
	if !end.Equal(time.Date(2023, 1, 1, 10, 30, 0, 0, time.UTC)) {
		t.Errorf("end_time should be 2023-01-01T10:30:00, but %v", end)
	}

	if p.rows[0][2] != "18-24" {
		t.Errorf(`age_range should be "18-24", but %v`, p.rows[0][2])
	}
	if p.rows[0][3] != "Female" {
		t.Errorf(`gender should be "Female", but %v`, p.rows[0][3])
	}
}

func TestProject_MixedCaseDestination(t *testing.T) {
	frame := &Frame{
		Columns: []string{"met_mental_health_professional"},
		Rows:    [][]string{{"Yes"}},
	}

	p, err := project(context.Background(), frame, DefaultMapping())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p.columns[0] != "Met_mental_health_professional" {
		t.Errorf(`destination column should be "Met_mental_health_professional", but %q`, p.columns[0])
	}
}

func TestProject_NoMappedColumns(t *testing.T) {
	frame := &Frame{
		Columns: []string{"something", "else", "entirely"},
		Rows:    [][]string{{"a", "b", "c"}},
	}

	_, err := project(context.Background(), frame, DefaultMapping())
	if err == nil {
		t.Fatal("expected error but no error occurred")
	}
	if !errors.Is(err, errNoMappedColumns) {
		t.Errorf("expected errNoMappedColumns, but %v", err)
	}
}

func TestProject_UnparseableTimestampsBecomeNil(t *testing.T) {
	frame := &Frame{
		Columns: []string{"start", "end", "gender"},
		Rows: [][]string{
			{"not a timestamp", "", "Female"},
			{"2023-05-10 08:30:00", "2023-05-10", "Male"},
		},
	}

	p, err := project(context.Background(), frame, DefaultMapping())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p.rows[0][0] != nil {
		t.Errorf("unparseable start should be nil, but %v", p.rows[0][0])
	}
	if p.rows[0][1] != nil {
		t.Errorf("empty end should be nil, but %v", p.rows[0][1])
	}

	start, ok := p.rows[1][0].(time.Time)
	if !ok {
		t.Fatalf("start should be time.Time, but %T", p.rows[1][0])
	}
	if !start.Equal(time.Date(2023, 5, 10, 8, 30, 0, 0, time.UTC)) {
		t.Errorf("start should keep its point in time, but %v", start)
	}

	end, ok := p.rows[1][1].(time.Time)
	if !ok {
		t.Fatalf("end should be time.Time, but %T", p.rows[1][1])
	}
	if !end.Equal(time.Date(2023, 5, 10, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("date-only end should parse, but %v", end)
	}
}

func TestProject_ShortRowsPadWithEmpty(t *testing.T) {
	frame := &Frame{
		Columns: []string{"age_range", "gender"},
		Rows:    [][]string{{"18-24"}},
	}

	p, err := project(context.Background(), frame, DefaultMapping())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if p.rows[0][1] != "" {
		t.Errorf(`missing cell should be "", but %v`, p.rows[0][1])
	}
}

func TestDefaultMapping(t *testing.T) {
	m := DefaultMapping()

	if len(m) != 15 {
		t.Fatalf("expected 15 mapping entries, but %d", len(m))
	}

	if m[0].Source != "start" || m[0].Target != "start_time" {
		t.Errorf("first entry should map start to start_time, but %+v", m[0])
	}
	if m[len(m)-1].Target != "mental_health_support_you_need" {
		t.Errorf("last entry should target mental_health_support_you_need, but %+v", m[len(m)-1])
	}
}
