package tabular

import (
	"strings"
	"testing"
)

func TestSummarizeEmptyDataset(t *testing.T) {
	got := Summarize(Dataset{})
	if !strings.Contains(got, "0 rows x 0 columns") {
		t.Fatalf("expected empty shape report, got %q", got)
	}
	if strings.Contains(got, "Numeric summary") {
		t.Fatalf("empty dataset must not have a numeric section, got %q", got)
	}
}

func TestSummarizeNumericColumn(t *testing.T) {
	ds := Dataset{
		Columns: []string{"score"},
		Rows:    [][]string{{"10"}, {"20"}, {"30"}, {"40"}, {"50"}},
	}
	got := Summarize(ds)

	for _, want := range []string{
		"Table shape: 5 rows x 1 columns.",
		"Columns: score.",
		"- score: mean=30, min=10, max=50",
	} {
		if !strings.Contains(got, want) {
			t.Fatalf("summary missing %q:\n%s", want, got)
		}
	}
}

func TestSummarizeThreeSignificantFigures(t *testing.T) {
	ds := Dataset{
		Columns: []string{"ratio"},
		Rows:    [][]string{{"0.123456"}, {"0.654321"}},
	}
	got := Summarize(ds)
	if !strings.Contains(got, "min=0.123") || !strings.Contains(got, "max=0.654") {
		t.Fatalf("expected 3 significant figures, got %q", got)
	}
}

func TestSummarizeSkipsNonNumericColumns(t *testing.T) {
	ds := Dataset{
		Columns: []string{"city", "population"},
		Rows: [][]string{
			{"Oslo", "700000"},
			{"Bergen", "290000"},
		},
	}
	got := Summarize(ds)

	if !strings.Contains(got, "Columns: city, population.") {
		t.Fatalf("expected both columns named, got %q", got)
	}
	if strings.Contains(got, "- city:") {
		t.Fatalf("text column must not get statistics, got %q", got)
	}
	if !strings.Contains(got, "- population: mean=4.95e+05, min=2.9e+05, max=7e+05") {
		t.Fatalf("expected population stats, got %q", got)
	}
}

func TestSummarizeIgnoresMissingValues(t *testing.T) {
	ds := Dataset{
		Columns: []string{"v"},
		Rows:    [][]string{{"10"}, {""}, {"30"}},
	}
	got := Summarize(ds)
	if !strings.Contains(got, "- v: mean=20, min=10, max=30") {
		t.Fatalf("expected stats over non-missing values, got %q", got)
	}
}

func TestSummarizeKeepsNativeColumnOrder(t *testing.T) {
	ds := Dataset{
		Columns: []string{"b", "a", "c"},
		Rows:    [][]string{{"1", "2", "3"}},
	}
	got := Summarize(ds)
	if !strings.Contains(got, "Columns: b, a, c.") {
		t.Fatalf("expected native order, got %q", got)
	}
	ib := strings.Index(got, "- b:")
	ia := strings.Index(got, "- a:")
	ic := strings.Index(got, "- c:")
	if !(ib < ia && ia < ic) {
		t.Fatalf("numeric section should follow column order, got %q", got)
	}
}
