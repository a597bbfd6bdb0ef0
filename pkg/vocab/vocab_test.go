package vocab

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLookupTicker(t *testing.T) {
	table := Default()

	tests := []struct {
		name   string
		ticker string
		want   string
		found  bool
	}{
		{"exact match", "AAPL", "AAPL", true},
		{"lower case", "aapl", "AAPL", true},
		{"with whitespace", " MSFT ", "MSFT", true},
		{"dotted ticker", "BRK.A", "BRK.A", true},
		{"unknown", "ZZZZ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e, ok := table.LookupTicker(tt.ticker)
			if ok != tt.found {
				t.Fatalf("LookupTicker(%q) found = %v, want %v", tt.ticker, ok, tt.found)
			}
			if ok && e.Ticker != tt.want {
				t.Errorf("LookupTicker(%q) = %q, want %q", tt.ticker, e.Ticker, tt.want)
			}
		})
	}
}

func TestFindEntitiesOrderAndDedup(t *testing.T) {
	table := Default()

	got := table.FindEntities("Compare Microsoft and Apple, then Apple again")
	if len(got) != 2 {
		t.Fatalf("expected 2 entities, got %d: %v", len(got), got)
	}
	if got[0].Ticker != "MSFT" || got[1].Ticker != "AAPL" {
		t.Errorf("expected mention order [MSFT AAPL], got [%s %s]", got[0].Ticker, got[1].Ticker)
	}
}

func TestFindEntitiesWholeWord(t *testing.T) {
	table := Default()

	// "pineapple" must not match "apple"
	if got := table.FindEntities("pineapple futures"); len(got) != 0 {
		t.Errorf("expected no entities in 'pineapple futures', got %v", got)
	}

	// Ticker matches are case-sensitive standalone tokens
	if got := table.FindEntities("What did AAPL file?"); len(got) != 1 || got[0].Ticker != "AAPL" {
		t.Errorf("expected AAPL, got %v", got)
	}
}

func TestFindFactTypes(t *testing.T) {
	table := Default()

	got := table.FindFactTypes("Show 8-K and 10-Q filings")
	if len(got) != 2 {
		t.Fatalf("expected 2 fact types, got %v", got)
	}
	if got[0] != "8-K" || got[1] != "10-Q" {
		t.Errorf("expected [8-K 10-Q] in mention order, got %v", got)
	}
}

func TestKnownFactType(t *testing.T) {
	table := Default()

	if !table.KnownFactType("10-k") {
		t.Error("expected 10-k to be known case-insensitively")
	}
	if table.KnownFactType("99-Z") {
		t.Error("expected 99-Z to be unknown")
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "vocab.yaml")
	content := `entities:
  - ticker: ACME
    name: Acme Corp
    aliases: [acme]
fact_types:
  - 10-K
  - 8-K
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	table, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}

	if _, ok := table.LookupTicker("ACME"); !ok {
		t.Error("expected ACME in loaded table")
	}
	if _, ok := table.LookupTicker("AAPL"); ok {
		t.Error("expected defaults to be replaced by file contents")
	}
	if !table.KnownFactType("8-K") {
		t.Error("expected 8-K in loaded table")
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile("/nonexistent/vocab.yaml"); err == nil {
		t.Error("expected error for missing file")
	}
}
