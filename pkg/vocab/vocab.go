package vocab

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Entity is one known company in the vocabulary table.
type Entity struct {
	Ticker  string   `yaml:"ticker"`
	Name    string   `yaml:"name"`
	Aliases []string `yaml:"aliases,omitempty"`
}

// Table is the process-wide vocabulary snapshot. Immutable after load.
type Table struct {
	entities  []Entity
	byTicker  map[string]Entity
	bySurface map[string]Entity // lower-cased name and alias index
	factTypes   []string
	factTypeSet map[string]struct{}
}

type tableFile struct {
	Entities  []Entity `yaml:"entities"`
	FactTypes []string `yaml:"fact_types"`
}

// defaultEntities is the built-in snapshot of large SEC registrants used
// when no vocabulary file is configured.
var defaultEntities = []Entity{
	{Ticker: "AAPL", Name: "Apple Inc.", Aliases: []string{"apple"}},
	{Ticker: "MSFT", Name: "Microsoft Corporation", Aliases: []string{"microsoft"}},
	{Ticker: "GOOGL", Name: "Alphabet Inc.", Aliases: []string{"google", "alphabet"}},
	{Ticker: "AMZN", Name: "Amazon.com, Inc.", Aliases: []string{"amazon"}},
	{Ticker: "META", Name: "Meta Platforms, Inc.", Aliases: []string{"meta", "facebook"}},
	{Ticker: "NVDA", Name: "NVIDIA Corporation", Aliases: []string{"nvidia"}},
	{Ticker: "TSLA", Name: "Tesla, Inc.", Aliases: []string{"tesla"}},
	{Ticker: "NFLX", Name: "Netflix, Inc.", Aliases: []string{"netflix"}},
	{Ticker: "INTC", Name: "Intel Corporation", Aliases: []string{"intel"}},
	{Ticker: "IBM", Name: "International Business Machines", Aliases: []string{"ibm"}},
	{Ticker: "ORCL", Name: "Oracle Corporation", Aliases: []string{"oracle"}},
	{Ticker: "CRM", Name: "Salesforce, Inc.", Aliases: []string{"salesforce"}},
	{Ticker: "AMD", Name: "Advanced Micro Devices", Aliases: []string{"amd"}},
	{Ticker: "JPM", Name: "JPMorgan Chase & Co.", Aliases: []string{"jpmorgan", "jp morgan"}},
	{Ticker: "GS", Name: "Goldman Sachs Group", Aliases: []string{"goldman sachs", "goldman"}},
	{Ticker: "BRK.A", Name: "Berkshire Hathaway Inc.", Aliases: []string{"berkshire hathaway", "berkshire"}},
}

// defaultFactTypes is the built-in set of SEC filing type labels.
var defaultFactTypes = []string{
	"10-K", "10-Q", "8-K", "S-1", "S-4", "DEF 14A", "20-F", "6-K",
	"13F", "SC 13D", "SC 13G", "4", "11-K", "424B2",
}

// New builds a table from explicit entity and fact-type lists. Empty inputs
// fall back to the built-in defaults.
func New(entities []Entity, factTypes []string) *Table {
	if len(entities) == 0 {
		entities = defaultEntities
	}
	if len(factTypes) == 0 {
		factTypes = defaultFactTypes
	}

	t := &Table{
		entities:    entities,
		byTicker:    make(map[string]Entity, len(entities)),
		bySurface:   make(map[string]Entity),
		factTypes:   append([]string(nil), factTypes...),
		factTypeSet: make(map[string]struct{}, len(factTypes)),
	}
	for _, e := range entities {
		t.byTicker[strings.ToUpper(e.Ticker)] = e
		t.bySurface[strings.ToLower(e.Name)] = e
		for _, a := range e.Aliases {
			t.bySurface[strings.ToLower(a)] = e
		}
	}
	for _, ft := range factTypes {
		t.factTypeSet[strings.ToUpper(ft)] = struct{}{}
	}
	sort.Strings(t.factTypes)
	return t
}

// Default returns a table populated with the built-in snapshot.
func Default() *Table {
	return New(nil, nil)
}

// LoadFile reads a vocabulary table from a YAML file.
func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read vocabulary file: %w", err)
	}
	var f tableFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse vocabulary file: %w", err)
	}
	return New(f.Entities, f.FactTypes), nil
}

// LookupTicker resolves an exact ticker symbol, case-insensitively.
func (t *Table) LookupTicker(ticker string) (Entity, bool) {
	e, ok := t.byTicker[strings.ToUpper(strings.TrimSpace(ticker))]
	return e, ok
}

// LookupSurface resolves a company name or alias, case-insensitively.
// Falls back to a prefix match so "Apple's" still resolves to AAPL.
func (t *Table) LookupSurface(surface string) (Entity, bool) {
	s := strings.ToLower(strings.TrimSpace(surface))
	if e, ok := t.bySurface[s]; ok {
		return e, true
	}
	for key, e := range t.bySurface {
		if strings.HasPrefix(s, key) || strings.HasPrefix(key, s) {
			if len(s) >= 3 {
				return e, true
			}
		}
	}
	return Entity{}, false
}

// FindEntities scans free text for every vocabulary entity it mentions,
// in order of first appearance. Tickers match as standalone upper-case
// tokens; names and aliases match case-insensitively.
func (t *Table) FindEntities(text string) []Entity {
	lower := strings.ToLower(text)
	type hit struct {
		pos int
		e   Entity
	}
	var hits []hit
	seen := make(map[string]struct{})

	add := func(pos int, e Entity) {
		if _, dup := seen[e.Ticker]; dup {
			return
		}
		seen[e.Ticker] = struct{}{}
		hits = append(hits, hit{pos: pos, e: e})
	}

	for surface, e := range t.bySurface {
		if idx := indexWord(lower, surface); idx >= 0 {
			add(idx, e)
		}
	}
	// Tickers are matched against the original text to keep "Meta" (name)
	// and "META" (ticker) distinguishable.
	for ticker, e := range t.byTicker {
		if idx := indexWord(text, ticker); idx >= 0 {
			add(idx, e)
		}
	}

	sort.Slice(hits, func(i, j int) bool { return hits[i].pos < hits[j].pos })
	out := make([]Entity, len(hits))
	for i, h := range hits {
		out[i] = h.e
	}
	return out
}

// FindFactTypes scans free text for known fact-type labels, in order of
// first appearance.
func (t *Table) FindFactTypes(text string) []string {
	upper := strings.ToUpper(text)
	type hit struct {
		pos   int
		label string
	}
	var hits []hit
	for _, ft := range t.factTypes {
		if len(ft) < 2 {
			continue // single-character labels like "4" are too ambiguous in prose
		}
		if idx := indexWord(upper, strings.ToUpper(ft)); idx >= 0 {
			hits = append(hits, hit{pos: idx, label: ft})
		}
	}
	sort.Slice(hits, func(i, j int) bool { return hits[i].pos < hits[j].pos })
	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = h.label
	}
	return out
}

// KnownFactType reports whether the label is in the table.
func (t *Table) KnownFactType(label string) bool {
	_, ok := t.factTypeSet[strings.ToUpper(strings.TrimSpace(label))]
	return ok
}

// KnownTicker reports whether the ticker is in the table.
func (t *Table) KnownTicker(ticker string) bool {
	_, ok := t.byTicker[strings.ToUpper(strings.TrimSpace(ticker))]
	return ok
}

// Entities returns the entity list in table order.
func (t *Table) Entities() []Entity {
	return append([]Entity(nil), t.entities...)
}

// FactTypes returns the sorted fact-type labels.
func (t *Table) FactTypes() []string {
	return append([]string(nil), t.factTypes...)
}

// indexWord returns the index of needle in haystack when it appears as a
// whole word (not embedded in a longer alphanumeric token), or -1.
func indexWord(haystack, needle string) int {
	if needle == "" {
		return -1
	}
	from := 0
	for {
		idx := strings.Index(haystack[from:], needle)
		if idx < 0 {
			return -1
		}
		idx += from
		before := idx - 1
		after := idx + len(needle)
		leftOK := before < 0 || !isWordChar(haystack[before])
		rightOK := after >= len(haystack) || !isWordChar(haystack[after])
		if leftOK && rightOK {
			return idx
		}
		from = idx + 1
		if from >= len(haystack) {
			return -1
		}
	}
}

func isWordChar(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9'
}
