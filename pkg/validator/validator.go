// Package validator enforces the structural invariants every generated
// query must satisfy before execution: required return fields for the
// intent, a bounded row-limit clause, and vocabulary-checked literals.
// Violations are repaired when the fix cannot change answer semantics
// (missing limit) and rejected when it could (missing return fields).
package validator

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/yatender-oktalk/OpenDeepSearch-sub000/pkg/intent"
	"github.com/yatender-oktalk/OpenDeepSearch-sub000/pkg/types"
	"github.com/yatender-oktalk/OpenDeepSearch-sub000/pkg/vocab"
)

var (
	limitRe  = regexp.MustCompile(`(?i)\bLIMIT\s+(\d+)\b`)
	aliasRe  = regexp.MustCompile(`(?i)\bAS\s+([A-Za-z_][A-Za-z0-9_]*)`)
	returnRe = regexp.MustCompile(`(?is)\bRETURN\b(.*?)(\bORDER\s+BY\b|\bLIMIT\b|$)`)
	// Quoted literals that look like vocabulary tokens: ticker symbols or
	// filing-type labels.
	literalRe = regexp.MustCompile(`'([A-Z0-9][A-Z0-9.\- ]{0,9})'`)
	dateLitRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// Config bounds the repair behavior.
type Config struct {
	// DefaultLimit is appended when the query has no LIMIT clause.
	DefaultLimit int
	// MaxLimit caps any declared limit.
	MaxLimit int
}

// DefaultConfig returns the standard limits: append LIMIT 30, cap at 50.
func DefaultConfig() Config {
	return Config{DefaultLimit: 30, MaxLimit: 50}
}

// Validator checks generated queries against the vocabulary table.
type Validator struct {
	vocab *vocab.Table
	cfg   Config
}

// New creates a validator over the vocabulary table.
func New(table *vocab.Table, cfg Config) *Validator {
	if cfg.DefaultLimit <= 0 {
		cfg.DefaultLimit = 30
	}
	if cfg.MaxLimit <= 0 || cfg.MaxLimit > 50 {
		cfg.MaxLimit = 50
	}
	return &Validator{vocab: table, cfg: cfg}
}

// Validate runs the checks in order and returns the (possibly repaired)
// query or a *types.ValidationError.
//
//  1. Required-fields: the intent's minimum field set must be declared by
//     the query text; missing fields reject, because silently adding fields
//     the query does not return would lie to the formatter.
//  2. Limit: a missing LIMIT clause is repaired by appending the default;
//     an out-of-range limit is clamped into [1, MaxLimit]. Unbounded reads
//     are a resource-safety concern the validator may fix unilaterally.
//  3. Vocabulary: literals resembling entity or fact-type tokens that are
//     not in the table are attached as warnings, never rejections; the
//     store may legitimately hold entities outside the table snapshot.
func (v *Validator) Validate(q *types.GeneratedQuery) (*types.GeneratedQuery, error) {
	if q == nil || strings.TrimSpace(q.Text) == "" {
		return nil, &types.ValidationError{Reason: "empty query text"}
	}

	fields := ParseReturnFields(q.Text)
	if len(fields) == 0 {
		return nil, &types.ValidationError{Reason: "query declares no return fields"}
	}

	required := intent.RequiredFields(q.Intent)
	var missing []string
	declared := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		declared[strings.ToLower(f)] = struct{}{}
	}
	for _, f := range required {
		if _, ok := declared[f]; !ok {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return nil, &types.ValidationError{Missing: missing}
	}

	out := *q
	out.ReturnFields = fields

	limit, hasLimit := ParseLimit(out.Text)
	switch {
	case !hasLimit:
		out.Text = strings.TrimRight(strings.TrimSpace(out.Text), ";") + fmt.Sprintf(" LIMIT %d", v.cfg.DefaultLimit)
		out.Limit = v.cfg.DefaultLimit
	case limit < 1:
		out.Text = limitRe.ReplaceAllString(out.Text, "LIMIT 1")
		out.Limit = 1
	case limit > v.cfg.MaxLimit:
		out.Text = limitRe.ReplaceAllString(out.Text, fmt.Sprintf("LIMIT %d", v.cfg.MaxLimit))
		out.Limit = v.cfg.MaxLimit
	default:
		out.Limit = limit
	}

	out.Warnings = append(out.Warnings, v.vocabularyWarnings(out.Text)...)

	return &out, nil
}

// vocabularyWarnings flags quoted literals that look like vocabulary tokens
// but are absent from the table.
func (v *Validator) vocabularyWarnings(queryText string) []string {
	var warnings []string
	seen := make(map[string]struct{})
	for _, m := range literalRe.FindAllStringSubmatch(queryText, -1) {
		token := m[1]
		if _, dup := seen[token]; dup {
			continue
		}
		seen[token] = struct{}{}
		if dateLitRe.MatchString(token) {
			continue // date literal, not a vocabulary token
		}
		if v.vocab.KnownTicker(token) || v.vocab.KnownFactType(token) {
			continue
		}
		warnings = append(warnings, fmt.Sprintf("literal %q is not in the vocabulary table", token))
	}
	return warnings
}

// ParseReturnFields extracts the aliased field names from the query's
// RETURN clause, in declaration order.
func ParseReturnFields(queryText string) []string {
	m := returnRe.FindStringSubmatch(queryText)
	if m == nil {
		return nil
	}
	var fields []string
	seen := make(map[string]struct{})
	for _, am := range aliasRe.FindAllStringSubmatch(m[1], -1) {
		name := am[1]
		key := strings.ToLower(name)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		fields = append(fields, name)
	}
	return fields
}

// ParseLimit reads the LIMIT clause from the query text.
func ParseLimit(queryText string) (int, bool) {
	m := limitRe.FindStringSubmatch(queryText)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}
