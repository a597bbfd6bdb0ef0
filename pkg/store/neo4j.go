package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/db"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j/dbtype"
	"github.com/yatender-oktalk/OpenDeepSearch-sub000/pkg/types"
)

// Neo4jClient implements Client against a Neo4j (or Bolt-compatible)
// database.
type Neo4jClient struct {
	client   neo4j.DriverWithContext
	database string
}

// NewNeo4jClient creates a new Neo4j store client.
func NewNeo4jClient(uri, username, password, database string) (*Neo4jClient, error) {
	driver, err := neo4j.NewDriverWithContext(uri, neo4j.BasicAuth(username, password, ""))
	if err != nil {
		return nil, fmt.Errorf("failed to create neo4j driver: %w", err)
	}

	if database == "" {
		database = "neo4j"
	}

	return &Neo4jClient{
		client:   driver,
		database: database,
	}, nil
}

// Execute implements Client.
func (n *Neo4jClient) Execute(ctx context.Context, query *types.GeneratedQuery) ([]types.ResultRecord, error) {
	session := n.client.NewSession(ctx, neo4j.SessionConfig{
		DatabaseName: n.database,
		AccessMode:   neo4j.AccessModeRead,
	})
	defer session.Close(ctx)

	result, err := session.ExecuteRead(ctx, func(tx neo4j.ManagedTransaction) (any, error) {
		res, err := tx.Run(ctx, query.Text, nil)
		if err != nil {
			return nil, err
		}
		return res.Collect(ctx)
	})
	if err != nil {
		return nil, classifyError(err)
	}

	records := result.([]*db.Record)
	rows := make([]types.ResultRecord, 0, len(records))
	for _, record := range records {
		rows = append(rows, RecordFromFields(recordToMap(record)))
	}
	return rows, nil
}

// Close implements Client.
func (n *Neo4jClient) Close(ctx context.Context) error {
	return n.client.Close(ctx)
}

func recordToMap(record *db.Record) map[string]any {
	fields := make(map[string]any, len(record.Keys))
	for i, key := range record.Keys {
		if i < len(record.Values) {
			fields[key] = record.Values[i]
		}
	}
	return fields
}

// RecordFromFields maps a row of named fields into a ResultRecord. The
// well-known fields (entity, fact_type, date, description) are lifted out;
// everything the query returned stays available in Fields. The row schema
// is whatever the query declared, nothing more is assumed.
func RecordFromFields(fields map[string]any) types.ResultRecord {
	rec := types.ResultRecord{Fields: fields}

	if v, ok := fields["entity"]; ok {
		rec.Entity = asString(v)
	}
	if v, ok := fields["fact_type"]; ok {
		rec.FactType = asString(v)
	}
	if v, ok := fields["description"]; ok {
		rec.Description = asString(v)
	}
	if v, ok := fields["date"]; ok {
		if d, ok := NormalizeDate(v); ok {
			rec.Date = d
		}
	}
	return rec
}

// NormalizeDate converts the store's date representations to a single UTC
// calendar value. Neo4j may return dbtype.Date, time.Time, or a string
// depending on how the query projected the field.
func NormalizeDate(v any) (time.Time, bool) {
	switch d := v.(type) {
	case dbtype.Date:
		return d.Time().UTC(), true
	case time.Time:
		return d.UTC(), true
	case dbtype.LocalDateTime:
		return d.Time().UTC(), true
	case string:
		for _, layout := range []string{"2006-01-02", time.RFC3339, "2006-01-02T15:04:05"} {
			if t, err := time.Parse(layout, d); err == nil {
				return t.UTC(), true
			}
		}
	}
	return time.Time{}, false
}

func asString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	if v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}

// classifyError maps driver failures onto the StoreError taxonomy.
func classifyError(err error) *types.StoreError {
	if errors.Is(err, context.DeadlineExceeded) {
		return types.NewStoreError(types.StoreErrorTimeout, err)
	}

	var neoErr *db.Neo4jError
	if errors.As(err, &neoErr) {
		if strings.Contains(neoErr.Code, "SyntaxError") || strings.Contains(neoErr.Code, "Statement") {
			return types.NewStoreError(types.StoreErrorSyntax, err)
		}
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "syntax"):
		return types.NewStoreError(types.StoreErrorSyntax, err)
	case strings.Contains(msg, "timeout") || strings.Contains(msg, "deadline"):
		return types.NewStoreError(types.StoreErrorTimeout, err)
	default:
		return types.NewStoreError(types.StoreErrorConnection, err)
	}
}
