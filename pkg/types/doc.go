// Package types defines the shared data model for the temporal query
// resolution pipeline: temporal constraints extracted from questions,
// query intents, generated graph queries, result records returned by the
// graph store, and formatted answers.
//
// All values in this package are created per-request and are never
// persisted; nothing here outlives a single question/answer cycle.
package types
