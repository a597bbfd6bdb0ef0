// Package temporal resolves natural-language questions about timestamped
// events into formatted answers backed by a graph store.
//
// A question moves through a fixed pipeline: temporal constraints and
// entity mentions are extracted, the question is classified into one of
// five intents, a Cypher query is generated and validated, the query is
// executed against the store with bounded retries, and the rows are
// rendered in the shape the intent requires.
//
// Every stage degrades rather than fails where it can: extraction falls
// back to a deterministic grammar when the language model is unavailable,
// generation falls back to pre-written templates, and the answer records
// which path produced it.
package temporal
