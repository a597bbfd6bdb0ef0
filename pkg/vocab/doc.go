// Package vocab holds the static vocabulary tables the pipeline validates
// generated queries against: known entity tickers and company names, known
// fact-type labels (SEC filing types), and the grammar of temporal phrases
// recognized by the deterministic extractor.
//
// Tables are loaded once at startup, optionally from a YAML file, and are
// read-only afterwards; concurrent readers need no synchronization.
package vocab
