// Package extractor turns a natural-language question into structured
// temporal constraints and entity references.
//
// Two interchangeable strategies implement the same contract: an LLM-backed
// extractor and a deterministic regex/keyword extractor. The deterministic
// path is total and is the contractually-required default; the model is an
// optional accelerator. Extraction never fails the request: any LLM-path
// error degrades to the deterministic result instead of propagating.
package extractor
