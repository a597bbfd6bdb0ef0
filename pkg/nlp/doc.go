// Package nlp wraps outbound language model access for the pipeline.
//
// The model is treated as an untrusted accelerator: every consumer of
// Client has a deterministic fallback, so nothing in here is allowed to
// fail the request outright. The package provides the raw OpenAI-backed
// client plus the composable reliability wrappers the pipeline stacks on
// top of it: bounded retry with exponential backoff, a circuit breaker,
// and a process-wide rate gate serializing outbound calls.
package nlp
