// Package prompts builds the message sequences sent to the language model:
// one prompt for temporal constraint extraction and one for graph query
// generation. Prompt text is data; all parsing of model output lives with
// the callers.
package prompts
