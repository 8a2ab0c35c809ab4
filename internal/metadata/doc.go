// Package metadata extracts structured taxonomy and authorship from the
// free-text metadata field attached to each question.
//
// Every data source follows its own convention for that field, so parsing is
// dispatched on a per-set style tag. Each style is a distinct grammar over
// the same input producing the same Fields shape. Patterns are non-greedy
// and first-match; when a grammar does not match, the dependent fields
// degrade to empty strings instead of erroring, because a question with
// unparsed metadata is still worth storing.
package metadata
