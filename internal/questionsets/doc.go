// Package questionsets ingests question-set trees into the store.
//
// A tree is <base>/question_sets/<set>/index.json plus
// editions/<edition>/{index.json, packet_files/*.json}. Questions are
// content-addressed: a digest over the raw question text decides whether a
// packet entry links to an existing question row or creates a new one, so
// re-importing an edition or sharing packets across editions never
// duplicates content.
package questionsets
