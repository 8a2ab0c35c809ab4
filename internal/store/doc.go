// Package store persists the normalized quiz-competition model in SQLite.
//
// It exposes insert-returning-id, find-by-natural-key, and delete-by-id
// operations for every entity, plus the content-digest lookups the
// deduplication layer relies on. All lookup-before-insert sequences assume a
// single writer; the CLI enforces that with a file lock around each import
// run. Question writes (Question + Tossup/Bonus + parts + hash row) are
// transactional so a failed insert never leaves a partially stored question.
package store
