// Command quizdb imports quiz competition question sets and tournament
// results into a SQLite database.
package main
