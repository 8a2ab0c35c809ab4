// Package tournaments ingests tournament result trees into the store.
//
// A tree is <base>/tournaments/<tournament>/index.json plus either a
// game_files/ folder of qbj match documents or a buzzes.csv/bonuses.csv
// pair with round-to-packet bindings in the index. Every reference a result
// makes (round, packet, team, player, tossup, bonus part) is resolved
// against the already-imported question-set data through a per-tournament
// resolution context; references that cannot be resolved are logged and
// skipped without aborting the rest of the tournament.
package tournaments
