// Package packetname derives a stable round number and display descriptor
// from packet file names and round labels.
//
// Packet files are named by many independent editors with no shared
// convention ("Packet 7", "round_03_finals", "G.json"). The resolver applies
// layered heuristics and degrades to a caller-supplied positional fallback
// rather than failing, because the resolved number is the exact-match join
// key between question-set packets and tournament rounds.
package packetname
