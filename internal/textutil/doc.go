// Package textutil normalizes free text coming out of question packets and
// tournament records.
//
// Packet sources carry light HTML markup (bold/italic tags, entity escapes)
// and editorial annotations in parentheses or brackets. These helpers strip
// that noise and canonicalize answer lines so downstream slugs and content
// hashes are stable regardless of how a given source styled its text.
package textutil
