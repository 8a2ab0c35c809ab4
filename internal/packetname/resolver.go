package packetname

import (
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// packetWords are the label tokens that mark the next token as the packet
// identifier.
var packetWords = []string{"packet", "round"}

var (
	delimiterRun   = regexp.MustCompile(`[-–—_,.:|\s]+`)
	integerPattern = regexp.MustCompile(`\d+`)
)

var titleCaser = cases.Title(language.English)

// Identifier is the resolved identity of a packet or round label.
type Identifier struct {
	// Descriptor is the human-facing label; it is not necessarily numeric.
	Descriptor string
	// Number is the comparable integer used to join packets to rounds.
	Number int
}

// Bounds is the window of integers accepted as plausible packet numbers.
// The window guards against reading unrelated digits (years, set editions)
// as a round number. The default upper bound is an empirical fit for
// observed data and can be tuned in configuration.
type Bounds struct {
	Min int
	Max int
}

// DefaultBounds accepts packet numbers in [1, 24].
var DefaultBounds = Bounds{Min: 1, Max: 24}

func (b Bounds) contains(n int) bool {
	return n >= b.Min && n <= b.Max
}

// Resolve infers an Identifier from a raw label. When no heuristic applies,
// the positional fallback becomes both the number and the descriptor and the
// second return is false so the caller can log the failed identification.
//
// The same label always resolves to the same Identifier for a given fallback
// and bounds; both ingestion pipelines rely on that determinism.
func Resolve(label string, fallback int, bounds Bounds) (Identifier, bool) {
	lowered := strings.ToLower(label)
	tokens := delimiterRun.Split(lowered, -1)

	if idx := packetWordIndex(tokens); idx >= 0 {
		descriptor := ""
		if idx+1 < len(tokens) {
			descriptor = titleCaser.String(tokens[idx+1])
		}
		if n, ok := firstIntegerIn(descriptor, bounds); ok {
			return Identifier{Descriptor: strconv.Itoa(n), Number: n}, true
		}
		return Identifier{Descriptor: descriptor, Number: fallback}, true
	}

	if n, ok := firstIntegerIn(lowered, bounds); ok {
		return Identifier{Descriptor: strconv.Itoa(n), Number: n}, true
	}

	if !integerPattern.MatchString(label) && len([]rune(label)) < 3 {
		return Identifier{Descriptor: label, Number: fallback}, true
	}

	return Identifier{Descriptor: strconv.Itoa(fallback), Number: fallback}, false
}

func packetWordIndex(tokens []string) int {
	for i, token := range tokens {
		for _, word := range packetWords {
			if strings.Contains(token, word) {
				return i
			}
		}
	}
	return -1
}

// firstIntegerIn returns the first embedded integer that falls inside
// bounds. Out-of-window integers are ignored entirely.
func firstIntegerIn(s string, bounds Bounds) (int, bool) {
	for _, match := range integerPattern.FindAllString(s, -1) {
		n, err := strconv.Atoi(match)
		if err != nil {
			continue
		}
		if bounds.contains(n) {
			return n, true
		}
	}
	return 0, false
}
