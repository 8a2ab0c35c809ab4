package packetname_test

import (
	"testing"

	"quizdb/internal/packetname"
)

func TestResolve(t *testing.T) {
	cases := []struct {
		name       string
		label      string
		fallback   int
		want       packetname.Identifier
		recognized bool
	}{
		{
			name:       "packet word followed by number",
			label:      "packet 7",
			fallback:   1,
			want:       packetname.Identifier{Descriptor: "7", Number: 7},
			recognized: true,
		},
		{
			name:       "round word followed by number",
			label:      "Round 3 Packet",
			fallback:   5,
			want:       packetname.Identifier{Descriptor: "3", Number: 3},
			recognized: true,
		},
		{
			name:       "packet word followed by name",
			label:      "Packet Finals",
			fallback:   4,
			want:       packetname.Identifier{Descriptor: "Finals", Number: 4},
			recognized: true,
		},
		{
			name:       "round word followed by non-numeric token",
			label:      "round_of_qf-12_final",
			fallback:   2,
			want:       packetname.Identifier{Descriptor: "Of", Number: 2},
			recognized: true,
		},
		{
			name:       "embedded number without packet word",
			label:      "03 Literature",
			fallback:   9,
			want:       packetname.Identifier{Descriptor: "3", Number: 3},
			recognized: true,
		},
		{
			name:       "year ignored as out of window",
			label:      "2023 championship",
			fallback:   6,
			want:       packetname.Identifier{Descriptor: "6", Number: 6},
			recognized: false,
		},
		{
			name:       "short label without digits",
			label:      "G",
			fallback:   8,
			want:       packetname.Identifier{Descriptor: "G", Number: 8},
			recognized: true,
		},
		{
			name:       "long label without digits falls back",
			label:      "finals",
			fallback:   2,
			want:       packetname.Identifier{Descriptor: "2", Number: 2},
			recognized: false,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, recognized := packetname.Resolve(tc.label, tc.fallback, packetname.DefaultBounds)
			if got != tc.want {
				t.Fatalf("Resolve(%q, %d) = %+v, want %+v", tc.label, tc.fallback, got, tc.want)
			}
			if recognized != tc.recognized {
				t.Fatalf("Resolve(%q, %d) recognized = %v, want %v", tc.label, tc.fallback, recognized, tc.recognized)
			}
		})
	}
}

func TestResolveIsDeterministic(t *testing.T) {
	first, _ := packetname.Resolve("Round 11 - Playoffs", 3, packetname.DefaultBounds)
	second, _ := packetname.Resolve("Round 11 - Playoffs", 3, packetname.DefaultBounds)
	if first != second {
		t.Fatalf("resolver not deterministic: %+v vs %+v", first, second)
	}
}

func TestResolveCustomBounds(t *testing.T) {
	bounds := packetname.Bounds{Min: 1, Max: 30}
	got, recognized := packetname.Resolve("packet 28", 1, bounds)
	if !recognized || got.Number != 28 || got.Descriptor != "28" {
		t.Fatalf("Resolve with widened bounds = %+v (recognized=%v)", got, recognized)
	}
	got, recognized = packetname.Resolve("packet 28", 1, packetname.DefaultBounds)
	if !recognized {
		t.Fatalf("packet word present should still count as recognized")
	}
	if got.Number != 1 || got.Descriptor != "28" {
		t.Fatalf("Resolve outside default bounds = %+v", got)
	}
}
