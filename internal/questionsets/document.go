package questionsets

import (
	"encoding/json"
	"fmt"
	"os"
)

// setIndex is the index.json at the root of one question-set folder.
type setIndex struct {
	Name          string `json:"name"`
	Slug          string `json:"slug"`
	Difficulty    string `json:"difficulty"`
	Format        string `json:"format"`
	Bonuses       *bool  `json:"bonuses"`
	MetadataStyle string `json:"metadataStyle"`
	AuthorFirst   *bool  `json:"authorFirst"`
}

func (s setIndex) format() string {
	if s.Format == "" {
		return "powers"
	}
	return s.Format
}

func (s setIndex) hasBonuses() bool {
	return s.Bonuses == nil || *s.Bonuses
}

func (s setIndex) authorFirst() bool {
	return s.AuthorFirst == nil || *s.AuthorFirst
}

// editionIndex is the index.json inside one edition folder.
type editionIndex struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
	Date string `json:"date"`
}

// packetDocument is one converted packet file.
type packetDocument struct {
	Tossups []tossupDocument `json:"tossups"`
	Bonuses []bonusDocument  `json:"bonuses"`
}

type tossupDocument struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
	Metadata string `json:"metadata"`
}

type bonusDocument struct {
	Leadin              string       `json:"leadin"`
	Metadata            string       `json:"metadata"`
	Answers             []string     `json:"answers"`
	Parts               []string     `json:"parts"`
	Values              []int        `json:"values"`
	DifficultyModifiers []flexString `json:"difficultyModifiers"`
}

// flexString tolerates converters that emit difficulty modifiers as JSON
// numbers instead of strings.
type flexString string

func (f *flexString) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = flexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = flexString(n.String())
	return nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
