package tournaments

import (
	"encoding/json"
	"fmt"
	"os"
)

// tournamentIndex is the index.json at the root of one tournament folder.
// Set and edition are referenced by display name, matching how humans label
// result exports.
type tournamentIndex struct {
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	Set       string `json:"set"`
	Edition   string `json:"edition"`
	Location  string `json:"location"`
	Level     string `json:"level"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`

	ExcludedRounds []int `json:"rounds_to_exclude_from_individual_stats"`

	// Rounds switches the tournament to the CSV path: round numbers are
	// bound to packet names here instead of being derived from game files.
	Rounds []roundBinding `json:"rounds"`
}

type roundBinding struct {
	Number int    `json:"number"`
	Packet string `json:"packet"`
}

// gameDocument is one qbj match file, reduced to the fields the importer
// reads.
type gameDocument struct {
	Packets        string          `json:"packets"`
	TossupsRead    int             `json:"tossups_read"`
	MatchTeams     []matchTeam     `json:"match_teams"`
	MatchQuestions []matchQuestion `json:"match_questions"`
}

type matchTeam struct {
	Team struct {
		Name    string `json:"name"`
		Players []struct {
			Name string `json:"name"`
		} `json:"players"`
	} `json:"team"`
}

type matchQuestion struct {
	Buzzes         []buzzDocument `json:"buzzes"`
	TossupQuestion struct {
		QuestionNumber int `json:"question_number"`
	} `json:"tossup_question"`
	Bonus *bonusResult `json:"bonus"`
}

type buzzDocument struct {
	BuzzPosition struct {
		WordIndex int `json:"word_index"`
	} `json:"buzz_position"`
	Player struct {
		Name string `json:"name"`
	} `json:"player"`
	Team struct {
		Name string `json:"name"`
	} `json:"team"`
	Result struct {
		Value int `json:"value"`
	} `json:"result"`
}

type bonusResult struct {
	Question struct {
		QuestionNumber int `json:"question_number"`
	} `json:"question"`
	Parts []struct {
		ControlledPoints int `json:"controlled_points"`
	} `json:"parts"`
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
