package store

// QuestionSet is one recurring question set, keyed by slug.
type QuestionSet struct {
	ID         int64
	Name       string
	Slug       string
	Difficulty string
	Format     string
	HasBonuses bool
}

// Edition is one dated run of a question set.
type Edition struct {
	ID            int64
	QuestionSetID int64
	Name          string
	Slug          string
	Date          string
}

// EditionRef identifies an edition together with its owning set, as resolved
// from a tournament's set/edition name pair.
type EditionRef struct {
	QuestionSetID int64
	EditionID     int64
}

// Packet is one round's worth of questions within an edition. Name is
// unique within the edition; Number is the join key used by tournament
// rounds and need not be unique.
type Packet struct {
	ID         int64
	EditionID  int64
	Name       string
	Descriptor string
	Number     int
}

// Question holds the fields shared by tossups and bonuses. Identity is
// content-derived; Slug is the disambiguated external identifier.
type Question struct {
	ID                 int64
	Slug               string
	Metadata           string
	Author             string
	Editor             string
	Category           string
	CategorySlug       string
	Subcategory        string
	SubcategorySlug    string
	SubsubcategorySlug string
}

// Tossup is the tossup extension of a Question.
type Tossup struct {
	ID              int64
	QuestionID      int64
	Text            string
	Answer          string
	AnswerSanitized string
	AnswerPrimary   string
}

// Bonus is the bonus extension of a Question.
type Bonus struct {
	ID              int64
	QuestionID      int64
	Leadin          string
	LeadinSanitized string
}

// BonusPart is one of the three scored parts of a Bonus.
type BonusPart struct {
	ID                 int64
	BonusID            int64
	PartNumber         int
	Text               string
	TextSanitized      string
	Answer             string
	AnswerSanitized    string
	AnswerPrimary      string
	Value              int
	DifficultyModifier string
}

// QuestionRef maps a content digest back to an existing question identity.
// ExtensionID is the tossup or bonus id depending on which hash index the
// ref came from.
type QuestionRef struct {
	QuestionID  int64
	ExtensionID int64
}

// Tournament is one competition run on a specific edition.
type Tournament struct {
	ID        int64
	Name      string
	Slug      string
	EditionID int64
	Location  string
	Level     string
	StartDate string
	EndDate   string
}

// Round binds a tournament round number to the packet that was read.
type Round struct {
	ID                         int64
	TournamentID               int64
	Number                     int
	PacketID                   int64
	ExcludeFromIndividualStats bool
}

// Team competes at exactly one tournament.
type Team struct {
	ID           int64
	TournamentID int64
	Name         string
	Slug         string
}

// Player belongs to a team; QuestionSetID scopes player-name collision
// detection to one competitive pool.
type Player struct {
	ID            int64
	TeamID        int64
	Name          string
	Slug          string
	QuestionSetID int64
}

// Game is one match between two teams in a round.
type Game struct {
	ID          int64
	RoundID     int64
	TossupsRead int
	TeamOneID   int64
	TeamTwoID   int64
}

// Buzz records a player interrupting a tossup.
type Buzz struct {
	ID           int64
	PlayerID     int64
	GameID       int64
	TossupID     int64
	BuzzPosition int
	Value        int
}

// BonusPartDirect records the points a team controlled on one bonus part.
type BonusPartDirect struct {
	ID          int64
	TeamID      int64
	GameID      int64
	BonusPartID int64
	Value       int
}
