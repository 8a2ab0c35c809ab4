package config

const (
	defaultBasePath        = "."
	defaultDatabasePath    = "~/.local/share/quizdb/quizdb.db"
	defaultLogDir          = "~/.local/share/quizdb/logs"
	defaultLogLevel        = "info"
	defaultLogFormat       = "console"
	defaultQuestionSetsDir = "data/question_sets"
	defaultTournamentsDir  = "data/tournaments"
	defaultPacketNumberMin = 1
	defaultPacketNumberMax = 24
)

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		BasePath:        defaultBasePath,
		DatabasePath:    defaultDatabasePath,
		LogDir:          defaultLogDir,
		LogLevel:        defaultLogLevel,
		LogFormat:       defaultLogFormat,
		QuestionSetsDir: defaultQuestionSetsDir,
		TournamentsDir:  defaultTournamentsDir,
		PacketNumberMin: defaultPacketNumberMin,
		PacketNumberMax: defaultPacketNumberMax,
	}
}
