package prompts

// Input is a superset of all fields any prompt might need.
// Missing fields render empty strings (templates use missingkey=zero).
type Input struct {
	// Roadmap generation
	Goal string
	// Sessions
	Topic      string
	Candidate  string
	Transcript string
	// Counts rendered into the instructions
	QuestionCount  int
	TheoryCount    int
	CodingCount    int
	KnowledgeCount int
	TaskCount      int
	Count          int
	// Challenges / flashcards
	TopicsCSV            string
	ChallengeTitle       string
	ChallengeDescription string
	UserCode             string
}
