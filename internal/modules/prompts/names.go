package prompts

type PromptName string

const (
	// Structured generation (JSON out)
	PromptRoadmap             PromptName = "roadmap"
	PromptInterviewQuestions  PromptName = "interview_questions"
	PromptAssessment          PromptName = "assessment"
	PromptRecommendChallenges PromptName = "recommend_challenges"
	PromptFlashcards          PromptName = "flashcards"

	// Freeform
	PromptInterviewEvaluation  PromptName = "interview_evaluation"
	PromptAssessmentEvaluation PromptName = "assessment_evaluation"
	PromptChallengeHint        PromptName = "challenge_hint"

	// Conversation personas
	PromptNodeTutor      PromptName = "node_tutor"
	PromptChallengeGuide PromptName = "challenge_guide"
)
