package extraction

import "github.com/yungbote/nexus-backend/internal/domain/learning"

// The Parse helpers run the full text -> value -> record pipeline for one
// content kind. Every generation path goes through Extract unchanged.

func ParseRoadmap(raw string) (*RoadmapRecord, error) {
	v, err := Extract(raw, ShapeObject)
	if err != nil {
		return nil, err
	}
	return ValidateRoadmap(v)
}

func ParseQuestionSet(raw string) ([]learning.InterviewQuestion, error) {
	v, err := Extract(raw, ShapeArray)
	if err != nil {
		return nil, err
	}
	return ValidateQuestionSet(v)
}

func ParseAssessment(raw string) (*AssessmentRecord, error) {
	v, err := Extract(raw, ShapeObject)
	if err != nil {
		return nil, err
	}
	return ValidateAssessment(v)
}

func ParseChallengeSet(raw string) ([]ChallengeRecord, error) {
	v, err := Extract(raw, ShapeArray)
	if err != nil {
		return nil, err
	}
	return ValidateChallengeSet(v)
}

func ParseFlashcardSet(raw string) ([]learning.Flashcard, error) {
	v, err := Extract(raw, ShapeArray)
	if err != nil {
		return nil, err
	}
	return ValidateFlashcardSet(v)
}
