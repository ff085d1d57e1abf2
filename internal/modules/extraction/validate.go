package extraction

import (
	"encoding/json"
	"fmt"

	"github.com/yungbote/nexus-backend/internal/domain/learning"
)

// RoadmapRecord is a validated roadmap payload.
type RoadmapRecord struct {
	Title string       `json:"title"`
	Nodes []NodeRecord `json:"nodes"`
}

type NodeRecord struct {
	NodeID       string   `json:"nodeId"`
	Title        string   `json:"title"`
	Content      string   `json:"content"`
	Dependencies []string `json:"dependencies"`
}

// AssessmentRecord is a validated assessment payload.
type AssessmentRecord struct {
	KnowledgeQuestions []learning.AssessmentQuestion `json:"knowledge_questions"`
	ProjectTasks       []learning.ProjectTask        `json:"project_tasks"`
}

// ChallengeRecord is one generated challenge before it gets an id.
type ChallengeRecord struct {
	Title        string `json:"title"`
	Description  string `json:"description"`
	Difficulty   string `json:"difficulty"`
	Category     string `json:"category"`
	TemplateCode string `json:"template_code"`
}

// Validate checks v against the schema for k. It is the untyped entry point;
// the typed helpers below are what callers normally use.
func Validate(v any, k Kind) error {
	s, err := compiled(k)
	if err != nil {
		return err
	}
	if err := s.Validate(v); err != nil {
		return &SchemaViolationError{Kind: k, Fields: violatedFields(err)}
	}
	return nil
}

func ValidateRoadmap(v any) (*RoadmapRecord, error) {
	v = coerceRoadmapIDs(v)
	var rec RoadmapRecord
	if err := validateInto(v, KindRoadmap, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func ValidateQuestionSet(v any) ([]learning.InterviewQuestion, error) {
	var out []learning.InterviewQuestion
	if err := validateInto(v, KindQuestionSet, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func ValidateAssessment(v any) (*AssessmentRecord, error) {
	var rec AssessmentRecord
	if err := validateInto(v, KindAssessment, &rec); err != nil {
		return nil, err
	}
	return &rec, nil
}

func ValidateChallengeSet(v any) ([]ChallengeRecord, error) {
	var out []ChallengeRecord
	if err := validateInto(v, KindChallengeSet, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func ValidateFlashcardSet(v any) ([]learning.Flashcard, error) {
	var out []learning.Flashcard
	if err := validateInto(v, KindFlashcardSet, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func validateInto(v any, k Kind, dst any) error {
	if err := Validate(v, k); err != nil {
		return err
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("re-encode %s: %w", k, err)
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return &SchemaViolationError{Kind: k, Fields: []string{"$"}}
	}
	return nil
}

// coerceRoadmapIDs rewrites numeric nodeId and dependency entries as
// strings. Backends often number their nodes.
func coerceRoadmapIDs(v any) any {
	root, ok := v.(map[string]any)
	if !ok {
		return v
	}
	nodes, ok := root["nodes"].([]any)
	if !ok {
		return v
	}
	for _, n := range nodes {
		node, ok := n.(map[string]any)
		if !ok {
			continue
		}
		if id, ok := numberString(node["nodeId"]); ok {
			node["nodeId"] = id
		}
		deps, ok := node["dependencies"].([]any)
		if !ok {
			continue
		}
		for i, d := range deps {
			if s, ok := numberString(d); ok {
				deps[i] = s
			}
		}
	}
	return v
}

func numberString(v any) (string, bool) {
	switch n := v.(type) {
	case json.Number:
		return n.String(), true
	case float64:
		return fmt.Sprint(n), true
	case int:
		return fmt.Sprint(n), true
	}
	return "", false
}
