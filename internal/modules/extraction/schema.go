package extraction

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"
)

// Kind names a content kind with its own schema.
type Kind string

const (
	KindRoadmap      Kind = "roadmap"
	KindQuestionSet  Kind = "question_set"
	KindAssessment   Kind = "assessment"
	KindChallengeSet Kind = "challenge_set"
	KindFlashcardSet Kind = "flashcard_set"
)

const (
	InterviewQuestionCount  = 20
	KnowledgeQuestionCount  = 10
	ProjectTaskCount        = 5
	MaxRecommendedFlashcard = 15
)

func str() map[string]any         { return map[string]any{"type": "string"} }
func nonEmptyStr() map[string]any { return map[string]any{"type": "string", "minLength": 1} }

// identifier is a string with at least one non-space character.
func identifier() map[string]any { return map[string]any{"type": "string", "pattern": `\S`} }

func object(required []string, props map[string]any) map[string]any {
	req := make([]any, len(required))
	for i, r := range required {
		req[i] = r
	}
	return map[string]any{"type": "object", "required": req, "properties": props}
}

func arrayOf(items map[string]any, minItems, maxItems int) map[string]any {
	out := map[string]any{"type": "array", "items": items}
	if minItems > 0 {
		out["minItems"] = minItems
	}
	if maxItems > 0 {
		out["maxItems"] = maxItems
	}
	return out
}

// definitions holds one JSON Schema per kind. Arity is enforced here so a
// set of the wrong size is rejected whole.
var definitions = map[Kind]map[string]any{
	KindRoadmap: object([]string{"title", "nodes"}, map[string]any{
		"title": nonEmptyStr(),
		"nodes": arrayOf(object(
			[]string{"nodeId", "title", "content", "dependencies"},
			map[string]any{
				"nodeId":       identifier(),
				"title":        nonEmptyStr(),
				"content":      str(),
				"dependencies": arrayOf(identifier(), 0, 0),
			},
		), 1, 0),
	}),

	KindQuestionSet: arrayOf(func() map[string]any {
		q := object([]string{"question_text", "question_type"}, map[string]any{
			"question_text": nonEmptyStr(),
			"question_type": map[string]any{"enum": []any{"theory", "live_coding"}},
			"template_code": str(),
		})
		q["if"] = map[string]any{
			"required":   []any{"question_type"},
			"properties": map[string]any{"question_type": map[string]any{"const": "live_coding"}},
		}
		q["then"] = map[string]any{"required": []any{"template_code"}}
		return q
	}(), InterviewQuestionCount, InterviewQuestionCount),

	KindAssessment: object([]string{"knowledge_questions", "project_tasks"}, map[string]any{
		"knowledge_questions": arrayOf(object([]string{"question_text", "question_type"}, map[string]any{
			"question_text": nonEmptyStr(),
			"question_type": map[string]any{"const": "theory"},
			"options":       arrayOf(str(), 0, 0),
		}), KnowledgeQuestionCount, KnowledgeQuestionCount),
		"project_tasks": arrayOf(object([]string{"description", "template_code"}, map[string]any{
			"title":         str(),
			"description":   nonEmptyStr(),
			"template_code": str(),
		}), ProjectTaskCount, ProjectTaskCount),
	}),

	KindChallengeSet: arrayOf(object(
		[]string{"title", "description", "difficulty", "category", "template_code"},
		map[string]any{
			"title":         nonEmptyStr(),
			"description":   nonEmptyStr(),
			"difficulty":    nonEmptyStr(),
			"category":      nonEmptyStr(),
			"template_code": str(),
		},
	), 1, 0),

	KindFlashcardSet: arrayOf(object([]string{"front", "back"}, map[string]any{
		"front": nonEmptyStr(),
		"back":  nonEmptyStr(),
	}), 1, 0),
}

var schemaCache sync.Map // map[Kind]*jsonschema.Schema

func compiled(k Kind) (*jsonschema.Schema, error) {
	if cached, ok := schemaCache.Load(k); ok {
		return cached.(*jsonschema.Schema), nil
	}
	def, ok := definitions[k]
	if !ok {
		return nil, fmt.Errorf("unknown content kind %q", k)
	}

	// The compiler wants a plain decoded JSON value, not Go literals.
	raw, err := json.Marshal(def)
	if err != nil {
		return nil, fmt.Errorf("marshal schema %q: %w", k, err)
	}
	doc, err := jsonschema.UnmarshalJSON(strings.NewReader(string(raw)))
	if err != nil {
		return nil, fmt.Errorf("parse schema %q: %w", k, err)
	}

	c := jsonschema.NewCompiler()
	url := fmt.Sprintf("schema://nexus/%s.json", k)
	if err := c.AddResource(url, doc); err != nil {
		return nil, fmt.Errorf("add schema %q: %w", k, err)
	}
	s, err := c.Compile(url)
	if err != nil {
		return nil, fmt.Errorf("compile schema %q: %w", k, err)
	}
	schemaCache.Store(k, s)
	return s, nil
}

// violatedFields flattens a validation error tree into readable field paths
// such as "nodes[2].title" or "$" for the root.
func violatedFields(err error) []string {
	verr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return []string{"$"}
	}
	seen := map[string]struct{}{}
	var walk func(e *jsonschema.ValidationError)
	walk = func(e *jsonschema.ValidationError) {
		if len(e.Causes) > 0 {
			for _, c := range e.Causes {
				walk(c)
			}
			return
		}
		base := fieldPath(e.InstanceLocation)
		if req, ok := e.ErrorKind.(*kind.Required); ok {
			for _, m := range req.Missing {
				seen[joinField(base, m)] = struct{}{}
			}
			return
		}
		seen[base] = struct{}{}
	}
	walk(verr)

	out := make([]string, 0, len(seen))
	for f := range seen {
		out = append(out, f)
	}
	sort.Strings(out)
	return out
}

func fieldPath(loc []string) string {
	if len(loc) == 0 {
		return "$"
	}
	var b strings.Builder
	for _, tok := range loc {
		if _, err := strconv.Atoi(tok); err == nil {
			b.WriteString("[" + tok + "]")
			continue
		}
		if b.Len() > 0 {
			b.WriteByte('.')
		}
		b.WriteString(tok)
	}
	return b.String()
}

func joinField(base, name string) string {
	if base == "$" {
		return name
	}
	return base + "." + name
}
