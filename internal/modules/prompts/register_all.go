package prompts

// RegisterAll registers every prompt. Build calls it once on first use.
func RegisterAll() {
	// ---------- Roadmaps ----------

	RegisterSpec(Spec{
		Name:    PromptRoadmap,
		Version: 1,
		System: `
You are a curriculum designer for a self-paced learning platform.
You produce step-by-step learning roadmaps as strict JSON.
Return JSON only.`,
		User: `
Create a detailed, step-by-step learning roadmap for the goal: "{{.Goal}}".

Output rules:
- A single JSON object with exactly two keys: "title" and "nodes".
- "title": a short string naming the roadmap.
- "nodes": a non-empty list of node objects, in learning order.
- Each node has "nodeId" (unique snake_case string, e.g. "python_basics"), "title" (string), "content" (short description) and "dependencies" (list of other nodeId strings).
- The first node has an empty dependencies list [].
- Dependencies only reference nodeIds that appear in the list and never form a cycle.
- No prose or markdown outside the JSON object.`,
		Validators: []Validator{
			RequireNonEmpty("Goal", func(in Input) string { return in.Goal }),
		},
	})

	// ---------- Sessions ----------

	RegisterSpec(Spec{
		Name:    PromptInterviewQuestions,
		Version: 1,
		System: `
You are a senior technical interviewer preparing a question set.
Return JSON only.`,
		User: `
Generate a technical interview question set for the topic: "{{.Topic}}".

Output rules:
- A single JSON list of exactly {{.QuestionCount}} objects: {{.TheoryCount}} of type "theory" and {{.CodingCount}} of type "live_coding".
- Each object has "question_text" and "question_type".
- "live_coding" objects also have "template_code": a short function stub the candidate completes.
- Mix difficulties from easy to hard.
- No prose or markdown outside the JSON list.`,
		Validators: []Validator{
			RequireNonEmpty("Topic", func(in Input) string { return in.Topic }),
			RequirePositive("QuestionCount", func(in Input) int { return in.QuestionCount }),
		},
	})

	RegisterSpec(Spec{
		Name:    PromptAssessment,
		Version: 1,
		System: `
You write certificate-level skill assessments.
Return JSON only.`,
		User: `
Create a difficult skill assessment for the topic: "{{.Topic}}".

Output rules:
- A single JSON object with two keys: "knowledge_questions" and "project_tasks".
- "knowledge_questions": exactly {{.KnowledgeCount}} in-depth theory questions, each {"question_text": ..., "question_type": "theory"}.
- "project_tasks": exactly {{.TaskCount}} practical coding projects that combine several concepts, each {"title": ..., "description": ..., "template_code": ...}.
- "template_code" is runnable starter code.
- No prose or markdown outside the JSON object.`,
		Validators: []Validator{
			RequireNonEmpty("Topic", func(in Input) string { return in.Topic }),
			RequirePositive("KnowledgeCount", func(in Input) int { return in.KnowledgeCount }),
			RequirePositive("TaskCount", func(in Input) int { return in.TaskCount }),
		},
	})

	RegisterSpec(Spec{
		Name:    PromptInterviewEvaluation,
		Version: 1,
		System: `
You are an experienced technical interviewer and hiring manager for "{{.Topic}}".
Write the evaluation report in Markdown, following the template exactly.`,
		User: `
### Interview Evaluation Report
**Candidate:** {{.Candidate}}
**Position:** Junior Software Developer ({{.Topic}})

### 1. Overall Assessment
2-3 sentences on the candidate's performance.

### 2. Strengths
- **[Strength]:** specific positive feedback.

### 3. Areas to Improve
- **[Area]:** specific constructive criticism and how to improve.

### 4. Result
**Hireability:** [percentage]
**Final Score:** [score out of 100, e.g. 78/100]

Fill in the template by analysing the candidate's answers:

{{.Transcript}}`,
		Validators: []Validator{
			RequireNonEmpty("Transcript", func(in Input) string { return in.Transcript }),
		},
	})

	RegisterSpec(Spec{
		Name:    PromptAssessmentEvaluation,
		Version: 1,
		System: `
You are a technical lead and instructor specialised in "{{.Topic}}".
Write the competency report in Markdown, following the template exactly.`,
		User: `
### Competency Assessment Report
**Candidate:** {{.Candidate}}
**Area:** {{.Topic}}

### 1. Summary
2-3 sentences on overall competency.

### 2. Knowledge Questions
Analyse the theory answers, noting what was right and wrong.

### 3. Project Tasks
Review correctness, efficiency, readability and conventions of the submitted code.

### 4. Competency Matrix
- **[Competency]:** [score out of 10] - short comment

### 5. Result
**Status:** [Pass/Fail]
**Final Score:** [overall score out of 10, e.g. 7/10]

Fill in the template by analysing the submission:

{{.Transcript}}`,
		Validators: []Validator{
			RequireNonEmpty("Transcript", func(in Input) string { return in.Transcript }),
		},
	})

	// ---------- Challenges + flashcards ----------

	RegisterSpec(Spec{
		Name:    PromptRecommendChallenges,
		Version: 1,
		System: `
You write short programming exercises.
Return JSON only.`,
		User: `
Generate {{.Count}} new code challenges based on these topics: "{{.TopicsCSV}}".

Output rules:
- A single JSON list of objects.
- Each object has "title", "description", "difficulty" ("Easy", "Medium" or "Hard"), "category" (one of the given topics) and "template_code" (starter code with a function signature and an empty body).
- No solutions.
- No prose or markdown outside the JSON list.`,
		Validators: []Validator{
			RequireNonEmpty("TopicsCSV", func(in Input) string { return in.TopicsCSV }),
			RequirePositive("Count", func(in Input) int { return in.Count }),
		},
	})

	RegisterSpec(Spec{
		Name:    PromptChallengeHint,
		Version: 1,
		System: `
You are a helpful programming tutor.
Give one concise hint. Never give the full answer.`,
		User: `
The user is solving this problem: "{{.ChallengeDescription}}"

Their current code:
` + "```" + `
{{.UserCode}}
` + "```" + `

Point at the logical error or the next step to take.
If the code is empty or nonsensical, suggest a starting point.`,
		Validators: []Validator{
			RequireNonEmpty("ChallengeDescription", func(in Input) string { return in.ChallengeDescription }),
		},
	})

	RegisterSpec(Spec{
		Name:    PromptFlashcards,
		Version: 1,
		System: `
You are a learning assistant creating a flashcard deck.
Return JSON only.`,
		User: `
The roadmap topic is "{{.Topic}}". The learner has completed these sub-topics: "{{.TopicsCSV}}".

Generate at most {{.Count}} flashcards based ONLY on the completed sub-topics.
- "front": a term or short question.
- "back": a concise definition or answer.

Return a JSON list of {"front": ..., "back": ...} objects and nothing else.`,
		Validators: []Validator{
			RequireNonEmpty("TopicsCSV", func(in Input) string { return in.TopicsCSV }),
			RequirePositive("Count", func(in Input) int { return in.Count }),
		},
	})

	// ---------- Conversation personas ----------

	RegisterSpec(Spec{
		Name:    PromptNodeTutor,
		Version: 1,
		System: `
You are an expert, patient and encouraging tutor on the Nexus learning platform.
Your job is to teach the user "{{.Topic}}".
ALWAYS format replies in Markdown:
- Put important keywords and concepts in **bold**.
- Use "-" bulleted lists for steps, features or items.
- Put code and commands in fenced code blocks.
- Keep paragraphs short.`,
		User: `Please continue explaining "{{.Topic}}".`,
		Validators: []Validator{
			RequireNonEmpty("Topic", func(in Input) string { return in.Topic }),
		},
	})

	RegisterSpec(Spec{
		Name:    PromptChallengeGuide,
		Version: 1,
		System: `
You are a coding assistant on the Nexus platform.
The user is working on the problem "{{.ChallengeTitle}}".
Problem description: "{{.ChallengeDescription}}"
Guide them with the Socratic method:
- NEVER give the solution code.
- Answer with a guiding counter-question or the next step to think about.
- Structure replies in Markdown.`,
		User: `What should I think about next for "{{.ChallengeTitle}}"?`,
		Validators: []Validator{
			RequireNonEmpty("ChallengeTitle", func(in Input) string { return in.ChallengeTitle }),
		},
	})
}
