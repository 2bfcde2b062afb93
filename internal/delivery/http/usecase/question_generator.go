package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/ahlgroup/sales-trainer-be/internal/delivery/http/entity"
	internalEntity "github.com/ahlgroup/sales-trainer-be/internal/entity"
	"github.com/ahlgroup/sales-trainer-be/internal/pkg/jsonextract"
	"github.com/google/uuid"
)

type generatedQuestionJSON struct {
	Question       string   `json:"question"`
	ExpectedAnswer string   `json:"expected_answer"`
	KeyPoints      []string `json:"key_points"`
	Source         string   `json:"source"`
	Difficulty     string   `json:"difficulty"`
	IsObjection    bool     `json:"is_objection"`
}

type questionBatchJSON struct {
	Questions []generatedQuestionJSON `json:"questions"`
}

const (
	questionTokenBase    = 300
	questionTokenPer     = 150
	questionTokenCeiling = 4500

	recentQuestionWindow = 50
	minUsableContextLen  = 50
)

// GenerateQuestions builds the question set for a session. Question count
// scales with duration, clamped to the tier floor and the global bounds.
// When the judge is unreachable or returns garbage, a deterministic rotation
// over the fallback bank keeps the session usable.
func (u *trainingUsecase) GenerateQuestions(ctx context.Context, sessionID, category string, difficulty entity.Difficulty, durationMinutes int) ([]entity.GeneratedQuestion, error) {
	if !ValidCategory(category) {
		return nil, fmt.Errorf("invalid category: %s", category)
	}
	if !difficulty.IsTier() {
		return nil, fmt.Errorf("invalid difficulty: %s", difficulty)
	}
	if durationMinutes <= 0 {
		return nil, fmt.Errorf("invalid duration: %d minutes", durationMinutes)
	}

	count := u.questionCount(difficulty, durationMinutes)

	var recent []string
	if session, err := u.cfg.Repository.FindSessionByID(u.cfg.DB, sessionID); err == nil {
		recent, err = u.cfg.Repository.FindRecentQuestionTexts(u.cfg.DB, session.UserID, category, recentQuestionWindow)
		if err != nil {
			u.cfg.Log.Warnf("failed to load recent questions for user %s: %v", session.UserID, err)
			recent = nil
		}
	}

	topK := u.settingInt("training.rag_top_k", defaultRAGTopK)
	content := u.cfg.Retriever.Aggregate(ctx, category, topK)

	generated := u.generateWithJudge(ctx, category, difficulty, count, content, recent)
	if len(generated) == 0 {
		u.cfg.Log.Warnf("question generation failed for session %s, using fallback bank", sessionID)
		generated = u.fallbackQuestionSet(count, difficulty)
	}
	if len(generated) > count {
		generated = generated[:count]
	}
	// A short judge batch is topped up from the fallback bank so the session
	// always holds exactly count questions.
	if len(generated) < count {
		u.cfg.Log.Warnf("judge returned %d of %d questions for session %s, topping up from fallback bank", len(generated), count, sessionID)
		generated = append(generated, u.fallbackQuestionSet(count-len(generated), difficulty)...)
	}

	questions := make([]internalEntity.SessionQuestion, len(generated))
	for i, g := range generated {
		keyPoints, _ := json.Marshal(g.KeyPoints)
		questions[i] = internalEntity.SessionQuestion{
			ID:             uuid.NewString(),
			SessionID:      sessionID,
			Position:       i + 1,
			QuestionText:   g.Question,
			ExpectedAnswer: g.ExpectedAnswer,
			KeyPoints:      string(keyPoints),
			SourceLabel:    g.Source,
			Difficulty:     string(difficulty),
			IsObjection:    g.IsObjection,
		}
	}

	if err := u.cfg.Repository.SaveQuestions(u.cfg.DB, questions); err != nil {
		return nil, fmt.Errorf("failed to save questions: %w", err)
	}

	result := make([]entity.GeneratedQuestion, len(questions))
	for i, q := range questions {
		result[i] = toGeneratedQuestion(q)
	}
	return result, nil
}

func (u *trainingUsecase) questionCount(difficulty entity.Difficulty, durationMinutes int) int {
	rate := u.settingFloat("training.questions_per_min", defaultQuestionsPerMin)
	absMin := u.settingInt("training.min_questions", defaultMinQuestions)
	absMax := u.settingInt("training.max_questions", defaultMaxQuestions)

	floor := absMin
	switch difficulty {
	case entity.DifficultyBasics:
		floor = absMin + 1
	case entity.DifficultyFieldReady:
		floor = absMin + 2
	}

	count := int(rate * float64(durationMinutes))
	if count < floor {
		count = floor
	}
	if count < absMin {
		count = absMin
	}
	if count > absMax {
		count = absMax
	}
	return count
}

func (u *trainingUsecase) generateWithJudge(ctx context.Context, category string, difficulty entity.Difficulty, count int, content string, recent []string) []generatedQuestionJSON {
	systemPrompt := buildQuestionPrompt(category, difficulty, count, content, recent)
	userPrompt := fmt.Sprintf("Generate %d exam questions for %s at %s level.", count, category, difficulty)

	maxTokens := questionTokenBase + count*questionTokenPer
	if maxTokens > questionTokenCeiling {
		maxTokens = questionTokenCeiling
	}
	temperature := float32(u.settingFloat("llm.temperature_questions", defaultTemperatureQuestions))

	gctx, cancel := context.WithTimeout(ctx, questionGenTimeout)
	defer cancel()

	raw, err := u.cfg.Judge.Complete(gctx, systemPrompt, userPrompt, temperature, maxTokens)
	if err != nil {
		u.cfg.Log.Errorf("judge call failed during question generation: %v", err)
		return nil
	}

	var batch questionBatchJSON
	if err := jsonextract.Unmarshal(raw, &batch); err != nil {
		u.cfg.Log.Errorf("failed to parse generated questions: %v", err)
		return nil
	}
	return batch.Questions
}

func buildQuestionPrompt(category string, difficulty entity.Difficulty, count int, content string, recent []string) string {
	var sb strings.Builder

	sb.WriteString("You are an expert sales trainer for a hair replacement clinic. ")
	sb.WriteString(fmt.Sprintf("Create %d exam questions that test a salesperson's mastery of the category %q.\n\n", count, category))

	switch difficulty {
	case entity.DifficultyTrial:
		sb.WriteString("Difficulty: TRIAL. Ask simple recall questions about core facts and standard procedures. One concept per question.\n")
	case entity.DifficultyBasics:
		sb.WriteString("Difficulty: BASICS. Mix recall with applied situational questions. Roughly half should describe a short customer situation the trainee must respond to.\n")
	case entity.DifficultyFieldReady:
		sb.WriteString("Difficulty: FIELD-READY. Mostly realistic customer scenarios, including multi-step situations where the customer's reaction depends on the previous answer. Chain at least two questions into an evolving scenario.\n")
	}

	if isObjectionCategory(category) {
		sb.WriteString("\nThis is an OBJECTION HANDLING category. Frame most questions as a customer voicing a real objection, in the customer's own words. Mark those with \"is_objection\": true.\n")
		sb.WriteString(`OBJECTION SCENARIOS TO COVER (mark is_objection=true):
- Longevity vs natural look tradeoff
- Budget below 35,000 (two-option framing)
- Why not transplant? (donor limitations and density)
- Proper closing technique after handling objections
- Indecisive customer (remove pressure, maintain authority)
`)
	}

	if len(recent) > 0 {
		sb.WriteString("\nDo NOT repeat or closely paraphrase any of these recently asked questions:\n")
		for _, q := range recent {
			sb.WriteString("- " + q + "\n")
		}
	}

	if len(strings.TrimSpace(content)) >= minUsableContextLen {
		sb.WriteString("\nBase every question and expected answer strictly on this training material:\n\n")
		sb.WriteString(content)
		sb.WriteString("\n")
	} else {
		sb.WriteString("\nNo training material is available for this category. Use general best practice for hair replacement sales, and keep expected answers conservative.\n")
	}

	sb.WriteString(`
Return ONLY valid JSON in this exact shape:
{
  "questions": [
    {
      "question": "...",
      "expected_answer": "...",
      "key_points": ["...", "..."],
      "source": "name of the source document or 'General'",
      "difficulty": "` + string(difficulty) + `",
      "is_objection": false
    }
  ]
}`)

	return sb.String()
}

func (u *trainingUsecase) fallbackQuestionSet(count int, difficulty entity.Difficulty) []generatedQuestionJSON {
	bank, err := u.cfg.Repository.FindFallbackQuestions(u.cfg.DB)
	if err != nil || len(bank) == 0 {
		if err != nil {
			u.cfg.Log.Warnf("failed to load fallback bank, using built-in set: %v", err)
		}
		bank = internalEntity.DefaultFallbackQuestions()
	}

	base := make([]generatedQuestionJSON, len(bank))
	for i := range bank {
		base[i] = generatedQuestionJSON{
			Question:       bank[i].QuestionText,
			ExpectedAnswer: bank[i].ExpectedAnswer,
			KeyPoints:      bank[i].KeyPointList(),
			Source:         bank[i].SourceLabel,
			IsObjection:    bank[i].IsObjection,
		}
	}

	out := make([]generatedQuestionJSON, count)
	for i := 0; i < count; i++ {
		q := base[i%len(base)]
		q.Difficulty = string(difficulty)
		out[i] = q
	}
	return out
}
