// Package gateway produces trivia question sets and short spiritual insights
// from a text generator. Every call succeeds: generator failures are logged
// and answered with built-in fallbacks.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/zuca/portal/internal/model"
)

const (
	SystemInstruction = "You are a helpful and wise spiritual companion for the Zetech University Catholic Action community. Provide encouraging, biblically grounded, and respectful responses."

	TriviaPrompt = "Generate exactly 7 unique multiple-choice Bible trivia questions. Assign a 'points' value to each question (integers) such that the total sum of points for all 7 questions is exactly 50. Include difficult ones."
)

var ErrInvalidQuestionSet = errors.New("invalid question set")

// Generator is a text generation backend.
type Generator interface {
	GenerateText(ctx context.Context, systemPrompt, userPrompt string) (string, error)
	GenerateJSON(ctx context.Context, systemPrompt, userPrompt string, schema *Schema) (string, error)
}

// QuestionSetSchema constrains generated output to an array of questions.
var QuestionSetSchema = &Schema{
	Type: "ARRAY",
	Items: &Schema{
		Type: "OBJECT",
		Properties: map[string]*Schema{
			"question":      {Type: "STRING"},
			"options":       {Type: "ARRAY", Items: &Schema{Type: "STRING"}, MinItems: model.OptionCount, MaxItems: model.OptionCount},
			"correctAnswer": {Type: "INTEGER", Description: "Index of the correct option (0-3)"},
			"explanation":   {Type: "STRING"},
			"points":        {Type: "INTEGER", Description: "Points for this question"},
		},
		Required: []string{"question", "options", "correctAnswer", "explanation", "points"},
	},
}

type Gateway struct {
	generator Generator
	timeout   time.Duration
	log       *slog.Logger
	inflight  singleflight.Group
}

// New builds a gateway. A nil generator keeps the gateway offline: every
// call is answered from the fallbacks. A zero timeout disables the
// per-call deadline.
func New(generator Generator, timeout time.Duration, log *slog.Logger) *Gateway {
	if log == nil {
		log = slog.Default()
	}
	return &Gateway{generator: generator, timeout: timeout, log: log}
}

// GenerateQuestionSet returns seven questions worth fifty points in total.
// Concurrent callers share one in-flight generation. A caller whose ctx is
// done before the set arrives gets the fallback set.
func (g *Gateway) GenerateQuestionSet(ctx context.Context) []model.TriviaQuestion {
	if g.generator == nil {
		return FallbackQuestions()
	}

	ch := g.inflight.DoChan("trivia", func() (any, error) {
		// The shared call outlives any single caller's cancellation.
		callCtx, cancel := g.callContext(context.WithoutCancel(ctx))
		defer cancel()
		return g.requestQuestionSet(callCtx)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			g.log.Warn("trivia generation failed, using fallback set", "error", res.Err)
			return FallbackQuestions()
		}
		return cloneQuestions(res.Val.([]model.TriviaQuestion))
	case <-ctx.Done():
		return FallbackQuestions()
	}
}

// GenerateInsight returns a non-empty reply to prompt.
func (g *Gateway) GenerateInsight(ctx context.Context, prompt string) string {
	if g.generator == nil {
		return FallbackInsight
	}

	callCtx, cancel := g.callContext(ctx)
	defer cancel()

	reply, err := g.generator.GenerateText(callCtx, SystemInstruction, prompt)
	if err != nil {
		g.log.Warn("insight generation failed, using fallback", "error", err)
		return FallbackInsight
	}

	reply = strings.TrimSpace(reply)
	if reply == "" {
		return DefaultBlessing
	}
	return reply
}

func (g *Gateway) requestQuestionSet(ctx context.Context) ([]model.TriviaQuestion, error) {
	raw, err := g.generator.GenerateJSON(ctx, "", TriviaPrompt, QuestionSetSchema)
	if err != nil {
		return nil, err
	}

	var questions []model.TriviaQuestion
	err = json.Unmarshal([]byte(strings.TrimSpace(raw)), &questions)
	if err != nil {
		return nil, fmt.Errorf("failed to decode question set: %w", err)
	}

	err = ValidateQuestionSet(questions)
	if err != nil {
		return nil, err
	}

	g.log.Debug("trivia question set generated", "questions", len(questions))
	return questions, nil
}

func (g *Gateway) callContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if g.timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, g.timeout)
}

// ValidateQuestionSet checks the shape a quiz relies on: seven questions,
// four non-empty options each, an answer index in range, positive points
// adding up to fifty.
func ValidateQuestionSet(questions []model.TriviaQuestion) error {
	if len(questions) != model.QuestionCount {
		return fmt.Errorf("%w: got %d questions, want %d", ErrInvalidQuestionSet, len(questions), model.QuestionCount)
	}

	total := 0
	for i, q := range questions {
		if strings.TrimSpace(q.Question) == "" {
			return fmt.Errorf("%w: question %d is empty", ErrInvalidQuestionSet, i+1)
		}
		if len(q.Options) != model.OptionCount {
			return fmt.Errorf("%w: question %d has %d options", ErrInvalidQuestionSet, i+1, len(q.Options))
		}
		for _, opt := range q.Options {
			if strings.TrimSpace(opt) == "" {
				return fmt.Errorf("%w: question %d has an empty option", ErrInvalidQuestionSet, i+1)
			}
		}
		if q.CorrectAnswer < 0 || q.CorrectAnswer >= model.OptionCount {
			return fmt.Errorf("%w: question %d answer index %d", ErrInvalidQuestionSet, i+1, q.CorrectAnswer)
		}
		if q.Points <= 0 {
			return fmt.Errorf("%w: question %d has %d points", ErrInvalidQuestionSet, i+1, q.Points)
		}
		total += q.Points
	}

	if total != model.QuestionSetPoints {
		return fmt.Errorf("%w: points add up to %d, want %d", ErrInvalidQuestionSet, total, model.QuestionSetPoints)
	}
	return nil
}
