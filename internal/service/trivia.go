package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/zuca/portal/internal/model"
)

var (
	ErrTriviaBusy       = errors.New("a question set is already loading")
	ErrNotInProgress    = errors.New("no quiz in progress")
	ErrNotAnswered      = errors.New("answer the current question first")
	ErrOptionOutOfRange = errors.New("option out of range")
	ErrNoQuestions      = errors.New("question set is empty")
)

type TriviaState int

const (
	TriviaLoading TriviaState = iota
	TriviaInProgress
	TriviaComplete
)

func (s TriviaState) String() string {
	switch s {
	case TriviaLoading:
		return "loading"
	case TriviaInProgress:
		return "in_progress"
	case TriviaComplete:
		return "complete"
	}
	return fmt.Sprintf("TriviaState(%d)", int(s))
}

// QuestionSource supplies question sets. It never fails: an unavailable
// generator is answered with a fallback set.
type QuestionSource interface {
	GenerateQuestionSet(ctx context.Context) []model.TriviaQuestion
}

type TriviaService struct {
	questions   QuestionSource
	userService *UserService
	log         *slog.Logger
}

func NewTriviaService(questions QuestionSource, userService *UserService, log *slog.Logger) *TriviaService {
	if log == nil {
		log = slog.Default()
	}
	return &TriviaService{questions: questions, userService: userService, log: log}
}

// NewSession prepares a quiz for player. The session stays in Loading
// until Start returns.
func (s *TriviaService) NewSession(player model.Actor) *TriviaSession {
	return &TriviaSession{service: s, player: player, selected: -1}
}

type AnswerResult struct {
	Accepted      bool // False when the question was already answered
	Correct       bool
	CorrectAnswer int
	Explanation   string
	Score         int
}

type TriviaSnapshot struct {
	State    TriviaState
	Index    int // Current question, 0-based
	Total    int
	Score    int
	Question *model.TriviaQuestion
	Answered bool
	Selected int // -1 until answered
	Awarded  int // Points persisted when the quiz completed
}

// TriviaSession is one member's run through a question set. It is safe for
// concurrent use.
type TriviaSession struct {
	service *TriviaService
	player  model.Actor

	mu        sync.Mutex
	state     TriviaState
	loading   bool
	questions []model.TriviaQuestion
	index     int
	score     int
	answered  bool
	selected  int
	awarded   int
}

// Start loads a question set and begins the quiz. When ctx is done before
// the set arrives, the set is discarded and ctx.Err() is returned.
func (t *TriviaSession) Start(ctx context.Context) error {
	t.mu.Lock()
	if t.loading {
		t.mu.Unlock()
		return ErrTriviaBusy
	}
	t.loading = true
	t.state = TriviaLoading
	t.questions = nil
	t.reset()
	t.mu.Unlock()

	questions := t.service.questions.GenerateQuestionSet(ctx)

	t.mu.Lock()
	defer t.mu.Unlock()
	t.loading = false

	err := ctx.Err()
	if err != nil {
		return err
	}
	if len(questions) == 0 {
		return ErrNoQuestions
	}

	t.questions = questions
	t.state = TriviaInProgress
	return nil
}

// Restart discards the current quiz and loads a new set. Points already
// awarded are kept.
func (t *TriviaSession) Restart(ctx context.Context) error {
	return t.Start(ctx)
}

// Answer submits option for the current question. Only the first answer
// counts; later submissions are ignored and reported with Accepted false.
func (t *TriviaSession) Answer(option int) (AnswerResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != TriviaInProgress {
		return AnswerResult{}, ErrNotInProgress
	}
	q := t.questions[t.index]
	result := AnswerResult{
		CorrectAnswer: q.CorrectAnswer,
		Explanation:   q.Explanation,
	}
	if t.answered {
		result.Correct = q.IsCorrect(t.selected)
		result.Score = t.score
		return result, nil
	}

	if option < 0 || option >= len(q.Options) {
		return AnswerResult{}, fmt.Errorf("%w: %d", ErrOptionOutOfRange, option)
	}

	t.answered = true
	t.selected = option
	if q.IsCorrect(option) {
		t.score += q.Points
	}

	result.Accepted = true
	result.Correct = q.IsCorrect(option)
	result.Score = t.score
	return result, nil
}

// Next moves past an answered question. Passing the last question completes
// the quiz and adds the score to the player's stored points; if that write
// fails the quiz stays on the last question so Next can be retried.
func (t *TriviaSession) Next(ctx context.Context) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state != TriviaInProgress {
		return ErrNotInProgress
	}
	if !t.answered {
		return ErrNotAnswered
	}

	if t.index < len(t.questions)-1 {
		t.index++
		t.answered = false
		t.selected = -1
		return nil
	}

	_, err := t.service.userService.AddPoints(ctx, t.player, t.player.UserID, t.score)
	if err != nil {
		return fmt.Errorf("failed to record score: %w", err)
	}

	t.awarded = t.score
	t.state = TriviaComplete
	t.service.log.Info("trivia completed", "user_id", t.player.UserID, "score", t.score)
	return nil
}

func (t *TriviaSession) Snapshot() TriviaSnapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	snap := TriviaSnapshot{
		State:    t.state,
		Index:    t.index,
		Total:    len(t.questions),
		Score:    t.score,
		Answered: t.answered,
		Selected: t.selected,
		Awarded:  t.awarded,
	}
	if t.state == TriviaInProgress {
		q := t.questions[t.index]
		q.Options = append([]string(nil), q.Options...)
		snap.Question = &q
	}
	return snap
}

func (t *TriviaSession) reset() {
	t.index = 0
	t.score = 0
	t.answered = false
	t.selected = -1
	t.awarded = 0
}
