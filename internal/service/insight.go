package service

import (
	"context"
	"errors"
	"strings"

	"github.com/zuca/portal/internal/gateway"
)

var ErrEmptyPrompt = errors.New("prompt cannot be empty")

// Suggestions are starter questions offered to members.
var Suggestions = []string{
	"What does the Bible say about anxiety?",
	"Explain the Parable of the Sower",
	"How can I grow deeper in my prayer life?",
	"Verse of encouragement for exams",
}

// InsightService answers faith questions. Conversations are not stored.
type InsightService struct {
	gateway *gateway.Gateway
}

func NewInsightService(gateway *gateway.Gateway) *InsightService {
	return &InsightService{gateway: gateway}
}

func (s *InsightService) Ask(ctx context.Context, prompt string) (string, error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", ErrEmptyPrompt
	}
	return s.gateway.GenerateInsight(ctx, prompt), nil
}
