// Package handlers contains application-level request handlers.
package handlers

import (
	"context"
	"strings"

	"github.com/ersonp/dex-core/internal/domain/entities"
	"github.com/ersonp/dex-core/internal/domain/services"
)

// AskHandler handles question-answering requests.
type AskHandler struct {
	qaService *services.QAService
}

// NewAskHandler creates a new ask handler.
func NewAskHandler(qaService *services.QAService) *AskHandler {
	return &AskHandler{
		qaService: qaService,
	}
}

// Handle validates the question and runs the pipeline. Empty or
// whitespace-only questions never reach the orchestrator.
func (h *AskHandler) Handle(ctx context.Context, question string) (*entities.Answer, error) {
	if strings.TrimSpace(question) == "" {
		return nil, &entities.ValidationError{Message: "question must not be empty"}
	}

	return h.qaService.Answer(ctx, question)
}
