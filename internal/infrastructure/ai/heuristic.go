package ai

import (
	"context"
	"strings"

	"github.com/wtf-sh/wtf/internal/domain"
	"github.com/wtf-sh/wtf/internal/ports"
)

// heuristicProvider is the offline fallback used when no endpoint can be
// inferred for a model. It never fails, only guesses conservatively.
type heuristicProvider struct {
	model domain.ModelDefinition
}

func newHeuristicProvider(model domain.ModelDefinition) ports.Provider {
	return &heuristicProvider{model: model}
}

func (p *heuristicProvider) Name() string {
	return "heuristic"
}

func (p *heuristicProvider) Model() domain.ModelDefinition {
	return p.model
}

func (p *heuristicProvider) Generate(_ context.Context, req ports.ProviderRequest) (ports.ProviderResponse, error) {
	return ports.ProviderResponse{
		Command:     guessCommand(req.Prompt),
		Explanation: "offline suggestion; no AI endpoint configured",
	}, nil
}

func guessCommand(prompt string) string {
	prompt = strings.ToLower(prompt)
	switch {
	case strings.Contains(prompt, "docker"):
		return "docker ps"
	case strings.Contains(prompt, "git status"):
		return "git status"
	case strings.Contains(prompt, "disk") || strings.Contains(prompt, "space"):
		return "df -h"
	case strings.Contains(prompt, "list") && strings.Contains(prompt, "file"):
		return "ls -la"
	case strings.Contains(prompt, "process"):
		return "ps aux"
	default:
		return "echo \"no AI provider configured\""
	}
}
