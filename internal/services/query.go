package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/wtf-sh/wtf/internal/domain"
	"github.com/wtf-sh/wtf/internal/ports"
)

// QueryService orchestrates the query lifecycle end-to-end: context
// collection, provider call, gate evaluation, optional execution, history
// record.
type QueryService struct {
	ConfigProvider   ports.ConfigProvider
	ContextCollector ports.ContextCollector
	ProviderFactory  ports.ProviderFactory
	Gate             *GateService
	Undo             *UndoService
	Executor         ports.CommandExecutor
	Prompter         ports.ConfirmationPrompter
	Cache            ports.CacheStore
	Logger           ports.Logger
}

// Run processes a single natural-language query.
func (s *QueryService) Run(req domain.QueryRequest) (domain.QueryResponse, error) {
	if s.ConfigProvider == nil || s.ContextCollector == nil || s.ProviderFactory == nil ||
		s.Gate == nil || s.Executor == nil || s.Logger == nil {
		return domain.QueryResponse{}, errors.New("services.QueryService dependencies not satisfied")
	}

	ctx := req.Context
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, err := s.ConfigProvider.Load(ctx)
	if err != nil {
		return domain.QueryResponse{}, fmt.Errorf("load config: %w", err)
	}

	snapshot, err := s.ContextCollector.Collect(ctx, cfg)
	if err != nil {
		return domain.QueryResponse{}, fmt.Errorf("collect context: %w", err)
	}

	model, err := pickModel(cfg, req.ModelOverride)
	if err != nil {
		return domain.QueryResponse{}, err
	}

	aiResp, fromCache, err := s.generate(ctx, model, req, snapshot)
	if err != nil {
		return domain.QueryResponse{}, err
	}
	if strings.TrimSpace(aiResp.Command) == "" {
		return domain.QueryResponse{}, fmt.Errorf("%w: provider returned no command", domain.ErrModelFailure)
	}

	resp := domain.QueryResponse{
		Command:     aiResp.Command,
		Explanation: aiResp.Explanation,
		FromCache:   fromCache,
	}

	decision, err := s.Gate.Evaluate(aiResp.Command)
	if err != nil {
		return resp, err
	}
	resp.Decision = decision

	if req.PreviewOnly {
		return resp, nil
	}

	approved, err := s.resolveApproval(decision)
	if err != nil {
		return resp, err
	}
	if !approved {
		return resp, nil
	}

	startedAt := time.Now()
	result, execErr := s.Executor.Execute(ctx, aiResp.Command)
	resp.ExecutionResult = &result
	resp.Executed = execErr == nil

	// Best-effort record even on a spawn failure or interrupt, so history
	// never loses track of an attempted command.
	if s.Undo != nil {
		record, err := s.Undo.Record(aiResp.Command, snapshot.WorkingDir, startedAt, result)
		if err != nil {
			s.Logger.Warn("could not record history", map[string]interface{}{"error": err.Error()})
		} else {
			resp.Record = &record
		}
	}
	return resp, execErr
}

// resolveApproval turns a gate decision into a run/skip verdict, asking the
// user when the gate needs confirmation.
func (s *QueryService) resolveApproval(decision domain.GateDecision) (bool, error) {
	switch decision.Outcome {
	case domain.GateAutoApproved:
		return true, nil
	case domain.GateDenied:
		return false, nil
	case domain.GateNeedsConfirmation:
		if s.Prompter == nil || !s.Prompter.Enabled() {
			return false, nil
		}
		answer, err := s.Prompter.Confirm(decision)
		if err != nil {
			return false, err
		}
		if _, err := s.Gate.ConcludeConfirmation(decision.Command, answer); err != nil {
			return false, err
		}
		return answer.Approved(), nil
	default:
		return false, nil
	}
}

func (s *QueryService) generate(ctx context.Context, model domain.ModelDefinition, req domain.QueryRequest, snapshot domain.ContextSnapshot) (ports.ProviderResponse, bool, error) {
	key := cacheKey(req.Prompt, model.Name, snapshot.WorkingDir)
	if s.Cache != nil {
		if cached, ok, err := s.Cache.Get(key); err == nil && ok {
			return cached, true, nil
		}
	}

	provider, err := s.ProviderFactory.ForModel(model)
	if err != nil {
		return ports.ProviderResponse{}, false, fmt.Errorf("provider init: %w", err)
	}

	s.Logger.Debug("calling provider", map[string]interface{}{
		"provider": provider.Name(),
		"model":    model.ModelID,
	})

	aiResp, err := provider.Generate(ctx, ports.ProviderRequest{
		Prompt:  req.Prompt,
		Context: snapshot,
		Model:   model,
		Debug:   req.Debug,
	})
	if err != nil {
		return ports.ProviderResponse{}, false, err
	}

	if s.Cache != nil && aiResp.Command != "" {
		if err := s.Cache.Set(key, aiResp); err != nil {
			s.Logger.Warn("could not cache response", map[string]interface{}{"error": err.Error()})
		}
	}
	return aiResp, false, nil
}

func pickModel(cfg domain.Config, override string) (domain.ModelDefinition, error) {
	name := override
	if name == "" {
		name = cfg.Preferences.DefaultModel
	}
	if name == "" && len(cfg.Models) > 0 {
		return cfg.Models[0], nil
	}
	for _, model := range cfg.Models {
		if model.Name == name {
			return model, nil
		}
	}
	return domain.ModelDefinition{}, fmt.Errorf("model %s not configured", name)
}

func cacheKey(prompt string, model string, workingDir string) string {
	sum := sha256.Sum256([]byte(prompt + "\x00" + model + "\x00" + workingDir))
	return hex.EncodeToString(sum[:])
}
