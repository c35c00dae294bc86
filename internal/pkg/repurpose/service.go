package repurpose

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/repurposely/repurposely/internal/pkg/env"
)

// ErrGeneration wraps any failure of the generative model call.
var ErrGeneration = errors.New("content generation failed")

// Generator is the outbound model dependency; satisfied by GeminiClient and
// by test fakes.
type Generator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

// Service builds per-platform prompts and forwards them to the generative
// model. It holds no state beyond the model client.
type Service struct {
	model Generator
}

// NewService constructs the service from the environment. A missing model
// credential is a startup failure, not a per-request one.
func NewService() (*Service, error) {
	apiKey := strings.TrimSpace(env.GetEnv("GOOGLE_API_KEY", ""))
	if apiKey == "" || apiKey == "your_google_api_key" {
		return nil, errors.New("GOOGLE_API_KEY is not configured")
	}
	return NewServiceWithGenerator(NewGeminiClient(apiKey)), nil
}

// NewServiceWithGenerator constructs the service around an injected model.
func NewServiceWithGenerator(model Generator) *Service {
	return &Service{model: model}
}

// Repurpose rewrites content for each requested platform and returns the
// results keyed by platform. Unknown platform names are dropped without
// error; model output is returned trimmed but otherwise verbatim.
func (s *Service) Repurpose(ctx context.Context, content string, platforms []string, tone string) (map[string]string, error) {
	result := make(map[string]string)

	for _, raw := range platforms {
		platform := strings.ToLower(strings.TrimSpace(raw))
		build := promptFor(platform)
		if build == nil {
			continue
		}

		text, err := s.model.GenerateContent(ctx, build(content, tone))
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrGeneration, err)
		}
		result[platform] = strings.TrimSpace(text)
	}

	return result, nil
}
