package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/rajabovvvnn-bit/legal-telegram-bot/config"
	"github.com/rajabovvvnn-bit/legal-telegram-bot/utils"

	openai "github.com/sashabaranov/go-openai"
)

// ErrAllProvidersFailed is returned when both the primary and the fallback
// provider failed for the same input. Callers match it with errors.Is to
// distinguish a total failure from a single-provider one.
var ErrAllProvidersFailed = errors.New("all AI providers failed")

// ProviderResponse is one generated answer plus the label of the provider
// that produced it.
type ProviderResponse struct {
	Text  string
	Label string
}

// CompletionAPI is the slice of the OpenAI-compatible client used by the
// dispatcher. *openai.Client satisfies it.
type CompletionAPI interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Provider bundles one AI backend with its generation settings.
type Provider struct {
	Label        string
	Model        string
	Temperature  float32
	MaxTokens    int
	SystemPrompt string
	Client       CompletionAPI
}

// NewProvider builds a Provider from configuration. Both backends speak the
// OpenAI chat-completion protocol; only the base URL, model and budgets differ.
func NewProvider(cfg config.ProviderConfig, systemPrompt string) *Provider {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	return &Provider{
		Label:        cfg.Label,
		Model:        cfg.Model,
		Temperature:  cfg.Temperature,
		MaxTokens:    cfg.MaxTokens,
		SystemPrompt: systemPrompt,
		Client:       openai.NewClientWithConfig(clientConfig),
	}
}

// DispatcherService selects an AI provider for classified text and falls back
// to the alternate provider when the first call fails.
type DispatcherService interface {
	Answer(ctx context.Context, text string, classification Classification) (*ProviderResponse, error)
}

type dispatcherService struct {
	serious     *Provider
	lightweight *Provider
}

// NewDispatcherService creates a dispatcher over the two configured providers.
func NewDispatcherService(serious, lightweight *Provider) DispatcherService {
	return &dispatcherService{serious: serious, lightweight: lightweight}
}

// Answer tries the primary provider for the classification (serious for
// complex legal topics, lightweight otherwise) and on any failure makes a
// single sequential attempt against the other provider with identical input.
// There is no retry beyond that; if both fail the error wraps
// ErrAllProvidersFailed.
func (s *dispatcherService) Answer(ctx context.Context, text string, classification Classification) (*ProviderResponse, error) {
	primary, fallback := s.lightweight, s.serious
	if classification == ClassificationComplexLegal {
		primary, fallback = s.serious, s.lightweight
	}

	response, primaryErr := s.ask(ctx, primary, text)
	if primaryErr == nil {
		return response, nil
	}
	log.Printf("WARN: [Dispatcher] Provider %s failed for input '%s': %v. Trying fallback %s.",
		primary.Label, utils.Truncate(text, 80), primaryErr, fallback.Label)

	response, fallbackErr := s.ask(ctx, fallback, text)
	if fallbackErr == nil {
		return response, nil
	}
	log.Printf("ERROR: [Dispatcher] Fallback provider %s also failed for input '%s': %v",
		fallback.Label, utils.Truncate(text, 80), fallbackErr)

	return nil, fmt.Errorf("%w: %s: %v; %s: %v",
		ErrAllProvidersFailed, primary.Label, primaryErr, fallback.Label, fallbackErr)
}

func (s *dispatcherService) ask(ctx context.Context, provider *Provider, text string) (*ProviderResponse, error) {
	request := openai.ChatCompletionRequest{
		Model:       provider.Model,
		Temperature: provider.Temperature,
		MaxTokens:   provider.MaxTokens,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: provider.SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: text},
		},
	}

	resp, err := provider.Client.CreateChatCompletion(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("provider %s: %w", provider.Label, err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("provider %s returned no choices", provider.Label)
	}

	// An empty answer counts as a malformed response so the fallback still runs.
	answer := strings.TrimSpace(resp.Choices[0].Message.Content)
	if answer == "" {
		return nil, fmt.Errorf("provider %s returned an empty answer", provider.Label)
	}
	return &ProviderResponse{Text: answer, Label: provider.Label}, nil
}
