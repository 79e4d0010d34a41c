package provider

import (
	"context"
	"errors"
	"fmt"
	"strings"

	sdk "github.com/github/copilot-sdk/go"
)

const defaultCopilotModel = "gpt-4.1"

// CopilotConfig holds configuration for the GitHub Copilot SDK backend
type CopilotConfig struct {
	// Model overrides the default model
	Model string

	// WorkingDirectory is handed to the Copilot CLI; it is never written to
	WorkingDirectory string
}

type copilotProvider struct {
	client *sdk.Client
	model  string
	cwd    string
}

// NewCopilot starts a Copilot SDK client. Close must be called on shutdown.
func NewCopilot(ctx context.Context, cfg *CopilotConfig) (*copilotProvider, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = defaultCopilotModel
	}

	client := sdk.NewClient(&sdk.ClientOptions{Cwd: cfg.WorkingDirectory})
	if err := client.Start(ctx); err != nil {
		return nil, fmt.Errorf("failed to start copilot sdk client: %w", err)
	}

	return &copilotProvider{
		client: client,
		model:  model,
		cwd:    cfg.WorkingDirectory,
	}, nil
}

// Name identifies the backend
func (p *copilotProvider) Name() string {
	return "copilot:" + p.model
}

// Complete opens a short lived session per prompt so replies never share history
func (p *copilotProvider) Complete(ctx context.Context, input *CompleteInput) (*CompleteOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	session, err := p.client.CreateSession(ctx, &sdk.SessionConfig{
		Model:            p.model,
		WorkingDirectory: p.cwd,
		InfiniteSessions: &sdk.InfiniteSessionConfig{Enabled: sdk.Bool(false)},
	})
	if err != nil {
		return nil, &TransientError{Err: fmt.Errorf("create copilot session: %w", err)}
	}
	defer session.Destroy()

	resp, err := session.SendAndWait(ctx, sdk.MessageOptions{
		Prompt: input.System + "\n\n" + input.Prompt,
	})
	if err != nil {
		return nil, &TransientError{Err: fmt.Errorf("copilot send: %w", err)}
	}

	text := ""
	if resp != nil && resp.Data.Content != nil {
		text = strings.TrimSpace(*resp.Data.Content)
	}
	if text == "" {
		return nil, ErrEmptyResponse
	}

	return &CompleteOutput{Text: text}, nil
}

// Close stops the underlying Copilot CLI process
func (p *copilotProvider) Close() error {
	if p.client == nil {
		return nil
	}
	return p.client.Stop()
}
