// Package chat runs a conversational assistant as a single-stage
// pipeline over the same runner and store used by the hunt flow.
package chat

import (
	"context"
	"fmt"

	"github.com/martin/listing-hunter/internal/llm"
	"github.com/martin/listing-hunter/internal/pipeline"
	"github.com/martin/listing-hunter/internal/state"
)

const (
	// KeyMessage is the store key holding the user's message.
	KeyMessage = "message"
	// KeyReply is the store key holding the assistant's reply.
	KeyReply = "reply"
)

const systemPrompt = `You are a helpful assistant for a property and job search service in Prague.
Answer questions about neighborhoods, rental prices, commute times, and the local job market.
Keep answers concise and practical. If the user describes what they are looking for,
suggest concrete search criteria (budget, districts, number of bedrooms, amenities).`

// Stage generates a reply to the message in the store.
type Stage struct {
	Client llm.Client
	Tier   llm.ModelTier
}

func (s *Stage) Name() string      { return "chat" }
func (s *Stage) Inputs() []string  { return []string{KeyMessage} }
func (s *Stage) Outputs() []string { return []string{KeyReply} }

func (s *Stage) Execute(ctx context.Context, store *state.Store) error {
	raw, _ := store.Get(KeyMessage)
	message, ok := raw.(string)
	if !ok {
		return &pipeline.ContractViolationError{
			Stage:   s.Name(),
			Key:     KeyMessage,
			Message: fmt.Sprintf("expected string, got %T", raw),
		}
	}

	tier := s.Tier
	if tier == "" {
		tier = llm.TierStandard
	}

	prompt := fmt.Sprintf("%s\n\nUser: %s", systemPrompt, message)
	reply, err := s.Client.GenerateContent(ctx, prompt, tier)
	if err != nil {
		return &pipeline.DependencyError{
			Stage:     s.Name(),
			Operation: "generate reply",
			Cause:     err,
		}
	}

	store.Set(KeyReply, reply)
	return nil
}

// Agent answers one-off messages. Each call runs an independent session.
type Agent struct {
	client llm.Client
	tier   llm.ModelTier
}

// NewAgent creates a chat agent backed by the given LLM client.
func NewAgent(client llm.Client, tier llm.ModelTier) *Agent {
	return &Agent{client: client, tier: tier}
}

// Reply generates a reply to the user's message.
func (a *Agent) Reply(ctx context.Context, message string) (string, error) {
	store := state.New()
	store.Set(KeyMessage, message)

	runner := pipeline.NewRunner(&Stage{Client: a.client, Tier: a.tier})
	report := runner.Run(ctx, store)
	if !report.Success() {
		if report.Err != nil {
			return "", report.Err
		}
		return "", fmt.Errorf("chat pipeline did not complete")
	}

	raw, _ := store.Get(KeyReply)
	reply, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("unexpected reply type %T", raw)
	}
	return reply, nil
}
