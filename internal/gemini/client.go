// Package gemini implements the remote model transport for Haven.
package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/havenchat/haven/internal/chat"
	"github.com/havenchat/haven/internal/debug"
)

// SystemInstruction is the fixed persona and protocol instruction sent
// with every request. The suggestion-directive format is enforced only
// here, by prompt; the protocol parser must therefore tolerate replies
// that ignore it.
const SystemInstruction = `You are Haven, a warm, supportive wellbeing companion for secondary-school students. You listen without judging, help with school stress, friendships, motivation and study habits, and keep your answers short, kind and practical. You are not a therapist and you never diagnose. If a student seems to be in serious distress, gently encourage them to talk to a trusted adult or school counsellor.

After your reply, when it helps the conversation, append exactly one line of quick-reply suggestions in this exact format and nothing else on that line:
[SUGGESTIONS: first option, second option, third option]`

// Client is the interface the conversation controller calls. It returns
// the raw reply text of exactly one model response; an empty string with a
// nil error means the model produced no text.
type Client interface {
	Generate(ctx context.Context, history []chat.Message) (string, error)
}

// GenAIClient calls the Gemini API via the google.golang.org/genai SDK.
type GenAIClient struct {
	client *genai.Client
	model  string
}

// New creates a client for the given API key and model identifier.
func New(ctx context.Context, apiKey, model string) (*GenAIClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}

	return &GenAIClient{
		client: client,
		model:  model,
	}, nil
}

// Model returns the configured model identifier.
func (c *GenAIClient) Model() string {
	return c.model
}

// Generate sends the full ordered history and awaits exactly one reply.
// No retries and no timeout are applied at this layer.
func (c *GenAIClient) Generate(ctx context.Context, history []chat.Message) (string, error) {
	contents := contentsFromHistory(history)

	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(SystemInstruction, genai.RoleUser),
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		return "", fmt.Errorf("generating content: %w", err)
	}

	text := resp.Text()
	debug.Log("[gemini] reply length=%d", len(text))
	return text, nil
}

// contentsFromHistory maps conversation messages to the wire shape: one
// content per message, text part plus an inline-data part when the message
// carries an attachment.
func contentsFromHistory(history []chat.Message) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history))
	for i := range history {
		msg := &history[i]

		role := genai.RoleUser
		if msg.Role == chat.RoleModel {
			role = genai.RoleModel
		}

		var parts []*genai.Part
		if msg.Text != "" {
			parts = append(parts, &genai.Part{Text: msg.Text})
		}
		if msg.Attachment != nil {
			parts = append(parts, &genai.Part{
				InlineData: &genai.Blob{
					MIMEType: msg.Attachment.MIMEType,
					Data:     msg.Attachment.Data,
				},
			})
		}
		if len(parts) == 0 {
			continue
		}

		contents = append(contents, &genai.Content{
			Role:  string(role),
			Parts: parts,
		})
	}
	return contents
}
