package classify

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// maxRawAdviceLen bounds how much unparseable model output gets spoken
// verbatim as advice.
const maxRawAdviceLen = 400

// ChatCompleter is the slice of the OpenAI client the remote classifier
// needs. Tests substitute a mock.
type ChatCompleter interface {
	CreateChatCompletion(ctx context.Context, req openai.ChatCompletionRequest) (openai.ChatCompletionResponse, error)
}

// Remote classifies symptom text by calling a chat-completion backend with
// the Asha system prompt and parsing the structured JSON reply.
type Remote struct {
	client  ChatCompleter
	model   string
	timeout time.Duration
}

// NewRemote builds a Remote classifier. A zero timeout falls back to 8s;
// telephony webhooks must answer within the provider's deadline, so the
// model call can never be unbounded.
func NewRemote(client ChatCompleter, model string, timeout time.Duration) *Remote {
	if timeout <= 0 {
		timeout = 8 * time.Second
	}
	return &Remote{client: client, model: model, timeout: timeout}
}

// Classify sends the symptom text to the model. It returns an error only for
// transport/backend failures; malformed model output is recovered locally by
// parseVerdict and is not an error.
func (r *Remote) Classify(ctx context.Context, symptomText string) (Verdict, error) {
	if r.client == nil {
		return Verdict{}, errors.New("remote classifier not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	resp, err := r.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: r.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: symptomText},
		},
		Temperature: 0.2,
	})
	if err != nil {
		return Verdict{}, err
	}
	if len(resp.Choices) == 0 {
		return Verdict{}, errors.New("empty completion response")
	}
	return parseVerdict(resp.Choices[0].Message.Content), nil
}

// parseVerdict decodes the model's JSON reply. On malformed output the raw
// text (truncated) becomes the advice and IsCritical stays false: a parse
// failure must never trigger referral or transfer side effects.
func parseVerdict(raw string) Verdict {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.TrimPrefix(cleaned, "```json")
	cleaned = strings.TrimPrefix(cleaned, "```")
	cleaned = strings.TrimSuffix(cleaned, "```")
	cleaned = strings.TrimSpace(cleaned)

	var v Verdict
	if err := json.Unmarshal([]byte(cleaned), &v); err == nil && v.Advice != "" {
		return v
	}

	advice := raw
	if r := []rune(advice); len(r) > maxRawAdviceLen {
		advice = string(r[:maxRawAdviceLen])
	}
	return Verdict{IsCritical: false, Advice: advice}
}
