package client

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"
)

type AIClient struct {
	client *openai.Client
	model  string
}

func NewAIClient(apiKey string) *AIClient {
	return &AIClient{
		client: openai.NewClient(apiKey),
		model:  openai.GPT4oMini,
	}
}

// Complete sends one chat-completion request and returns the raw text of the
// first choice. The caller is responsible for extracting anything structured
// out of it.
func (c *AIClient) Complete(ctx context.Context, systemPrompt string, userPrompt string) (string, error) {
	response, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	})
	if err != nil {
		return "", err
	}
	if len(response.Choices) == 0 {
		return "", fmt.Errorf("completion returned no choices")
	}
	return response.Choices[0].Message.Content, nil
}
