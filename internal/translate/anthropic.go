package translate

import (
	"context"
	"fmt"
	"strings"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
)

const anthropicMaxTokens = 4096

func NewAnthropicTranslator(
	ctx context.Context,
	apiKey string,
	opts Options,
) (*LLMTranslator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client := anthropic.NewClient(option.WithAPIKey(apiKey))

	model := anthropic.Model(opts.Model)
	if opts.Model == "" {
		model = anthropic.ModelClaudeHaiku4_5
	}

	complete := func(ctx context.Context, prompt string) (string, error) {
		message, err := client.Messages.New(
			ctx,
			anthropic.MessageNewParams{
				Model:     model,
				MaxTokens: anthropicMaxTokens,
				Messages: []anthropic.MessageParam{
					anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
				},
			},
		)
		if err != nil {
			return "", err
		}
		if message == nil || len(message.Content) == 0 {
			return "", fmt.Errorf("empty response from Anthropic")
		}

		var sb strings.Builder
		for _, block := range message.Content {
			if block.Type == "text" {
				sb.WriteString(block.Text)
			}
		}
		return sb.String(), nil
	}

	return newLLMTranslator(ProviderAnthropic, string(model), complete, opts), nil
}
