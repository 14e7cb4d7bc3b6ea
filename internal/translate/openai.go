package translate

import (
	"context"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

const defaultOpenAIModel = "gpt-5-mini"

func NewOpenAITranslator(
	ctx context.Context,
	apiKey string,
	opts Options,
) (*LLMTranslator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("API key is required")
	}

	client := openai.NewClient(option.WithAPIKey(apiKey))

	model := opts.Model
	if model == "" {
		model = defaultOpenAIModel
	}

	complete := func(ctx context.Context, prompt string) (string, error) {
		completion, err := client.Chat.Completions.New(
			ctx,
			openai.ChatCompletionNewParams{
				Messages: []openai.ChatCompletionMessageParamUnion{
					openai.UserMessage(prompt),
				},
				Model: model,
			},
		)
		if err != nil {
			return "", err
		}
		if completion == nil || len(completion.Choices) == 0 {
			return "", fmt.Errorf("empty response from OpenAI")
		}
		return completion.Choices[0].Message.Content, nil
	}

	return newLLMTranslator(ProviderOpenAI, model, complete, opts), nil
}
