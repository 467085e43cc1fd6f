package llm

import (
	"context"
	log "log/slog"

	"github.com/tmc/langchaingo/llms"
)

// Asker AI 问答抽象，便于在测试中替换
type Asker interface {
	Ask(ctx context.Context, question string) (string, error)
}

type modelAsker struct{}

func NewAsker() Asker {
	return &modelAsker{}
}

// Ask 单轮问答
func (s *modelAsker) Ask(ctx context.Context, question string) (string, error) {
	resp, err := llmClient.GenerateContent(ctx,
		[]llms.MessageContent{
			llms.TextParts(llms.ChatMessageTypeSystem, petCarePrompt),
			llms.TextParts(llms.ChatMessageTypeHuman, question),
		},
		llms.WithTemperature(0.7),
	)
	if err != nil {
		log.Error("AI大模型请求失败", "err", err)
		return "", err
	}

	if len(resp.Choices) > 0 {
		return resp.Choices[0].Content, nil
	}

	return "", nil
}
