package llm

import (
	"Pawtner/internal/api/config"
	log "log/slog"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

var llmClient llms.Model

// 宠物养护助手的系统提示词
const petCarePrompt = "你是 Pawtner 平台的宠物养护助手，请用简洁、友好的中文回答用户关于宠物喂养、健康、行为训练的问题。涉及诊疗判断时提醒用户咨询平台认证专家。"

func InitLLM() error {
	cfg := config.Cfg.LLM

	llm, err := openai.New(
		openai.WithModel(cfg.Model),
		openai.WithToken(cfg.ApiKey),
		openai.WithBaseURL(cfg.URL),
	)

	if err != nil {
		log.Error("AI大模型初始化失败", "err", err)
		return err
	}

	llmClient = llm

	return nil
}
