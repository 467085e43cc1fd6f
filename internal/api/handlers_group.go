package api

import "Pawtner/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	AuthHandler       *handler.AuthHandler
	MatchHandler      *handler.MatchHandler
	IMHandler         *handler.IMHandler
	ExpertHandler     *handler.ExpertHandler
	AIHandler         *handler.AIHandler
	ModerationHandler *handler.ModerationHandler
	WSHandler         *handler.WsHandler
}
