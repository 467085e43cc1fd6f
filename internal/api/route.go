package api

import (
	"Pawtner/internal/api/middleware"
	"Pawtner/internal/pkg/consts"
	"Pawtner/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		authGroup := apiGroup.Group("/auth")
		{
			authGroup.POST("/register", group.AuthHandler.Register)
			authGroup.POST("/login", group.AuthHandler.Login)

			loggedGroup := authGroup.Group("")
			loggedGroup.Use(middleware.AuthMiddleware())
			{
				loggedGroup.POST("/logout", group.AuthHandler.Logout)
			}
		}

		matchGroup := apiGroup.Group("/match")
		matchGroup.Use(middleware.AuthMiddleware())
		{
			matchGroup.POST("/like", group.MatchHandler.SendLike)
			matchGroup.POST("/respond", group.MatchHandler.RespondToLike)
			matchGroup.GET("/likes/received", group.MatchHandler.GetLikesReceived)
			matchGroup.GET("/badges", group.MatchHandler.GetBadgeCounts)
			matchGroup.GET("/stats", group.MatchHandler.GetStats)
		}

		imGroup := apiGroup.Group("/im")
		{
			imGroup.GET("", group.WSHandler.Connect)

			chatGroup := imGroup.Group("")
			chatGroup.Use(middleware.AuthMiddleware())
			{
				chatGroup.POST("/send", group.IMHandler.SendMessage)
				chatGroup.GET("/history/:conv_id", group.IMHandler.GetChatHistory)
				chatGroup.GET("/list", group.IMHandler.GetConversationList)
				chatGroup.DELETE("/conversation/:conv_id", group.IMHandler.DeleteConversation)
				chatGroup.POST("/read", group.IMHandler.MarkAsRead)
			}
		}

		expertGroup := apiGroup.Group("/expert")
		expertGroup.Use(middleware.AuthMiddleware())
		{
			expertGroup.POST("/conversation", group.ExpertHandler.OpenConversation)
			expertGroup.POST("/send", group.ExpertHandler.SendMessage)
			expertGroup.GET("/history/:conv_id", group.ExpertHandler.GetChatHistory)

			inviteGroup := expertGroup.Group("")
			inviteGroup.Use(middleware.CheckRoles(consts.RoleExpert))
			{
				inviteGroup.GET("/invites", group.ExpertHandler.GetInvites)
			}
		}

		aiGroup := apiGroup.Group("/ai")
		aiGroup.Use(middleware.AuthMiddleware())
		{
			aiGroup.POST("/ask", group.AIHandler.Ask)
			aiGroup.GET("/history", group.AIHandler.GetChatHistory)
		}

		// 违禁词维护，仅管理员
		moderationGroup := apiGroup.Group("/moderation")
		moderationGroup.Use(middleware.AuthMiddleware(), middleware.CheckRoles(consts.RoleAdmin))
		{
			moderationGroup.POST("/words", group.ModerationHandler.CreateBadWord)
			moderationGroup.PUT("/words", group.ModerationHandler.UpdateBadWord)
			moderationGroup.DELETE("/words/:word_id", group.ModerationHandler.DisableBadWord)
			moderationGroup.POST("/scan", group.ModerationHandler.Scan)
			moderationGroup.POST("/reload", group.ModerationHandler.Reload)
		}
	}

	return r
}
