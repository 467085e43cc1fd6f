package wire

import (
	"Pawtner/internal/api"
	"Pawtner/internal/api/handler"
	"Pawtner/internal/job"
	"Pawtner/internal/pkg/cron"
	"Pawtner/internal/pkg/llm"
	pkgmongo "Pawtner/internal/pkg/mongo"
	"Pawtner/internal/pkg/push"
	"Pawtner/internal/repository"
	"Pawtner/internal/service"
	"context"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router  *gin.Engine
	DB      *gorm.DB
	CronMgr *cron.Manager
}

func BuildApplication(db *gorm.DB, mongoDB *mongo.Database) (*ApplicationContainer, error) {
	userRepo := repository.NewUserRepo(db)
	petRepo := repository.NewPetRepo(db)
	likeRepo := repository.NewLikeRepo(db)
	matchRepo := repository.NewMatchRepo(db)
	convRepo := repository.NewConversationRepo(db)
	badWordRepo := repository.NewBadWordRepo(db)
	dailyActionRepo := repository.NewDailyActionRepo(db)
	confirmRepo := repository.NewConsultConfirmRepo(db)
	messageRepo := pkgmongo.NewMessageRepo(mongoDB)

	notifier := push.NewRedisNotifier()

	authService := service.NewAuthService(userRepo)
	quotaService := service.NewQuotaService(dailyActionRepo, userRepo)
	moderationService := service.NewModerationService(badWordRepo)
	matchService := service.NewMatchService(likeRepo, matchRepo, petRepo, convRepo, quotaService, notifier)
	chatUserService := service.NewChatUserService(convRepo, messageRepo, moderationService, notifier)
	chatExpertService := service.NewChatExpertService(convRepo, messageRepo, userRepo, confirmRepo, moderationService, notifier)
	chatAIService := service.NewChatAIService(convRepo, messageRepo, llm.NewAsker(), moderationService, quotaService)

	// 启动时装载违禁词快照，失败不阻塞启动，由定时任务补偿
	_ = moderationService.Reload(context.Background())

	handlers := &api.HandlersGroup{
		AuthHandler:       handler.NewAuthHandler(authService),
		MatchHandler:      handler.NewMatchHandler(matchService),
		IMHandler:         handler.NewIMHandler(chatUserService),
		ExpertHandler:     handler.NewExpertHandler(chatExpertService),
		AIHandler:         handler.NewAIHandler(chatAIService),
		ModerationHandler: handler.NewModerationHandler(moderationService),
		WSHandler:         handler.NewWsHandler(),
	}

	router := api.SetupRouter(handlers)

	cronMgr := cron.NewCronManager(job.NewBadWordReloadJob(moderationService))

	return &ApplicationContainer{
		Router:  router,
		DB:      db,
		CronMgr: cronMgr,
	}, nil
}
