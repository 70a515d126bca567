package fx

import (
	"context"

	"github.com/joserrivase/Accountability-Buddy-sub000/config"
	"github.com/joserrivase/Accountability-Buddy-sub000/internal/logger"
	"github.com/joserrivase/Accountability-Buddy-sub000/internal/middleware"
	"github.com/joserrivase/Accountability-Buddy-sub000/internal/routes"

	docs "github.com/joserrivase/Accountability-Buddy-sub000/docs"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"go.uber.org/fx"
)

// ServerModule fornece a configuração do servidor HTTP
var ServerModule = fx.Module("server",
	fx.Provide(
		newRouter,
	),
	fx.Invoke(
		setupRoutes,
	),
)

func newRouter() *gin.Engine {
	return gin.Default()
}

func setupRoutes(
	lc fx.Lifecycle,
	cfg *config.Config,
	router *gin.Engine,
	handler *routes.Handler,
	jwtSvc *middleware.JwtService,
	publicRateLimiter *middleware.RateLimiter,
) {
	router.Use(middleware.CORSMiddleware())

	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	public := router.Group("/api")
	public.Use(middleware.RateLimit(publicRateLimiter))
	{
		public.POST("/users", handler.RegisterUser)
	}

	private := router.Group("/api")
	private.Use(middleware.AuthMiddleware(jwtSvc))
	private.Use(middleware.RateLimitByUser())
	{
		private.GET("/users/me", handler.GetMe)

		goals := private.Group("/goals")
		{
			goals.POST("", handler.CreateGoal)
			goals.GET("", handler.ListGoals)
			goals.GET("/:id", handler.GetGoal)
			goals.DELETE("/:id", handler.DeleteGoal)
			goals.GET("/:id/progress", handler.GetGoalProgress)
			goals.POST("/:id/progress", handler.SubmitProgress)
			goals.POST("/:id/winner-seen", handler.MarkWinnerSeen)
		}

		questionnaire := private.Group("/questionnaire")
		{
			questionnaire.POST("/start", handler.StartQuestionnaire)
			questionnaire.POST("/next", handler.AdvanceQuestionnaire)
			questionnaire.POST("/previous", handler.BackQuestionnaire)
			questionnaire.POST("/options", handler.QuestionnaireOptions)
			questionnaire.POST("/finish", handler.FinishQuestionnaire)
		}

		notifications := private.Group("/notifications")
		{
			notifications.GET("", handler.ListNotifications)
			notifications.POST("/:id/read", handler.MarkNotificationRead)
		}

		friends := private.Group("/friends")
		{
			friends.POST("/requests", handler.SendFriendRequest)
			friends.POST("/requests/:id/accept", handler.AcceptFriendRequest)
			friends.GET("", handler.ListFriends)
			friends.GET("/requests/pending", handler.ListPendingFriendRequests)
		}
	}

	serverAddr := ":" + cfg.Server.Port
	logger.Info().
		Str("address", serverAddr).
		Str("environment", cfg.App.Environment).
		Msg("Servidor iniciando")

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := router.Run(serverAddr); err != nil {
					logger.Fatal().Err(err).Msg("Falha ao iniciar servidor")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info().Msg("Servidor parando...")
			return nil
		},
	})
}
