package app

import (
	"feelio_backend/docs"
	"feelio_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	api := router.Group("/api")
	{
		api.GET("/health", c.health.HealthCheck)

		// 1. 账号
		a.registerAccountRoutes(api, c)

		// 2. 故事
		a.registerNarrativeRoutes(api, c)

		// 3. 作答与计分
		a.registerResponseRoutes(api, c)

		// 4. 外部模型
		api.POST("/gpt-feedback", c.feedback.GenerateFeedback)
		api.POST("/predict", c.feedback.Predict)
	}
}

func (a *App) registerAccountRoutes(api *gin.RouterGroup, c *controllers) {
	api.POST("/signup", c.auth.Signup)
	api.POST("/login", c.auth.Login)
	api.GET("/pendamping/:id/children", c.auth.GetChildren)

	user := api.Group("/user/:user_id")
	{
		user.POST("/verify-password", c.user.VerifyPassword)
		user.GET("/achievements", c.achievement.GetAchievements)
		user.GET("/upcoming-badges", c.achievement.GetUpcomingBadges)
		user.GET("/summary", c.achievement.GetSummary)
		user.GET("/stats", c.achievement.GetStats)
		user.GET("/responses", c.response.GetUserResponses)
	}
}

func (a *App) registerNarrativeRoutes(api *gin.RouterGroup, c *controllers) {
	narratives := api.Group("/narratives")
	{
		narratives.GET("", c.narrative.ListNarratives)
		narratives.POST("", c.narrative.CreateNarrative)
		narratives.GET("/:id", c.narrative.GetNarrative)
		narratives.POST("/:id/image", c.narrative.UploadImage)
	}
}

func (a *App) registerResponseRoutes(api *gin.RouterGroup, c *controllers) {
	responses := api.Group("/responses")
	{
		responses.POST("", c.response.SaveResponse)
		responses.POST("/flag-latest", c.response.FlagLatest)
		responses.PATCH("/:id/override-correct", c.response.OverrideCorrect)
		responses.PATCH("/:id/override-incorrect", c.response.OverrideIncorrect)
		responses.PATCH("/:id/add_followup", c.response.AddFollowUp)
		responses.PATCH("/:id/mark-repeatable", c.response.MarkRepeatable)
		responses.PATCH("/:id/unmark-repeatable", c.response.UnmarkRepeatable)
		responses.POST("/:id/flag", c.response.Flag)
		responses.PATCH("/:id/unflag", c.response.Unflag)
	}
}
