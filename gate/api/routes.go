package api

import (
	"tingtrainer/common/http"
)

// RegisterRoutes 注册所有路由
func RegisterRoutes(server *http.HttpServer, h *Handler) {
	server.GET("/ping", PingHandler)
	server.GET("/health", HealthHandler)

	v1 := server.Group("/api/v1")
	{
		v1.POST("/auth/login", h.LoginHandler)

		analysis := v1.Group("/analysis")
		{
			analysis.POST("/win", h.WinHandler)
			analysis.POST("/waits", h.WaitsHandler)
			analysis.POST("/discards", h.DiscardsHandler)
		}

		// 需要登录
		quiz := v1.Group("/quiz", http.AuthMiddleware(h.jwtConf.Secret))
		{
			quiz.POST("/answer", h.AnswerHandler)
			quiz.POST("/:mode", h.DealHandler)
			quiz.GET("/:id/hint", h.HintHandler)
		}
		stats := v1.Group("/stats", http.AuthMiddleware(h.jwtConf.Secret))
		{
			stats.GET("", h.StatsHandler)
		}
	}
}
