package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"course-gate.backend/internal/interfaces/http/handlers"
	"course-gate.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	loginHandler        *handlers.LoginHandler
	tokenHandler        *handlers.TokenHandler
	adminAuthHandler    *handlers.AdminAuthHandler
	adminAuthMiddleware gin.HandlerFunc
	loginRateLimit      gin.HandlerFunc
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Student login (public, rate limited)
		if d.loginRateLimit != nil {
			v1.POST("/login", d.loginRateLimit, d.loginHandler.Login)
		} else {
			v1.POST("/login", d.loginHandler.Login)
		}

		admin := v1.Group("/admin")
		{
			// Admin auth (public)
			admin.POST("/login", d.adminAuthHandler.Login)

			// Everything else requires the admin actor
			protected := admin.Group("")
			protected.Use(d.adminAuthMiddleware, middleware.RequireAdmin())
			{
				protected.POST("/logout", d.adminAuthHandler.Logout)

				protected.POST("/tokens", d.tokenHandler.IssueToken)
				protected.DELETE("/students/:id/token", d.tokenHandler.RevokeToken)
				protected.GET("/students", d.tokenHandler.ListStudents)
				protected.GET("/login-history", d.tokenHandler.ListLoginHistory)
			}
		}
	}
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "course-gate-backend",
			"version": "0.1.0",
		})
	})
}

func applyCORSMiddleware(r *gin.Engine) {
	r.Use(func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		if origin != "" {
			c.Header("Access-Control-Allow-Origin", origin)
			c.Header("Access-Control-Allow-Credentials", "true")
		}
		c.Header("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization, X-Request-ID, X-Session-Id")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	})
}
