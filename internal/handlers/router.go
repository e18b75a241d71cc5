package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/taskheroes/task-heroes-api/internal/middleware"
)

// RegisterRoutes wires the REST surface onto the router. Caller identity
// travels as query parameters on every request; admin-only operations
// are gated by middleware.
func RegisterRoutes(r *gin.Engine, userHandler *UserHandler, taskHandler *TaskHandler, rewardHandler *RewardHandler) {
	r.Use(middleware.CallerIdentity())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	users := r.Group("/users")
	{
		users.GET("", userHandler.ListUsers)
		users.POST("", userHandler.CreateUser)
		users.POST("/login", userHandler.Login)
		users.GET("/:id", userHandler.GetUser)
		users.PUT("/:id", userHandler.UpdateUser)
		users.POST("/:id/add-points", userHandler.AddPoints)
		users.POST("/:id/subtract-points", userHandler.SubtractPoints)
		users.DELETE("/:id", middleware.RequireAdmin(), userHandler.DeleteUser)
	}

	tasks := r.Group("/tasks")
	{
		tasks.GET("", taskHandler.ListTasks)
		tasks.GET("/incomplete", taskHandler.ListIncompleteTasks)
		tasks.GET("/completed", taskHandler.ListCompletedTasks)
		tasks.GET("/check-daily", taskHandler.CheckDailyTasks)
		tasks.POST("", middleware.RequireAdmin(), taskHandler.CreateTask)
		tasks.POST("/reset-daily", middleware.RequireAdmin(), taskHandler.ResetDailyTasks)
		tasks.POST("/generate", middleware.RequireAdmin(), taskHandler.GenerateTasks)
		tasks.GET("/:id", taskHandler.GetTask)
		tasks.PUT("/:id", middleware.RequireAdmin(), taskHandler.UpdateTask)
		tasks.PUT("/:id/complete", taskHandler.CompleteTask)
		tasks.DELETE("/:id", middleware.RequireAdmin(), taskHandler.DeleteTask)
	}

	rewards := r.Group("/rewards")
	{
		rewards.GET("", rewardHandler.ListRewards)
		rewards.GET("/available", rewardHandler.ListAvailableRewards)
		rewards.GET("/redeemed", rewardHandler.ListRedeemedRewards)
		rewards.POST("", middleware.RequireAdmin(), rewardHandler.CreateReward)
		rewards.GET("/:id", rewardHandler.GetReward)
		rewards.PUT("/:id/redeem", rewardHandler.RedeemReward)
		rewards.DELETE("/:id", middleware.RequireAdmin(), rewardHandler.DeleteReward)
	}
}
