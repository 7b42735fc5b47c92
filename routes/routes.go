package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/mockanytime/dakplus/controllers"
	"github.com/mockanytime/dakplus/middleware"
	"github.com/mockanytime/dakplus/utils"
)

// SetupRouter initializes and returns the Gin router with all routes
func SetupRouter() *gin.Engine {
	router := gin.New()

	router.Use(utils.LoggerMiddleware())
	router.Use(utils.CORSMiddleware())
	router.Use(utils.RecoveryMiddleware())
	router.Use(utils.RequestIDMiddleware())
	router.Use(utils.SecurityHeadersMiddleware())

	auth := router.Group("/auth")
	{
		auth.POST("/request-otp", controllers.RequestOTP)
		auth.POST("/verify-otp", controllers.VerifyOTP)
	}

	payments := router.Group("/payments")
	{
		payments.POST("/create-order", controllers.CreateOrder)
		payments.POST("/verify-payment", controllers.VerifyPayment)
		payments.GET("/callback", controllers.PaymentCallback)
		payments.GET("/check-access", controllers.CheckAccess)
		payments.GET("/user-purchases", controllers.UserPurchases)
		payments.POST("/reconcile", middleware.AuthMiddleware(), middleware.AdminMiddleware(), controllers.ReconcilePayments)
	}

	topics := router.Group("/topics")
	{
		topics.GET("", controllers.ListTopics)
		topics.GET("/:id", controllers.GetTopic)
		topics.POST("", middleware.AuthMiddleware(), middleware.AdminMiddleware(), controllers.CreateTopic)
		topics.PUT("/:id", middleware.AuthMiddleware(), middleware.AdminMiddleware(), controllers.UpdateTopic)
		topics.DELETE("/:id", middleware.AuthMiddleware(), middleware.AdminMiddleware(), controllers.DeleteTopic)
	}

	subtopics := router.Group("/subtopics")
	{
		subtopics.GET("", controllers.ListSubtopics)
		subtopics.GET("/:id", controllers.GetSubtopic)
		subtopics.POST("", middleware.AuthMiddleware(), middleware.AdminMiddleware(), controllers.CreateSubtopic)
		subtopics.PUT("/:id", middleware.AuthMiddleware(), middleware.AdminMiddleware(), controllers.UpdateSubtopic)
		subtopics.DELETE("/:id", middleware.AuthMiddleware(), middleware.AdminMiddleware(), controllers.DeleteSubtopic)
	}

	questions := router.Group("/questions")
	{
		questions.GET("", controllers.ListQuestions)
		questions.GET("/:id", controllers.GetQuestion)
		questions.POST("", middleware.AuthMiddleware(), middleware.AdminMiddleware(), controllers.CreateQuestion)
		questions.PUT("/:id", middleware.AuthMiddleware(), middleware.AdminMiddleware(), controllers.UpdateQuestion)
		questions.DELETE("/:id", middleware.AuthMiddleware(), middleware.AdminMiddleware(), controllers.DeleteQuestion)
	}

	tests := router.Group("/tests")
	{
		tests.GET("", controllers.ListTests)
		tests.GET("/:id", controllers.GetTest)
		tests.POST("", middleware.AuthMiddleware(), controllers.CreateTest)
		tests.PUT("/:id", middleware.AuthMiddleware(), controllers.UpdateTest)
		tests.DELETE("/:id", middleware.AuthMiddleware(), middleware.AdminMiddleware(), controllers.DeleteTest)
	}

	results := router.Group("/results")
	{
		results.POST("", middleware.AuthMiddleware(), controllers.SubmitResult)
		results.GET("/me", middleware.AuthMiddleware(), controllers.MyResults)
		results.GET("/test/:id", middleware.AuthMiddleware(), middleware.AdminMiddleware(), controllers.TestResults)
		results.GET("/test/:id/leaderboard", controllers.TestLeaderboard)
	}

	users := router.Group("/users", middleware.AuthMiddleware())
	{
		users.GET("/me", controllers.GetProfile)
		users.PUT("/me", controllers.UpdateProfile)
		users.GET("/:id", middleware.AdminMiddleware(), controllers.GetUser)
	}

	notifications := router.Group("/notifications", middleware.AuthMiddleware())
	{
		notifications.GET("", controllers.ListNotifications)
		notifications.GET("/unread-count", controllers.UnreadNotificationCount)
		notifications.PUT("/:id/read", controllers.MarkNotificationRead)
		notifications.POST("", middleware.AdminMiddleware(), controllers.CreateNotification)
	}

	return router
}
