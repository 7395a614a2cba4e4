package routes

import (
	"github.com/Pandodo-bird/Capstone-MoodMirror-sub000/controllers"
	"github.com/Pandodo-bird/Capstone-MoodMirror-sub000/middlewares"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Controllers struct {
	Auth          *controllers.AuthController
	User          *controllers.UserController
	Journal       *controllers.JournalController
	Calendar      *controllers.CalendarController
	Activity      *controllers.ActivityController
	AvoidedFoods  *controllers.AvoidedFoodController
	Devices       *controllers.DeviceController
	Notifications *controllers.NotificationController
	Realtime      *controllers.RealtimeController
}

func SetupRouter(db *gorm.DB, c Controllers) *gin.Engine {
	r := gin.Default()

	// Public auth routes
	auth := r.Group("/auth")
	{
		auth.POST("/register", c.Auth.Register)
		auth.POST("/verify", c.Auth.VerifyEmail)
		auth.POST("/login", c.Auth.Login)
		auth.POST("/forgot-password", c.Auth.ForgotPassword)
		auth.POST("/reset-password", c.Auth.ResetPassword)
	}

	// Protected routes
	user := r.Group("/user")
	user.Use(middlewares.AuthMiddleware(db))
	{
		user.GET("/profile", c.User.GetProfile)
		user.PUT("/profile", c.User.UpdateProfile)
		user.GET("/notifications", c.Notifications.List)
		user.POST("/notifications/toggle", c.Notifications.Toggle)
		user.POST("/devices", c.Devices.Register)
	}

	journal := r.Group("/journal")
	journal.Use(middlewares.AuthMiddleware(db))
	{
		journal.GET("/:date/entries", c.Journal.ListEntries)
		journal.PUT("/:date/entries/:index", c.Journal.SaveEntry)
		journal.DELETE("/:date/entries/:index", c.Journal.DeleteEntry)
		journal.GET("/:date/entries/:index/detail", c.Journal.GetEntryDetail)
		journal.POST("/:date/entries/:index/suggestions", c.Journal.RefreshSuggestions)
	}

	calendar := r.Group("/calendar")
	calendar.Use(middlewares.AuthMiddleware(db))
	{
		calendar.GET("/:year/:month", c.Calendar.GetMonth)
	}

	profile := r.Group("/profile")
	profile.Use(middlewares.AuthMiddleware(db))
	{
		profile.GET("/activity", c.Activity.GetActivitySummary)
	}

	prefs := r.Group("/preferences")
	prefs.Use(middlewares.AuthMiddleware(db))
	{
		prefs.GET("/avoided-foods", c.AvoidedFoods.List)
		prefs.POST("/avoided-foods", c.AvoidedFoods.Add)
		prefs.DELETE("/avoided-foods/:food", c.AvoidedFoods.Remove)
	}

	ws := r.Group("/ws")
	ws.Use(middlewares.AuthMiddleware(db))
	{
		ws.GET("/events", c.Realtime.EventsWS)
	}

	return r
}
