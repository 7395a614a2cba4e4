package main

import (
	"log"

	"github.com/Pandodo-bird/Capstone-MoodMirror-sub000/config"
	"github.com/Pandodo-bird/Capstone-MoodMirror-sub000/controllers"
	"github.com/Pandodo-bird/Capstone-MoodMirror-sub000/routes"
	"github.com/Pandodo-bird/Capstone-MoodMirror-sub000/services"
	"github.com/Pandodo-bird/Capstone-MoodMirror-sub000/utils"
)

func main() {
	db := config.InitDB()
	utils.InitS3()

	hub := services.NewRealtimeHub()
	push, err := services.NewPushService(db)
	if err != nil {
		log.Printf("push notifications disabled: %v", err)
		push = nil
	}
	alerts := services.NewAlertBus(db, hub, push)

	journalSvc := services.NewJournalService(db, services.NewGenerationService(), alerts)
	activitySvc := services.NewActivityService(journalSvc.MoodsForDay)

	r := routes.SetupRouter(db, routes.Controllers{
		Auth:          controllers.NewAuthController(services.NewAuthService(db)),
		User:          controllers.NewUserController(services.NewUserService(db)),
		Journal:       controllers.NewJournalController(journalSvc),
		Calendar:      controllers.NewCalendarController(journalSvc),
		Activity:      controllers.NewActivityController(activitySvc),
		AvoidedFoods:  controllers.NewAvoidedFoodController(services.NewAvoidedFoodService(db)),
		Devices:       controllers.NewDeviceController(push),
		Notifications: controllers.NewNotificationController(db, alerts),
		Realtime:      controllers.NewRealtimeController(hub),
	})
	r.Run(":8080")
}
