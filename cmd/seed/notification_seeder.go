package main

import (
	"log"

	"growth-engine-be/internal/model"

	"github.com/fatih/color"
	"gorm.io/gorm"
)

// SeedNotificationTypes populates the registry of event-driven notifications.
func SeedNotificationTypes(db *gorm.DB) {
	types := []model.NotificationType{
		{
			Code:        "USER_LOGIN",
			DisplayName: "Login Activity",
			Template:    "You logged in at {time} from {device}",
			TargetType:  "SELF",
			IsActive:    true,
		},
		{
			Code:        "ANALYSIS_COMPLETED",
			DisplayName: "Analysis Completed",
			Template:    "Analysis {analysis_id} for student {student_id} is ready",
			TargetType:  "SELF",
			IsActive:    true,
		},
		{
			Code:        "USER_REGISTERED",
			DisplayName: "New User Registration",
			Template:    "New user registered: {email}",
			TargetType:  "ADMIN",
			IsActive:    true,
		},
		{
			Code:        "SYSTEM_BROADCAST",
			DisplayName: "System Announcement",
			Template:    "{message}",
			TargetType:  "BROADCAST",
			IsActive:    true,
		},
	}

	for _, t := range types {
		var existing model.NotificationType
		if err := db.Where("code = ?", t.Code).First(&existing).Error; err == nil {
			color.Yellow("Notification type '%s' already exists, skipping...", t.Code)
			continue
		}
		if err := db.Create(&t).Error; err != nil {
			log.Printf("Error creating notification type '%s': %v", t.Code, err)
			continue
		}
		color.Green("Notification type created: %s", t.Code)
	}
}
