package models

import (
	"log"

	"social-network/config"
)

// Migrate 自动迁移所有表结构
func Migrate() {
	err := config.DB.AutoMigrate(
		&User{},
		&Post{},
		&Comment{},
		&Chat{},
		&ChatMessage{},
	)
	if err != nil {
		log.Fatalf("Auto migration failed: %v", err)
	}
}
