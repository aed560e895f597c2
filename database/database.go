package database

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/pallavigowda6789-tech/attendance-system/config"
	"github.com/pallavigowda6789-tech/attendance-system/models"
)

var DB *gorm.DB

func Connect(cfg *config.Config) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		TranslateError: true, // ให้ unique violation กลายเป็น gorm.ErrDuplicatedKey
	})
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	DB = db

	if err := Migrate(DB); err != nil {
		log.Fatalf("auto migrate failed: %v", err)
	}
}

// Migrate แยกออกมาให้ชุดทดสอบเรียกกับ DB ของตัวเองได้
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Attendance{},
		&models.Leave{},
	)
}
