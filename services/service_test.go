package services

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/pallavigowda6789-tech/attendance-system/database"
	"github.com/pallavigowda6789-tech/attendance-system/models"
)

// newTestDB เปิด sqlite in-memory แยกต่อเทสต์
// จำกัด 1 connection เพราะ :memory: ผูก schema ไว้กับ connection เดียว
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

var userSeq int

// seedUser สร้าง user LOCAL แบบเร็ว ๆ ไว้ใช้ในเทสต์
func seedUser(t *testing.T, db *gorm.DB) *models.User {
	t.Helper()
	userSeq++
	u := &models.User{
		Username:     fmt.Sprintf("user%d", userSeq),
		Email:        fmt.Sprintf("user%d@example.com", userSeq),
		Role:         models.RoleUser,
		Enabled:      true,
		AuthProvider: models.ProviderLocal,
	}
	require.NoError(t, db.Create(u).Error)
	return u
}
