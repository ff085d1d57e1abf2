// Package testutil opens throwaway sqlite databases for repo and service
// tests.
package testutil

import (
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap/zaptest"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/yungbote/nexus-backend/internal/domain"
	"github.com/yungbote/nexus-backend/internal/platform/logger"
)

// Logger routes log output through tb so it only shows for failing tests.
func Logger(tb testing.TB) *logger.Logger {
	tb.Helper()
	return logger.NewWithCore(zaptest.NewLogger(tb).Core())
}

// DB returns a migrated in-memory database named after a fresh uuid, so
// parallel tests never share tables. It is closed on cleanup.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()
	db, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{
		TranslateError:                           true,
		DisableForeignKeyConstraintWhenMigrating: true,
		Logger:                                   gormlogger.Discard,
	})
	if err != nil {
		tb.Fatalf("open sqlite: %v", err)
	}
	raw, err := db.DB()
	if err != nil {
		tb.Fatalf("sql handle: %v", err)
	}
	// sqlite allows a single writer.
	raw.SetMaxOpenConns(1)
	tb.Cleanup(func() { _ = raw.Close() })

	if err := db.AutoMigrate(domain.AllModels()...); err != nil {
		tb.Fatalf("automigrate: %v", err)
	}
	return db
}

// Tx opens a transaction that is rolled back when tb finishes.
func Tx(tb testing.TB, db *gorm.DB) *gorm.DB {
	tb.Helper()
	tx := db.Begin()
	if err := tx.Error; err != nil {
		tb.Fatalf("begin: %v", err)
	}
	tb.Cleanup(func() { tx.Rollback() })
	return tx
}
