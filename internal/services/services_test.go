package services

import (
	"fmt"
	"sync/atomic"
	"testing"

	"github.com/kingonuoha/the-truth-pill-sub001/internal/db"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

var testDBCounter int64

// setupTestDB 为每个测试开一个独立的内存库并替换全局 DB
func setupTestDB(t *testing.T) {
	t.Helper()
	dsn := fmt.Sprintf("file:services_test_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBCounter, 1))
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}
	db.DB = gdb
}
