package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createStudentTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE students (
		id TEXT PRIMARY KEY,
		email TEXT UNIQUE NOT NULL,
		token TEXT UNIQUE NOT NULL,
		is_active BOOLEAN NOT NULL,
		expires_at DATETIME NOT NULL,
		last_login DATETIME,
		last_ip TEXT,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createLoginHistoryTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE login_history (
		id TEXT PRIMARY KEY,
		student_id TEXT,
		email TEXT NOT NULL,
		ip TEXT,
		user_agent TEXT,
		success BOOLEAN NOT NULL,
		login_time DATETIME NOT NULL
	);`)
}
