package giftrepo

import (
	"context"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// sqlRecorder captures rendered statements from the gorm logger.
type sqlRecorder struct {
	statements []string
}

func (r *sqlRecorder) LogMode(gormlogger.LogLevel) gormlogger.Interface { return r }
func (r *sqlRecorder) Info(context.Context, string, ...interface{})     {}
func (r *sqlRecorder) Warn(context.Context, string, ...interface{})     {}
func (r *sqlRecorder) Error(context.Context, string, ...interface{})    {}

func (r *sqlRecorder) Trace(ctx context.Context, begin time.Time, fc func() (string, int64), err error) {
	sql, _ := fc()
	r.statements = append(r.statements, sql)
}

// dryRunDB renders SQL through the mysql dialector without touching a server.
func dryRunDB(t *testing.T, rec *sqlRecorder) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(mysql.New(mysql.Config{
		DSN:                       "gift:gift@tcp(127.0.0.1:3306)/gifts?parseTime=True",
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		DryRun:               true,
		DisableAutomaticPing: true,
		Logger:               rec,
	})
	if err != nil {
		t.Fatalf("open dry-run db: %v", err)
	}
	return db
}

func TestExistsByNameComparesCaseSensitively(t *testing.T) {
	rec := &sqlRecorder{}
	repo := NewGiftGormRepository(dryRunDB(t, rec))

	_, _ = repo.ExistsByName(context.Background(), "Чайный набор")

	if len(rec.statements) == 0 {
		t.Fatal("no SQL recorded")
	}
	stmt := rec.statements[len(rec.statements)-1]
	if !strings.Contains(stmt, "BINARY name = ") {
		t.Errorf("ExistsByName SQL = %q, want a BINARY name comparison", stmt)
	}
}
