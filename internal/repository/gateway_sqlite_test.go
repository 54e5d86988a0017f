package repository_test

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"
	"time"

	"countdown_timers/internal/repository"

	"github.com/DATA-DOG/go-sqlmock"
)

type sqlmockArgumentFunc func(v driver.Value) bool

func (f sqlmockArgumentFunc) Match(v driver.Value) bool { return f(v) }

func newMockGateway(t *testing.T) (*repository.GatewaySQLite, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New(): %v", err)
	}
	t.Cleanup(func() {
		if err := mock.ExpectationsWereMet(); err != nil {
			t.Errorf("unmet expectations: %v", err)
		}
		_ = db.Close()
	})
	return repository.NewGatewaySQLite(db), mock
}

func TestGatewaySQLite_Save_UpsertsWithUTCTimestamp(t *testing.T) {
	gw, mock := newMockGateway(t)

	isUTCRecent := sqlmockArgumentFunc(func(v driver.Value) bool {
		tm, ok := v.(time.Time)
		if !ok || tm.Location() != time.UTC {
			return false
		}
		now := time.Now().UTC()
		return !tm.Before(now.Add(-5*time.Second)) && !tm.After(now.Add(5*time.Second))
	})

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO kv_store")).
		WithArgs(repository.KeyTimers, `[{"id":"a"}]`, isUTCRecent).
		WillReturnResult(sqlmock.NewResult(1, 1))

	if err := gw.Save(context.Background(), repository.KeyTimers, `[{"id":"a"}]`); err != nil {
		t.Fatalf("Save() error = %v", err)
	}
}

func TestGatewaySQLite_Save_WrapsExecError(t *testing.T) {
	gw, mock := newMockGateway(t)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO kv_store")).
		WillReturnError(errors.New("disk full"))

	err := gw.Save(context.Background(), repository.KeyHistory, "[]")
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestGatewaySQLite_Load(t *testing.T) {
	t.Run("found", func(t *testing.T) {
		gw, mock := newMockGateway(t)
		mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM kv_store WHERE key=?")).
			WithArgs(repository.KeyTimers).
			WillReturnRows(sqlmock.NewRows([]string{"value"}).AddRow("[]"))

		v, found, err := gw.Load(context.Background(), repository.KeyTimers)
		if err != nil || !found || v != "[]" {
			t.Fatalf("Load() = %q, %v, %v", v, found, err)
		}
	})

	t.Run("absent key is not an error", func(t *testing.T) {
		gw, mock := newMockGateway(t)
		mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM kv_store WHERE key=?")).
			WithArgs(repository.KeyHistory).
			WillReturnError(sql.ErrNoRows)

		v, found, err := gw.Load(context.Background(), repository.KeyHistory)
		if err != nil || found || v != "" {
			t.Fatalf("Load() = %q, %v, %v", v, found, err)
		}
	})

	t.Run("query error", func(t *testing.T) {
		gw, mock := newMockGateway(t)
		mock.ExpectQuery(regexp.QuoteMeta("SELECT value FROM kv_store WHERE key=?")).
			WillReturnError(errors.New("db down"))

		if _, _, err := gw.Load(context.Background(), repository.KeyTimers); err == nil {
			t.Fatalf("expected error")
		}
	})
}

func TestGatewaySQLite_Remove(t *testing.T) {
	gw, mock := newMockGateway(t)
	mock.ExpectExec(regexp.QuoteMeta("DELETE FROM kv_store WHERE key=?")).
		WithArgs(repository.KeyHistory).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := gw.Remove(context.Background(), repository.KeyHistory); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
}

func TestGatewaySQLite_EmptyKey(t *testing.T) {
	gw, _ := newMockGateway(t)
	ctx := context.Background()

	if _, _, err := gw.Load(ctx, ""); !errors.Is(err, repository.ErrEmptyKey) {
		t.Fatalf("Load: want ErrEmptyKey, got %v", err)
	}
	if err := gw.Save(ctx, "", "x"); !errors.Is(err, repository.ErrEmptyKey) {
		t.Fatalf("Save: want ErrEmptyKey, got %v", err)
	}
	if err := gw.Remove(ctx, ""); !errors.Is(err, repository.ErrEmptyKey) {
		t.Fatalf("Remove: want ErrEmptyKey, got %v", err)
	}
}
