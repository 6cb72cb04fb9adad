package repository

import (
	"context"
	"testing"
)

func TestNewDBInvalidDSN(t *testing.T) {
	db, err := NewDB(context.Background(), "not a dsn")
	if err == nil {
		db.Close()
		t.Fatal("expected error for malformed DSN")
	}
}
