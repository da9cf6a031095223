package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/go-sql-driver/mysql"
)

func TestIsDuplicate(t *testing.T) {
	dup := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry 'a@b.c' for key 'email'"}
	if !IsDuplicate(dup) {
		t.Fatalf("1062 should be a duplicate")
	}
	if !IsDuplicate(fmt.Errorf("insert user: %w", dup)) {
		t.Fatalf("wrapped 1062 should be a duplicate")
	}
	if IsDuplicate(&mysql.MySQLError{Number: 1452}) {
		t.Fatalf("foreign key failure is not a duplicate")
	}
	if IsDuplicate(errors.New("boom")) {
		t.Fatalf("plain error is not a duplicate")
	}
}
