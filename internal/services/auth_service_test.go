package services

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"bustracker/internal/auth"
	"bustracker/internal/domain"
	"bustracker/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

const loginQuery = "SELECT id, email, password_hash, role FROM users WHERE email = ?"

func newAuthMock(t *testing.T) (AuthService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return AuthService{
		Users:    repositories.UserRepository{DB: db},
		Secret:   []byte("test-secret"),
		TokenTTL: time.Hour,
	}, mock
}

func userRows(id int64, email, stored, role string) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "email", "password_hash", "role"}).AddRow(id, email, stored, role)
}

func TestLoginPlainStoredPassword(t *testing.T) {
	svc, mock := newAuthMock(t)
	mock.ExpectQuery(regexp.QuoteMeta(loginQuery)).
		WithArgs("driver@school.edu").
		WillReturnRows(userRows(3, "driver@school.edu", "pass123", "driver"))

	res, err := svc.Login(context.Background(), " driver@school.edu ", "pass123")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if res.ID != 3 || res.Role != domain.RoleDriver {
		t.Fatalf("unexpected result %+v", res)
	}

	claims, err := auth.ParseToken(svc.Secret, res.Token)
	if err != nil {
		t.Fatalf("token not valid: %v", err)
	}
	if claims.UserID != 3 || claims.Role != "driver" {
		t.Fatalf("unexpected claims %+v", claims)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestLoginBcryptStoredPassword(t *testing.T) {
	svc, mock := newAuthMock(t)
	hash, err := auth.HashPassword("s3cret")
	if err != nil {
		t.Fatalf("hash error: %v", err)
	}
	mock.ExpectQuery(regexp.QuoteMeta(loginQuery)).
		WithArgs("admin@school.edu").
		WillReturnRows(userRows(1, "admin@school.edu", hash, "admin"))

	res, err := svc.Login(context.Background(), "admin@school.edu", "s3cret")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if res.ID != 1 || res.Role != domain.RoleAdmin {
		t.Fatalf("unexpected result %+v", res)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, mock := newAuthMock(t)
	mock.ExpectQuery(regexp.QuoteMeta(loginQuery)).
		WillReturnRows(userRows(3, "driver@school.edu", "pass123", "driver"))

	_, err := svc.Login(context.Background(), "driver@school.edu", "nope")
	if !domain.IsUnauthorized(err) || err.Error() != "Invalid credentials" {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	svc, mock := newAuthMock(t)
	mock.ExpectQuery(regexp.QuoteMeta(loginQuery)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "role"}))

	_, err := svc.Login(context.Background(), "ghost@school.edu", "pw")
	if !domain.IsUnauthorized(err) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
}

func TestLoginEmptyInputSkipsStore(t *testing.T) {
	svc, mock := newAuthMock(t)

	if _, err := svc.Login(context.Background(), "", "pw"); !domain.IsUnauthorized(err) {
		t.Fatalf("expected unauthorized, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("store touched: %v", err)
	}
}

func TestLoginDatabaseError(t *testing.T) {
	svc, mock := newAuthMock(t)
	mock.ExpectQuery(regexp.QuoteMeta(loginQuery)).WillReturnError(errors.New("bad connection"))

	_, err := svc.Login(context.Background(), "a@school.edu", "pw")
	if !domain.IsInternal(err) || err.Error() != "Database query error." {
		t.Fatalf("expected internal error, got %v", err)
	}
}
