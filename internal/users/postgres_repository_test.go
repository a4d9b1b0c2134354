package users

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pgxmock "github.com/pashagolub/pgxmock/v3"
)

func TestPostgresCreate(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("admin", "s3cret").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(3))

	repo := NewPostgresRepository(mock)
	user, err := repo.Create(context.Background(), "admin", "s3cret")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if user.ID != 3 || user.Username != "admin" {
		t.Errorf("unexpected user: %+v", user)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unmet expectations: %v", err)
	}
}

func TestPostgresCreateDuplicateUsername(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery("INSERT INTO users").
		WithArgs("admin", "s3cret").
		WillReturnError(&pgconn.PgError{Code: "23505"})

	repo := NewPostgresRepository(mock)
	if _, err := repo.Create(context.Background(), "admin", "s3cret"); !errors.Is(err, ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
}

func TestPostgresGetByUsernameNotFound(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs("ghost").
		WillReturnError(pgx.ErrNoRows)

	repo := NewPostgresRepository(mock)
	if _, err := repo.GetByUsername(context.Background(), "ghost"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestPostgresGetByID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	if err != nil {
		t.Fatalf("pgxmock: %v", err)
	}
	defer mock.Close()

	mock.ExpectQuery("SELECT (.+) FROM users").
		WithArgs(3).
		WillReturnRows(pgxmock.NewRows([]string{"id", "username", "password"}).AddRow(3, "admin", "s3cret"))

	repo := NewPostgresRepository(mock)
	user, err := repo.GetByID(context.Background(), 3)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if user.Username != "admin" {
		t.Errorf("unexpected user: %+v", user)
	}
}
