package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"goaltrack/internal/repository"
)

func TestAdminListUsersIncludesGoalCounts(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT u.id, u.email, u.name, u.role, u.created_at, COUNT\(g.id\)`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "name", "role", "created_at", "count"}).
			AddRow("u1", "a@b.com", "Alice", "admin", time.Now().UTC(), 3).
			AddRow("u2", "b@b.com", nil, "user", time.Now().UTC(), 0))

	h := NewAdminHandler(repository.NewUserRepository(db), repository.NewGoalRepository(db))
	req := withUser(httptest.NewRequest(http.MethodGet, "/api/v1/admin/users", nil), "u1", "a@b.com", "admin")
	w := httptest.NewRecorder()
	h.ListUsers(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d (%s)", w.Code, w.Body.String())
	}
	var users []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &users); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
	if users[0]["goal_count"] != float64(3) {
		t.Fatalf("expected goal_count 3, got %v", users[0]["goal_count"])
	}
	if _, exposed := users[0]["password_hash"]; exposed {
		t.Fatalf("password hash exposed: %v", users[0])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestAdminChangeRole(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE users SET role").
		WithArgs("admin", "u2").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT id, email, name, password_hash, role, created_at\s+FROM users\s+WHERE id`).
		WithArgs("u2").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "name", "password_hash", "role", "created_at"}).
			AddRow("u2", "b@b.com", nil, "hash", "admin", time.Now().UTC()))

	h := NewAdminHandler(repository.NewUserRepository(db), repository.NewGoalRepository(db))
	b, _ := json.Marshal(map[string]any{"role": "admin"})
	req := withUser(httptest.NewRequest(http.MethodPut, "/api/v1/admin/users/u2", bytes.NewReader(b)), "u1", "a@b.com", "admin")
	req = withURLParam(req, "id", "u2")
	w := httptest.NewRecorder()
	h.ChangeRole(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d (%s)", w.Code, w.Body.String())
	}
	var resp map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["role"] != "admin" {
		t.Fatalf("expected role admin, got %v", resp)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestAdminChangeRoleInvalidValueRejected(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	h := NewAdminHandler(repository.NewUserRepository(db), repository.NewGoalRepository(db))
	b, _ := json.Marshal(map[string]any{"role": "superuser"})
	req := withUser(httptest.NewRequest(http.MethodPut, "/api/v1/admin/users/u2", bytes.NewReader(b)), "u1", "a@b.com", "admin")
	req = withURLParam(req, "id", "u2")
	w := httptest.NewRecorder()
	h.ChangeRole(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
}

func TestAdminDeleteUser(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("DELETE FROM users").
		WithArgs("u2").
		WillReturnResult(sqlmock.NewResult(0, 1))

	h := NewAdminHandler(repository.NewUserRepository(db), repository.NewGoalRepository(db))
	req := withUser(httptest.NewRequest(http.MethodDelete, "/api/v1/admin/users/u2", nil), "u1", "a@b.com", "admin")
	req = withURLParam(req, "id", "u2")
	w := httptest.NewRecorder()
	h.DeleteUser(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d (%s)", w.Code, w.Body.String())
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestAdminListAllGoalsIncludesOwners(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT g.id, g.user_id, g.title, g.description, g.status`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "title", "description", "status", "created_at", "updated_at", "owner_id", "owner_name", "owner_email"}).
			AddRow("g1", "u1", "Learn Go", nil, "pending", time.Now().UTC(), time.Now().UTC(), "u1", "Alice", "a@b.com"))

	h := NewAdminHandler(repository.NewUserRepository(db), repository.NewGoalRepository(db))
	req := withUser(httptest.NewRequest(http.MethodGet, "/api/v1/admin/goals", nil), "u1", "a@b.com", "admin")
	w := httptest.NewRecorder()
	h.ListAllGoals(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d (%s)", w.Code, w.Body.String())
	}
	var goals []map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &goals); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	owner, _ := goals[0]["owner"].(map[string]any)
	if owner == nil || owner["email"] != "a@b.com" {
		t.Fatalf("expected owner info, got %v", goals[0])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
