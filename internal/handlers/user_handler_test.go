package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"golang.org/x/crypto/bcrypt"
	"goaltrack/internal/repository"
)

func TestUpdateProfileName(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	mock.ExpectExec("UPDATE users SET name").
		WithArgs("New Name", "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT id, email, name, password_hash, role, created_at\s+FROM users\s+WHERE id`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "name", "password_hash", "role", "created_at"}).
			AddRow("u1", "a@b.com", "New Name", "hash", "user", time.Now().UTC()))

	h := NewUserHandler(repository.NewUserRepository(db))
	b, _ := json.Marshal(map[string]any{"name": "New Name"})
	req := withUser(httptest.NewRequest(http.MethodPatch, "/api/v1/users/me", bytes.NewReader(b)), "u1", "a@b.com", "user")
	w := httptest.NewRecorder()
	h.UpdateMe(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d (%s)", w.Code, w.Body.String())
	}
	var resp map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &resp)
	if resp["name"] != "New Name" {
		t.Fatalf("expected updated name, got %v", resp)
	}
	if _, exposed := resp["password_hash"]; exposed {
		t.Fatalf("password hash exposed: %v", resp)
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestUpdateProfileNameTooShort(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	h := NewUserHandler(repository.NewUserRepository(db))
	b, _ := json.Marshal(map[string]any{"name": "A"})
	req := withUser(httptest.NewRequest(http.MethodPatch, "/api/v1/users/me", bytes.NewReader(b)), "u1", "a@b.com", "user")
	w := httptest.NewRecorder()
	h.UpdateMe(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
}

func TestChangePasswordWrongCurrentRejected(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	hash, _ := bcrypt.GenerateFromPassword([]byte("rightpassword"), bcrypt.DefaultCost)
	mock.ExpectQuery(`SELECT id, email, name, password_hash, role, created_at\s+FROM users\s+WHERE id`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "name", "password_hash", "role", "created_at"}).
			AddRow("u1", "a@b.com", "Alice", string(hash), "user", time.Now().UTC()))

	h := NewUserHandler(repository.NewUserRepository(db))
	b, _ := json.Marshal(map[string]any{"name": "Alice", "current_password": "wrongpassword", "new_password": "newpassword123"})
	req := withUser(httptest.NewRequest(http.MethodPatch, "/api/v1/users/me", bytes.NewReader(b)), "u1", "a@b.com", "user")
	w := httptest.NewRecorder()
	h.UpdateMe(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 got %d (%s)", w.Code, w.Body.String())
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}

func TestChangePasswordSameAsCurrentRejected(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	h := NewUserHandler(repository.NewUserRepository(db))
	b, _ := json.Marshal(map[string]any{"name": "Alice", "current_password": "samepassword", "new_password": "samepassword"})
	req := withUser(httptest.NewRequest(http.MethodPatch, "/api/v1/users/me", bytes.NewReader(b)), "u1", "a@b.com", "user")
	w := httptest.NewRecorder()
	h.UpdateMe(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", w.Code)
	}
}

func TestChangePasswordSuccess(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	hash, _ := bcrypt.GenerateFromPassword([]byte("oldpassword1"), bcrypt.DefaultCost)
	mock.ExpectQuery(`SELECT id, email, name, password_hash, role, created_at\s+FROM users\s+WHERE id`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "name", "password_hash", "role", "created_at"}).
			AddRow("u1", "a@b.com", "Alice", string(hash), "user", time.Now().UTC()))
	mock.ExpectExec("UPDATE users SET password_hash").
		WithArgs(bcryptHashOf{plain: "newpassword123"}, "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE users SET name").
		WithArgs("Alice", "u1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery(`SELECT id, email, name, password_hash, role, created_at\s+FROM users\s+WHERE id`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "name", "password_hash", "role", "created_at"}).
			AddRow("u1", "a@b.com", "Alice", "newhash", "user", time.Now().UTC()))

	h := NewUserHandler(repository.NewUserRepository(db))
	b, _ := json.Marshal(map[string]any{"name": "Alice", "current_password": "oldpassword1", "new_password": "newpassword123"})
	req := withUser(httptest.NewRequest(http.MethodPatch, "/api/v1/users/me", bytes.NewReader(b)), "u1", "a@b.com", "user")
	w := httptest.NewRecorder()
	h.UpdateMe(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d (%s)", w.Code, w.Body.String())
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("expectations: %v", err)
	}
}
