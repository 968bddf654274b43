package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"placetrack/internal/middleware"
	"placetrack/internal/repo"
)

func newAuthHandler(t *testing.T) (*AuthHandler, sqlmock.Sqlmock, func()) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	h := &AuthHandler{
		UserRepo:      repo.NewUserRepo(sqlDB),
		Secret:        []byte("test-secret"),
		TokenLifetime: time.Hour,
	}
	return h, mock, func() { sqlDB.Close() }
}

func TestAuthHandler_Signup(t *testing.T) {
	h, mock, closeDB := newAuthHandler(t)
	defer closeDB()

	mock.ExpectQuery(`INSERT INTO users \(id, email, password_hash\)`).
		WithArgs(sqlmock.AnyArg(), "new@example.com", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "created_at"}).
			AddRow("11111111-1111-1111-1111-111111111111", "new@example.com", time.Now()))

	body, _ := json.Marshal(map[string]string{"email": "new@example.com", "password": "abc123"})
	req := httptest.NewRequest("POST", "/api/auth/signup", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.Signup(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Signup status: got %d, want 200 (%s)", rr.Code, rr.Body.String())
	}
	var out struct {
		Token string `json:"token"`
		User  struct {
			ID    string `json:"id"`
			Email string `json:"email"`
		} `json:"user"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.Token == "" {
		t.Error("expected a token")
	}
	if out.User.Email != "new@example.com" {
		t.Errorf("unexpected user: %+v", out.User)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAuthHandler_Signup_DuplicateEmail(t *testing.T) {
	h, mock, closeDB := newAuthHandler(t)
	defer closeDB()

	mock.ExpectQuery(`INSERT INTO users \(id, email, password_hash\)`).
		WithArgs(sqlmock.AnyArg(), "taken@example.com", sqlmock.AnyArg()).
		WillReturnError(&pq.Error{Code: "23505"})

	body, _ := json.Marshal(map[string]string{"email": "taken@example.com", "password": "abc123"})
	req := httptest.NewRequest("POST", "/api/auth/signup", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.Signup(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("status: got %d, want 400 (%s)", rr.Code, rr.Body.String())
	}
	if !strings.Contains(rr.Body.String(), "exists") {
		t.Errorf("body should say the email already exists: %s", rr.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAuthHandler_Signup_Validation(t *testing.T) {
	cases := []struct {
		name       string
		payload    map[string]string
		wantInBody string
	}{
		{"missing email", map[string]string{"password": "abc123"}, "required"},
		{"missing password", map[string]string{"email": "a@example.com"}, "required"},
		{"short password", map[string]string{"email": "a@example.com", "password": "ab1"}, "6 characters"},
		{"letters only", map[string]string{"email": "a@example.com", "password": "abcdef"}, "letters and numbers"},
		{"digits only", map[string]string{"email": "a@example.com", "password": "123456"}, "letters and numbers"},
		{"bad email", map[string]string{"email": "not-an-email", "password": "abc123"}, "valid email"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h, mock, closeDB := newAuthHandler(t)
			defer closeDB()

			body, _ := json.Marshal(tc.payload)
			req := httptest.NewRequest("POST", "/api/auth/signup", bytes.NewReader(body))
			rr := httptest.NewRecorder()
			h.Signup(rr, req)

			if rr.Code != http.StatusBadRequest {
				t.Errorf("status: got %d, want 400", rr.Code)
			}
			if !strings.Contains(rr.Body.String(), tc.wantInBody) {
				t.Errorf("body %q does not mention %q", rr.Body.String(), tc.wantInBody)
			}
			if err := mock.ExpectationsWereMet(); err != nil {
				t.Errorf("expectations: %v", err)
			}
		})
	}
}

func TestAuthHandler_Login(t *testing.T) {
	h, mock, closeDB := newAuthHandler(t)
	defer closeDB()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	mock.ExpectQuery(`SELECT id, email, password_hash, created_at`).
		WithArgs("admin@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "created_at"}).
			AddRow("22222222-2222-2222-2222-222222222222", "admin@example.com", string(hash), time.Now()))

	body, _ := json.Marshal(map[string]string{"email": "admin@example.com", "password": "password123"})
	req := httptest.NewRequest("POST", "/api/auth/login", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.Login(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Login status: got %d, want 200 (%s)", rr.Code, rr.Body.String())
	}
	var out struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil || out.Token == "" {
		t.Fatalf("expected a token, got %v (%s)", err, rr.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

func TestAuthHandler_Login_WrongPassword(t *testing.T) {
	h, mock, closeDB := newAuthHandler(t)
	defer closeDB()

	hash, _ := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	mock.ExpectQuery(`SELECT id, email, password_hash, created_at`).
		WithArgs("admin@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "created_at"}).
			AddRow("22222222-2222-2222-2222-222222222222", "admin@example.com", string(hash), time.Now()))

	body, _ := json.Marshal(map[string]string{"email": "admin@example.com", "password": "wrongpass1"})
	req := httptest.NewRequest("POST", "/api/auth/login", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.Login(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", rr.Code)
	}
}

func TestAuthHandler_Login_UnknownEmail(t *testing.T) {
	h, mock, closeDB := newAuthHandler(t)
	defer closeDB()

	mock.ExpectQuery(`SELECT id, email, password_hash, created_at`).
		WithArgs("ghost@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "created_at"}))

	body, _ := json.Marshal(map[string]string{"email": "ghost@example.com", "password": "password123"})
	req := httptest.NewRequest("POST", "/api/auth/login", bytes.NewReader(body))
	rr := httptest.NewRecorder()
	h.Login(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Errorf("status: got %d, want 401", rr.Code)
	}
}

func TestAuthHandler_Check(t *testing.T) {
	h, mock, closeDB := newAuthHandler(t)
	defer closeDB()

	userID := "22222222-2222-2222-2222-222222222222"
	mock.ExpectQuery(`SELECT id, email, password_hash, created_at`).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "created_at"}).
			AddRow(userID, "admin@example.com", "hash", time.Now()))

	req := httptest.NewRequest("GET", "/api/auth/check", nil)
	req = req.WithContext(middleware.WithUserID(req.Context(), userID))
	rr := httptest.NewRecorder()
	h.Check(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Check status: got %d, want 200", rr.Code)
	}
	var out struct {
		Authenticated bool `json:"authenticated"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&out); err != nil || !out.Authenticated {
		t.Errorf("expected authenticated=true, got %v (%s)", err, rr.Body.String())
	}
}
