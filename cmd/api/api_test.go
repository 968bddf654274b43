package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"golang.org/x/crypto/bcrypt"

	"placetrack/internal/config"
)

func testConfig() config.Config {
	return config.Config{
		JWTSecret:         "test-secret-for-integration",
		JWTExpireHours:    1,
		AuthRatePerMinute: 600,
		AuthRateBurst:     100,
	}
}

// TestAPI_LoginThenListPlaces is an integration test: it builds the full router
// with a sqlmock-backed DB, logs in to get a JWT, then calls GET /api/places
// with the token.
func TestAPI_LoginThenListPlaces(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	userID := "11111111-1111-1111-1111-111111111111"
	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}

	// Login: GetByEmail
	mock.ExpectQuery(`SELECT id, email, password_hash, created_at`).
		WithArgs("admin@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "created_at"}).
			AddRow(userID, "admin@example.com", string(hash), time.Now()))

	// GET /api/places: ListByUser, then ListByUser on records for stats
	mock.ExpectQuery(`SELECT id, user_id, name, slug, created_at FROM places`).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "name", "slug", "created_at"}).
			AddRow("p1", userID, "Coffee Shop", "coffee-shop", time.Now()))
	mock.ExpectQuery(`FROM records r`).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "place_id", "date", "money_given", "money_used", "power_units", "created_at"}).
			AddRow("r1", "p1", time.Now(), 100.0, 80.0, 10.0, time.Now()))

	srv := httptest.NewServer(newRouter(db, testConfig()))
	defer srv.Close()

	// 1) Login
	loginBody, _ := json.Marshal(map[string]string{"email": "admin@example.com", "password": "admin123"})
	loginResp, err := http.Post(srv.URL+"/api/auth/login", "application/json", bytes.NewReader(loginBody))
	if err != nil {
		t.Fatalf("login request: %v", err)
	}
	defer loginResp.Body.Close()
	if loginResp.StatusCode != http.StatusOK {
		t.Fatalf("login status: got %d, want 200", loginResp.StatusCode)
	}
	var loginOut struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(loginResp.Body).Decode(&loginOut); err != nil || loginOut.Token == "" {
		t.Fatalf("login response: %v", err)
	}

	// 2) GET /api/places with Bearer token
	req, _ := http.NewRequest("GET", srv.URL+"/api/places", nil)
	req.Header.Set("Authorization", "Bearer "+loginOut.Token)
	placesResp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("places request: %v", err)
	}
	defer placesResp.Body.Close()
	if placesResp.StatusCode != http.StatusOK {
		t.Fatalf("GET /api/places status: got %d, want 200", placesResp.StatusCode)
	}
	var out struct {
		Places []struct {
			Slug            string  `json:"slug"`
			RecordCount     int     `json:"recordCount"`
			TotalMoneyGiven float64 `json:"totalMoneyGiven"`
			Balance         float64 `json:"balance"`
		} `json:"places"`
	}
	if err := json.NewDecoder(placesResp.Body).Decode(&out); err != nil {
		t.Fatalf("decode places: %v", err)
	}
	if len(out.Places) != 1 || out.Places[0].Slug != "coffee-shop" {
		t.Fatalf("unexpected places: %+v", out.Places)
	}
	if out.Places[0].RecordCount != 1 || out.Places[0].TotalMoneyGiven != 100 || out.Places[0].Balance != 20 {
		t.Errorf("unexpected stats: %+v", out.Places[0])
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}

// TestAPI_ProtectedRoutesRequireToken checks that the JWT middleware guards
// every application route.
func TestAPI_ProtectedRoutesRequireToken(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	srv := httptest.NewServer(newRouter(db, testConfig()))
	defer srv.Close()

	paths := []struct {
		method string
		path   string
	}{
		{"GET", "/api/auth/check"},
		{"GET", "/api/places"},
		{"POST", "/api/places"},
		{"GET", "/api/places/some-slug"},
		{"DELETE", "/api/places/some-slug"},
		{"POST", "/api/records"},
		{"DELETE", "/api/records/some-id"},
		{"GET", "/api/stats"},
		{"GET", "/api/audit"},
	}
	for _, p := range paths {
		req, _ := http.NewRequest(p.method, srv.URL+p.path, nil)
		resp, err := srv.Client().Do(req)
		if err != nil {
			t.Fatalf("%s %s: %v", p.method, p.path, err)
		}
		resp.Body.Close()
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("%s %s: got %d, want 401", p.method, p.path, resp.StatusCode)
		}
	}
}

// TestAPI_Health is a quick smoke test for the health endpoint.
func TestAPI_Health(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	srv := httptest.NewServer(newRouter(db, testConfig()))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/health")
	if err != nil {
		t.Fatalf("health request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("GET /health status: got %d, want 200", resp.StatusCode)
	}
}

// TestAPI_Ready checks that /ready pings the DB and returns 200 when DB is reachable.
func TestAPI_Ready(t *testing.T) {
	db, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()
	mock.ExpectPing()

	srv := httptest.NewServer(newRouter(db, testConfig()))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/ready")
	if err != nil {
		t.Fatalf("ready request: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Errorf("GET /ready status: got %d, want 200", resp.StatusCode)
	}
}

// TestAPI_SignupFlow covers signup followed by auth check with the new token.
func TestAPI_SignupFlow(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer db.Close()

	userID := "22222222-2222-2222-2222-222222222222"
	mock.ExpectQuery(`INSERT INTO users`).
		WithArgs(sqlmock.AnyArg(), "new@example.com", sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "created_at"}).
			AddRow(userID, "new@example.com", time.Now()))
	mock.ExpectQuery(`SELECT id, email, password_hash, created_at`).
		WithArgs(userID).
		WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password_hash", "created_at"}).
			AddRow(userID, "new@example.com", "hash", time.Now()))

	srv := httptest.NewServer(newRouter(db, testConfig()))
	defer srv.Close()

	signupBody, _ := json.Marshal(map[string]string{"email": "new@example.com", "password": "testpass123"})
	signupResp, err := http.Post(srv.URL+"/api/auth/signup", "application/json", bytes.NewReader(signupBody))
	if err != nil {
		t.Fatalf("signup request: %v", err)
	}
	defer signupResp.Body.Close()
	if signupResp.StatusCode != http.StatusOK {
		t.Fatalf("signup status: got %d, want 200", signupResp.StatusCode)
	}
	var signupOut struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(signupResp.Body).Decode(&signupOut); err != nil || signupOut.Token == "" {
		t.Fatalf("signup response: %v", err)
	}

	req, _ := http.NewRequest("GET", srv.URL+"/api/auth/check", nil)
	req.Header.Set("Authorization", "Bearer "+signupOut.Token)
	checkResp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("check request: %v", err)
	}
	defer checkResp.Body.Close()
	if checkResp.StatusCode != http.StatusOK {
		t.Fatalf("check status: got %d, want 200", checkResp.StatusCode)
	}
	var checkOut struct {
		Authenticated bool `json:"authenticated"`
	}
	if err := json.NewDecoder(checkResp.Body).Decode(&checkOut); err != nil || !checkOut.Authenticated {
		t.Errorf("expected authenticated=true")
	}

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("expectations: %v", err)
	}
}
