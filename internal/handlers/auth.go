package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
	"unicode"

	"github.com/go-playground/validator/v10"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"placetrack/internal/metrics"
	"placetrack/internal/middleware"
	"placetrack/internal/repo"
)

// ==========================
// Auth Handler
// ==========================
type AuthHandler struct {
	UserRepo      *repo.UserRepo
	Secret        []byte
	TokenLifetime time.Duration
}

// validate is shared across handlers; the validator caches struct metadata.
var validate = validator.New()

type credentials struct {
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password"`
}

// validatePassword enforces the signup rule: at least 6 characters containing
// both letters and numbers.
func validatePassword(password string) string {
	if len(password) < 6 {
		return "must be at least 6 characters"
	}
	var hasLetter, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasLetter || !hasDigit {
		return "must contain letters and numbers"
	}
	return ""
}

// ==========================
// Signup
// ==========================
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var input credentials

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}

	fields := make(map[string]string)
	if input.Email == "" {
		fields["email"] = "required"
	} else if err := validate.Struct(input); err != nil {
		fields["email"] = "must be a valid email address"
	}
	if input.Password == "" {
		fields["password"] = "required"
	} else if msg := validatePassword(input.Password); msg != "" {
		fields["password"] = msg
	}
	if len(fields) > 0 {
		JSONValidationError(w, "validation failed", fields, http.StatusBadRequest)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	user, err := h.UserRepo.Create(r.Context(), input.Email, string(hash))
	if err != nil {
		if e, ok := err.(*pq.Error); ok && e.Code == "23505" {
			JSONError(w, "email already exists", http.StatusBadRequest)
			return
		}
		slog.Error("signup: create user failed", "error", err)
		JSONError(w, ErrMessageInternal, http.StatusInternalServerError)
		return
	}

	token, err := middleware.IssueToken(h.Secret, user, h.TokenLifetime)
	if err != nil {
		JSONError(w, "failed to issue token", http.StatusInternalServerError)
		return
	}

	metrics.IncSignups()
	JSONResponse(w, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

// ==========================
// Login
// ==========================
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input credentials

	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		JSONError(w, "invalid JSON", http.StatusBadRequest)
		return
	}
	if input.Email == "" || input.Password == "" {
		JSONValidationError(w, "validation failed", map[string]string{"credentials": "email and password are required"}, http.StatusBadRequest)
		return
	}

	// A single message for unknown email and wrong password, so the endpoint
	// does not confirm which emails have accounts.
	user, err := h.UserRepo.GetByEmail(r.Context(), input.Email)
	if err != nil {
		JSONError(w, "invalid credentials", http.StatusUnauthorized)
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(input.Password)); err != nil {
		JSONError(w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := middleware.IssueToken(h.Secret, user, h.TokenLifetime)
	if err != nil {
		JSONError(w, "failed to issue token", http.StatusInternalServerError)
		return
	}

	JSONResponse(w, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

// ==========================
// Check (behind JWT middleware)
// ==========================
func (h *AuthHandler) Check(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		JSONError(w, "invalid token", http.StatusUnauthorized)
		return
	}

	user, err := h.UserRepo.GetByID(r.Context(), userID)
	if err != nil {
		JSONError(w, "invalid token", http.StatusUnauthorized)
		return
	}

	JSONResponse(w, map[string]interface{}{
		"authenticated": true,
		"user":          user,
	})
}
