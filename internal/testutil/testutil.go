package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	"bookcatalog/internal/auth"
	"bookcatalog/internal/book"

	"github.com/golang-jwt/jwt/v5"
)

// Books returns a small fixture catalog with distinct titles, authors,
// categories and years.
func Books() []book.Book {
	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	return []book.Book{
		{
			ID:          "b-algebra",
			Title:       "Algebra Foundations",
			Author:      "Nora Quinn",
			Category:    "Mathematics",
			Description: "An introduction to algebraic thinking.",
			Grade:       "8",
			Subject:     "Algebra",
			Year:        2021,
			ISBN:        "978-0-123456-78-9",
			CreatedAt:   now.Add(-3 * time.Hour),
			UpdatedAt:   now.Add(-3 * time.Hour),
		},
		{
			ID:          "b-poems",
			Title:       "Collected Poems",
			Author:      "Marta Ellison",
			Category:    "Poetry",
			Description: "Selected verse from three decades.",
			Year:        2018,
			CreatedAt:   now.Add(-2 * time.Hour),
			UpdatedAt:   now.Add(-2 * time.Hour),
		},
		{
			ID:          "b-cells",
			Title:       "Cells and Systems",
			Author:      "Nora Quinn",
			Category:    "Science",
			Description: "Life science for middle grades.",
			Grade:       "7",
			Subject:     "Biology",
			Year:        2023,
			CreatedAt:   now.Add(-time.Hour),
			UpdatedAt:   now.Add(-time.Hour),
		},
	}
}

// GenerateTestToken generates a JWT token for testing.
func GenerateTestToken(secret, userID, role string) string {
	token, _ := auth.GenerateToken(secret, userID, role, time.Hour)
	return token
}

// GenerateExpiredToken generates an expired JWT token for testing.
func GenerateExpiredToken(secret, userID, role string) string {
	c := auth.Claims{
		Sub:  userID,
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	token, _ := t.SignedString([]byte(secret))
	return token
}

// NewRequest creates a new HTTP request for testing.
func NewRequest(method, path string, body interface{}) *http.Request {
	var bodyBytes []byte
	if body != nil {
		bodyBytes, _ = json.Marshal(body)
	}
	var r *http.Request
	if bodyBytes != nil {
		r = httptest.NewRequest(method, path, bytes.NewReader(bodyBytes))
		r.Header.Set("Content-Type", "application/json")
	} else {
		r = httptest.NewRequest(method, path, nil)
	}
	return r
}

// NewRequestWithAuth creates a new HTTP request with JWT auth for testing.
func NewRequestWithAuth(method, path string, body interface{}, token string) *http.Request {
	r := NewRequest(method, path, body)
	if token != "" {
		r.Header.Set("Authorization", "Bearer "+token)
	}
	return r
}
