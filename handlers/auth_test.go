package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"catalog-backend/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func setupAuthRouter(db *gorm.DB) *gin.Engine {
	authHandler := &AuthHandler{DB: db}

	r := gin.New()
	api := r.Group("/api")
	api.POST("/auth/login", authHandler.Login)

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware())
	protected.GET("/auth/profile", authHandler.GetProfile)

	return r
}

func loginRequest(t *testing.T, email, password string) *http.Request {
	t.Helper()
	body, err := json.Marshal(map[string]string{"email": email, "password": password})
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest("POST", "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestLoginSuccess(t *testing.T) {
	db := freshDB()
	router := setupAuthRouter(db)
	seedAdmin(t, db)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, loginRequest(t, "admin@test.com", "admin123"))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := parseResponse(t, w)
	if resp["token"] == nil || resp["token"] == "" {
		t.Error("expected a token in the response")
	}
	user, ok := resp["user"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected user object, got %v", resp["user"])
	}
	if user["email"] != "admin@test.com" || user["role"] != "admin" {
		t.Errorf("unexpected user payload: %v", user)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	db := freshDB()
	router := setupAuthRouter(db)
	seedAdmin(t, db)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, loginRequest(t, "admin@test.com", "wrong-password"))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", w.Code, w.Body.String())
	}
}

func TestLoginUnknownEmail(t *testing.T) {
	db := freshDB()
	router := setupAuthRouter(db)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, loginRequest(t, "nobody@test.com", "admin123"))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d: %s", w.Code, w.Body.String())
	}
}

func TestLoginRejectsInvalidBody(t *testing.T) {
	db := freshDB()
	router := setupAuthRouter(db)

	req := httptest.NewRequest("POST", "/api/auth/login", bytes.NewReader([]byte(`{"email":"not-an-email"}`)))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", w.Code, w.Body.String())
	}
}

func TestGetProfile(t *testing.T) {
	db := freshDB()
	router := setupAuthRouter(db)
	token := seedAdmin(t, db)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, authRequest("GET", "/api/auth/profile", token))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	resp := parseResponse(t, w)
	if resp["email"] != "admin@test.com" {
		t.Errorf("expected admin@test.com, got %v", resp["email"])
	}
}
