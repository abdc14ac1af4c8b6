package router

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/ngektech/patangenotes.in/internal/config"
	"github.com/ngektech/patangenotes.in/internal/db"
	"github.com/ngektech/patangenotes.in/internal/handler"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	testSecret   = "router-test-secret"
	testEmail    = "author@patangenotes.in"
	testPassword = "s3cret"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := gdb.AutoMigrate(&db.Admin{}, &db.Post{}, &db.Subscriber{}); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}
	if err := gdb.Create(&db.Admin{Email: testEmail, Password: string(hashed)}).Error; err != nil {
		t.Fatalf("failed to seed admin: %v", err)
	}

	t.Cleanup(func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			sqlDB.Close()
		}
	})

	cfg := config.AppConfig{
		JWTSecret:      testSecret,
		TokenTTL:       24 * time.Hour,
		AuthorName:     "Aditya Patange",
		AllowedOrigins: []string{"*"},
	}

	return SetupRouter(handler.NewAPI(gdb, cfg), cfg)
}

func doJSON(t *testing.T, r *gin.Engine, method, target, token string, payload any) *httptest.ResponseRecorder {
	t.Helper()

	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("failed to marshal payload: %v", err)
		}
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, target, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func login(t *testing.T, r *gin.Engine) string {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    testEmail,
		"password": testPassword,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("login failed with status %d: %s", w.Code, w.Body.String())
	}

	var resp struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode login response: %v", err)
	}
	if resp.TokenType != "bearer" || resp.AccessToken == "" {
		t.Fatalf("unexpected login response: %+v", resp)
	}
	return resp.AccessToken
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	r := setupTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    testEmail,
		"password": "wrong",
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "nobody@patangenotes.in",
		"password": testPassword,
	})
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 for unknown email, got %d", w.Code)
	}
}

func TestVerifyEndpoint(t *testing.T) {
	r := setupTestRouter(t)
	token := login(t, r)

	w := doJSON(t, r, http.MethodGet, "/api/auth/verify", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", w.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode verify response: %v", err)
	}
	if resp["authenticated"] != true || resp["email"] != testEmail {
		t.Fatalf("unexpected verify response: %v", resp)
	}
}

func TestGateRejectsBadTokensUniformly(t *testing.T) {
	r := setupTestRouter(t)

	// One token issued 25 hours ago under the 24h policy.
	issued := time.Now().Add(-25 * time.Hour)
	expiredClaims := jwt.RegisteredClaims{
		Subject:   testEmail,
		IssuedAt:  jwt.NewNumericDate(issued),
		ExpiresAt: jwt.NewNumericDate(issued.Add(24 * time.Hour)),
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, expiredClaims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("failed to sign expired token: %v", err)
	}

	for _, tc := range []struct {
		name  string
		token string
	}{
		{"missing token", ""},
		{"garbage token", "garbage"},
		{"expired token", expired},
	} {
		t.Run(tc.name, func(t *testing.T) {
			for _, target := range []string{"/api/admin/posts", "/api/admin/stats", "/api/auth/verify"} {
				w := doJSON(t, r, http.MethodGet, target, tc.token, nil)
				if w.Code != http.StatusUnauthorized {
					t.Fatalf("%s: expected status 401, got %d", target, w.Code)
				}

				var resp map[string]any
				if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
					t.Fatalf("failed to decode gate response: %v", err)
				}
				if resp["error"] != "unauthorized" {
					t.Fatalf("expected uniform unauthorized body, got %v", resp)
				}
			}
		})
	}
}

func TestAdminFlowEndToEnd(t *testing.T) {
	r := setupTestRouter(t)
	token := login(t, r)

	payload := map[string]any{
		"title":    "Threat Models",
		"excerpt":  "Think like an attacker.",
		"content":  "Enumerate assets, adversaries and assumptions.",
		"category": "Security",
		"tags":     []string{"policy"},
	}

	// Writes without a token never reach the repository.
	w := doJSON(t, r, http.MethodPost, "/api/admin/posts", "", payload)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401 without token, got %d", w.Code)
	}

	w = doJSON(t, r, http.MethodPost, "/api/admin/posts", token, payload)
	if w.Code != http.StatusOK {
		t.Fatalf("create failed with status %d: %s", w.Code, w.Body.String())
	}

	var created map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("failed to decode created post: %v", err)
	}
	id := created["id"].(string)

	// The post is publicly readable immediately.
	w = doJSON(t, r, http.MethodGet, "/api/posts/"+id, "", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("public read failed with status %d", w.Code)
	}

	w = doJSON(t, r, http.MethodDelete, "/api/admin/posts/"+id, token, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete failed with status %d", w.Code)
	}

	w = doJSON(t, r, http.MethodGet, "/api/posts/"+id, "", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected status 404 after delete, got %d", w.Code)
	}
}
