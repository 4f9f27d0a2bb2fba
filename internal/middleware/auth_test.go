package middleware

import (
	"context"
	"encoding/base64"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/bb3/bodybuddy/internal/auth"
	"github.com/bb3/bodybuddy/internal/models"
	"github.com/bb3/bodybuddy/pkg/response"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakeDenyList struct {
	denied map[string]bool
	err    error
}

func (f *fakeDenyList) Exists(_ context.Context, token string) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	return f.denied[token], nil
}

type fakeUsers struct {
	byEmail map[string]*models.User
}

func (f *fakeUsers) GetByEmail(email string) (*models.User, error) {
	if u, ok := f.byEmail[email]; ok {
		return u, nil
	}
	return nil, response.NewNotFound("user not found")
}

func testCodec(t *testing.T) *auth.Codec {
	t.Helper()
	secret := base64.StdEncoding.EncodeToString([]byte("0123456789abcdef0123456789abcdef"))
	key, err := auth.NewKeyMaterial(secret)
	if err != nil {
		t.Fatalf("NewKeyMaterial: %v", err)
	}
	return auth.NewCodec(key, 3*time.Hour, 72*time.Hour)
}

func protectedRouter(validator *auth.Validator, users SubjectResolver) *gin.Engine {
	router := gin.New()
	router.Use(AuthRequired(validator, users))
	router.GET("/protected", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"user_id": GetUserID(c),
			"subject": GetSubject(c),
			"role":    GetRole(c),
		})
	})
	return router
}

func TestAuthRequired_NoHeader(t *testing.T) {
	codec := testCodec(t)
	router := protectedRouter(auth.NewValidator(codec, &fakeDenyList{}), &fakeUsers{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestAuthRequired_InvalidFormat(t *testing.T) {
	codec := testCodec(t)
	router := protectedRouter(auth.NewValidator(codec, &fakeDenyList{}), &fakeUsers{})

	testCases := []string{
		"InvalidToken",
		"Basic token123",
		"Bearer",
	}

	for _, authHeader := range testCases {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest("GET", "/protected", nil)
		req.Header.Set("Authorization", authHeader)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("header %q: expected status %d, got %d", authHeader, http.StatusUnauthorized, w.Code)
		}
	}
}

func TestAuthRequired_InvalidToken(t *testing.T) {
	codec := testCodec(t)
	router := protectedRouter(auth.NewValidator(codec, &fakeDenyList{}), &fakeUsers{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer invalid.jwt.token")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestAuthRequired_RevokedToken(t *testing.T) {
	codec := testCodec(t)
	token, err := codec.EncodeAccess("alice@example.com", models.RoleUser)
	if err != nil {
		t.Fatalf("EncodeAccess: %v", err)
	}

	deny := &fakeDenyList{denied: map[string]bool{token: true}}
	users := &fakeUsers{byEmail: map[string]*models.User{
		"alice@example.com": {Email: "alice@example.com", Role: models.RoleUser, IsActive: true},
	}}
	router := protectedRouter(auth.NewValidator(codec, deny), users)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestAuthRequired_DenyListDown(t *testing.T) {
	codec := testCodec(t)
	token, err := codec.EncodeAccess("alice@example.com", models.RoleUser)
	if err != nil {
		t.Fatalf("EncodeAccess: %v", err)
	}

	deny := &fakeDenyList{err: errors.New("connection refused")}
	router := protectedRouter(auth.NewValidator(codec, deny), &fakeUsers{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusInternalServerError {
		t.Errorf("expected status %d, got %d", http.StatusInternalServerError, w.Code)
	}
}

func TestAuthRequired_UnknownSubject(t *testing.T) {
	codec := testCodec(t)
	token, err := codec.EncodeAccess("ghost@example.com", models.RoleUser)
	if err != nil {
		t.Fatalf("EncodeAccess: %v", err)
	}

	router := protectedRouter(auth.NewValidator(codec, &fakeDenyList{}), &fakeUsers{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestAuthRequired_DisabledAccount(t *testing.T) {
	codec := testCodec(t)
	token, err := codec.EncodeAccess("alice@example.com", models.RoleUser)
	if err != nil {
		t.Fatalf("EncodeAccess: %v", err)
	}

	users := &fakeUsers{byEmail: map[string]*models.User{
		"alice@example.com": {Email: "alice@example.com", Role: models.RoleUser, IsActive: false},
	}}
	router := protectedRouter(auth.NewValidator(codec, &fakeDenyList{}), users)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected status %d, got %d", http.StatusUnauthorized, w.Code)
	}
}

func TestAuthRequired_ValidToken(t *testing.T) {
	codec := testCodec(t)
	token, err := codec.EncodeAccess("alice@example.com", models.RoleUser)
	if err != nil {
		t.Fatalf("EncodeAccess: %v", err)
	}

	users := &fakeUsers{byEmail: map[string]*models.User{
		"alice@example.com": {ID: 42, Email: "alice@example.com", Role: models.RoleUser, IsActive: true},
	}}
	router := protectedRouter(auth.NewValidator(codec, &fakeDenyList{}), users)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d: %s", http.StatusOK, w.Code, w.Body.String())
	}
}

func TestAdminRequired_NoRole(t *testing.T) {
	router := gin.New()
	router.Use(AdminRequired())
	router.GET("/admin", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/admin", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected status %d, got %d", http.StatusForbidden, w.Code)
	}
}

func TestAdminRequired_UserRole(t *testing.T) {
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(ContextRole, models.RoleUser)
		c.Next()
	})
	router.Use(AdminRequired())
	router.GET("/admin", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/admin", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusForbidden {
		t.Errorf("expected status %d, got %d", http.StatusForbidden, w.Code)
	}
}

func TestAdminRequired_AdminRole(t *testing.T) {
	router := gin.New()
	router.Use(func(c *gin.Context) {
		c.Set(ContextRole, models.RoleAdmin)
		c.Next()
	})
	router.Use(AdminRequired())
	router.GET("/admin", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/admin", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status %d, got %d", http.StatusOK, w.Code)
	}
}

func TestGetUserID(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	if id := GetUserID(c); id != 0 {
		t.Errorf("expected 0 for missing user_id, got %d", id)
	}

	c.Set(ContextUserID, uint(42))
	if id := GetUserID(c); id != 42 {
		t.Errorf("expected 42, got %d", id)
	}
}

func TestGetSubject(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	if subject := GetSubject(c); subject != "" {
		t.Errorf("expected empty string for missing subject, got %q", subject)
	}

	c.Set(ContextSubject, "alice@example.com")
	if subject := GetSubject(c); subject != "alice@example.com" {
		t.Errorf("expected %q, got %q", "alice@example.com", subject)
	}
}

func TestGetRole(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	if role := GetRole(c); role != "" {
		t.Errorf("expected empty string for missing role, got %q", role)
	}

	c.Set(ContextRole, models.RoleAdmin)
	if role := GetRole(c); role != models.RoleAdmin {
		t.Errorf("expected %q, got %q", models.RoleAdmin, role)
	}
}
