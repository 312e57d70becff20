package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go-trading-backend/internal/auth"
	"go-trading-backend/internal/database"
	"go-trading-backend/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTest(t *testing.T) {
	t.Helper()

	gin.SetMode(gin.TestMode)
	auth.Init("test-secret")

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}
	database.DB = db
}

func newRouter(timeout time.Duration) *gin.Engine {
	r := gin.New()
	r.GET("/protected", AuthMiddleware(timeout), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.MustGet("userID")})
	})
	r.GET("/admin", AuthMiddleware(timeout), RequireRole("admin"), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func loginAs(t *testing.T, role string, lastActivity time.Time) (string, string) {
	t.Helper()

	user := models.User{Username: "u-" + uuid.NewString()[:8], Role: role}
	if err := database.DB.Create(&user).Error; err != nil {
		t.Fatalf("failed to create user: %v", err)
	}

	session := models.Session{
		ID:           uuid.NewString(),
		UserID:       user.ID,
		LastActivity: lastActivity,
	}
	if err := database.DB.Create(&session).Error; err != nil {
		t.Fatalf("failed to create session: %v", err)
	}

	token, err := auth.GenerateToken(user.ID, user.Role, session.ID)
	if err != nil {
		t.Fatalf("failed to generate token: %v", err)
	}
	return token, session.ID
}

func doRequest(r *gin.Engine, path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareAllowsActiveSession(t *testing.T) {
	setupTest(t)
	r := newRouter(30 * time.Minute)
	token, sessionID := loginAs(t, "employee", time.Now().Add(-time.Minute))

	w := doRequest(r, "/protected", token)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (body %s)", w.Code, w.Body.String())
	}

	// The request itself counts as activity
	var session models.Session
	database.DB.First(&session, "id = ?", sessionID)
	if time.Since(session.LastActivity) > 5*time.Second {
		t.Error("last_activity was not refreshed by the request")
	}
}

func TestAuthMiddlewareLogsOutInactiveSession(t *testing.T) {
	setupTest(t)
	r := newRouter(30 * time.Minute)
	token, sessionID := loginAs(t, "employee", time.Now().Add(-time.Hour))

	w := doRequest(r, "/protected", token)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", w.Code)
	}
	if !strings.Contains(w.Body.String(), "inactivity") {
		t.Errorf("body %q should mention inactivity", w.Body.String())
	}

	// The session is revoked for good; a prompt retry still fails
	var session models.Session
	database.DB.First(&session, "id = ?", sessionID)
	if !session.Revoked {
		t.Error("session should be revoked after timing out")
	}

	w = doRequest(r, "/protected", token)
	if w.Code != http.StatusUnauthorized {
		t.Errorf("retry status = %d, want 401", w.Code)
	}
}

func TestAuthMiddlewareRejectsMissingOrBadToken(t *testing.T) {
	setupTest(t)
	r := newRouter(30 * time.Minute)

	if w := doRequest(r, "/protected", ""); w.Code != http.StatusUnauthorized {
		t.Errorf("no token: status = %d, want 401", w.Code)
	}
	if w := doRequest(r, "/protected", "not-a-jwt"); w.Code != http.StatusUnauthorized {
		t.Errorf("garbage token: status = %d, want 401", w.Code)
	}
}

func TestRequireRole(t *testing.T) {
	setupTest(t)
	r := newRouter(30 * time.Minute)

	employeeToken, _ := loginAs(t, "employee", time.Now())
	adminToken, _ := loginAs(t, "admin", time.Now())

	if w := doRequest(r, "/admin", employeeToken); w.Code != http.StatusForbidden {
		t.Errorf("employee on admin route: status = %d, want 403", w.Code)
	}
	if w := doRequest(r, "/admin", adminToken); w.Code != http.StatusOK {
		t.Errorf("admin on admin route: status = %d, want 200", w.Code)
	}
}
