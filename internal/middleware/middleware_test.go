package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"rotation-tracker-backend/internal/config"
	"rotation-tracker-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestRequestID_GeneratesNew(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) {
		assert.NotEmpty(t, c.GetString(requestIDKey))
		c.Status(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.NotEmpty(t, rec.Header().Get(RequestIDHeader))
}

func TestRequestID_PreservesExisting(t *testing.T) {
	r := gin.New()
	r.Use(RequestID())
	r.GET("/", func(c *gin.Context) {
		assert.Equal(t, "my-custom-id", c.GetString(requestIDKey))
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(RequestIDHeader, "my-custom-id")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	assert.Equal(t, "my-custom-id", rec.Header().Get(RequestIDHeader))
}

func TestRecovery_ReturnsEnvelope(t *testing.T) {
	r := gin.New()
	r.Use(RequestID(), Recovery(zerolog.Nop()), Logger(zerolog.Nop()))
	r.GET("/panic", func(c *gin.Context) {
		panic("nil map write")
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"success":false,"error":"Internal server error"}`, rec.Body.String())
}

func identityRouter(cfg config.AuthConfig, issuer *utils.TokenIssuer) *gin.Engine {
	r := gin.New()
	r.Use(AuthMiddleware(cfg, issuer))
	r.GET("/students/:studentId", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"student": CurrentStudentID(c),
			"role":    CurrentRole(c),
			"actor":   Actor(c),
		})
	})
	return r
}

func TestAuthMiddleware_Disabled(t *testing.T) {
	r := identityRouter(config.AuthConfig{Enabled: false, DefaultStudentID: 522}, nil)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/students/1", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"student":522,"role":"student","actor":null}`, rec.Body.String())
}

func TestAuthMiddleware_Enabled(t *testing.T) {
	issuer := utils.NewTokenIssuer("mw-secret", time.Hour)
	r := identityRouter(config.AuthConfig{Enabled: true}, issuer)

	token, err := issuer.GenerateAccessToken(522, utils.RoleStudent)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer not-a-jwt", http.StatusUnauthorized},
		{"valid", "Bearer " + token, http.StatusOK},
		{"lower-case scheme", "bearer " + token, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/students/522", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestCheckStudentAccess(t *testing.T) {
	issuer := utils.NewTokenIssuer("mw-secret", time.Hour)
	access := NewAccessControlMiddleware(nil, nil)

	r := gin.New()
	r.Use(AuthMiddleware(config.AuthConfig{Enabled: true}, issuer))
	r.GET("/students/:studentId", access.CheckStudentAccess(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	student, _ := issuer.GenerateAccessToken(522, utils.RoleStudent)
	preceptor, _ := issuer.GenerateAccessToken(0, utils.RolePreceptor)

	tests := []struct {
		name   string
		path   string
		token  string
		status int
	}{
		{"own record", "/students/522", student, http.StatusOK},
		{"someone else", "/students/600", student, http.StatusForbidden},
		{"preceptor", "/students/600", preceptor, http.StatusOK},
		{"bad id passes through", "/students/abc", student, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, tt.path, nil)
			req.Header.Set("Authorization", "Bearer "+tt.token)
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS(config.CORSConfig{AllowedOrigins: []string{"http://localhost:4200"}}))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Origin", "http://localhost:4200")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, "http://localhost:4200", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))

	req = httptest.NewRequest(http.MethodOptions, "/", nil)
	req.Header.Set("Origin", "http://other.example")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
