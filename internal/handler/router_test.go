package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/tahirakhan/axiom-social-app-backend/internal/middleware"
	"github.com/tahirakhan/axiom-social-app-backend/internal/model"
	"github.com/tahirakhan/axiom-social-app-backend/internal/token"
)

var routerTestSecret = []byte("router-test-secret-32bytes!!!!!!")

// newTestRouter はテスト用の依存を組んだルーターとトークンサービスを返す。
func newTestRouter(t *testing.T, postService PostServiceInterface) (http.Handler, *token.Service, *middleware.RateLimiter) {
	t.Helper()

	tokenService := token.NewService(routerTestSecret, time.Hour, nil)
	rateLimiter := middleware.NewRateLimiter(middleware.DefaultRateLimiterConfig())
	t.Cleanup(rateLimiter.Stop)

	if postService == nil {
		postService = &mockPostService{}
	}

	router := NewRouter(&RouterDeps{
		TokenVerifier:     tokenService,
		RateLimiter:       rateLimiter,
		CORSAllowedOrigin: "http://localhost:3000",
		Logger:            slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil)),
		AuthService:       &mockAuthService{},
		UserService:       &mockUserService{},
		PostService:       postService,
		MaxPostBodyLength: testMaxBodyLength,
	})

	return router, tokenService, rateLimiter
}

// 認証なしのリクエストが保護ルートに到達しないことを検証
func TestRouter_ProtectedRoutes_RequireToken(t *testing.T) {
	serviceCalled := false
	postService := &mockPostService{
		listAllFn: func(ctx context.Context) ([]*model.Post, error) {
			serviceCalled = true
			return nil, nil
		},
	}
	router, _, _ := newTestRouter(t, postService)

	cases := []struct {
		method string
		target string
	}{
		{http.MethodGet, "/api/posts"},
		{http.MethodPost, "/api/posts"},
		{http.MethodGet, "/api/posts/user-1"},
		{http.MethodPut, "/api/posts/post-1"},
		{http.MethodDelete, "/api/posts/post-1"},
		{http.MethodGet, "/api/auth"},
	}

	for _, tt := range cases {
		req := httptest.NewRequest(tt.method, tt.target, strings.NewReader(`{"body":"x"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		if rec.Code != http.StatusUnauthorized {
			t.Errorf("%s %s: status = %d, want %d", tt.method, tt.target, rec.Code, http.StatusUnauthorized)
		}
	}
	if serviceCalled {
		t.Error("service must not be reached without a credential")
	}
}

// 有効なトークンで保護ルートに到達できることを検証
func TestRouter_ValidToken_ReachesHandler(t *testing.T) {
	var gotCallerID string
	postService := &mockPostService{
		createFn: func(ctx context.Context, callerID, body string) (*model.Post, error) {
			gotCallerID = callerID
			return &model.Post{ID: "post-1", AuthorID: callerID, Body: body}, nil
		},
	}
	router, tokenService, _ := newTestRouter(t, postService)

	raw, err := tokenService.Issue("user-7")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/posts", strings.NewReader(`{"body":"hello"}`))
	req.Header.Set(middleware.TokenHeaderName, raw)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want %d: %s", rec.Code, http.StatusCreated, rec.Body.String())
	}
	if gotCallerID != "user-7" {
		t.Errorf("callerID = %q, want %q", gotCallerID, "user-7")
	}
}

// 期限切れトークンが401になることを検証
func TestRouter_ExpiredToken_Returns401(t *testing.T) {
	router, _, _ := newTestRouter(t, nil)

	past := time.Now().Add(-2 * time.Hour)
	expiredIssuer := token.NewService(routerTestSecret, time.Hour, func() time.Time { return past })

	raw, err := expiredIssuer.Issue("user-7")
	if err != nil {
		t.Fatalf("Issue returned error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/posts", nil)
	req.Header.Set(middleware.TokenHeaderName, raw)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusUnauthorized)
	}
}

// ログインと登録は認証なしで到達できることを検証
func TestRouter_PublicRoutes_DoNotRequireToken(t *testing.T) {
	router, _, _ := newTestRouter(t, nil)

	loginBody := `{"email":"test@example.com","password":"password123"}`
	req := httptest.NewRequest(http.MethodPost, "/api/auth", strings.NewReader(loginBody))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	// mockAuthServiceのデフォルトは認証失敗を返すため401になるが、
	// 認証ゲートではなくハンドラーまで到達していることが確認できる
	var res apiErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&res); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if res.Code != model.ErrCodeInvalidCredentials {
		t.Errorf("code = %q, want %q", res.Code, model.ErrCodeInvalidCredentials)
	}

	registerBody := `{"name":"Alice","email":"alice@example.com","password":"password123"}`
	req = httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(registerBody))
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusCreated)
	}
}

func TestRouter_Health_Returns200(t *testing.T) {
	router, _, _ := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}
}

// セキュリティヘッダーとCORSヘッダーが全レスポンスに付与されることを検証
func TestRouter_AppliesSecurityAndCORSHeaders(t *testing.T) {
	router, _, _ := newTestRouter(t, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if got := rec.Header().Get("X-Content-Type-Options"); got != "nosniff" {
		t.Errorf("X-Content-Type-Options = %q, want nosniff", got)
	}
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
}
