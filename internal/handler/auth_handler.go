package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/tahirakhan/axiom-social-app-backend/internal/middleware"
	"github.com/tahirakhan/axiom-social-app-backend/internal/model"
)

// AuthServiceInterface は認証ハンドラーが必要とするサービスインターフェース。
type AuthServiceInterface interface {
	// Login はメールアドレスとパスワードでユーザーを認証し、トークンを返す。
	Login(ctx context.Context, email, password string) (string, error)

	// CurrentUser は認証済みユーザーIDでユーザーを取得する。
	CurrentUser(ctx context.Context, userID string) (*model.User, error)
}

// AuthHandler はログイン認証のHTTPハンドラー。
type AuthHandler struct {
	service AuthServiceInterface
}

// NewAuthHandler はAuthHandlerを生成する。
func NewAuthHandler(service AuthServiceInterface) *AuthHandler {
	return &AuthHandler{
		service: service,
	}
}

// loginRequest はログインリクエストのJSON表現。
type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// loginResponse はログイン成功レスポンスのJSON表現。
type loginResponse struct {
	Token string `json:"token"`
}

// currentUserResponse は現在ユーザーレスポンスのJSON表現。
type currentUserResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Login はメールアドレスとパスワードでログインし、認証トークンを返す。
// POST /api/auth
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError(
			"リクエストボディの形式が正しくありません。",
			"JSONフォーマットを確認してください。",
		))
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || req.Password == "" {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError(
			"メールアドレスとパスワードは必須です。",
			"入力内容を確認してください。",
		))
		return
	}

	tok, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, loginResponse{Token: tok})
}

// Me は認証トークンに対応する現在のユーザー情報を返す。
// GET /api/auth
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	user, err := h.service.CurrentUser(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, currentUserResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
	})
}
