package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/tahirakhan/axiom-social-app-backend/internal/model"
)

// minPasswordLength は登録時に要求するパスワードの最小文字数。
const minPasswordLength = 6

// UserServiceInterface はユーザーハンドラーが必要とするサービスインターフェース。
type UserServiceInterface interface {
	// Register は新規ユーザーを作成し、自動ログイン用のトークンと共に返す。
	Register(ctx context.Context, name, email, password string) (*model.User, string, error)
}

// UserHandler はユーザー登録のHTTPハンドラー。
type UserHandler struct {
	service UserServiceInterface
}

// NewUserHandler はUserHandlerを生成する。
func NewUserHandler(service UserServiceInterface) *UserHandler {
	return &UserHandler{
		service: service,
	}
}

// registerRequest はユーザー登録リクエストのJSON表現。
type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// registerResponse はユーザー登録成功レスポンスのJSON表現。
type registerResponse struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
}

// Register は新規ユーザーを作成する。
// POST /api/users
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, model.NewInvalidRequestError(
			"リクエストボディの形式が正しくありません。",
			"JSONフォーマットを確認してください。",
		))
		return
	}

	if apiErr := validateRegisterRequest(&req); apiErr != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, apiErr)
		return
	}

	user, tok, err := h.service.Register(r.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusCreated, registerResponse{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Token: tok,
	})
}

// validateRegisterRequest は登録リクエストの内容を検証する。
// 正常時はnilを返す。
func validateRegisterRequest(req *registerRequest) *model.APIError {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)

	if req.Name == "" {
		return model.NewInvalidRequestError(
			"名前は必須です。",
			"名前を入力してください。",
		)
	}
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		return model.NewInvalidRequestError(
			"メールアドレスの形式が正しくありません。",
			"有効なメールアドレスを入力してください。",
		)
	}
	if len(req.Password) < minPasswordLength {
		return model.NewInvalidRequestError(
			"パスワードは6文字以上で入力してください。",
			"より長いパスワードを設定してください。",
		)
	}
	return nil
}
