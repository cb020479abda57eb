package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/tahirakhan/axiom-social-app-backend/internal/middleware"
	"github.com/tahirakhan/axiom-social-app-backend/internal/model"
)

// PostServiceInterface は投稿ハンドラーが必要とするサービスインターフェース。
type PostServiceInterface interface {
	// Create は認証済みユーザーの新規投稿を作成する。
	Create(ctx context.Context, callerID, body string) (*model.Post, error)

	// ListAll はすべての投稿を新しい順に返す。
	ListAll(ctx context.Context) ([]*model.Post, error)

	// ListByAuthor は指定ユーザーの投稿一覧を返す。自分以外は取得できない。
	ListByAuthor(ctx context.Context, callerID, authorID string) ([]*model.Post, error)

	// UpdateBody は自分の投稿の本文を更新する。
	UpdateBody(ctx context.Context, callerID, postID, body string) (*model.Post, error)

	// Delete は自分の投稿を削除する。
	Delete(ctx context.Context, callerID, postID string) error
}

// PostHandler は投稿CRUDのHTTPハンドラー。
type PostHandler struct {
	service       PostServiceInterface
	maxBodyLength int
}

// NewPostHandler はPostHandlerを生成する。
func NewPostHandler(service PostServiceInterface, maxBodyLength int) *PostHandler {
	return &PostHandler{
		service:       service,
		maxBodyLength: maxBodyLength,
	}
}

// postRequest は投稿の作成・更新リクエストのJSON表現。
type postRequest struct {
	Body string `json:"body"`
}

// postResponse は投稿レスポンスのJSON表現。
type postResponse struct {
	ID        string    `json:"id"`
	AuthorID  string    `json:"author_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Create は新規投稿を作成する。
// POST /api/posts
func (h *PostHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	body, apiErr := h.decodePostBody(r)
	if apiErr != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, apiErr)
		return
	}

	post, err := h.service.Create(r.Context(), userID, body)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusCreated, toPostResponse(post))
}

// ListAll はすべての投稿を返す。
// GET /api/posts
func (h *PostHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.ListAll(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, toPostListResponse(posts))
}

// ListByAuthor は指定ユーザーの投稿一覧を返す。
// GET /api/posts/{id} のパスパラメーターは投稿者のユーザーIDとして解釈する。
func (h *PostHandler) ListByAuthor(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	authorID := chi.URLParam(r, "id")

	posts, err := h.service.ListByAuthor(r.Context(), userID, authorID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, toPostListResponse(posts))
}

// Update は自分の投稿の本文を更新する。
// PUT /api/posts/{id}
func (h *PostHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	postID := chi.URLParam(r, "id")

	body, apiErr := h.decodePostBody(r)
	if apiErr != nil {
		writeAPIErrorResponse(w, http.StatusBadRequest, apiErr)
		return
	}

	post, err := h.service.UpdateBody(r.Context(), userID, postID, body)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSONResponse(w, http.StatusOK, toPostResponse(post))
}

// Delete は自分の投稿を削除する。
// DELETE /api/posts/{id}
func (h *PostHandler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, err := middleware.UserIDFromContext(r.Context())
	if err != nil {
		writeAPIErrorResponse(w, http.StatusUnauthorized, model.NewUnauthorizedError())
		return
	}

	postID := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), userID, postID); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// decodePostBody はリクエストボディを検証付きでデコードする。
// 正常時は本文と nil を返す。
func (h *PostHandler) decodePostBody(r *http.Request) (string, *model.APIError) {
	var req postRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return "", model.NewInvalidRequestError(
			"リクエストボディの形式が正しくありません。",
			"JSONフォーマットを確認してください。",
		)
	}

	body := strings.TrimSpace(req.Body)
	if body == "" {
		return "", model.NewInvalidRequestError(
			"投稿本文は必須です。",
			"本文を入力してください。",
		)
	}
	if len([]rune(body)) > h.maxBodyLength {
		return "", model.NewInvalidRequestError(
			"投稿本文が長すぎます。",
			"本文を短くしてください。",
		)
	}

	return body, nil
}

// toPostResponse はmodel.PostからAPIレスポンスに変換する。
func toPostResponse(post *model.Post) postResponse {
	return postResponse{
		ID:        post.ID,
		AuthorID:  post.AuthorID,
		Body:      post.Body,
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}
}

// toPostListResponse は投稿スライスをAPIレスポンスに変換する。
// 投稿が存在しない場合も空配列を返す。
func toPostListResponse(posts []*model.Post) []postResponse {
	res := make([]postResponse, 0, len(posts))
	for _, p := range posts {
		res = append(res, toPostResponse(p))
	}
	return res
}
