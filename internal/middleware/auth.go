// Package middleware はHTTPミドルウェアを提供する。
package middleware

import (
	"context"
	"fmt"
	"net/http"
)

// TokenHeaderName は認証トークンを運ぶHTTPリクエストヘッダー名。
const TokenHeaderName = "axiom-auth-token"

// contextKey はコンテキストに値を格納するための型安全なキー。
type contextKey string

// userIDContextKey はリクエストコンテキストにユーザーIDを格納するためのキー。
var userIDContextKey = contextKey("user_id")

// TokenVerifier はトークン文字列を検証し、埋め込まれたユーザーIDを返すインターフェース。
// token.Serviceの部分集合として定義する。
type TokenVerifier interface {
	Verify(raw string) (string, error)
}

// AuthMetrics はトークン拒否のメトリクス記録インターフェース。
type AuthMetrics interface {
	RecordTokenRejected(reason string)
}

// NewAuthMiddleware はaxiom-auth-tokenヘッダーからトークンを読み取り、
// 検証済みユーザーIDをリクエストコンテキストに注入するミドルウェアを返す。
// トークンの欠落・改ざん・期限切れはすべて同一の401レスポンスになる。
// metricsはnil可。
func NewAuthMiddleware(verifier TokenVerifier, metrics AuthMetrics) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get(TokenHeaderName)

			userID, err := verifier.Verify(raw)
			if err != nil {
				if metrics != nil {
					reason := "invalid"
					if raw == "" {
						reason = "missing"
					}
					metrics.RecordTokenRejected(reason)
				}
				WriteUnauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), userIDContextKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserIDFromContext はリクエストコンテキストからユーザーIDを取得する。
// 認証ミドルウェアを通過したリクエストでのみ有効。
func UserIDFromContext(ctx context.Context) (string, error) {
	userID, ok := ctx.Value(userIDContextKey).(string)
	if !ok || userID == "" {
		return "", fmt.Errorf("user ID not found in context")
	}
	return userID, nil
}

// ContextWithUserID はコンテキストにユーザーIDを注入する。
// テストやミドルウェア以外のコンテキスト生成で使用する。
func ContextWithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDContextKey, userID)
}
