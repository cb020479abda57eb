package handler

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/tahirakhan/axiom-social-app-backend/internal/middleware"
)

// RouterDeps はNewRouterに必要な依存関係をまとめた構造体。
type RouterDeps struct {
	// ミドルウェア依存
	TokenVerifier     middleware.TokenVerifier
	AuthMetrics       middleware.AuthMetrics
	HTTPMetrics       middleware.HTTPMetrics
	RateLimiter       *middleware.RateLimiter
	CORSAllowedOrigin string
	Logger            *slog.Logger

	// サービス
	AuthService AuthServiceInterface
	UserService UserServiceInterface
	PostService PostServiceInterface

	// 投稿本文の最大文字数
	MaxPostBodyLength int

	// 運用エンドポイント
	MetricsHandler http.Handler
	DB             DBPinger
}

// NewRouter は全APIエンドポイントのルーティングとミドルウェアチェーンを構成したchi.Routerを返す。
//
// ミドルウェアスタックの実行順序:
//
//	Recovery → CORS → SecurityHeaders → Logging → [Auth → RateLimit(General)]
//
// ログイン・登録ルートは認証ゲートの外に配置し、IP単位のレート制限をかける。
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.NewRecoveryMiddleware())
	r.Use(middleware.NewCORSMiddleware(deps.CORSAllowedOrigin))
	r.Use(middleware.NewSecurityHeadersMiddleware())
	r.Use(middleware.NewLoggingMiddleware(deps.Logger, deps.HTTPMetrics))

	authHandler := NewAuthHandler(deps.AuthService)
	userHandler := NewUserHandler(deps.UserService)
	postHandler := NewPostHandler(deps.PostService, deps.MaxPostBodyLength)
	healthHandler := NewHealthHandler(deps.DB)

	// --- 認証不要のルート ---

	// ログインと登録はIP単位のレート制限で保護する
	r.With(deps.RateLimiter.LoginMiddleware()).Post("/api/auth", authHandler.Login)
	r.With(deps.RateLimiter.LoginMiddleware()).Post("/api/users", userHandler.Register)

	r.Get("/health", healthHandler.Check)

	if deps.MetricsHandler != nil {
		r.Handle("/metrics", deps.MetricsHandler)
	}

	// --- 認証が必要なルート ---
	// ミドルウェアスタック: Auth → RateLimit(General)
	r.Group(func(r chi.Router) {
		r.Use(middleware.NewAuthMiddleware(deps.TokenVerifier, deps.AuthMetrics))
		r.Use(deps.RateLimiter.GeneralMiddleware())

		// 現在のユーザー情報
		r.Get("/api/auth", authHandler.Me)

		// 投稿管理
		r.Route("/api/posts", func(r chi.Router) {
			r.Post("/", postHandler.Create)
			r.Get("/", postHandler.ListAll)

			r.Route("/{id}", func(r chi.Router) {
				// GET のパスパラメーターは投稿者のユーザーIDとして解釈する
				r.Get("/", postHandler.ListByAuthor)
				r.Put("/", postHandler.Update)
				r.Delete("/", postHandler.Delete)
			})
		})
	})

	return r
}
