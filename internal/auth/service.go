// Package auth はログイン認証のドメインロジックを提供する。
package auth

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/tahirakhan/axiom-social-app-backend/internal/model"
	"github.com/tahirakhan/axiom-social-app-backend/internal/repository"
)

// TokenIssuer は認証済みユーザーIDに対するトークン発行のインターフェース。
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

// LoginMetrics はログイン結果のメトリクス記録インターフェース。
type LoginMetrics interface {
	RecordLoginSuccess()
	RecordLoginFailure()
}

// Service は認証に関するビジネスロジックを提供する。
type Service struct {
	userRepo repository.UserRepository
	hasher   PasswordHasher
	issuer   TokenIssuer
	metrics  LoginMetrics // nilの場合は記録しない
}

// NewService はServiceを生成する。
func NewService(userRepo repository.UserRepository, hasher PasswordHasher, issuer TokenIssuer, metrics LoginMetrics) *Service {
	return &Service{
		userRepo: userRepo,
		hasher:   hasher,
		issuer:   issuer,
		metrics:  metrics,
	}
}

// Login はメールアドレスとパスワードでユーザーを認証し、トークンを返す。
// ユーザー不在とパスワード不一致で同一のエラーを返し、
// レスポンスからアカウントの存在を推測できないようにする。
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("ユーザーの取得に失敗しました: %w", err)
	}
	if user == nil {
		s.recordFailure()
		return "", model.NewInvalidCredentialsError()
	}

	if !s.hasher.Check(password, user.PasswordHash) {
		s.recordFailure()
		return "", model.NewInvalidCredentialsError()
	}

	tok, err := s.issuer.Issue(user.ID)
	if err != nil {
		return "", fmt.Errorf("トークンの発行に失敗しました: %w", err)
	}

	s.recordSuccess()
	slog.Info("user logged in",
		slog.String("user_id", user.ID),
	)

	return tok, nil
}

// CurrentUser は検証済みトークンから得たユーザーIDでユーザーを取得する。
// ユーザーIDはAuthミドルウェアが注入したものだけを渡すこと。
func (s *Service) CurrentUser(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("ユーザーの取得に失敗しました: %w", err)
	}
	if user == nil {
		return nil, model.NewUserNotFoundError()
	}

	return user, nil
}

func (s *Service) recordSuccess() {
	if s.metrics != nil {
		s.metrics.RecordLoginSuccess()
	}
}

func (s *Service) recordFailure() {
	if s.metrics != nil {
		s.metrics.RecordLoginFailure()
	}
}
