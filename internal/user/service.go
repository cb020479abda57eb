// Package user はユーザー登録のドメインロジックを提供する。
package user

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tahirakhan/axiom-social-app-backend/internal/model"
	"github.com/tahirakhan/axiom-social-app-backend/internal/repository"
)

// PasswordHasher は平文パスワードのハッシュ化のインターフェース。
type PasswordHasher interface {
	Hash(password string) (string, error)
}

// TokenIssuer は登録直後の自動ログイン用トークン発行のインターフェース。
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

// Service はユーザー登録に関するビジネスロジックを提供する。
type Service struct {
	userRepo repository.UserRepository
	hasher   PasswordHasher
	issuer   TokenIssuer
}

// NewService はServiceを生成する。
func NewService(userRepo repository.UserRepository, hasher PasswordHasher, issuer TokenIssuer) *Service {
	return &Service{
		userRepo: userRepo,
		hasher:   hasher,
		issuer:   issuer,
	}
}

// Register は新規ユーザーを作成し、自動ログイン用のトークンと共に返す。
// メールアドレスが既に登録済みの場合はDuplicateEmailエラーを返す。
func (s *Service) Register(ctx context.Context, name, email, password string) (*model.User, string, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, "", fmt.Errorf("パスワードのハッシュ化に失敗しました: %w", err)
	}

	now := time.Now().UTC()
	user := &model.User{
		ID:           uuid.New().String(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, "", model.NewDuplicateEmailError()
		}
		return nil, "", fmt.Errorf("ユーザーの作成に失敗しました: %w", err)
	}

	tok, err := s.issuer.Issue(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("トークンの発行に失敗しました: %w", err)
	}

	slog.Info("user registered",
		slog.String("user_id", user.ID),
	)

	return user, tok, nil
}
