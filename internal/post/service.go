// Package post は投稿のCRUDと所有権チェックのドメインロジックを提供する。
package post

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/tahirakhan/axiom-social-app-backend/internal/model"
	"github.com/tahirakhan/axiom-social-app-backend/internal/repository"
)

// BodySanitizer は投稿本文のサニタイズのインターフェース。
type BodySanitizer interface {
	Sanitize(body string) string
}

// Service は投稿に関するビジネスロジックを提供する。
type Service struct {
	postRepo  repository.PostRepository
	sanitizer BodySanitizer
}

// NewService はServiceを生成する。
func NewService(postRepo repository.PostRepository, sanitizer BodySanitizer) *Service {
	return &Service{
		postRepo:  postRepo,
		sanitizer: sanitizer,
	}
}

// Create は認証済みユーザーの新規投稿を作成する。
// 作成者は呼び出し元のユーザーIDで固定し、リクエスト側から指定させない。
func (s *Service) Create(ctx context.Context, callerID, body string) (*model.Post, error) {
	now := time.Now().UTC()
	p := &model.Post{
		ID:        uuid.New().String(),
		AuthorID:  callerID,
		Body:      s.sanitizer.Sanitize(body),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.postRepo.Create(ctx, p); err != nil {
		return nil, fmt.Errorf("投稿の作成に失敗しました: %w", err)
	}

	slog.Info("post created",
		slog.String("post_id", p.ID),
		slog.String("author_id", callerID),
	)

	return p, nil
}

// ListAll はすべての投稿を新しい順に返す。
func (s *Service) ListAll(ctx context.Context) ([]*model.Post, error) {
	posts, err := s.postRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("投稿一覧の取得に失敗しました: %w", err)
	}
	return posts, nil
}

// ListByAuthor は指定ユーザーの投稿一覧を返す。
// 自分以外のユーザーの投稿一覧は取得できない。
func (s *Service) ListByAuthor(ctx context.Context, callerID, authorID string) ([]*model.Post, error) {
	if callerID != authorID {
		return nil, model.NewPostForbiddenError()
	}

	posts, err := s.postRepo.ListByAuthorID(ctx, authorID)
	if err != nil {
		return nil, fmt.Errorf("投稿一覧の取得に失敗しました: %w", err)
	}
	return posts, nil
}

// UpdateBody は自分の投稿の本文を更新する。
// 投稿が存在しない場合はNotFound、他人の投稿の場合はForbiddenを返す。
func (s *Service) UpdateBody(ctx context.Context, callerID, postID, body string) (*model.Post, error) {
	p, err := s.fetchOwned(ctx, callerID, postID)
	if err != nil {
		return nil, err
	}

	p.Body = s.sanitizer.Sanitize(body)
	p.UpdatedAt = time.Now().UTC()
	if err := s.postRepo.UpdateBody(ctx, p); err != nil {
		return nil, fmt.Errorf("投稿の更新に失敗しました: %w", err)
	}

	return p, nil
}

// Delete は自分の投稿を削除する。
func (s *Service) Delete(ctx context.Context, callerID, postID string) error {
	p, err := s.fetchOwned(ctx, callerID, postID)
	if err != nil {
		return err
	}

	if err := s.postRepo.DeleteByID(ctx, p.ID); err != nil {
		return fmt.Errorf("投稿の削除に失敗しました: %w", err)
	}

	slog.Info("post deleted",
		slog.String("post_id", p.ID),
		slog.String("author_id", callerID),
	)

	return nil
}

// fetchOwned は投稿を取得し、呼び出し元が作成者であることを確認する。
// 変更系操作の所有権チェックはすべてここを通す。
// 存在確認を所有権チェックより先に行うため、他人が消えた投稿を
// 操作してもForbiddenではなくNotFoundになる。
func (s *Service) fetchOwned(ctx context.Context, callerID, postID string) (*model.Post, error) {
	p, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("投稿の取得に失敗しました: %w", err)
	}
	if p == nil {
		return nil, model.NewPostNotFoundError(postID)
	}
	if p.AuthorID != callerID {
		return nil, model.NewPostForbiddenError()
	}
	return p, nil
}
