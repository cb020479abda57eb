// Package repository はデータ永続化のインターフェースを定義する。
package repository

import (
	"context"

	"github.com/tahirakhan/axiom-social-app-backend/internal/model"
)

// UserRepository はユーザーデータの永続化インターフェース。
type UserRepository interface {
	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.User, error)

	// FindByEmail は指定メールアドレスのユーザーを取得する。見つからない場合はnilを返す。
	FindByEmail(ctx context.Context, email string) (*model.User, error)

	// Create はユーザーを作成する。
	Create(ctx context.Context, user *model.User) error
}

// PostRepository は投稿データの永続化インターフェース。
type PostRepository interface {
	// FindByID は指定IDの投稿を取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Post, error)

	// ListAll は全投稿をcreated_at降順で返す。
	ListAll(ctx context.Context) ([]*model.Post, error)

	// ListByAuthorID は指定ユーザーの投稿一覧をcreated_at降順で返す。
	ListByAuthorID(ctx context.Context, authorID string) ([]*model.Post, error)

	// Create は投稿を作成する。
	Create(ctx context.Context, post *model.Post) error

	// UpdateBody は投稿本文を単一のUPDATE文で更新する。
	// 投稿が存在しない場合はエラーを返す。
	UpdateBody(ctx context.Context, post *model.Post) error

	// DeleteByID は指定IDの投稿を削除する。
	// 投稿が存在しない場合はエラーを返す。
	DeleteByID(ctx context.Context, id string) error
}
