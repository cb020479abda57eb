// Package model はドメインモデルを定義する。
package model

import "time"

// Post はユーザーの投稿を表す。
// AuthorIDは作成時に一度だけ設定され、以降変更されない。
// 投稿の更新・削除はAuthorIDと一致するユーザーのみが行える。
type Post struct {
	ID        string
	AuthorID  string
	Body      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
