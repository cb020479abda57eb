// Package token は署名付きトークンの発行と検証を提供する。
//
// トークンはHS256で署名されたJWTであり、ユーザーIDと発行時刻・有効期限のみを含む。
// サーバー側にセッション状態を持たず、有効性はトークン自身の署名と有効期限から
// 完全に計算できる。失効リストは持たない（発行済みトークンは自然満了まで有効）。
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrMissing はトークンが提示されなかったことを表す。
	ErrMissing = errors.New("token is missing")

	// ErrInvalid はトークンが検証に失敗したことを表す。
	// 改ざん・他鍵署名・期限切れを区別せず同一のエラーとする。
	// 失敗の種類を呼び出し元に漏らさないための設計。
	ErrInvalid = errors.New("token is invalid")
)

// Clock は現在時刻を返す関数。テストで時刻を固定するために注入する。
type Clock func() time.Time

// Claims はトークンに埋め込む署名済みペイロード。
type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

// Service はトークンの発行と検証を行う。
// secretは起動時に設定から1回だけ注入され、以後変更されない。
type Service struct {
	secret []byte
	ttl    time.Duration
	now    Clock
}

// NewService はServiceを生成する。
// clockがnilの場合はtime.Nowを使用する。
func NewService(secret []byte, ttl time.Duration, clock Clock) *Service {
	if clock == nil {
		clock = time.Now
	}
	return &Service{
		secret: secret,
		ttl:    ttl,
		now:    clock,
	}
}

// Issue は認証済みユーザーIDに対して署名付きトークンを発行する。
// 有効期限は現在時刻 + 固定TTL。呼び出しごとのTTL上書きはできない。
// 署名失敗は内部エラーとして呼び出し元に返す。
func (s *Service) Issue(userID string) (string, error) {
	now := s.now()
	claims := &Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// Verify はトークンを検証し、埋め込まれたユーザーIDを返す。
// 空文字列はErrMissing、それ以外の検証失敗はすべてErrInvalidを返す。
// 検証は読み取りのみで、トークンの有効期限を延長しない。
func (s *Service) Verify(raw string) (string, error) {
	if raw == "" {
		return "", ErrMissing
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims,
		func(t *jwt.Token) (interface{}, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return "", ErrInvalid
	}

	if claims.UserID == "" {
		return "", ErrInvalid
	}

	return claims.UserID, nil
}
