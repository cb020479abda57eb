// Package security は投稿本文のサニタイズ処理を提供する。
package security

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// ContentSanitizer はユーザー投稿本文からHTMLタグとスクリプトを除去する。
// 投稿はプレーンテキストとして扱い、マークアップは一切許可しない。
type ContentSanitizer struct {
	policy *bluemonday.Policy
}

// NewContentSanitizer はStrictPolicyベースのContentSanitizerを生成する。
func NewContentSanitizer() *ContentSanitizer {
	return &ContentSanitizer{
		policy: bluemonday.StrictPolicy(),
	}
}

// Sanitize は本文からすべてのHTML要素を除去し、整形済みテキストを返す。
func (s *ContentSanitizer) Sanitize(body string) string {
	cleaned := s.policy.Sanitize(body)
	// StrictPolicyは残存テキストをエスケープするため、実体参照を平文に戻す
	cleaned = html.UnescapeString(cleaned)
	return strings.TrimSpace(cleaned)
}
