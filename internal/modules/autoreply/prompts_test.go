package autoreply

import (
	"strings"
	"testing"

	"reviewloop/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestCategorize(t *testing.T) {
	assert.Equal(t, CategoryPositive, Categorize(domain.Review{Rating: 5, Text: "最高でした"}))
	assert.Equal(t, CategoryPositive, Categorize(domain.Review{Rating: 4, Text: "良かった"}))
	assert.Equal(t, CategoryNeutral, Categorize(domain.Review{Rating: 3, Text: "普通"}))
	assert.Equal(t, CategoryNegative, Categorize(domain.Review{Rating: 2, Text: "残念"}))
	assert.Equal(t, CategoryNegative, Categorize(domain.Review{Rating: 1, Text: "ひどい"}))
}

func TestCategorize_EmptyCommentWinsOverRating(t *testing.T) {
	assert.Equal(t, CategoryNoComment, Categorize(domain.Review{Rating: 5, Text: ""}))
	assert.Equal(t, CategoryNoComment, Categorize(domain.Review{Rating: 1, Text: "   "}))
}

func TestSelectPromptTemplate_CustomPrompt(t *testing.T) {
	rv := domain.Review{Rating: 5, Text: "最高でした"}

	cfg := domain.AISettings{
		CustomPromptEnabled: true,
		PositivePrompt:      "カスタム: {店舗名}への高評価に返信してください。",
	}
	assert.Equal(t, cfg.PositivePrompt, SelectPromptTemplate(rv, cfg))

	// empty custom template falls back to the default
	cfg.PositivePrompt = "  "
	assert.Equal(t, defaultPrompts[CategoryPositive], SelectPromptTemplate(rv, cfg))

	// disabled flag ignores custom templates entirely
	cfg = domain.AISettings{CustomPromptEnabled: false, PositivePrompt: "カスタム"}
	assert.Equal(t, defaultPrompts[CategoryPositive], SelectPromptTemplate(rv, cfg))
}

func TestRenderPrompt(t *testing.T) {
	out := RenderPrompt("あなたは{店舗名}のオーナーです。{店舗名}らしい返信を。", "カフェ・ルポ 渋谷店")
	assert.Equal(t, "あなたはカフェ・ルポ 渋谷店のオーナーです。カフェ・ルポ 渋谷店らしい返信を。", out)
}

func TestRenderPrompt_FallbackLabel(t *testing.T) {
	out := RenderPrompt(defaultPrompts[CategoryNegative], "  ")
	assert.False(t, strings.Contains(out, storeNamePlaceholder))
	assert.True(t, strings.Contains(out, fallbackStoreLabel))
}
