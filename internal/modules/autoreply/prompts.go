package autoreply

import (
	"strings"

	"reviewloop/internal/domain"
)

type Category string

const (
	CategoryPositive  Category = "positive"
	CategoryNeutral   Category = "neutral"
	CategoryNegative  Category = "negative"
	CategoryNoComment Category = "no_comment"
)

const storeNamePlaceholder = "{店舗名}"

// fallbackStoreLabel substitutes the placeholder when no store name is
// resolvable.
const fallbackStoreLabel = "当店"

var defaultPrompts = map[Category]string{
	CategoryPositive:  "あなたは{店舗名}のオーナーです。お客様から高評価の口コミをいただきました。感謝の気持ちが伝わる丁寧な返信を、150文字以内の日本語で作成してください。",
	CategoryNeutral:   "あなたは{店舗名}のオーナーです。お客様から率直なご意見の口コミをいただきました。ご来店への感謝と今後の改善への意欲が伝わる返信を、150文字以内の日本語で作成してください。",
	CategoryNegative:  "あなたは{店舗名}のオーナーです。お客様から厳しいご指摘の口コミをいただきました。真摯に受け止めて謝罪し、改善に取り組む姿勢が伝わる返信を、150文字以内の日本語で作成してください。言い訳はしないでください。",
	CategoryNoComment: "あなたは{店舗名}のオーナーです。コメントなしで評価のみの口コミをいただきました。評価への感謝と再来店のお願いを簡潔に伝える返信を、100文字以内の日本語で作成してください。",
}

// Categorize sorts a review into one of the four reply-template
// buckets. An empty or whitespace-only comment always wins over the
// rating split.
func Categorize(review domain.Review) Category {
	if strings.TrimSpace(review.Text) == "" {
		return CategoryNoComment
	}
	switch {
	case review.Rating >= 4:
		return CategoryPositive
	case review.Rating == 3:
		return CategoryNeutral
	default:
		return CategoryNegative
	}
}

// SelectPromptTemplate picks the custom template for the review's
// category when custom prompts are enabled and the template is
// non-empty, falling back to the built-in defaults.
func SelectPromptTemplate(review domain.Review, settings domain.AISettings) string {
	cat := Categorize(review)
	if settings.CustomPromptEnabled {
		var custom string
		switch cat {
		case CategoryPositive:
			custom = settings.PositivePrompt
		case CategoryNeutral:
			custom = settings.NeutralPrompt
		case CategoryNegative:
			custom = settings.NegativePrompt
		case CategoryNoComment:
			custom = settings.NoCommentPrompt
		}
		if strings.TrimSpace(custom) != "" {
			return custom
		}
	}
	return defaultPrompts[cat]
}

// RenderPrompt substitutes the store-name placeholder.
func RenderPrompt(template, storeName string) string {
	name := strings.TrimSpace(storeName)
	if name == "" {
		name = fallbackStoreLabel
	}
	return strings.ReplaceAll(template, storeNamePlaceholder, name)
}
