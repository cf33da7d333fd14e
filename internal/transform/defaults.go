package transform

import (
	"fmt"
	"math"
	"regexp"
	"strings"
	"time"

	"github.com/gosimple/slug"

	"ActivityPublisher/internal/domain"
)

const (
	wordsPerMinute = 200
	maxSlugLength  = 80
	excerptLength  = 150
)

var wordExpr = regexp.MustCompile(`\w+`)

// estimateReadingTime derives an "N min read" string from the word count.
func estimateReadingTime(text string) string {
	words := len(wordExpr.FindAllString(text, -1))
	minutes := int(math.Round(float64(words) / wordsPerMinute))
	if minutes < 1 {
		minutes = 1
	}
	return fmt.Sprintf("%d min read", minutes)
}

// makeSlug derives a reproducible slug from the title, capped at 80 chars.
func makeSlug(title string, now time.Time) string {
	if strings.TrimSpace(title) == "" {
		return fmt.Sprintf("post-%d", now.Unix())
	}
	s := slug.Make(title)
	if len(s) > maxSlugLength {
		s = strings.Trim(s[:maxSlugLength], "-")
	}
	return s
}

// makeExcerpt takes the leading content characters, ellipsis appended.
func makeExcerpt(content string) string {
	runes := []rune(content)
	if len(runes) > excerptLength {
		runes = runes[:excerptLength]
	}
	return string(runes) + "..."
}

func isoDate(now time.Time) string {
	return now.UTC().Format("2006-01-02")
}

func stringField(c domain.Candidate, key string) string {
	v, _ := c[key].(string)
	return v
}

func containsAny(text string, words ...string) bool {
	for _, word := range words {
		if strings.Contains(text, word) {
			return true
		}
	}
	return false
}
