package sitegen

import (
	"strings"
	"unicode"
)

const (
	fallbackTitle     = "Crimson Site"
	descriptionPrefix = "Auto-generated website: "
	maxTitleRunes     = 60
	maxKeywords       = 8
)

// Metadata holds the SEO fields derived from a prompt. All three fields
// are embedded verbatim into the document head by the synthesizer.
type Metadata struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Keywords    string `json:"keywords"`
}

// ExtractMetadata derives title, description and keywords from a raw
// prompt. It is total: any string, including empty, yields a usable
// Metadata value.
func ExtractMetadata(prompt string) Metadata {
	trimmed := strings.TrimSpace(prompt)

	title := truncateRunes(capitalizeFirst(trimmed), maxTitleRunes)
	if title == "" {
		title = fallbackTitle
	}

	keywords := make([]string, 0, maxKeywords)
	for _, tok := range strings.Fields(strings.ToLower(trimmed)) {
		if !isAlpha(tok) {
			continue
		}
		keywords = append(keywords, tok)
		if len(keywords) == maxKeywords {
			break
		}
	}

	return Metadata{
		Title:       title,
		Description: descriptionPrefix + trimmed,
		Keywords:    strings.Join(keywords, ", "),
	}
}

func capitalizeFirst(s string) string {
	if s == "" {
		return s
	}
	r := []rune(s)
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func truncateRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

func isAlpha(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return true
}
