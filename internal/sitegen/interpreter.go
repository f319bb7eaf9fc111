package sitegen

import "strings"

// Kind names a deterministic document transformation.
type Kind string

const (
	KindSciFiTheme    Kind = "sci_fi_theme"
	KindDarkMode      Kind = "dark_mode"
	KindAddPricing    Kind = "add_pricing"
	KindAccentRecolor Kind = "accent_recolor"
	KindRegenerate    Kind = "regenerate"
)

// Transformation is a classified edit instruction. Keyword carries the
// literal that matched, for traceability; it is empty for the
// regenerate fallback.
type Transformation struct {
	Kind    Kind
	Keyword string
}

type rule struct {
	kind     Kind
	keywords []string
}

// The cascade is an ordered list, evaluated top to bottom, first match
// wins. Order is part of the contract: "pricing and dark mode" is a
// dark-mode edit, "crimson sci-fi" a sci-fi one.
var rules = []rule{
	{KindSciFiTheme, []string{"sci-fi", "sci fi"}},
	{KindDarkMode, []string{"make it dark", "dark mode"}},
	{KindAddPricing, []string{"add pricing", "pricing"}},
	{KindAccentRecolor, []string{"change accent", "make it crimson", "crimson"}},
}

// Classify maps a free-text instruction onto a Transformation. It is
// total: unmatched instructions resolve to KindRegenerate.
func Classify(instruction string) Transformation {
	msg := strings.ToLower(instruction)
	for _, r := range rules {
		for _, kw := range r.keywords {
			if strings.Contains(msg, kw) {
				return Transformation{Kind: r.kind, Keyword: kw}
			}
		}
	}
	return Transformation{Kind: KindRegenerate}
}
