package sitegen

import (
	"fmt"
	"strings"

	"github.com/crimson-site/crimson-backend/internal/projects/domain"
)

// Marker substrings embedded by the synthesizer. Transformations are
// literal replacements against these; if a marker is absent (already
// transformed, or the user hand-edited it away) the replacement is a
// silent no-op.
const (
	baseBackground  = "#0b0b10"
	sciFiBackground = "#05060a"
	darkBackground  = "#0a0a0a"

	accentGlow = "rgba(99,102,241,0.15)"
	sciFiGlow  = "rgba(56,189,248,0.18)"

	marketingPhrase = "Production-ready"
	sciFiPhrase     = "Sci-fi neon aesthetic with holographic accents"

	accentDefaultDecl = "--accent: " + DefaultAccent
	accentCrimsonDecl = "--accent: #b80f2a"

	mainClose = "</main>"
)

// Human-readable notes recorded with each applied transformation.
const (
	NoteSciFiTheme    = "Applied sci-fi theme"
	NoteDarkMode      = "Darkened base colors"
	NoteAddPricing    = "Added pricing section"
	NoteAccentRecolor = "Adjusted accent color"
	NoteRegenerate    = "Regenerated site with new instruction"
)

const pricingSection = `
<section id="pricing" class="max-w-6xl mx-auto px-6 pb-24">
  <h2 class="text-2xl font-bold mb-6">Pricing</h2>
  <div class="grid md:grid-cols-3 gap-6">
    <div class="glass rounded-2xl p-6"><h3 class="font-semibold">Starter</h3><p class="text-4xl font-extrabold mt-2">$0</p><p class="text-white/70 mt-2">For experiments</p></div>
    <div class="glass rounded-2xl p-6 border border-white/20"><h3 class="font-semibold">Pro</h3><p class="text-4xl font-extrabold mt-2">$19</p><p class="text-white/70 mt-2">For builders</p></div>
    <div class="glass rounded-2xl p-6"><h3 class="font-semibold">Scale</h3><p class="text-4xl font-extrabold mt-2">$99</p><p class="text-white/70 mt-2">For teams</p></div>
  </div>
</section>
`

// EditResult is the outcome of one applied transformation.
type EditResult struct {
	HTML string
	Note string
}

// Apply runs a classified transformation against the project's current
// document. Applying AddPricing repeatedly inserts repeated sections;
// that duplication is the documented contract, not a defect. Apply has
// no side effects — recording the result into the project history is
// the caller's job.
func Apply(tr Transformation, p *domain.Project, instruction string) EditResult {
	html := p.HTML

	switch tr.Kind {
	case KindSciFiTheme:
		html = strings.ReplaceAll(html, baseBackground, sciFiBackground)
		html = strings.ReplaceAll(html, accentGlow, sciFiGlow)
		html = strings.ReplaceAll(html, marketingPhrase, sciFiPhrase)
		return EditResult{HTML: html, Note: NoteSciFiTheme}

	case KindDarkMode:
		html = strings.ReplaceAll(html, baseBackground, darkBackground)
		return EditResult{HTML: html, Note: NoteDarkMode}

	case KindAddPricing:
		html = strings.Replace(html, mainClose, pricingSection+"\n    "+mainClose, 1)
		return EditResult{HTML: html, Note: NoteAddPricing}

	case KindAccentRecolor:
		html = strings.ReplaceAll(html, accentDefaultDecl, accentCrimsonDecl)
		return EditResult{HTML: html, Note: NoteAccentRecolor}

	default:
		combined := fmt.Sprintf("%s — %s", p.Prompt, instruction)
		return EditResult{HTML: Synthesize(combined, DefaultAccent), Note: NoteRegenerate}
	}
}
