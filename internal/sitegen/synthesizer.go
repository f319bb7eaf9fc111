package sitegen

import (
	"strings"
	"text/template"
	"time"
)

// DefaultAccent is the accent color used when the caller does not
// supply one. It drives button and shadow coloring via --accent.
const DefaultAccent = "#DC143C"

// splineScene is the hero background referenced by the document. It is
// never fetched by the synthesizer; correctness of the returned string
// does not depend on it resolving.
const splineScene = "https://prod.spline.design/4cHQr84zOGAHOehh/scene.splinecode"

type siteData struct {
	Title       string
	Description string
	Keywords    string
	Prompt      string
	Accent      string
	Spline      string
	Year        int
}

// Synthesize renders a complete self-contained site document from a
// prompt. Output is deterministic for a given prompt and accent, modulo
// the footer's current calendar year.
func Synthesize(prompt, accent string) string {
	return synthesizeAt(prompt, accent, time.Now().Year())
}

func synthesizeAt(prompt, accent string, year int) string {
	if accent == "" {
		accent = DefaultAccent
	}
	meta := ExtractMetadata(prompt)

	var b strings.Builder
	// The template is static and vetted by tests; an execute error here
	// would be a programming bug.
	if err := siteTemplate.Execute(&b, siteData{
		Title:       meta.Title,
		Description: meta.Description,
		Keywords:    meta.Keywords,
		Prompt:      prompt,
		Accent:      accent,
		Spline:      splineScene,
		Year:        year,
	}); err != nil {
		panic(err)
	}
	return b.String()
}

var siteTemplate = template.Must(template.New("site").Parse(`<!doctype html>
<html lang="en">
  <head>
    <meta charset="UTF-8" />
    <meta name="viewport" content="width=device-width, initial-scale=1.0" />
    <title>{{.Title}}</title>
    <meta name="description" content="{{.Description}}" />
    <meta name="keywords" content="{{.Keywords}}" />
    <link rel="preconnect" href="https://fonts.googleapis.com" />
    <link rel="preconnect" href="https://fonts.gstatic.com" crossorigin />
    <link href="https://fonts.googleapis.com/css2?family=Inter:wght@300;400;600;800&display=swap" rel="stylesheet" />
    <script src="https://cdn.tailwindcss.com"></script>
    <style>
      :root { --accent: {{.Accent}}; }
      html, body { height: 100%; }
      body { font-family: 'Inter', system-ui, -apple-system, Segoe UI, Roboto, sans-serif; }
      .crimson-gradient { background: radial-gradient(1200px 600px at 50% -20%, rgba(220,20,60,0.25), transparent),
                           radial-gradient(800px 400px at 120% 20%, rgba(99,102,241,0.15), transparent),
                           #0b0b10; }
      .glass { backdrop-filter: blur(12px); background: rgba(255,255,255,0.06); border: 1px solid rgba(255,255,255,0.08); }
      .btn { background: var(--accent); color: white; box-shadow: 0 10px 30px rgba(220,20,60,0.35); }
      .btn:hover { filter: brightness(1.05); transform: translateY(-1px); }
    </style>
  </head>
  <body class="min-h-full crimson-gradient text-white">
    <header class="sticky top-0 z-50 border-b border-white/10 bg-black/30 backdrop-blur">
      <div class="max-w-7xl mx-auto px-6 py-4 flex items-center justify-between">
        <a href="#" class="font-extrabold tracking-tight text-xl">Crimson</a>
        <nav class="hidden md:flex gap-8 text-white/80">
          <a href="#features" class="hover:text-white transition">Features</a>
          <a href="#templates" class="hover:text-white transition">Templates</a>
          <a href="#contact" class="hover:text-white transition">Contact</a>
        </nav>
        <a href="#cta" class="btn px-4 py-2 rounded-lg font-semibold">Get Started</a>
      </div>
    </header>

    <section class="relative" aria-label="Hero">
      <div class="absolute inset-0 opacity-80" style="pointer-events:none">
        <iframe src="{{.Spline}}" title="AI Aura" style="width:100%;height:100%;border:0;"></iframe>
      </div>
      <div class="relative z-10 max-w-5xl mx-auto px-6 pt-28 pb-24 text-center">
        <h1 class="text-4xl md:text-6xl font-extrabold leading-tight">{{.Prompt}}</h1>
        <p class="mt-6 text-white/80 text-lg md:text-xl">Production-ready site generated instantly. Clean, accessible, responsive, and fast.</p>
        <div class="mt-10 flex items-center justify-center gap-4" id="cta">
          <a href="#contact" class="btn px-6 py-3 rounded-xl font-semibold">Start Now</a>
          <a href="#features" class="px-6 py-3 rounded-xl font-semibold glass">Explore Features</a>
        </div>
      </div>
    </section>

    <main class="relative z-10">
      <section id="features" class="max-w-6xl mx-auto px-6 py-20 grid md:grid-cols-3 gap-6">
        <div class="glass rounded-2xl p-6">
          <h3 class="text-xl font-bold">Instant Preview</h3>
          <p class="text-white/80 mt-2">Your site renders as you describe it. No waiting, no compiling.</p>
        </div>
        <div class="glass rounded-2xl p-6">
          <h3 class="text-xl font-bold">Clean Code</h3>
          <p class="text-white/80 mt-2">Accessible, semantic HTML with responsive layouts out of the box.</p>
        </div>
        <div class="glass rounded-2xl p-6">
          <h3 class="text-xl font-bold">SEO Ready</h3>
          <p class="text-white/80 mt-2">Meta tags, performance hints, and fast loading by default.</p>
        </div>
      </section>

      <section id="templates" class="max-w-6xl mx-auto px-6 pb-24">
        <h2 class="text-2xl font-bold mb-6">Featured Sections</h2>
        <div class="grid md:grid-cols-3 gap-6">
          <article class="glass rounded-xl overflow-hidden">
            <img src="https://picsum.photos/seed/hero/800/500" alt="Placeholder image" class="w-full h-40 object-cover" />
            <div class="p-5">
              <h3 class="font-semibold">Hero + CTA</h3>
              <p class="text-white/80 text-sm mt-1">Crisp hero section with strong call-to-action.</p>
            </div>
          </article>
          <article class="glass rounded-xl overflow-hidden">
            <img src="https://picsum.photos/seed/feature/800/500" alt="Placeholder image" class="w-full h-40 object-cover" />
            <div class="p-5">
              <h3 class="font-semibold">Feature Grid</h3>
              <p class="text-white/80 text-sm mt-1">Explain value with icons and concise text.</p>
            </div>
          </article>
          <article class="glass rounded-xl overflow-hidden">
            <img src="https://picsum.photos/seed/contact/800/500" alt="Placeholder image" class="w-full h-40 object-cover" />
            <div class="p-5">
              <h3 class="font-semibold">Contact Form</h3>
              <p class="text-white/80 text-sm mt-1">Accessible form with client-side validation.</p>
            </div>
          </article>
        </div>
      </section>

      <section id="contact" class="max-w-2xl mx-auto px-6 pb-24">
        <div class="glass rounded-2xl p-8">
          <h2 class="text-2xl font-bold">Get in touch</h2>
          <form class="mt-6 grid gap-4" onsubmit="event.preventDefault(); alert('Submitted!')">
            <div>
              <label class="block text-sm text-white/70">Name</label>
              <input class="w-full mt-1 p-3 rounded-lg bg-white/10 border border-white/10 outline-none focus:border-white/30" required />
            </div>
            <div>
              <label class="block text-sm text-white/70">Email</label>
              <input type="email" class="w-full mt-1 p-3 rounded-lg bg-white/10 border border-white/10 outline-none focus:border-white/30" required />
            </div>
            <div>
              <label class="block text-sm text-white/70">Message</label>
              <textarea rows="4" class="w-full mt-1 p-3 rounded-lg bg-white/10 border border-white/10 outline-none focus:border-white/30" required></textarea>
            </div>
            <button class="btn px-5 py-3 rounded-xl font-semibold">Send</button>
          </form>
        </div>
      </section>
    </main>

    <footer class="border-t border-white/10 py-10 text-center text-white/60">
      <p>&copy; {{.Year}} Crimson &mdash; Generated by natural language</p>
    </footer>
  </body>
</html>
`))
