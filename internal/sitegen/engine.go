// Package sitegen is the content generation and mutation engine behind
// Crimson projects: deterministic synthesis of a full site document
// from a prompt, SEO metadata extraction, a rule-based interpreter for
// free-text edit instructions, and the append-only version/conversation
// history protocol. It is a pure library — it performs no I/O and
// leaves persistence to the caller.
package sitegen

import (
	"strings"
	"time"

	"github.com/crimson-site/crimson-backend/internal/projects/domain"
)

const (
	maxNameRunes = 40
	ellipsis     = "…"

	initialVersionNote = "Initial generation"
	initialAssistant   = "Generated initial site"
)

// CreateProject synthesizes the initial document for a prompt and
// returns a project value seeded with version 0 and the opening
// conversation pair. The public id is assigned by storage on insert.
func CreateProject(ownerID, prompt, name string) *domain.Project {
	if strings.TrimSpace(name) == "" {
		name = defaultName(prompt)
	}

	p := &domain.Project{
		OwnerID: ownerID,
		Name:    name,
		Prompt:  prompt,
		Status:  domain.StatusDraft,
	}
	recordCreation(p, Synthesize(prompt, DefaultAccent))
	return p
}

// EditProject classifies the instruction, applies the matching
// transformation and records the outcome in the project history. The
// returned EditResult carries the new document and the note shown to
// the user. A project violating the history invariants yields
// domain.ErrPrecondition untouched.
func EditProject(p *domain.Project, instruction string) (EditResult, error) {
	if err := p.Validate(); err != nil {
		return EditResult{}, err
	}

	res := Apply(Classify(instruction), p, instruction)
	recordEdit(p, instruction, res.HTML, res.Note)
	return res, nil
}

// RenderableDocument returns the project's current document.
func RenderableDocument(p *domain.Project) string {
	return p.HTML
}

// recordCreation seeds versions[0] and the initial user/assistant
// conversation pair. All fields are stamped with a single timestamp so
// a reader can never observe a partially seeded project.
func recordCreation(p *domain.Project, html string) {
	now := time.Now().UTC()

	p.HTML = html
	p.Versions = []domain.Version{{Timestamp: now, HTML: html, Note: initialVersionNote}}
	p.Conversation = []domain.Message{
		{Timestamp: now, Role: domain.RoleUser, Content: p.Prompt},
		{Timestamp: now, Role: domain.RoleAssistant, Content: initialAssistant},
	}
	p.CreatedAt = now
	p.UpdatedAt = now
}

// recordEdit appends the user/assistant conversation pair and the new
// version snapshot, then moves the current document pointer. The two
// conversation entries are independent ordered appends — never a single
// keyed write — so the user instruction cannot be silently dropped.
func recordEdit(p *domain.Project, instruction, html, note string) {
	now := time.Now().UTC()

	p.Conversation = append(p.Conversation,
		domain.Message{Timestamp: now, Role: domain.RoleUser, Content: instruction},
		domain.Message{Timestamp: now, Role: domain.RoleAssistant, Content: note},
	)
	p.Versions = append(p.Versions, domain.Version{Timestamp: now, HTML: html, Note: note})
	p.HTML = html
	p.UpdatedAt = now
}

func defaultName(prompt string) string {
	r := []rune(prompt)
	if len(r) > maxNameRunes {
		return string(r[:maxNameRunes]) + ellipsis
	}
	return prompt
}
