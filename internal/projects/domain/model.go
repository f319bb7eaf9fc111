package domain

import (
	"errors"
	"time"
)

// Project lifecycle states.
const (
	StatusDraft    = "draft"
	StatusDeployed = "deployed"
)

// Conversation roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

var (
	// ErrNotFound is returned when a project does not exist or is not
	// visible to the requesting owner.
	ErrNotFound = errors.New("project not found")

	// ErrPrecondition is returned when a loaded project violates the
	// history invariants (e.g. empty versions). It signals a storage or
	// caller bug, not a user error.
	ErrPrecondition = errors.New("project history precondition failed")

	// ErrVersionConflict is returned when a compare-and-append lost the
	// race against a concurrent edit of the same project.
	ErrVersionConflict = errors.New("project version conflict")
)

// Project is a user-owned unit of generated content: the original
// prompt, the latest rendered document and its full edit history.
// It is storage-agnostic and shared across repository and HTTP layers.
type Project struct {
	PublicID     string    `json:"public_id"`
	OwnerID      string    `json:"owner_id"`
	Name         string    `json:"name"`
	Prompt       string    `json:"prompt"`
	HTML         string    `json:"html,omitempty"`
	Versions     []Version `json:"versions,omitempty"`
	Conversation []Message `json:"conversation,omitempty"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Version is an immutable snapshot of the rendered document plus a
// human-readable note describing how it came to be.
type Version struct {
	Timestamp time.Time `json:"timestamp"`
	HTML      string    `json:"html"`
	Note      string    `json:"note"`
}

// Message is one role-tagged entry of a project's conversation log.
type Message struct {
	Timestamp time.Time `json:"timestamp"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
}

// Validate checks the history invariants every persisted project must
// satisfy: versions never empty, current document matching the latest
// version snapshot.
func (p *Project) Validate() error {
	if len(p.Versions) == 0 {
		return ErrPrecondition
	}
	if p.HTML != p.Versions[len(p.Versions)-1].HTML {
		return ErrPrecondition
	}
	return nil
}
