package service

import (
	"context"
	"fmt"
	"log"

	"github.com/crimson-site/crimson-backend/internal/projects/domain"
	"github.com/crimson-site/crimson-backend/internal/sitegen"
)

// ChatService applies free-text edit instructions to a project through
// the sitegen engine and persists the resulting history appends.
type ChatService struct {
	store ProjectStore
	cache DocumentCache
}

// NewChatService creates a new chat service.
func NewChatService(store ProjectStore, cache DocumentCache) *ChatService {
	return &ChatService{
		store: store,
		cache: cache,
	}
}

// EditOutcome is what the chat endpoint returns to the user.
type EditOutcome struct {
	Note string
	HTML string
}

// Edit loads the project, runs the instruction through the engine and
// appends the outcome with a compare-and-append keyed on the version
// count. A conflict means another edit landed first; the instruction is
// then re-applied against the fresh snapshot, which keeps per-project
// mutation serialized without any cross-project coordination.
func (s *ChatService) Edit(ctx context.Context, ownerID, publicID, instruction string) (*EditOutcome, error) {
	for i := 0; i < editAttempts; i++ {
		p, err := s.store.Get(ctx, ownerID, publicID)
		if err != nil {
			return nil, err
		}

		before := len(p.Versions)
		res, err := sitegen.EditProject(p, instruction)
		if err != nil {
			return nil, fmt.Errorf("edit project: %w", err)
		}

		// EditProject appended exactly one version and a user/assistant
		// message pair; persist those appends against the count we read.
		version := p.Versions[len(p.Versions)-1]
		messages := p.Conversation[len(p.Conversation)-2:]

		err = s.store.AppendEdit(ctx, ownerID, publicID, before, version, messages)
		if err == domain.ErrVersionConflict {
			continue
		}
		if err != nil {
			return nil, err
		}

		if err := s.cache.Put(ctx, ownerID, publicID, res.HTML); err != nil {
			log.Printf("[chat] refresh cache %s: %v", publicID, err)
		}
		return &EditOutcome{Note: res.Note, HTML: res.HTML}, nil
	}
	return nil, domain.ErrVersionConflict
}
