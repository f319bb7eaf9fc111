package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/crimson-site/crimson-backend/internal/projects/domain"
	"github.com/crimson-site/crimson-backend/internal/sitegen"
)

const manualEditNote = "Manual edit"

// editAttempts bounds the compare-and-append retry loop. Conflicts are
// only possible with concurrent edits of the same project, so a couple
// of retries is plenty.
const editAttempts = 3

// ProjectStore is the persistence surface the services need. Implemented
// by repository.ProjectRepository.
type ProjectStore interface {
	Create(ctx context.Context, p *domain.Project) (*domain.Project, error)
	Get(ctx context.Context, ownerID, publicID string) (*domain.Project, error)
	List(ctx context.Context, ownerID string) ([]domain.Project, error)
	AppendEdit(ctx context.Context, ownerID, publicID string, expectedVersions int, version domain.Version, messages []domain.Message) error
	SoftDelete(ctx context.Context, ownerID, publicID string) (bool, error)
	MarkDeployed(ctx context.Context, ownerID, publicID string) (bool, error)
}

// DocumentCache is the preview cache surface. Implemented by
// repository.DocumentCache.
type DocumentCache interface {
	Get(ctx context.Context, ownerID, publicID string) (string, bool, error)
	Put(ctx context.Context, ownerID, publicID, html string) error
	Invalidate(ctx context.Context, ownerID, publicID string) error
}

// ProjectService handles project-related business logic.
type ProjectService struct {
	store ProjectStore
	cache DocumentCache
}

// NewProjectService creates a new project service.
func NewProjectService(store ProjectStore, cache DocumentCache) *ProjectService {
	return &ProjectService{
		store: store,
		cache: cache,
	}
}

// Create generates the initial site for a prompt and persists the new
// project with its seeded history.
func (s *ProjectService) Create(ctx context.Context, ownerID, prompt, name string) (*domain.Project, error) {
	p := sitegen.CreateProject(ownerID, prompt, name)
	p, err := s.store.Create(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("create project: %w", err)
	}

	if err := s.cache.Put(ctx, ownerID, p.PublicID, p.HTML); err != nil {
		log.Printf("[projects] warm cache %s: %v", p.PublicID, err)
	}
	return p, nil
}

// Get returns the full project, history included.
func (s *ProjectService) Get(ctx context.Context, ownerID, publicID string) (*domain.Project, error) {
	return s.store.Get(ctx, ownerID, publicID)
}

// List returns all projects for an owner (list view, no document body).
func (s *ProjectService) List(ctx context.Context, ownerID string) ([]domain.Project, error) {
	return s.store.List(ctx, ownerID)
}

// Preview returns the current rendered document, cache-aside.
func (s *ProjectService) Preview(ctx context.Context, ownerID, publicID string) (string, error) {
	html, ok, err := s.cache.Get(ctx, ownerID, publicID)
	if err != nil {
		log.Printf("[projects] preview cache read %s: %v", publicID, err)
	}
	if ok {
		return html, nil
	}

	p, err := s.store.Get(ctx, ownerID, publicID)
	if err != nil {
		return "", err
	}
	if err := s.cache.Put(ctx, ownerID, publicID, p.HTML); err != nil {
		log.Printf("[projects] preview cache fill %s: %v", publicID, err)
	}
	return p.HTML, nil
}

// UpdateCode replaces the document with hand-edited markup. The change
// is recorded as a version (no conversation entries — there was no
// instruction to log) through the same guarded append as chat edits.
func (s *ProjectService) UpdateCode(ctx context.Context, ownerID, publicID, html string) error {
	for i := 0; i < editAttempts; i++ {
		p, err := s.store.Get(ctx, ownerID, publicID)
		if err != nil {
			return err
		}
		if err := p.Validate(); err != nil {
			return err
		}

		version := domain.Version{Timestamp: time.Now().UTC(), HTML: html, Note: manualEditNote}
		err = s.store.AppendEdit(ctx, ownerID, publicID, len(p.Versions), version, nil)
		if err == domain.ErrVersionConflict {
			continue
		}
		if err != nil {
			return err
		}

		if err := s.cache.Invalidate(ctx, ownerID, publicID); err != nil {
			log.Printf("[projects] invalidate cache %s: %v", publicID, err)
		}
		return nil
	}
	return domain.ErrVersionConflict
}

// Delete soft-deletes a project and drops its cached document.
func (s *ProjectService) Delete(ctx context.Context, ownerID, publicID string) (bool, error) {
	ok, err := s.store.SoftDelete(ctx, ownerID, publicID)
	if err != nil || !ok {
		return ok, err
	}
	if err := s.cache.Invalidate(ctx, ownerID, publicID); err != nil {
		log.Printf("[projects] invalidate cache %s: %v", publicID, err)
	}
	return true, nil
}

// DeployResult describes a (simulated) deployment.
type DeployResult struct {
	DeploymentID string `json:"deployment_id"`
	URL          string `json:"url"`
	Status       string `json:"status"`
}

// Deploy marks the project deployed and returns the hosting URL. The
// actual build-and-upload lives with an external collaborator; this
// backend only records the outcome.
func (s *ProjectService) Deploy(ctx context.Context, ownerID, publicID string) (*DeployResult, error) {
	ok, err := s.store.MarkDeployed(ctx, ownerID, publicID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrNotFound
	}

	return &DeployResult{
		DeploymentID: uuid.New().String(),
		URL:          fmt.Sprintf("https://deploy.crimson.site/%s", publicID),
		Status:       domain.StatusDeployed,
	}, nil
}
