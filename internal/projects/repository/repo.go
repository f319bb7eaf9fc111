package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/crimson-site/crimson-backend/internal/projects/domain"
)

const publicIDPrefix = "crimson"

// ProjectRepository provides persistence operations for projects.
// Version and conversation history live in jsonb columns; every history
// mutation is a single guarded UPDATE so versions, conversation and the
// current document can never drift apart.
type ProjectRepository struct {
	db *pgxpool.Pool
}

// NewProjectRepository creates a new project repository.
func NewProjectRepository(db *pgxpool.Pool) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// Create inserts a freshly generated project for the given owner. The
// project value must already be seeded by the engine (version 0 and the
// opening conversation pair present).
func (r *ProjectRepository) Create(ctx context.Context, p *domain.Project) (*domain.Project, error) {
	if p.OwnerID == "" {
		return nil, fmt.Errorf("owner id required")
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}

	versions, err := json.Marshal(p.Versions)
	if err != nil {
		return nil, fmt.Errorf("marshal versions: %w", err)
	}
	conversation, err := json.Marshal(p.Conversation)
	if err != nil {
		return nil, fmt.Errorf("marshal conversation: %w", err)
	}

	for i := 0; i < 5; i++ {
		publicID, err := domain.NewPublicID(publicIDPrefix)
		if err != nil {
			return nil, err
		}

		const q = `
INSERT INTO projects (public_id, owner_id, name, prompt, html, versions, conversation, status)
VALUES ($1, $2, $3, $4, $5, $6::jsonb, $7::jsonb, $8)
RETURNING public_id, created_at, updated_at;
`
		err = r.db.QueryRow(ctx, q,
			publicID, p.OwnerID, p.Name, p.Prompt, p.HTML, versions, conversation, p.Status,
		).Scan(&p.PublicID, &p.CreatedAt, &p.UpdatedAt)

		if err == nil {
			return p, nil
		}

		// unique violation on public_id → retry
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			continue
		}
		return nil, err
	}

	return nil, fmt.Errorf("failed to generate unique project id")
}

// Get loads a full project, history included, scoped to its owner.
func (r *ProjectRepository) Get(ctx context.Context, ownerID, publicID string) (*domain.Project, error) {
	const q = `
SELECT public_id, owner_id, name, prompt, html, versions, conversation, status, created_at, updated_at
FROM projects
WHERE owner_id = $1 AND public_id = $2 AND deleted_at IS NULL;
`
	var (
		p            domain.Project
		versions     []byte
		conversation []byte
	)
	err := r.db.QueryRow(ctx, q, ownerID, publicID).Scan(
		&p.PublicID, &p.OwnerID, &p.Name, &p.Prompt, &p.HTML,
		&versions, &conversation, &p.Status, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}

	if err := json.Unmarshal(versions, &p.Versions); err != nil {
		return nil, fmt.Errorf("unmarshal versions: %w", err)
	}
	if err := json.Unmarshal(conversation, &p.Conversation); err != nil {
		return nil, fmt.Errorf("unmarshal conversation: %w", err)
	}
	return &p, nil
}

// List returns all non-deleted projects for the owner, newest first.
// The document body and history are omitted (list view).
func (r *ProjectRepository) List(ctx context.Context, ownerID string) ([]domain.Project, error) {
	const q = `
SELECT public_id, owner_id, name, prompt, status, created_at, updated_at
FROM projects
WHERE owner_id = $1 AND deleted_at IS NULL
ORDER BY created_at DESC;
`
	rows, err := r.db.Query(ctx, q, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]domain.Project, 0, 16)
	for rows.Next() {
		var p domain.Project
		if err := rows.Scan(&p.PublicID, &p.OwnerID, &p.Name, &p.Prompt, &p.Status, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// AppendEdit persists one engine edit as a compare-and-append: the
// UPDATE only fires while the stored history still has expectedVersions
// entries, which serializes concurrent edits of the same project. The
// version snapshot, the conversation entries and the current document
// land in one statement — a reader can never observe a partial edit.
// Returns domain.ErrVersionConflict when a concurrent edit won the race.
func (r *ProjectRepository) AppendEdit(
	ctx context.Context,
	ownerID, publicID string,
	expectedVersions int,
	version domain.Version,
	messages []domain.Message,
) error {
	versionJSON, err := json.Marshal([]domain.Version{version})
	if err != nil {
		return fmt.Errorf("marshal version: %w", err)
	}
	if messages == nil {
		messages = []domain.Message{}
	}
	messagesJSON, err := json.Marshal(messages)
	if err != nil {
		return fmt.Errorf("marshal messages: %w", err)
	}

	const q = `
UPDATE projects
SET html = $4,
    versions = versions || $5::jsonb,
    conversation = conversation || $6::jsonb,
    updated_at = now()
WHERE owner_id = $1 AND public_id = $2 AND deleted_at IS NULL
  AND jsonb_array_length(versions) = $3;
`
	ct, err := r.db.Exec(ctx, q, ownerID, publicID, expectedVersions, version.HTML, versionJSON, messagesJSON)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		// Either the project is gone or the version count moved on.
		if _, err := r.Get(ctx, ownerID, publicID); err != nil {
			return err
		}
		return domain.ErrVersionConflict
	}
	return nil
}

// SoftDelete marks a project as deleted; the retention sweeper purges
// it later.
func (r *ProjectRepository) SoftDelete(ctx context.Context, ownerID, publicID string) (bool, error) {
	const q = `
UPDATE projects
SET deleted_at = now(), updated_at = now()
WHERE owner_id = $1 AND public_id = $2 AND deleted_at IS NULL;
`
	ct, err := r.db.Exec(ctx, q, ownerID, publicID)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

// MarkDeployed flips the project status after a deployment.
func (r *ProjectRepository) MarkDeployed(ctx context.Context, ownerID, publicID string) (bool, error) {
	const q = `
UPDATE projects
SET status = $3, updated_at = now()
WHERE owner_id = $1 AND public_id = $2 AND deleted_at IS NULL;
`
	ct, err := r.db.Exec(ctx, q, ownerID, publicID, domain.StatusDeployed)
	if err != nil {
		return false, err
	}
	return ct.RowsAffected() > 0, nil
}

// PurgeDeleted permanently removes projects soft-deleted before the
// cutoff. Used by the retention sweeper, never by request handlers.
func (r *ProjectRepository) PurgeDeleted(ctx context.Context, olderThan time.Duration) (int64, error) {
	const q = `
DELETE FROM projects
WHERE deleted_at IS NOT NULL AND deleted_at < now() - $1::interval;
`
	ct, err := r.db.Exec(ctx, q, fmt.Sprintf("%d seconds", int64(olderThan.Seconds())))
	if err != nil {
		return 0, err
	}
	return ct.RowsAffected(), nil
}
