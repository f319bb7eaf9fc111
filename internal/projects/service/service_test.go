package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/crimson-site/crimson-backend/internal/projects/domain"
	"github.com/crimson-site/crimson-backend/internal/sitegen"
)

// fakeStore is an in-memory ProjectStore with the same
// compare-and-append semantics as the Postgres repository.
type fakeStore struct {
	mu       sync.Mutex
	projects map[string]*domain.Project

	// appendHook runs before each AppendEdit, for injecting races.
	appendHook func()
}

func newFakeStore() *fakeStore {
	return &fakeStore{projects: make(map[string]*domain.Project)}
}

func (f *fakeStore) key(ownerID, publicID string) string { return ownerID + "/" + publicID }

func (f *fakeStore) Create(_ context.Context, p *domain.Project) (*domain.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p.PublicID = fmt.Sprintf("crimson-%05d-0001", len(f.projects)+1)
	cp := clone(p)
	f.projects[f.key(p.OwnerID, p.PublicID)] = cp
	return p, nil
}

func (f *fakeStore) Get(_ context.Context, ownerID, publicID string) (*domain.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.projects[f.key(ownerID, publicID)]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return clone(p), nil
}

func (f *fakeStore) List(_ context.Context, ownerID string) ([]domain.Project, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := []domain.Project{}
	for _, p := range f.projects {
		if p.OwnerID == ownerID {
			out = append(out, *clone(p))
		}
	}
	return out, nil
}

func (f *fakeStore) AppendEdit(_ context.Context, ownerID, publicID string, expectedVersions int, version domain.Version, messages []domain.Message) error {
	if f.appendHook != nil {
		f.appendHook()
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.projects[f.key(ownerID, publicID)]
	if !ok {
		return domain.ErrNotFound
	}
	if len(p.Versions) != expectedVersions {
		return domain.ErrVersionConflict
	}
	p.Versions = append(p.Versions, version)
	p.Conversation = append(p.Conversation, messages...)
	p.HTML = version.HTML
	p.UpdatedAt = time.Now().UTC()
	return nil
}

func (f *fakeStore) SoftDelete(_ context.Context, ownerID, publicID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := f.key(ownerID, publicID)
	if _, ok := f.projects[k]; !ok {
		return false, nil
	}
	delete(f.projects, k)
	return true, nil
}

func (f *fakeStore) MarkDeployed(_ context.Context, ownerID, publicID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.projects[f.key(ownerID, publicID)]
	if !ok {
		return false, nil
	}
	p.Status = domain.StatusDeployed
	return true, nil
}

func clone(p *domain.Project) *domain.Project {
	cp := *p
	cp.Versions = append([]domain.Version{}, p.Versions...)
	cp.Conversation = append([]domain.Message{}, p.Conversation...)
	return &cp
}

type fakeCache struct {
	mu   sync.Mutex
	docs map[string]string
}

func newFakeCache() *fakeCache { return &fakeCache{docs: make(map[string]string)} }

func (f *fakeCache) Get(_ context.Context, ownerID, publicID string) (string, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	html, ok := f.docs[ownerID+"/"+publicID]
	return html, ok, nil
}

func (f *fakeCache) Put(_ context.Context, ownerID, publicID, html string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.docs[ownerID+"/"+publicID] = html
	return nil
}

func (f *fakeCache) Invalidate(_ context.Context, ownerID, publicID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.docs, ownerID+"/"+publicID)
	return nil
}

func setup() (*ProjectService, *ChatService, *fakeStore, *fakeCache) {
	store := newFakeStore()
	cache := newFakeCache()
	return NewProjectService(store, cache), NewChatService(store, cache), store, cache
}

func TestProjectService_Create(t *testing.T) {
	ps, _, store, cache := setup()
	ctx := context.Background()

	p, err := ps.Create(ctx, "owner-1", "A bakery landing page", "")
	require.NoError(t, err)
	require.NotEmpty(t, p.PublicID)

	stored, err := store.Get(ctx, "owner-1", p.PublicID)
	require.NoError(t, err)
	assert.Len(t, stored.Versions, 1)
	assert.Len(t, stored.Conversation, 2)
	assert.Equal(t, stored.HTML, stored.Versions[0].HTML)

	html, ok, err := cache.Get(ctx, "owner-1", p.PublicID)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, p.HTML, html)
}

func TestChatService_Edit(t *testing.T) {
	ps, cs, store, cache := setup()
	ctx := context.Background()

	p, err := ps.Create(ctx, "owner-1", "a bakery", "")
	require.NoError(t, err)

	t.Run("dark mode edit appends one version and a message pair", func(t *testing.T) {
		out, err := cs.Edit(ctx, "owner-1", p.PublicID, "make it dark mode please")
		require.NoError(t, err)
		assert.Equal(t, sitegen.NoteDarkMode, out.Note)

		stored, err := store.Get(ctx, "owner-1", p.PublicID)
		require.NoError(t, err)
		assert.Len(t, stored.Versions, 2)
		assert.Len(t, stored.Conversation, 4)
		assert.Equal(t, out.HTML, stored.HTML)
		assert.NoError(t, stored.Validate())

		html, ok, _ := cache.Get(ctx, "owner-1", p.PublicID)
		assert.True(t, ok)
		assert.Equal(t, out.HTML, html)
	})

	t.Run("unknown project", func(t *testing.T) {
		_, err := cs.Edit(ctx, "owner-1", "crimson-00000-0000", "dark mode")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("project of another owner is invisible", func(t *testing.T) {
		_, err := cs.Edit(ctx, "owner-2", p.PublicID, "dark mode")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestChatService_Edit_RetriesOnConflict(t *testing.T) {
	ps, cs, store, _ := setup()
	ctx := context.Background()

	p, err := ps.Create(ctx, "owner-1", "a bakery", "")
	require.NoError(t, err)

	// First attempt loses the race: a concurrent pricing edit lands
	// between the read and the append.
	raced := false
	store.appendHook = func() {
		if raced {
			return
		}
		raced = true
		store.appendHook = nil
		sp, err := store.Get(ctx, "owner-1", p.PublicID)
		require.NoError(t, err)
		_, err = sitegen.EditProject(sp, "add pricing")
		require.NoError(t, err)
		require.NoError(t, store.AppendEdit(ctx, "owner-1", p.PublicID, 1,
			sp.Versions[len(sp.Versions)-1], sp.Conversation[len(sp.Conversation)-2:]))
	}

	out, err := cs.Edit(ctx, "owner-1", p.PublicID, "make it dark mode please")
	require.NoError(t, err)
	assert.Equal(t, sitegen.NoteDarkMode, out.Note)

	stored, err := store.Get(ctx, "owner-1", p.PublicID)
	require.NoError(t, err)
	// Both edits survived, in order, against consistent history.
	require.Len(t, stored.Versions, 3)
	assert.Equal(t, sitegen.NoteAddPricing, stored.Versions[1].Note)
	assert.Equal(t, sitegen.NoteDarkMode, stored.Versions[2].Note)
	assert.Equal(t, stored.HTML, stored.Versions[2].HTML)
	assert.NoError(t, stored.Validate())
	// The retried dark-mode edit was applied on top of the pricing
	// section, not the original document.
	assert.Contains(t, stored.HTML, `id="pricing"`)
}

func TestProjectService_UpdateCode(t *testing.T) {
	ps, _, store, cache := setup()
	ctx := context.Background()

	p, err := ps.Create(ctx, "owner-1", "a bakery", "")
	require.NoError(t, err)

	custom := "<html><body>hand edited</body></html>"
	require.NoError(t, ps.UpdateCode(ctx, "owner-1", p.PublicID, custom))

	stored, err := store.Get(ctx, "owner-1", p.PublicID)
	require.NoError(t, err)
	assert.Equal(t, custom, stored.HTML)
	require.Len(t, stored.Versions, 2)
	assert.Equal(t, "Manual edit", stored.Versions[1].Note)
	// Manual edits log no conversation entries.
	assert.Len(t, stored.Conversation, 2)

	_, ok, _ := cache.Get(ctx, "owner-1", p.PublicID)
	assert.False(t, ok, "cache should be invalidated")
}

func TestProjectService_Preview(t *testing.T) {
	ps, _, _, cache := setup()
	ctx := context.Background()

	p, err := ps.Create(ctx, "owner-1", "a bakery", "")
	require.NoError(t, err)

	t.Run("cache miss falls through to store and refills", func(t *testing.T) {
		require.NoError(t, cache.Invalidate(ctx, "owner-1", p.PublicID))

		html, err := ps.Preview(ctx, "owner-1", p.PublicID)
		require.NoError(t, err)
		assert.Equal(t, p.HTML, html)

		cached, ok, _ := cache.Get(ctx, "owner-1", p.PublicID)
		assert.True(t, ok)
		assert.Equal(t, p.HTML, cached)
	})

	t.Run("unknown project", func(t *testing.T) {
		_, err := ps.Preview(ctx, "owner-1", "crimson-00000-0000")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestProjectService_Deploy(t *testing.T) {
	ps, _, store, _ := setup()
	ctx := context.Background()

	p, err := ps.Create(ctx, "owner-1", "a bakery", "")
	require.NoError(t, err)

	res, err := ps.Deploy(ctx, "owner-1", p.PublicID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDeployed, res.Status)
	assert.True(t, strings.HasPrefix(res.URL, "https://deploy.crimson.site/"))
	assert.Contains(t, res.URL, p.PublicID)
	assert.NotEmpty(t, res.DeploymentID)

	stored, err := store.Get(ctx, "owner-1", p.PublicID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusDeployed, stored.Status)

	_, err = ps.Deploy(ctx, "owner-1", "crimson-00000-0000")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
