package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Arviva-Admin/portfolio-backend/internal/catalog/domain"
)

type fakeStore struct {
	projects  []domain.Project
	next      int
	listCalls int
	deleteErr error
}

func (f *fakeStore) List(ctx context.Context) ([]domain.Project, error) {
	f.listCalls++
	out := make([]domain.Project, len(f.projects))
	copy(out, f.projects)
	return out, nil
}

func (f *fakeStore) Add(ctx context.Context, p domain.Project) (string, error) {
	f.next++
	p.ID = fmt.Sprintf("id-%d", f.next)
	// newest first, matching the store's ordering convention
	f.projects = append([]domain.Project{p}, f.projects...)
	return p.ID, nil
}

func (f *fakeStore) Update(ctx context.Context, id string, patch domain.ProjectPatch) error {
	for i := range f.projects {
		if f.projects[i].ID == id {
			if patch.Name != nil {
				f.projects[i].Name = *patch.Name
			}
			return nil
		}
	}
	return domain.ErrNotFound
}

func (f *fakeStore) Delete(ctx context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	for i := range f.projects {
		if f.projects[i].ID == id {
			f.projects = append(f.projects[:i], f.projects[i+1:]...)
			return nil
		}
	}
	return domain.ErrNotFound
}

func setupCache(t *testing.T) *redis.Client {
	t.Helper()
	mr, err := miniredis.Run()
	require.NoError(t, err)
	t.Cleanup(mr.Close)

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return client
}

func TestProjectService_ListCaching(t *testing.T) {
	ctx := context.Background()
	store := &fakeStore{}
	svc := NewProjectService(store, setupCache(t))

	_, err := svc.Add(ctx, domain.Project{Name: "First"})
	require.NoError(t, err)
	_, err = svc.Add(ctx, domain.Project{Name: "Second"})
	require.NoError(t, err)

	first, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, "Second", first[0].Name)
	assert.Equal(t, 1, store.listCalls)

	// Warm cache: repeated listing returns the identical sequence without
	// touching the store.
	second, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, store.listCalls)
}

func TestProjectService_WriteInvalidatesCache(t *testing.T) {
	ctx := context.Background()
	store := &fakeStore{}
	svc := NewProjectService(store, setupCache(t))

	created, err := svc.Add(ctx, domain.Project{Name: "Keep"})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, domain.DefaultStatus, created.Status)

	_, err = svc.List(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, store.listCalls)

	doomed, err := svc.Add(ctx, domain.Project{Name: "Doomed"})
	require.NoError(t, err)

	afterAdd, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, afterAdd, 2)
	assert.Equal(t, 2, store.listCalls)

	require.NoError(t, svc.Delete(ctx, doomed.ID))

	afterDelete, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, afterDelete, 1)
	assert.Equal(t, "Keep", afterDelete[0].Name)
	assert.Equal(t, 3, store.listCalls)
}

func TestProjectService_DeleteNotFoundLeavesListUntouched(t *testing.T) {
	ctx := context.Background()
	store := &fakeStore{}
	svc := NewProjectService(store, setupCache(t))

	_, err := svc.Add(ctx, domain.Project{Name: "Only"})
	require.NoError(t, err)

	before, err := svc.List(ctx)
	require.NoError(t, err)

	err = svc.Delete(ctx, "missing-id")
	require.ErrorIs(t, err, domain.ErrNotFound)

	after, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestProjectService_NoCacheConfigured(t *testing.T) {
	ctx := context.Background()
	store := &fakeStore{}
	svc := NewProjectService(store, nil)

	_, err := svc.Add(ctx, domain.Project{Name: "Direct"})
	require.NoError(t, err)

	_, err = svc.List(ctx)
	require.NoError(t, err)
	_, err = svc.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, store.listCalls)
}
