package tools

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Arviva-Admin/portfolio-backend/internal/catalog/domain"
)

type fakeCatalog struct {
	projects  []domain.Project
	deleted   []string
	deleteErr error
}

func (f *fakeCatalog) List(ctx context.Context) ([]domain.Project, error) {
	return f.projects, nil
}

func (f *fakeCatalog) Delete(ctx context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func TestRegistry_Declarations(t *testing.T) {
	r := NewRegistry(&fakeCatalog{}, nil, nil)
	decls := r.Declarations()

	require.Len(t, decls, 4)

	names := make([]string, 0, len(decls))
	for _, d := range decls {
		assert.Equal(t, "function", d.Type)
		names = append(names, d.Function.Name)
	}
	assert.Equal(t, []string{"create_project", "modify_project_code", "get_projects", "delete_project"}, names)

	// delete_project requires projectId
	deleteDecl := decls[3]
	params := deleteDecl.Function.Parameters
	assert.Equal(t, []string{"projectId"}, params["required"])
}

func TestRegistry_GetProjects(t *testing.T) {
	catalog := &fakeCatalog{projects: []domain.Project{
		{ID: "1", Name: "Shop"},
		{ID: "2", Name: "Blog"},
	}}
	r := NewRegistry(catalog, nil, nil)

	result, err := r.Execute(context.Background(), "get_projects", "{}")
	require.NoError(t, err)

	wrapped, ok := result.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, catalog.projects, wrapped["projects"])
}

func TestRegistry_GetProjects_EmptyArguments(t *testing.T) {
	r := NewRegistry(&fakeCatalog{}, nil, nil)

	_, err := r.Execute(context.Background(), "get_projects", "")
	require.NoError(t, err)
}

func TestRegistry_DeleteProject(t *testing.T) {
	t.Run("deletes by id", func(t *testing.T) {
		catalog := &fakeCatalog{}
		r := NewRegistry(catalog, nil, nil)

		result, err := r.Execute(context.Background(), "delete_project", `{"projectId":"abc"}`)
		require.NoError(t, err)

		wrapped := result.(map[string]any)
		assert.Equal(t, true, wrapped["success"])
		assert.Equal(t, "abc", wrapped["deletedId"])
		assert.Equal(t, []string{"abc"}, catalog.deleted)
	})

	t.Run("missing projectId is an argument error", func(t *testing.T) {
		r := NewRegistry(&fakeCatalog{}, nil, nil)

		_, err := r.Execute(context.Background(), "delete_project", `{}`)
		var argErr *ArgumentParseError
		require.ErrorAs(t, err, &argErr)
	})

	t.Run("store failure propagates", func(t *testing.T) {
		catalog := &fakeCatalog{deleteErr: domain.ErrNotFound}
		r := NewRegistry(catalog, nil, nil)

		_, err := r.Execute(context.Background(), "delete_project", `{"projectId":"ghost"}`)
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestRegistry_PlaceholderTools(t *testing.T) {
	r := NewRegistry(&fakeCatalog{}, nil, nil)

	t.Run("create_project echoes arguments", func(t *testing.T) {
		result, err := r.Execute(context.Background(), "create_project",
			`{"name":"Shop","description":"a shop","framework":"nextjs"}`)
		require.NoError(t, err)

		ni, ok := result.(NotImplementedResult)
		require.True(t, ok)
		assert.False(t, ni.Success)
		assert.NotEmpty(t, ni.Message)
		assert.Equal(t, "Shop", ni.ProjectData["name"])
		assert.Equal(t, "nextjs", ni.ProjectData["framework"])
	})

	t.Run("modify_project_code echoes project id", func(t *testing.T) {
		result, err := r.Execute(context.Background(), "modify_project_code",
			`{"projectId":"p-9","files":[],"commitMessage":"update"}`)
		require.NoError(t, err)

		ni, ok := result.(NotImplementedResult)
		require.True(t, ok)
		assert.False(t, ni.Success)
		assert.Equal(t, "p-9", ni.ProjectID)
	})
}

func TestRegistry_DispatchErrors(t *testing.T) {
	r := NewRegistry(&fakeCatalog{}, nil, nil)

	t.Run("unknown tool", func(t *testing.T) {
		_, err := r.Execute(context.Background(), "drop_database", `{}`)
		var unknownErr *UnknownToolError
		require.ErrorAs(t, err, &unknownErr)
		assert.Equal(t, "drop_database", unknownErr.Name)
	})

	t.Run("malformed arguments", func(t *testing.T) {
		_, err := r.Execute(context.Background(), "get_projects", `{not json`)
		var argErr *ArgumentParseError
		require.ErrorAs(t, err, &argErr)
	})
}
