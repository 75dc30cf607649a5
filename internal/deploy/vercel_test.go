package deploy

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Arviva-Admin/portfolio-backend/config"
)

func testVercel(t *testing.T, teamID string, handler http.Handler) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	c := NewClient(config.VercelConfig{Token: "v-token", TeamID: teamID})
	c.baseURL = server.URL
	return c
}

func TestCreateProject(t *testing.T) {
	c := testVercel(t, "team-1", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v9/projects", r.URL.Path)
		assert.Equal(t, "Bearer v-token", r.Header.Get("Authorization"))
		assert.Equal(t, "team-1", r.Header.Get("X-Vercel-Team-Id"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "shop", body["name"])

		w.Write([]byte(`{"id":"prj_1","name":"shop","framework":"nextjs"}`))
	}))

	p, err := c.CreateProject(context.Background(), CreateProjectOptions{
		Name:          "shop",
		GitRepository: &GitRepository{Type: "github", Repo: "Arviva-Admin/shop"},
		Framework:     "nextjs",
	})
	require.NoError(t, err)
	assert.Equal(t, "prj_1", p.ID)
	assert.Equal(t, "nextjs", p.Framework)
}

func TestCreateProject_NoTeamHeaderWithoutTeam(t *testing.T) {
	c := testVercel(t, "", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("X-Vercel-Team-Id"))
		w.Write([]byte(`{"id":"prj_1","name":"shop"}`))
	}))

	_, err := c.CreateProject(context.Background(), CreateProjectOptions{Name: "shop"})
	require.NoError(t, err)
}

func TestTriggerDeploymentAndStatus(t *testing.T) {
	c := testVercel(t, "", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/v13/deployments":
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			git := body["gitSource"].(map[string]any)
			assert.Equal(t, "github", git["type"])
			assert.Equal(t, "main", git["ref"])
			w.Write([]byte(`{"id":"dpl_1","url":"shop.vercel.app","readyState":"QUEUED"}`))
		case r.Method == http.MethodGet && r.URL.Path == "/v13/deployments/dpl_1":
			w.Write([]byte(`{"id":"dpl_1","url":"shop.vercel.app","readyState":"READY"}`))
		default:
			t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		}
	}))

	d, err := c.TriggerDeployment(context.Background(), "shop", 12345, "")
	require.NoError(t, err)
	assert.Equal(t, "QUEUED", d.ReadyState)

	d, err = c.DeploymentStatus(context.Background(), d.ID)
	require.NoError(t, err)
	assert.Equal(t, "READY", d.ReadyState)
}

func TestAddEnvironmentVariables(t *testing.T) {
	c := testVercel(t, "", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v10/projects/prj_1/env", r.URL.Path)
		assert.Equal(t, "true", r.URL.Query().Get("upsert"))

		var vars []EnvVar
		require.NoError(t, json.NewDecoder(r.Body).Decode(&vars))
		require.Len(t, vars, 2)
		assert.Equal(t, "API_KEY", vars[0].Key)

		w.Write([]byte(`{}`))
	}))

	err := c.AddEnvironmentVariables(context.Background(), "prj_1", []EnvVar{
		{Key: "API_KEY", Value: "secret", Type: "encrypted", Target: []string{"production"}},
		{Key: "NODE_ENV", Value: "production", Type: "plain", Target: []string{"production", "preview"}},
	})
	require.NoError(t, err)
}

func TestListProjects_APIError(t *testing.T) {
	c := testVercel(t, "", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":{"code":"forbidden"}}`))
	}))

	_, err := c.ListProjects(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "401")
}
