package deploy

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Arviva-Admin/portfolio-backend/config"
)

// Client wraps the subset of the Vercel API the assistant needs for project
// and deployment management.
type Client struct {
	baseURL string
	token   string
	teamID  string
	http    *http.Client
}

// NewClient creates a new Vercel client
func NewClient(cfg config.VercelConfig) *Client {
	return &Client{
		baseURL: "https://api.vercel.com",
		token:   cfg.Token,
		teamID:  cfg.TeamID,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Configured reports whether a token is available.
func (c *Client) Configured() bool { return c.token != "" }

// GitRepository links a Vercel project to its source repository.
type GitRepository struct {
	Type string `json:"type"`
	Repo string `json:"repo"` // "owner/repo"
}

// EnvVar is one environment variable to upsert on a project.
type EnvVar struct {
	Key    string   `json:"key"`
	Value  string   `json:"value"`
	Type   string   `json:"type"`
	Target []string `json:"target"`
}

// Project describes a Vercel project.
type Project struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Framework string `json:"framework"`
}

// Deployment describes a triggered or inspected deployment.
type Deployment struct {
	ID         string `json:"id"`
	URL        string `json:"url"`
	ReadyState string `json:"readyState"`
}

// CreateProjectOptions configures project creation.
type CreateProjectOptions struct {
	Name          string         `json:"name"`
	GitRepository *GitRepository `json:"gitRepository,omitempty"`
	Framework     string         `json:"framework,omitempty"`
	BuildCommand  string         `json:"buildCommand,omitempty"`
	OutputDir     string         `json:"outputDirectory,omitempty"`
}

// CreateProject creates a new Vercel project.
func (c *Client) CreateProject(ctx context.Context, opts CreateProjectOptions) (*Project, error) {
	var p Project
	if err := c.do(ctx, http.MethodPost, "/v9/projects", opts, &p); err != nil {
		return nil, fmt.Errorf("create vercel project: %w", err)
	}
	return &p, nil
}

// ListProjects lists all projects.
func (c *Client) ListProjects(ctx context.Context) ([]Project, error) {
	var out struct {
		Projects []Project `json:"projects"`
	}
	if err := c.do(ctx, http.MethodGet, "/v9/projects", nil, &out); err != nil {
		return nil, fmt.Errorf("list vercel projects: %w", err)
	}
	return out.Projects, nil
}

// DeleteProject deletes a project by id or name.
func (c *Client) DeleteProject(ctx context.Context, idOrName string) error {
	if err := c.do(ctx, http.MethodDelete, "/v9/projects/"+idOrName, nil, nil); err != nil {
		return fmt.Errorf("delete vercel project: %w", err)
	}
	return nil
}

// TriggerDeployment starts a deployment of the linked repository.
func (c *Client) TriggerDeployment(ctx context.Context, name string, repoID int64, branch string) (*Deployment, error) {
	if branch == "" {
		branch = "main"
	}
	body := map[string]any{
		"name": name,
		"gitSource": map[string]any{
			"type":   "github",
			"repoId": repoID,
			"ref":    branch,
		},
	}
	var d Deployment
	if err := c.do(ctx, http.MethodPost, "/v13/deployments", body, &d); err != nil {
		return nil, fmt.Errorf("trigger deployment: %w", err)
	}
	return &d, nil
}

// DeploymentStatus fetches the current state of a deployment.
func (c *Client) DeploymentStatus(ctx context.Context, deploymentID string) (*Deployment, error) {
	var d Deployment
	if err := c.do(ctx, http.MethodGet, "/v13/deployments/"+deploymentID, nil, &d); err != nil {
		return nil, fmt.Errorf("deployment status: %w", err)
	}
	return &d, nil
}

// AddEnvironmentVariables batch-upserts env vars onto a project.
func (c *Client) AddEnvironmentVariables(ctx context.Context, projectID string, vars []EnvVar) error {
	if err := c.do(ctx, http.MethodPost, "/v10/projects/"+projectID+"/env?upsert=true", vars, nil); err != nil {
		return fmt.Errorf("add env vars: %w", err)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal body: %w", err)
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.token)
	req.Header.Set("Content-Type", "application/json")
	if c.teamID != "" {
		req.Header.Set("X-Vercel-Team-Id", c.teamID)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("vercel request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("vercel API error: %d - %s", resp.StatusCode, string(b))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("vercel decode: %w", err)
	}
	return nil
}
