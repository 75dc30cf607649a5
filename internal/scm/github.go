package scm

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Arviva-Admin/portfolio-backend/config"
)

// Client wraps the subset of the GitHub REST API the assistant needs for
// repository management. It is a capability handle, not a full SDK.
type Client struct {
	baseURL string
	token   string
	owner   string
	http    *http.Client
}

// NewClient creates a new GitHub client
func NewClient(cfg config.GitHubConfig) *Client {
	return &Client{
		baseURL: "https://api.github.com",
		token:   cfg.Token,
		owner:   cfg.Owner,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// Configured reports whether a token is available.
func (c *Client) Configured() bool { return c.token != "" }

// Repository describes a created or listed repository.
type Repository struct {
	Name          string `json:"name"`
	FullName      string `json:"full_name"`
	URL           string `json:"html_url"`
	CloneURL      string `json:"clone_url"`
	DefaultBranch string `json:"default_branch"`
}

// File is one path/content pair for a commit.
type File struct {
	Path    string
	Content string
}

// CreateRepository creates a new repository for the authenticated user.
func (c *Client) CreateRepository(ctx context.Context, name, description string, private bool) (*Repository, error) {
	body := map[string]any{
		"name":        name,
		"description": description,
		"private":     private,
		"auto_init":   true,
	}
	var repo Repository
	if err := c.do(ctx, http.MethodPost, "/user/repos", body, &repo); err != nil {
		return nil, fmt.Errorf("create repository: %w", err)
	}
	return &repo, nil
}

// ListRepositories lists the owner's repositories.
func (c *Client) ListRepositories(ctx context.Context) ([]Repository, error) {
	var repos []Repository
	if err := c.do(ctx, http.MethodGet, "/users/"+c.owner+"/repos", nil, &repos); err != nil {
		return nil, fmt.Errorf("list repositories: %w", err)
	}
	return repos, nil
}

// DeleteRepository deletes a repository owned by the configured owner.
func (c *Client) DeleteRepository(ctx context.Context, repo string) error {
	if err := c.do(ctx, http.MethodDelete, "/repos/"+c.owner+"/"+repo, nil, nil); err != nil {
		return fmt.Errorf("delete repository: %w", err)
	}
	return nil
}

// CommitFiles writes multiple files to a branch as one commit using the git
// data API: resolve ref -> base commit -> blobs -> tree -> commit -> move ref.
// Returns the new commit SHA.
func (c *Client) CommitFiles(ctx context.Context, repo string, files []File, message, branch string) (string, error) {
	if branch == "" {
		branch = "main"
	}
	base := "/repos/" + c.owner + "/" + repo

	var ref struct {
		Object struct {
			SHA string `json:"sha"`
		} `json:"object"`
	}
	if err := c.do(ctx, http.MethodGet, base+"/git/ref/heads/"+branch, nil, &ref); err != nil {
		return "", fmt.Errorf("get ref: %w", err)
	}

	var baseCommit struct {
		Tree struct {
			SHA string `json:"sha"`
		} `json:"tree"`
	}
	if err := c.do(ctx, http.MethodGet, base+"/git/commits/"+ref.Object.SHA, nil, &baseCommit); err != nil {
		return "", fmt.Errorf("get base commit: %w", err)
	}

	type treeEntry struct {
		Path string `json:"path"`
		Mode string `json:"mode"`
		Type string `json:"type"`
		SHA  string `json:"sha"`
	}
	entries := make([]treeEntry, 0, len(files))
	for _, f := range files {
		var blob struct {
			SHA string `json:"sha"`
		}
		blobReq := map[string]any{
			"content":  base64.StdEncoding.EncodeToString([]byte(f.Content)),
			"encoding": "base64",
		}
		if err := c.do(ctx, http.MethodPost, base+"/git/blobs", blobReq, &blob); err != nil {
			return "", fmt.Errorf("create blob %s: %w", f.Path, err)
		}
		entries = append(entries, treeEntry{Path: f.Path, Mode: "100644", Type: "blob", SHA: blob.SHA})
	}

	var tree struct {
		SHA string `json:"sha"`
	}
	treeReq := map[string]any{
		"base_tree": baseCommit.Tree.SHA,
		"tree":      entries,
	}
	if err := c.do(ctx, http.MethodPost, base+"/git/trees", treeReq, &tree); err != nil {
		return "", fmt.Errorf("create tree: %w", err)
	}

	var commit struct {
		SHA string `json:"sha"`
	}
	commitReq := map[string]any{
		"message": message,
		"tree":    tree.SHA,
		"parents": []string{ref.Object.SHA},
	}
	if err := c.do(ctx, http.MethodPost, base+"/git/commits", commitReq, &commit); err != nil {
		return "", fmt.Errorf("create commit: %w", err)
	}

	updateReq := map[string]any{"sha": commit.SHA}
	if err := c.do(ctx, http.MethodPatch, base+"/git/refs/heads/"+branch, updateReq, nil); err != nil {
		return "", fmt.Errorf("update ref: %w", err)
	}

	return commit.SHA, nil
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
	req.Header.Set("Accept", "application/vnd.github+json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("github request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		b, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("github API error: %d - %s", resp.StatusCode, string(b))
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("github decode: %w", err)
	}
	return nil
}
