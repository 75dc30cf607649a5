package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/Arviva-Admin/portfolio-backend/internal/assistant/llm"
	"github.com/Arviva-Admin/portfolio-backend/internal/catalog/domain"
	"github.com/Arviva-Admin/portfolio-backend/internal/deploy"
	"github.com/Arviva-Admin/portfolio-backend/internal/scm"
)

// UnknownToolError reports a model-chosen operation name that is not in the
// registry. Aborts the chat turn.
type UnknownToolError struct {
	Name string
}

func (e *UnknownToolError) Error() string {
	return fmt.Sprintf("unknown tool: %s", e.Name)
}

// ArgumentParseError reports a tool-call argument payload that is not valid
// JSON. Aborts the chat turn; there is no fallback to the plain-text path.
type ArgumentParseError struct {
	Tool string
	Err  error
}

func (e *ArgumentParseError) Error() string {
	return fmt.Sprintf("parse arguments for %s: %v", e.Tool, e.Err)
}

func (e *ArgumentParseError) Unwrap() error { return e.Err }

// NotImplementedResult is the answer from a declared capability whose
// executor is not wired yet. Distinct from genuine success so wiring the
// GitHub/Vercel collaborators later is a pure addition.
type NotImplementedResult struct {
	Success     bool           `json:"success"`
	Message     string         `json:"message"`
	ProjectData map[string]any `json:"projectData,omitempty"`
	ProjectID   any            `json:"projectId,omitempty"`
}

// ProjectStore is the catalog access the executable tools need.
type ProjectStore interface {
	List(ctx context.Context) ([]domain.Project, error)
	Delete(ctx context.Context, id string) error
}

// Registry is the fixed table of operations offered to the model, plus the
// dispatch that executes a chosen one. The scm and deploy clients are held
// for the project-creation tools but not invoked yet.
type Registry struct {
	store  ProjectStore
	github *scm.Client
	vercel *deploy.Client
}

// NewRegistry creates a new tool registry
func NewRegistry(store ProjectStore, github *scm.Client, vercel *deploy.Client) *Registry {
	return &Registry{
		store:  store,
		github: github,
		vercel: vercel,
	}
}

// Declarations returns the capability table exposed verbatim to the model.
func (r *Registry) Declarations() []llm.Tool {
	return []llm.Tool{
		{
			Type: "function",
			Function: llm.ToolFunction{
				Name:        "create_project",
				Description: "Creates a new project with GitHub repo and Vercel deployment",
				Parameters: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"name":        map[string]any{"type": "string", "description": "Project name"},
						"description": map[string]any{"type": "string", "description": "Project description"},
						"framework": map[string]any{
							"type":        "string",
							"enum":        []string{"nextjs", "vite-react", "remix", "astro"},
							"description": "Framework to use",
						},
						"features": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "Features to include",
						},
					},
					"required": []string{"name", "description", "framework"},
				},
			},
		},
		{
			Type: "function",
			Function: llm.ToolFunction{
				Name:        "modify_project_code",
				Description: "Modifies code in an existing project",
				Parameters: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"projectId": map[string]any{"type": "string", "description": "Project ID from database"},
						"files": map[string]any{
							"type": "array",
							"items": map[string]any{
								"type": "object",
								"properties": map[string]any{
									"path":    map[string]any{"type": "string"},
									"content": map[string]any{"type": "string"},
								},
							},
							"description": "Files to create or modify",
						},
						"commitMessage": map[string]any{"type": "string", "description": "Git commit message"},
					},
					"required": []string{"projectId", "files", "commitMessage"},
				},
			},
		},
		{
			Type: "function",
			Function: llm.ToolFunction{
				Name:        "get_projects",
				Description: "Lists all projects from the database",
				Parameters: map[string]any{
					"type":       "object",
					"properties": map[string]any{},
				},
			},
		},
		{
			Type: "function",
			Function: llm.ToolFunction{
				Name:        "delete_project",
				Description: "Deletes a project and its resources",
				Parameters: map[string]any{
					"type": "object",
					"properties": map[string]any{
						"projectId": map[string]any{"type": "string", "description": "Project ID to delete"},
					},
					"required": []string{"projectId"},
				},
			},
		},
	}
}

// Execute dispatches one tool invocation. rawArgs is the JSON argument
// string as produced by the model.
func (r *Registry) Execute(ctx context.Context, name, rawArgs string) (any, error) {
	args := map[string]any{}
	if strings.TrimSpace(rawArgs) != "" {
		if err := json.Unmarshal([]byte(rawArgs), &args); err != nil {
			return nil, &ArgumentParseError{Tool: name, Err: err}
		}
	}

	switch name {
	case "get_projects":
		projects, err := r.store.List(ctx)
		if err != nil {
			return nil, err
		}
		return map[string]any{"projects": projects}, nil

	case "delete_project":
		id, _ := args["projectId"].(string)
		if id == "" {
			return nil, &ArgumentParseError{Tool: name, Err: fmt.Errorf("projectId required")}
		}
		if err := r.store.Delete(ctx, id); err != nil {
			return nil, err
		}
		return map[string]any{"success": true, "deletedId": id}, nil

	case "create_project":
		// TODO: wire r.github.CreateRepository + r.vercel.CreateProject here
		// once the end-to-end flow (starter files, env vars) is settled.
		return NotImplementedResult{
			Message:     "Project creation coming soon! GitHub & Vercel APIs will be integrated.",
			ProjectData: args,
		}, nil

	case "modify_project_code":
		// TODO: wire r.github.CommitFiles here together with create_project.
		return NotImplementedResult{
			Message:   "Code modification coming soon!",
			ProjectID: args["projectId"],
		}, nil

	default:
		return nil, &UnknownToolError{Name: name}
	}
}
