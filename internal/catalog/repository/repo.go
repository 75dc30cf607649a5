package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/lib/pq"

	"github.com/Arviva-Admin/portfolio-backend/internal/catalog/domain"
)

// StoreError wraps a failed store operation with the operation name so
// callers can log which call failed. Unwrap keeps errors.Is(ErrNotFound)
// working through the wrapper.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// ProjectRepository provides persistence operations for portfolio projects.
type ProjectRepository struct {
	db *sql.DB
}

// NewProjectRepository creates a new project repository
func NewProjectRepository(db *sql.DB) *ProjectRepository {
	return &ProjectRepository{db: db}
}

// projectRow mirrors the persisted snake_case row shape.
type projectRow struct {
	ID            string
	Name          string
	Description   string
	LogoURL       sql.NullString
	ScreenshotURL sql.NullString
	LiveURL       string
	GithubURL     string
	TechStack     pq.StringArray
	Status        sql.NullString
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (r projectRow) toProject() domain.Project {
	p := domain.Project{
		ID:          r.ID,
		Name:        r.Name,
		Description: r.Description,
		LiveURL:     r.LiveURL,
		GithubURL:   r.GithubURL,
		TechStack:   []string(r.TechStack),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
	if r.LogoURL.Valid {
		v := r.LogoURL.String
		p.LogoURL = &v
	}
	if r.ScreenshotURL.Valid {
		v := r.ScreenshotURL.String
		p.ScreenshotURL = &v
	}
	if r.Status.Valid {
		p.Status = r.Status.String
	}
	return p
}

func toRow(p domain.Project) projectRow {
	row := projectRow{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		LiveURL:     p.LiveURL,
		GithubURL:   p.GithubURL,
		TechStack:   pq.StringArray(p.TechStack),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if p.LogoURL != nil {
		row.LogoURL = sql.NullString{String: *p.LogoURL, Valid: true}
	}
	if p.ScreenshotURL != nil {
		row.ScreenshotURL = sql.NullString{String: *p.ScreenshotURL, Valid: true}
	}
	if p.Status != "" {
		row.Status = sql.NullString{String: p.Status, Valid: true}
	}
	return row
}

// List returns all projects, newest created first.
func (r *ProjectRepository) List(ctx context.Context) ([]domain.Project, error) {
	const q = `
SELECT id, name, description, logo_url, screenshot_url, live_url, github_url, tech_stack, status, created_at, updated_at
FROM projects
ORDER BY created_at DESC;
`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, &StoreError{Op: "list", Err: err}
	}
	defer rows.Close()

	out := make([]domain.Project, 0, 16)
	for rows.Next() {
		var row projectRow
		if err := rows.Scan(
			&row.ID, &row.Name, &row.Description,
			&row.LogoURL, &row.ScreenshotURL,
			&row.LiveURL, &row.GithubURL,
			&row.TechStack, &row.Status,
			&row.CreatedAt, &row.UpdatedAt,
		); err != nil {
			return nil, &StoreError{Op: "list", Err: err}
		}
		out = append(out, row.toProject())
	}
	if err := rows.Err(); err != nil {
		return nil, &StoreError{Op: "list", Err: err}
	}
	return out, nil
}

// Add inserts a new project and returns the id assigned by the store.
func (r *ProjectRepository) Add(ctx context.Context, p domain.Project) (string, error) {
	if strings.TrimSpace(p.Name) == "" {
		return "", &StoreError{Op: "add", Err: fmt.Errorf("name required")}
	}
	if p.Status == "" {
		p.Status = domain.DefaultStatus
	}
	row := toRow(p)
	if row.TechStack == nil {
		row.TechStack = pq.StringArray{}
	}

	const q = `
INSERT INTO projects (name, description, logo_url, screenshot_url, live_url, github_url, tech_stack, status)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id;
`
	var id string
	err := r.db.QueryRowContext(ctx, q,
		row.Name, row.Description,
		row.LogoURL, row.ScreenshotURL,
		row.LiveURL, row.GithubURL,
		row.TechStack, row.Status,
	).Scan(&id)
	if err != nil {
		return "", &StoreError{Op: "add", Err: err}
	}
	return id, nil
}

// Update applies a field-level partial patch to an existing project.
func (r *ProjectRepository) Update(ctx context.Context, id string, patch domain.ProjectPatch) error {
	sets := []string{"updated_at = now()"}
	args := []any{}
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if patch.Name != nil {
		sets = append(sets, "name = "+arg(*patch.Name))
	}
	if patch.Description != nil {
		sets = append(sets, "description = "+arg(*patch.Description))
	}
	if patch.LogoURL != nil {
		sets = append(sets, "logo_url = "+arg(nullable(*patch.LogoURL)))
	}
	if patch.ScreenshotURL != nil {
		sets = append(sets, "screenshot_url = "+arg(nullable(*patch.ScreenshotURL)))
	}
	if patch.LiveURL != nil {
		sets = append(sets, "live_url = "+arg(*patch.LiveURL))
	}
	if patch.GithubURL != nil {
		sets = append(sets, "github_url = "+arg(*patch.GithubURL))
	}
	if patch.TechStack != nil {
		sets = append(sets, "tech_stack = "+arg(pq.StringArray(*patch.TechStack)))
	}
	if patch.Status != nil {
		sets = append(sets, "status = "+arg(*patch.Status))
	}

	q := fmt.Sprintf("UPDATE projects SET %s WHERE id = %s;", strings.Join(sets, ", "), arg(id))

	result, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return &StoreError{Op: "update", Err: err}
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return &StoreError{Op: "update", Err: err}
	}
	if affected == 0 {
		return &StoreError{Op: "update", Err: domain.ErrNotFound}
	}
	return nil
}

// Delete removes a project by id.
func (r *ProjectRepository) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM projects WHERE id = $1;`

	result, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return &StoreError{Op: "delete", Err: err}
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return &StoreError{Op: "delete", Err: err}
	}
	if affected == 0 {
		return &StoreError{Op: "delete", Err: domain.ErrNotFound}
	}
	return nil
}

// nullable maps an empty string to a SQL NULL for the image columns.
func nullable(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
