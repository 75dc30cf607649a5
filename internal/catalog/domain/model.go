package domain

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a project id does not exist in the store.
var ErrNotFound = errors.New("not found")

// DefaultStatus is assigned to projects created without an explicit status.
const DefaultStatus = "active"

// Project is a single portfolio entry. It is storage-agnostic and shared
// across the repository, service and HTTP layers. A nil LogoURL means the
// frontend renders an initial-letter avatar; a nil ScreenshotURL means no
// preview image block. Empty LiveURL/GithubURL hide the matching buttons.
type Project struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description"`
	LogoURL       *string   `json:"logoUrl"`
	ScreenshotURL *string   `json:"screenshotUrl"`
	LiveURL       string    `json:"liveUrl"`
	GithubURL     string    `json:"githubUrl"`
	TechStack     []string  `json:"techStack,omitempty"`
	Status        string    `json:"status,omitempty"`
	CreatedAt     time.Time `json:"createdAt,omitempty"`
	UpdatedAt     time.Time `json:"updatedAt,omitempty"`
}

// ProjectPatch carries a field-level partial update. A nil pointer leaves the
// field untouched. For the nullable image fields an empty string clears the
// value to NULL, mirroring how the catalog treats blank urls as absent.
type ProjectPatch struct {
	Name          *string
	Description   *string
	LogoURL       *string
	ScreenshotURL *string
	LiveURL       *string
	GithubURL     *string
	TechStack     *[]string
	Status        *string
}
