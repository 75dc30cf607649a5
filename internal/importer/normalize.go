package importer

import (
	"strings"

	"github.com/Arviva-Admin/portfolio-backend/internal/catalog/domain"
)

// DefaultDescription is the placeholder used when an imported item carries
// no description. The wording matches what IdeaLab exports rendered before
// descriptions became mandatory there, so it stays fixed.
const DefaultDescription = "AI-genererad app/hemsida från IdeaLab"

// Alias precedence is load-bearing: IdeaLab has shipped several export
// formats and existing data relies on exactly this order.
var (
	nameAliases        = []string{"name", "title", "projectName", "project", "appName"}
	descriptionAliases = []string{"description", "summary", "details"}
	liveURLAliases     = []string{"liveUrl", "live", "url", "previewUrl"}
	githubURLAliases   = []string{"githubUrl", "repo", "repository"}
	logoURLAliases     = []string{"logoUrl", "logo", "icon", "image"}
	screenshotAliases  = []string{"screenshotUrl", "screenshot", "previewImage", "preview"}
)

// Normalize maps one arbitrary decoded JSON item to a Project without id.
// It returns false when the item has no resolvable name; such items are
// silently dropped from the batch.
func Normalize(item any) (domain.Project, bool) {
	obj, ok := item.(map[string]any)
	if !ok {
		return domain.Project{}, false
	}

	name := firstString(obj, nameAliases)
	if name == "" {
		return domain.Project{}, false
	}

	description := firstString(obj, descriptionAliases)
	if description == "" {
		description = DefaultDescription
	}

	return domain.Project{
		Name:          name,
		Description:   description,
		LiveURL:       firstString(obj, liveURLAliases),
		GithubURL:     firstString(obj, githubURLAliases),
		LogoURL:       firstStringPtr(obj, logoURLAliases),
		ScreenshotURL: firstStringPtr(obj, screenshotAliases),
	}, true
}

// firstString probes the alias keys in order and returns the first value
// that is a non-blank string. Null, missing and non-string values are
// treated as absent.
func firstString(obj map[string]any, aliases []string) string {
	for _, key := range aliases {
		if s, ok := obj[key].(string); ok && strings.TrimSpace(s) != "" {
			return s
		}
	}
	return ""
}

func firstStringPtr(obj map[string]any, aliases []string) *string {
	if s := firstString(obj, aliases); s != "" {
		return &s
	}
	return nil
}
