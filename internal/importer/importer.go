package importer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/Arviva-Admin/portfolio-backend/internal/catalog/domain"
)

// envelopeFields are probed in order when the payload is an object instead
// of a bare list.
var envelopeFields = []string{"projects", "items", "data"}

// ProjectAdder persists a single project and returns it with its assigned
// id. Satisfied by the catalog service.
type ProjectAdder interface {
	Add(ctx context.Context, p domain.Project) (domain.Project, error)
}

// Result reports a successful batch import.
type Result struct {
	Imported int
	Projects []domain.Project
}

// Importer turns free-form IdeaLab JSON exports into catalog entries.
type Importer struct {
	store ProjectAdder
}

// NewImporter creates a new bulk importer
func NewImporter(store ProjectAdder) *Importer {
	return &Importer{store: store}
}

// Import parses raw JSON text, normalizes every recognizable item and
// persists the surviving subset. Returned projects keep the payload order
// with store-assigned ids paired back by position.
//
// The batch is not transactional: if one insert fails the import fails as a
// whole, but inserts that already succeeded stay in the store.
func (imp *Importer) Import(ctx context.Context, raw string) (*Result, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, &ParseError{Err: fmt.Errorf("empty payload")}
	}

	var parsed any
	if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
		return nil, &ParseError{Err: err}
	}

	items, err := resolveItems(parsed)
	if err != nil {
		return nil, err
	}

	normalized := make([]domain.Project, 0, len(items))
	for _, item := range items {
		if p, ok := Normalize(item); ok {
			normalized = append(normalized, p)
		}
	}
	if len(normalized) == 0 {
		return nil, ErrEmptyBatch
	}

	// Fan out the inserts; results land in the slot matching their input
	// position regardless of completion order.
	created := make([]domain.Project, len(normalized))
	g, gctx := errgroup.WithContext(ctx)
	for i, p := range normalized {
		i, p := i, p
		g.Go(func() error {
			out, err := imp.store.Add(gctx, p)
			if err != nil {
				return fmt.Errorf("import %q: %w", p.Name, err)
			}
			created[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Result{Imported: len(created), Projects: created}, nil
}

// resolveItems locates the item list inside the supported envelope shapes.
func resolveItems(parsed any) ([]any, error) {
	if list, ok := parsed.([]any); ok {
		return list, nil
	}
	if obj, ok := parsed.(map[string]any); ok {
		for _, field := range envelopeFields {
			if list, ok := obj[field].([]any); ok {
				return list, nil
			}
		}
	}
	return nil, &ShapeError{Msg: `expected a JSON list or an object with a "projects", "items" or "data" list`}
}
