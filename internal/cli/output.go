package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"restaurant-site/internal/listing"
	"restaurant-site/internal/model"
)

// writeJSON prints data as indented JSON on stdout.
func (a *App) writeJSON(data any) error {
	a.outMu.Lock()
	defer a.outMu.Unlock()

	enc := json.NewEncoder(a.stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// writeError prints the user-facing message of err on stderr. Validation
// failures list one line per field.
func (a *App) writeError(err error) {
	a.outMu.Lock()
	defer a.outMu.Unlock()

	var e *model.Error
	if !errors.As(err, &e) {
		fmt.Fprintf(a.stderr, "Error: %v\n", err)
		return
	}

	if e.Kind == model.KindValidation && len(e.Fields) > 0 {
		fields := make([]string, 0, len(e.Fields))
		for f := range e.Fields {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		for _, f := range fields {
			fmt.Fprintf(a.stderr, "Error: %s: %s\n", f, e.Fields[f])
		}
		return
	}

	fmt.Fprintf(a.stderr, "Error: %s\n", e.Error())
}

// saved is the output of an export command.
type saved struct {
	File     string `json:"file"`
	Location string `json:"location"`
	Bytes    int    `json:"bytes"`
}

// pageOutput is a paginated admin list as printed by the CLI.
type pageOutput[T any] struct {
	Items       []T                  `json:"items"`
	CurrentPage int                  `json:"currentPage"`
	TotalPages  int                  `json:"totalPages"`
	TotalItems  int                  `json:"totalItems"`
	Showing     string               `json:"showing,omitempty"`
	Pages       []listing.PageMarker `json:"pages,omitempty"`
}

func newPageOutput[T any](p listing.Page[T]) pageOutput[T] {
	return pageOutput[T]{
		Items:       p.Items,
		CurrentPage: p.CurrentPage,
		TotalPages:  p.TotalPages,
		TotalItems:  p.TotalItems,
		Showing:     p.ShowingRange(),
		Pages:       listing.PageWindow(p.CurrentPage, p.TotalPages),
	}
}
