// Package registry holds the static tool table: every tool's navigation
// metadata paired with its widget. The sidebar, the index page, the HTTP
// router and the CLI all read from one Registry.
package registry

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/mesh-intelligence/toolbox/pkg/types"
)

// maxAliases bounds the extra routes a tool may claim.
const maxAliases = 2

// Entry pairs a tool's metadata with the widget that runs it.
type Entry struct {
	Tool   types.Tool
	Widget types.Widget
}

// Registry is an ordered, read-mostly table of tools keyed by id and route.
type Registry struct {
	mu      sync.RWMutex
	entries []*Entry
	byID    map[string]*Entry
	byRoute map[string]*Entry
}

// New creates an empty registry.
func New() *Registry {
	return &Registry{
		byID:    make(map[string]*Entry),
		byRoute: make(map[string]*Entry),
	}
}

// normalizeRoute returns route with exactly one leading slash and no
// trailing slash, lowercased.
func normalizeRoute(route string) string {
	route = strings.Trim(strings.ToLower(strings.TrimSpace(route)), "/")
	return "/" + route
}

// Register adds a tool. The route defaults to "/<id>". A duplicate id, or a
// route or alias already claimed by another tool, fails with
// ErrDuplicateTool.
func (r *Registry) Register(tool types.Tool, w types.Widget) error {
	if tool.ID == "" || strings.ContainsAny(tool.ID, "/ ") {
		return fmt.Errorf("register %q: invalid id", tool.ID)
	}
	if tool.Name == "" {
		return fmt.Errorf("register %s: name is required", tool.ID)
	}
	if _, ok := types.CategoryTitles[tool.Category]; !ok {
		return fmt.Errorf("register %s: unknown category %q", tool.ID, tool.Category)
	}
	if w == nil {
		return fmt.Errorf("register %s: widget is required", tool.ID)
	}
	if len(tool.Aliases) > maxAliases {
		return fmt.Errorf("register %s: at most %d aliases", tool.ID, maxAliases)
	}
	if tool.Route == "" {
		tool.Route = tool.ID
	}
	tool.Route = normalizeRoute(tool.Route)
	tool.Aliases = append([]string(nil), tool.Aliases...)
	for i, a := range tool.Aliases {
		tool.Aliases[i] = normalizeRoute(a)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[tool.ID]; ok {
		return fmt.Errorf("%w: id %s", types.ErrDuplicateTool, tool.ID)
	}
	routes := append([]string{tool.Route}, tool.Aliases...)
	for _, route := range routes {
		if route == "/" {
			return fmt.Errorf("register %s: route / is reserved", tool.ID)
		}
		if other, ok := r.byRoute[route]; ok {
			return fmt.Errorf("%w: route %s already used by %s", types.ErrDuplicateTool, route, other.Tool.ID)
		}
	}

	e := &Entry{Tool: tool, Widget: w}
	r.entries = append(r.entries, e)
	r.byID[tool.ID] = e
	for _, route := range routes {
		r.byRoute[route] = e
	}
	return nil
}

// Get returns the entry with the given id.
func (r *Registry) Get(id string) (*Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", types.ErrUnknownTool, id)
	}
	return e, nil
}

// Lookup resolves a route or alias to its entry.
func (r *Registry) Lookup(route string) (*Entry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	e, ok := r.byRoute[normalizeRoute(route)]
	if !ok {
		return nil, fmt.Errorf("%w: route %s", types.ErrUnknownTool, route)
	}
	return e, nil
}

// List returns every tool in registration order.
func (r *Registry) List() []types.Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]types.Tool, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.Tool
	}
	return out
}

// Len returns the number of registered tools.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Section is one category of tools.
type Section struct {
	ID    string       `json:"id"`
	Title string       `json:"title"`
	Tools []types.Tool `json:"tools"`
}

// Categories groups every tool by category in sidebar order. Categories
// with no tools are omitted.
func (r *Registry) Categories() []Section {
	return r.Sidebar(nil)
}

// Sidebar groups the tools accepted by enabled into sections in the fixed
// category order, omitting empty sections. A nil enabled accepts every
// tool.
func (r *Registry) Sidebar(enabled func(id string) bool) []Section {
	r.mu.RLock()
	defer r.mu.RUnlock()

	grouped := make(map[string][]types.Tool)
	for _, e := range r.entries {
		if enabled != nil && !enabled(e.Tool.ID) {
			continue
		}
		grouped[e.Tool.Category] = append(grouped[e.Tool.Category], e.Tool)
	}

	var out []Section
	for _, c := range types.CategoryOrder {
		if len(grouped[c]) == 0 {
			continue
		}
		out = append(out, Section{ID: c, Title: types.CategoryTitles[c], Tools: grouped[c]})
	}
	return out
}

// maxRelated bounds the related tools listed for a tool.
const maxRelated = 4

// Related returns the tools listed as related to id. When none are listed
// it falls back to other tools of the same category.
func (r *Registry) Related(id string) ([]types.Tool, error) {
	e, err := r.Get(id)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []types.Tool
	for _, rid := range e.Tool.Related {
		if other, ok := r.byID[rid]; ok && rid != id {
			out = append(out, other.Tool)
		}
	}
	if len(out) == 0 {
		for _, other := range r.entries {
			if other.Tool.Category == e.Tool.Category && other.Tool.ID != id {
				out = append(out, other.Tool)
			}
		}
	}
	if len(out) > maxRelated {
		out = out[:maxRelated]
	}
	return out, nil
}

// Search returns the tools matching every word of query in their id, name,
// description or aliases. Name matches rank first, then registration order.
func (r *Registry) Search(query string) []types.Tool {
	words := strings.Fields(strings.ToLower(query))
	if len(words) == 0 {
		return nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	type hit struct {
		tool  types.Tool
		score int
		order int
	}
	var hits []hit
	for i, e := range r.entries {
		t := e.Tool
		name := strings.ToLower(t.Name)
		haystack := strings.Join(append([]string{t.ID, name, strings.ToLower(t.Description)}, t.Aliases...), " ")
		score := 0
		matched := true
		for _, w := range words {
			if !strings.Contains(haystack, w) {
				matched = false
				break
			}
			if strings.Contains(name, w) {
				score++
			}
		}
		if matched {
			hits = append(hits, hit{tool: t, score: score, order: i})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool {
		if hits[i].score != hits[j].score {
			return hits[i].score > hits[j].score
		}
		return hits[i].order < hits[j].order
	})
	out := make([]types.Tool, len(hits))
	for i, h := range hits {
		out[i] = h.tool
	}
	return out
}
