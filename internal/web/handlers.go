package web

import (
	"net/http"
	"sort"
	"strconv"

	"github.com/sdsheeks/gqlscout/internal/config"
	"github.com/sdsheeks/gqlscout/internal/keywords"
	"github.com/sdsheeks/gqlscout/internal/schema"
	"github.com/sdsheeks/gqlscout/internal/sdl"
	"github.com/sdsheeks/gqlscout/internal/search"
	"github.com/sdsheeks/gqlscout/internal/templates"
)

// defaultContextWindow is the snippet radius when the form leaves it blank.
const defaultContextWindow = 2

// Handlers contains HTTP route handlers for the web UI.
type Handlers struct {
	manager  *schema.Manager
	cfg      *config.Config
	renderer *Renderer
}

// HandleOverview handles GET /schema — cache status and construct summary.
func (h *Handlers) HandleOverview(w http.ResponseWriter, r *http.Request) {
	data := OverviewPageData{
		PageData: PageData{
			Title:   "Schema",
			Version: h.renderer.version,
			Nav:     "schema",
		},
		Cache:     h.manager.Status(),
		Refreshed: r.URL.Query().Get("refreshed") == "1",
	}

	if content, err := h.manager.Peek(); err == nil {
		summary := sdl.Summarize(content)
		data.Summary = &summary
	}

	h.renderer.renderPage(w, r, "overview", data)
}

// HandleRefresh handles POST /schema/refresh — force-fetch and redirect back.
func (h *Handlers) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	if _, err := h.manager.ForceRefresh(r.Context()); err != nil {
		h.renderer.renderError(w, r, err)
		return
	}
	http.Redirect(w, r, "/schema?refreshed=1", http.StatusSeeOther)
}

// HandleSearch handles GET /schema/search — pattern search with context snippets.
func (h *Handlers) HandleSearch(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	filter := r.URL.Query().Get("filter")
	window := parseIntParam(r, "window", defaultContextWindow)

	data := SearchPageData{
		PageData: PageData{
			Title:   "Search",
			Version: h.renderer.version,
			Nav:     "search",
		},
		Query:    query,
		Filter:   filter,
		Window:   window,
		Filters:  search.ValidFilters,
		HasQuery: query != "",
	}

	if query == "" {
		h.renderer.renderPage(w, r, "search", data)
		return
	}

	content, err := h.manager.GetContent(r.Context())
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	data.Result = search.Search(content, search.Query{
		Pattern:       query,
		Filter:        filter,
		ContextWindow: window,
	})

	h.renderer.renderPage(w, r, "search", data)
}

// HandleTemplates handles GET /templates — the operation template catalog.
func (h *Handlers) HandleTemplates(w http.ResponseWriter, r *http.Request) {
	items, err := templates.List()
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}

	views := make([]TemplateView, 0, len(items))
	for _, t := range items {
		views = append(views, TemplateView{
			Name:        t.Name,
			Title:       t.Title,
			Operation:   t.Operation,
			Variables:   t.Variables,
			Description: renderMarkdown(t.Description),
		})
	}

	h.renderer.renderPage(w, r, "templates", TemplatesPageData{
		PageData: PageData{
			Title:   "Templates",
			Version: h.renderer.version,
			Nav:     "templates",
		},
		Items: views,
	})
}

// HandleKeywords handles GET /keywords — suggestion lists by category.
func (h *Handlers) HandleKeywords(w http.ResponseWriter, r *http.Request) {
	names, err := keywords.Categories()
	if err != nil {
		h.renderer.renderError(w, r, err)
		return
	}
	sort.Strings(names)

	cats := make([]KeywordCategory, 0, len(names))
	for _, name := range names {
		words, err := keywords.List(name)
		if err != nil {
			h.renderer.renderError(w, r, err)
			return
		}
		cats = append(cats, KeywordCategory{Name: name, Words: words})
	}

	h.renderer.renderPage(w, r, "keywords", KeywordsPageData{
		PageData: PageData{
			Title:   "Keywords",
			Version: h.renderer.version,
			Nav:     "keywords",
		},
		Categories: cats,
	})
}

// parseIntParam parses an integer query parameter with a default.
func parseIntParam(r *http.Request, name string, def int) int {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}
