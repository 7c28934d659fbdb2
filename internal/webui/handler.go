// Package webui serves the browser pages. Every page is rendered on the
// server from webclient view models; no client-side script is needed.
package webui

import (
	"embed"
	"errors"
	"html/template"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/render"

	"campfire/internal/shared/telemetry"
	"campfire/internal/webclient"
)

//go:embed templates/*.html
var templateFS embed.FS

type Handler struct {
	Backend webclient.Backend
	tmpl    *template.Template
}

func NewHandler(b webclient.Backend) *Handler {
	tmpl := template.Must(template.New("webui").Funcs(template.FuncMap{
		"inputLabel":   webclient.InputWeightLabel,
		"revisitLabel": webclient.RevisitWeightLabel,
		"rating":       formatRating,
	}).ParseFS(templateFS, "templates/*.html"))
	return &Handler{Backend: b, tmpl: tmpl}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/", h.index)
	rg.POST("/", h.submit)
	rg.GET("/neighborhoods", h.neighborhoods)
	rg.GET("/preferences", h.preferences)
	rg.POST("/preferences", h.togglePreference)
	rg.GET("/feedback", h.feedback)
	rg.POST("/feedback", h.submitFeedback)
	rg.POST("/feedback/vote", h.vote)
}

type Page struct {
	Active   string
	UserName string
	Alert    string
}

type typeToggle struct {
	Label   string
	Value   string
	Checked bool
}

type indexPage struct {
	Page
	Form          webclient.Form
	Cities        []string
	Types         []typeToggle
	InputWeight   int
	RevisitWeight int
	SessionToken  string
	LookupRow     int
	Suggestions   []webclient.Suggestion
	Results       webclient.ResultsView
	Submitted     bool
}

func (p indexPage) Loaded() bool { return p.Results.State == webclient.ResultsLoaded }
func (p indexPage) Empty() bool  { return p.Results.State == webclient.ResultsEmpty }
func (p indexPage) Failed() bool { return p.Results.State == webclient.ResultsError }

func (h *Handler) index(c *gin.Context) {
	name := h.loadName(c)
	form := webclient.NewForm(c.DefaultQuery("city", defaultCity))
	form.Name = name
	h.renderIndex(c, form, webclient.NewAutocompleter(h.Backend, 0).SessionToken(), nil)
}

// submit handles every button on the main form: city change, restaurant
// lookup, suggestion pick and the recommendation request itself.
func (h *Handler) submit(c *gin.Context) {
	ctx := c.Request.Context()
	form := readForm(c)
	ac := webclient.NewAutocompleter(h.Backend, 0)
	ac.SetSessionToken(c.PostForm("session_token"))

	switch {
	case c.PostForm("action") == "city":
		form.SetCity(form.City)
		h.renderIndex(c, form, ac.SessionToken(), nil)
	case c.PostForm("lookup") != "":
		row, ok := rowIndex(c.PostForm("lookup"), len(form.Restaurants))
		if !ok {
			h.renderIndex(c, form, ac.SessionToken(), nil)
			return
		}
		form.Restaurants[row].PlaceID = ""
		if _, err := ac.Fetch(ctx, strings.TrimSpace(form.Restaurants[row].Text), form.City); err != nil {
			telemetry.Warn("webui.lookup.failed", map[string]any{"error": err.Error()})
		}
		h.renderIndex(c, form, ac.SessionToken(), func(p *indexPage) {
			p.LookupRow = row
			p.Suggestions = ac.Suggestions()
		})
	case c.PostForm("pick") != "":
		if row, s, ok := parsePick(c.PostForm("pick"), len(form.Restaurants)); ok {
			ac.Select(&form.Restaurants[row], s)
		}
		h.renderIndex(c, form, ac.SessionToken(), nil)
	default:
		_ = cookieNames{c}.Save(ctx, form.Name)
		var results webclient.Results
		if err := results.Submit(ctx, h.Backend, form); err != nil {
			telemetry.Warn("webui.recommend.failed", map[string]any{"error": err.Error()})
		}
		h.renderIndex(c, form, ac.SessionToken(), func(p *indexPage) {
			p.Results = results.View()
			p.Submitted = true
		})
	}
}

func (h *Handler) renderIndex(c *gin.Context, form webclient.Form, token string, fill func(*indexPage)) {
	checked := map[string]bool{}
	for _, t := range form.Types {
		checked[t] = true
	}
	var types []typeToggle
	for _, t := range webclient.RestaurantTypes() {
		types = append(types, typeToggle{Label: t.Label, Value: t.Value, Checked: checked[t.Value]})
	}
	p := indexPage{
		Page:          Page{Active: "home", UserName: displayName(form.Name)},
		Form:          form,
		Cities:        webclient.Cities(),
		Types:         types,
		InputWeight:   valueOr(form.InputWeight, webclient.DefaultInputWeight),
		RevisitWeight: valueOr(form.RevisitWeight, webclient.DefaultRevisitWeight),
		SessionToken:  token,
		LookupRow:     -1,
	}
	if fill != nil {
		fill(&p)
	}
	h.render(c, "index.html", p)
}

func (h *Handler) neighborhoods(c *gin.Context) {
	h.render(c, "neighborhoods.html", gin.H{"Neighborhoods": webclient.Neighborhoods(c.Query("city"))})
}

type preferencesPage struct {
	Page
	View webclient.PanelView[webclient.RestaurantPreference]
}

func (p preferencesPage) NeedsName() bool { return p.View.State == webclient.PanelNeedsName }

func (h *Handler) preferences(c *gin.Context) {
	name := h.loadName(c)
	panel := webclient.NewPreferencesPanel(h.Backend)
	if err := panel.Open(c.Request.Context(), name); err != nil {
		telemetry.Warn("webui.preferences.failed", map[string]any{"error": err.Error()})
	}
	h.renderPreferences(c, name, panel, "")
}

func (h *Handler) togglePreference(c *gin.Context) {
	ctx := c.Request.Context()
	name := h.loadName(c)
	panel := webclient.NewPreferencesPanel(h.Backend)
	_ = panel.Open(ctx, name)

	id, _ := strconv.ParseInt(strings.TrimSpace(c.PostForm("restaurant_id")), 10, 64)
	pref := webclient.Preference(c.PostForm("preference"))
	if err := panel.Toggle(ctx, name, id, pref); err != nil {
		h.renderPreferences(c, name, panel, alertMessage(err))
		return
	}
	c.Redirect(http.StatusSeeOther, "/preferences")
}

func (h *Handler) renderPreferences(c *gin.Context, name string, panel *webclient.PreferencesPanel, alert string) {
	h.render(c, "preferences.html", preferencesPage{
		Page: Page{Active: "preferences", UserName: displayName(name), Alert: alert},
		View: panel.View(),
	})
}

type feedbackPage struct {
	Page
	View  webclient.PanelView[webclient.FeedbackItem]
	Draft string
}

func (h *Handler) feedback(c *gin.Context) {
	name := h.loadName(c)
	panel := webclient.NewFeedbackPanel(h.Backend)
	if err := panel.Open(c.Request.Context(), name); err != nil {
		telemetry.Warn("webui.feedback.failed", map[string]any{"error": err.Error()})
	}
	h.renderFeedback(c, name, panel, "")
}

func (h *Handler) submitFeedback(c *gin.Context) {
	ctx := c.Request.Context()
	name := h.loadName(c)
	panel := webclient.NewFeedbackPanel(h.Backend)
	_ = panel.Open(ctx, name)
	if err := panel.Submit(ctx, name, c.PostForm("content")); err != nil {
		if panel.Draft == "" {
			panel.Draft = strings.TrimSpace(c.PostForm("content"))
		}
		h.renderFeedback(c, name, panel, alertMessage(err))
		return
	}
	c.Redirect(http.StatusSeeOther, "/feedback")
}

func (h *Handler) vote(c *gin.Context) {
	ctx := c.Request.Context()
	name := h.loadName(c)
	panel := webclient.NewFeedbackPanel(h.Backend)
	_ = panel.Open(ctx, name)

	id, _ := strconv.ParseInt(strings.TrimSpace(c.PostForm("suggestion_id")), 10, 64)
	vote, _ := strconv.Atoi(strings.TrimSpace(c.PostForm("vote_type")))
	if err := panel.Vote(ctx, name, id, vote); err != nil {
		h.renderFeedback(c, name, panel, alertMessage(err))
		return
	}
	c.Redirect(http.StatusSeeOther, "/feedback")
}

func (h *Handler) renderFeedback(c *gin.Context, name string, panel *webclient.FeedbackPanel, alert string) {
	h.render(c, "feedback.html", feedbackPage{
		Page:  Page{Active: "feedback", UserName: displayName(name), Alert: alert},
		View:  panel.View(),
		Draft: panel.Draft,
	})
}

func (h *Handler) render(c *gin.Context, name string, data any) {
	c.Render(http.StatusOK, render.HTML{Template: h.tmpl, Name: name, Data: data})
}

func (h *Handler) loadName(c *gin.Context) string {
	name, err := cookieNames{c}.Load(c.Request.Context())
	if err != nil {
		return ""
	}
	if name != "" {
		c.Set("userName", name)
	}
	return name
}

func alertMessage(err error) string {
	var alert *webclient.AlertError
	if errors.As(err, &alert) {
		return alert.Message
	}
	return "Something went wrong. Please try again."
}

func displayName(name string) string {
	if strings.TrimSpace(name) == "" {
		return "Guest"
	}
	return name
}

func valueOr(v *int, def int) int {
	if v == nil {
		return def
	}
	return *v
}

func rowIndex(raw string, rows int) (int, bool) {
	i, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || i < 0 || i >= rows {
		return 0, false
	}
	return i, true
}

// parsePick decodes a suggestion button value "row|place_id|label".
func parsePick(raw string, rows int) (int, webclient.Suggestion, bool) {
	parts := strings.SplitN(raw, "|", 3)
	if len(parts) != 3 {
		return 0, webclient.Suggestion{}, false
	}
	row, ok := rowIndex(parts[0], rows)
	if !ok || strings.TrimSpace(parts[1]) == "" {
		return 0, webclient.Suggestion{}, false
	}
	name, addr, _ := strings.Cut(parts[2], " (")
	return row, webclient.Suggestion{
		Name:    name,
		Address: strings.TrimSuffix(addr, ")"),
		PlaceID: strings.TrimSpace(parts[1]),
	}, true
}

func formatRating(r *float64) string {
	if r == nil {
		return ""
	}
	return strconv.FormatFloat(*r, 'f', 1, 64)
}
