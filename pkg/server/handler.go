package server

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/helmcode/healthai/pkg/analyzer"
	"github.com/helmcode/healthai/pkg/catalog"
)

type Handler struct {
	analyzer *analyzer.Analyzer
}

func NewHandler(a *analyzer.Analyzer) *Handler {
	return &Handler{analyzer: a}
}

func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.GET("/categories", h.ListCategories)
	api.GET("/symptoms", h.ListSymptoms)
	api.GET("/symptoms/:name", h.GetSymptom)
	api.GET("/conditions", h.ListConditions)
	api.GET("/lab-references", h.ListLabReferences)

	api.POST("/symptoms/analyze", h.AnalyzeSymptoms)
	api.POST("/lab/analyze", h.AnalyzeLab)
}

type analyzeSymptomsRequest struct {
	Symptoms []string `json:"symptoms"`
}

type analyzeLabRequest struct {
	Text string `json:"text"`
}

// -- Analysis Handlers --

func (h *Handler) AnalyzeSymptoms(c echo.Context) error {
	var req analyzeSymptomsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if len(req.Symptoms) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "at least one symptom is required")
	}
	result := h.analyzer.AnalyzeSymptoms(analyzer.NewSelection(req.Symptoms...))
	c.Set(ctxUrgency, string(result.Urgency))
	return c.JSON(http.StatusOK, result)
}

func (h *Handler) AnalyzeLab(c echo.Context) error {
	var req analyzeLabRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	result := h.analyzer.AnalyzeLab(req.Text)
	c.Set(ctxFindings, len(result.Findings))
	return c.JSON(http.StatusOK, result)
}

// -- Catalog Handlers --

func (h *Handler) ListCategories(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"categories": append([]string{catalog.CategoryAll}, h.analyzer.Store().Categories()...),
	})
}

// ListSymptoms supports ?q= search, ?category= filtering and repeated ?exclude=
// parameters for names that are already selected.
func (h *Handler) ListSymptoms(c echo.Context) error {
	names := h.analyzer.Store().Filter(c.QueryParam("q"), c.QueryParam("category"), c.QueryParams()["exclude"])
	if names == nil {
		names = []string{}
	}
	return c.JSON(http.StatusOK, map[string]any{
		"symptoms": names,
		"total":    len(names),
	})
}

func (h *Handler) GetSymptom(c echo.Context) error {
	name, err := url.PathUnescape(c.Param("name"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid symptom name")
	}
	sym, ok := h.analyzer.Store().Symptom(name)
	if !ok {
		return echo.NewHTTPError(http.StatusNotFound, "symptom not found")
	}
	return c.JSON(http.StatusOK, sym)
}

func (h *Handler) ListConditions(c echo.Context) error {
	items := h.analyzer.Store().Conditions()
	return c.JSON(http.StatusOK, map[string]any{
		"conditions": items,
		"total":      len(items),
	})
}

func (h *Handler) ListLabReferences(c echo.Context) error {
	items := h.analyzer.Store().LabReferences()
	return c.JSON(http.StatusOK, map[string]any{
		"lab_references": items,
		"total":          len(items),
	})
}

func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}
