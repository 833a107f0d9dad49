package internal

import (
	"net/http"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/xcstrings/pkg/catalog"
	"github.com/dmitrymomot/xcstrings/pkg/store"
)

// CatalogPathHeader selects a catalog when the path query parameter is absent.
const CatalogPathHeader = "X-Catalog-Path"

// CatalogHandler exposes catalog operations as a JSON API.
type CatalogHandler struct {
	catalogs *store.Registry
	path     Extractor
}

// NewCatalogHandler creates the API handler over reg.
func NewCatalogHandler(reg *store.Registry) *CatalogHandler {
	return &CatalogHandler{
		catalogs: reg,
		path:     NewExtractor(FromQuery("path"), FromHeader(CatalogPathHeader)),
	}
}

// Routes registers the API routes.
func (h *CatalogHandler) Routes(r Router) {
	r.Route("/api", func(r Router) {
		r.GET("/catalogs", h.listCatalogs)
		r.POST("/catalogs/refresh", h.refreshCatalogs)
		r.GET("/catalog", h.info)
		r.POST("/catalog/reload", h.reload)

		r.GET("/translations", h.listTranslations)
		r.GET("/translations/{key}/{lang}", h.getTranslation)
		r.PUT("/translations/{key}/{lang}", h.upsertTranslation)
		r.DELETE("/translations/{key}/{lang}", h.deleteTranslation)

		r.GET("/keys", h.listKeys)
		r.DELETE("/keys/{key}", h.deleteKey)
		r.POST("/keys/{key}/rename", h.renameKey)
		r.PUT("/keys/{key}/comment", h.setComment)
		r.PUT("/keys/{key}/extraction-state", h.setExtractionState)
		r.PUT("/keys/{key}/should-translate", h.setShouldTranslate)

		r.GET("/languages", h.listLanguages)
		r.POST("/languages", h.addLanguage)
		r.PUT("/languages/{code}", h.updateLanguage)
		r.DELETE("/languages/{code}", h.removeLanguage)
		r.GET("/languages/{code}/untranslated", h.untranslated)
		r.GET("/languages/{code}/progress", h.progress)

		r.GET("/progress", h.overview)
		r.GET("/export/{lang}", h.export)
		r.GET("/preview/{key}/{lang}", h.preview)
	})
}

func (h *CatalogHandler) store(c Context) (*store.Store, error) {
	path, _ := h.path.Extract(c)
	return h.catalogs.Store(c, path)
}

type catalogsResponse struct {
	Mode     string   `json:"mode"`
	Root     string   `json:"root"`
	Default  string   `json:"default,omitempty"`
	Catalogs []string `json:"catalogs"`
}

func (h *CatalogHandler) catalogsResponse(paths []string) catalogsResponse {
	if paths == nil {
		paths = []string{}
	}
	return catalogsResponse{
		Mode:     h.catalogs.Mode().String(),
		Root:     h.catalogs.Root(),
		Default:  h.catalogs.DefaultPath(),
		Catalogs: paths,
	}
}

func (h *CatalogHandler) listCatalogs(c Context) error {
	paths, err := h.catalogs.Paths(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.catalogsResponse(paths))
}

func (h *CatalogHandler) refreshCatalogs(c Context) error {
	paths, err := h.catalogs.Refresh(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, h.catalogsResponse(paths))
}

func (h *CatalogHandler) info(c Context) error {
	s, err := h.store(c)
	if err != nil {
		return err
	}
	info, err := s.Info(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, info)
}

func (h *CatalogHandler) reload(c Context) error {
	s, err := h.store(c)
	if err != nil {
		return err
	}
	if err := s.Reload(c); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CatalogHandler) listTranslations(c Context) error {
	s, err := h.store(c)
	if err != nil {
		return err
	}
	res, err := s.ListTranslations(c, c.Query("q"), QueryDefault(c, "limit", 0))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

func (h *CatalogHandler) listKeys(c Context) error {
	s, err := h.store(c)
	if err != nil {
		return err
	}
	res, err := s.ListKeys(c, c.Query("q"), QueryDefault(c, "limit", 0))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, res)
}

type translationResponse struct {
	Key      string       `json:"key"`
	Language string       `json:"language"`
	Unit     catalog.Unit `json:"unit"`
}

func (h *CatalogHandler) getTranslation(c Context) error {
	s, err := h.store(c)
	if err != nil {
		return err
	}
	key, lang := c.Param("key"), c.Param("lang")
	u, err := s.GetTranslation(c, key, lang)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, translationResponse{Key: key, Language: lang, Unit: u})
}

func (h *CatalogHandler) upsertTranslation(c Context) error {
	s, err := h.store(c)
	if err != nil {
		return err
	}
	var patch catalog.Patch
	if err := c.BindJSON(&patch); err != nil {
		return err
	}
	key, lang := c.Param("key"), c.Param("lang")
	u, err := s.UpsertTranslation(c, key, lang, patch)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, translationResponse{Key: key, Language: lang, Unit: u})
}

func (h *CatalogHandler) deleteTranslation(c Context) error {
	s, err := h.store(c)
	if err != nil {
		return err
	}
	if err := s.DeleteTranslation(c, c.Param("key"), c.Param("lang")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CatalogHandler) deleteKey(c Context) error {
	s, err := h.store(c)
	if err != nil {
		return err
	}
	if err := s.DeleteKey(c, c.Param("key")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

type renameRequest struct {
	To string `json:"to"`
}

func (h *CatalogHandler) renameKey(c Context) error {
	s, err := h.store(c)
	if err != nil {
		return err
	}
	var req renameRequest
	if err := c.BindJSON(&req); err != nil {
		return err
	}
	if err := s.RenameKey(c, c.Param("key"), req.To); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

type commentRequest struct {
	Comment *string `json:"comment"`
}

func (h *CatalogHandler) setComment(c Context) error {
	s, err := h.store(c)
	if err != nil {
		return err
	}
	var req commentRequest
	if err := c.BindJSON(&req); err != nil {
		return err
	}
	if err := s.SetComment(c, c.Param("key"), req.Comment); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

type extractionStateRequest struct {
	ExtractionState *string `json:"extractionState"`
}

func (h *CatalogHandler) setExtractionState(c Context) error {
	s, err := h.store(c)
	if err != nil {
		return err
	}
	var req extractionStateRequest
	if err := c.BindJSON(&req); err != nil {
		return err
	}
	if err := s.SetExtractionState(c, c.Param("key"), req.ExtractionState); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

type shouldTranslateRequest struct {
	ShouldTranslate *bool `json:"shouldTranslate"`
}

func (h *CatalogHandler) setShouldTranslate(c Context) error {
	s, err := h.store(c)
	if err != nil {
		return err
	}
	var req shouldTranslateRequest
	if err := c.BindJSON(&req); err != nil {
		return err
	}
	if err := s.SetShouldTranslate(c, c.Param("key"), req.ShouldTranslate); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

type languagesResponse struct {
	SourceLanguage string   `json:"sourceLanguage"`
	Languages      []string `json:"languages"`
}

func (h *CatalogHandler) listLanguages(c Context) error {
	s, err := h.store(c)
	if err != nil {
		return err
	}
	info, err := s.Info(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, languagesResponse{SourceLanguage: info.SourceLanguage, Languages: info.Languages})
}

type addLanguageRequest struct {
	Code string `json:"code"`
}

type addLanguageResponse struct {
	Code  string `json:"code"`
	Added int    `json:"added"`
}

func (h *CatalogHandler) addLanguage(c Context) error {
	s, err := h.store(c)
	if err != nil {
		return err
	}
	var req addLanguageRequest
	if err := c.BindJSON(&req); err != nil {
		return err
	}
	added, err := s.AddLanguage(c, req.Code)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, addLanguageResponse{Code: req.Code, Added: added})
}

func (h *CatalogHandler) updateLanguage(c Context) error {
	s, err := h.store(c)
	if err != nil {
		return err
	}
	var req renameRequest
	if err := c.BindJSON(&req); err != nil {
		return err
	}
	if err := s.UpdateLanguage(c, c.Param("code"), req.To); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (h *CatalogHandler) removeLanguage(c Context) error {
	s, err := h.store(c)
	if err != nil {
		return err
	}
	if err := s.RemoveLanguage(c, c.Param("code")); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

type untranslatedResponse struct {
	Language string   `json:"language"`
	Keys     []string `json:"keys"`
}

func (h *CatalogHandler) untranslated(c Context) error {
	s, err := h.store(c)
	if err != nil {
		return err
	}
	lang := c.Param("code")
	keys, err := s.ListUntranslated(c, lang)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, untranslatedResponse{Language: lang, Keys: keys})
}

func (h *CatalogHandler) progress(c Context) error {
	s, err := h.store(c)
	if err != nil {
		return err
	}
	p, err := s.Progress(c, c.Param("code"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

type overviewResponse struct {
	Languages []catalog.Progress `json:"languages"`
}

func (h *CatalogHandler) overview(c Context) error {
	s, err := h.store(c)
	if err != nil {
		return err
	}
	out, err := s.Overview(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, overviewResponse{Languages: out})
}

func (h *CatalogHandler) export(c Context) error {
	format := strings.ToLower(c.QueryDefault("format", "json"))
	if format != "json" && format != "yaml" {
		return ErrBadRequest("format must be json or yaml")
	}
	s, err := h.store(c)
	if err != nil {
		return err
	}
	out, err := s.Export(c, c.Param("lang"))
	if err != nil {
		return err
	}
	if format == "json" {
		return c.JSON(http.StatusOK, out)
	}
	data, err := yaml.Marshal(out)
	if err != nil {
		return err
	}
	return c.Blob(http.StatusOK, "application/yaml; charset=utf-8", data)
}

type previewResponse struct {
	Key      string `json:"key"`
	Language string `json:"language"`
	Text     string `json:"text"`
}

func (h *CatalogHandler) preview(c Context) error {
	var sel catalog.Selection
	if raw := c.Query("count"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return ErrBadRequest("count must be an integer", WithError(err))
		}
		sel.Count = &n
	}
	sel.Device = c.Query("device")

	s, err := h.store(c)
	if err != nil {
		return err
	}
	key, lang := c.Param("key"), c.Param("lang")
	text, err := s.Preview(c, key, lang, sel)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, previewResponse{Key: key, Language: lang, Text: text})
}
