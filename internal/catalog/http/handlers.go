package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Arviva-Admin/portfolio-backend/internal/catalog/domain"
	"github.com/Arviva-Admin/portfolio-backend/internal/importer"
)

type createReq struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	LogoURL       *string  `json:"logoUrl"`
	ScreenshotURL *string  `json:"screenshotUrl"`
	LiveURL       string   `json:"liveUrl"`
	GithubURL     string   `json:"githubUrl"`
	TechStack     []string `json:"techStack"`
}

func (h *Handler) create(c *gin.Context) {
	var req createReq
	if err := c.ShouldBindJSON(&req); err != nil || strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	p, err := h.service.Add(c.Request.Context(), domain.Project{
		Name:          strings.TrimSpace(req.Name),
		Description:   req.Description,
		LogoURL:       req.LogoURL,
		ScreenshotURL: req.ScreenshotURL,
		LiveURL:       req.LiveURL,
		GithubURL:     req.GithubURL,
		TechStack:     req.TechStack,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"ok": true, "project": p})
}

func (h *Handler) list(c *gin.Context) {
	items, err := h.service.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "projects": items})
}

type updateReq struct {
	Name          *string   `json:"name"`
	Description   *string   `json:"description"`
	LogoURL       *string   `json:"logoUrl"`
	ScreenshotURL *string   `json:"screenshotUrl"`
	LiveURL       *string   `json:"liveUrl"`
	GithubURL     *string   `json:"githubUrl"`
	TechStack     *[]string `json:"techStack"`
	Status        *string   `json:"status"`
}

func (h *Handler) update(c *gin.Context) {
	id := c.Param("id")

	var req updateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}
	if req.Name != nil && strings.TrimSpace(*req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "name must not be empty"})
		return
	}

	err := h.service.Update(c.Request.Context(), id, domain.ProjectPatch{
		Name:          req.Name,
		Description:   req.Description,
		LogoURL:       req.LogoURL,
		ScreenshotURL: req.ScreenshotURL,
		LiveURL:       req.LiveURL,
		GithubURL:     req.GithubURL,
		TechStack:     req.TechStack,
		Status:        req.Status,
	})
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

func (h *Handler) delete(c *gin.Context) {
	id := c.Param("id")

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"ok": false, "error": "project not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"ok": true})
}

type importReq struct {
	Payload string `json:"payload"`
}

func (h *Handler) importBatch(c *gin.Context) {
	var req importReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": "invalid body"})
		return
	}

	result, err := h.importer.Import(c.Request.Context(), req.Payload)
	if err != nil {
		var parseErr *importer.ParseError
		var shapeErr *importer.ShapeError
		switch {
		case errors.As(err, &parseErr), errors.As(err, &shapeErr), errors.Is(err, importer.ErrEmptyBatch):
			c.JSON(http.StatusBadRequest, gin.H{"ok": false, "error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"ok": false, "error": err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"ok":       true,
		"imported": result.Imported,
		"projects": result.Projects,
	})
}
