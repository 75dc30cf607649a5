package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Arviva-Admin/portfolio-backend/internal/catalog/domain"
)

// webhookDescription is the default used for pushes that omit one.
const webhookDescription = "AI-generated from IdeaLab"

type webhookReq struct {
	Name          string   `json:"name"`
	Description   string   `json:"description"`
	LogoURL       *string  `json:"logoUrl"`
	ScreenshotURL *string  `json:"screenshotUrl"`
	LiveURL       string   `json:"liveUrl"`
	GithubURL     string   `json:"githubUrl"`
	TechStack     []string `json:"techStack"`
}

// RegisterWebhook attaches the IdeaLab push endpoint.
func (h *Handler) RegisterWebhook(rg *gin.RouterGroup) {
	rg.POST("/idealab", h.webhook)
}

// webhook accepts a single externally-pushed project description and
// persists it with defaulting applied.
func (h *Handler) webhook(c *gin.Context) {
	if h.webhookKey != "" && c.GetHeader("X-API-Key") != h.webhookKey {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid API key"})
		return
	}

	var req webhookReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name is required"})
		return
	}

	description := req.Description
	if description == "" {
		description = webhookDescription
	}
	techStack := req.TechStack
	if techStack == nil {
		techStack = []string{}
	}

	p, err := h.service.Add(c.Request.Context(), domain.Project{
		Name:          req.Name,
		Description:   description,
		LogoURL:       req.LogoURL,
		ScreenshotURL: req.ScreenshotURL,
		LiveURL:       req.LiveURL,
		GithubURL:     req.GithubURL,
		TechStack:     techStack,
		Status:        domain.DefaultStatus,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"project": p,
		"message": "Project added to portfolio",
	})
}
