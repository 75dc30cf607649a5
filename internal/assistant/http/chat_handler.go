package http

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Arviva-Admin/portfolio-backend/internal/assistant/llm"
	"github.com/Arviva-Admin/portfolio-backend/internal/assistant/service"
)

// Handler bundles the dependencies for assistant HTTP endpoints.
type Handler struct {
	chat *service.ChatService
}

func New(chat *service.ChatService) *Handler {
	return &Handler{chat: chat}
}

// Register attaches the chat route to the given router group.
func (h *Handler) Register(rg *gin.RouterGroup) {
	rg.POST("/chat", h.postChat)
}

type chatReq struct {
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func (h *Handler) postChat(c *gin.Context) {
	var req chatReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Messages array required"})
		return
	}

	messages := make([]llm.Message, 0, len(req.Messages))
	for _, m := range req.Messages {
		messages = append(messages, llm.Message{Role: m.Role, Content: m.Content})
	}

	result, err := h.chat.Turn(c.Request.Context(), messages)
	if err != nil {
		h.writeError(c, err)
		return
	}

	if result.FunctionCalled != "" {
		resp := gin.H{
			"message":        result.Message,
			"functionCalled": result.FunctionCalled,
			"result":         result.Result,
		}
		if len(result.SkippedCalls) > 0 {
			resp["skippedCalls"] = result.SkippedCalls
		}
		c.JSON(http.StatusOK, resp)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      result.Message,
		"capabilities": result.Capabilities,
	})
}

// writeError maps turn failures to statuses. Detail is logged server-side;
// the response body stays generic for anything unexpected.
func (h *Handler) writeError(c *gin.Context, err error) {
	var upstream *llm.UpstreamError

	switch {
	case errors.Is(err, service.ErrInvalidRequest):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Messages array required"})
	case errors.As(err, &upstream):
		log.Printf("[chat] upstream failure: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{
			"error":   "upstream error",
			"message": http.StatusText(upstream.Status),
		})
	default:
		log.Printf("[chat] turn failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
