package server

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/policypilot/policypilot/internal/chat"
	"github.com/policypilot/policypilot/internal/llm"
)

// Engine is the conversation orchestrator consumed by the chat route.
type Engine interface {
	Advance(ctx context.Context, message string, history []llm.Message) (chat.Reply, error)
}

// ChatHandler exposes the conversational endpoint.
type ChatHandler struct {
	Engine Engine
	Logger *log.Logger
}

func (h *ChatHandler) Register(g *echo.Group) {
	g.POST("/chat", h.chat)
}

func (h *ChatHandler) chat(c echo.Context) error {
	var req ChatRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if strings.TrimSpace(req.Message) == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "message is required")
	}

	reply, err := h.Engine.Advance(c.Request().Context(), req.Message, req.History)
	if err != nil {
		h.Logger.Printf("chat turn failed: %v", err)
		chatTurns.WithLabelValues("error").Inc()
		return echo.NewHTTPError(http.StatusInternalServerError,
			"I encountered an error while processing your request. Please try again.")
	}

	if reply.Artifact != nil {
		chatTurns.WithLabelValues("artifact").Inc()
	} else {
		chatTurns.WithLabelValues("reply").Inc()
	}
	return c.JSON(http.StatusOK, ChatResponse{Response: reply.Text, Policy: reply.Artifact})
}
