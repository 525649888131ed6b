package server

import (
	"net/http"
	"strings"

	"github.com/krishigpt/server/internal/advisor/model"
	"github.com/krishigpt/server/internal/metrics"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

type chatRequest struct {
	UserID  string `json:"user_id"`
	Message string `json:"message"`

	// Optional facts from the client, used for growth-stage estimation.
	Crop       string `json:"crop"`
	SowingDate string `json:"sowing_date"`
}

type chatResponse struct {
	Success  bool   `json:"success"`
	Response string `json:"response,omitempty"`
	UserID   string `json:"user_id,omitempty"`
	Error    string `json:"error,omitempty"`
}

func (s *Server) chat(c echo.Context) error {
	if s.engine == nil {
		return c.JSON(http.StatusServiceUnavailable, chatResponse{Success: false, Error: "AI Engine not initialized"})
	}

	var req chatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, chatResponse{Success: false, Error: "invalid request body"})
	}

	message := strings.TrimSpace(req.Message)
	if message == "" {
		return c.JSON(http.StatusBadRequest, chatResponse{Success: false, Error: "Message is required"})
	}

	userID := req.UserID
	if userID == "" {
		userID = uuid.NewString()
	}

	var meta *model.Meta
	if req.SowingDate != "" || req.Crop != "" {
		meta = &model.Meta{CropKey: req.Crop, SowingDate: req.SowingDate}
	}

	metrics.RequestsTotal.WithLabelValues("web").Inc()
	answer := s.engine.Respond(c.Request().Context(), userID, message, meta)

	return c.JSON(http.StatusOK, chatResponse{Success: true, Response: answer, UserID: userID})
}

func (s *Server) clearHistory(c echo.Context) error {
	var req chatRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, chatResponse{Success: false, Error: "invalid request body"})
	}

	if s.engine != nil && req.UserID != "" {
		s.engine.ClearHistory(c.Request().Context(), req.UserID)
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "message": "History cleared"})
}

func (s *Server) quickInfo(c echo.Context) error {
	if s.engine == nil {
		return c.JSON(http.StatusServiceUnavailable, chatResponse{Success: false, Error: "AI not ready"})
	}

	info, ok := s.engine.QuickInfo(c.Param("topic"))
	if !ok {
		return c.JSON(http.StatusNotFound, chatResponse{Success: false, Error: "Topic not found"})
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "info": info})
}
