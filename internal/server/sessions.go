package server

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

type messageRequest struct {
	Text string `json:"text"`
}

type buttonRequest struct {
	Tag string `json:"tag"`
}

// POST /api/v1/sessions
func (s *Server) handleCreateSession(c *gin.Context) {
	view, err := s.chat.Start(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"data": view})
}

// GET /api/v1/sessions/:id
func (s *Server) handleGetSession(c *gin.Context) {
	view, err := s.chat.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": view})
}

// POST /api/v1/sessions/:id/messages
func (s *Server) handlePostMessage(c *gin.Context) {
	var req messageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		s.writeError(c, fmt.Errorf("%w: text is required", errBadRequest))
		return
	}

	reply, err := s.chat.Ask(c.Request.Context(), c.Param("id"), req.Text)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": reply})
}

// POST /api/v1/sessions/:id/buttons
func (s *Server) handlePressButton(c *gin.Context) {
	var req buttonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		s.writeError(c, fmt.Errorf("%w: %v", errBadRequest, err))
		return
	}
	if strings.TrimSpace(req.Tag) == "" {
		s.writeError(c, fmt.Errorf("%w: tag is required", errBadRequest))
		return
	}

	reply, err := s.chat.Press(c.Request.Context(), c.Param("id"), req.Tag)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": reply})
}

// DELETE /api/v1/sessions/:id
func (s *Server) handleEndSession(c *gin.Context) {
	if err := s.chat.End(c.Request.Context(), c.Param("id")); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
