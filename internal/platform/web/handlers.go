package web

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vovakirdan/strike5/internal/engine"
	"github.com/vovakirdan/strike5/internal/games/strike5"
	"github.com/vovakirdan/strike5/internal/registry"
)

const serviceName = "strike5"

// CreateGameRequest is the optional body of POST /games.
type CreateGameRequest struct {
	Seed    *int64 `json:"seed"`
	Variant string `json:"variant"`
}

// MoveRequest is the body of a move, over HTTP or websocket.
type MoveRequest struct {
	Start *engine.Cell `json:"start"`
	End   *engine.Cell `json:"end"`
}

// MoveResponse pairs a turn result with the state after it.
type MoveResponse struct {
	Result engine.TurnResult `json:"result"`
	State  GameView          `json:"state"`
}

func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":   "ok",
		"service":  serviceName,
		"sessions": s.sessions.Len(),
		"uptime":   time.Since(s.started).String(),
	})
}

func (s *Server) handleCreateGame(c *gin.Context) {
	var req CreateGameRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
			return
		}
	}

	sess, err := s.sessions.Create(req.Variant, req.Seed)
	switch {
	case errors.Is(err, registry.ErrUnknownGame):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	case errors.Is(err, ErrTooManySessions):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
		return
	case err != nil:
		s.logger.Error("cannot create session", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot create game"})
		return
	}

	view := sess.View()
	c.JSON(http.StatusCreated, gin.H{"id": sess.ID, "state": view})
}

func (s *Server) handleGetGame(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, sess.View())
}

func (s *Server) handleMove(c *gin.Context) {
	sess, ok := s.session(c)
	if !ok {
		return
	}

	var req MoveRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Start == nil || req.End == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "body must have start and end as [row, col]"})
		return
	}

	res, view, err := sess.Move(*req.Start, *req.End)
	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, engine.ErrInvalidCell):
			status = http.StatusBadRequest
		case errors.Is(err, ErrSessionNotFound):
			status = http.StatusNotFound
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, MoveResponse{Result: res, State: view})
}

func (s *Server) handleDeleteGame(c *gin.Context) {
	if err := s.sessions.Delete(c.Param("id")); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) handleScores(c *gin.Context) {
	variant := c.Param("variant")
	if _, ok := strike5.LookupVariant(variant); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown variant"})
		return
	}
	if s.opts.Scores == nil {
		c.JSON(http.StatusOK, gin.H{"variant": variant, "scores": []any{}})
		return
	}

	limit := 10
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = min(n, 100)
	}

	entries, err := s.opts.Scores.TopScores(variant, limit)
	if err != nil {
		s.logger.Error("cannot load scores", "variant", variant, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "cannot load scores"})
		return
	}

	scores := make([]gin.H, 0, len(entries))
	for i, e := range entries {
		scores = append(scores, gin.H{
			"rank":       i + 1,
			"score":      e.Score,
			"moves":      e.Moves,
			"created_at": e.CreatedAt.Time,
		})
	}
	c.JSON(http.StatusOK, gin.H{"variant": variant, "scores": scores})
}

// session resolves :id or writes a 404.
func (s *Server) session(c *gin.Context) (*Session, bool) {
	sess, err := s.sessions.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
		return nil, false
	}
	return sess, true
}
