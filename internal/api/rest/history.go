package rest

import (
	"net/http"
	"strconv"
	"time"

	"github.com/KevinKickass/SunSpecBridge/internal/storage"
	"github.com/KevinKickass/SunSpecBridge/internal/types"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	defaultHistoryLimit = 100
	maxHistoryLimit     = 1000
)

func limitQuery(c *gin.Context) (int, error) {
	raw := c.Query("limit")
	if raw == "" {
		return defaultHistoryLimit, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return 0, strconv.ErrSyntax
	}
	if n > maxHistoryLimit {
		n = maxHistoryLimit
	}
	return n, nil
}

// store answers 404 when persistence is disabled.
func (s *Server) store(c *gin.Context) (*storage.PostgresClient, bool) {
	store := s.lm.Storage()
	if store == nil {
		c.JSON(http.StatusNotFound, types.NewErrorResponse(types.CodeNotFound, "Storage disabled", nil))
		return nil, false
	}
	return store, true
}

func (s *Server) listSessions(c *gin.Context) {
	limit, err := limitQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.CodeBadRequest, "Invalid limit", c.Query("limit")))
		return
	}
	store, ok := s.store(c)
	if !ok {
		return
	}

	sessions, err := store.ListSessions(c.Request.Context(), limit)
	if err != nil {
		s.logger.Error("Failed to list sessions", zap.Error(err))
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.CodeInternal, "Failed to list sessions", err.Error()))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sessions": sessions,
		"count":    len(sessions),
	})
}

// readingHistory returns stored readings of one register, newest first.
// since is RFC 3339 and defaults to one hour ago.
func (s *Server) readingHistory(c *gin.Context) {
	register := c.Param("register")

	since := time.Now().Add(-time.Hour)
	if raw := c.Query("since"); raw != "" {
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.CodeBadRequest, "Invalid since", err.Error()))
			return
		}
		since = t
	}
	limit, err := limitQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, types.NewErrorResponse(types.CodeBadRequest, "Invalid limit", c.Query("limit")))
		return
	}

	store, ok := s.store(c)
	if !ok {
		return
	}

	records, err := store.ReadingHistory(c.Request.Context(), register, since, limit)
	if err != nil {
		s.logger.Error("Failed to load reading history",
			zap.String("register", register),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, types.NewErrorResponse(types.CodeInternal, "Failed to load history", err.Error()))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"register": register,
		"since":    since.UTC(),
		"readings": records,
		"count":    len(records),
	})
}
