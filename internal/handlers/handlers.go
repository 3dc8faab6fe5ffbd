package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lib/pq"

	"netops-portal/internal/config"
)

// Constants for pagination and sorting
const (
	DefaultListLimit   = 10
	MaxListLimit       = 100
	DefaultSortOrder   = "asc"
	DefaultSortByField = "created_at"
)

var cfg *config.Config

// Init wires the handler package to the loaded configuration. Must be called
// before routes are served.
func Init(c *config.Config) {
	cfg = c
}

// actorID resolves the acting user from the X-Actor-ID header. Nil when the
// header is absent or malformed; history falls back to the system actor.
func actorID(c *gin.Context) *uuid.UUID {
	raw := c.GetHeader("X-Actor-ID")
	if raw == "" {
		return nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return nil
	}
	return &id
}

// isUniqueViolation reports whether err is a PostgreSQL unique constraint
// violation (code 23505).
func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == "23505"
}
