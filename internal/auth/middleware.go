package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"auction-marketplace/internal/auctionerrors"
	"auction-marketplace/internal/models"
	"auction-marketplace/utils"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
)

const actorKey = "actor"

// Middleware authenticates the bearer token and stores the caller on the context
func (m *Manager) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		token, found := strings.CutPrefix(header, "Bearer ")
		if !found || strings.TrimSpace(token) == "" {
			utils.AbortWithError(c, http.StatusUnauthorized, auctionerrors.ErrUnauthorized, "missing bearer token")
			return
		}

		actor, err := m.Verify(strings.TrimSpace(token))
		if err != nil {
			utils.Warn("auth: rejected token", map[string]any{"path": c.Request.URL.Path, "error": err.Error()})
			utils.AbortWithError(c, http.StatusUnauthorized, auctionerrors.ErrUnauthorized, "invalid or expired session")
			return
		}

		SetActor(c, actor)
		c.Next()
	}
}

// ProfileLookup loads the stored profile behind a session
type ProfileLookup interface {
	GetProfile(ctx context.Context, id string) (models.Profile, error)
}

// ResolveProfile swaps the token's claims for the stored profile.
// Sessions whose profile no longer exists get 401.
func ResolveProfile(profiles ProfileLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := ActorFrom(c)
		if !ok {
			utils.AbortWithError(c, http.StatusUnauthorized, auctionerrors.ErrUnauthorized, "authentication required")
			return
		}

		profile, err := profiles.GetProfile(c.Request.Context(), actor.UserID)
		if errors.Is(err, auctionerrors.ErrProfileNotFound) {
			utils.Warn("auth: session for deleted profile", map[string]any{"userId": actor.UserID, "path": c.Request.URL.Path})
			utils.AbortWithError(c, http.StatusUnauthorized, auctionerrors.ErrUnauthorized, "invalid or expired session")
			return
		}
		if err != nil {
			utils.Error("auth: failed to load profile", map[string]any{"userId": actor.UserID, "error": err.Error()})
			utils.AbortWithError(c, http.StatusInternalServerError, err, "internal server error")
			return
		}

		SetActor(c, models.Actor{UserID: profile.ID, Email: profile.Email, Role: profile.Role})
		c.Next()
	}
}

// RequireRole lets the request through only for the listed roles
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor, ok := ActorFrom(c)
		if !ok {
			utils.AbortWithError(c, http.StatusUnauthorized, auctionerrors.ErrUnauthorized, "authentication required")
			return
		}
		if !lo.Contains(roles, actor.Role) {
			utils.AbortWithError(c, http.StatusForbidden, auctionerrors.ErrForbidden, "insufficient role")
			return
		}
		c.Next()
	}
}

// SetActor stores the authenticated caller on the request context
func SetActor(c *gin.Context, actor models.Actor) {
	c.Set(actorKey, actor)
}

// ActorFrom returns the authenticated caller, if any
func ActorFrom(c *gin.Context) (models.Actor, bool) {
	v, ok := c.Get(actorKey)
	if !ok {
		return models.Actor{}, false
	}
	actor, ok := v.(models.Actor)
	return actor, ok
}
