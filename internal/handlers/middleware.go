package handlers

import (
	"net/http"

	"auth_service/internal/metrics"

	"github.com/gin-gonic/gin"
)

// Context keys set by the guard for downstream handlers.
const (
	ctxUsername = "username"
	ctxRole     = "role"
)

// requireRole is the access guard. It verifies the token and checks the
// claimed role against the allowed set for the route. Every deny path
// produces the identical 401 envelope; which sub-reason fired is visible
// only in logs and metrics.
//
// The Authorization header value is the token itself, replayed verbatim as
// the client received it from sign-in. There is no scheme prefix.
func (h *Handler) requireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}

	return func(c *gin.Context) {
		raw := c.GetHeader("Authorization")
		if raw == "" {
			h.deny(c, metrics.DecisionNoToken, nil)
			return
		}

		claims, err := h.services.VerifyToken(raw)
		if err != nil {
			h.deny(c, metrics.DecisionBadToken, err)
			return
		}

		if _, ok := allowed[claims.Role]; !ok {
			h.deny(c, metrics.DecisionWrongRole, nil)
			return
		}

		metrics.GuardDecisionsTotal.WithLabelValues(metrics.DecisionAllow).Inc()
		c.Set(ctxUsername, claims.Subject)
		c.Set(ctxRole, claims.Role)
		c.Next()
	}
}

// deny aborts with the uniform rejection and records the internal reason.
func (h *Handler) deny(c *gin.Context, decision string, err error) {
	if h.log != nil {
		h.log.Debugw("guard_denied", "decision", decision, "err", err)
	}
	metrics.GuardDecisionsTotal.WithLabelValues(decision).Inc()
	c.AbortWithStatusJSON(http.StatusUnauthorized, apiResponse{Status: statusError})
}
