package handlers

import (
	"errors"
	"net/http"

	"auth_service/internal/metrics"
	"auth_service/internal/repository"
	"auth_service/internal/service"

	"github.com/gin-gonic/gin"
)

// registerRequest is the registration payload. Role must be one of the
// literal role strings; gin's binding layer enforces that before the service
// is reached.
type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role" binding:"required,oneof=ADMIN USER"`
}

// signInRequest is the credential pair. It is never persisted or logged.
type signInRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// bindJSONOrBadRequest tries to bind the request body into dst and writes a
// 400 envelope on failure. Returns false if the request was already handled.
func (h *Handler) bindJSONOrBadRequest(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		if h.log != nil {
			h.log.Infow("auth_bad_request_body", "err", err)
		}
		respondError(c, http.StatusBadRequest)
		return false
	}
	return true
}

// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  registerRequest  true  "username, password, role (ADMIN|USER)"
// @Success      201  {object}  apiResponse
// @Failure      400  {object}  apiResponse
// @Failure      500  {object}  apiResponse  "duplicate username"
// @Router       /api/auth/register [post]
func (h *Handler) register(c *gin.Context) {
	var input registerRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	err := h.services.Register(c.Request.Context(), input.Username, input.Password, input.Role)
	if err != nil {
		// Duplicate answers 500, not 409: that is the observed contract
		// the monolith's consumers already depend on.
		if errors.Is(err, repository.ErrDuplicateUser) {
			if h.log != nil {
				h.log.Infow("auth_register_duplicate", "username", input.Username)
			}
			metrics.RegistrationsTotal.WithLabelValues(metrics.OutcomeDuplicate).Inc()
			respondError(c, http.StatusInternalServerError)
			return
		}
		if errors.Is(err, service.ErrInvalidRole) {
			metrics.RegistrationsTotal.WithLabelValues(metrics.OutcomeInvalid).Inc()
			respondError(c, http.StatusBadRequest)
			return
		}
		if h.log != nil {
			h.log.Errorw("auth_register_failed", "username", input.Username, "err", err)
		}
		metrics.RegistrationsTotal.WithLabelValues(metrics.OutcomeError).Inc()
		respondError(c, http.StatusInternalServerError)
		return
	}

	metrics.RegistrationsTotal.WithLabelValues(metrics.OutcomeSuccess).Inc()
	respondSuccess(c, http.StatusCreated, gin.H{
		"username": input.Username,
		"role":     input.Role,
	})
}

// @Summary      Sign in and obtain a token
// @Description  Bad credentials answer 200 with status ERROR: the request
// @Description  succeeded, the outcome is negative.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  signInRequest  true  "username, password"
// @Success      200  {object}  apiResponse  "data holds the token"
// @Failure      400  {object}  apiResponse
// @Router       /api/auth/sign-in [post]
func (h *Handler) signIn(c *gin.Context) {
	var input signInRequest
	if ok := h.bindJSONOrBadRequest(c, &input); !ok {
		return
	}

	token, err := h.services.SignIn(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		// Unknown user and wrong password arrive here as the same error
		// and leave as the same response.
		if errors.Is(err, service.ErrInvalidCredentials) {
			if h.log != nil {
				h.log.Infow("auth_sign_in_rejected", "username", input.Username)
			}
			metrics.SignInsTotal.WithLabelValues(metrics.OutcomeInvalid).Inc()
			respondError(c, http.StatusOK)
			return
		}
		if h.log != nil {
			h.log.Errorw("auth_sign_in_failed", "username", input.Username, "err", err)
		}
		metrics.SignInsTotal.WithLabelValues(metrics.OutcomeError).Inc()
		respondError(c, http.StatusInternalServerError)
		return
	}

	metrics.SignInsTotal.WithLabelValues(metrics.OutcomeSuccess).Inc()
	respondSuccess(c, http.StatusOK, token)
}

// @Summary      Admin-only probe
// @Tags         auth
// @Produce      json
// @Success      200  {object}  apiResponse
// @Failure      401  {object}  apiResponse
// @Router       /api/auth/guarded [get]
// @Security     TokenAuth
func (h *Handler) guarded(c *gin.Context) {
	respondSuccess(c, http.StatusOK, gin.H{
		"username": c.GetString(ctxUsername),
		"role":     c.GetString(ctxRole),
	})
}
