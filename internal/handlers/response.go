package handlers

import "github.com/gin-gonic/gin"

// Response status literals of the wire contract.
const (
	statusSuccess = "SUCCESS"
	statusError   = "ERROR"
)

// apiResponse is the envelope every auth endpoint answers with.
type apiResponse struct {
	Status string `json:"status"`
	Data   any    `json:"data,omitempty"`
}

func respondSuccess(c *gin.Context, httpCode int, data any) {
	c.JSON(httpCode, apiResponse{Status: statusSuccess, Data: data})
}

// respondError writes the uniform error envelope. The body carries no
// reason: callers that must not leak failure causes (sign-in, the guard)
// rely on that.
func respondError(c *gin.Context, httpCode int) {
	c.JSON(httpCode, apiResponse{Status: statusError})
}
