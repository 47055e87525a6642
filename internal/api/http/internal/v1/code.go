package v1

import (
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/towercard/backend/internal/service"
	"github.com/towercard/backend/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

func (h *Handler) initCodesRoutes(api *gin.RouterGroup) {
	api.POST("/codes", h.codeSend)
}

type sendCodeInput struct {
	Email string `json:"email" binding:"required,email"`
}

// @Summary Send verification code
// @Tags Codes
// @Description Generates a verification code and emails it
// @ModuleID codeSend
// @Accept  json
// @Produce  json
// @Param input body sendCodeInput true "recipient"
// @Success 200
// @Failure 400 {object} ValidationErrorStruct
// @Failure 429 {object} ErrorStruct "Retry-After header holds seconds until the next code"
// @Failure 500 {object} ErrorStruct
// @Router /codes [post]
func (h *Handler) codeSend(c *gin.Context) {
	var input sendCodeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		validationErrorResponse(c, err)
		return
	}

	err := h.services.Codes.Send(c.Request.Context(), input.Email)
	switch {
	case err == nil:
		c.Status(http.StatusOK)
	case errors.Is(err, service.ErrInvalidEmail):
		errorResponse(c, http.StatusBadRequest, CodeInvalidEmailCode)
	case errors.Is(err, service.ErrCodeCooldown):
		var cerr *service.CooldownError
		if errors.As(err, &cerr) && cerr.RetryAfter > 0 {
			c.Header("Retry-After", strconv.Itoa(int(math.Ceil(cerr.RetryAfter.Seconds()))))
		}
		errorResponse(c, http.StatusTooManyRequests, CodeCooldownCode)
	default:
		logger.Error("send verification code failed", zap.String("email", input.Email), zap.Error(err))
		errorResponse(c, http.StatusInternalServerError, CodeSendFailedCode)
	}
}
