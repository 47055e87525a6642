package v1

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/towercard/backend/internal/flow"
	"github.com/towercard/backend/internal/service"
	"github.com/towercard/backend/pkg/limiter"
	"github.com/towercard/backend/pkg/logger"
	"go.uber.org/zap"

	"github.com/gin-gonic/gin"
)

func (h *Handler) initFlowsRoutes(api *gin.RouterGroup) {
	// Per client IP. The code endpoint is left out: flow dispatches reach it
	// from this server's own address and it has a per-email cooldown.
	flows := api.Group("/flows", limiter.Limit(h.config.Limiter.RPS, h.config.Limiter.Burst, h.config.Limiter.TTL))

	flows.POST("", h.flowCreate)

	byID := flows.Group("/:id", h.flowIDMiddleware)
	byID.GET("", h.flowGet)
	byID.DELETE("", h.flowDelete)
	byID.POST("/identity", h.flowSubmitIdentity)
	byID.POST("/code", h.flowSubmitCode)
	byID.POST("/reset", h.flowReset)
	byID.GET("/card", h.flowCard)
	byID.GET("/ws", h.flowWatch)
}

type flowResponse struct {
	ID       uuid.UUID     `json:"id"`
	State    string        `json:"state"`
	Error    string        `json:"error"`
	Request  *flow.Request `json:"request,omitempty"`
	Identity string        `json:"identity,omitempty"`
	Session  *flow.Session `json:"session,omitempty"`
} // @name Flow

func newFlowResponse(id uuid.UUID, s flow.Snapshot) flowResponse {
	return flowResponse{
		ID:       id,
		State:    s.State.String(),
		Error:    s.Error,
		Request:  s.Request,
		Identity: s.Identity.String(),
		Session:  s.Session,
	}
}

// flowErrorResponse maps service and flow errors. Validation errors are
// part of the flow state and come back with the snapshot.
func (h *Handler) flowErrorResponse(c *gin.Context, id uuid.UUID, s flow.Snapshot, err error) {
	var verr *flow.ValidationError

	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, newFlowResponse(id, s))
	case errors.Is(err, service.ErrFlowNotFound):
		errorResponse(c, http.StatusNotFound, FlowNotFoundCode)
	case errors.Is(err, service.ErrFlowNotVerified):
		errorResponse(c, http.StatusConflict, FlowNotVerifiedCode)
	case errors.Is(err, flow.ErrInvalidState):
		errorResponse(c, http.StatusConflict, FlowInvalidStateCode)
	default:
		logger.Error("flow operation failed", zap.String("flow_id", id.String()), zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
	}
}

// @Summary Start verification flow
// @Tags Flows
// @Description Creates a flow waiting for an email
// @ModuleID flowCreate
// @Produce  json
// @Success 201 {object} flowResponse
// @Failure 500
// @Router /flows [post]
func (h *Handler) flowCreate(c *gin.Context) {
	id, snapshot, err := h.services.Flows.Create(c.Request.Context())
	if err != nil {
		logger.Error("create flow failed", zap.Error(err))
		c.AbortWithStatus(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusCreated, newFlowResponse(id, snapshot))
}

// @Summary Get flow
// @Tags Flows
// @ModuleID flowGet
// @Produce  json
// @Param id path string true "Flow ID"
// @Success 200 {object} flowResponse
// @Failure 404 {object} ErrorStruct
// @Router /flows/{id} [get]
func (h *Handler) flowGet(c *gin.Context) {
	id, err := h.getFlowID(c)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, FlowInvalidIDCode)
		return
	}

	snapshot, err := h.services.Flows.Get(c.Request.Context(), id)
	if err != nil {
		h.flowErrorResponse(c, id, snapshot, err)
		return
	}

	c.JSON(http.StatusOK, newFlowResponse(id, snapshot))
}

// @Summary Discard flow
// @Tags Flows
// @ModuleID flowDelete
// @Param id path string true "Flow ID"
// @Success 204
// @Failure 404 {object} ErrorStruct
// @Router /flows/{id} [delete]
func (h *Handler) flowDelete(c *gin.Context) {
	id, err := h.getFlowID(c)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, FlowInvalidIDCode)
		return
	}

	if err := h.services.Flows.Delete(c.Request.Context(), id); err != nil {
		h.flowErrorResponse(c, id, flow.Snapshot{}, err)
		return
	}

	c.Status(http.StatusNoContent)
}

type submitIdentityInput struct {
	Email string `json:"email"`
}

// @Summary Submit email
// @Tags Flows
// @Description Validates the email and asks for a verification code to be sent to it
// @ModuleID flowSubmitIdentity
// @Accept  json
// @Produce  json
// @Param id path string true "Flow ID"
// @Param input body submitIdentityInput true "email"
// @Success 200 {object} flowResponse
// @Failure 400 {object} ValidationErrorStruct
// @Failure 404 {object} ErrorStruct
// @Failure 409 {object} ErrorStruct
// @Failure 422 {object} flowResponse
// @Router /flows/{id}/identity [post]
func (h *Handler) flowSubmitIdentity(c *gin.Context) {
	id, err := h.getFlowID(c)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, FlowInvalidIDCode)
		return
	}

	var input submitIdentityInput
	if err := c.ShouldBindJSON(&input); err != nil {
		validationErrorResponse(c, err)
		return
	}

	snapshot, err := h.services.Flows.SubmitIdentity(c.Request.Context(), id, input.Email)
	if err != nil {
		h.flowErrorResponse(c, id, snapshot, err)
		return
	}

	c.JSON(http.StatusOK, newFlowResponse(id, snapshot))
}

type submitCodeInput struct {
	Digits []string `json:"digits" binding:"len=4,dive,codedigit"`
}

func (i submitCodeInput) code() flow.Code {
	var code flow.Code
	copy(code[:], i.Digits)
	return code
}

// @Summary Submit verification code
// @Tags Flows
// @ModuleID flowSubmitCode
// @Accept  json
// @Produce  json
// @Param id path string true "Flow ID"
// @Param input body submitCodeInput true "four code positions"
// @Success 200 {object} flowResponse
// @Failure 400 {object} ValidationErrorStruct
// @Failure 404 {object} ErrorStruct
// @Failure 409 {object} ErrorStruct
// @Failure 422 {object} flowResponse
// @Router /flows/{id}/code [post]
func (h *Handler) flowSubmitCode(c *gin.Context) {
	id, err := h.getFlowID(c)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, FlowInvalidIDCode)
		return
	}

	var input submitCodeInput
	if err := c.ShouldBindJSON(&input); err != nil {
		validationErrorResponse(c, err)
		return
	}

	snapshot, err := h.services.Flows.SubmitCode(c.Request.Context(), id, input.code())
	if err != nil {
		h.flowErrorResponse(c, id, snapshot, err)
		return
	}

	c.JSON(http.StatusOK, newFlowResponse(id, snapshot))
}

// @Summary Reset flow
// @Tags Flows
// @ModuleID flowReset
// @Produce  json
// @Param id path string true "Flow ID"
// @Success 200 {object} flowResponse
// @Failure 404 {object} ErrorStruct
// @Router /flows/{id}/reset [post]
func (h *Handler) flowReset(c *gin.Context) {
	id, err := h.getFlowID(c)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, FlowInvalidIDCode)
		return
	}

	snapshot, err := h.services.Flows.Reset(c.Request.Context(), id)
	if err != nil {
		h.flowErrorResponse(c, id, snapshot, err)
		return
	}

	c.JSON(http.StatusOK, newFlowResponse(id, snapshot))
}

// @Summary Get card
// @Tags Flows
// @Description Card fields for a verified flow
// @ModuleID flowCard
// @Produce  json
// @Param id path string true "Flow ID"
// @Success 200 {object} domain.Card
// @Failure 404 {object} ErrorStruct
// @Failure 409 {object} ErrorStruct
// @Router /flows/{id}/card [get]
func (h *Handler) flowCard(c *gin.Context) {
	id, err := h.getFlowID(c)
	if err != nil {
		errorResponse(c, http.StatusBadRequest, FlowInvalidIDCode)
		return
	}

	card, err := h.services.Flows.Card(c.Request.Context(), id)
	if err != nil {
		h.flowErrorResponse(c, id, flow.Snapshot{}, err)
		return
	}

	c.JSON(http.StatusOK, card)
}
