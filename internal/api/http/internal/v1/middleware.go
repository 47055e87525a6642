package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const flowCtx = "flowId"

func (h *Handler) flowIDMiddleware(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		errorResponse(c, http.StatusBadRequest, FlowInvalidIDCode)
		return
	}

	c.Set(flowCtx, id)
}

func (h *Handler) getFlowID(c *gin.Context) (uuid.UUID, error) {
	id, ok := c.Get(flowCtx)
	if !ok {
		return uuid.Nil, errors.New("flow id not found")
	}

	flowID, ok := id.(uuid.UUID)
	if !ok {
		return uuid.Nil, errors.New("flow id has invalid type")
	}

	return flowID, nil
}
