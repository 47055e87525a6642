package v1

import (
	"github.com/towercard/backend/internal/config"
	"github.com/towercard/backend/internal/service"

	"github.com/gin-gonic/gin"
)

// @title Tower Card API
// @version 1.0
// @description Identity verification flow behind the Tower Card app

// @BasePath /api/v1

type Handler struct {
	services *service.Services
	config   *config.Config
}

func NewHandler(
	services *service.Services,
	config *config.Config,
) *Handler {
	return &Handler{
		services: services,
		config:   config,
	}
}

func (h *Handler) Init(api *gin.RouterGroup) {
	v1 := api.Group("v1")

	h.initFlowsRoutes(v1)
	h.initCodesRoutes(v1)
}
