package handlers

import (
	"io"
	"net/http"
	"stickyflow-backend/internal/models"
	"stickyflow-backend/internal/services"
	"stickyflow-backend/internal/utils"
	"stickyflow-backend/pkg/validator"

	"github.com/gin-gonic/gin"
)

type HelpHandler struct {
	helpService *services.HelpService
}

func NewHelpHandler(helpService *services.HelpService) *HelpHandler {
	return &HelpHandler{helpService: helpService}
}

func (h *HelpHandler) GetHelp(c *gin.Context) {
	help, err := h.helpService.Get(c.Request.Context())
	if err != nil {
		utils.InternalError(c)
		return
	}

	utils.Success(c, help)
}

func (h *HelpHandler) UpdateHelp(c *gin.Context) {
	var req models.HelpUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "请求参数错误")
		return
	}

	if err := validator.ValidateStruct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	help, err := h.helpService.Set(c.Request.Context(), req.Content)
	if err != nil {
		utils.InternalError(c)
		return
	}

	utils.SuccessWithMessage(c, "更新成功", help)
}

func (h *HelpHandler) StreamHelp(c *gin.Context) {
	id, ch := h.helpService.Subscribe()
	defer h.helpService.Unsubscribe(id)

	help, err := h.helpService.Get(c.Request.Context())
	if err != nil {
		utils.InternalError(c)
		return
	}
	c.SSEvent("help", help)
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case snapshot, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent("help", snapshot)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
