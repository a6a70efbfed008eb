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

type VisitorHandler struct {
	visitorService *services.VisitorService
	consentService *services.ConsentService
}

func NewVisitorHandler(visitorService *services.VisitorService, consentService *services.ConsentService) *VisitorHandler {
	return &VisitorHandler{
		visitorService: visitorService,
		consentService: consentService,
	}
}

// Register 首次访问登记：姓名 + 同意项 + 客户端信号
func (h *VisitorHandler) Register(c *gin.Context) {
	var req models.VisitorCollectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "请求参数错误")
		return
	}

	if err := validator.ValidateStruct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	record, err := h.visitorService.Register(c.Request.Context(), &req)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	utils.SuccessWithMessage(c, "登记成功", record)
}

func (h *VisitorHandler) GetConsent(c *gin.Context) {
	state, err := h.consentService.State(c.Request.Context(), c.Param("clientId"))
	if err != nil {
		utils.InternalError(c)
		return
	}

	utils.Success(c, state)
}

func (h *VisitorHandler) ClearConsent(c *gin.Context) {
	if err := h.consentService.Clear(c.Request.Context(), c.Param("clientId")); err != nil {
		utils.InternalError(c)
		return
	}

	utils.SuccessWithMessage(c, "同意状态已清除", nil)
}

func (h *VisitorHandler) GetVisitors(c *gin.Context) {
	records, err := h.visitorService.GetVisitors(c.Request.Context())
	if err != nil {
		utils.InternalError(c)
		return
	}

	utils.Success(c, gin.H{"visitors": records})
}

func (h *VisitorHandler) DeleteVisitor(c *gin.Context) {
	if err := h.visitorService.DeleteVisitor(c.Request.Context(), c.Param("id")); err != nil {
		utils.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	utils.SuccessWithMessage(c, "删除成功", nil)
}

func (h *VisitorHandler) StreamVisitors(c *gin.Context) {
	id, ch := h.visitorService.Subscribe()
	defer h.visitorService.Unsubscribe(id)

	records, err := h.visitorService.GetVisitors(c.Request.Context())
	if err != nil {
		utils.InternalError(c)
		return
	}
	c.SSEvent("visitors", records)
	c.Writer.Flush()

	c.Stream(func(w io.Writer) bool {
		select {
		case snapshot, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent("visitors", snapshot)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
