package handlers

import (
	"net/http"
	"stickyflow-backend/internal/config"
	"stickyflow-backend/internal/models"
	"stickyflow-backend/internal/utils"
	"stickyflow-backend/pkg/validator"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	cfg *config.Config
}

func NewAdminHandler(cfg *config.Config) *AdminHandler {
	return &AdminHandler{cfg: cfg}
}

// Login 共享口令明文比对。后续管理请求在 X-Admin-Secret 头里带同一口令。
func (h *AdminHandler) Login(c *gin.Context) {
	var req models.AdminLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "请求参数错误")
		return
	}

	if err := validator.ValidateStruct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	if h.cfg.Admin.Password == "" || req.Password != h.cfg.Admin.Password {
		utils.Unauthorized(c, "密码错误")
		return
	}

	utils.SuccessWithMessage(c, "登录成功", nil)
}
