package handlers

import (
	"net/http"
	"stickyflow-backend/internal/services"
	"stickyflow-backend/internal/utils"

	"github.com/gin-gonic/gin"
)

type UploadHandler struct {
	uploadService *services.UploadService
}

func NewUploadHandler(uploadService *services.UploadService) *UploadHandler {
	return &UploadHandler{uploadService: uploadService}
}

// UploadImage 接收便签隐藏图，转存图床后返回公开地址
func (h *UploadHandler) UploadImage(c *gin.Context) {
	file, header, err := c.Request.FormFile("image")
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "未选择文件")
		return
	}
	defer file.Close()

	url, err := h.uploadService.Upload(c.Request.Context(), file, header)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, err.Error())
		return
	}

	utils.SuccessWithMessage(c, "上传成功", gin.H{"url": url})
}
