package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"stickyflow-backend/internal/config"
	"strings"
	"time"
)

// 所有上传失败统一带这个前缀，调用方只见一种错误形态
const uploadErrPrefix = "上传失败"

type imageHostResponse struct {
	Success bool `json:"success"`
	Data    *struct {
		URL string `json:"url"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// UploadService 把图片转存到外部图床，只留公开 URL
type UploadService struct {
	cfg    *config.Config
	client *http.Client
}

func NewUploadService(cfg *config.Config) *UploadService {
	return &UploadService{
		cfg:    cfg,
		client: &http.Client{Timeout: 60 * time.Second},
	}
}

func uploadError(format string, args ...interface{}) error {
	return fmt.Errorf(uploadErrPrefix+": "+format, args...)
}

// Upload 校验通过前不发任何网络请求
func (s *UploadService) Upload(ctx context.Context, file multipart.File, header *multipart.FileHeader) (string, error) {
	if header == nil || file == nil {
		return "", uploadError("未选择文件")
	}
	if header.Size > s.cfg.File.MaxImageSize {
		return "", uploadError("文件大小超过 32MB 限制")
	}
	mimeType := strings.ToLower(header.Header.Get("Content-Type"))
	if !s.cfg.IsAllowedImageType(mimeType) {
		return "", uploadError("不支持的文件类型，仅限 JPEG、PNG、GIF、WebP")
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("image", header.Filename)
	if err != nil {
		return "", uploadError("%v", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return "", uploadError("读取文件失败: %v", err)
	}
	if err := writer.WriteField("key", s.cfg.ImageHost.APIKey); err != nil {
		return "", uploadError("%v", err)
	}
	if err := writer.Close(); err != nil {
		return "", uploadError("%v", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.ImageHost.URL, &body)
	if err != nil {
		return "", uploadError("%v", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := s.client.Do(req)
	if err != nil {
		return "", uploadError("%v", err)
	}
	defer resp.Body.Close()

	var hostResp imageHostResponse
	decodeErr := json.NewDecoder(resp.Body).Decode(&hostResp)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// 尽量带上图床返回的错误信息，解析不出来就用通用提示
		if decodeErr == nil && hostResp.Error != nil && hostResp.Error.Message != "" {
			return "", uploadError("%s", hostResp.Error.Message)
		}
		return "", uploadError("图床服务返回状态码 %d", resp.StatusCode)
	}

	if decodeErr != nil {
		return "", uploadError("图床响应解析失败: %v", decodeErr)
	}
	if !hostResp.Success {
		return "", uploadError("图床处理未成功")
	}
	if hostResp.Data == nil || hostResp.Data.URL == "" {
		return "", uploadError("图床响应缺少图片地址")
	}

	return hostResp.Data.URL, nil
}
