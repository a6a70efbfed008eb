package utils

import (
	"regexp"
	"stickyflow-backend/internal/models"
	"strings"
)

var (
	deviceInfoPattern = regexp.MustCompile(`\(([^)]+)\)`)
	mobileUAPattern   = regexp.MustCompile(`(?i)Android|webOS|iPhone|iPad|iPod|BlackBerry|IEMobile|Opera Mini`)
)

// 移动端判定的视口宽度上限（逻辑像素）
const mobileViewportWidth = 768

// GetBrowserName 按固定优先级匹配浏览器标识。
// 顺序不能调整：Chrome 的 UA 同时带 Safari 标识，Edge 的 UA 同时带 Chrome 标识。
func GetBrowserName(userAgent string) string {
	switch {
	case strings.Contains(userAgent, "Firefox"):
		return "Firefox"
	case strings.Contains(userAgent, "Edg"):
		return "Edge"
	case strings.Contains(userAgent, "Chrome"):
		return "Chrome"
	case strings.Contains(userAgent, "Safari"):
		return "Safari"
	case strings.Contains(userAgent, "Opera"), strings.Contains(userAgent, "OPR"):
		return "Opera"
	default:
		return models.UnknownBrowser
	}
}

// GetDeviceInfo 取 UA 中第一个括号分组的内容，例如 (Windows NT 10.0; Win64; x64)
func GetDeviceInfo(userAgent string) string {
	matches := deviceInfoPattern.FindStringSubmatch(userAgent)
	if len(matches) > 1 && matches[1] != "" {
		return matches[1]
	}
	return models.UnknownDevice
}

// IsMobileDevice 双信号判定：UA 命中移动端标识，或视口宽度不超过 768
func IsMobileDevice(userAgent string, viewportWidth int) bool {
	return mobileUAPattern.MatchString(userAgent) || viewportWidth <= mobileViewportWidth
}
