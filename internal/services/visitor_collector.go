package services

import (
	"context"
	"fmt"
	"stickyflow-backend/internal/models"
	"stickyflow-backend/internal/utils"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// 定位等待上限，不接受缓存的旧位置
const geoTimeout = 5 * time.Second

// Environment 一次采集可见的客户端能力。必选信号直接返回值，
// 可选能力通过第二个返回值或 error 表示缺失。
type Environment interface {
	UserAgent() string
	Platform() string
	ScreenSize() models.Dimensions
	ViewportSize() models.Dimensions
	Language() string
	Timezone() string
	TouchPoints() int
	Referrer() string
	CookiesEnabled() bool
	DeviceMemory() (float64, bool)
	HardwareConcurrency() (int, bool)
	Connection() (models.ConnectionInfo, bool)
	Battery(ctx context.Context) (models.BatteryInfo, error)
	HasGeolocation() bool
	CurrentPosition(ctx context.Context) (models.GeoPoint, error)
}

// enrichStep 可选补充步骤。任何一步失败只记日志，绝不中断整次采集。
type enrichStep struct {
	name  string
	apply func(ctx context.Context, env Environment, rec *models.VisitorRecord) error
}

// VisitorCollector 把客户端信号组装成一条完整的访客档案。
// 记录整体组装完成后才交给调用方落库，不存在半成品写入。
type VisitorCollector struct {
	resolver IPResolver
}

func NewVisitorCollector(resolver IPResolver) *VisitorCollector {
	return &VisitorCollector{resolver: resolver}
}

func (c *VisitorCollector) Collect(ctx context.Context, name string, consentGeo bool, env Environment) (*models.VisitorRecord, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("访客名称不能为空")
	}

	userAgent := env.UserAgent()

	// 必选字段：同步读取，永远存在
	rec := &models.VisitorRecord{
		ID:             uuid.New().String(),
		Name:           name,
		Timestamp:      time.Now().UnixMilli(),
		UserAgent:      userAgent,
		Platform:       env.Platform(),
		BrowserName:    utils.GetBrowserName(userAgent),
		DeviceInfo:     utils.GetDeviceInfo(userAgent),
		Screen:         env.ScreenSize(),
		Viewport:       env.ViewportSize(),
		Language:       env.Language(),
		Timezone:       env.Timezone(),
		TouchSupport:   env.TouchPoints() > 0,
		PageReferrer:   env.Referrer(),
		IsMobile:       utils.IsMobileDevice(userAgent, env.ViewportSize().W),
		CookiesEnabled: env.CookiesEnabled(),
		GeoPermission:  models.GeoPermissionPrompt,
		Consent: models.ConsentInfo{
			DeviceData: true,
			Geo:        consentGeo,
		},
	}
	if rec.PageReferrer == "" {
		rec.PageReferrer = models.DirectReferrer
	}

	// 可选字段：逐步补充，每步各自兜底
	steps := []enrichStep{
		{name: "deviceMemory", apply: applyDeviceMemory},
		{name: "hardwareConcurrency", apply: applyHardwareConcurrency},
		{name: "connection", apply: applyConnection},
		{name: "battery", apply: applyBattery},
	}
	for _, step := range steps {
		if err := step.apply(ctx, env, rec); err != nil {
			logrus.WithField("step", step.name).WithError(err).Debug("采集步骤失败，跳过")
		}
	}

	c.resolveGeo(ctx, consentGeo, env, rec)

	// 公网 IP 查询失败同样不影响整体结果
	if ip, err := c.resolver.LookupIP(ctx); err != nil {
		logrus.WithError(err).Debug("公网 IP 查询失败")
		rec.IPAddress = models.IPUnavailable
	} else {
		rec.IPAddress = ip
	}

	return rec, nil
}

func applyDeviceMemory(_ context.Context, env Environment, rec *models.VisitorRecord) error {
	if mem, ok := env.DeviceMemory(); ok {
		rec.DeviceMemory = &mem
	}
	return nil
}

func applyHardwareConcurrency(_ context.Context, env Environment, rec *models.VisitorRecord) error {
	if cores, ok := env.HardwareConcurrency(); ok {
		rec.HardwareConcurrency = &cores
	}
	return nil
}

func applyConnection(_ context.Context, env Environment, rec *models.VisitorRecord) error {
	if conn, ok := env.Connection(); ok {
		if conn.Type == "" {
			conn.Type = models.ConnectionTypeNA
		}
		rec.Connection = &conn
	}
	return nil
}

func applyBattery(ctx context.Context, env Environment, rec *models.VisitorRecord) error {
	battery, err := env.Battery(ctx)
	if err != nil {
		return err
	}
	rec.Battery = &battery
	return nil
}

// resolveGeo 三个互斥分支覆盖同意与能力的所有组合：
// 同意且支持定位才真正取位置，其余情况一律 geo 为空。
func (c *VisitorCollector) resolveGeo(ctx context.Context, consentGeo bool, env Environment, rec *models.VisitorRecord) {
	switch {
	case consentGeo && env.HasGeolocation():
		geoCtx, cancel := context.WithTimeout(ctx, geoTimeout)
		defer cancel()

		pos, err := env.CurrentPosition(geoCtx)
		if err != nil {
			logrus.WithError(err).Debug("定位失败")
			rec.Geo = nil
			rec.GeoPermission = models.GeoPermissionDenied
			return
		}
		rec.Geo = &pos
		rec.GeoPermission = models.GeoPermissionGranted

	case !consentGeo:
		rec.Geo = nil
		rec.GeoPermission = models.GeoPermissionDenied

	default:
		rec.Geo = nil
		rec.GeoPermission = models.GeoPermissionUnsupported
	}
}

// requestEnvironment 把上报的客户端信号适配成采集环境。
// 浏览器里的授权弹窗发生在前端，结果随请求带上来。
type requestEnvironment struct {
	signals models.ClientSignals
}

func NewRequestEnvironment(signals models.ClientSignals) Environment {
	return &requestEnvironment{signals: signals}
}

func (e *requestEnvironment) UserAgent() string               { return e.signals.UserAgent }
func (e *requestEnvironment) Platform() string                { return e.signals.Platform }
func (e *requestEnvironment) ScreenSize() models.Dimensions   { return e.signals.Screen }
func (e *requestEnvironment) ViewportSize() models.Dimensions { return e.signals.Viewport }
func (e *requestEnvironment) Language() string                { return e.signals.Language }
func (e *requestEnvironment) Timezone() string                { return e.signals.Timezone }
func (e *requestEnvironment) TouchPoints() int                { return e.signals.MaxTouchPoints }
func (e *requestEnvironment) Referrer() string                { return e.signals.Referrer }
func (e *requestEnvironment) CookiesEnabled() bool            { return e.signals.CookiesEnabled }

func (e *requestEnvironment) DeviceMemory() (float64, bool) {
	if e.signals.DeviceMemory == nil {
		return 0, false
	}
	return *e.signals.DeviceMemory, true
}

func (e *requestEnvironment) HardwareConcurrency() (int, bool) {
	if e.signals.HardwareConcurrency == nil {
		return 0, false
	}
	return *e.signals.HardwareConcurrency, true
}

func (e *requestEnvironment) Connection() (models.ConnectionInfo, bool) {
	if e.signals.Connection == nil {
		return models.ConnectionInfo{}, false
	}
	return models.ConnectionInfo{
		Type:     e.signals.Connection.EffectiveType,
		Downlink: e.signals.Connection.Downlink,
	}, true
}

func (e *requestEnvironment) Battery(_ context.Context) (models.BatteryInfo, error) {
	if e.signals.Battery == nil {
		return models.BatteryInfo{}, fmt.Errorf("客户端未上报电量信息")
	}
	return *e.signals.Battery, nil
}

func (e *requestEnvironment) HasGeolocation() bool {
	return e.signals.HasGeolocation
}

func (e *requestEnvironment) CurrentPosition(ctx context.Context) (models.GeoPoint, error) {
	if err := ctx.Err(); err != nil {
		return models.GeoPoint{}, err
	}
	if e.signals.Geo == nil {
		if e.signals.GeoError != "" {
			return models.GeoPoint{}, fmt.Errorf("客户端定位失败: %s", e.signals.GeoError)
		}
		return models.GeoPoint{}, fmt.Errorf("客户端未上报定位结果")
	}
	return *e.signals.Geo, nil
}
