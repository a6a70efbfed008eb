package models

// 定位授权状态
const (
	GeoPermissionGranted     = "granted"
	GeoPermissionDenied      = "denied"
	GeoPermissionPrompt      = "prompt"
	GeoPermissionUnsupported = "unsupported"
)

// 采集失败时的兜底值
const (
	UnknownBrowser   = "Unknown"
	UnknownDevice    = "Unknown Device"
	DirectReferrer   = "Direct"
	IPUnavailable    = "unavailable"
	ConnectionTypeNA = "unknown"
)

type Dimensions struct {
	W int `json:"w"`
	H int `json:"h"`
}

type ConnectionInfo struct {
	Type     string   `json:"type"`
	Downlink *float64 `json:"downlink,omitempty"`
}

type BatteryInfo struct {
	Level    float64 `json:"level"`
	Charging bool    `json:"charging"`
}

type GeoPoint struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type ConsentInfo struct {
	DeviceData bool `json:"deviceData"`
	Geo        bool `json:"geo"`
}

type VisitorRecord struct {
	ID                  string          `json:"id" gorm:"primaryKey;size:36"`
	Name                string          `json:"name" gorm:"size:100;not null"`
	Timestamp           int64           `json:"timestamp" gorm:"not null;index"`
	UserAgent           string          `json:"userAgent" gorm:"type:text"`
	Platform            string          `json:"platform" gorm:"size:100"`
	BrowserName         string          `json:"browserName" gorm:"size:20"`
	DeviceInfo          string          `json:"deviceInfo" gorm:"size:255"`
	Screen              Dimensions      `json:"screen" gorm:"embedded;embeddedPrefix:screen_"`
	Viewport            Dimensions      `json:"viewport" gorm:"embedded;embeddedPrefix:viewport_"`
	Language            string          `json:"language" gorm:"size:35"`
	Timezone            string          `json:"timezone" gorm:"size:64"`
	DeviceMemory        *float64        `json:"deviceMemory,omitempty"`
	HardwareConcurrency *int            `json:"hardwareConcurrency,omitempty"`
	TouchSupport        bool            `json:"touchSupport"`
	Connection          *ConnectionInfo `json:"connection,omitempty" gorm:"serializer:json"`
	Battery             *BatteryInfo    `json:"battery,omitempty" gorm:"serializer:json"`
	Geo                 *GeoPoint       `json:"geo" gorm:"serializer:json"`
	GeoPermission       string          `json:"geoPermission" gorm:"size:12"`
	IPAddress           string          `json:"ipAddress" gorm:"size:45"`
	PageReferrer        string          `json:"pageReferrer" gorm:"type:text"`
	IsMobile            bool            `json:"isMobile"`
	CookiesEnabled      bool            `json:"cookiesEnabled"`
	Consent             ConsentInfo     `json:"consent" gorm:"embedded;embeddedPrefix:consent_"`
}

// ClientSignals 前端采集到的原始设备信号，随登记请求上报
type ClientSignals struct {
	UserAgent           string            `json:"userAgent" validate:"required"`
	Platform            string            `json:"platform"`
	Screen              Dimensions        `json:"screen"`
	Viewport            Dimensions        `json:"viewport"`
	Language            string            `json:"language" validate:"required"`
	Timezone            string            `json:"timezone" validate:"required"`
	MaxTouchPoints      int               `json:"maxTouchPoints"`
	Referrer            string            `json:"referrer"`
	CookiesEnabled      bool              `json:"cookiesEnabled"`
	DeviceMemory        *float64          `json:"deviceMemory,omitempty"`
	HardwareConcurrency *int              `json:"hardwareConcurrency,omitempty"`
	Connection          *ConnectionSignal `json:"connection,omitempty"`
	Battery             *BatteryInfo      `json:"battery,omitempty"`
	HasGeolocation      bool              `json:"hasGeolocation"`
	Geo                 *GeoPoint         `json:"geo,omitempty"`
	GeoError            string            `json:"geoError,omitempty"`
}

type ConnectionSignal struct {
	EffectiveType string   `json:"effectiveType"`
	Downlink      *float64 `json:"downlink,omitempty"`
}

type VisitorCollectRequest struct {
	ClientID          string        `json:"clientId" validate:"required,max=64"`
	Name              string        `json:"name" validate:"required,max=100"`
	ConsentDeviceData bool          `json:"consentDeviceData"`
	ConsentGeo        bool          `json:"consentGeo"`
	Signals           ClientSignals `json:"signals"`
}
