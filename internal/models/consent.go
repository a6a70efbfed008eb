package models

import "time"

// VisitorConsent 访客同意状态，按客户端标识存储，不设过期
type VisitorConsent struct {
	ClientID    string    `json:"clientId" gorm:"primaryKey;size:64"`
	Consented   bool      `json:"consented" gorm:"not null;default:false"`
	VisitorID   string    `json:"visitorId" gorm:"size:36"`
	VisitorName string    `json:"visitorName" gorm:"size:100"`
	UpdatedAt   time.Time `json:"-"`
}
