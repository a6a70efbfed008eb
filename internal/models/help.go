package models

import "time"

// HelpText 帮助弹窗文案，全站只有一条
type HelpText struct {
	ID        uint      `json:"-" gorm:"primaryKey"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	UpdatedAt time.Time `json:"-"`
}

type HelpUpdateRequest struct {
	Content string `json:"content" validate:"required"`
}
