package services

import (
	"context"
	"stickyflow-backend/internal/models"

	"gorm.io/gorm"
)

// 帮助文案固定只有一行记录
const helpRowID = 1

type HelpService struct {
	db  *gorm.DB
	hub *snapshotHub
}

func NewHelpService(db *gorm.DB) *HelpService {
	return &HelpService{
		db:  db,
		hub: newSnapshotHub(),
	}
}

func (s *HelpService) Get(ctx context.Context) (*models.HelpText, error) {
	var help models.HelpText
	if err := s.db.WithContext(ctx).First(&help, helpRowID).Error; err != nil {
		return nil, err
	}
	return &help, nil
}

func (s *HelpService) Set(ctx context.Context, content string) (*models.HelpText, error) {
	help := &models.HelpText{ID: helpRowID, Content: content}
	if err := s.db.WithContext(ctx).Save(help).Error; err != nil {
		return nil, err
	}

	s.hub.Publish(help)
	return help, nil
}

func (s *HelpService) Subscribe() (int, <-chan interface{}) {
	return s.hub.Subscribe()
}

func (s *HelpService) Unsubscribe(id int) {
	s.hub.Unsubscribe(id)
}
