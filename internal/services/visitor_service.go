package services

import (
	"context"
	"fmt"
	"stickyflow-backend/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// VisitorService 访客档案的登记与管理。
// 登记是整个采集流水线的入口：过闸门、采集、落库、置闸门，一次性完成。
type VisitorService struct {
	db        *gorm.DB
	hub       *snapshotHub
	collector *VisitorCollector
	consent   *ConsentService
}

func NewVisitorService(db *gorm.DB, collector *VisitorCollector, consent *ConsentService) *VisitorService {
	return &VisitorService{
		db:        db,
		hub:       newSnapshotHub(),
		collector: collector,
		consent:   consent,
	}
}

// Register 每个客户端一生只登记一次。档案整体组装完成后一次写入，
// 之后才标记同意状态，绝不落半成品。
func (s *VisitorService) Register(ctx context.Context, req *models.VisitorCollectRequest) (*models.VisitorRecord, error) {
	if !req.ConsentDeviceData {
		return nil, fmt.Errorf("未同意设备数据采集，无法登记")
	}

	state, err := s.consent.State(ctx, req.ClientID)
	if err != nil {
		return nil, err
	}
	if state.Consented {
		return nil, fmt.Errorf("该客户端已完成登记")
	}

	env := NewRequestEnvironment(req.Signals)
	record, err := s.collector.Collect(ctx, req.Name, req.ConsentGeo, env)
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Create(record).Error; err != nil {
		return nil, err
	}

	if err := s.consent.MarkConsented(ctx, req.ClientID, record.ID, record.Name); err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"visitor_id": record.ID,
		"client_id":  req.ClientID,
		"browser":    record.BrowserName,
		"is_mobile":  record.IsMobile,
	}).Info("访客登记完成")

	s.publishSnapshot(ctx)
	return record, nil
}

func (s *VisitorService) GetVisitors(ctx context.Context) ([]models.VisitorRecord, error) {
	var records []models.VisitorRecord
	if err := s.db.WithContext(ctx).Order("timestamp DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

func (s *VisitorService) DeleteVisitor(ctx context.Context, visitorID string) error {
	result := s.db.WithContext(ctx).Where("id = ?", visitorID).Delete(&models.VisitorRecord{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("访客记录不存在")
	}

	s.publishSnapshot(ctx)
	return nil
}

func (s *VisitorService) Subscribe() (int, <-chan interface{}) {
	return s.hub.Subscribe()
}

func (s *VisitorService) Unsubscribe(id int) {
	s.hub.Unsubscribe(id)
}

func (s *VisitorService) publishSnapshot(ctx context.Context) {
	records, err := s.GetVisitors(ctx)
	if err != nil {
		logrus.WithError(err).Warn("推送访客快照失败")
		return
	}
	s.hub.Publish(records)
}
