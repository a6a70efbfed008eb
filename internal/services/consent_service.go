package services

import (
	"context"
	"stickyflow-backend/internal/models"
	"time"

	"gorm.io/gorm"
)

// ConsentStore 同意状态的持久化端口
type ConsentStore interface {
	Load(ctx context.Context, clientID string) (*models.VisitorConsent, error)
	Save(ctx context.Context, consent *models.VisitorConsent) error
	Clear(ctx context.Context, clientID string) error
}

type GormConsentStore struct {
	db *gorm.DB
}

func NewGormConsentStore(db *gorm.DB) *GormConsentStore {
	return &GormConsentStore{db: db}
}

func (s *GormConsentStore) Load(ctx context.Context, clientID string) (*models.VisitorConsent, error) {
	var consent models.VisitorConsent
	err := s.db.WithContext(ctx).Where("client_id = ?", clientID).First(&consent).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &consent, nil
}

func (s *GormConsentStore) Save(ctx context.Context, consent *models.VisitorConsent) error {
	consent.UpdatedAt = time.Now()
	return s.db.WithContext(ctx).Save(consent).Error
}

// Clear 单条删除，三个字段一起消失，不会出现半清除状态
func (s *GormConsentStore) Clear(ctx context.Context, clientID string) error {
	return s.db.WithContext(ctx).Where("client_id = ?", clientID).Delete(&models.VisitorConsent{}).Error
}

// ConsentService 访客同意闸门：已登记过的客户端不再重复采集
type ConsentService struct {
	store ConsentStore
}

func NewConsentService(store ConsentStore) *ConsentService {
	return &ConsentService{store: store}
}

// State 未登记的客户端返回零值状态而不是错误
func (s *ConsentService) State(ctx context.Context, clientID string) (*models.VisitorConsent, error) {
	consent, err := s.store.Load(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if consent == nil {
		return &models.VisitorConsent{ClientID: clientID}, nil
	}
	return consent, nil
}

func (s *ConsentService) MarkConsented(ctx context.Context, clientID, visitorID, visitorName string) error {
	return s.store.Save(ctx, &models.VisitorConsent{
		ClientID:    clientID,
		Consented:   true,
		VisitorID:   visitorID,
		VisitorName: visitorName,
	})
}

func (s *ConsentService) Clear(ctx context.Context, clientID string) error {
	return s.store.Clear(ctx, clientID)
}
