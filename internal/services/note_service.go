package services

import (
	"context"
	"fmt"
	"stickyflow-backend/internal/models"
	"stickyflow-backend/internal/utils"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type NoteService struct {
	db  *gorm.DB
	hub *snapshotHub
}

func NewNoteService(db *gorm.DB) *NoteService {
	return &NoteService{
		db:  db,
		hub: newSnapshotHub(),
	}
}

// GetNotes 默认按创建时间倒序（便签墙），order=date 时按便签日期升序（移动端堆叠视图）
func (s *NoteService) GetNotes(ctx context.Context, order string) ([]models.Note, error) {
	var notes []models.Note
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&notes).Error; err != nil {
		return nil, err
	}

	if order == "date" {
		notes = utils.SortNotesByDateAscending(notes)
	}

	return notes, nil
}

func (s *NoteService) CreateNote(ctx context.Context, req *models.NoteCreateRequest) (*models.Note, error) {
	note, err := models.NewNote(req)
	if err != nil {
		return nil, err
	}

	if err := s.db.WithContext(ctx).Create(note).Error; err != nil {
		return nil, err
	}

	s.publishSnapshot(ctx)
	return note, nil
}

func (s *NoteService) DeleteNote(ctx context.Context, noteID uint) error {
	result := s.db.WithContext(ctx).Delete(&models.Note{}, noteID)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("便签不存在")
	}

	s.publishSnapshot(ctx)
	return nil
}

func (s *NoteService) Subscribe() (int, <-chan interface{}) {
	return s.hub.Subscribe()
}

func (s *NoteService) Unsubscribe(id int) {
	s.hub.Unsubscribe(id)
}

// publishSnapshot 每次变化向订阅者推送当前全量便签
func (s *NoteService) publishSnapshot(ctx context.Context) {
	notes, err := s.GetNotes(ctx, "")
	if err != nil {
		logrus.WithError(err).Warn("推送便签快照失败")
		return
	}
	s.hub.Publish(notes)
}
