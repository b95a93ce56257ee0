package services

import (
	"binreminder-http-service/internal/domain/models"
	"binreminder-http-service/internal/infrastructure/config"

	"gorm.io/gorm"
)

// InterfaceHistoryService defines the communication history service interface
type InterfaceHistoryService interface {
	Record(event *models.CommunicationEvent) error
	Query() ([]models.CommunicationEvent, error)
	DeleteMany(ids []string) (int64, error)
}

// HistoryService 提供通讯历史相关的服务。
// 事件一经记录不可修改，只支持批量硬删除。
type HistoryService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewHistoryService 创建一个新的通讯历史服务
func NewHistoryService(db *gorm.DB, cfg *config.Config) InterfaceHistoryService {
	return &HistoryService{
		DB:     db,
		Config: cfg,
	}
}

// 1 Record 追加一条通讯事件及其明细
func (s *HistoryService) Record(event *models.CommunicationEvent) error {
	return s.DB.Create(event).Error
}

// 2 Query 返回所有通讯事件，按时间倒序（最新在前）
func (s *HistoryService) Query() ([]models.CommunicationEvent, error) {
	var events []models.CommunicationEvent
	if err := s.DB.Preload("Details").
		Order("timestamp desc").
		Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// 3 DeleteMany 批量删除事件，返回实际删除的条数。
// 不存在的ID会被跳过而不报错，保证批量删除可重入。
func (s *HistoryService) DeleteMany(ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	var deleted int64
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("event_id IN ?", ids).Delete(&models.CommunicationDetail{}).Error; err != nil {
			return err
		}
		result := tx.Where("id IN ?", ids).Delete(&models.CommunicationEvent{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected
		return nil
	})
	return deleted, err
}
