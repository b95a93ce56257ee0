package services

import (
	"time"

	"binreminder-http-service/internal/domain/models"
	"binreminder-http-service/internal/infrastructure/config"
	"binreminder-http-service/pkg/logger"

	"gorm.io/gorm"
)

// 操作日志只保留最近的100条
const operationLogCap = 100

// InterfaceLogService defines the operation log service interface
type InterfaceLogService interface {
	Append(userEmail, action string)
	List() ([]string, error)
	DeleteMany(entries []string) (int64, error)
}

// LogService 提供管理操作日志服务，日志以格式化字符串对外展示
type LogService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewLogService 创建一个新的操作日志服务
func NewLogService(db *gorm.DB, cfg *config.Config) InterfaceLogService {
	return &LogService{
		DB:     db,
		Config: cfg,
	}
}

// 1 Append 追加一条操作日志并裁剪到容量上限。
// 日志失败不应影响业务操作，错误只记录不上抛。
func (s *LogService) Append(userEmail, action string) {
	entry := models.OperationLog{
		UserEmail: userEmail,
		Action:    action,
		Timestamp: time.Now().UTC(),
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&entry).Error; err != nil {
			return err
		}

		var count int64
		if err := tx.Model(&models.OperationLog{}).Count(&count).Error; err != nil {
			return err
		}
		if count <= operationLogCap {
			return nil
		}

		// 删除最旧的超额日志
		var cutoff models.OperationLog
		if err := tx.Order("timestamp desc, id desc").
			Offset(operationLogCap - 1).
			First(&cutoff).Error; err != nil {
			return err
		}
		return tx.Where("timestamp < ? OR (timestamp = ? AND id < ?)",
			cutoff.Timestamp, cutoff.Timestamp, cutoff.ID).
			Delete(&models.OperationLog{}).Error
	})
	if err != nil {
		logger.Warning("写入操作日志失败: %v", err)
	}
}

// 2 List 返回格式化的日志行，最新在前
func (s *LogService) List() ([]string, error) {
	var entries []models.OperationLog
	if err := s.DB.Order("timestamp desc, id desc").
		Limit(operationLogCap).
		Find(&entries).Error; err != nil {
		return nil, err
	}

	lines := make([]string, 0, len(entries))
	for i := range entries {
		lines = append(lines, entries[i].String())
	}
	return lines, nil
}

// 3 DeleteMany 按格式化字符串批量删除日志，未匹配的条目被忽略
func (s *LogService) DeleteMany(lines []string) (int64, error) {
	if len(lines) == 0 {
		return 0, nil
	}

	toDelete := make(map[string]bool, len(lines))
	for _, l := range lines {
		toDelete[l] = true
	}

	var entries []models.OperationLog
	if err := s.DB.Find(&entries).Error; err != nil {
		return 0, err
	}

	var ids []uint
	for i := range entries {
		if toDelete[entries[i].String()] {
			ids = append(ids, entries[i].ID)
		}
	}
	if len(ids) == 0 {
		return 0, nil
	}

	result := s.DB.Where("id IN ?", ids).Delete(&models.OperationLog{})
	return result.RowsAffected, result.Error
}
