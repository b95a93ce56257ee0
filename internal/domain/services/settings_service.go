package services

import (
	"time"

	"binreminder-http-service/internal/domain/models"
	"binreminder-http-service/internal/infrastructure/config"
	"binreminder-http-service/pkg/logger"

	"gorm.io/gorm"
)

// 设置在Redis中的缓存键和过期时间
const (
	settingsCacheKey = "settings"
	settingsCacheTTL = 5 * time.Minute
)

// InterfaceSettingsService defines the system settings service interface
type InterfaceSettingsService interface {
	Get() (*models.SystemSettings, error)
	Update(updates map[string]interface{}) (*models.SystemSettings, error)
	SetLastReminderDate(date string) error
	EnsureSettings() error
}

// SettingsService 提供系统设置相关的服务，读取走Redis缓存
type SettingsService struct {
	DB     *gorm.DB
	Config *config.Config
	Redis  InterfaceRedisService
}

// NewSettingsService 创建一个新的系统设置服务
func NewSettingsService(db *gorm.DB, cfg *config.Config, redis InterfaceRedisService) InterfaceSettingsService {
	return &SettingsService{
		DB:     db,
		Config: cfg,
		Redis:  redis,
	}
}

// EnsureSettings 确保系统设置单行记录存在，服务启动时调用
func (s *SettingsService) EnsureSettings() error {
	settings := models.SystemSettings{
		ID:               models.SystemSettingsID,
		ReminderTemplate: models.DefaultReminderTemplate,
	}
	return s.DB.FirstOrCreate(&settings, models.SystemSettings{ID: models.SystemSettingsID}).Error
}

// 1 Get 获取系统设置，优先读缓存
func (s *SettingsService) Get() (*models.SystemSettings, error) {
	if s.Redis != nil {
		var cached models.SystemSettings
		if err := s.Redis.Get(settingsCacheKey, &cached); err == nil {
			return &cached, nil
		}
	}

	var settings models.SystemSettings
	if err := s.DB.First(&settings, "id = ?", models.SystemSettingsID).Error; err != nil {
		return nil, err
	}

	if s.Redis != nil {
		if err := s.Redis.Set(settingsCacheKey, &settings, settingsCacheTTL); err != nil {
			logger.Warning("缓存系统设置失败: %v", err)
		}
	}
	return &settings, nil
}

// 2 Update 更新系统设置并使缓存失效
func (s *SettingsService) Update(updates map[string]interface{}) (*models.SystemSettings, error) {
	delete(updates, "id")

	if err := s.DB.Model(&models.SystemSettings{}).
		Where("id = ?", models.SystemSettingsID).
		Updates(updates).Error; err != nil {
		return nil, err
	}

	s.invalidate()

	var settings models.SystemSettings
	if err := s.DB.First(&settings, "id = ?", models.SystemSettingsID).Error; err != nil {
		return nil, err
	}
	return &settings, nil
}

// 3 SetLastReminderDate 记录最近一次提醒发送日期
func (s *SettingsService) SetLastReminderDate(date string) error {
	err := s.DB.Model(&models.SystemSettings{}).
		Where("id = ?", models.SystemSettingsID).
		Update("last_reminder_date", date).Error
	if err != nil {
		return err
	}
	s.invalidate()
	return nil
}

func (s *SettingsService) invalidate() {
	if s.Redis == nil {
		return
	}
	if err := s.Redis.Delete(settingsCacheKey); err != nil {
		logger.Warning("清除系统设置缓存失败: %v", err)
	}
}
