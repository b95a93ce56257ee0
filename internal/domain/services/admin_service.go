package services

import (
	"errors"

	"binreminder-http-service/internal/domain/models"
	"binreminder-http-service/internal/infrastructure/config"

	"gorm.io/gorm"
)

// 管理员相关的领域错误
var (
	// ErrAdminEmailTaken 已存在同邮箱的管理员
	ErrAdminEmailTaken = errors.New("admin with this email already exists")
	// ErrSelfDelete 管理员不能删除自己
	ErrSelfDelete = errors.New("cannot delete the currently logged in admin")
)

// InterfaceAdminService defines the admin service interface
type InterfaceAdminService interface {
	GetAllAdmins() ([]models.Admin, error)
	GetAdminByID(id string) (*models.Admin, error)
	CreateAdmin(admin *models.Admin) error
	UpdateAdmin(id string, updates map[string]interface{}) (*models.Admin, error)
	DeleteAdmin(id, actorID string) error
}

// AdminService 提供管理员相关的服务
type AdminService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewAdminService 创建一个新的管理员服务
func NewAdminService(db *gorm.DB, cfg *config.Config) InterfaceAdminService {
	return &AdminService{
		DB:     db,
		Config: cfg,
	}
}

// 1 GetAllAdmins 获取所有管理员
func (s *AdminService) GetAllAdmins() ([]models.Admin, error) {
	var admins []models.Admin
	if err := s.DB.Order("created_at asc").Find(&admins).Error; err != nil {
		return nil, err
	}
	return admins, nil
}

// 2 GetAdminByID 根据ID获取管理员
func (s *AdminService) GetAdminByID(id string) (*models.Admin, error) {
	var admin models.Admin
	if err := s.DB.First(&admin, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &admin, nil
}

// 3 CreateAdmin 创建新管理员，邮箱必须唯一
func (s *AdminService) CreateAdmin(admin *models.Admin) error {
	var count int64
	if err := s.DB.Model(&models.Admin{}).Where("email = ?", admin.Email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return ErrAdminEmailTaken
	}

	return s.DB.Create(admin).Error
}

// 4 UpdateAdmin 更新管理员信息，提供password时重新哈希
func (s *AdminService) UpdateAdmin(id string, updates map[string]interface{}) (*models.Admin, error) {
	admin, err := s.GetAdminByID(id)
	if err != nil {
		return nil, err
	}

	// 如果更新邮箱，需要检查唯一性
	if email, ok := updates["email"].(string); ok && email != "" && email != admin.Email {
		var count int64
		if err := s.DB.Model(&models.Admin{}).
			Where("email = ? AND id != ?", email, id).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, ErrAdminEmailTaken
		}
	}

	if password, ok := updates["password"].(string); ok {
		delete(updates, "password")
		if password != "" {
			hashed, err := models.HashPassword(password)
			if err != nil {
				return nil, err
			}
			updates["password"] = hashed
		}
	}

	if err := s.DB.Model(admin).Updates(updates).Error; err != nil {
		return nil, err
	}

	return s.GetAdminByID(id)
}

// 5 DeleteAdmin 删除管理员，禁止删除当前登录的管理员
func (s *AdminService) DeleteAdmin(id, actorID string) error {
	if id == actorID {
		return ErrSelfDelete
	}

	result := s.DB.Delete(&models.Admin{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
