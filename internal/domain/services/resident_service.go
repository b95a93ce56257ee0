package services

import (
	"errors"
	"fmt"

	"binreminder-http-service/internal/domain/models"
	"binreminder-http-service/internal/infrastructure/config"

	"gorm.io/gorm"
)

// ErrOrderMismatch 排序列表与现有住户集合不一致
var ErrOrderMismatch = errors.New("reorder set does not match current residents")

// InterfaceResidentService defines the resident service interface
type InterfaceResidentService interface {
	GetAllResidents() ([]models.Resident, error)
	GetResidentByID(id string) (*models.Resident, error)
	CreateResident(resident *models.Resident) error
	UpdateResident(id string, updates map[string]interface{}) (*models.Resident, error)
	DeleteResident(id string) error
	Reorder(orderedIDs []string) error
	FindByIDs(ids []string) ([]models.Resident, error)
}

// ResidentService 提供住户相关的服务
type ResidentService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewResidentService 创建一个新的住户服务
func NewResidentService(db *gorm.DB, cfg *config.Config) InterfaceResidentService {
	return &ResidentService{
		DB:     db,
		Config: cfg,
	}
}

// 1 GetAllResidents 按轮值顺序获取所有住户
func (s *ResidentService) GetAllResidents() ([]models.Resident, error) {
	return residentsInOrder(s.DB)
}

// 2 GetResidentByID 根据ID获取住户
func (s *ResidentService) GetResidentByID(id string) (*models.Resident, error) {
	var resident models.Resident
	if err := s.DB.First(&resident, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &resident, nil
}

// 3 CreateResident 创建新住户，追加到轮值顺序末尾。
// 如果这是第一位住户，同时把轮值指针指向他。
func (s *ResidentService) CreateResident(resident *models.Resident) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		state, err := loadRotationState(tx, true)
		if err != nil {
			return err
		}

		// 追加到末尾
		var maxPosition *int
		if err := tx.Model(&models.Resident{}).Select("MAX(position)").Scan(&maxPosition).Error; err != nil {
			return err
		}
		if maxPosition != nil {
			resident.Position = *maxPosition + 1
		} else {
			resident.Position = 0
		}

		if err := tx.Create(resident).Error; err != nil {
			return err
		}

		if state.CurrentResidentID == nil {
			return tx.Model(&models.RotationState{}).
				Where("id = ?", models.RotationStateID).
				Update("current_resident_id", resident.ID).Error
		}
		return nil
	})
}

// 4 UpdateResident 更新住户信息。updates 的键是数据库列名，
// 联系方式已在控制层展开为 contact_whatsapp / contact_sms / contact_email。
// 轮值位置不通过该接口修改。
func (s *ResidentService) UpdateResident(id string, updates map[string]interface{}) (*models.Resident, error) {
	resident, err := s.GetResidentByID(id)
	if err != nil {
		return nil, err
	}

	delete(updates, "id")
	delete(updates, "position")
	if len(updates) == 0 {
		return resident, nil
	}

	if err := s.DB.Model(resident).Updates(updates).Error; err != nil {
		return nil, err
	}

	// 重新获取更新后的住户信息
	return s.GetResidentByID(id)
}

// 5 DeleteResident 删除住户。如果删除的是当前值日住户，
// 在同一事务内把指针修复到原顺序中的下一位；轮值表变空时指针置NULL。
func (s *ResidentService) DeleteResident(id string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		state, err := loadRotationState(tx, true)
		if err != nil {
			return err
		}

		residents, err := residentsInOrder(tx)
		if err != nil {
			return err
		}

		target := findResident(residents, id)
		if target == nil {
			return gorm.ErrRecordNotFound
		}

		if err := tx.Delete(&models.Resident{}, "id = ?", id).Error; err != nil {
			return err
		}

		if state.CurrentResidentID == nil || *state.CurrentResidentID != id {
			return nil
		}

		// 指针修复：删除当前值日住户后指向原顺序中的下一位
		if len(residents) <= 1 {
			return tx.Model(&models.RotationState{}).
				Where("id = ?", models.RotationStateID).
				Update("current_resident_id", nil).Error
		}

		next := nextInRotation(residents, id)
		return tx.Model(&models.RotationState{}).
			Where("id = ?", models.RotationStateID).
			Update("current_resident_id", next.ID).Error
	})
}

// 6 Reorder 原子地重写轮值顺序。
// 新顺序必须与现有住户ID集合完全一致，否则整个操作失败回滚。
// 指针跟踪住户ID，因此重排序不会改变当前值日人。
func (s *ResidentService) Reorder(orderedIDs []string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		// 加锁，防止重排期间指针变更读到半写状态
		if _, err := loadRotationState(tx, true); err != nil {
			return err
		}

		residents, err := residentsInOrder(tx)
		if err != nil {
			return err
		}

		if err := validateReorder(residents, orderedIDs); err != nil {
			return err
		}

		for position, id := range orderedIDs {
			if err := tx.Model(&models.Resident{}).
				Where("id = ?", id).
				Update("position", position).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// 7 FindByIDs 按轮值顺序返回指定ID的住户，未知ID被忽略
func (s *ResidentService) FindByIDs(ids []string) ([]models.Resident, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var residents []models.Resident
	if err := s.DB.
		Where("id IN ?", ids).
		Order("position asc, created_at asc").
		Find(&residents).Error; err != nil {
		return nil, err
	}
	return residents, nil
}

// validateReorder 校验新顺序与现有住户集合是否完全一致
func validateReorder(current []models.Resident, orderedIDs []string) error {
	if len(orderedIDs) != len(current) {
		return fmt.Errorf("%w: got %d ids, have %d residents", ErrOrderMismatch, len(orderedIDs), len(current))
	}

	existing := make(map[string]bool, len(current))
	for _, r := range current {
		existing[r.ID] = true
	}

	seen := make(map[string]bool, len(orderedIDs))
	for _, id := range orderedIDs {
		if !existing[id] {
			return fmt.Errorf("%w: unknown resident %s", ErrOrderMismatch, id)
		}
		if seen[id] {
			return fmt.Errorf("%w: duplicate resident %s", ErrOrderMismatch, id)
		}
		seen[id] = true
	}
	return nil
}
