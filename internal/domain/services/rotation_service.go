package services

import (
	"errors"

	"binreminder-http-service/internal/domain/models"
	"binreminder-http-service/internal/infrastructure/config"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// 轮值相关的领域错误
var (
	// ErrEmptyRotation 轮值表为空时的advance/skip
	ErrEmptyRotation = errors.New("rotation is empty")
	// ErrRotationStateMissing 轮值状态单行记录缺失
	ErrRotationStateMissing = errors.New("rotation state record missing")
)

// InterfaceRotationService 定义轮值引擎接口
//
// 指针的所有写操作(Advance/Skip/SetCurrent以及住户删除时的指针修复)
// 都在事务内先对rotation_states行加排它锁，保证多实例并发下的单写者语义。
type InterfaceRotationService interface {
	Current() (*models.Resident, error)
	Next() (*models.Resident, error)
	Snapshot() (current *models.Resident, next *models.Resident, err error)
	Advance() (*models.Resident, error)
	Skip() (skipped *models.Resident, current *models.Resident, err error)
	SetCurrent(residentID string) (*models.Resident, error)
	EnsureState() error
}

// RotationService 提供轮值指针相关的服务
type RotationService struct {
	DB     *gorm.DB
	Config *config.Config
}

// NewRotationService 创建一个新的轮值服务
func NewRotationService(db *gorm.DB, cfg *config.Config) InterfaceRotationService {
	return &RotationService{
		DB:     db,
		Config: cfg,
	}
}

// EnsureState 确保轮值状态单行记录存在，服务启动时调用
func (s *RotationService) EnsureState() error {
	state := models.RotationState{ID: models.RotationStateID}
	return s.DB.FirstOrCreate(&state, models.RotationState{ID: models.RotationStateID}).Error
}

// 1 Current 返回当前值日住户，轮值表为空时返回nil
func (s *RotationService) Current() (*models.Resident, error) {
	current, _, err := s.Snapshot()
	return current, err
}

// 2 Next 返回下一位值日住户（循环），轮值表为空时返回nil
func (s *RotationService) Next() (*models.Resident, error) {
	_, next, err := s.Snapshot()
	return next, err
}

// 3 Snapshot 在一个事务内读取当前和下一位值日住户，保证一致性快照
func (s *RotationService) Snapshot() (*models.Resident, *models.Resident, error) {
	var current, next *models.Resident

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		state, err := loadRotationState(tx, false)
		if err != nil {
			return err
		}

		residents, err := residentsInOrder(tx)
		if err != nil {
			return err
		}
		if len(residents) == 0 || state.CurrentResidentID == nil {
			return nil
		}

		current = findResident(residents, *state.CurrentResidentID)
		if current == nil {
			// 指针指向已不存在的住户，按顺序回退到第一位
			current = &residents[0]
		}
		if len(residents) > 1 {
			next = nextInRotation(residents, current.ID)
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}
	return current, next, nil
}

// 4 Advance 将指针循环前移一位，每次调用恰好前进一步
func (s *RotationService) Advance() (*models.Resident, error) {
	return s.advancePointer()
}

// 5 Skip 与Advance相同的指针变更，但返回被跳过的住户供审计使用
func (s *RotationService) Skip() (*models.Resident, *models.Resident, error) {
	var skipped, current *models.Resident

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		state, err := loadRotationState(tx, true)
		if err != nil {
			return err
		}
		residents, err := residentsInOrder(tx)
		if err != nil {
			return err
		}
		if len(residents) == 0 {
			return ErrEmptyRotation
		}

		if state.CurrentResidentID != nil {
			skipped = findResident(residents, *state.CurrentResidentID)
		}
		if skipped == nil {
			skipped = &residents[0]
		}
		current = nextInRotation(residents, skipped.ID)

		return tx.Model(&models.RotationState{}).
			Where("id = ?", models.RotationStateID).
			Update("current_resident_id", current.ID).Error
	})
	if err != nil {
		return nil, nil, err
	}
	return skipped, current, nil
}

// 6 SetCurrent 将指针重新指向任意住户，不改变其他住户的相对顺序
func (s *RotationService) SetCurrent(residentID string) (*models.Resident, error) {
	var target *models.Resident

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if _, err := loadRotationState(tx, true); err != nil {
			return err
		}

		var resident models.Resident
		if err := tx.First(&resident, "id = ?", residentID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return gorm.ErrRecordNotFound
			}
			return err
		}
		target = &resident

		return tx.Model(&models.RotationState{}).
			Where("id = ?", models.RotationStateID).
			Update("current_resident_id", resident.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return target, nil
}

// advancePointer 在行锁保护下将指针前移一位
func (s *RotationService) advancePointer() (*models.Resident, error) {
	var current *models.Resident

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		state, err := loadRotationState(tx, true)
		if err != nil {
			return err
		}

		residents, err := residentsInOrder(tx)
		if err != nil {
			return err
		}
		if len(residents) == 0 {
			return ErrEmptyRotation
		}

		if state.CurrentResidentID == nil {
			// 指针丢失，回退到第一位
			current = &residents[0]
		} else {
			current = nextInRotation(residents, *state.CurrentResidentID)
		}

		return tx.Model(&models.RotationState{}).
			Where("id = ?", models.RotationStateID).
			Update("current_resident_id", current.ID).Error
	})
	if err != nil {
		return nil, err
	}
	return current, nil
}

// loadRotationState 读取轮值状态行，forUpdate为真时加排它锁
func loadRotationState(tx *gorm.DB, forUpdate bool) (*models.RotationState, error) {
	var state models.RotationState
	query := tx
	if forUpdate {
		query = query.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	if err := query.First(&state, "id = ?", models.RotationStateID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRotationStateMissing
		}
		return nil, err
	}
	return &state, nil
}

// residentsInOrder 按轮值顺序返回所有住户
func residentsInOrder(tx *gorm.DB) ([]models.Resident, error) {
	var residents []models.Resident
	if err := tx.Order("position asc, created_at asc").Find(&residents).Error; err != nil {
		return nil, err
	}
	return residents, nil
}

// findResident 在有序列表中按ID查找住户
func findResident(residents []models.Resident, id string) *models.Resident {
	for i := range residents {
		if residents[i].ID == id {
			return &residents[i]
		}
	}
	return nil
}

// nextInRotation 返回currentID之后的住户（循环）。
// currentID不在列表中时返回第一位；列表为空时返回nil。
func nextInRotation(residents []models.Resident, currentID string) *models.Resident {
	if len(residents) == 0 {
		return nil
	}
	for i := range residents {
		if residents[i].ID == currentID {
			return &residents[(i+1)%len(residents)]
		}
	}
	return &residents[0]
}
