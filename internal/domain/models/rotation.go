package models

import "time"

// RotationStateID 轮值状态单行记录的固定主键
const RotationStateID = 1

// RotationState 轮值指针，单行记录
//
// CurrentResidentID 指向当前值日的住户；轮值表为空时为NULL。
// 指针跟踪住户ID而不是序号，因此重排序不会改变当前值日人。
type RotationState struct {
	ID                uint      `gorm:"primaryKey" json:"id"`
	CurrentResidentID *string   `gorm:"type:varchar(36)" json:"current_resident_id"`
	UpdatedAt         time.Time `json:"updated_at"`
}

// TableName 指定表名
func (RotationState) TableName() string {
	return "rotation_states"
}
