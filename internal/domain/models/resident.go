package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ContactInfo 住户的可选联系渠道，只对已配置的渠道发送通知
type ContactInfo struct {
	WhatsApp string `gorm:"column:contact_whatsapp;type:varchar(30)" json:"whatsapp,omitempty"`
	SMS      string `gorm:"column:contact_sms;type:varchar(30)" json:"sms,omitempty"`
	Email    string `gorm:"column:contact_email;type:varchar(100)" json:"email,omitempty"`
}

// Resident represents a flat resident in the duty rotation
type Resident struct {
	ID         string      `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name       string      `gorm:"type:varchar(100);not null" json:"name"`
	FlatNumber string      `gorm:"type:varchar(20);not null" json:"flat_number"`
	Notes      string      `gorm:"type:varchar(500)" json:"notes,omitempty"`
	Contact    ContactInfo `gorm:"embedded" json:"contact"`
	// Position 决定轮值顺序，从0开始，重排序时整体重写
	Position  int       `gorm:"not null;index" json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate 是一个GORM钩子，在创建新记录前运行
func (r *Resident) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// FirstName 返回姓名的第一个词，用于消息模板的{first_name}占位符
func (r *Resident) FirstName() string {
	fields := strings.Fields(r.Name)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}

// ConfiguredChannels 返回该住户已配置联系方式的渠道列表
func (r *Resident) ConfiguredChannels() []Channel {
	var channels []Channel
	if r.Contact.WhatsApp != "" {
		channels = append(channels, ChannelWhatsApp)
	}
	if r.Contact.SMS != "" {
		channels = append(channels, ChannelSMS)
	}
	if r.Contact.Email != "" {
		channels = append(channels, ChannelEmail)
	}
	return channels
}

// ContactFor 返回指定渠道的联系方式，未配置时返回空字符串
func (r *Resident) ContactFor(ch Channel) string {
	switch ch {
	case ChannelWhatsApp:
		return r.Contact.WhatsApp
	case ChannelSMS:
		return r.Contact.SMS
	case ChannelEmail:
		return r.Contact.Email
	}
	return ""
}
