package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"gorm.io/gorm"

	"binreminder-http-service/internal/domain/models"
	"binreminder-http-service/internal/infrastructure/config"
	"binreminder-http-service/pkg/logger"
)

// InterfaceIssueService 定义报修管理接口
type InterfaceIssueService interface {
	CreatePublic(ctx context.Context, reportedBy, flatNumber, description string) (*models.Issue, error)
	GetAll() ([]models.Issue, error)
	GetPublic() ([]models.PublicIssue, error)
	UpdateStatus(id string, status models.IssueStatus) (*models.Issue, error)
	DeleteMany(ids []string) (int64, error)
}

// IssueService 报修管理服务。公开提交报修后在返回前通知业主，
// 每个渠道最多等待 provider 超时；通知的成败不影响报修本身的创建结果。
type IssueService struct {
	DB       *gorm.DB
	Config   *config.Config
	WhatsApp InterfaceWhatsAppService
	SMS      InterfaceSMSService
	Email    InterfaceEmailService
	Settings InterfaceSettingsService
	History  InterfaceHistoryService
}

// NewIssueService 创建一个新的报修管理服务
func NewIssueService(
	db *gorm.DB,
	cfg *config.Config,
	whatsapp InterfaceWhatsAppService,
	sms InterfaceSMSService,
	email InterfaceEmailService,
	settings InterfaceSettingsService,
	history InterfaceHistoryService,
) InterfaceIssueService {
	return &IssueService{
		DB:       db,
		Config:   cfg,
		WhatsApp: whatsapp,
		SMS:      sms,
		Email:    email,
		Settings: settings,
		History:  history,
	}
}

// 1 CreatePublic 创建一条公开提交的报修并通知业主
func (s *IssueService) CreatePublic(ctx context.Context, reportedBy, flatNumber, description string) (*models.Issue, error) {
	issue := &models.Issue{
		ReportedBy:  reportedBy,
		FlatNumber:  flatNumber,
		Description: description,
	}
	if err := s.DB.WithContext(ctx).Create(issue).Error; err != nil {
		return nil, err
	}

	s.notifyOwner(issue)
	return issue, nil
}

// notifyOwner 将新报修推送到业主已配置的全部渠道并记录通讯事件。
// 每次发送使用独立超时上下文，与提交请求的生命周期无关。
func (s *IssueService) notifyOwner(issue *models.Issue) {
	settings, err := s.Settings.Get()
	if err != nil {
		logger.Error("读取系统设置失败，无法通知业主: %v", err)
		return
	}

	body := fmt.Sprintf("New issue reported by %s (Flat %s): %s\nView all issues: %s",
		issue.ReportedBy, issue.FlatNumber, issue.Description, IssuesLink(settings))

	type ownerSend struct {
		channel models.Channel
		run     func(ctx context.Context) error
		content string
	}
	var sends []ownerSend
	if settings.OwnerContactWhatsApp != "" {
		sends = append(sends, ownerSend{
			channel: models.ChannelWhatsApp,
			content: "Sent template: " + s.Config.AiSensyAnnouncementCampaign,
			run: func(ctx context.Context) error {
				return s.WhatsApp.SendTemplate(ctx, settings.OwnerContactWhatsApp, settings.OwnerName,
					s.Config.AiSensyAnnouncementCampaign,
					[]string{"New Issue Reported", settings.OwnerName, body})
			},
		})
	}
	if settings.OwnerContactNumber != "" {
		sends = append(sends, ownerSend{
			channel: models.ChannelSMS,
			content: body,
			run: func(ctx context.Context) error {
				return s.SMS.SendText(ctx, settings.OwnerContactNumber, body)
			},
		})
	}
	if settings.OwnerContactEmail != "" {
		html := BuildOwnerIssueEmail(issue, settings)
		sends = append(sends, ownerSend{
			channel: models.ChannelEmail,
			content: "Subject: New Maintenance Issue Reported",
			run: func(ctx context.Context) error {
				return s.Email.SendHTML(ctx, settings.OwnerContactEmail, "New Maintenance Issue Reported", html)
			},
		})
	}
	if len(sends) == 0 {
		logger.Warning("业主未配置任何联系方式，跳过报修通知")
		return
	}

	ownerName := settings.OwnerName
	if ownerName == "" {
		ownerName = "Admin"
	}

	details := make([]models.CommunicationDetail, len(sends))
	var wg sync.WaitGroup
	for i := range sends {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			sendCtx, cancel := context.WithTimeout(context.Background(), s.Config.ProviderTimeout)
			defer cancel()

			details[i] = models.CommunicationDetail{
				Recipient: ownerName,
				Method:    sends[i].channel,
				Status:    models.DetailSent,
				Content:   sends[i].content,
			}
			if err := sends[i].run(sendCtx); err != nil {
				logger.Warning("业主报修通知失败 method=%s: %v", sends[i].channel, err)
				details[i].Status = models.DetailFailed
			}
		}(i)
	}
	wg.Wait()

	event := &models.CommunicationEvent{
		Type:      models.EventTypeIssueNotice,
		Subject:   fmt.Sprintf("New issue from Flat %s", issue.FlatNumber),
		Timestamp: time.Now().UTC(),
		Status:    models.DeriveEventStatus(details),
		Details:   details,
	}
	if err := s.History.Record(event); err != nil {
		logger.Error("记录报修通知事件失败: %v", err)
	}
}

// 2 GetAll 获取全部报修，按时间倒序
func (s *IssueService) GetAll() ([]models.Issue, error) {
	var issues []models.Issue
	if err := s.DB.Order("timestamp desc").Find(&issues).Error; err != nil {
		return nil, err
	}
	return issues, nil
}

// 3 GetPublic 获取公开报修列表，隐藏报修人姓名
func (s *IssueService) GetPublic() ([]models.PublicIssue, error) {
	issues, err := s.GetAll()
	if err != nil {
		return nil, err
	}
	public := make([]models.PublicIssue, 0, len(issues))
	for i := range issues {
		public = append(public, issues[i].ToPublic())
	}
	return public, nil
}

// 4 UpdateStatus 更新报修处理状态
func (s *IssueService) UpdateStatus(id string, status models.IssueStatus) (*models.Issue, error) {
	var issue models.Issue
	if err := s.DB.First(&issue, "id = ?", id).Error; err != nil {
		return nil, err
	}
	if err := s.DB.Model(&issue).Update("status", status).Error; err != nil {
		return nil, err
	}
	issue.Status = status
	return &issue, nil
}

// 5 DeleteMany 批量删除报修，返回删除条数
func (s *IssueService) DeleteMany(ids []string) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := s.DB.Where("id IN ?", ids).Delete(&models.Issue{})
	return result.RowsAffected, result.Error
}
