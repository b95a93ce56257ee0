package services

import (
	"context"
	"fmt"
	"time"

	"binreminder-http-service/internal/infrastructure/config"

	"github.com/go-resty/resty/v2"
)

// InterfaceWhatsAppService defines the WhatsApp channel provider interface
type InterfaceWhatsAppService interface {
	SendTemplate(ctx context.Context, destination, userName, campaign string, params []string) error
}

// WhatsAppService sends template messages through the AiSensy campaign API
type WhatsAppService struct {
	client *resty.Client
	Config *config.Config
}

// aiSensyRequest AiSensy campaign API的请求体
type aiSensyRequest struct {
	APIKey         string   `json:"apiKey"`
	CampaignName   string   `json:"campaignName"`
	Destination    string   `json:"destination"`
	UserName       string   `json:"userName"`
	TemplateParams []string `json:"templateParams"`
}

type aiSensyResponse struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"errorMessage"`
}

// NewWhatsAppService creates a new WhatsApp service
func NewWhatsAppService(cfg *config.Config) InterfaceWhatsAppService {
	client := resty.New().
		SetBaseURL(cfg.AiSensyAPIURL).
		SetTimeout(cfg.ProviderTimeout).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &WhatsAppService{
		client: client,
		Config: cfg,
	}
}

// SendTemplate sends one campaign template message to a single destination number
func (s *WhatsAppService) SendTemplate(ctx context.Context, destination, userName, campaign string, params []string) error {
	if s.Config.AiSensyAPIKey == "" {
		return fmt.Errorf("whatsapp provider not configured")
	}

	var result aiSensyResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(aiSensyRequest{
			APIKey:         s.Config.AiSensyAPIKey,
			CampaignName:   campaign,
			Destination:    destination,
			UserName:       userName,
			TemplateParams: params,
		}).
		SetResult(&result).
		Post("")
	if err != nil {
		return fmt.Errorf("whatsapp send failed: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("whatsapp send failed: status %d: %s", resp.StatusCode(), result.ErrorMessage)
	}
	return nil
}
