package services

import (
	"context"
	"fmt"
	"time"

	"binreminder-http-service/internal/infrastructure/config"

	"github.com/go-resty/resty/v2"
)

// InterfaceSMSService defines the SMS channel provider interface
type InterfaceSMSService interface {
	SendText(ctx context.Context, destination, body string) error
}

// SMSService sends plain text messages through an HTTP SMS gateway
type SMSService struct {
	client *resty.Client
	Config *config.Config
}

// smsRequest 短信网关的请求体
type smsRequest struct {
	To     string `json:"to"`
	From   string `json:"from"`
	Body   string `json:"body"`
	APIKey string `json:"api_key"`
}

// NewSMSService creates a new SMS service
func NewSMSService(cfg *config.Config) InterfaceSMSService {
	client := resty.New().
		SetBaseURL(cfg.SMSGatewayURL).
		SetTimeout(cfg.ProviderTimeout).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		SetHeader("Content-Type", "application/json")

	return &SMSService{
		client: client,
		Config: cfg,
	}
}

// SendText sends one text message to a single destination number
func (s *SMSService) SendText(ctx context.Context, destination, body string) error {
	if s.Config.SMSGatewayURL == "" {
		return fmt.Errorf("sms provider not configured")
	}

	resp, err := s.client.R().
		SetContext(ctx).
		SetBody(smsRequest{
			To:     destination,
			From:   s.Config.SMSGatewaySender,
			Body:   body,
			APIKey: s.Config.SMSGatewayKey,
		}).
		Post("")
	if err != nil {
		return fmt.Errorf("sms send failed: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("sms send failed: status %d", resp.StatusCode())
	}
	return nil
}
