package container

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"binreminder-http-service/internal/domain/services"
	"binreminder-http-service/internal/infrastructure/config"
)

// ServiceContainer 管理所有服务的依赖注入
type ServiceContainer struct {
	db     *gorm.DB
	config *config.Config
	redis  *redis.Client

	// 基础服务
	jwtService services.InterfaceJWTService

	// 数据存储服务
	redisService services.InterfaceRedisService

	// 消息渠道服务
	whatsappService services.InterfaceWhatsAppService
	smsService      services.InterfaceSMSService
	emailService    services.InterfaceEmailService
	mqttService     services.InterfaceMQTTService

	// 业务服务
	adminService    services.InterfaceAdminService
	residentService services.InterfaceResidentService
	rotationService services.InterfaceRotationService
	settingsService services.InterfaceSettingsService
	historyService  services.InterfaceHistoryService
	dispatchService services.InterfaceDispatchService
	issueService    services.InterfaceIssueService
	logService      services.InterfaceLogService

	mu sync.RWMutex
}

// NewServiceContainer 创建新的服务容器
func NewServiceContainer(db *gorm.DB, cfg *config.Config, redisClient *redis.Client) *ServiceContainer {
	if db == nil {
		panic("数据库连接为空")
	}

	if cfg == nil {
		panic("配置为空")
	}

	// 测试Redis连接
	if redisClient != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Printf("Redis连接测试失败: %v，将不使用Redis缓存", err)
		}
	}

	container := &ServiceContainer{
		db:     db,
		config: cfg,
		redis:  redisClient,
	}
	container.initializeServices()
	return container
}

// initializeServices 初始化所有服务
func (c *ServiceContainer) initializeServices() {
	c.mu.Lock()
	defer c.mu.Unlock()

	// 初始化基础服务
	c.jwtService = services.NewJWTService(c.config, c.db)
	c.redisService = services.NewRedisService(c.config)

	// 初始化消息渠道服务
	c.whatsappService = services.NewWhatsAppService(c.config)
	c.smsService = services.NewSMSService(c.config)
	c.emailService = services.NewEmailService(c.config)

	// MQTT广播是可选的
	if c.config.MQTTEnabled {
		c.mqttService = services.NewMQTTService(c.config)
		if err := c.mqttService.Connect(); err != nil {
			log.Printf("MQTT服务连接失败: %v", err)
		}
	}

	// 初始化业务服务
	c.adminService = services.NewAdminService(c.db, c.config)
	c.residentService = services.NewResidentService(c.db, c.config)
	c.rotationService = services.NewRotationService(c.db, c.config)
	c.settingsService = services.NewSettingsService(c.db, c.config, c.redisService)
	c.historyService = services.NewHistoryService(c.db, c.config)
	c.logService = services.NewLogService(c.db, c.config)

	c.dispatchService = services.NewDispatchService(
		c.config,
		c.whatsappService,
		c.smsService,
		c.emailService,
		c.rotationService,
		c.residentService,
		c.settingsService,
		c.historyService,
		c.mqttService,
	)
	c.issueService = services.NewIssueService(
		c.db,
		c.config,
		c.whatsappService,
		c.smsService,
		c.emailService,
		c.settingsService,
		c.historyService,
	)
}

// GetService 获取指定名称的服务
func (c *ServiceContainer) GetService(name string) interface{} {
	c.mu.RLock()
	defer c.mu.RUnlock()

	switch name {
	case "config":
		return c.config
	case "db":
		return c.db
	case "jwt":
		return c.jwtService
	case "redis":
		return c.redisService
	case "whatsapp":
		return c.whatsappService
	case "sms":
		return c.smsService
	case "email":
		return c.emailService
	case "mqtt":
		return c.mqttService
	case "admin":
		return c.adminService
	case "resident":
		return c.residentService
	case "rotation":
		return c.rotationService
	case "settings":
		return c.settingsService
	case "history":
		return c.historyService
	case "dispatch":
		return c.dispatchService
	case "issue":
		return c.issueService
	case "log":
		return c.logService
	default:
		return nil
	}
}

// GetDB 获取数据库连接
func (c *ServiceContainer) GetDB() *gorm.DB {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.db
}
