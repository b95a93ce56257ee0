package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

var (
	config     *Config
	configOnce sync.Once
)

// Config stores all configuration of the application
type Config struct {
	// Environment type
	EnvType string

	// Database
	DBHost          string
	DBUser          string
	DBPassword      string
	DBName          string
	DBPort          string
	DBMigrationMode string // 数据库迁移模式: "auto"(默认), "alter"(修改), "drop"(删除重建)

	// Server
	ServerPort string

	// Redis
	RedisHost string
	RedisPort string
	RedisDB   int

	// WhatsApp (AiSensy campaign API)
	AiSensyAPIURL               string // AiSensy接口地址
	AiSensyAPIKey               string // AiSensy接口密钥
	AiSensyReminderCampaign     string // 值日提醒使用的campaign名称
	AiSensyAnnouncementCampaign string // 公告使用的campaign名称

	// SMS 网关
	SMSGatewayURL    string // 短信网关地址
	SMSGatewayKey    string // 短信网关密钥
	SMSGatewaySender string // 短信发送方标识

	// Email (Resend)
	ResendAPIKey    string // Resend接口密钥
	EmailFromAddr   string // 发件人地址
	ProviderTimeout time.Duration // 单次渠道调用的超时时间

	// MQTT配置
	MQTTBrokerURL string // MQTT服务器地址，如 tcp://broker.example.com:1883
	MQTTClientID  string // MQTT客户端ID
	MQTTUsername  string // MQTT用户名
	MQTTPassword  string // MQTT密码
	MQTTQoS       int    // 服务质量 (0, 1, 2)
	MQTTRetained  bool   // 是否保留消息
	MQTTEnabled   bool   // 是否启用MQTT轮值广播

	// JWT Authentication
	JWTSecretKey string

	// 定时任务调用的共享密钥
	CronSecret string

	// Admin
	DefaultAdminEmail    string
	DefaultAdminPassword string
}

// LoadConfig loads config from environment variables based on ENV_TYPE
func LoadConfig() *Config {
	// Get environment type (default to LOCAL if not set)
	envType := getEnv("ENV_TYPE", "LOCAL")
	prefix := ""

	// Set prefix based on environment type
	if strings.ToUpper(envType) == "LOCAL" {
		prefix = "LOCAL_"
	} else if strings.ToUpper(envType) == "SERVER" {
		prefix = "SERVER_"
	} else {
		fmt.Printf("Warning: Unknown ENV_TYPE '%s', defaulting to LOCAL environment\n", envType)
		prefix = "LOCAL_"
		envType = "LOCAL"
	}

	fmt.Printf("Loading configuration for environment: %s\n", envType)

	return &Config{
		// Environment type
		EnvType: envType,

		// Database config - use environment-specific variables if available
		DBHost:          getEnvRequired(prefix + "DB_HOST"),
		DBUser:          getEnvRequired(prefix + "DB_USER"),
		DBPassword:      getEnvRequired(prefix + "DB_PASSWORD"),
		DBName:          getEnvRequired(prefix + "DB_NAME"),
		DBPort:          getEnvRequired(prefix + "DB_PORT"),
		DBMigrationMode: getEnv(prefix+"DB_MIGRATION_MODE", "auto"),

		// Server config
		ServerPort: getEnv(prefix+"SERVER_PORT", getEnv("SERVER_PORT", "8080")),

		// Redis config
		RedisHost: getEnv(prefix+"REDIS_HOST", getEnv("REDIS_HOST", "localhost")),
		RedisPort: getEnv(prefix+"REDIS_PORT", getEnv("REDIS_PORT", "6379")),
		RedisDB:   getEnvAsInt("REDIS_DB", 0),

		// WhatsApp配置
		AiSensyAPIURL:               getEnv("AISENSY_API_URL", "https://backend.aisensy.com/campaign/t1/api/v2"),
		AiSensyAPIKey:               getEnv("AISENSY_API_KEY", ""),
		AiSensyReminderCampaign:     getEnv("AISENSY_REMINDER_CAMPAIGN_NAME", "bin_duty_reminder"),
		AiSensyAnnouncementCampaign: getEnv("AISENSY_ANNOUNCEMENT_CAMPAIGN_NAME", "announcement"),

		// SMS网关配置
		SMSGatewayURL:    getEnv("SMS_GATEWAY_URL", ""),
		SMSGatewayKey:    getEnv("SMS_GATEWAY_KEY", ""),
		SMSGatewaySender: getEnv("SMS_GATEWAY_SENDER", "BinDuty"),

		// Email配置
		ResendAPIKey:    getEnv("RESEND_API_KEY", ""),
		EmailFromAddr:   getEnv("EMAIL_FROM_ADDRESS", "Bin Reminder <reminder@example.com>"),
		ProviderTimeout: time.Duration(getEnvAsInt("PROVIDER_TIMEOUT_SECONDS", 10)) * time.Second,

		// MQTT配置
		MQTTBrokerURL: getEnv("MQTT_BROKER_URL", "tcp://localhost:1883"),
		MQTTClientID:  getEnv("MQTT_CLIENT_ID", "binreminder_server"),
		MQTTUsername:  getEnv("MQTT_USERNAME", ""),
		MQTTPassword:  getEnv("MQTT_PASSWORD", ""),
		MQTTQoS:       getEnvAsInt("MQTT_QOS", 1),
		MQTTRetained:  getEnvAsBool("MQTT_RETAINED", true),
		MQTTEnabled:   getEnvAsBool("MQTT_ENABLED", false),

		// JWT Config
		JWTSecretKey: getEnv("JWT_SECRET_KEY", "binreminder-secret-key-change-in-production"),

		// 定时任务密钥，留空则禁止cron触发
		CronSecret: getEnv("CRON_SECRET", ""),

		// Admin Config
		DefaultAdminEmail:    getEnv("DEFAULT_ADMIN_EMAIL", "admin@example.com"),
		DefaultAdminPassword: getEnvRequired("DEFAULT_ADMIN_PASSWORD"),
	}
}

// GetConfig returns the application configuration as a singleton
func GetConfig() *Config {
	configOnce.Do(func() {
		config = LoadConfig()
	})
	return config
}

// GetDSN returns the database connection string
func (c *Config) GetDSN() string {
	return c.DBUser + ":" + c.DBPassword + "@tcp(" + c.DBHost + ":" + c.DBPort + ")/" + c.DBName + "?charset=utf8mb4&parseTime=True&loc=Local&allowNativePasswords=true&multiStatements=true"
}

// GetRedisAddr returns the Redis address
func (c *Config) GetRedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

// Helper function to get environment variable with default value
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

// Helper function to get environment variable as integer with default value
func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// Helper function to get environment variable as boolean with default value
func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := getEnv(key, "")
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}

// 要求必须提供环境变量的辅助函数
func getEnvRequired(key string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	panic(fmt.Sprintf("Required environment variable %s is not set", key))
}
