package services

import (
	"encoding/json"
	"fmt"
	"log"
	"sync"
	"time"

	"binreminder-http-service/internal/infrastructure/config"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
)

// MQTT主题
const (
	// TopicRotationUpdate 轮值变更广播主题，楼道显示设备订阅该主题
	TopicRotationUpdate = "binreminder/rotation"
)

// RotationUpdateMessage 轮值变更广播消息
type RotationUpdateMessage struct {
	Action          string `json:"action"` // advanced, skipped, set, reminded
	CurrentResident string `json:"current_resident"`
	CurrentFlat     string `json:"current_flat"`
	NextResident    string `json:"next_resident,omitempty"`
	Timestamp       int64  `json:"timestamp"`
}

// InterfaceMQTTService 定义MQTT广播服务接口
type InterfaceMQTTService interface {
	Connect() error
	PublishRotationUpdate(msg RotationUpdateMessage) error
	Disconnect()
}

// MQTTService 通过MQTT向楼道显示设备广播轮值变更
type MQTTService struct {
	Client       mqtt.Client
	Config       *config.Config
	publishMutex sync.Mutex
	isConnected  bool
	mu           sync.RWMutex
}

// NewMQTTService 创建一个新的MQTT广播服务
func NewMQTTService(cfg *config.Config) InterfaceMQTTService {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(cfg.MQTTBrokerURL)
	opts.SetClientID(fmt.Sprintf("%s-%s", cfg.MQTTClientID, uuid.NewString()[:8]))
	if cfg.MQTTUsername != "" {
		opts.SetUsername(cfg.MQTTUsername)
		opts.SetPassword(cfg.MQTTPassword)
	}
	opts.SetAutoReconnect(true)
	opts.SetConnectTimeout(5 * time.Second)

	return &MQTTService{
		Client: mqtt.NewClient(opts),
		Config: cfg,
	}
}

// Connect 连接MQTT服务器
func (s *MQTTService) Connect() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isConnected && s.Client.IsConnected() {
		return nil
	}

	token := s.Client.Connect()
	if !token.WaitTimeout(5*time.Second) || token.Error() != nil {
		return fmt.Errorf("MQTT连接失败: %v", token.Error())
	}

	s.isConnected = true
	log.Printf("[MQTT] 成功连接到 %s", s.Config.MQTTBrokerURL)
	return nil
}

// PublishRotationUpdate 发布轮值变更消息
func (s *MQTTService) PublishRotationUpdate(msg RotationUpdateMessage) error {
	s.publishMutex.Lock()
	defer s.publishMutex.Unlock()

	s.mu.RLock()
	connected := s.isConnected && s.Client.IsConnected()
	s.mu.RUnlock()

	if !connected {
		if err := s.Connect(); err != nil {
			return err
		}
	}

	if msg.Timestamp == 0 {
		msg.Timestamp = time.Now().UnixMilli()
	}

	jsonData, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("序列化消息失败: %v", err)
	}

	token := s.Client.Publish(TopicRotationUpdate, byte(s.Config.MQTTQoS), s.Config.MQTTRetained, jsonData)
	if !token.WaitTimeout(3 * time.Second) {
		return fmt.Errorf("发布消息超时")
	}
	if token.Error() != nil {
		return fmt.Errorf("发布消息失败: %v", token.Error())
	}

	log.Printf("[MQTT] 已发布轮值变更(%s)到主题: %s", msg.Action, TopicRotationUpdate)
	return nil
}

// Disconnect 断开MQTT连接
func (s *MQTTService) Disconnect() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.isConnected {
		s.Client.Disconnect(250)
		s.isConnected = false
	}
}
