package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"binreminder-http-service/internal/app/middleware"
	"binreminder-http-service/internal/domain/services"
	"binreminder-http-service/internal/domain/services/container"
	"binreminder-http-service/internal/error/code"
	"binreminder-http-service/internal/error/response"
)

// InterfaceRotationController 定义轮值控制器接口
type InterfaceRotationController interface {
	SetCurrentTurn()
	AdvanceTurn()
	SkipTurn()
}

// RotationController 处理轮值指针相关的请求
type RotationController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewRotationController 创建一个新的轮值控制器
func NewRotationController(ctx *gin.Context, container *container.ServiceContainer) *RotationController {
	return &RotationController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleRotationFunc 返回一个处理轮值请求的Gin处理函数
func HandleRotationFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewRotationController(ctx, container)

		switch method {
		case "setCurrentTurn":
			controller.SetCurrentTurn()
		case "advanceTurn":
			controller.AdvanceTurn()
		case "skipTurn":
			controller.SkipTurn()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

func (c *RotationController) logAction(action string) {
	logService := c.Container.GetService("log").(services.InterfaceLogService)
	logService.Append(c.Ctx.GetString("adminEmail"), action)
}

// SetCurrentTurn 将轮值指针指向指定住户
// @Summary      设置当前值日住户
// @Description  指针直接指向该住户，轮值顺序不变
// @Tags         Rotation
// @Produce      json
// @Param        id path string true "住户ID"
// @Security     ApiKeyAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /set-current-turn/{id} [post]
func (c *RotationController) SetCurrentTurn() {
	id := c.Ctx.Param("id")
	if id == "" {
		response.ParamError(c.Ctx, "住户ID不能为空")
		return
	}

	rotationService := c.Container.GetService("rotation").(services.InterfaceRotationService)
	current, err := rotationService.SetCurrent(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c.Ctx, code.ErrResidentNotFound, nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "设置当前值日住户失败", nil)
		return
	}

	c.logAction("Set current turn to: " + current.Name)
	middleware.PurgeCache()
	c.broadcast("set")
	response.Success(c.Ctx, gin.H{"current": current})
}

// AdvanceTurn 将轮值指针移动到下一位住户
// @Summary      前移轮值指针
// @Tags         Rotation
// @Produce      json
// @Security     ApiKeyAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /advance-turn [post]
func (c *RotationController) AdvanceTurn() {
	rotationService := c.Container.GetService("rotation").(services.InterfaceRotationService)
	current, err := rotationService.Advance()
	if err != nil {
		if errors.Is(err, services.ErrEmptyRotation) {
			response.Fail(c.Ctx, code.ErrRotationEmpty, nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "前移轮值指针失败", nil)
		return
	}

	c.logAction("Advanced turn to: " + current.Name)
	middleware.PurgeCache()
	c.broadcast("advanced")
	response.Success(c.Ctx, gin.H{"current": current})
}

// SkipTurn 跳过当前值日住户
// @Summary      跳过当前值日住户
// @Description  指针移动与前移相同，但审计记录会注明是跳过，且不发送任何通知
// @Tags         Rotation
// @Produce      json
// @Security     ApiKeyAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /skip-turn [post]
func (c *RotationController) SkipTurn() {
	rotationService := c.Container.GetService("rotation").(services.InterfaceRotationService)
	skipped, current, err := rotationService.Skip()
	if err != nil {
		if errors.Is(err, services.ErrEmptyRotation) {
			response.Fail(c.Ctx, code.ErrRotationEmpty, nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "跳过当前值日住户失败", nil)
		return
	}

	c.logAction("Skipped turn for: " + skipped.Name)
	middleware.PurgeCache()
	c.broadcast("skipped")
	response.Success(c.Ctx, gin.H{
		"skipped": skipped,
		"current": current,
	})
}

// broadcast 通过MQTT广播轮值变更，服务未启用时为空操作
func (c *RotationController) broadcast(action string) {
	mqttService, ok := c.Container.GetService("mqtt").(services.InterfaceMQTTService)
	if !ok || mqttService == nil {
		return
	}

	rotationService := c.Container.GetService("rotation").(services.InterfaceRotationService)
	cur, next, err := rotationService.Snapshot()
	if err != nil || cur == nil {
		return
	}

	msg := services.RotationUpdateMessage{
		Action:          action,
		CurrentResident: cur.Name,
		CurrentFlat:     cur.FlatNumber,
	}
	if next != nil {
		msg.NextResident = next.Name
	}
	_ = mqttService.PublishRotationUpdate(msg)
}
