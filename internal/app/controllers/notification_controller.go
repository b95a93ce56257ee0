package controllers

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"

	"binreminder-http-service/internal/app/middleware"
	"binreminder-http-service/internal/domain/services"
	"binreminder-http-service/internal/domain/services/container"
	"binreminder-http-service/internal/error/code"
	"binreminder-http-service/internal/error/response"
)

// InterfaceNotificationController 定义通知控制器接口
type InterfaceNotificationController interface {
	TriggerReminder()
	SendAnnouncement()
}

// NotificationController 处理提醒和公告相关的请求
type NotificationController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewNotificationController 创建一个新的通知控制器
func NewNotificationController(ctx *gin.Context, container *container.ServiceContainer) *NotificationController {
	return &NotificationController{
		Ctx:       ctx,
		Container: container,
	}
}

// TriggerReminderRequest 表示触发提醒请求
type TriggerReminderRequest struct {
	Message string `json:"message" example:"Hi {first_name}, bins out tonight please!"`
}

// AnnouncementRequest 表示发送公告请求
type AnnouncementRequest struct {
	Subject     string   `json:"subject" binding:"required" example:"Water outage"`
	Message     string   `json:"message" binding:"required" example:"Water will be off 9-11am on Friday."`
	ResidentIDs []string `json:"resident_ids" binding:"required"`
}

// HandleNotificationFunc 返回一个处理通知请求的Gin处理函数
func HandleNotificationFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewNotificationController(ctx, container)

		switch method {
		case "triggerReminder":
			controller.TriggerReminder()
		case "sendAnnouncement":
			controller.SendAnnouncement()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

func (c *NotificationController) logAction(action string) {
	logService := c.Container.GetService("log").(services.InterfaceLogService)
	logService.Append(c.Ctx.GetString("adminEmail"), action)
}

// TriggerReminder 触发值日提醒
// @Summary      触发值日提醒
// @Description  向当前值日住户的全部已配置渠道发送提醒。只要有任一渠道成功，轮值指针就前移。定时任务通过x-cron-secret触发，且会尊重暂停开关；管理员手动触发不受暂停影响。
// @Tags         Notification
// @Accept       json
// @Produce      json
// @Param        request body TriggerReminderRequest false "可选的自定义消息模板"
// @Security     ApiKeyAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /trigger-reminder [post]
func (c *NotificationController) TriggerReminder() {
	var req TriggerReminderRequest
	// 请求体可以为空
	_ = c.Ctx.ShouldBindJSON(&req)

	scheduled := c.Ctx.GetBool("scheduled")

	dispatchService := c.Container.GetService("dispatch").(services.InterfaceDispatchService)
	result, err := dispatchService.TriggerReminder(c.Ctx.Request.Context(), req.Message, scheduled)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrRemindersPaused):
			response.SuccessWithMessage(c.Ctx, "提醒已暂停，本次不发送", gin.H{"paused": true})
		case errors.Is(err, services.ErrEmptyRotation):
			response.Fail(c.Ctx, code.ErrRotationEmpty, nil)
		case errors.Is(err, services.ErrNoRecipients):
			response.Fail(c.Ctx, code.ErrNoRecipients, nil)
		default:
			response.FailWithMessage(c.Ctx, code.ErrDatabase, "触发提醒失败", nil)
		}
		return
	}

	c.logAction("Triggered reminder for: " + result.Resident.Name)
	middleware.PurgeCache()

	response.Success(c.Ctx, gin.H{
		"resident": result.Resident,
		"status":   result.Event.Status,
		"advanced": result.Advanced,
		"current":  result.NewCurrent,
	})
}

// SendAnnouncement 向指定住户发送公告
// @Summary      发送公告
// @Description  向指定住户的全部已配置渠道发送公告，渠道失败互相隔离
// @Tags         Notification
// @Accept       json
// @Produce      json
// @Param        request body AnnouncementRequest true "公告内容和收件人"
// @Security     ApiKeyAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /announcements [post]
func (c *NotificationController) SendAnnouncement() {
	var req AnnouncementRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "请求参数错误: "+err.Error())
		return
	}

	dispatchService := c.Container.GetService("dispatch").(services.InterfaceDispatchService)
	event, count, err := dispatchService.SendAnnouncement(c.Ctx.Request.Context(), req.Subject, req.Message, req.ResidentIDs)
	if err != nil {
		if errors.Is(err, services.ErrNoRecipients) {
			response.Fail(c.Ctx, code.ErrNoRecipients, nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "发送公告失败", nil)
		return
	}

	c.logAction(fmt.Sprintf("Sent announcement %q to %d residents", req.Subject, count))

	response.Success(c.Ctx, gin.H{
		"status":     event.Status,
		"recipients": count,
	})
}
