package controllers

import (
	"github.com/gin-gonic/gin"

	"binreminder-http-service/internal/domain/services"
	"binreminder-http-service/internal/domain/services/container"
	"binreminder-http-service/internal/error/code"
	"binreminder-http-service/internal/error/response"
)

// InterfaceDashboardController 定义仪表盘控制器接口
type InterfaceDashboardController interface {
	GetDashboard()
}

// DashboardController 处理仪表盘相关的请求
type DashboardController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewDashboardController 创建一个新的仪表盘控制器
func NewDashboardController(ctx *gin.Context, container *container.ServiceContainer) *DashboardController {
	return &DashboardController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleDashboardFunc 返回一个处理仪表盘请求的Gin处理函数
func HandleDashboardFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewDashboardController(ctx, container)

		switch method {
		case "getDashboard":
			controller.GetDashboard()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// GetDashboard 获取仪表盘概览
// @Summary      获取仪表盘概览
// @Description  返回当前和下一位值日住户、最近提醒日期和暂停状态
// @Tags         Dashboard
// @Produce      json
// @Security     ApiKeyAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Router       /dashboard [get]
func (c *DashboardController) GetDashboard() {
	rotationService := c.Container.GetService("rotation").(services.InterfaceRotationService)
	current, next, err := rotationService.Snapshot()
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "获取轮值信息失败", nil)
		return
	}

	settingsService := c.Container.GetService("settings").(services.InterfaceSettingsService)
	settings, err := settingsService.Get()
	if err != nil {
		response.Fail(c.Ctx, code.ErrSettingsNotFound, nil)
		return
	}

	response.Success(c.Ctx, gin.H{
		"current_turn":       current,
		"next_turn":          next,
		"last_reminder_date": settings.LastReminderDate,
		"reminders_paused":   settings.RemindersPaused,
	})
}
