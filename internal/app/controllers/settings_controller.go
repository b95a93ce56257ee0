package controllers

import (
	"github.com/gin-gonic/gin"

	"binreminder-http-service/internal/app/middleware"
	"binreminder-http-service/internal/domain/services"
	"binreminder-http-service/internal/domain/services/container"
	"binreminder-http-service/internal/error/code"
	"binreminder-http-service/internal/error/response"
)

// InterfaceSettingsController 定义系统设置控制器接口
type InterfaceSettingsController interface {
	GetSettings()
	UpdateSettings()
}

// SettingsController 处理系统设置相关的请求
type SettingsController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewSettingsController 创建一个新的系统设置控制器
func NewSettingsController(ctx *gin.Context, container *container.ServiceContainer) *SettingsController {
	return &SettingsController{
		Ctx:       ctx,
		Container: container,
	}
}

// HandleSettingsFunc 返回一个处理系统设置请求的Gin处理函数
func HandleSettingsFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewSettingsController(ctx, container)

		switch method {
		case "getSettings":
			controller.GetSettings()
		case "updateSettings":
			controller.UpdateSettings()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// GetSettings 获取系统设置
// @Summary      获取系统设置
// @Tags         Settings
// @Produce      json
// @Security     ApiKeyAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Router       /settings [get]
func (c *SettingsController) GetSettings() {
	settingsService := c.Container.GetService("settings").(services.InterfaceSettingsService)
	settings, err := settingsService.Get()
	if err != nil {
		response.Fail(c.Ctx, code.ErrSettingsNotFound, nil)
		return
	}
	response.Success(c.Ctx, settings)
}

// UpdateSettings 更新系统设置
// @Summary      更新系统设置
// @Description  更新业主信息、提醒模板、暂停开关等，更新后会使Redis缓存失效
// @Tags         Settings
// @Accept       json
// @Produce      json
// @Param        request body map[string]interface{} true "要更新的字段"
// @Security     ApiKeyAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /settings [put]
func (c *SettingsController) UpdateSettings() {
	var updates map[string]interface{}
	if err := c.Ctx.ShouldBindJSON(&updates); err != nil {
		response.ParamError(c.Ctx, "请求参数错误: "+err.Error())
		return
	}

	settingsService := c.Container.GetService("settings").(services.InterfaceSettingsService)
	settings, err := settingsService.Update(updates)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "更新系统设置失败", nil)
		return
	}

	logService := c.Container.GetService("log").(services.InterfaceLogService)
	logService.Append(c.Ctx.GetString("adminEmail"), "Updated system settings")

	middleware.PurgeCache()
	response.Success(c.Ctx, settings)
}
