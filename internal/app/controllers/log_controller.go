package controllers

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"binreminder-http-service/internal/domain/services"
	"binreminder-http-service/internal/domain/services/container"
	"binreminder-http-service/internal/error/code"
	"binreminder-http-service/internal/error/response"
)

// InterfaceLogController 定义操作日志控制器接口
type InterfaceLogController interface {
	GetLogs()
	DeleteLogs()
}

// LogController 处理操作日志相关的请求
type LogController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewLogController 创建一个新的操作日志控制器
func NewLogController(ctx *gin.Context, container *container.ServiceContainer) *LogController {
	return &LogController{
		Ctx:       ctx,
		Container: container,
	}
}

// DeleteLogsRequest 表示批量删除操作日志请求
type DeleteLogsRequest struct {
	Entries []string `json:"entries" binding:"required"`
}

// HandleLogFunc 返回一个处理操作日志请求的Gin处理函数
func HandleLogFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewLogController(ctx, container)

		switch method {
		case "getLogs":
			controller.GetLogs()
		case "deleteLogs":
			controller.DeleteLogs()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// GetLogs 获取操作日志
// @Summary      获取操作日志
// @Description  按时间倒序返回格式化的操作日志字符串，最多保留100条
// @Tags         Log
// @Produce      json
// @Security     ApiKeyAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Router       /logs [get]
func (c *LogController) GetLogs() {
	logService := c.Container.GetService("log").(services.InterfaceLogService)
	logs, err := logService.List()
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "获取操作日志失败", nil)
		return
	}
	response.Success(c.Ctx, logs)
}

// DeleteLogs 批量删除操作日志
// @Summary      批量删除操作日志
// @Description  按格式化字符串匹配删除，未匹配的条目会被忽略
// @Tags         Log
// @Accept       json
// @Produce      json
// @Param        request body DeleteLogsRequest true "要删除的日志条目"
// @Security     ApiKeyAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /logs [delete]
func (c *LogController) DeleteLogs() {
	var req DeleteLogsRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "请求参数错误: "+err.Error())
		return
	}

	logService := c.Container.GetService("log").(services.InterfaceLogService)
	deleted, err := logService.DeleteMany(req.Entries)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "删除操作日志失败", nil)
		return
	}

	logService.Append(c.Ctx.GetString("adminEmail"), fmt.Sprintf("Deleted %d log entries", deleted))
	response.Success(c.Ctx, gin.H{"deleted": deleted})
}
