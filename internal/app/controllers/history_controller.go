package controllers

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"binreminder-http-service/internal/domain/services"
	"binreminder-http-service/internal/domain/services/container"
	"binreminder-http-service/internal/error/code"
	"binreminder-http-service/internal/error/response"
)

// InterfaceHistoryController 定义通讯历史控制器接口
type InterfaceHistoryController interface {
	GetHistory()
	DeleteHistory()
}

// HistoryController 处理通讯历史相关的请求
type HistoryController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewHistoryController 创建一个新的通讯历史控制器
func NewHistoryController(ctx *gin.Context, container *container.ServiceContainer) *HistoryController {
	return &HistoryController{
		Ctx:       ctx,
		Container: container,
	}
}

// DeleteHistoryRequest 表示批量删除通讯记录请求
type DeleteHistoryRequest struct {
	IDs []string `json:"ids" binding:"required"`
}

// HandleHistoryFunc 返回一个处理通讯历史请求的Gin处理函数
func HandleHistoryFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewHistoryController(ctx, container)

		switch method {
		case "getHistory":
			controller.GetHistory()
		case "deleteHistory":
			controller.DeleteHistory()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// GetHistory 获取通讯历史
// @Summary      获取通讯历史
// @Description  按时间倒序返回全部通讯事件及明细
// @Tags         History
// @Produce      json
// @Security     ApiKeyAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Router       /history [get]
func (c *HistoryController) GetHistory() {
	historyService := c.Container.GetService("history").(services.InterfaceHistoryService)
	events, err := historyService.Query()
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "获取通讯历史失败", nil)
		return
	}
	response.Success(c.Ctx, events)
}

// DeleteHistory 批量删除通讯记录
// @Summary      批量删除通讯记录
// @Description  删除指定ID的通讯事件及其明细，不存在的ID会被忽略
// @Tags         History
// @Accept       json
// @Produce      json
// @Param        request body DeleteHistoryRequest true "要删除的事件ID列表"
// @Security     ApiKeyAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /history [delete]
func (c *HistoryController) DeleteHistory() {
	var req DeleteHistoryRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "请求参数错误: "+err.Error())
		return
	}

	historyService := c.Container.GetService("history").(services.InterfaceHistoryService)
	deleted, err := historyService.DeleteMany(req.IDs)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "删除通讯记录失败", nil)
		return
	}

	logService := c.Container.GetService("log").(services.InterfaceLogService)
	logService.Append(c.Ctx.GetString("adminEmail"), fmt.Sprintf("Deleted %d history entries", deleted))

	response.Success(c.Ctx, gin.H{"deleted": deleted})
}
