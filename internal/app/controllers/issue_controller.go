package controllers

import (
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"binreminder-http-service/internal/app/middleware"
	"binreminder-http-service/internal/domain/models"
	"binreminder-http-service/internal/domain/services"
	"binreminder-http-service/internal/domain/services/container"
	"binreminder-http-service/internal/error/code"
	"binreminder-http-service/internal/error/response"
)

// InterfaceIssueController 定义报修控制器接口
type InterfaceIssueController interface {
	GetPublicIssues()
	CreateIssue()
	GetIssues()
	UpdateIssueStatus()
	DeleteIssues()
}

// IssueController 处理报修相关的请求
type IssueController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewIssueController 创建一个新的报修控制器
func NewIssueController(ctx *gin.Context, container *container.ServiceContainer) *IssueController {
	return &IssueController{
		Ctx:       ctx,
		Container: container,
	}
}

// IssueRequest 表示公开提交报修请求
type IssueRequest struct {
	ReportedBy  string `json:"reported_by" binding:"required" example:"Jane Smith"`
	FlatNumber  string `json:"flat_number" binding:"required" example:"2B"`
	Description string `json:"description" binding:"required" example:"Bin store door is broken"`
}

// IssueStatusRequest 表示更新报修状态请求
type IssueStatusRequest struct {
	Status models.IssueStatus `json:"status" binding:"required" example:"In Progress"`
}

// DeleteIssuesRequest 表示批量删除报修请求
type DeleteIssuesRequest struct {
	IDs []string `json:"ids" binding:"required"`
}

// HandleIssueFunc 返回一个处理报修请求的Gin处理函数
func HandleIssueFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewIssueController(ctx, container)

		switch method {
		case "getPublicIssues":
			controller.GetPublicIssues()
		case "createIssue":
			controller.CreateIssue()
		case "getIssues":
			controller.GetIssues()
		case "updateIssueStatus":
			controller.UpdateIssueStatus()
		case "deleteIssues":
			controller.DeleteIssues()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

// GetPublicIssues 获取公开报修列表
// @Summary      获取公开报修列表
// @Description  无需认证，返回不含报修人姓名的报修投影
// @Tags         Issue
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Router       /issues/public [get]
func (c *IssueController) GetPublicIssues() {
	issueService := c.Container.GetService("issue").(services.InterfaceIssueService)
	issues, err := issueService.GetPublic()
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "获取报修列表失败", nil)
		return
	}
	response.Success(c.Ctx, issues)
}

// CreateIssue 公开提交报修
// @Summary      提交报修
// @Description  无需认证。创建报修并向业主的全部已配置渠道发送通知，通知结果记入通讯历史
// @Tags         Issue
// @Accept       json
// @Produce      json
// @Param        request body IssueRequest true "报修内容"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /issues [post]
func (c *IssueController) CreateIssue() {
	var req IssueRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "请求参数错误: "+err.Error())
		return
	}

	issueService := c.Container.GetService("issue").(services.InterfaceIssueService)
	issue, err := issueService.CreatePublic(c.Ctx.Request.Context(), req.ReportedBy, req.FlatNumber, req.Description)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "提交报修失败", nil)
		return
	}

	middleware.PurgeCache()
	response.Success(c.Ctx, issue)
}

// GetIssues 获取全部报修
// @Summary      获取报修列表
// @Description  管理端接口，包含报修人姓名
// @Tags         Issue
// @Produce      json
// @Security     ApiKeyAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Router       /issues [get]
func (c *IssueController) GetIssues() {
	issueService := c.Container.GetService("issue").(services.InterfaceIssueService)
	issues, err := issueService.GetAll()
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "获取报修列表失败", nil)
		return
	}
	response.Success(c.Ctx, issues)
}

// UpdateIssueStatus 更新报修状态
// @Summary      更新报修状态
// @Description  只允许修改处理状态字段
// @Tags         Issue
// @Accept       json
// @Produce      json
// @Param        id path string true "报修ID"
// @Param        request body IssueStatusRequest true "新的状态"
// @Security     ApiKeyAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /issues/{id} [put]
func (c *IssueController) UpdateIssueStatus() {
	id := c.Ctx.Param("id")
	if id == "" {
		response.ParamError(c.Ctx, "报修ID不能为空")
		return
	}

	var req IssueStatusRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "请求参数错误: "+err.Error())
		return
	}
	switch req.Status {
	case models.IssueReported, models.IssueInProgress, models.IssueResolved:
	default:
		response.ParamError(c.Ctx, "无效的报修状态")
		return
	}

	issueService := c.Container.GetService("issue").(services.InterfaceIssueService)
	issue, err := issueService.UpdateStatus(id, req.Status)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c.Ctx, code.ErrIssueNotFound, nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "更新报修状态失败", nil)
		return
	}

	logService := c.Container.GetService("log").(services.InterfaceLogService)
	logService.Append(c.Ctx.GetString("adminEmail"),
		fmt.Sprintf("Updated issue %s status to %s", issue.ID, issue.Status))

	middleware.PurgeCache()
	response.Success(c.Ctx, issue)
}

// DeleteIssues 批量删除报修
// @Summary      批量删除报修
// @Description  删除指定ID的报修记录，不存在的ID会被忽略
// @Tags         Issue
// @Accept       json
// @Produce      json
// @Param        request body DeleteIssuesRequest true "要删除的报修ID列表"
// @Security     ApiKeyAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /issues [delete]
func (c *IssueController) DeleteIssues() {
	var req DeleteIssuesRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "请求参数错误: "+err.Error())
		return
	}

	issueService := c.Container.GetService("issue").(services.InterfaceIssueService)
	deleted, err := issueService.DeleteMany(req.IDs)
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "删除报修失败", nil)
		return
	}

	logService := c.Container.GetService("log").(services.InterfaceLogService)
	logService.Append(c.Ctx.GetString("adminEmail"), fmt.Sprintf("Deleted %d issues", deleted))

	middleware.PurgeCache()
	response.Success(c.Ctx, gin.H{"deleted": deleted})
}
