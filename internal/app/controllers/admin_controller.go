package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"binreminder-http-service/internal/domain/models"
	"binreminder-http-service/internal/domain/services"
	"binreminder-http-service/internal/domain/services/container"
	"binreminder-http-service/internal/error/code"
	"binreminder-http-service/internal/error/response"
)

// InterfaceAdminController 定义管理员控制器接口
type InterfaceAdminController interface {
	GetAdmins()
	GetAdmin()
	CreateAdmin()
	UpdateAdmin()
	DeleteAdmin()
}

// AdminController 处理管理员相关的请求
type AdminController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewAdminController 创建一个新的管理员控制器
func NewAdminController(ctx *gin.Context, container *container.ServiceContainer) *AdminController {
	return &AdminController{
		Ctx:       ctx,
		Container: container,
	}
}

// AdminRequest 表示创建管理员请求
type AdminRequest struct {
	Email    string `json:"email" binding:"required,email" example:"editor@example.com"`
	Password string `json:"password" binding:"required,min=8" example:"changeme123"`
	Role     string `json:"role" binding:"required,oneof=superuser editor" example:"editor"`
}

// HandleAdminFunc 返回一个处理管理员请求的Gin处理函数
func HandleAdminFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewAdminController(ctx, container)

		switch method {
		case "getAdmins":
			controller.GetAdmins()
		case "getAdmin":
			controller.GetAdmin()
		case "createAdmin":
			controller.CreateAdmin()
		case "updateAdmin":
			controller.UpdateAdmin()
		case "deleteAdmin":
			controller.DeleteAdmin()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

func (c *AdminController) logAction(action string) {
	logService := c.Container.GetService("log").(services.InterfaceLogService)
	logService.Append(c.Ctx.GetString("adminEmail"), action)
}

// GetAdmins 获取所有管理员
// @Summary      获取管理员列表
// @Tags         Admin
// @Produce      json
// @Security     ApiKeyAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Router       /admins [get]
func (c *AdminController) GetAdmins() {
	adminService := c.Container.GetService("admin").(services.InterfaceAdminService)
	admins, err := adminService.GetAllAdmins()
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "获取管理员列表失败", nil)
		return
	}
	response.Success(c.Ctx, admins)
}

// GetAdmin 获取单个管理员
// @Summary      获取管理员详情
// @Tags         Admin
// @Produce      json
// @Param        id path string true "管理员ID"
// @Security     ApiKeyAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /admins/{id} [get]
func (c *AdminController) GetAdmin() {
	id := c.Ctx.Param("id")
	if id == "" {
		response.ParamError(c.Ctx, "管理员ID不能为空")
		return
	}

	adminService := c.Container.GetService("admin").(services.InterfaceAdminService)
	admin, err := adminService.GetAdminByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c.Ctx, code.ErrAdminNotFound, nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "获取管理员信息失败", nil)
		return
	}
	response.Success(c.Ctx, admin)
}

// CreateAdmin 创建新管理员
// @Summary      创建管理员
// @Description  邮箱必须唯一，密码会以bcrypt哈希存储
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        request body AdminRequest true "管理员信息"
// @Security     ApiKeyAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      409  {object}  ErrorResponse
// @Router       /admins [post]
func (c *AdminController) CreateAdmin() {
	var req AdminRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "请求参数错误: "+err.Error())
		return
	}

	admin := &models.Admin{
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	}

	adminService := c.Container.GetService("admin").(services.InterfaceAdminService)
	if err := adminService.CreateAdmin(admin); err != nil {
		if errors.Is(err, services.ErrAdminEmailTaken) {
			response.Fail(c.Ctx, code.ErrAdminAlreadyExist, nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "创建管理员失败", nil)
		return
	}

	c.logAction("Added admin: " + admin.Email)
	response.Success(c.Ctx, admin)
}

// UpdateAdmin 更新管理员信息
// @Summary      更新管理员
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Param        id path string true "管理员ID"
// @Param        request body map[string]interface{} true "要更新的字段"
// @Security     ApiKeyAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      409  {object}  ErrorResponse
// @Router       /admins/{id} [put]
func (c *AdminController) UpdateAdmin() {
	id := c.Ctx.Param("id")
	if id == "" {
		response.ParamError(c.Ctx, "管理员ID不能为空")
		return
	}

	var updates map[string]interface{}
	if err := c.Ctx.ShouldBindJSON(&updates); err != nil {
		response.ParamError(c.Ctx, "请求参数错误: "+err.Error())
		return
	}

	adminService := c.Container.GetService("admin").(services.InterfaceAdminService)
	admin, err := adminService.UpdateAdmin(id, updates)
	if err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			response.Fail(c.Ctx, code.ErrAdminNotFound, nil)
		case errors.Is(err, services.ErrAdminEmailTaken):
			response.Fail(c.Ctx, code.ErrAdminAlreadyExist, nil)
		default:
			response.FailWithMessage(c.Ctx, code.ErrDatabase, "更新管理员失败", nil)
		}
		return
	}

	c.logAction("Updated admin: " + admin.Email)
	response.Success(c.Ctx, admin)
}

// DeleteAdmin 删除管理员
// @Summary      删除管理员
// @Description  不允许删除当前登录的管理员
// @Tags         Admin
// @Produce      json
// @Param        id path string true "管理员ID"
// @Security     ApiKeyAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  ErrorResponse
// @Router       /admins/{id} [delete]
func (c *AdminController) DeleteAdmin() {
	id := c.Ctx.Param("id")
	if id == "" {
		response.ParamError(c.Ctx, "管理员ID不能为空")
		return
	}

	adminService := c.Container.GetService("admin").(services.InterfaceAdminService)
	if err := adminService.DeleteAdmin(id, c.Ctx.GetString("adminID")); err != nil {
		switch {
		case errors.Is(err, services.ErrSelfDelete):
			response.Fail(c.Ctx, code.ErrAdminSelfDelete, nil)
		case errors.Is(err, gorm.ErrRecordNotFound):
			response.Fail(c.Ctx, code.ErrAdminNotFound, nil)
		default:
			response.FailWithMessage(c.Ctx, code.ErrDatabase, "删除管理员失败", nil)
		}
		return
	}

	c.logAction("Deleted admin: " + id)
	response.SuccessWithMessage(c.Ctx, "管理员已删除", nil)
}
