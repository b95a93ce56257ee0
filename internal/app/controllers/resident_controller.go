package controllers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"binreminder-http-service/internal/app/middleware"
	"binreminder-http-service/internal/domain/models"
	"binreminder-http-service/internal/domain/services"
	"binreminder-http-service/internal/domain/services/container"
	"binreminder-http-service/internal/error/code"
	"binreminder-http-service/internal/error/response"
)

// InterfaceResidentController 定义住户控制器接口
type InterfaceResidentController interface {
	GetResidents()
	GetResident()
	CreateResident()
	UpdateResident()
	DeleteResident()
	ReorderResidents()
}

// ResidentController 处理住户相关的请求
type ResidentController struct {
	Ctx       *gin.Context
	Container *container.ServiceContainer
}

// NewResidentController 创建一个新的住户控制器
func NewResidentController(ctx *gin.Context, container *container.ServiceContainer) *ResidentController {
	return &ResidentController{
		Ctx:       ctx,
		Container: container,
	}
}

// ContactRequest 联系方式载荷，提交时整体覆盖三个渠道
type ContactRequest struct {
	WhatsApp string `json:"whatsapp" example:"+447700900123"`
	SMS      string `json:"sms" example:"+447700900123"`
	Email    string `json:"email" binding:"omitempty,email" example:"jane@example.com"`
}

// ResidentRequest 表示创建住户请求
type ResidentRequest struct {
	Name       string         `json:"name" binding:"required" example:"Jane Smith"`
	FlatNumber string         `json:"flat_number" binding:"required" example:"2B"`
	Notes      string         `json:"notes" example:"Away on Tuesdays"`
	Contact    ContactRequest `json:"contact"`
}

// UpdateResidentRequest 表示更新住户请求，省略的字段保持原值
type UpdateResidentRequest struct {
	Name       string          `json:"name" example:"Jane Smith"`
	FlatNumber string          `json:"flat_number" example:"2B"`
	Notes      *string         `json:"notes" example:"Away on Tuesdays"`
	Contact    *ContactRequest `json:"contact"`
}

// columns 把请求展开为数据库列更新映射。
// contact 作为整体提交，展开后覆盖三个联系渠道列。
func (r *UpdateResidentRequest) columns() map[string]interface{} {
	updates := make(map[string]interface{})
	if r.Name != "" {
		updates["name"] = r.Name
	}
	if r.FlatNumber != "" {
		updates["flat_number"] = r.FlatNumber
	}
	if r.Notes != nil {
		updates["notes"] = *r.Notes
	}
	if r.Contact != nil {
		updates["contact_whatsapp"] = r.Contact.WhatsApp
		updates["contact_sms"] = r.Contact.SMS
		updates["contact_email"] = r.Contact.Email
	}
	return updates
}

// ReorderRequest 表示调整轮值顺序请求，载荷为按新顺序排列的住户列表
type ReorderRequest struct {
	Residents []ReorderResidentRef `json:"residents" binding:"required,dive"`
}

// ReorderResidentRef 轮值顺序提交项，排序只使用ID，其余字段忽略
type ReorderResidentRef struct {
	ID string `json:"id" binding:"required"`
}

func (r *ReorderRequest) orderedIDs() []string {
	ids := make([]string, 0, len(r.Residents))
	for _, resident := range r.Residents {
		ids = append(ids, resident.ID)
	}
	return ids
}

// HandleResidentFunc 返回一个处理住户请求的Gin处理函数
func HandleResidentFunc(container *container.ServiceContainer, method string) gin.HandlerFunc {
	return func(ctx *gin.Context) {
		controller := NewResidentController(ctx, container)

		switch method {
		case "getResidents":
			controller.GetResidents()
		case "getResident":
			controller.GetResident()
		case "createResident":
			controller.CreateResident()
		case "updateResident":
			controller.UpdateResident()
		case "deleteResident":
			controller.DeleteResident()
		case "reorderResidents":
			controller.ReorderResidents()
		default:
			response.FailWithMessage(ctx, code.ErrBind, "无效的方法", nil)
		}
	}
}

func (c *ResidentController) logAction(action string) {
	logService := c.Container.GetService("log").(services.InterfaceLogService)
	logService.Append(c.Ctx.GetString("adminEmail"), action)
}

// GetResidents 获取所有住户
// @Summary      获取住户列表
// @Description  按轮值顺序返回全部住户
// @Tags         Resident
// @Produce      json
// @Security     ApiKeyAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  ErrorResponse
// @Router       /residents [get]
func (c *ResidentController) GetResidents() {
	residentService := c.Container.GetService("resident").(services.InterfaceResidentService)
	residents, err := residentService.GetAllResidents()
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "获取住户列表失败", nil)
		return
	}
	response.Success(c.Ctx, residents)
}

// GetResident 获取单个住户
// @Summary      获取住户详情
// @Tags         Resident
// @Produce      json
// @Param        id path string true "住户ID"
// @Security     ApiKeyAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /residents/{id} [get]
func (c *ResidentController) GetResident() {
	id := c.Ctx.Param("id")
	if id == "" {
		response.ParamError(c.Ctx, "住户ID不能为空")
		return
	}

	residentService := c.Container.GetService("resident").(services.InterfaceResidentService)
	resident, err := residentService.GetResidentByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c.Ctx, code.ErrResidentNotFound, nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "获取住户信息失败", nil)
		return
	}
	response.Success(c.Ctx, resident)
}

// CreateResident 创建新住户
// @Summary      创建住户
// @Description  创建新住户并追加到轮值顺序末尾
// @Tags         Resident
// @Accept       json
// @Produce      json
// @Param        request body ResidentRequest true "住户信息"
// @Security     ApiKeyAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /residents [post]
func (c *ResidentController) CreateResident() {
	var req ResidentRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "请求参数错误: "+err.Error())
		return
	}

	resident := &models.Resident{
		Name:       req.Name,
		FlatNumber: req.FlatNumber,
		Notes:      req.Notes,
		Contact: models.ContactInfo{
			WhatsApp: req.Contact.WhatsApp,
			SMS:      req.Contact.SMS,
			Email:    req.Contact.Email,
		},
	}

	residentService := c.Container.GetService("resident").(services.InterfaceResidentService)
	if err := residentService.CreateResident(resident); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "创建住户失败", nil)
		return
	}

	c.logAction("Added resident: " + resident.Name)
	middleware.PurgeCache()
	response.Success(c.Ctx, resident)
}

// UpdateResident 更新住户信息
// @Summary      更新住户
// @Description  更新住户信息，轮值位置不能通过此接口修改
// @Tags         Resident
// @Accept       json
// @Produce      json
// @Param        id path string true "住户ID"
// @Param        request body UpdateResidentRequest true "要更新的字段"
// @Security     ApiKeyAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /residents/{id} [put]
func (c *ResidentController) UpdateResident() {
	id := c.Ctx.Param("id")
	if id == "" {
		response.ParamError(c.Ctx, "住户ID不能为空")
		return
	}

	var req UpdateResidentRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "请求参数错误: "+err.Error())
		return
	}

	residentService := c.Container.GetService("resident").(services.InterfaceResidentService)
	resident, err := residentService.UpdateResident(id, req.columns())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c.Ctx, code.ErrResidentNotFound, nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "更新住户失败", nil)
		return
	}

	c.logAction("Updated resident: " + resident.Name)
	middleware.PurgeCache()
	response.Success(c.Ctx, resident)
}

// DeleteResident 删除住户
// @Summary      删除住户
// @Description  从轮值表中移除住户，如果删除的是当前值日住户会自动修复指针
// @Tags         Resident
// @Produce      json
// @Param        id path string true "住户ID"
// @Security     ApiKeyAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  ErrorResponse
// @Router       /residents/{id} [delete]
func (c *ResidentController) DeleteResident() {
	id := c.Ctx.Param("id")
	if id == "" {
		response.ParamError(c.Ctx, "住户ID不能为空")
		return
	}

	residentService := c.Container.GetService("resident").(services.InterfaceResidentService)
	resident, err := residentService.GetResidentByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			response.Fail(c.Ctx, code.ErrResidentNotFound, nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "获取住户信息失败", nil)
		return
	}

	if err := residentService.DeleteResident(id); err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "删除住户失败", nil)
		return
	}

	c.logAction("Deleted resident: " + resident.Name)
	middleware.PurgeCache()
	response.SuccessWithMessage(c.Ctx, "住户已删除", nil)
}

// ReorderResidents 调整轮值顺序
// @Summary      调整轮值顺序
// @Description  提交按新顺序排列的完整住户列表，ID集合必须与现有住户完全一致
// @Tags         Resident
// @Accept       json
// @Produce      json
// @Param        request body ReorderRequest true "新的轮值顺序"
// @Security     ApiKeyAuth
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  ErrorResponse
// @Router       /residents/order [put]
func (c *ResidentController) ReorderResidents() {
	var req ReorderRequest
	if err := c.Ctx.ShouldBindJSON(&req); err != nil {
		response.ParamError(c.Ctx, "请求参数错误: "+err.Error())
		return
	}

	residentService := c.Container.GetService("resident").(services.InterfaceResidentService)
	if err := residentService.Reorder(req.orderedIDs()); err != nil {
		if errors.Is(err, services.ErrOrderMismatch) {
			response.FailWithMessage(c.Ctx, code.ErrResidentOrderMismatch, err.Error(), nil)
			return
		}
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "调整轮值顺序失败", nil)
		return
	}

	c.logAction("Reordered rotation")
	middleware.PurgeCache()

	residents, err := residentService.GetAllResidents()
	if err != nil {
		response.FailWithMessage(c.Ctx, code.ErrDatabase, "获取住户列表失败", nil)
		return
	}
	response.Success(c.Ctx, residents)
}
