package code

// 错误码消息映射
var codeMessageMap = map[int]string{
	// 通用错误码
	ErrSuccess:          "成功",
	ErrUnknown:          "未知错误",
	ErrBind:             "请求参数绑定错误",
	ErrValidation:       "请求参数验证错误",
	ErrTokenInvalid:     "无效的认证令牌",
	ErrPermissionDenied: "权限不足",
	ErrTooManyRequests:  "请求频率过高",

	// 管理员相关错误码
	ErrAdminNotFound:          "管理员不存在",
	ErrAdminAlreadyExist:      "该邮箱的管理员已存在",
	ErrAdminPasswordIncorrect: "邮箱或密码错误",
	ErrAdminSelfDelete:        "不能删除当前登录的管理员",

	// 住户相关错误码
	ErrResidentNotFound:      "住户不存在",
	ErrResidentOrderMismatch: "排序列表与现有住户不一致",

	// 轮值相关错误码
	ErrRotationEmpty:        "轮值表为空",
	ErrRotationStateMissing: "轮值状态记录缺失",

	// 通知派发相关错误码
	ErrNoRecipients:   "没有可通知的收件人",
	ErrProviderFailure: "渠道调用失败",

	// 历史记录相关错误码
	ErrHistoryNotFound: "通讯记录不存在",

	// 报修相关错误码
	ErrIssueNotFound: "报修记录不存在",

	// 设置相关错误码
	ErrSettingsNotFound: "系统设置记录缺失",

	// 数据库相关错误码
	ErrDatabase:       "数据库错误",
	ErrRecordNotFound: "记录不存在",
}

// 错误码HTTP状态码映射
var codeStatusMap = map[int]int{
	// 通用错误码
	ErrSuccess:          StatusOK,
	ErrUnknown:          StatusInternalServerError,
	ErrBind:             StatusBadRequest,
	ErrValidation:       StatusBadRequest,
	ErrTokenInvalid:     StatusUnauthorized,
	ErrPermissionDenied: StatusForbidden,
	ErrTooManyRequests:  StatusTooManyRequests,

	// 管理员相关错误码
	ErrAdminNotFound:          StatusNotFound,
	ErrAdminAlreadyExist:      StatusConflict,
	ErrAdminPasswordIncorrect: StatusUnauthorized,
	ErrAdminSelfDelete:        StatusForbidden,

	// 住户相关错误码
	ErrResidentNotFound:      StatusNotFound,
	ErrResidentOrderMismatch: StatusBadRequest,

	// 轮值相关错误码
	ErrRotationEmpty:        StatusBadRequest,
	ErrRotationStateMissing: StatusInternalServerError,

	// 通知派发相关错误码
	ErrNoRecipients:    StatusBadRequest,
	ErrProviderFailure: StatusInternalServerError,

	// 历史记录相关错误码
	ErrHistoryNotFound: StatusNotFound,

	// 报修相关错误码
	ErrIssueNotFound: StatusNotFound,

	// 设置相关错误码
	ErrSettingsNotFound: StatusInternalServerError,

	// 数据库相关错误码
	ErrDatabase:       StatusInternalServerError,
	ErrRecordNotFound: StatusNotFound,
}

// GetMessage 获取错误码对应的消息
func GetMessage(code int) string {
	if msg, ok := codeMessageMap[code]; ok {
		return msg
	}
	return "未知错误"
}

// GetStatus 获取错误码对应的HTTP状态码
func GetStatus(code int) int {
	if status, ok := codeStatusMap[code]; ok {
		return status
	}
	return StatusInternalServerError
}
