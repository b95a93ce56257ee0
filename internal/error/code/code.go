package code

// HTTP状态码.
const (
	// StatusOK - 200: 成功.
	StatusOK = 200
	// StatusBadRequest - 400: 请求参数错误.
	StatusBadRequest = 400
	// StatusUnauthorized - 401: 未授权.
	StatusUnauthorized = 401
	// StatusForbidden - 403: 禁止访问.
	StatusForbidden = 403
	// StatusNotFound - 404: 资源不存在.
	StatusNotFound = 404
	// StatusConflict - 409: 资源冲突.
	StatusConflict = 409
	// StatusInternalServerError - 500: 服务器内部错误.
	StatusInternalServerError = 500
	// StatusTooManyRequests - 429: 请求过多.
	StatusTooManyRequests = 429
)

// 通用错误码 (100xxx).
const (
	// ErrSuccess - 200: 成功.
	ErrSuccess int = iota + 100000
	// ErrUnknown - 500: 未知错误.
	ErrUnknown
	// ErrBind - 400: 请求参数绑定错误.
	ErrBind
	// ErrValidation - 400: 请求参数验证错误.
	ErrValidation
	// ErrTokenInvalid - 401: 令牌无效.
	ErrTokenInvalid
	// ErrPermissionDenied - 403: 权限不足.
	ErrPermissionDenied
	// ErrTooManyRequests - 429: 请求频率过高.
	ErrTooManyRequests
)

// 管理员相关错误码 (101xxx).
const (
	// ErrAdminNotFound - 404: 管理员不存在.
	ErrAdminNotFound int = iota + 101000
	// ErrAdminAlreadyExist - 409: 管理员已存在.
	ErrAdminAlreadyExist
	// ErrAdminPasswordIncorrect - 401: 登录凭证错误.
	ErrAdminPasswordIncorrect
	// ErrAdminSelfDelete - 403: 不能删除当前登录的管理员.
	ErrAdminSelfDelete
)

// 住户相关错误码 (102xxx).
const (
	// ErrResidentNotFound - 404: 住户不存在.
	ErrResidentNotFound int = iota + 102000
	// ErrResidentOrderMismatch - 400: 排序列表与现有住户不一致.
	ErrResidentOrderMismatch
)

// 轮值相关错误码 (103xxx).
const (
	// ErrRotationEmpty - 400: 轮值表为空.
	ErrRotationEmpty int = iota + 103000
	// ErrRotationStateMissing - 500: 轮值状态记录缺失.
	ErrRotationStateMissing
)

// 通知派发相关错误码 (104xxx).
const (
	// ErrNoRecipients - 400: 没有可通知的收件人.
	ErrNoRecipients int = iota + 104000
	// ErrProviderFailure - 500: 渠道调用失败.
	ErrProviderFailure
)

// 历史记录相关错误码 (105xxx).
const (
	// ErrHistoryNotFound - 404: 通讯记录不存在.
	ErrHistoryNotFound int = iota + 105000
)

// 报修相关错误码 (106xxx).
const (
	// ErrIssueNotFound - 404: 报修记录不存在.
	ErrIssueNotFound int = iota + 106000
)

// 设置相关错误码 (107xxx).
const (
	// ErrSettingsNotFound - 500: 系统设置记录缺失.
	ErrSettingsNotFound int = iota + 107000
)

// 数据库相关错误码 (108xxx).
const (
	// ErrDatabase - 500: 数据库错误.
	ErrDatabase int = iota + 108000
	// ErrRecordNotFound - 404: 记录不存在.
	ErrRecordNotFound
)
