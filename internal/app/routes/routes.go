package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "binreminder-http-service/docs"
	"binreminder-http-service/internal/app/controllers"
	"binreminder-http-service/internal/app/middleware"
	"binreminder-http-service/internal/domain/models"
	"binreminder-http-service/internal/domain/services/container"
	"binreminder-http-service/internal/infrastructure/config"
)

// SetupRouter 初始化并返回配置好的路由
func SetupRouter(db *gorm.DB, cfg *config.Config) *gin.Engine {
	// 初始化 Gin
	r := gin.Default()

	// 添加 CORS 中间件
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Accept, Origin, Cache-Control, X-Requested-With, x-access-token, x-cron-secret")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})
	// 设置正确的Content-Type，确保UTF-8编码
	r.Use(func(c *gin.Context) {
		c.Writer.Header().Set("Content-Type", "application/json; charset=utf-8")
		c.Next()
	})
	// 创建服务容器
	serviceContainer := container.NewServiceContainer(db, cfg, nil)
	// 初始化中间件
	middleware.InitAuthMiddleware(cfg, db)
	// 添加 Swagger 文档路由
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 注册路由
	registerRoutes(r, serviceContainer)
	return r
}

// registerRoutes 配置所有API路由
func registerRoutes(
	r *gin.Engine,
	container *container.ServiceContainer,
) {
	// API 路由根路径
	api := r.Group("/api")
	// 注册公共路由
	registerPublicRoutes(api, container)
	// 注册需要认证的路由
	registerAuthenticatedRoutes(api, container)
}

// registerPublicRoutes 注册公共路由
func registerPublicRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	// 添加IP限流中间件 - 每秒允许10个请求，最多突发20个请求
	api.Use(middleware.IPRateLimiter(10, 20))

	// 健康检查路由
	health := controllers.NewHealthCheckController()
	api.GET("/ping", health.Ping)
	api.GET("/health", health.Ping) // 添加兼容Docker健康检查的路由

	// 认证路由 - 登录接口单独收紧限流
	api.POST("/auth/login", middleware.IPRateLimiter(1, 5), controllers.HandleJWTFunc(container, "login"))

	// 公开报修路由
	api.GET("/issues/public", middleware.CacheGET(30*time.Second), controllers.HandleIssueFunc(container, "getPublicIssues"))
	api.POST("/issues", middleware.IPRateLimiter(0.2, 3), controllers.HandleIssueFunc(container, "createIssue"))

	// 提醒触发路由 - 管理员令牌或调度器密钥二选一
	api.POST("/trigger-reminder", middleware.AuthenticateAdminOrCron(), controllers.HandleNotificationFunc(container, "triggerReminder"))
}

// registerAuthenticatedRoutes 注册需要认证的路由
func registerAuthenticatedRoutes(
	api *gin.RouterGroup,
	container *container.ServiceContainer,
) {
	// 添加认证中间件
	auth := api.Group("/")
	auth.Use(middleware.AuthenticateAdmin())

	// 添加通用限流中间件 - 每秒30个请求，最多突发50个请求
	auth.Use(middleware.IPRateLimiter(30, 50))

	editors := middleware.RequireRole(models.RoleSuperuser, models.RoleEditor)
	superuser := middleware.RequireRole(models.RoleSuperuser)

	// 仪表盘路由
	auth.GET("/dashboard", controllers.HandleDashboardFunc(container, "getDashboard"))

	// 住户路由
	residentGroup := auth.Group("/residents")
	residentGroup.GET("", controllers.HandleResidentFunc(container, "getResidents"))
	residentGroup.GET("/:id", controllers.HandleResidentFunc(container, "getResident"))
	residentGroup.POST("", editors, controllers.HandleResidentFunc(container, "createResident"))
	residentGroup.PUT("/order", editors, controllers.HandleResidentFunc(container, "reorderResidents"))
	residentGroup.PUT("/:id", editors, controllers.HandleResidentFunc(container, "updateResident"))
	residentGroup.DELETE("/:id", superuser, controllers.HandleResidentFunc(container, "deleteResident"))

	// 轮值路由
	auth.POST("/set-current-turn/:id", editors, controllers.HandleRotationFunc(container, "setCurrentTurn"))
	auth.POST("/advance-turn", editors, controllers.HandleRotationFunc(container, "advanceTurn"))
	auth.POST("/skip-turn", editors, controllers.HandleRotationFunc(container, "skipTurn"))

	// 公告路由
	auth.POST("/announcements", editors, controllers.HandleNotificationFunc(container, "sendAnnouncement"))

	// 通讯历史路由
	historyGroup := auth.Group("/history")
	historyGroup.GET("", controllers.HandleHistoryFunc(container, "getHistory"))
	historyGroup.DELETE("", editors, controllers.HandleHistoryFunc(container, "deleteHistory"))

	// 报修管理路由
	issueGroup := auth.Group("/issues")
	issueGroup.GET("", controllers.HandleIssueFunc(container, "getIssues"))
	issueGroup.PUT("/:id", editors, controllers.HandleIssueFunc(container, "updateIssueStatus"))
	issueGroup.DELETE("", superuser, controllers.HandleIssueFunc(container, "deleteIssues"))

	// 系统设置路由
	settingsGroup := auth.Group("/settings")
	settingsGroup.GET("", superuser, controllers.HandleSettingsFunc(container, "getSettings"))
	settingsGroup.PUT("", superuser, controllers.HandleSettingsFunc(container, "updateSettings"))

	// 管理员路由
	adminGroup := auth.Group("/admins")
	adminGroup.Use(superuser)
	adminGroup.GET("", controllers.HandleAdminFunc(container, "getAdmins"))
	adminGroup.GET("/:id", controllers.HandleAdminFunc(container, "getAdmin"))
	adminGroup.POST("", controllers.HandleAdminFunc(container, "createAdmin"))
	adminGroup.PUT("/:id", controllers.HandleAdminFunc(container, "updateAdmin"))
	adminGroup.DELETE("/:id", controllers.HandleAdminFunc(container, "deleteAdmin"))

	// 操作日志路由
	logGroup := auth.Group("/logs")
	logGroup.GET("", controllers.HandleLogFunc(container, "getLogs"))
	logGroup.DELETE("", superuser, controllers.HandleLogFunc(container, "deleteLogs"))
}
