package middleware

import (
	"crypto/subtle"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"binreminder-http-service/internal/domain/models"
	"binreminder-http-service/internal/domain/services"
	"binreminder-http-service/internal/infrastructure/config"
)

var (
	jwtService services.InterfaceJWTService
	authDB     *gorm.DB
	authConfig *config.Config
)

// InitAuthMiddleware 初始化认证中间件
func InitAuthMiddleware(cfg *config.Config, db *gorm.DB) {
	jwtService = services.NewJWTService(cfg, db)
	authDB = db
	authConfig = cfg
}

// AuthenticateAdmin 验证请求头x-access-token中的JWT令牌。
// 每次请求都重新从数据库加载管理员，已被删除的管理员立即失去访问权限。
func AuthenticateAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := c.GetHeader("x-access-token")
		if tokenString == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":    401,
				"message": "x-access-token header is required",
				"data":    nil,
			})
			c.Abort()
			return
		}

		claims, err := jwtService.ExtractClaims(tokenString)
		if err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":    401,
				"message": "Invalid token: " + err.Error(),
				"data":    nil,
			})
			c.Abort()
			return
		}

		var admin models.Admin
		if err := authDB.First(&admin, "id = ?", claims.AdminID).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{
				"code":    401,
				"message": "Invalid token: admin no longer exists",
				"data":    nil,
			})
			c.Abort()
			return
		}

		// 角色以数据库为准，令牌签发后被降级的管理员按新角色处理
		c.Set("currentAdmin", &admin)
		c.Set("adminID", admin.ID)
		c.Set("adminEmail", admin.Email)
		c.Set("role", admin.Role)
		c.Next()
	}
}

// RequireRole 限制路由只允许指定角色访问，须在AuthenticateAdmin之后使用
func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}

	return func(c *gin.Context) {
		role := c.GetString("role")
		if !allowed[role] {
			c.JSON(http.StatusForbidden, gin.H{
				"code":    403,
				"message": "Insufficient permissions for this operation",
				"data":    nil,
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// AuthenticateAdminOrCron 允许管理员令牌或调度器密钥二选一。
// 定时任务通过x-cron-secret触发提醒，不需要管理员身份。
func AuthenticateAdminOrCron() gin.HandlerFunc {
	adminAuth := AuthenticateAdmin()
	roleGate := RequireRole(models.RoleSuperuser, models.RoleEditor)

	return func(c *gin.Context) {
		secret := c.GetHeader("x-cron-secret")
		if secret != "" && authConfig.CronSecret != "" &&
			subtle.ConstantTimeCompare([]byte(secret), []byte(authConfig.CronSecret)) == 1 {
			c.Set("scheduled", true)
			c.Set("adminEmail", "scheduler")
			c.Next()
			return
		}

		adminAuth(c)
		if c.IsAborted() {
			return
		}
		roleGate(c)
	}
}
