// @title           Bin Reminder HTTP Service API
// @version         1.0
// @description     Bin-duty rotation and multi-channel notification backend

// @contact.name   API Support

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @BasePath  /api

// @securityDefinitions.apikey  ApiKeyAuth
// @in                          header
// @name                        x-access-token
package main

import (
	"fmt"
	"log"
	"os"
	"runtime"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"binreminder-http-service/internal/app/routes"
	"binreminder-http-service/internal/domain/models"
	"binreminder-http-service/internal/domain/services"
	"binreminder-http-service/internal/infrastructure/config"
	"binreminder-http-service/internal/infrastructure/database"
	Logger "binreminder-http-service/pkg/logger"
)

func main() {
	// 设置最大处理器数量，提高并发性能
	runtime.GOMAXPROCS(runtime.NumCPU())

	// 初始化日志配置
	if err := Logger.SetupLogger(); err != nil {
		fmt.Printf("初始化日志配置失败: %v\n", err)
		os.Exit(1)
	}

	// 加载.env文件
	if err := godotenv.Load(); err != nil {
		Logger.Warning("无法加载.env文件: %v", err)
		// 即使加载失败也继续执行，可能环境变量已经通过其他方式设置
	} else {
		Logger.Info("成功加载.env文件")
	}

	// 获取配置
	cfg := config.GetConfig()

	// 创建优化的数据库连接池
	pool, err := database.NewConnectionPool(cfg)
	if err != nil {
		log.Fatalf("无法创建数据库连接池: %v", err)
	}
	db := pool.GetDB()

	// 根据配置执行不同的数据库操作
	switch cfg.DBMigrationMode {
	case "drop":
		// 删除并重建表
		log.Println("警告: 在drop模式下运行，将删除并重建所有表")
		if err := dropAndRecreateTables(db); err != nil {
			log.Fatalf("删除并重建表失败: %v", err)
		}
	case "alter":
		// 修改表结构以匹配模型
		log.Println("在alter模式下运行，将修改表结构以匹配模型")
		if err := alterMigrate(db); err != nil {
			log.Fatalf("高级迁移失败: %v", err)
		}
	default:
		// 默认AutoMigrate，只会添加新列和新表，不会删除或修改列
		log.Println("在标准模式下运行，将只添加新列和新表")
		if err := autoMigrate(db); err != nil {
			log.Fatalf("自动迁移失败: %v", err)
		}
	}

	// 播种单例行和默认管理员
	seedSingletons(db, cfg)
	ensureAdminExists(db, cfg)

	// 初始化路由
	r := routes.SetupRouter(db, cfg)

	// 使用配置中的端口
	port := cfg.ServerPort

	// 打印系统信息
	printSystemInfo(pool)

	// 启动服务器 - 监听所有接口(0.0.0.0)而不是只监听localhost
	Logger.Info("服务器启动在: http://0.0.0.0:%s", port)
	if err := r.Run("0.0.0.0:" + port); err != nil {
		Logger.Error("启动服务器失败: %v", err)
		os.Exit(1)
	}
}

// autoMigrate 自动迁移所有模型（只添加新列和新表）
func autoMigrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&models.Admin{},
		&models.Resident{},
		&models.RotationState{},
		&models.CommunicationEvent{},
		&models.CommunicationDetail{},
		&models.Issue{},
		&models.SystemSettings{},
		&models.OperationLog{},
	)

	if err != nil {
		return err
	}

	fmt.Println("Database migration completed")
	return nil
}

// alterMigrate 修改表结构以匹配模型，删除模型中不存在的列
func alterMigrate(db *gorm.DB) error {
	// 获取底层SQL连接
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get DB connection: %w", err)
	}

	// 禁用外键约束检查
	if _, err := sqlDB.Exec("SET FOREIGN_KEY_CHECKS = 0"); err != nil {
		log.Printf("禁用外键约束检查失败: %v", err)
	}
	defer sqlDB.Exec("SET FOREIGN_KEY_CHECKS = 1")

	// 早期版本把联系方式存成json列，迁移到contact_*列后需要清理
	migrator := db.Migrator()
	if migrator.HasTable(&models.Resident{}) && migrator.HasColumn(&models.Resident{}, "contact_json") {
		log.Println("删除residents表中废弃的contact_json列")
		if err := migrator.DropColumn(&models.Resident{}, "contact_json"); err != nil {
			log.Printf("删除contact_json列失败: %v", err)
		}
	}

	return autoMigrate(db)
}

// dropAndRecreateTables 删除并重建所有表
func dropAndRecreateTables(db *gorm.DB) error {
	// 获取底层SQL连接
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get DB connection: %w", err)
	}

	// 禁用外键约束检查
	if _, err := sqlDB.Exec("SET FOREIGN_KEY_CHECKS = 0"); err != nil {
		log.Printf("禁用外键约束检查失败: %v", err)
	}
	defer sqlDB.Exec("SET FOREIGN_KEY_CHECKS = 1")

	// 删除所有表
	tables := []string{
		"admins", "residents", "rotation_states", "communication_events",
		"communication_details", "issues", "system_settings", "operation_logs",
	}

	for _, table := range tables {
		log.Printf("删除表: %s", table)
		if _, err := sqlDB.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s", table)); err != nil {
			log.Printf("删除表失败: %v", err)
		}
	}

	// 重新创建表
	return autoMigrate(db)
}

// seedSingletons 确保轮值状态和系统设置的单例行存在
func seedSingletons(db *gorm.DB, cfg *config.Config) {
	if err := services.NewRotationService(db, cfg).EnsureState(); err != nil {
		log.Fatalf("初始化轮值状态失败: %v", err)
	}

	redisService := services.NewRedisService(cfg)
	if err := services.NewSettingsService(db, cfg, redisService).EnsureSettings(); err != nil {
		log.Fatalf("初始化系统设置失败: %v", err)
	}
}

// ensureAdminExists 确保系统中有管理员账户
func ensureAdminExists(db *gorm.DB, cfg *config.Config) {
	var count int64
	db.Model(&models.Admin{}).Count(&count)

	if count == 0 {
		// 如果没有管理员，创建默认超级管理员
		admin := models.Admin{
			Email:    cfg.DefaultAdminEmail,
			Password: cfg.DefaultAdminPassword,
			Role:     models.RoleSuperuser,
		}

		if err := db.Create(&admin).Error; err != nil {
			log.Fatalf("创建默认管理员失败: %v", err)
		}

		log.Printf("已创建默认管理员账户: %s", admin.Email)
	}
}

// printSystemInfo 打印系统信息
func printSystemInfo(pool *database.ConnectionPool) {
	// 打印数据库连接池信息
	stats, err := pool.Stats()
	if err == nil {
		log.Printf("数据库连接池状态: %+v", stats)
	}

	// 打印系统资源信息
	log.Printf("系统CPU核心数: %d", runtime.NumCPU())
	log.Printf("当前Go协程数: %d", runtime.NumGoroutine())
}
