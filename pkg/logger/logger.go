package logger

import (
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"
)

const logFlags = log.Ldate | log.Ltime | log.Lshortfile

var (
	// 不同级别的日志记录器，包加载后即可使用
	InfoLogger    *log.Logger
	WarningLogger *log.Logger
	ErrorLogger   *log.Logger
)

// 默认输出到标准输出，SetupLogger 之后切换为标准输出+按日期切分的文件
func init() {
	setOutput(os.Stdout)
}

func setOutput(w io.Writer) {
	InfoLogger = log.New(w, "INFO: ", logFlags)
	WarningLogger = log.New(w, "WARNING: ", logFlags)
	ErrorLogger = log.New(w, "ERROR: ", logFlags)
}

// SetupLogger 在标准输出之外追加当天的日志文件
func SetupLogger() error {
	logDir := "logs"
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return fmt.Errorf("创建日志目录失败: %v", err)
	}

	logFileName := filepath.Join(logDir, time.Now().Format("2006-01-02")+".log")
	logFile, err := os.OpenFile(logFileName, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0666)
	if err != nil {
		return fmt.Errorf("打开日志文件失败: %v", err)
	}

	setOutput(io.MultiWriter(os.Stdout, logFile))
	return nil
}

// Info 记录信息级别的日志
func Info(format string, v ...interface{}) {
	InfoLogger.Printf(format, v...)
}

// Warning 记录警告级别的日志
func Warning(format string, v ...interface{}) {
	WarningLogger.Printf(format, v...)
}

// Error 记录错误级别的日志
func Error(format string, v ...interface{}) {
	ErrorLogger.Printf(format, v...)
}
