package db

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	// DriverSQLite 使用本地 sqlite 文件。
	DriverSQLite = "sqlite"
	// DriverMySQL 使用 MySQL DSN。
	DriverMySQL = "mysql"
)

// Models 返回需要自动迁移的全部模型。
func Models() []interface{} {
	return []interface{}{
		&User{},
		&Product{},
		&Portfolio{},
		&Article{},
		&Award{},
		&Testimonial{},
		&FAQ{},
		&About{},
		&SystemSetting{},
	}
}

// Open 按驱动建立数据库连接。dsn 为空时 sqlite 回退到 proshop.db。
// TranslateError 打开后唯一约束等错误会被翻译成 gorm 的哨兵错误。
func Open(driver, dsn string, silent bool) (*gorm.DB, error) {
	cfg := &gorm.Config{TranslateError: true}
	if silent {
		cfg.Logger = logger.Default.LogMode(logger.Silent)
	}

	switch strings.ToLower(strings.TrimSpace(driver)) {
	case DriverMySQL:
		if strings.TrimSpace(dsn) == "" {
			return nil, errors.New("mysql dsn is required")
		}
		return gorm.Open(mysql.Open(dsn), cfg)
	case "", DriverSQLite:
		path := strings.TrimSpace(dsn)
		if path == "" {
			path = "proshop.db"
		}
		if !strings.HasPrefix(path, "file:") {
			if err := ensureParentDir(path); err != nil {
				return nil, err
			}
		}
		return gorm.Open(sqlite.Open(path), cfg)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}

// Migrate 对全部模型执行自动迁移。
func Migrate(gdb *gorm.DB) error {
	if gdb == nil {
		return errors.New("database not initialized")
	}
	return gdb.AutoMigrate(Models()...)
}

// Connect 打开数据库并执行自动迁移。
func Connect(driver, dsn string) (*gorm.DB, error) {
	gdb, err := Open(driver, dsn, false)
	if err != nil {
		return nil, err
	}
	if err := Migrate(gdb); err != nil {
		return nil, err
	}
	return gdb, nil
}

func ensureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}

	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return errors.New("database path parent is not a directory")
		}
		return nil
	}

	if os.IsNotExist(err) {
		return os.MkdirAll(dir, 0o755)
	}

	return err
}
