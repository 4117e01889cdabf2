package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/proshopcms/internal/config"
	"github.com/proshopcms/internal/db"
)

// newInitUserCmd 创建初始管理员账号；账号已存在时不做任何修改。
func newInitUserCmd(cfg *config.AppConfig) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "init-user",
		Short: "Create the initial admin account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if email == "" {
				email = cfg.SuperRootEmail
			}
			if password == "" {
				password = cfg.SuperRootPassword
			}
			if strings.TrimSpace(email) == "" || strings.TrimSpace(password) == "" {
				return errors.New("email and password are required (flags or SUPER_ROOT_EMAIL / SUPER_ROOT_PASSWORD)")
			}

			gdb, err := db.Connect(cfg.DatabaseDriver, cfg.DatabaseDSN)
			if err != nil {
				return fmt.Errorf("数据库初始化失败: %w", err)
			}
			if sqlDB, err := gdb.DB(); err == nil {
				defer sqlDB.Close()
			}

			if err := db.EnsureUser(gdb, email, password); err != nil {
				return fmt.Errorf("创建用户失败: %w", err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "admin account ready: %s\n", strings.ToLower(strings.TrimSpace(email)))
			return nil
		},
	}
	cmd.Flags().StringVar(&email, "email", "", "admin email")
	cmd.Flags().StringVar(&password, "password", "", "admin password")
	return cmd
}
