package main

import (
	"database/sql"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"hrms/config"
	"hrms/pkg/database"
	applogger "hrms/pkg/logger"
)

func main() {
	var configPath string

	root := &cobra.Command{
		Use:   "migrate",
		Short: "执行或回滚数据库迁移",
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "配置文件路径")

	up := &cobra.Command{
		Use:   "up",
		Short: "应用全部未执行的迁移",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return withDB(configPath, database.RunMigrations)
		},
	}

	var steps int
	down := &cobra.Command{
		Use:   "down",
		Short: "回滚最近的迁移",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return withDB(configPath, func(db *sql.DB, logger *zap.Logger) error {
				return database.RollbackMigrations(db, steps, logger)
			})
		},
	}
	down.Flags().IntVar(&steps, "steps", 1, "回滚的版本数")

	root.AddCommand(up, down)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// withDB 加载配置并打开连接后执行 fn
func withDB(configPath string, fn func(db *sql.DB, logger *zap.Logger) error) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		return err
	}
	defer logger.Sync()

	gdb, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		return err
	}
	sqlDB, err := gdb.DB()
	if err != nil {
		return fmt.Errorf("获取底层 sql.DB 失败: %w", err)
	}
	defer sqlDB.Close()

	return fn(sqlDB, logger)
}
