package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"hrms/config"
	"hrms/internal/repository"
	"hrms/internal/seed"
	"hrms/pkg/database"
	applogger "hrms/pkg/logger"
)

func main() {
	var (
		configPath string
		employees  int
		seedValue  uint64
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "生成部门、职位、员工、考勤与绩效演示数据",
		Long: `在单个事务内写入合成数据：
  - ENG / HR / SLS 三个部门与三个职位（已存在时复用）
  - N 名员工，工号 EMP1000 起，约 30% 随机指定上级
  - 每名员工最近 30 天内最多 10 天考勤，重复日期跳过
  - 每名员工 3 个月前与 12 个月前各一次绩效评审`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if employees < 0 {
				return fmt.Errorf("--employees 不能为负数")
			}
			if !cmd.Flags().Changed("seed") {
				seedValue = uint64(time.Now().UnixNano())
			}
			return run(cmd.Context(), configPath, employees, seedValue)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "配置文件路径（默认查找 ./config/config.yaml）")
	cmd.Flags().IntVar(&employees, "employees", 5, "生成的员工数量")
	cmd.Flags().Uint64Var(&seedValue, "seed", 0, "随机种子，相同种子生成相同数据")

	if err := cmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath string, employees int, seedValue uint64) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger, err := applogger.NewLogger(&cfg.Log)
	if err != nil {
		return err
	}
	defer logger.Sync()

	db, err := database.NewDB(&cfg.Database, cfg.Log.Level, logger)
	if err != nil {
		return err
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	if err := database.RunMigrations(sqlDB, logger); err != nil {
		return err
	}

	logger.Info("开始生成数据", zap.Int("employees", employees), zap.Uint64("seed", seedValue))

	ds := seed.Plan(seed.Options{Employees: employees, Seed: seedValue, Today: time.Now()})
	res, err := seed.NewGenerator(repository.NewRepository(db), logger).Run(ctx, ds)
	if err != nil {
		return err
	}

	fmt.Printf("完成：新增部门 %d，职位 %d，员工 %d，考勤 %d，绩效 %d\n",
		res.DepartmentsCreated, res.RolesCreated, res.EmployeesCreated,
		res.AttendancesCreated, res.PerformancesAdded)
	return nil
}
