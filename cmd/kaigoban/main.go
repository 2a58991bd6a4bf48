// kaigoban 介护设施排班命令行工具：
// 读入员工名册和规则集，构建约束模型，求解并输出班表。
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/kaigoban/kaigoban/internal/config"
	"github.com/kaigoban/kaigoban/internal/database"
	"github.com/kaigoban/kaigoban/internal/export"
	"github.com/kaigoban/kaigoban/internal/repository"
	"github.com/kaigoban/kaigoban/internal/roster"
	"github.com/kaigoban/kaigoban/internal/ruleset"
	"github.com/kaigoban/kaigoban/pkg/logger"
	"github.com/kaigoban/kaigoban/pkg/model"
	"github.com/kaigoban/kaigoban/pkg/sat"
	"github.com/kaigoban/kaigoban/pkg/schedule"
	"github.com/kaigoban/kaigoban/pkg/scheduler/builder"
	"github.com/kaigoban/kaigoban/pkg/scheduler/rule"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newRootCmd 创建根命令
func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "kaigoban",
		Short: "介护设施排班约束模型构建与求解工具",
	}
	root.AddCommand(newScheduleCmd())
	return root
}

// scheduleOptions schedule 子命令的参数
type scheduleOptions struct {
	startDate string
	endDate   string
	employees string
	rules     string
	rulesName string
	outputDir string
}

// newScheduleCmd 创建 schedule 子命令
func newScheduleCmd() *cobra.Command {
	var opts scheduleOptions
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "构建并求解排班，输出班表CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSchedule(opts)
		},
	}
	cmd.Flags().StringVar(&opts.startDate, "start", "", "排班起始日 (YYYY-MM-DD)，默认取环境变量")
	cmd.Flags().StringVar(&opts.endDate, "end", "", "排班结束日 (YYYY-MM-DD)，默认取环境变量")
	cmd.Flags().StringVar(&opts.employees, "employees", "", "员工名册CSV路径，默认取环境变量")
	cmd.Flags().StringVar(&opts.rules, "rules", "", "规则集YAML路径，默认取环境变量")
	cmd.Flags().StringVar(&opts.rulesName, "rules-name", "", "从数据库读取的命名规则集（需启用数据库）")
	cmd.Flags().StringVar(&opts.outputDir, "output", "", "班表输出目录，默认取环境变量")
	return cmd
}

// runSchedule 执行排班流水线：读入 → 构建 → 求解 → 解码 → 输出
func runSchedule(opts scheduleOptions) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("加载配置失败: %w", err)
	}
	if opts.startDate != "" {
		cfg.Input.StartDate = opts.startDate
	}
	if opts.endDate != "" {
		cfg.Input.EndDate = opts.endDate
	}
	if opts.employees != "" {
		cfg.Input.EmployeeCSV = opts.employees
	}
	if opts.rules != "" {
		cfg.Input.RulesFile = opts.rules
	}
	if opts.outputDir != "" {
		cfg.Output.Dir = opts.outputDir
	}

	logger.Init(logger.Config{
		Level:      cfg.App.LogLevel,
		Format:     "console",
		Output:     "stderr",
		TimeFormat: time.RFC3339,
	})
	log := logger.Get()

	if cfg.Input.StartDate == "" || cfg.Input.EndDate == "" {
		return fmt.Errorf("必须指定排班起止日期（--start/--end 或环境变量）")
	}

	// 员工名册：启用数据库时从库中读取，否则读CSV
	var rst *model.Roster
	var repo *repository.RosterRepository
	var db *database.DB
	if cfg.Database.Enabled {
		db, err = database.New(&cfg.Database)
		if err != nil {
			return err
		}
		defer db.Close()
		repo = repository.NewRosterRepository(db)
		employees, err := repo.ListAll(context.Background())
		if err != nil {
			return err
		}
		rst = model.NewRoster(employees)
	} else {
		rst, err = roster.LoadCSV(cfg.Input.EmployeeCSV)
		if err != nil {
			return err
		}
	}
	log.Info().Int("employees", rst.Len()).Msg("员工名册读入完成")

	holidays := make([]time.Time, 0, len(cfg.Input.Holidays))
	for _, s := range cfg.Input.Holidays {
		d, err := time.Parse(model.DateLayout, s)
		if err != nil {
			return fmt.Errorf("节假日 %q 格式无效: %w", s, err)
		}
		holidays = append(holidays, d)
	}
	horizon, err := model.NewHorizon(cfg.Input.StartDate, cfg.Input.EndDate, holidays)
	if err != nil {
		return err
	}
	log.Info().
		Str("start", cfg.Input.StartDate).
		Str("end", cfg.Input.EndDate).
		Int("days", horizon.Len()).
		Msg("排班周期生成完成")

	// 规则集：指定名称时从数据库读取已保存的规则集，否则读YAML文件
	var rules *rule.Set
	if opts.rulesName != "" {
		if db == nil {
			return fmt.Errorf("--rules-name 需要启用数据库 (DB_ENABLED=true)")
		}
		rules, err = repository.NewRuleSetRepository(db).GetByName(context.Background(), opts.rulesName)
	} else {
		rules, err = ruleset.LoadYAML(cfg.Input.RulesFile)
	}
	if err != nil {
		return err
	}

	alphabet := model.NewAlphabet(nil, nil)
	result, err := builder.Build(builder.Input{
		Alphabet: alphabet,
		Roster:   rst,
		Horizon:  horizon,
		Rules:    *rules,
	})
	if err != nil {
		return fmt.Errorf("构建约束模型失败: %w", err)
	}
	for _, w := range result.Report.Warnings {
		log.Warn().Str("family", string(w.Family)).Msg(w.Message)
	}

	sol, err := sat.Solve(result.Model)
	if err != nil {
		return fmt.Errorf("求解失败: %w", err)
	}
	if sol.Status == sat.StatusInfeasible {
		return fmt.Errorf("约束矛盾，无可行班表：请检查规则配置")
	}
	log.Info().Int("cost", sol.Cost).Msg("求解完成")

	table, err := schedule.Decode(result, sol, rst, horizon, alphabet)
	if err != nil {
		return err
	}

	path, err := export.WriteFile(table, cfg.Output.Dir, cfg.Output.FilenamePrefix)
	if err != nil {
		return err
	}
	log.Info().Str("path", path).Msg("班表输出完成")

	if repo != nil {
		if err := repo.SaveRunRecord(context.Background(), result.Report.BuildID,
			rst.Len(), horizon.Len(), sol.Cost); err != nil {
			log.Warn().Err(err).Msg("记录排班运行失败")
		}
	}
	return nil
}
