package builder

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kaigoban/kaigoban/pkg/cpmodel"
	"github.com/kaigoban/kaigoban/pkg/errors"
	"github.com/kaigoban/kaigoban/pkg/logger"
	"github.com/kaigoban/kaigoban/pkg/model"
	"github.com/kaigoban/kaigoban/pkg/scheduler/rule"
)

// Input 构建输入。所有实体在编译开始前创建，编译期间不可变。
type Input struct {
	Alphabet *model.Alphabet
	Roster   *model.Roster
	Horizon  *model.Horizon
	Rules    rule.Set
}

// Level 诊断级别
type Level string

const (
	LevelWarn Level = "warn" // 规则无效被跳过
	LevelInfo Level = "info" // 无效果规则等提示
)

// Diagnostic 构建诊断信息
type Diagnostic struct {
	Family  rule.Family `json:"rule_family"`
	Level   Level       `json:"level"`
	Message string      `json:"message"`
}

// Report 结构化构建报告
type Report struct {
	BuildID           uuid.UUID    `json:"build_id"`
	Warnings          []Diagnostic `json:"warnings"`
	Infos             []Diagnostic `json:"infos"`
	VariablesCount    int          `json:"variables_count"`
	ConstraintsCount  int          `json:"constraints_count"`
	PenaltyTermsCount int          `json:"penalty_terms_count"`
}

// Result 构建结果：模型句柄、变量网格和报告
type Result struct {
	Model  *cpmodel.Model
	Grid   *Grid
	Report *Report
}

// builder 编译状态。单线程构建，编译器之间通过惩罚项列表串联。
type builder struct {
	in        Input
	m         *cpmodel.Model
	grid      *Grid
	penalties []cpmodel.Term
	report    *Report
	log       *logger.BuilderLogger
}

// Build 构建约束模型。规则级问题记入报告并跳过；
// 结构性问题（公休班次缺失、名册或周期为空）立即返回错误。
func Build(in Input) (*Result, error) {
	if in.Alphabet == nil || !in.Alphabet.Contains(model.ShiftOff) {
		return nil, errors.Newf(errors.CodeMissingOffShift, "班次字母表缺少 %s", model.ShiftOff)
	}
	if in.Roster == nil || in.Roster.Len() == 0 {
		return nil, errors.New(errors.CodeEmptyRoster, "员工名册为空")
	}
	if in.Horizon == nil || in.Horizon.Len() == 0 {
		return nil, errors.New(errors.CodeEmptyHorizon, "排班周期为空")
	}
	for _, r := range in.Rules.StatusLeave {
		leave := r.LeaveShiftName
		if leave == "" {
			leave = model.ShiftOff
		}
		if !in.Alphabet.Contains(leave) {
			return nil, errors.Newf(errors.CodeUnknownShift, "休假班次 %q 不在班次字母表中", leave)
		}
	}

	b := &builder{
		in: in,
		m:  cpmodel.NewModel(),
		report: &Report{
			BuildID:  uuid.New(),
			Warnings: make([]Diagnostic, 0),
			Infos:    make([]Diagnostic, 0),
		},
		log: logger.NewBuilderLogger(),
	}
	start := time.Now()
	b.log.StartBuild(b.report.BuildID.String(), in.Roster.Len(), in.Horizon.Len(), in.Alphabet.Len())

	// 变量工厂
	b.grid = newGrid(b.m, in.Alphabet, in.Roster, in.Horizon)

	// 固定编译顺序：先纯固定型约束，再软约束。
	// 求解结果与顺序无关，顺序只影响模型规模收敛速度。
	b.compileStatusLeave()
	b.compileShiftRequests()
	b.compileWeekendOff()
	b.compileStaffing()
	b.compileMinDaysOff()
	b.compileMaxConsecutive()
	b.compileSequences()
	b.compileBalance()
	b.compilePairAvoid()
	b.compileWorkdays()

	// 目标函数装配：惩罚项列表按编译顺序拼接
	b.m.Minimize(b.penalties)

	b.report.VariablesCount = b.m.NumVars()
	b.report.ConstraintsCount = b.m.NumConstraints()
	b.report.PenaltyTermsCount = len(b.penalties)
	b.log.BuildComplete(b.report.BuildID.String(),
		b.report.VariablesCount, b.report.ConstraintsCount, b.report.PenaltyTermsCount,
		time.Since(start))

	return &Result{Model: b.m, Grid: b.grid, Report: b.report}, nil
}

// warnf 记录规则跳过警告
func (b *builder) warnf(family rule.Family, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	b.report.Warnings = append(b.report.Warnings, Diagnostic{Family: family, Level: LevelWarn, Message: msg})
	b.log.RuleSkipped(string(family), msg)
}

// infof 记录无效果规则提示
func (b *builder) infof(family rule.Family, format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	b.report.Infos = append(b.report.Infos, Diagnostic{Family: family, Level: LevelInfo, Message: msg})
	b.log.RuleInfo(string(family), msg)
}

// addPenalty 追加惩罚项。权重为 0 的项被丢弃。
func (b *builder) addPenalty(v cpmodel.VarIndex, weight int) {
	if weight <= 0 {
		return
	}
	b.penalties = append(b.penalties, cpmodel.Term{Var: v, Weight: weight})
}

// resolveTargets 解析 target_employees 列表为员工序号。
// 列表为空时返回全部员工；未知ID记警告并跳过。
func (b *builder) resolveTargets(family rule.Family, ids []string) []int {
	if len(ids) == 0 {
		out := make([]int, b.in.Roster.Len())
		for i := range out {
			out[i] = i
		}
		return out
	}
	var out []int
	for _, id := range ids {
		e, ok := b.in.Roster.Index(id)
		if !ok {
			b.warnf(family, "员工ID %q 不在名册中，已忽略", id)
			continue
		}
		out = append(out, e)
	}
	return out
}
