package builder

import (
	"fmt"

	"github.com/kaigoban/kaigoban/pkg/cpmodel"
	"github.com/kaigoban/kaigoban/pkg/scheduler/rule"
)

// compileMinDaysOff 编译个人最低公休天数规则。
// 作用于雇用形态命中的每名员工。
func (b *builder) compileMinDaysOff() {
	for _, r := range b.in.Rules.MinDaysOff {
		if r.MinDays < 0 {
			b.warnf(rule.FamilyMinDaysOff, "最低公休天数 %d 为负，规则已跳过", r.MinDays)
			continue
		}
		group := b.in.Roster.ByEmploymentType(r.TargetEmploymentType)
		if len(group) == 0 {
			b.infof(rule.FamilyMinDaysOff, "没有雇用形态为 %q 的员工，规则无效果", r.TargetEmploymentType)
			continue
		}

		switch r.ConstraintType {
		case rule.TypeHard:
			for _, e := range group {
				b.m.AddGreaterOrEqual(b.offTotal(e), r.MinDays)
			}
		case rule.TypeSoft:
			if r.UnderPenaltyWeight <= 0 {
				b.infof(rule.FamilyMinDaysOff, "软规则权重为 0，无效果")
				continue
			}
			for _, e := range group {
				emp := b.in.Roster.At(e)
				shortage := b.m.NewIntVar(0, r.MinDays,
					fmt.Sprintf("offshort_emp%s", emp.ID))
				b.m.AddGreaterOrEqual(b.offTotal(e).Add(shortage), r.MinDays)
				b.addPenalty(shortage.Index(), r.UnderPenaltyWeight)
			}
		default:
			b.warnf(rule.FamilyMinDaysOff, "未知约束类型 %q，规则已跳过", r.ConstraintType)
		}
	}
}

// offTotal 返回员工在整个周期内的公休天数表达式
func (b *builder) offTotal(e int) *cpmodel.LinearExpr {
	expr := cpmodel.NewLinearExpr()
	for d := 0; d < b.in.Horizon.Len(); d++ {
		expr.Add(b.grid.offVar(e, d))
	}
	return expr
}
