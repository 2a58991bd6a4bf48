package builder

import (
	"fmt"

	"github.com/kaigoban/kaigoban/pkg/cpmodel"
	"github.com/kaigoban/kaigoban/pkg/scheduler/rule"
)

// compileWorkdays 编译总稼动天数控制规则。
// 同一员工的多条规则叠加生效；矛盾的组合交由求解器报告不可行。
func (b *builder) compileWorkdays() {
	for _, r := range b.in.Rules.Workdays {
		e, ok := b.in.Roster.Index(r.EmployeeID)
		if !ok {
			b.warnf(rule.FamilyWorkdays, "员工ID %q 不在名册中，规则已跳过", r.EmployeeID)
			continue
		}
		if r.Days < 0 {
			b.warnf(rule.FamilyWorkdays, "天数 %d 为负，员工 %s 的规则已跳过", r.Days, r.EmployeeID)
			continue
		}

		T := b.in.Horizon.Len()
		total := b.grid.workTotal(e)
		overUB := T - r.Days
		if overUB < 0 {
			overUB = 0
		}

		switch r.ConstraintType {
		case rule.TypeExact:
			b.m.AddEquality(total, r.Days)
		case rule.TypeMax:
			b.m.AddLessOrEqual(total, r.Days)
		case rule.TypeMin:
			b.m.AddGreaterOrEqual(total, r.Days)
		case rule.TypeSoftExact:
			if r.PenaltyWeight <= 0 {
				b.infof(rule.FamilyWorkdays, "员工 %s 的软规则权重为 0，无效果", r.EmployeeID)
				continue
			}
			pos := b.m.NewIntVar(0, overUB, fmt.Sprintf("workdays_pos_emp%s", r.EmployeeID))
			neg := b.m.NewIntVar(0, r.Days, fmt.Sprintf("workdays_neg_emp%s", r.EmployeeID))
			// W - days = pos - neg
			expr := cpmodel.NewLinearExpr().AddTerm(total, 1).AddTerm(pos, -1).Add(neg)
			b.m.AddEquality(expr, r.Days)
			b.addPenalty(pos.Index(), r.PenaltyWeight)
			b.addPenalty(neg.Index(), r.PenaltyWeight)
		case rule.TypeSoftMax:
			if r.PenaltyWeight <= 0 {
				b.infof(rule.FamilyWorkdays, "员工 %s 的软规则权重为 0，无效果", r.EmployeeID)
				continue
			}
			over := b.m.NewIntVar(0, overUB, fmt.Sprintf("workdays_over_emp%s", r.EmployeeID))
			b.m.AddLessOrEqual(cpmodel.NewLinearExpr().AddTerm(total, 1).AddTerm(over, -1), r.Days)
			b.addPenalty(over.Index(), r.PenaltyWeight)
		case rule.TypeSoftMin:
			if r.PenaltyWeight <= 0 {
				b.infof(rule.FamilyWorkdays, "员工 %s 的软规则权重为 0，无效果", r.EmployeeID)
				continue
			}
			under := b.m.NewIntVar(0, r.Days, fmt.Sprintf("workdays_under_emp%s", r.EmployeeID))
			b.m.AddGreaterOrEqual(cpmodel.NewLinearExpr().AddTerm(total, 1).Add(under), r.Days)
			b.addPenalty(under.Index(), r.PenaltyWeight)
		default:
			b.warnf(rule.FamilyWorkdays, "未知约束类型 %q，员工 %s 的规则已跳过", r.ConstraintType, r.EmployeeID)
		}
	}
}
