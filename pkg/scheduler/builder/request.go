package builder

import (
	"fmt"

	"github.com/kaigoban/kaigoban/pkg/cpmodel"
	"github.com/kaigoban/kaigoban/pkg/scheduler/rule"
)

// compileShiftRequests 编译个人班次申请。
// 周期外日期、未知员工或未知班次的申请跳过并记警告。
func (b *builder) compileShiftRequests() {
	for _, r := range b.in.Rules.Requests {
		e, ok := b.in.Roster.Index(r.EmployeeID)
		if !ok {
			b.warnf(rule.FamilyShiftRequest, "员工ID %q 不在名册中，申请已跳过", r.EmployeeID)
			continue
		}
		d, ok := b.in.Horizon.Index(r.Date)
		if !ok {
			b.warnf(rule.FamilyShiftRequest, "日期 %q 不在排班周期内，申请已跳过", r.Date)
			continue
		}
		s, ok := b.in.Alphabet.Index(r.RequestedShift)
		if !ok {
			b.warnf(rule.FamilyShiftRequest, "班次 %q 不在字母表中，申请已跳过", r.RequestedShift)
			continue
		}

		x := b.grid.X(e, d, s)
		switch r.ConstraintType {
		case rule.TypeHard:
			b.m.AddEquality(x, 1)
		case rule.TypeSoft:
			if r.PenaltyWeight <= 0 {
				b.infof(rule.FamilyShiftRequest, "员工 %s %s 的软申请权重为 0，无效果", r.EmployeeID, r.Date)
				continue
			}
			// 违反指示变量：v = 1 - x
			v := b.m.NewBoolVar(fmt.Sprintf("req_viol_emp%s_day%d", r.EmployeeID, d))
			b.m.AddEquality(cpmodel.NewLinearExpr().Add(v).Add(x), 1)
			b.addPenalty(v.Index(), r.PenaltyWeight)
		default:
			b.warnf(rule.FamilyShiftRequest, "未知约束类型 %q，申请已跳过", r.ConstraintType)
		}
	}
}
