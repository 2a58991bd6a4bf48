package builder

import (
	"fmt"

	"github.com/kaigoban/kaigoban/pkg/cpmodel"
	"github.com/kaigoban/kaigoban/pkg/scheduler/rule"
)

// compileWeekendOff 编译周末及节假日公休规则。
// 规则自带的节假日列表与周期上的节假日标记合并为日期集合（去重），
// 周期外的节假日被忽略。
func (b *builder) compileWeekendOff() {
	for _, r := range b.in.Rules.WeekendOff {
		inSet := make([]bool, b.in.Horizon.Len())
		for _, d := range b.in.Horizon.WeekendOrHolidayIndices() {
			inSet[d] = true
		}
		for _, dateStr := range r.Holidays {
			if d, ok := b.in.Horizon.Index(dateStr); ok {
				inSet[d] = true
			}
		}

		var days []int
		for d, in := range inSet {
			if in {
				days = append(days, d)
			}
		}
		if len(days) == 0 {
			b.infof(rule.FamilyWeekendOff, "周期内没有周末或节假日，规则无效果")
			continue
		}

		targets := b.resolveTargets(rule.FamilyWeekendOff, r.TargetEmployees)
		switch r.ConstraintType {
		case rule.TypeHard:
			for _, e := range targets {
				for _, d := range days {
					b.m.AddEquality(b.grid.offVar(e, d), 1)
				}
			}
		case rule.TypeSoft:
			if r.PenaltyWeight <= 0 {
				b.infof(rule.FamilyWeekendOff, "软规则权重为 0，无效果")
				continue
			}
			for _, e := range targets {
				emp := b.in.Roster.At(e)
				for _, d := range days {
					v := b.m.NewBoolVar(fmt.Sprintf("weh_viol_emp%s_day%d", emp.ID, d))
					b.m.AddEquality(cpmodel.NewLinearExpr().Add(v).Add(b.grid.offVar(e, d)), 1)
					b.addPenalty(v.Index(), r.PenaltyWeight)
				}
			}
		default:
			b.warnf(rule.FamilyWeekendOff, "未知约束类型 %q，规则已跳过", r.ConstraintType)
		}
	}
}
