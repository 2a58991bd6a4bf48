package builder

import (
	"github.com/kaigoban/kaigoban/pkg/model"
	"github.com/kaigoban/kaigoban/pkg/scheduler/rule"
)

// compileStatusLeave 编译基于状态的全周期休假规则（仅硬约束）。
// 状态命中的员工整个周期固定为休假班次。
func (b *builder) compileStatusLeave() {
	for _, r := range b.in.Rules.StatusLeave {
		if len(r.StatusValues) == 0 {
			b.infof(rule.FamilyStatusLeave, "未指定休假状态值，规则无效果")
			continue
		}
		leave := r.LeaveShiftName
		if leave == "" {
			leave = model.ShiftOff
		}
		// 休假班次在 Build 入口已做致命检查
		s, _ := b.in.Alphabet.Index(leave)

		statusSet := make(map[string]bool, len(r.StatusValues))
		for _, v := range r.StatusValues {
			statusSet[v] = true
		}

		matched := 0
		for _, e := range b.resolveTargets(rule.FamilyStatusLeave, r.TargetEmployees) {
			emp := b.in.Roster.At(e)
			if emp.Status == "" || !statusSet[emp.Status] {
				continue
			}
			matched++
			for d := 0; d < b.in.Horizon.Len(); d++ {
				b.m.AddEquality(b.grid.X(e, d, s), 1)
			}
		}
		if matched == 0 {
			b.infof(rule.FamilyStatusLeave, "没有员工命中休假状态 %v，规则无效果", r.StatusValues)
		}
	}
}
