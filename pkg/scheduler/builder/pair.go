package builder

import (
	"github.com/kaigoban/kaigoban/pkg/cpmodel"
	"github.com/kaigoban/kaigoban/pkg/scheduler/rule"
)

// compilePairAvoid 编译两名员工避免同日同班规则。
// 本规则族只有硬约束语义。
func (b *builder) compilePairAvoid() {
	for _, r := range b.in.Rules.PairAvoid {
		if r.ConstraintType != "" && r.ConstraintType != rule.TypeHard {
			b.warnf(rule.FamilyPairAvoid, "本规则族只支持硬约束，约束类型 %q 的规则已跳过", r.ConstraintType)
			continue
		}
		if len(r.EmployeePair) != 2 {
			b.warnf(rule.FamilyPairAvoid, "employee_pair 必须恰好包含两名员工，规则已跳过")
			continue
		}
		e1, ok1 := b.in.Roster.Index(r.EmployeePair[0])
		e2, ok2 := b.in.Roster.Index(r.EmployeePair[1])
		if !ok1 || !ok2 {
			b.warnf(rule.FamilyPairAvoid, "员工对 %v 中存在未知ID，规则已跳过", r.EmployeePair)
			continue
		}
		if e1 == e2 {
			b.warnf(rule.FamilyPairAvoid, "员工对 %v 指向同一人，规则已跳过", r.EmployeePair)
			continue
		}

		var shiftIdx []int
		valid := true
		for _, code := range r.AvoidShifts {
			s, ok := b.in.Alphabet.Index(code)
			if !ok {
				b.warnf(rule.FamilyPairAvoid, "班次 %q 不在字母表中，规则已跳过", code)
				valid = false
				break
			}
			shiftIdx = append(shiftIdx, s)
		}
		if !valid {
			continue
		}
		if len(shiftIdx) == 0 {
			b.infof(rule.FamilyPairAvoid, "avoid_shifts 为空，规则无效果")
			continue
		}

		for d := 0; d < b.in.Horizon.Len(); d++ {
			for _, s := range shiftIdx {
				expr := cpmodel.NewLinearExpr().
					Add(b.grid.X(e1, d, s)).
					Add(b.grid.X(e2, d, s))
				b.m.AddLessOrEqual(expr, 1)
			}
		}
	}
}
