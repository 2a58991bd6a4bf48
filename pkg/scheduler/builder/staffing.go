package builder

import (
	"fmt"
	"sort"

	"github.com/kaigoban/kaigoban/pkg/cpmodel"
	"github.com/kaigoban/kaigoban/pkg/scheduler/rule"
)

// compileStaffing 编译设施人员配置规则：每天每楼层每班次的人数目标。
// 楼层和班次按键排序遍历，保证模型构建的确定性。
func (b *builder) compileStaffing() {
	floors := make([]string, 0, len(b.in.Rules.Staffing))
	for floor := range b.in.Rules.Staffing {
		floors = append(floors, floor)
	}
	sort.Strings(floors)

	for _, floor := range floors {
		group := b.in.Roster.OnFloor(floor)
		if len(group) == 0 {
			b.warnf(rule.FamilyStaffing, "楼层 %q 没有所属员工，该楼层的配置规则已跳过", floor)
			continue
		}

		perShift := b.in.Rules.Staffing[floor]
		shiftNames := make([]string, 0, len(perShift))
		for name := range perShift {
			shiftNames = append(shiftNames, name)
		}
		sort.Strings(shiftNames)

		for _, shiftName := range shiftNames {
			r := perShift[shiftName]
			s, ok := b.in.Alphabet.Index(shiftName)
			if !ok {
				b.warnf(rule.FamilyStaffing, "班次 %q 不在字母表中，楼层 %q 的该条规则已跳过", shiftName, floor)
				continue
			}
			if r.Target == nil {
				b.warnf(rule.FamilyStaffing, "楼层 %q 班次 %q 未定义目标人数，规则已跳过", floor, shiftName)
				continue
			}
			target := *r.Target
			if target < 0 {
				b.warnf(rule.FamilyStaffing, "楼层 %q 班次 %q 目标人数 %d 为负，规则已跳过", floor, shiftName, target)
				continue
			}

			switch r.ConstraintType {
			case rule.TypeHard:
				for d := 0; d < b.in.Horizon.Len(); d++ {
					b.m.AddEquality(b.headcount(group, d, s), target)
				}
			case rule.TypeSoft:
				if r.UnderPenaltyWeight <= 0 && r.OverPenaltyWeight <= 0 {
					b.infof(rule.FamilyStaffing, "楼层 %q 班次 %q 软规则两侧权重均为 0，无效果", floor, shiftName)
					continue
				}
				excessUB := len(group) - target
				if excessUB < 0 {
					excessUB = 0
				}
				for d := 0; d < b.in.Horizon.Len(); d++ {
					shortage := b.m.NewIntVar(0, target,
						fmt.Sprintf("shortage_floor%s_day%d_shift%s", floor, d, shiftName))
					excess := b.m.NewIntVar(0, excessUB,
						fmt.Sprintf("excess_floor%s_day%d_shift%s", floor, d, shiftName))
					// headcount + shortage - excess = target
					expr := b.headcount(group, d, s).Add(shortage).AddTerm(excess, -1)
					b.m.AddEquality(expr, target)
					b.addPenalty(shortage.Index(), r.UnderPenaltyWeight)
					b.addPenalty(excess.Index(), r.OverPenaltyWeight)
				}
			default:
				b.warnf(rule.FamilyStaffing, "未知约束类型 %q，楼层 %q 班次 %q 的规则已跳过", r.ConstraintType, floor, shiftName)
			}
		}
	}
}

// headcount 返回楼层员工组当天在某班次上的人数表达式
func (b *builder) headcount(group []int, d, s int) *cpmodel.LinearExpr {
	expr := cpmodel.NewLinearExpr()
	for _, e := range group {
		expr.Add(b.grid.X(e, d, s))
	}
	return expr
}
