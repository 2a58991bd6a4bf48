package builder

import (
	"fmt"

	"github.com/kaigoban/kaigoban/pkg/cpmodel"
	"github.com/kaigoban/kaigoban/pkg/scheduler/rule"
)

// compileMaxConsecutive 编译最大连续稼动天数规则。
// 对每名员工的每个长度为 max_days+1 的滑动窗口各发一条约束；
// 软约束按窗口计罚：跨越多个窗口的长连班每个超限窗口各计一次。
func (b *builder) compileMaxConsecutive() {
	for _, r := range b.in.Rules.MaxConsecutive {
		if r.MaxDays < 1 {
			b.warnf(rule.FamilyMaxConsecutive, "最大连续天数 %d 无效，规则已跳过", r.MaxDays)
			continue
		}

		workShifts := r.WorkShifts
		if len(workShifts) == 0 {
			workShifts = b.in.Alphabet.WorkingCodes()
		}
		var shiftIdx []int
		valid := true
		for _, code := range workShifts {
			s, ok := b.in.Alphabet.Index(code)
			if !ok {
				b.warnf(rule.FamilyMaxConsecutive, "稼动班次 %q 不在字母表中，规则已跳过", code)
				valid = false
				break
			}
			shiftIdx = append(shiftIdx, s)
		}
		if !valid {
			continue
		}

		windowLen := r.MaxDays + 1
		if b.in.Horizon.Len() < windowLen {
			b.infof(rule.FamilyMaxConsecutive, "周期短于 %d 天，规则无效果", windowLen)
			continue
		}
		if r.ConstraintType == rule.TypeSoft && r.OverPenaltyWeight <= 0 {
			b.infof(rule.FamilyMaxConsecutive, "软规则权重为 0，无效果")
			continue
		}
		if r.ConstraintType != rule.TypeHard && r.ConstraintType != rule.TypeSoft {
			b.warnf(rule.FamilyMaxConsecutive, "未知约束类型 %q，规则已跳过", r.ConstraintType)
			continue
		}

		for e := 0; e < b.in.Roster.Len(); e++ {
			emp := b.in.Roster.At(e)
			for d := 0; d+windowLen <= b.in.Horizon.Len(); d++ {
				window := b.windowSum(e, d, windowLen, shiftIdx)
				if r.ConstraintType == rule.TypeHard {
					b.m.AddLessOrEqual(window, r.MaxDays)
					continue
				}
				// 窗口内稼动天数最多比上限多 1
				slack := b.m.NewIntVar(0, 1,
					fmt.Sprintf("consec_slack_emp%s_day%d", emp.ID, d))
				b.m.AddLessOrEqual(window.AddTerm(slack, -1), r.MaxDays)
				b.addPenalty(slack.Index(), r.OverPenaltyWeight)
			}
		}
	}
}

// windowSum 返回窗口 [d, d+n) 内落在指定班次集合上的天数表达式
func (b *builder) windowSum(e, d, n int, shiftIdx []int) *cpmodel.LinearExpr {
	expr := cpmodel.NewLinearExpr()
	for i := 0; i < n; i++ {
		for _, s := range shiftIdx {
			expr.Add(b.grid.X(e, d+i, s))
		}
	}
	return expr
}
