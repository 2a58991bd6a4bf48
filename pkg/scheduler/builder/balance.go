package builder

import (
	"fmt"

	"github.com/kaigoban/kaigoban/pkg/cpmodel"
	"github.com/kaigoban/kaigoban/pkg/scheduler/rule"
)

// compileBalance 编译班次分配数均衡规则：
// 组内各员工被分配到目标班次的次数，最大值与最小值之差受控。
// M、m 只用单侧不等式约束；差值由目标函数或硬上界拉紧。
func (b *builder) compileBalance() {
	for _, r := range b.in.Rules.Balance {
		s, ok := b.in.Alphabet.Index(r.TargetShiftName)
		if !ok {
			b.warnf(rule.FamilyBalance, "班次 %q 不在字母表中，规则已跳过", r.TargetShiftName)
			continue
		}
		group := b.in.Roster.ByEmploymentType(r.TargetEmploymentType)
		if len(group) < 2 {
			b.infof(rule.FamilyBalance, "雇用形态 %q 的员工不足两名，均衡规则无效果", r.TargetEmploymentType)
			continue
		}

		T := b.in.Horizon.Len()
		switch r.ConstraintType {
		case rule.TypeHard:
			if r.MaxDiffAllowed == nil {
				b.warnf(rule.FamilyBalance, "硬均衡规则缺少 max_diff_allowed，规则已跳过")
				continue
			}
			if *r.MaxDiffAllowed < 0 {
				b.warnf(rule.FamilyBalance, "max_diff_allowed %d 为负，规则已跳过", *r.MaxDiffAllowed)
				continue
			}
			maxV, minV := b.balanceBounds(r, group, s, T)
			// M - m <= max_diff_allowed
			b.m.AddLessOrEqual(cpmodel.NewLinearExpr().Add(maxV).AddTerm(minV, -1), *r.MaxDiffAllowed)
		case rule.TypeSoft:
			if r.PenaltyWeight <= 0 {
				b.infof(rule.FamilyBalance, "软规则权重为 0，无效果")
				continue
			}
			maxV, minV := b.balanceBounds(r, group, s, T)
			diff := b.m.NewIntVar(0, T, fmt.Sprintf("balance_diff_%s_%s", r.TargetEmploymentType, r.TargetShiftName))
			// diff = M - m
			b.m.AddEquality(cpmodel.NewLinearExpr().Add(diff).AddTerm(maxV, -1).Add(minV), 0)
			b.addPenalty(diff.Index(), r.PenaltyWeight)
		default:
			b.warnf(rule.FamilyBalance, "未知约束类型 %q，规则已跳过", r.ConstraintType)
		}
	}
}

// balanceBounds 创建组内分配数的上下界变量：M >= n_e、m <= n_e 对组内每名员工成立
func (b *builder) balanceBounds(r rule.BalanceRule, group []int, s, T int) (maxV, minV cpmodel.IntVar) {
	maxV = b.m.NewIntVar(0, T, fmt.Sprintf("balance_max_%s_%s", r.TargetEmploymentType, r.TargetShiftName))
	minV = b.m.NewIntVar(0, T, fmt.Sprintf("balance_min_%s_%s", r.TargetEmploymentType, r.TargetShiftName))
	for _, e := range group {
		n := b.grid.shiftCount(e, s)
		b.m.AddGreaterOrEqual(cpmodel.NewLinearExpr().Add(maxV).AddTerm(n, -1), 0)
		b.m.AddLessOrEqual(cpmodel.NewLinearExpr().Add(minV).AddTerm(n, -1), 0)
	}
	return maxV, minV
}
