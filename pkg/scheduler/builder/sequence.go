package builder

import (
	"fmt"

	"github.com/kaigoban/kaigoban/pkg/cpmodel"
	"github.com/kaigoban/kaigoban/pkg/scheduler/rule"
)

// compileSequences 编译连续两天的班次顺序规则：
// 某天排了 A，次日必须排 B。周期最后一天没有次日，不参与。
func (b *builder) compileSequences() {
	for _, r := range b.in.Rules.Sequences {
		prev, ok := b.in.Alphabet.Index(r.PreviousShiftName)
		if !ok {
			b.warnf(rule.FamilySequence, "班次 %q 不在字母表中，规则已跳过", r.PreviousShiftName)
			continue
		}
		next, ok := b.in.Alphabet.Index(r.NextShiftName)
		if !ok {
			b.warnf(rule.FamilySequence, "班次 %q 不在字母表中，规则已跳过", r.NextShiftName)
			continue
		}
		if b.in.Horizon.Len() < 2 {
			b.infof(rule.FamilySequence, "周期不足两天，规则无效果")
			continue
		}

		switch r.ConstraintType {
		case rule.TypeHard:
			for e := 0; e < b.in.Roster.Len(); e++ {
				for d := 0; d < b.in.Horizon.Len()-1; d++ {
					// a <= b 等价于 a=1 ⇒ b=1
					expr := cpmodel.NewLinearExpr().
						Add(b.grid.X(e, d, prev)).
						AddTerm(b.grid.X(e, d+1, next), -1)
					b.m.AddLessOrEqual(expr, 0)
				}
			}
		case rule.TypeSoft:
			if r.PenaltyWeight <= 0 {
				b.infof(rule.FamilySequence, "软规则权重为 0，无效果")
				continue
			}
			for e := 0; e < b.in.Roster.Len(); e++ {
				emp := b.in.Roster.At(e)
				for d := 0; d < b.in.Horizon.Len()-1; d++ {
					// v >= a - b：a 排了而次日没排 b 时 v 被抬到 1
					v := b.m.NewBoolVar(fmt.Sprintf("seq_viol_emp%s_day%d_%s_%s", emp.ID, d, r.PreviousShiftName, r.NextShiftName))
					expr := cpmodel.NewLinearExpr().
						Add(b.grid.X(e, d, prev)).
						AddTerm(b.grid.X(e, d+1, next), -1).
						AddTerm(v, -1)
					b.m.AddLessOrEqual(expr, 0)
					b.addPenalty(v.Index(), r.PenaltyWeight)
				}
			}
		default:
			b.warnf(rule.FamilySequence, "未知约束类型 %q，规则已跳过", r.ConstraintType)
		}
	}
}
