// Package schedule 将求解结果还原为班表并提供统计视图
package schedule

import (
	"github.com/kaigoban/kaigoban/pkg/errors"
	"github.com/kaigoban/kaigoban/pkg/model"
	"github.com/kaigoban/kaigoban/pkg/sat"
	"github.com/kaigoban/kaigoban/pkg/scheduler/builder"
)

// Table 解码后的班表：员工 × 日期 → 班次代码
type Table struct {
	alphabet *model.Alphabet
	roster   *model.Roster
	horizon  *model.Horizon
	cells    [][]model.ShiftCode // [员工][天]
	Cost     int                 // 目标函数值
}

// Decode 从解中还原班表。单热约束保证每格恰好一个班次；
// 出现零个或多个命中说明模型或求解器异常。
func Decode(res *builder.Result, sol *sat.Solution, roster *model.Roster, horizon *model.Horizon, alphabet *model.Alphabet) (*Table, error) {
	if sol.Status != sat.StatusOptimal {
		return nil, errors.New(errors.CodeNoFeasibleSolution, "没有可行解，无法生成班表")
	}

	t := &Table{
		alphabet: alphabet,
		roster:   roster,
		horizon:  horizon,
		cells:    make([][]model.ShiftCode, roster.Len()),
		Cost:     sol.Cost,
	}
	codes := alphabet.Codes()
	for e := 0; e < roster.Len(); e++ {
		emp := roster.At(e)
		t.cells[e] = make([]model.ShiftCode, horizon.Len())
		for d := 0; d < horizon.Len(); d++ {
			day := horizon.At(d)
			assigned := ""
			for _, code := range codes {
				v, ok := res.Grid.Var(emp.ID, day.String(), code)
				if !ok {
					return nil, errors.Newf(errors.CodeModelInvalid, "变量网格缺少 (%s, %s, %s)", emp.ID, day, code)
				}
				if sol.BoolValue(v.Index()) {
					if assigned != "" {
						return nil, errors.Newf(errors.CodeModelInvalid, "员工 %s 在 %s 命中多个班次", emp.ID, day)
					}
					assigned = code
				}
			}
			if assigned == "" {
				return nil, errors.Newf(errors.CodeModelInvalid, "员工 %s 在 %s 没有命中任何班次", emp.ID, day)
			}
			t.cells[e][d] = assigned
		}
	}
	return t, nil
}

// At 返回员工 e 第 d 天的班次
func (t *Table) At(e, d int) model.ShiftCode { return t.cells[e][d] }

// Shift 按员工ID和日期字符串查班次
func (t *Table) Shift(employeeID, dateStr string) (model.ShiftCode, bool) {
	e, ok := t.roster.Index(employeeID)
	if !ok {
		return "", false
	}
	d, ok := t.horizon.Index(dateStr)
	if !ok {
		return "", false
	}
	return t.cells[e][d], true
}

// CountForEmployee 返回员工在整个周期内某班次的出现次数
func (t *Table) CountForEmployee(e int, code model.ShiftCode) int {
	n := 0
	for d := range t.cells[e] {
		if t.cells[e][d] == code {
			n++
		}
	}
	return n
}

// CountForDay 返回某天全员中某班次的出现次数
func (t *Table) CountForDay(d int, code model.ShiftCode) int {
	n := 0
	for e := range t.cells {
		if t.cells[e][d] == code {
			n++
		}
	}
	return n
}

// WorkdaysForEmployee 返回员工在整个周期内的稼动天数
func (t *Table) WorkdaysForEmployee(e int) int {
	n := 0
	for d := range t.cells[e] {
		if t.alphabet.IsWorking(t.cells[e][d]) {
			n++
		}
	}
	return n
}

// MaxConsecutiveWorkdays 返回员工最长的连续稼动天数
func (t *Table) MaxConsecutiveWorkdays(e int) int {
	best, run := 0, 0
	for d := range t.cells[e] {
		if t.alphabet.IsWorking(t.cells[e][d]) {
			run++
			if run > best {
				best = run
			}
		} else {
			run = 0
		}
	}
	return best
}

// Roster 返回班表对应的员工名册
func (t *Table) Roster() *model.Roster { return t.roster }

// Horizon 返回班表对应的排班周期
func (t *Table) Horizon() *model.Horizon { return t.horizon }

// Alphabet 返回班表对应的班次字母表
func (t *Table) Alphabet() *model.Alphabet { return t.alphabet }
