// Package builder 将规则集编译为约束模型。
// 变量工厂、各规则族编译器和目标函数装配器都在本包内，
// 由 Build 按固定顺序调度。
package builder

import (
	"fmt"

	"github.com/kaigoban/kaigoban/pkg/cpmodel"
	"github.com/kaigoban/kaigoban/pkg/model"
)

// Grid 排班变量网格：x[e,d,s] ∈ {0,1}。
// 变量工厂唯一发出的全局硬约束是单热约束（每人每天恰好一个班次）。
type Grid struct {
	m        *cpmodel.Model
	alphabet *model.Alphabet
	roster   *model.Roster
	horizon  *model.Horizon
	vars     [][][]cpmodel.BoolVar // [员工][天][班次]
	offIdx   int

	// 派生指标缓存：按 (员工序号, 天序号) 的稠密数组，保证确定性
	workDay [][]*cpmodel.LinearExpr
}

// newGrid 创建变量网格并发出单热约束
func newGrid(m *cpmodel.Model, alphabet *model.Alphabet, roster *model.Roster, horizon *model.Horizon) *Grid {
	offIdx, _ := alphabet.Index(model.ShiftOff)
	g := &Grid{
		m:        m,
		alphabet: alphabet,
		roster:   roster,
		horizon:  horizon,
		offIdx:   offIdx,
	}
	codes := alphabet.Codes()
	g.vars = make([][][]cpmodel.BoolVar, roster.Len())
	g.workDay = make([][]*cpmodel.LinearExpr, roster.Len())
	for e := 0; e < roster.Len(); e++ {
		emp := roster.At(e)
		g.vars[e] = make([][]cpmodel.BoolVar, horizon.Len())
		g.workDay[e] = make([]*cpmodel.LinearExpr, horizon.Len())
		for d := 0; d < horizon.Len(); d++ {
			g.vars[e][d] = make([]cpmodel.BoolVar, len(codes))
			for s, code := range codes {
				name := fmt.Sprintf("x_emp%s_day%d_shift%s", emp.ID, d, code)
				g.vars[e][d][s] = m.NewBoolVar(name)
			}
			m.AddEquality(cpmodel.SumBool(g.vars[e][d]...), 1)
		}
	}
	return g
}

// X 返回 (员工序号, 天序号, 班次序号) 处的赋值变量
func (g *Grid) X(e, d, s int) cpmodel.BoolVar {
	return g.vars[e][d][s]
}

// Var 按 (员工ID, 日期字符串, 班次代码) 查找赋值变量
func (g *Grid) Var(employeeID, dateStr string, shift model.ShiftCode) (cpmodel.BoolVar, bool) {
	e, ok := g.roster.Index(employeeID)
	if !ok {
		return cpmodel.BoolVar{}, false
	}
	d, ok := g.horizon.Index(dateStr)
	if !ok {
		return cpmodel.BoolVar{}, false
	}
	s, ok := g.alphabet.Index(shift)
	if !ok {
		return cpmodel.BoolVar{}, false
	}
	return g.vars[e][d][s], true
}

// offVar 返回公休班次的赋值变量
func (g *Grid) offVar(e, d int) cpmodel.BoolVar {
	return g.vars[e][d][g.offIdx]
}

// work 返回 work[e,d]：当天落在字母表稼动班次集合上的 0/1 表达式。
// 单热约束保证取值不超过 1。结果被缓存，调用方不得修改。
func (g *Grid) work(e, d int) *cpmodel.LinearExpr {
	if g.workDay[e][d] != nil {
		return g.workDay[e][d]
	}
	expr := cpmodel.NewLinearExpr()
	for s, code := range g.alphabet.Codes() {
		if g.alphabet.IsWorking(code) {
			expr.Add(g.vars[e][d][s])
		}
	}
	g.workDay[e][d] = expr
	return expr
}

// workTotal 返回员工在整个周期内的稼动天数表达式
func (g *Grid) workTotal(e int) *cpmodel.LinearExpr {
	expr := cpmodel.NewLinearExpr()
	for d := 0; d < g.horizon.Len(); d++ {
		expr.AddTerm(g.work(e, d), 1)
	}
	return expr
}

// shiftCount 返回员工在整个周期内被分配到某班次的次数表达式
func (g *Grid) shiftCount(e, s int) *cpmodel.LinearExpr {
	expr := cpmodel.NewLinearExpr()
	for d := 0; d < g.horizon.Len(); d++ {
		expr.Add(g.vars[e][d][s])
	}
	return expr
}
