// Package cpmodel 提供 CP-SAT 风格的约束模型构建接口。
// 模型只描述变量、线性约束和目标函数，不关心底层求解器如何求解。
package cpmodel

import "fmt"

// VarIndex 模型内变量序号
type VarIndex int32

// Op 线性约束的比较算子
type Op int

const (
	OpEq Op = iota // 等于
	OpLe           // 小于等于
	OpGe           // 大于等于
)

// String 返回算子的字符串表示
func (op Op) String() string {
	switch op {
	case OpEq:
		return "=="
	case OpLe:
		return "<="
	case OpGe:
		return ">="
	default:
		return "?"
	}
}

// varData 变量元数据
type varData struct {
	name string
	lb   int
	ub   int
}

// Term 目标函数中的惩罚项：weight * var
type Term struct {
	Var    VarIndex
	Weight int
}

// Constraint 规范化的线性约束：sum(coeff*var) op rhs
type Constraint struct {
	Vars   []VarIndex
	Coeffs []int
	Op     Op
	Rhs    int
}

// Model 约束模型。非并发安全：构建过程为单线程。
type Model struct {
	vars      []varData
	constrs   []Constraint
	objective []Term
}

// NewModel 创建空模型
func NewModel() *Model {
	return &Model{}
}

// NewBoolVar 创建布尔变量（取值 0/1）
func (m *Model) NewBoolVar(name string) BoolVar {
	ind := VarIndex(len(m.vars))
	m.vars = append(m.vars, varData{name: name, lb: 0, ub: 1})
	return BoolVar{ind: ind}
}

// NewIntVar 创建有界整数变量。lb > ub 视为模型构建代码的编程错误。
func (m *Model) NewIntVar(lb, ub int, name string) IntVar {
	if lb > ub {
		panic(fmt.Sprintf("cpmodel: 变量 %s 下界 %d 大于上界 %d", name, lb, ub))
	}
	ind := VarIndex(len(m.vars))
	m.vars = append(m.vars, varData{name: name, lb: lb, ub: ub})
	return IntVar{ind: ind}
}

// AddEquality 添加约束 expr == rhs
func (m *Model) AddEquality(la LinearArgument, rhs int) {
	m.addLinear(la, OpEq, rhs)
}

// AddLessOrEqual 添加约束 expr <= rhs
func (m *Model) AddLessOrEqual(la LinearArgument, rhs int) {
	m.addLinear(la, OpLe, rhs)
}

// AddGreaterOrEqual 添加约束 expr >= rhs
func (m *Model) AddGreaterOrEqual(la LinearArgument, rhs int) {
	m.addLinear(la, OpGe, rhs)
}

// addLinear 规范化并登记约束。表达式常数项折入右侧。
func (m *Model) addLinear(la LinearArgument, op Op, rhs int) {
	expr := NewLinearExpr().Add(la)
	c := Constraint{
		Vars:   make([]VarIndex, 0, len(expr.terms)),
		Coeffs: make([]int, 0, len(expr.terms)),
		Op:     op,
		Rhs:    rhs - expr.offset,
	}
	for _, t := range expr.terms {
		c.Vars = append(c.Vars, t.ind)
		c.Coeffs = append(c.Coeffs, t.coeff)
	}
	m.constrs = append(m.constrs, c)
}

// Minimize 设定最小化目标：sum(weight*var)。
// terms 为空时模型为纯可满足性问题。
func (m *Model) Minimize(terms []Term) {
	m.objective = make([]Term, len(terms))
	copy(m.objective, terms)
}

// NumVars 返回变量数量
func (m *Model) NumVars() int { return len(m.vars) }

// NumConstraints 返回约束数量
func (m *Model) NumConstraints() int { return len(m.constrs) }

// VarName 返回变量名
func (m *Model) VarName(ind VarIndex) string { return m.vars[ind].name }

// VarBounds 返回变量上下界
func (m *Model) VarBounds(ind VarIndex) (lb, ub int) {
	return m.vars[ind].lb, m.vars[ind].ub
}

// Constraints 返回全部约束（按添加顺序，只读）
func (m *Model) Constraints() []Constraint { return m.constrs }

// Objective 返回目标函数的惩罚项（只读）
func (m *Model) Objective() []Term { return m.objective }
