package cpmodel

// LinearArgument 可以出现在线性表达式中的实体：BoolVar、IntVar 或 LinearExpr
type LinearArgument interface {
	appendTo(e *LinearExpr, coeff int)
}

// BoolVar 布尔变量的引用
type BoolVar struct {
	ind VarIndex
}

// Index 返回变量序号
func (b BoolVar) Index() VarIndex { return b.ind }

func (b BoolVar) appendTo(e *LinearExpr, coeff int) {
	e.terms = append(e.terms, exprTerm{ind: b.ind, coeff: coeff})
}

// IntVar 整数变量的引用
type IntVar struct {
	ind VarIndex
}

// Index 返回变量序号
func (v IntVar) Index() VarIndex { return v.ind }

func (v IntVar) appendTo(e *LinearExpr, coeff int) {
	e.terms = append(e.terms, exprTerm{ind: v.ind, coeff: coeff})
}

// exprTerm 表达式中的一项
type exprTerm struct {
	ind   VarIndex
	coeff int
}

// LinearExpr 线性表达式容器
type LinearExpr struct {
	terms  []exprTerm
	offset int
}

// NewLinearExpr 创建空表达式
func NewLinearExpr() *LinearExpr {
	return &LinearExpr{}
}

// Add 追加系数为 1 的项并返回自身
func (e *LinearExpr) Add(la LinearArgument) *LinearExpr {
	return e.AddTerm(la, 1)
}

// AddTerm 追加带系数的项并返回自身
func (e *LinearExpr) AddTerm(la LinearArgument, coeff int) *LinearExpr {
	la.appendTo(e, coeff)
	return e
}

// AddSum 追加多个系数为 1 的项并返回自身
func (e *LinearExpr) AddSum(las ...LinearArgument) *LinearExpr {
	for _, la := range las {
		e.Add(la)
	}
	return e
}

// AddConstant 追加常数项并返回自身
func (e *LinearExpr) AddConstant(c int) *LinearExpr {
	e.offset += c
	return e
}

func (e *LinearExpr) appendTo(dst *LinearExpr, coeff int) {
	for _, t := range e.terms {
		dst.terms = append(dst.terms, exprTerm{ind: t.ind, coeff: t.coeff * coeff})
	}
	dst.offset += e.offset * coeff
}

// SumBool 返回一组布尔变量之和的表达式
func SumBool(vars ...BoolVar) *LinearExpr {
	e := NewLinearExpr()
	for _, v := range vars {
		e.Add(v)
	}
	return e
}
