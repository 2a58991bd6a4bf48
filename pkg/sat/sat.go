// Package sat 将 cpmodel 模型降阶为伪布尔约束并调用 gophersat 求解。
// 整数变量按二进制位编码为布尔文字，线性约束逐项展开为 PB 约束。
// 目标函数通过逐步收紧成本上界的迭代求解实现最小化：
// 每找到一个解，就追加一条"成本 <= 当前成本 - 1"的 PB 约束重新求解，
// 直到不可行为止，最后一个解即为最优解。
package sat

import (
	"github.com/crillab/gophersat/solver"

	"github.com/kaigoban/kaigoban/pkg/cpmodel"
	"github.com/kaigoban/kaigoban/pkg/errors"
)

// Status 求解状态
type Status string

const (
	StatusOptimal    Status = "optimal"    // 找到最优解（纯可满足性问题的任意解视为最优）
	StatusInfeasible Status = "infeasible" // 约束矛盾，无可行解
)

// Solution 求解结果
type Solution struct {
	Status Status
	Cost   int // 目标函数值；纯可满足性问题恒为 0
	values []int
}

// Value 返回模型变量在解中的取值
func (s *Solution) Value(v cpmodel.VarIndex) int {
	return s.values[v]
}

// BoolValue 返回布尔变量在解中的取值
func (s *Solution) BoolValue(v cpmodel.VarIndex) bool {
	return s.values[v] != 0
}

// encoding 模型到 PB 文字的编码映射
type encoding struct {
	bitLits [][]int // 每个模型变量的二进制位文字（低位在前）
	lbs     []int   // 每个模型变量的下界（常数偏移）
	nextLit int     // 下一个可用的 PB 文字编号（1 起）
	constrs []solver.PBConstr
}

// bitsFor 返回表示 [0, span] 所需的位数
func bitsFor(span int) int {
	n := 0
	for v := span; v > 0; v >>= 1 {
		n++
	}
	return n
}

// newEncoding 为模型的全部变量分配位文字并登记界约束
func newEncoding(m *cpmodel.Model) *encoding {
	enc := &encoding{
		bitLits: make([][]int, m.NumVars()),
		lbs:     make([]int, m.NumVars()),
		nextLit: 1,
	}
	for i := 0; i < m.NumVars(); i++ {
		lb, ub := m.VarBounds(cpmodel.VarIndex(i))
		enc.lbs[i] = lb
		span := ub - lb
		nbits := bitsFor(span)
		lits := make([]int, nbits)
		weights := make([]int, nbits)
		for b := 0; b < nbits; b++ {
			lits[b] = enc.nextLit
			weights[b] = 1 << b
			enc.nextLit++
		}
		enc.bitLits[i] = lits
		// 位组合可超出取值范围时需要上界约束
		if span > 0 && (1<<nbits)-1 > span {
			litsCopy := make([]int, nbits)
			weightsCopy := make([]int, nbits)
			copy(litsCopy, lits)
			copy(weightsCopy, weights)
			enc.constrs = append(enc.constrs, solver.LtEq(litsCopy, weightsCopy, span))
		}
	}
	return enc
}

// expand 将线性约束的各项展开为位文字和权重。
// 同一变量多次出现时先合并系数，常数下界折入 rhs。
func (enc *encoding) expand(c cpmodel.Constraint) (lits []int, weights []int, rhs int) {
	rhs = c.Rhs
	merged := make([]int, 0, len(c.Vars))
	order := make([]cpmodel.VarIndex, 0, len(c.Vars))
	seen := make(map[cpmodel.VarIndex]int, len(c.Vars))
	for i, v := range c.Vars {
		if pos, ok := seen[v]; ok {
			merged[pos] += c.Coeffs[i]
			continue
		}
		seen[v] = len(merged)
		order = append(order, v)
		merged = append(merged, c.Coeffs[i])
	}
	for i, v := range order {
		coeff := merged[i]
		if coeff == 0 {
			continue
		}
		rhs -= coeff * enc.lbs[v]
		for b, lit := range enc.bitLits[v] {
			lits = append(lits, lit)
			weights = append(weights, coeff*(1<<b))
		}
	}
	return lits, weights, rhs
}

// objective 目标函数在位编码下的展开
type objective struct {
	terms   []cpmodel.Term
	bitLits []int // 各惩罚变量的位文字
	bitWs   []int // 对应权重（weight * 2^b）
	offset  int   // 下界贡献的常数成本
}

// newObjective 展开目标函数。权重为 0 的项已在构建期丢弃，这里再防一手。
func newObjective(m *cpmodel.Model, enc *encoding) *objective {
	obj := &objective{}
	for _, t := range m.Objective() {
		if t.Weight == 0 {
			continue
		}
		obj.terms = append(obj.terms, t)
		obj.offset += t.Weight * enc.lbs[t.Var]
		for b, lit := range enc.bitLits[t.Var] {
			obj.bitLits = append(obj.bitLits, lit)
			obj.bitWs = append(obj.bitWs, t.Weight*(1<<b))
		}
	}
	return obj
}

// cost 计算一组变量取值下的目标函数值
func (obj *objective) cost(values []int) int {
	total := 0
	for _, t := range obj.terms {
		total += t.Weight * values[t.Var]
	}
	return total
}

// boundConstr 返回"位编码成本 <= bound"的 PB 约束。
// LtEq 会就地改写传入的切片，每次都复制一份。
func (obj *objective) boundConstr(bound int) solver.PBConstr {
	lits := make([]int, len(obj.bitLits))
	weights := make([]int, len(obj.bitWs))
	copy(lits, obj.bitLits)
	copy(weights, obj.bitWs)
	return solver.LtEq(lits, weights, bound)
}

// Solve 降阶并求解模型。
// 模型无目标函数时为纯可满足性求解；有目标函数时返回最优值。
func Solve(m *cpmodel.Model) (*Solution, error) {
	enc := newEncoding(m)

	for _, c := range m.Constraints() {
		lits, weights, rhs := enc.expand(c)
		if len(lits) == 0 {
			// 表达式只含常数：直接判定
			ok := true
			switch c.Op {
			case cpmodel.OpEq:
				ok = rhs == 0
			case cpmodel.OpLe:
				ok = rhs >= 0
			case cpmodel.OpGe:
				ok = rhs <= 0
			}
			if !ok {
				return &Solution{Status: StatusInfeasible}, nil
			}
			continue
		}
		switch c.Op {
		case cpmodel.OpEq:
			enc.constrs = append(enc.constrs, solver.Eq(lits, weights, rhs)...)
		case cpmodel.OpLe:
			enc.constrs = append(enc.constrs, solver.LtEq(lits, weights, rhs))
		case cpmodel.OpGe:
			enc.constrs = append(enc.constrs, solver.GtEq(lits, weights, rhs))
		default:
			return nil, errors.Newf(errors.CodeModelInvalid, "未知比较算子 %v", c.Op)
		}
	}

	obj := newObjective(m, enc)

	// 纯可满足性：求一个解即可
	if len(obj.bitLits) == 0 {
		values, ok := solveOnce(enc.constrs, enc, m)
		if !ok {
			return &Solution{Status: StatusInfeasible}, nil
		}
		return &Solution{Status: StatusOptimal, Cost: obj.offset, values: values}, nil
	}

	// 最小化：逐步收紧成本上界直到不可行，保留最后一个可行解
	var best []int
	bestCost := 0
	haveBound := false
	bound := 0
	for {
		constrs := enc.constrs
		if haveBound {
			constrs = make([]solver.PBConstr, 0, len(enc.constrs)+1)
			constrs = append(constrs, enc.constrs...)
			constrs = append(constrs, obj.boundConstr(bound))
		}
		values, ok := solveOnce(constrs, enc, m)
		if !ok {
			break
		}
		best = values
		bestCost = obj.cost(values)
		// 位编码部分的成本（不含下界常数）降到 0 即不可能更优
		bitCost := bestCost - obj.offset
		if bitCost == 0 {
			break
		}
		haveBound = true
		bound = bitCost - 1
	}

	if best == nil {
		return &Solution{Status: StatusInfeasible}, nil
	}
	return &Solution{Status: StatusOptimal, Cost: bestCost, values: best}, nil
}

// solveOnce 构造问题并求解一次，返回还原后的变量取值。
// 求解器会就地化简子句，而子句与约束共享底层切片，
// 因此每次求解前把全部约束深拷贝一份，保证迭代间互不污染。
func solveOnce(constrs []solver.PBConstr, enc *encoding, m *cpmodel.Model) ([]int, bool) {
	prob := solver.ParsePBConstrs(copyConstrs(constrs))
	s := solver.New(prob)
	if s.Solve() != solver.Sat {
		return nil, false
	}
	return enc.extract(m, s.Model()), true
}

// copyConstrs 深拷贝 PB 约束列表
func copyConstrs(constrs []solver.PBConstr) []solver.PBConstr {
	out := make([]solver.PBConstr, len(constrs))
	for i, c := range constrs {
		lits := make([]int, len(c.Lits))
		copy(lits, c.Lits)
		var weights []int
		if c.Weights != nil {
			weights = make([]int, len(c.Weights))
			copy(weights, c.Weights)
		}
		out[i] = solver.PBConstr{Lits: lits, Weights: weights, AtLeast: c.AtLeast}
	}
	return out
}

// extract 从 PB 解还原模型变量取值
func (enc *encoding) extract(m *cpmodel.Model, bindings []bool) []int {
	values := make([]int, m.NumVars())
	for i := range values {
		v := enc.lbs[i]
		for b, lit := range enc.bitLits[i] {
			// 化简阶段可能消去从未出现在约束中的文字
			if lit-1 < len(bindings) && bindings[lit-1] {
				v += 1 << b
			}
		}
		values[i] = v
	}
	return values
}
