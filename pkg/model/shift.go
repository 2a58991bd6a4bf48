// Package model 定义排班核心数据模型
package model

// ShiftCode 班次代码（日文班表记号）
type ShiftCode = string

// 介护设施的基本班次
const (
	ShiftOff       ShiftCode = "公休" // 公休日
	ShiftDay       ShiftCode = "日勤" // 日班
	ShiftEarly     ShiftCode = "早出" // 早班
	ShiftNight     ShiftCode = "夜勤" // 夜班
	ShiftPostNight ShiftCode = "明勤" // 夜班次日恢复班
)

// DefaultShifts 默认班次字母表（顺序即变量编号顺序）
func DefaultShifts() []ShiftCode {
	return []ShiftCode{ShiftDay, ShiftOff, ShiftNight, ShiftEarly, ShiftPostNight}
}

// DefaultWorkingShifts 默认计入稼动天数的班次集合
func DefaultWorkingShifts() []ShiftCode {
	return []ShiftCode{ShiftDay, ShiftEarly, ShiftNight, ShiftPostNight}
}

// Alphabet 班次字母表：构建期固定的有序班次集合
type Alphabet struct {
	codes   []ShiftCode
	index   map[ShiftCode]int
	working map[ShiftCode]bool
}

// NewAlphabet 创建班次字母表。working 为空时使用默认稼动班次集合。
func NewAlphabet(codes []ShiftCode, working []ShiftCode) *Alphabet {
	if len(codes) == 0 {
		codes = DefaultShifts()
	}
	if len(working) == 0 {
		working = DefaultWorkingShifts()
	}
	a := &Alphabet{
		codes:   make([]ShiftCode, len(codes)),
		index:   make(map[ShiftCode]int, len(codes)),
		working: make(map[ShiftCode]bool, len(working)),
	}
	copy(a.codes, codes)
	for i, c := range codes {
		a.index[c] = i
	}
	for _, c := range working {
		a.working[c] = true
	}
	return a
}

// Codes 返回全部班次代码（只读副本）
func (a *Alphabet) Codes() []ShiftCode {
	out := make([]ShiftCode, len(a.codes))
	copy(out, a.codes)
	return out
}

// Len 返回班次数量
func (a *Alphabet) Len() int { return len(a.codes) }

// Index 返回班次在字母表中的序号
func (a *Alphabet) Index(code ShiftCode) (int, bool) {
	i, ok := a.index[code]
	return i, ok
}

// Contains 检查班次是否在字母表中
func (a *Alphabet) Contains(code ShiftCode) bool {
	_, ok := a.index[code]
	return ok
}

// IsWorking 检查班次是否计入稼动天数
func (a *Alphabet) IsWorking(code ShiftCode) bool {
	return a.working[code]
}

// WorkingCodes 返回稼动班次（按字母表顺序）
func (a *Alphabet) WorkingCodes() []ShiftCode {
	var out []ShiftCode
	for _, c := range a.codes {
		if a.working[c] {
			out = append(out, c)
		}
	}
	return out
}
