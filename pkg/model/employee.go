package model

// EmploymentType 雇用形态
type EmploymentType = string

const (
	EmploymentFullTime EmploymentType = "常勤"  // 全职
	EmploymentPartTime EmploymentType = "パート" // 兼职
)

// 长期休假状态（状态列的取值）
const (
	StatusMaternityLeave = "育休" // 育儿休假
	StatusSickLeave      = "病休" // 病假
)

// Employee 员工记录。排期内固定不变。
type Employee struct {
	ID             string         `json:"id" yaml:"id"`
	Name           string         `json:"name" yaml:"name"`
	Floor          string         `json:"floor" yaml:"floor"`                     // 担当楼层，如 1F/2F
	EmploymentType EmploymentType `json:"employment_type" yaml:"employment_type"` // 常勤/パート
	Status         string         `json:"status,omitempty" yaml:"status,omitempty"`
}

// Roster 员工名册：有序且按ID可查
type Roster struct {
	employees []Employee
	index     map[string]int
}

// NewRoster 创建员工名册。重复ID保留首次出现的记录。
func NewRoster(employees []Employee) *Roster {
	r := &Roster{index: make(map[string]int, len(employees))}
	for _, e := range employees {
		if _, dup := r.index[e.ID]; dup {
			continue
		}
		r.index[e.ID] = len(r.employees)
		r.employees = append(r.employees, e)
	}
	return r
}

// Len 返回员工数量
func (r *Roster) Len() int { return len(r.employees) }

// All 返回全部员工（按名册顺序）
func (r *Roster) All() []Employee {
	out := make([]Employee, len(r.employees))
	copy(out, r.employees)
	return out
}

// At 返回第 i 个员工
func (r *Roster) At(i int) Employee { return r.employees[i] }

// Index 返回员工ID对应的名册序号
func (r *Roster) Index(id string) (int, bool) {
	i, ok := r.index[id]
	return i, ok
}

// Contains 检查员工ID是否在名册中
func (r *Roster) Contains(id string) bool {
	_, ok := r.index[id]
	return ok
}

// OnFloor 返回指定楼层的员工序号列表（按名册顺序）
func (r *Roster) OnFloor(floor string) []int {
	var out []int
	for i, e := range r.employees {
		if e.Floor == floor {
			out = append(out, i)
		}
	}
	return out
}

// ByEmploymentType 返回指定雇用形态的员工序号列表
func (r *Roster) ByEmploymentType(t EmploymentType) []int {
	var out []int
	for i, e := range r.employees {
		if e.EmploymentType == t {
			out = append(out, i)
		}
	}
	return out
}
