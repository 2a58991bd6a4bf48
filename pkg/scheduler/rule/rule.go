// Package rule 定义排班规则的统一模式。
// 每条规则是一个带 constraint_type 判别字段的参数集合，
// 由 builder 包编译为约束和惩罚项。
package rule

import "github.com/kaigoban/kaigoban/pkg/model"

// ConstraintType 约束类型判别值
type ConstraintType string

const (
	TypeHard ConstraintType = "hard" // 硬约束（违反即不可行）
	TypeSoft ConstraintType = "soft" // 软约束（违反计入目标函数惩罚）

	// 总稼动天数规则的扩展判别值
	TypeExact     ConstraintType = "exact"
	TypeMax       ConstraintType = "max"
	TypeMin       ConstraintType = "min"
	TypeSoftExact ConstraintType = "soft_exact"
	TypeSoftMax   ConstraintType = "soft_max"
	TypeSoftMin   ConstraintType = "soft_min"
)

// Family 规则族标识（用于诊断信息）
type Family string

const (
	FamilyStaffing       Family = "facility_staffing"
	FamilyMinDaysOff     Family = "min_days_off"
	FamilyMaxConsecutive Family = "max_consecutive_workdays"
	FamilySequence       Family = "sequential_shift"
	FamilyBalance        Family = "assignment_balance"
	FamilyShiftRequest   Family = "shift_request"
	FamilyPairAvoid      Family = "pair_same_shift_avoidance"
	FamilyWorkdays       Family = "total_workdays"
	FamilyWeekendOff     Family = "weekend_holiday_off"
	FamilyStatusLeave    Family = "status_full_leave"
)

// StaffingRule 设施人员配置规则（按楼层×班次，作用于每一天）
type StaffingRule struct {
	Target             *int           `yaml:"target" json:"target"`
	ConstraintType     ConstraintType `yaml:"constraint_type" json:"constraint_type"`
	UnderPenaltyWeight int            `yaml:"under_penalty_weight" json:"under_penalty_weight"`
	OverPenaltyWeight  int            `yaml:"over_penalty_weight" json:"over_penalty_weight"`
}

// Staffing 楼层 → 班次 → 配置规则
type Staffing map[string]map[model.ShiftCode]StaffingRule

// MinDaysOffRule 个人最低公休天数规则
type MinDaysOffRule struct {
	MinDays              int            `yaml:"min_days" json:"min_days"`
	TargetEmploymentType string         `yaml:"target_employment_type" json:"target_employment_type"`
	ConstraintType       ConstraintType `yaml:"constraint_type" json:"constraint_type"`
	UnderPenaltyWeight   int            `yaml:"under_penalty_weight" json:"under_penalty_weight"`
}

// MaxConsecutiveRule 最大连续稼动天数规则（滑动窗口）
type MaxConsecutiveRule struct {
	MaxDays           int               `yaml:"max_days" json:"max_days"`
	WorkShifts        []model.ShiftCode `yaml:"work_shifts" json:"work_shifts"`
	ConstraintType    ConstraintType    `yaml:"constraint_type" json:"constraint_type"`
	OverPenaltyWeight int               `yaml:"over_penalty_weight" json:"over_penalty_weight"`
}

// SequenceRule 连续两天的班次顺序规则（A 的次日必须 B）
type SequenceRule struct {
	PreviousShiftName model.ShiftCode `yaml:"previous_shift_name" json:"previous_shift_name"`
	NextShiftName     model.ShiftCode `yaml:"next_shift_name" json:"next_shift_name"`
	ConstraintType    ConstraintType  `yaml:"constraint_type" json:"constraint_type"`
	PenaltyWeight     int             `yaml:"penalty_weight" json:"penalty_weight"`
}

// BalanceRule 班次分配数均衡规则（组内最大最小差值）
type BalanceRule struct {
	TargetEmploymentType string          `yaml:"target_employment_type" json:"target_employment_type"`
	TargetShiftName      model.ShiftCode `yaml:"target_shift_name" json:"target_shift_name"`
	ConstraintType       ConstraintType  `yaml:"constraint_type" json:"constraint_type"`
	MaxDiffAllowed       *int            `yaml:"max_diff_allowed" json:"max_diff_allowed"`
	PenaltyWeight        int             `yaml:"penalty_weight" json:"penalty_weight"`
}

// ShiftRequestRule 个人班次申请
type ShiftRequestRule struct {
	EmployeeID     string          `yaml:"employee_id" json:"employee_id"`
	Date           string          `yaml:"date" json:"date"` // YYYY-MM-DD
	RequestedShift model.ShiftCode `yaml:"requested_shift" json:"requested_shift"`
	ConstraintType ConstraintType  `yaml:"constraint_type" json:"constraint_type"`
	PenaltyWeight  int             `yaml:"penalty_weight" json:"penalty_weight"`
}

// PairAvoidRule 两名员工避免同日同班规则（仅硬约束）
type PairAvoidRule struct {
	EmployeePair   []string          `yaml:"employee_pair" json:"employee_pair"`
	AvoidShifts    []model.ShiftCode `yaml:"avoid_shifts" json:"avoid_shifts"`
	ConstraintType ConstraintType    `yaml:"constraint_type" json:"constraint_type"`
}

// WorkdaysRule 总稼动天数控制规则
type WorkdaysRule struct {
	EmployeeID     string         `yaml:"employee_id" json:"employee_id"`
	ConstraintType ConstraintType `yaml:"constraint_type" json:"constraint_type"`
	Days           int            `yaml:"days" json:"days"`
	PenaltyWeight  int            `yaml:"penalty_weight" json:"penalty_weight"`
}

// WeekendOffRule 周末及节假日公休规则
type WeekendOffRule struct {
	Holidays        []string       `yaml:"holidays_list" json:"holidays_list"` // 周期外日期被忽略
	TargetEmployees []string       `yaml:"target_employees" json:"target_employees"`
	ConstraintType  ConstraintType `yaml:"constraint_type" json:"constraint_type"`
	PenaltyWeight   int            `yaml:"penalty_weight" json:"penalty_weight"`
}

// StatusLeaveRule 基于状态的全周期休假规则（仅硬约束）
type StatusLeaveRule struct {
	StatusValues    []string        `yaml:"status_values_for_full_leave" json:"status_values_for_full_leave"`
	LeaveShiftName  model.ShiftCode `yaml:"leave_shift_name" json:"leave_shift_name"` // 默认公休
	TargetEmployees []string        `yaml:"target_employees" json:"target_employees"`
}

// Set 十个规则族的集合，按族分组传入构建器
type Set struct {
	Staffing       Staffing             `yaml:"facility_staffing" json:"facility_staffing"`
	MinDaysOff     []MinDaysOffRule     `yaml:"min_days_off" json:"min_days_off"`
	MaxConsecutive []MaxConsecutiveRule `yaml:"max_consecutive_workdays" json:"max_consecutive_workdays"`
	Sequences      []SequenceRule       `yaml:"sequential_shifts" json:"sequential_shifts"`
	Balance        []BalanceRule        `yaml:"assignment_balance" json:"assignment_balance"`
	Requests       []ShiftRequestRule   `yaml:"shift_requests" json:"shift_requests"`
	PairAvoid      []PairAvoidRule      `yaml:"pair_same_shift_avoidance" json:"pair_same_shift_avoidance"`
	Workdays       []WorkdaysRule       `yaml:"total_workdays" json:"total_workdays"`
	WeekendOff     []WeekendOffRule     `yaml:"weekend_holiday_off" json:"weekend_holiday_off"`
	StatusLeave    []StatusLeaveRule    `yaml:"status_full_leave" json:"status_full_leave"`
}

// IsHard 检查判别值是否为硬约束
func (t ConstraintType) IsHard() bool { return t == TypeHard }

// IsSoft 检查判别值是否为软约束
func (t ConstraintType) IsSoft() bool { return t == TypeSoft }
