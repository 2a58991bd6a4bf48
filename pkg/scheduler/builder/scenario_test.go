package builder_test

import (
	"testing"

	"github.com/kaigoban/kaigoban/pkg/model"
	"github.com/kaigoban/kaigoban/pkg/sat"
	"github.com/kaigoban/kaigoban/pkg/schedule"
	"github.com/kaigoban/kaigoban/pkg/scheduler/builder"
	"github.com/kaigoban/kaigoban/pkg/scheduler/rule"
)

// solveScenario 构建、求解并解码一个场景
func solveScenario(t *testing.T, alphabet *model.Alphabet, roster *model.Roster, horizon *model.Horizon, rules rule.Set) (*schedule.Table, *sat.Solution) {
	t.Helper()
	res, err := builder.Build(builder.Input{
		Alphabet: alphabet,
		Roster:   roster,
		Horizon:  horizon,
		Rules:    rules,
	})
	if err != nil {
		t.Fatalf("构建失败: %v", err)
	}
	sol, err := sat.Solve(res.Model)
	if err != nil {
		t.Fatalf("求解失败: %v", err)
	}
	if sol.Status != sat.StatusOptimal {
		t.Fatalf("场景应有可行解, got %s", sol.Status)
	}
	table, err := schedule.Decode(res, sol, roster, horizon, alphabet)
	if err != nil {
		t.Fatalf("解码失败: %v", err)
	}
	return table, sol
}

// 场景1：A 精确稼动2天 + パート最低公休1天
func TestScenario_ExactWorkdaysAndMinOff(t *testing.T) {
	table, _ := solveScenario(t, miniAlphabet(), miniRoster(), miniHorizon(t), rule.Set{
		Workdays: []rule.WorkdaysRule{
			{EmployeeID: "A", ConstraintType: rule.TypeExact, Days: 2},
		},
		MinDaysOff: []rule.MinDaysOffRule{
			{MinDays: 1, TargetEmploymentType: model.EmploymentPartTime, ConstraintType: rule.TypeHard},
		},
	})

	if got := table.WorkdaysForEmployee(0); got != 2 {
		t.Errorf("A 的稼动天数 = %d, want 2", got)
	}
	if got := table.CountForEmployee(0, model.ShiftOff); got != 1 {
		t.Errorf("A 的公休天数 = %d, want 1", got)
	}
	if got := table.CountForEmployee(1, model.ShiftOff); got < 1 {
		t.Errorf("B 的公休天数 = %d, want >= 1", got)
	}
}

// 场景2：夜勤次日必须公休（硬顺序规则）
func TestScenario_SequenceHard(t *testing.T) {
	table, _ := solveScenario(t, miniAlphabet(), miniRoster(), miniHorizon(t), rule.Set{
		Sequences: []rule.SequenceRule{
			{PreviousShiftName: model.ShiftNight, NextShiftName: model.ShiftOff, ConstraintType: rule.TypeHard},
		},
		Requests: []rule.ShiftRequestRule{
			{EmployeeID: "A", Date: "2025-04-14", RequestedShift: model.ShiftNight, ConstraintType: rule.TypeHard},
		},
	})

	if got, _ := table.Shift("A", "2025-04-14"); got != model.ShiftNight {
		t.Fatalf("A 4/14 应为夜勤, got %s", got)
	}
	if got, _ := table.Shift("A", "2025-04-15"); got != model.ShiftOff {
		t.Errorf("夜勤次日应为公休, got %s", got)
	}
}

// 场景3：软人员配置（目标1名日勤，不足重罚）——最优解每天恰好1名日勤
func TestScenario_StaffingSoft(t *testing.T) {
	table, sol := solveScenario(t, miniAlphabet(), miniRoster(), miniHorizon(t), rule.Set{
		Staffing: rule.Staffing{
			"1F": {
				model.ShiftDay: {Target: intp(1), ConstraintType: rule.TypeSoft,
					UnderPenaltyWeight: 10, OverPenaltyWeight: 1},
			},
		},
	})

	if sol.Cost != 0 {
		t.Errorf("目标函数值 = %d, want 0", sol.Cost)
	}
	for d := 0; d < table.Horizon().Len(); d++ {
		if got := table.CountForDay(d, model.ShiftDay); got != 1 {
			t.Errorf("第 %d 天的日勤人数 = %d, want 1", d, got)
		}
	}
}

// 场景4：硬均衡（公休次数差值为0）
func TestScenario_BalanceHard(t *testing.T) {
	// 两人同为常勤才能成组
	roster := model.NewRoster([]model.Employee{
		{ID: "A", Name: "職員A", Floor: "1F", EmploymentType: model.EmploymentFullTime},
		{ID: "B", Name: "職員B", Floor: "1F", EmploymentType: model.EmploymentFullTime},
	})
	table, _ := solveScenario(t, miniAlphabet(), roster, miniHorizon(t), rule.Set{
		Balance: []rule.BalanceRule{
			{TargetEmploymentType: model.EmploymentFullTime, TargetShiftName: model.ShiftOff,
				ConstraintType: rule.TypeHard, MaxDiffAllowed: intp(0)},
		},
	})

	offA := table.CountForEmployee(0, model.ShiftOff)
	offB := table.CountForEmployee(1, model.ShiftOff)
	if offA != offB {
		t.Errorf("公休次数应相等: A=%d B=%d", offA, offB)
	}
}

// 场景5：同日同班回避 + 两条矛盾的硬申请 ⇒ 不可行
func TestScenario_PairAvoidInfeasible(t *testing.T) {
	res, err := builder.Build(builder.Input{
		Alphabet: miniAlphabet(),
		Roster:   miniRoster(),
		Horizon:  miniHorizon(t),
		Rules: rule.Set{
			PairAvoid: []rule.PairAvoidRule{
				{EmployeePair: []string{"A", "B"}, AvoidShifts: []model.ShiftCode{model.ShiftNight},
					ConstraintType: rule.TypeHard},
			},
			Requests: []rule.ShiftRequestRule{
				{EmployeeID: "A", Date: "2025-04-14", RequestedShift: model.ShiftNight, ConstraintType: rule.TypeHard},
				{EmployeeID: "B", Date: "2025-04-14", RequestedShift: model.ShiftNight, ConstraintType: rule.TypeHard},
			},
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	sol, err := sat.Solve(res.Model)
	if err != nil {
		t.Fatal(err)
	}
	if sol.Status != sat.StatusInfeasible {
		t.Errorf("矛盾的硬约束应不可行, got %s", sol.Status)
	}
}

// 场景5'：同日同班回避在可行解中成立
func TestScenario_PairAvoidFeasible(t *testing.T) {
	table, _ := solveScenario(t, miniAlphabet(), miniRoster(), miniHorizon(t), rule.Set{
		PairAvoid: []rule.PairAvoidRule{
			{EmployeePair: []string{"A", "B"}, AvoidShifts: []model.ShiftCode{model.ShiftNight},
				ConstraintType: rule.TypeHard},
		},
		Staffing: rule.Staffing{
			"1F": {model.ShiftNight: {Target: intp(1), ConstraintType: rule.TypeHard}},
		},
	})

	for d := 0; d < table.Horizon().Len(); d++ {
		night := 0
		for e := 0; e < 2; e++ {
			if table.At(e, d) == model.ShiftNight {
				night++
			}
		}
		if night > 1 {
			t.Errorf("第 %d 天两人同为夜勤", d)
		}
	}
}

// 场景6：周末公休软规则（权重5）+ A 周六硬申请日勤 ⇒ 目标函数值 5
func TestScenario_WeekendSoftVsHardRequest(t *testing.T) {
	// 2025-04-11 周五、12 周六、13 周日
	h, err := model.NewHorizon("2025-04-11", "2025-04-13", nil)
	if err != nil {
		t.Fatal(err)
	}
	table, sol := solveScenario(t, miniAlphabet(), miniRoster(), h, rule.Set{
		WeekendOff: []rule.WeekendOffRule{
			{ConstraintType: rule.TypeSoft, PenaltyWeight: 5},
		},
		Requests: []rule.ShiftRequestRule{
			{EmployeeID: "A", Date: "2025-04-12", RequestedShift: model.ShiftDay, ConstraintType: rule.TypeHard},
		},
	})

	if got, _ := table.Shift("A", "2025-04-12"); got != model.ShiftDay {
		t.Fatalf("硬申请应胜出, got %s", got)
	}
	if sol.Cost != 5 {
		t.Errorf("目标函数值 = %d, want 5", sol.Cost)
	}
	if got, _ := table.Shift("B", "2025-04-12"); got != model.ShiftOff {
		t.Errorf("B 周六应公休, got %s", got)
	}
	if got, _ := table.Shift("B", "2025-04-13"); got != model.ShiftOff {
		t.Errorf("B 周日应公休, got %s", got)
	}
	if got, _ := table.Shift("A", "2025-04-13"); got != model.ShiftOff {
		t.Errorf("A 周日应公休, got %s", got)
	}
}

// 软权重单调性：提高权重不会降低最优目标函数值
func TestScenario_SoftWeightMonotonicity(t *testing.T) {
	h, err := model.NewHorizon("2025-04-11", "2025-04-13", nil)
	if err != nil {
		t.Fatal(err)
	}
	costAt := func(weight int) int {
		_, sol := solveScenario(t, miniAlphabet(), miniRoster(), h, rule.Set{
			WeekendOff: []rule.WeekendOffRule{
				{ConstraintType: rule.TypeSoft, PenaltyWeight: weight},
			},
			Requests: []rule.ShiftRequestRule{
				{EmployeeID: "A", Date: "2025-04-12", RequestedShift: model.ShiftDay, ConstraintType: rule.TypeHard},
			},
		})
		return sol.Cost
	}

	low, high := costAt(5), costAt(10)
	if high < low {
		t.Errorf("权重提高后最优值不应下降: w5=%d w10=%d", low, high)
	}
	if low != 5 || high != 10 {
		t.Errorf("违反数固定为1时目标函数值应等于权重: w5=%d w10=%d", low, high)
	}
}

// 硬约束退化为大权重软约束：可行实例上取得同样的违反情况
func TestScenario_HardToSoftDegeneration(t *testing.T) {
	hard, _ := solveScenario(t, miniAlphabet(), miniRoster(), miniHorizon(t), rule.Set{
		Staffing: rule.Staffing{
			"1F": {model.ShiftDay: {Target: intp(1), ConstraintType: rule.TypeHard}},
		},
	})
	soft, sol := solveScenario(t, miniAlphabet(), miniRoster(), miniHorizon(t), rule.Set{
		Staffing: rule.Staffing{
			"1F": {model.ShiftDay: {Target: intp(1), ConstraintType: rule.TypeSoft,
				UnderPenaltyWeight: 100000, OverPenaltyWeight: 100000}},
		},
	})

	if sol.Cost != 0 {
		t.Errorf("大权重软约束在可行实例上应零违反, cost=%d", sol.Cost)
	}
	for d := 0; d < 3; d++ {
		if hard.CountForDay(d, model.ShiftDay) != soft.CountForDay(d, model.ShiftDay) {
			t.Errorf("第 %d 天日勤人数在硬/软两种编码下应一致", d)
		}
	}
}

// 滑动窗口按窗口计罚：3天连班在 max_days=1 下计2个超限窗口
func TestScenario_ConsecutivePerWindowPenalty(t *testing.T) {
	h, err := model.NewHorizon("2025-04-14", "2025-04-17", nil)
	if err != nil {
		t.Fatal(err)
	}
	// 名册只有 A，用硬申请制造 3 连班
	roster := model.NewRoster([]model.Employee{
		{ID: "A", Name: "職員A", Floor: "1F", EmploymentType: model.EmploymentFullTime},
	})
	_, sol := solveScenario(t, miniAlphabet(), roster, h, rule.Set{
		Requests: []rule.ShiftRequestRule{
			{EmployeeID: "A", Date: "2025-04-14", RequestedShift: model.ShiftDay, ConstraintType: rule.TypeHard},
			{EmployeeID: "A", Date: "2025-04-15", RequestedShift: model.ShiftDay, ConstraintType: rule.TypeHard},
			{EmployeeID: "A", Date: "2025-04-16", RequestedShift: model.ShiftDay, ConstraintType: rule.TypeHard},
			{EmployeeID: "A", Date: "2025-04-17", RequestedShift: model.ShiftOff, ConstraintType: rule.TypeHard},
		},
		MaxConsecutive: []rule.MaxConsecutiveRule{
			{MaxDays: 1, ConstraintType: rule.TypeSoft, OverPenaltyWeight: 1},
		},
	})

	// 窗口 (0,1) 和 (1,2) 各超限一次；(2,3) 含公休不超限
	if sol.Cost != 2 {
		t.Errorf("目标函数值 = %d, want 2（按窗口计罚）", sol.Cost)
	}
}

// 硬最大连续稼动：任何可行解都不出现超限连班
func TestScenario_MaxConsecutiveHard(t *testing.T) {
	h, err := model.NewHorizon("2025-04-14", "2025-04-18", nil)
	if err != nil {
		t.Fatal(err)
	}
	table, _ := solveScenario(t, miniAlphabet(), miniRoster(), h, rule.Set{
		MaxConsecutive: []rule.MaxConsecutiveRule{
			{MaxDays: 2, ConstraintType: rule.TypeHard},
		},
		// 逼迫每天都有人稼动，避免全员公休的平凡解
		Staffing: rule.Staffing{
			"1F": {model.ShiftDay: {Target: intp(1), ConstraintType: rule.TypeHard}},
		},
	})

	for e := 0; e < 2; e++ {
		if got := table.MaxConsecutiveWorkdays(e); got > 2 {
			t.Errorf("员工 %d 连续稼动 %d 天，超过硬上限 2", e, got)
		}
	}
}

// 硬最大连续稼动与硬申请矛盾 ⇒ 不可行
func TestScenario_MaxConsecutiveHardInfeasible(t *testing.T) {
	res, err := builder.Build(builder.Input{
		Alphabet: miniAlphabet(),
		Roster:   miniRoster(),
		Horizon:  miniHorizon(t),
		Rules: rule.Set{
			MaxConsecutive: []rule.MaxConsecutiveRule{
				{MaxDays: 1, ConstraintType: rule.TypeHard},
			},
			Requests: []rule.ShiftRequestRule{
				{EmployeeID: "A", Date: "2025-04-14", RequestedShift: model.ShiftDay, ConstraintType: rule.TypeHard},
				{EmployeeID: "A", Date: "2025-04-15", RequestedShift: model.ShiftDay, ConstraintType: rule.TypeHard},
			},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	sol, err := sat.Solve(res.Model)
	if err != nil {
		t.Fatal(err)
	}
	if sol.Status != sat.StatusInfeasible {
		t.Errorf("两天连班违反硬上限 1，应不可行, got %s", sol.Status)
	}
}

// 硬周末公休：目标员工在全部周末日公休
func TestScenario_WeekendHard(t *testing.T) {
	h, err := model.NewHorizon("2025-04-11", "2025-04-13", nil)
	if err != nil {
		t.Fatal(err)
	}
	table, _ := solveScenario(t, miniAlphabet(), miniRoster(), h, rule.Set{
		WeekendOff: []rule.WeekendOffRule{
			{TargetEmployees: []string{"B"}, ConstraintType: rule.TypeHard},
		},
	})

	for _, date := range []string{"2025-04-12", "2025-04-13"} {
		if got, _ := table.Shift("B", date); got != model.ShiftOff {
			t.Errorf("B %s 应为公休, got %s", date, got)
		}
	}
}

// 同一格上的硬申请与硬周末公休矛盾：两条约束都发出，由求解器报告不可行
func TestScenario_WeekendHardVsHardRequestConflict(t *testing.T) {
	h, err := model.NewHorizon("2025-04-11", "2025-04-13", nil)
	if err != nil {
		t.Fatal(err)
	}
	res, err := builder.Build(builder.Input{
		Alphabet: miniAlphabet(),
		Roster:   miniRoster(),
		Horizon:  h,
		Rules: rule.Set{
			WeekendOff: []rule.WeekendOffRule{
				{ConstraintType: rule.TypeHard},
			},
			Requests: []rule.ShiftRequestRule{
				{EmployeeID: "A", Date: "2025-04-12", RequestedShift: model.ShiftDay, ConstraintType: rule.TypeHard},
			},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	sol, err := sat.Solve(res.Model)
	if err != nil {
		t.Fatal(err)
	}
	if sol.Status != sat.StatusInfeasible {
		t.Errorf("同一格上矛盾的硬约束应不可行, got %s", sol.Status)
	}
}

// 状态休假：育休员工整个周期固定公休
func TestScenario_StatusLeave(t *testing.T) {
	roster := model.NewRoster([]model.Employee{
		{ID: "A", Name: "職員A", Floor: "1F", EmploymentType: model.EmploymentFullTime},
		{ID: "B", Name: "職員B", Floor: "1F", EmploymentType: model.EmploymentFullTime, Status: model.StatusMaternityLeave},
	})
	table, _ := solveScenario(t, miniAlphabet(), roster, miniHorizon(t), rule.Set{
		StatusLeave: []rule.StatusLeaveRule{
			{StatusValues: []string{model.StatusMaternityLeave, model.StatusSickLeave}},
		},
	})

	for d := 0; d < table.Horizon().Len(); d++ {
		if got := table.At(1, d); got != model.ShiftOff {
			t.Errorf("育休员工第 %d 天应为公休, got %s", d, got)
		}
	}
}

// 总稼动天数的 min、max、soft_exact 三种判别值叠加
func TestScenario_WorkdaysVariants(t *testing.T) {
	table, sol := solveScenario(t, miniAlphabet(), miniRoster(), miniHorizon(t), rule.Set{
		Workdays: []rule.WorkdaysRule{
			{EmployeeID: "A", ConstraintType: rule.TypeMin, Days: 1},
			{EmployeeID: "A", ConstraintType: rule.TypeMax, Days: 2},
			{EmployeeID: "B", ConstraintType: rule.TypeSoftExact, Days: 3, PenaltyWeight: 1},
		},
	})

	wa := table.WorkdaysForEmployee(0)
	if wa < 1 || wa > 2 {
		t.Errorf("A 稼动天数 = %d, want ∈ [1,2]", wa)
	}
	// B 全勤即可零惩罚
	if got := table.WorkdaysForEmployee(1); got != 3 {
		t.Errorf("B 稼动天数 = %d, want 3", got)
	}
	if sol.Cost != 0 {
		t.Errorf("目标函数值 = %d, want 0", sol.Cost)
	}
}
