package model

import (
	"fmt"
	"time"
)

// DateLayout 日期字符串格式
const DateLayout = "2006-01-02"

// Day 排期中的一天
type Day struct {
	Date            time.Time
	IsPublicHoliday bool
}

// Weekday 返回星期几
func (d Day) Weekday() time.Weekday { return d.Date.Weekday() }

// IsWeekend 检查是否为周六或周日
func (d Day) IsWeekend() bool {
	wd := d.Date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// String 返回 YYYY-MM-DD 形式
func (d Day) String() string { return d.Date.Format(DateLayout) }

// Horizon 排班周期：连续有序的日历日期
type Horizon struct {
	days  []Day
	index map[string]int
}

// NewHorizon 根据起止日期（含两端）和节假日列表生成排班周期。
// 起始日期晚于结束日期时返回错误。
func NewHorizon(startStr, endStr string, holidays []time.Time) (*Horizon, error) {
	start, err := time.Parse(DateLayout, startStr)
	if err != nil {
		return nil, fmt.Errorf("起始日期格式无效 %q: %w", startStr, err)
	}
	end, err := time.Parse(DateLayout, endStr)
	if err != nil {
		return nil, fmt.Errorf("结束日期格式无效 %q: %w", endStr, err)
	}
	if start.After(end) {
		return nil, fmt.Errorf("起始日期 %s 晚于结束日期 %s", startStr, endStr)
	}

	holidaySet := make(map[string]bool, len(holidays))
	for _, h := range holidays {
		holidaySet[h.Format(DateLayout)] = true
	}

	h := &Horizon{index: make(map[string]int)}
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		key := d.Format(DateLayout)
		h.index[key] = len(h.days)
		h.days = append(h.days, Day{Date: d, IsPublicHoliday: holidaySet[key]})
	}
	return h, nil
}

// Len 返回总天数
func (h *Horizon) Len() int { return len(h.days) }

// At 返回第 i 天
func (h *Horizon) At(i int) Day { return h.days[i] }

// Days 返回全部日期（按时间顺序）
func (h *Horizon) Days() []Day {
	out := make([]Day, len(h.days))
	copy(out, h.days)
	return out
}

// Index 返回日期字符串（YYYY-MM-DD）对应的天序号
func (h *Horizon) Index(dateStr string) (int, bool) {
	i, ok := h.index[dateStr]
	return i, ok
}

// Contains 检查日期是否在周期内
func (h *Horizon) Contains(dateStr string) bool {
	_, ok := h.index[dateStr]
	return ok
}

// WeekendOrHolidayIndices 返回周末或节假日的天序号集合。
// 落在周末的节假日只计一次。
func (h *Horizon) WeekendOrHolidayIndices() []int {
	var out []int
	for i, d := range h.days {
		if d.IsWeekend() || d.IsPublicHoliday {
			out = append(out, i)
		}
	}
	return out
}
