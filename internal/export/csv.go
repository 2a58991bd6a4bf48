// Package export 将班表输出为CSV报表
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/kaigoban/kaigoban/pkg/model"
	"github.com/kaigoban/kaigoban/pkg/schedule"
)

// 曜日表示（周一起）
var weekdayJP = []string{"月", "火", "水", "木", "金", "土", "日"}

// aggregationOrder 个人集计列的顺序（对齐既有班表格式）
var aggregationOrder = []model.ShiftCode{
	model.ShiftOff, "祝日", model.ShiftDay, model.ShiftEarly, model.ShiftNight, model.ShiftPostNight,
}

// WriteFile 输出班表CSV文件。文件名为 <prefix>_<起始日YYYYMMDD>_v01.csv。
func WriteFile(t *schedule.Table, dir, prefix string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("创建输出目录失败: %w", err)
	}
	start := t.Horizon().At(0).Date
	path := filepath.Join(dir, fmt.Sprintf("%s_%s_v01.csv", prefix, start.Format("20060102")))

	f, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("创建班表文件失败: %w", err)
	}
	defer f.Close()

	if err := Write(f, t); err != nil {
		return "", err
	}
	return path, nil
}

// Write 将班表写入writer。
// 布局：表头 → 曜日/祝日行 → 员工行（含个人集计列）→ 各稼动班次的日别合计行。
// 开头写入BOM，便于表格软件直接打开。
func Write(w io.Writer, t *schedule.Table) error {
	if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
		return fmt.Errorf("写入BOM失败: %w", err)
	}

	cw := csv.NewWriter(w)
	days := t.Horizon().Days()

	// 表头
	header := []string{"職員名", "担当フロア"}
	for _, d := range days {
		header = append(header, d.String())
	}
	for _, code := range aggregationOrder {
		header = append(header, "集計:"+code)
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("写入表头失败: %w", err)
	}

	// 曜日/祝日行
	weekdayRow := []string{"", ""}
	for _, d := range days {
		// time.Weekday 以周日为 0；表示顺序以周一起
		label := weekdayJP[(int(d.Weekday())+6)%7]
		if d.IsPublicHoliday {
			label += "(祝)"
		}
		weekdayRow = append(weekdayRow, label)
	}
	for range aggregationOrder {
		weekdayRow = append(weekdayRow, "")
	}
	if err := cw.Write(weekdayRow); err != nil {
		return fmt.Errorf("写入曜日行失败: %w", err)
	}

	// 员工行
	roster := t.Roster()
	for e := 0; e < roster.Len(); e++ {
		emp := roster.At(e)
		row := []string{emp.Name, emp.Floor}
		for d := range days {
			row = append(row, t.At(e, d))
		}
		for _, code := range aggregationOrder {
			if code == "祝日" {
				// 祝日集计另行统计，班表中恒为 0
				row = append(row, "0")
				continue
			}
			row = append(row, strconv.Itoa(t.CountForEmployee(e, code)))
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("写入员工 %s 的班表行失败: %w", emp.ID, err)
		}
	}

	// 日别合计行（各稼动班次）
	for _, code := range t.Alphabet().WorkingCodes() {
		row := []string{code + "合計", ""}
		for d := range days {
			row = append(row, strconv.Itoa(t.CountForDay(d, code)))
		}
		for range aggregationOrder {
			row = append(row, "")
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("写入 %s 合计行失败: %w", code, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("输出班表CSV失败: %w", err)
	}
	return nil
}
