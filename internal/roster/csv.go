// Package roster 提供员工名册的CSV读入
package roster

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/kaigoban/kaigoban/pkg/model"
)

// CSV 必需列
const (
	colID             = "職員ID"
	colName           = "職員名"
	colFloor          = "担当フロア"
	colEmploymentType = "常勤/パート"
	colStatus         = "状態" // 可选列
)

// LoadCSV 从CSV文件读入员工名册。
// 缺少必需列时返回错误；状态列可选。
func LoadCSV(path string) (*model.Roster, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("打开员工名册文件失败: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse 从reader解析员工名册
func Parse(r io.Reader) (*model.Roster, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("读取CSV表头失败: %w", err)
	}
	// 去掉Excel导出常见的BOM
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], "\uFEFF")
	}

	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.TrimSpace(h)] = i
	}
	var missing []string
	for _, required := range []string{colID, colName, colFloor, colEmploymentType} {
		if _, ok := cols[required]; !ok {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("员工名册缺少必需列: %s", strings.Join(missing, ", "))
	}

	var employees []model.Employee
	line := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("第 %d 行解析失败: %w", line, err)
		}

		emp := model.Employee{
			ID:             strings.TrimSpace(record[cols[colID]]),
			Name:           strings.TrimSpace(record[cols[colName]]),
			Floor:          strings.TrimSpace(record[cols[colFloor]]),
			EmploymentType: strings.TrimSpace(record[cols[colEmploymentType]]),
		}
		if idx, ok := cols[colStatus]; ok && idx < len(record) {
			emp.Status = strings.TrimSpace(record[idx])
		}
		if emp.ID == "" {
			return nil, fmt.Errorf("第 %d 行缺少職員ID", line)
		}
		employees = append(employees, emp)
	}

	if len(employees) == 0 {
		return nil, fmt.Errorf("员工名册为空")
	}
	return model.NewRoster(employees), nil
}
