package roster

import (
	"strings"
	"testing"

	"github.com/kaigoban/kaigoban/pkg/model"
)

func TestParse(t *testing.T) {
	csv := `職員ID,職員名,担当フロア,常勤/パート,状態
E001,田中,1F,常勤,
E002,佐藤,2F,パート,育休
`
	r, err := Parse(strings.NewReader(csv))
	if err != nil {
		t.Fatal(err)
	}

	if r.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", r.Len())
	}
	emp := r.At(0)
	if emp.ID != "E001" || emp.Name != "田中" || emp.Floor != "1F" || emp.EmploymentType != model.EmploymentFullTime {
		t.Errorf("第一条记录解析错误: %+v", emp)
	}
	if got := r.At(1).Status; got != model.StatusMaternityLeave {
		t.Errorf("状态列 = %q, want 育休", got)
	}
}

func TestParse_NoStatusColumn(t *testing.T) {
	csv := `職員ID,職員名,担当フロア,常勤/パート
E001,田中,1F,常勤
`
	r, err := Parse(strings.NewReader(csv))
	if err != nil {
		t.Fatal(err)
	}
	if r.At(0).Status != "" {
		t.Errorf("无状态列时状态应为空, got %q", r.At(0).Status)
	}
}

func TestParse_BOMHeader(t *testing.T) {
	csv := "\uFEFF職員ID,職員名,担当フロア,常勤/パート\nE001,田中,1F,常勤\n"
	r, err := Parse(strings.NewReader(csv))
	if err != nil {
		t.Fatalf("带BOM的表头应能解析: %v", err)
	}
	if r.Len() != 1 {
		t.Errorf("Len() = %d, want 1", r.Len())
	}
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		csv  string
	}{
		{"缺少必需列", "職員ID,職員名\nE001,田中\n"},
		{"名册为空", "職員ID,職員名,担当フロア,常勤/パート\n"},
		{"缺少職員ID", "職員ID,職員名,担当フロア,常勤/パート\n,田中,1F,常勤\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Parse(strings.NewReader(tt.csv)); err == nil {
				t.Error("应返回错误")
			}
		})
	}
}
