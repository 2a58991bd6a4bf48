package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kaigoban/kaigoban/pkg/model"
)

// RosterRepository 员工名册仓储
type RosterRepository struct {
	db DB
}

// NewRosterRepository 创建员工名册仓储
func NewRosterRepository(db DB) *RosterRepository {
	return &RosterRepository{db: db}
}

// Save 保存员工记录。已存在的员工ID执行更新。
func (r *RosterRepository) Save(ctx context.Context, emp model.Employee) error {
	query := `
		INSERT INTO employees (employee_id, name, floor, employment_type, status, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (employee_id) DO UPDATE SET
			name = EXCLUDED.name,
			floor = EXCLUDED.floor,
			employment_type = EXCLUDED.employment_type,
			status = EXCLUDED.status,
			updated_at = EXCLUDED.updated_at
	`
	_, err := r.db.ExecContext(ctx, query,
		emp.ID, emp.Name, emp.Floor, emp.EmploymentType, emp.Status, time.Now())
	if err != nil {
		return fmt.Errorf("保存员工失败: %w", err)
	}
	return nil
}

// GetByID 根据员工ID获取员工
func (r *RosterRepository) GetByID(ctx context.Context, id string) (*model.Employee, error) {
	query := `
		SELECT employee_id, name, floor, employment_type, COALESCE(status, '')
		FROM employees
		WHERE employee_id = $1
	`
	var emp model.Employee
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&emp.ID, &emp.Name, &emp.Floor, &emp.EmploymentType, &emp.Status)
	if err != nil {
		return nil, fmt.Errorf("查询员工 %s 失败: %w", id, err)
	}
	return &emp, nil
}

// ListAll 获取全部员工（按员工ID排序）
func (r *RosterRepository) ListAll(ctx context.Context) ([]model.Employee, error) {
	query := `
		SELECT employee_id, name, floor, employment_type, COALESCE(status, '')
		FROM employees
		ORDER BY employee_id
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("查询员工名册失败: %w", err)
	}
	defer rows.Close()

	var out []model.Employee
	for rows.Next() {
		var emp model.Employee
		if err := rows.Scan(&emp.ID, &emp.Name, &emp.Floor, &emp.EmploymentType, &emp.Status); err != nil {
			return nil, fmt.Errorf("读取员工记录失败: %w", err)
		}
		out = append(out, emp)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("遍历员工名册失败: %w", err)
	}
	return out, nil
}

// Delete 删除员工
func (r *RosterRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM employees WHERE employee_id = $1`, id)
	if err != nil {
		return fmt.Errorf("删除员工 %s 失败: %w", id, err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("员工 %s 不存在", id)
	}
	return nil
}

// SaveRunRecord 记录一次排班运行的元数据（不持久化班表本身）
func (r *RosterRepository) SaveRunRecord(ctx context.Context, buildID uuid.UUID, employees, days, cost int) error {
	query := `
		INSERT INTO schedule_runs (build_id, employees, days, cost, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.ExecContext(ctx, query, buildID, employees, days, cost, time.Now())
	if err != nil {
		return fmt.Errorf("记录排班运行失败: %w", err)
	}
	return nil
}
