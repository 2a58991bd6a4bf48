package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/kaigoban/kaigoban/pkg/scheduler/rule"
)

// RuleSetRepository 规则集仓储。规则集整体以 JSON 存储。
type RuleSetRepository struct {
	db DB
}

// NewRuleSetRepository 创建规则集仓储
func NewRuleSetRepository(db DB) *RuleSetRepository {
	return &RuleSetRepository{db: db}
}

// Save 保存命名规则集并返回其ID
func (r *RuleSetRepository) Save(ctx context.Context, name string, set rule.Set) (uuid.UUID, error) {
	payload, err := json.Marshal(set)
	if err != nil {
		return uuid.Nil, fmt.Errorf("序列化规则集失败: %w", err)
	}

	id := uuid.New()
	query := `
		INSERT INTO rule_sets (id, name, rules, created_at)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := r.db.ExecContext(ctx, query, id, name, payload, time.Now()); err != nil {
		return uuid.Nil, fmt.Errorf("保存规则集失败: %w", err)
	}
	return id, nil
}

// GetByName 按名称获取最新保存的规则集
func (r *RuleSetRepository) GetByName(ctx context.Context, name string) (*rule.Set, error) {
	query := `
		SELECT rules FROM rule_sets
		WHERE name = $1
		ORDER BY created_at DESC
		LIMIT 1
	`
	var payload []byte
	if err := r.db.QueryRowContext(ctx, query, name).Scan(&payload); err != nil {
		return nil, fmt.Errorf("查询规则集 %q 失败: %w", name, err)
	}

	var set rule.Set
	if err := json.Unmarshal(payload, &set); err != nil {
		return nil, fmt.Errorf("反序列化规则集 %q 失败: %w", name, err)
	}
	return &set, nil
}
