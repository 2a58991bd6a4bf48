// Package ruleset 提供规则集的YAML读入
package ruleset

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/kaigoban/kaigoban/pkg/scheduler/rule"
)

// LoadYAML 从YAML文件读入规则集。
// 未知字段被忽略，缺失的可选字段取零值（构建器按文档默认值处理）。
func LoadYAML(path string) (*rule.Set, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("打开规则集文件失败: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Parse 从reader解析规则集
func Parse(r io.Reader) (*rule.Set, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("读取规则集失败: %w", err)
	}

	var set rule.Set
	if err := yaml.Unmarshal(data, &set); err != nil {
		return nil, fmt.Errorf("解析规则集YAML失败: %w", err)
	}
	return &set, nil
}
