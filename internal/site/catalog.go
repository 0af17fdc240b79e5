// Package site 构建车库目录的静态页面
//
// 目录数据是一组车辆记录 {id, name, color, image}，既用于生成静态 HTML，
// 也被运行时的车库场景读取。支持 JSON（数组）和 YAML（列表）两种格式。
package site

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Car 目录中的一辆车
type Car struct {
	ID    string `json:"id" yaml:"id"`
	Name  string `json:"name" yaml:"name"`
	Color string `json:"color" yaml:"color"`
	Image string `json:"image" yaml:"image"`
}

// Catalog 车辆目录，保持文件中的顺序
type Catalog struct {
	Cars []Car
}

// Find 按 ID 查找车辆
func (c *Catalog) Find(id string) (Car, bool) {
	for _, car := range c.Cars {
		if car.ID == id {
			return car, true
		}
	}
	return Car{}, false
}

// Len 返回车辆数量
func (c *Catalog) Len() int {
	return len(c.Cars)
}

// LoadCatalog 从文件加载目录，格式由扩展名决定（.json / .yaml / .yml）
//
// 参数:
//   - path: 目录文件路径（如 "data/cars.json"）
//
// 返回:
//   - *Catalog: 验证后的目录
//   - error: 读取、解析或验证失败时返回错误
func LoadCatalog(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog %s: %w", path, err)
	}
	return ParseCatalog(data, filepath.Ext(path))
}

// ParseCatalog 解析目录数据
//
// 参数:
//   - data: 文件内容
//   - ext: 扩展名，决定解析格式；为空时按 JSON 处理
func ParseCatalog(data []byte, ext string) (*Catalog, error) {
	var cars []Car

	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cars); err != nil {
			return nil, fmt.Errorf("failed to parse catalog YAML: %w", err)
		}
	case ".json", "":
		if err := json.Unmarshal(data, &cars); err != nil {
			return nil, fmt.Errorf("failed to parse catalog JSON: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported catalog format: %s", ext)
	}

	catalog := &Catalog{Cars: cars}
	if err := catalog.Validate(); err != nil {
		return nil, err
	}
	return catalog, nil
}

// Validate 检查 ID 非空、唯一且可以安全地用作文件名
func (c *Catalog) Validate() error {
	seen := make(map[string]bool, len(c.Cars))
	for i, car := range c.Cars {
		if car.ID == "" {
			return fmt.Errorf("catalog entry %d has no id", i)
		}
		if strings.ContainsAny(car.ID, `/\`) || strings.Contains(car.ID, "..") {
			return fmt.Errorf("catalog id %q is not a valid page name", car.ID)
		}
		if seen[car.ID] {
			return fmt.Errorf("duplicate catalog id %q", car.ID)
		}
		seen[car.ID] = true
	}
	return nil
}
