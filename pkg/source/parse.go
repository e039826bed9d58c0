package source

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/hashicorp/hcl/v2/hclparse"
	yamlv3 "go.yaml.in/yaml/v3"

	"github.com/lwmacct/251207-go-pkg-cfgmerge/internal/ctyconv"
)

// Parser 将原始内容解析为配置值，name 仅用于错误信息。
type Parser func(content []byte, name string) (any, error)

// parsers 按扩展名注册的输入格式。
//
// 动态模块（如 .py）需要执行任意代码，不提供对应解析器。
var parsers = map[string]Parser{
	"json": parseJSON,
	"yaml": parseYAML,
	"yml":  parseYAML,
	"env":  parseEnv,
	"hcl":  parseHCL,
}

// Formats 返回支持的输入格式扩展名（已排序）。
func Formats() []string {
	return slices.Sorted(maps.Keys(parsers))
}

// Parse 按格式解析内容并校验顶层为映射。
func Parse(format string, content []byte, name string) (map[string]any, error) {
	format = strings.ToLower(format)
	parse, ok := parsers[format]
	if !ok {
		return nil, fmt.Errorf("%w: %q for %s", ErrUnsupportedFormat, format, name)
	}

	if format != "env" && len(bytes.TrimSpace(content)) == 0 {
		return nil, fmt.Errorf("%w: %s is empty", ErrTopLevelType, name)
	}

	raw, err := parse(content, name)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}

	m, ok := normalizeMapKeys(raw).(map[string]any)
	if !ok {
		return nil, fmt.Errorf("%w: %s (got %T)", ErrTopLevelType, name, raw)
	}

	return m, nil
}

func parseJSON(content []byte, _ string) (any, error) {
	var raw any
	if err := json.Unmarshal(content, &raw); err != nil {
		return nil, err
	}

	return raw, nil
}

func parseYAML(content []byte, _ string) (any, error) {
	var raw any
	if err := yamlv3.Unmarshal(content, &raw); err != nil {
		return nil, err
	}

	return raw, nil
}

// parseEnv 解析 KEY=value 行。
//
// 行首空白被忽略，"#" 开头的行为注释，按第一个 "=" 拆分，值不做去引号处理。
func parseEnv(content []byte, _ string) (any, error) {
	out := make(map[string]any)
	for line := range strings.SplitSeq(string(content), "\n") {
		line = strings.TrimLeft(strings.TrimSuffix(line, "\r"), " \t\v\f")
		if strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			continue
		}
		out[key] = value
	}

	return out, nil
}

// parseHCL 解析 HCL 顶层属性，表达式在无变量的上下文中求值。
func parseHCL(content []byte, name string) (any, error) {
	file, diags := hclparse.NewParser().ParseHCL(content, name)
	if diags.HasErrors() {
		return nil, diags
	}

	attrs, diags := file.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, diags
	}

	out := make(map[string]any, len(attrs))
	for key, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			return nil, diags
		}
		native, err := ctyconv.ToNative(val)
		if err != nil {
			return nil, fmt.Errorf("attribute %q: %w", key, err)
		}
		out[key] = native
	}

	return out, nil
}

// normalizeMapKeys 将 YAML 产生的 map[any]any 统一为 map[string]any。
func normalizeMapKeys(val any) any {
	switch typed := val.(type) {
	case map[string]any:
		for key, value := range typed {
			typed[key] = normalizeMapKeys(value)
		}

		return typed
	case map[any]any:
		out := make(map[string]any, len(typed))
		for key, value := range typed {
			out[fmt.Sprintf("%v", key)] = normalizeMapKeys(value)
		}

		return out
	case []any:
		for i := range typed {
			typed[i] = normalizeMapKeys(typed[i])
		}

		return typed
	default:
		return val
	}
}
