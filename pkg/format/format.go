package format

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/davecgh/go-spew/spew"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
	yamlv3 "go.yaml.in/yaml/v3"

	"github.com/lwmacct/251207-go-pkg-cfgmerge/internal/ctyconv"
	"github.com/lwmacct/251207-go-pkg-cfgmerge/pkg/templexp"
)

// Default 默认输出格式。
const Default = "dump"

var (
	// ErrUnknownOutputFormat 请求的输出格式未注册。
	ErrUnknownOutputFormat = errors.New("unknown output format")
	// ErrUnrepresentable 配置无法用目标格式表示。
	ErrUnrepresentable = errors.New("value not representable in output format")
)

// Writer 将配置映射序列化为文本。
type Writer func(data map[string]any) ([]byte, error)

var writers = map[string]Writer{
	"dump": writeDump,
	"json": writeJSON,
	"yaml": writeYAML,
	"env":  writeEnv,
	"hcl":  writeHCL,
}

// Names 返回全部输出格式名（已排序）。
func Names() []string {
	return slices.Sorted(maps.Keys(writers))
}

// Lookup 按名称查找输出格式。
func Lookup(name string) (Writer, error) {
	w, ok := writers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (available: %s)", ErrUnknownOutputFormat, name, strings.Join(Names(), ", "))
	}

	return w, nil
}

// Serialize 按格式名序列化配置映射。
func Serialize(data map[string]any, name string) ([]byte, error) {
	w, err := Lookup(name)
	if err != nil {
		return nil, err
	}

	return w(data)
}

var dumpConfig = spew.ConfigState{
	Indent:                  "  ",
	SortKeys:                true,
	DisablePointerAddresses: true,
	DisableCapacities:       true,
}

func writeDump(data map[string]any) ([]byte, error) {
	return []byte(dumpConfig.Sdump(data)), nil
}

func writeJSON(data map[string]any) ([]byte, error) {
	out, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnrepresentable, err)
	}

	return append(out, '\n'), nil
}

func writeYAML(data map[string]any) ([]byte, error) {
	var buf bytes.Buffer
	enc := yamlv3.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(data); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrUnrepresentable, err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// writeEnv 每个顶层 key 输出一行，嵌套值输出为紧凑 JSON。
func writeEnv(data map[string]any) ([]byte, error) {
	var buf bytes.Buffer
	for _, key := range slices.Sorted(maps.Keys(data)) {
		buf.WriteString(key)
		buf.WriteByte('=')
		buf.WriteString(templexp.Stringify(data[key]))
		buf.WriteByte('\n')
	}

	return buf.Bytes(), nil
}

func writeHCL(data map[string]any) ([]byte, error) {
	f := hclwrite.NewEmptyFile()
	body := f.Body()
	for _, key := range slices.Sorted(maps.Keys(data)) {
		if !hclsyntax.ValidIdentifier(key) {
			return nil, fmt.Errorf("%w: %q is not a valid HCL attribute name", ErrUnrepresentable, key)
		}
		val, err := ctyconv.FromNative(data[key])
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrUnrepresentable, key, err)
		}
		body.SetAttributeValue(key, val)
	}

	return f.Bytes(), nil
}
