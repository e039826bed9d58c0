package templexp

import (
	"encoding/json"
	"fmt"
	"maps"
	"reflect"
	"slices"
	"strconv"
	"strings"
)

// ═══════════════════════════════════════════════════════════════════════════
// 作用域链
// ═══════════════════════════════════════════════════════════════════════════

// Scope 模板变量作用域，查找时由近及远。
//
// 作用域直接引用映射本身，已替换的值对后续查找可见。
type Scope struct {
	vars   map[string]any
	parent *Scope
}

// NewScope 以 vars 为最内层、parent 为外层创建作用域。
func NewScope(vars map[string]any, parent *Scope) *Scope {
	return &Scope{vars: vars, parent: parent}
}

// Lookup 按精确 key 查找变量，不支持点号路径。
func (s *Scope) Lookup(name string) (any, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if v, ok := cur.vars[name]; ok {
			return v, true
		}
	}

	return nil, false
}

// ═══════════════════════════════════════════════════════════════════════════
// 模板替换
// ═══════════════════════════════════════════════════════════════════════════

// Resolve 原地替换 mapping 中字符串里的 ${name}，并返回 mapping。
//
// 规则：
//   - 字符串：按当前作用域（mapping → parent）替换，缺失的变量替换为空字符串
//   - 映射：递归处理，当前作用域作为其父作用域
//   - 序列：仅替换字符串元素，不引入新的作用域层级
//   - 其他标量保持不变
//
// key 按字典序处理，替换结果不会被再次扫描。
func Resolve(mapping map[string]any, parent *Scope) map[string]any {
	scope := NewScope(mapping, parent)

	for _, k := range slices.Sorted(maps.Keys(mapping)) {
		switch v := mapping[k].(type) {
		case string:
			mapping[k] = ExpandString(v, scope)
		case map[string]any:
			Resolve(v, scope)
		case []any:
			for i, elem := range v {
				if s, ok := elem.(string); ok {
					v[i] = ExpandString(s, scope)
				}
			}
		}
	}

	return mapping
}

// ExpandString 对单个字符串执行一次从左到右的 ${name} 替换。
//
// name 为 "${" 之后到第一个 "}" 之前的全部字符；"${}" 与未闭合的 "${" 原样保留。
func ExpandString(text string, scope *Scope) string {
	if !strings.Contains(text, "${") {
		return text
	}

	var buf strings.Builder
	buf.Grow(len(text))

	for i := 0; i < len(text); {
		if !strings.HasPrefix(text[i:], "${") {
			buf.WriteByte(text[i])
			i++
			continue
		}

		end := strings.IndexByte(text[i+2:], '}')
		if end <= 0 {
			buf.WriteString("${")
			i += 2
			continue
		}

		name := text[i+2 : i+2+end]
		if v, ok := scope.Lookup(name); ok {
			buf.WriteString(Stringify(v))
		}
		i += end + 3
	}

	return buf.String()
}

// Stringify 将配置值转换为替换文本。
//
//   - 字符串原样返回，nil 为 "null"
//   - 整数十进制，浮点数最短表示
//   - 映射与序列为紧凑 JSON
func Stringify(v any) string {
	switch typed := v.(type) {
	case nil:
		return "null"
	case string:
		return typed
	case bool:
		return strconv.FormatBool(typed)
	case fmt.Stringer:
		return typed.String()
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 32)
	case reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64)
	case reflect.Map, reflect.Slice, reflect.Array:
		out, err := json.Marshal(v)
		if err == nil {
			return string(out)
		}
	}

	return fmt.Sprintf("%v", v)
}
