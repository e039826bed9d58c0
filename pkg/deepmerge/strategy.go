package deepmerge

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"slices"
	"strconv"
	"strings"
)

// ErrUnknownStrategy 表示无法识别的序列合并策略名称。
var ErrUnknownStrategy = errors.New("unknown combine strategy")

// Strategy 序列合并策略，决定同一 key 下两个序列如何合并。
type Strategy string

const (
	// Concat 追加：base 元素在前，update 元素在后，保留重复项（默认）。
	Concat Strategy = "concat"
	// Keep 保留 base，丢弃 update。
	Keep Strategy = "keep"
	// Replace 使用 update，丢弃 base。
	Replace Strategy = "replace"
	// And 交集，按 base 顺序去重。
	And Strategy = "and"
	// Or 并集，base 顺序在前，随后追加 update 中新出现的元素。
	Or Strategy = "or"
)

// Strategies 返回全部已知策略。
func Strategies() []Strategy {
	return []Strategy{Concat, Keep, Replace, And, Or}
}

// ParseStrategy 解析策略名称，未知名称返回 [ErrUnknownStrategy]。
func ParseStrategy(name string) (Strategy, error) {
	s := Strategy(strings.TrimSpace(name))
	if slices.Contains(Strategies(), s) {
		return s, nil
	}

	return "", fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

// Combine 按策略合并两个序列，返回新切片，不与入参共享底层数组。
func (s Strategy) Combine(base, update []any) []any {
	switch s {
	case Keep:
		return append([]any{}, base...)
	case Replace:
		return append([]any{}, update...)
	case And:
		inUpdate := newOrderedSet(update)
		out := newOrderedSet(nil)
		for _, v := range base {
			if inUpdate.has(v) {
				out.add(v)
			}
		}

		return out.items()
	case Or:
		out := newOrderedSet(base)
		for _, v := range update {
			out.add(v)
		}

		return out.items()
	default:
		out := make([]any, 0, len(base)+len(update))
		out = append(out, base...)

		return append(out, update...)
	}
}

// Metadata 单次合并调用使用的 key → 策略映射。
type Metadata map[string]Strategy

// strategyFor 返回 key 对应的策略，缺省为 [Concat]。
func (m Metadata) strategyFor(key string) Strategy {
	if s, ok := m[key]; ok {
		return s
	}

	return Concat
}

// ═══════════════════════════════════════════════════════════════════════════
// 有序集合
// ═══════════════════════════════════════════════════════════════════════════

// orderedSet 按插入顺序保存、去重的元素集合。
type orderedSet struct {
	seen  map[string]struct{}
	order []any
}

func newOrderedSet(values []any) *orderedSet {
	s := &orderedSet{seen: make(map[string]struct{}, len(values))}
	for _, v := range values {
		s.add(v)
	}

	return s
}

func (s *orderedSet) add(v any) {
	key := elementKey(v)
	if _, ok := s.seen[key]; ok {
		return
	}
	s.seen[key] = struct{}{}
	s.order = append(s.order, v)
}

func (s *orderedSet) has(v any) bool {
	_, ok := s.seen[elementKey(v)]
	return ok
}

func (s *orderedSet) items() []any {
	if s.order == nil {
		return []any{}
	}

	return s.order
}

// elementKey 生成元素的规范化标识。
//
// 数值统一按 float64 比较（1 与 1.0 相等）；序列与映射即使都为空也不相等。
func elementKey(v any) string {
	switch typed := v.(type) {
	case nil:
		return "z"
	case string:
		return "s" + strconv.Quote(typed)
	case bool:
		return "b" + strconv.FormatBool(typed)
	case []any:
		parts := make([]string, len(typed))
		for i, e := range typed {
			parts[i] = elementKey(e)
		}

		return "[" + strings.Join(parts, ",") + "]"
	case map[string]any:
		keys := make([]string, 0, len(typed))
		for k := range typed {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		parts := make([]string, len(keys))
		for i, k := range keys {
			parts[i] = strconv.Quote(k) + ":" + elementKey(typed[k])
		}

		return "{" + strings.Join(parts, ",") + "}"
	}

	if f, ok := toFloat(v); ok {
		return "n" + strconv.FormatFloat(f, 'g', -1, 64)
	}

	return fmt.Sprintf("%T:%v", v, v)
}

func toFloat(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) {
			return 0, false
		}

		return f, true
	default:
		return 0, false
	}
}
