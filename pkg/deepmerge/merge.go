package deepmerge

import (
	"fmt"
	"log/slog"
	"maps"
	"reflect"
	"slices"
)

// Merge 将 update 深度合并到 base 并返回 base。
//
// 合并规则：
//   - 映射：递归合并（base 中不是映射时按空映射处理）
//   - 序列：按策略合并，默认 [Concat]
//   - 标量（含 nil）：覆盖；启用 [WithNoneValuesTransparent] 时 nil 不覆盖已有值
//
// base 会被原地修改；update 不会被修改，其中的映射会被复制进结果。
// 元数据 key 从结果中移除。
//
// 注意：[Concat] 不是幂等的，同一 update 合并两次会使序列元素重复。
func Merge(base, update map[string]any, opts ...Option) map[string]any {
	o := newOptions(opts)
	if base == nil {
		base = map[string]any{}
	}

	merged := mergeMapping(base, update, "", o)
	if o.metadataKey != "" {
		stripMetadata(merged, o.metadataKey)
	}

	return merged
}

// MergeAll 从空映射开始，自左向右依次合并 sources，后者优先。
func MergeAll(sources []map[string]any, opts ...Option) map[string]any {
	acc := map[string]any{}
	for _, src := range sources {
		acc = Merge(acc, src, opts...)
	}

	return acc
}

func mergeMapping(base, update map[string]any, path string, o *options) map[string]any {
	meta := extractMetadata(base, update, path, o)

	for _, k := range sortedKeys(update) {
		if o.metadataKey != "" && k == o.metadataKey {
			continue
		}
		v := update[k]
		childPath := joinPath(path, k)

		if m, ok := asMapping(v); ok {
			sub, ok := asMapping(base[k])
			if !ok {
				sub = map[string]any{}
			}
			base[k] = mergeMapping(sub, m, childPath, o)

			continue
		}

		if seq, ok := asSequence(v); ok {
			prev, ok := asSequence(base[k])
			if !ok {
				prev = []any{}
			}
			strategy := meta.strategyFor(k)
			if s, ok := o.strategies[childPath]; ok {
				strategy = s
			}
			base[k] = strategy.Combine(prev, seq)

			continue
		}

		if o.noneValuesAreTransparent && v == nil {
			if _, exists := base[k]; exists {
				continue
			}
		}
		base[k] = v
	}

	return base
}

// extractMetadata 从 base 中移除、从 update 中读取元数据，update 的条目优先。
func extractMetadata(base, update map[string]any, path string, o *options) Metadata {
	meta := Metadata{}
	if o.metadataKey == "" {
		return meta
	}

	raw, ok := base[o.metadataKey]
	if ok {
		delete(base, o.metadataKey)
		readMetadata(meta, raw, path)
	}
	if raw, ok := update[o.metadataKey]; ok {
		readMetadata(meta, raw, path)
	}

	return meta
}

func readMetadata(dst Metadata, raw any, path string) {
	m, ok := asMapping(raw)
	if !ok {
		slog.Warn("Ignoring merge metadata that is not a mapping", "path", path, "type", fmt.Sprintf("%T", raw))

		return
	}
	for key, val := range m {
		name, _ := val.(string)
		s, err := ParseStrategy(name)
		if err != nil {
			slog.Warn("Unknown combine strategy, falling back to concat", "path", joinPath(path, key), "strategy", val)
			s = Concat
		}
		dst[key] = s
	}
}

// stripMetadata 沿映射递归删除元数据 key。
func stripMetadata(m map[string]any, key string) {
	delete(m, key)
	for _, v := range m {
		if child, ok := v.(map[string]any); ok {
			stripMetadata(child, key)
		}
	}
}

// asMapping 将字符串 key 的映射统一为 map[string]any。
func asMapping(v any) (map[string]any, bool) {
	switch typed := v.(type) {
	case nil:
		return nil, false
	case map[string]any:
		return typed, true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Map || rv.Type().Key().Kind() != reflect.String {
		return nil, false
	}
	out := make(map[string]any, rv.Len())
	iter := rv.MapRange()
	for iter.Next() {
		out[iter.Key().String()] = iter.Value().Interface()
	}

	return out, true
}

// asSequence 将任意切片或数组统一为 []any；[]byte 视为标量。
func asSequence(v any) ([]any, bool) {
	switch typed := v.(type) {
	case nil, []byte:
		return nil, false
	case []any:
		return typed, true
	}

	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return nil, false
	}
	out := make([]any, rv.Len())
	for i := range rv.Len() {
		out[i] = rv.Index(i).Interface()
	}

	return out, true
}

func sortedKeys(m map[string]any) []string {
	return slices.Sorted(maps.Keys(m))
}

func joinPath(prefix, key string) string {
	if prefix == "" {
		return key
	}

	return prefix + "." + key
}
