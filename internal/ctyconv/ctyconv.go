// Package ctyconv 在 cty.Value 与原生配置值之间转换，供 HCL 读写使用。
package ctyconv

import (
	"errors"
	"fmt"
	"maps"
	"math"
	"math/big"
	"reflect"
	"slices"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// ToNative 递归地将 cty.Value 转换为 map[string]any / []any / 标量。
//
// 数值统一转换为 float64，与 JSON 解析结果保持一致；null 与未知值转换为 nil。
func ToNative(v cty.Value) (any, error) {
	if v.IsNull() || !v.IsKnown() {
		return nil, nil
	}

	ty := v.Type()

	switch {
	case ty == cty.String:
		return v.AsString(), nil

	case ty == cty.Number:
		var f float64
		if err := gocty.FromCtyValue(v, &f); err != nil {
			return nil, fmt.Errorf("convert number: %w", err)
		}
		return f, nil

	case ty == cty.Bool:
		return v.True(), nil

	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		out := make([]any, 0)
		it := v.ElementIterator()
		for it.Next() {
			_, elem := it.Element()
			native, err := ToNative(elem)
			if err != nil {
				return nil, err
			}
			out = append(out, native)
		}
		return out, nil

	case ty.IsObjectType() || ty.IsMapType():
		out := make(map[string]any)
		it := v.ElementIterator()
		for it.Next() {
			key, elem := it.Element()
			native, err := ToNative(elem)
			if err != nil {
				return nil, fmt.Errorf("in attribute %q: %w", key.AsString(), err)
			}
			out[key.AsString()] = native
		}
		return out, nil

	default:
		return nil, fmt.Errorf("unsupported cty type %s", ty.FriendlyName())
	}
}

// FromNative 将原生配置值转换为 cty.Value。
//
// 序列转换为 tuple、映射转换为 object，因此允许元素类型各不相同。
func FromNative(v any) (cty.Value, error) {
	switch typed := v.(type) {
	case nil:
		return cty.NullVal(cty.DynamicPseudoType), nil
	case cty.Value:
		return typed, nil
	case string:
		return cty.StringVal(typed), nil
	case bool:
		return cty.BoolVal(typed), nil
	case []any:
		if len(typed) == 0 {
			return cty.EmptyTupleVal, nil
		}
		elems := make([]cty.Value, len(typed))
		for i, e := range typed {
			ev, err := FromNative(e)
			if err != nil {
				return cty.NilVal, fmt.Errorf("index %d: %w", i, err)
			}
			elems[i] = ev
		}
		return cty.TupleVal(elems), nil
	case map[string]any:
		if len(typed) == 0 {
			return cty.EmptyObjectVal, nil
		}
		attrs := make(map[string]cty.Value, len(typed))
		for _, k := range slices.Sorted(maps.Keys(typed)) {
			av, err := FromNative(typed[k])
			if err != nil {
				return cty.NilVal, fmt.Errorf("in attribute %q: %w", k, err)
			}
			attrs[k] = av
		}
		return cty.ObjectVal(attrs), nil
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return cty.NumberIntVal(rv.Int()), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return cty.NumberVal(new(big.Float).SetUint64(rv.Uint())), nil
	case reflect.Float32, reflect.Float64:
		if math.IsNaN(rv.Float()) {
			return cty.NilVal, errors.New("unsupported NaN")
		}
		return cty.NumberFloatVal(rv.Float()), nil
	case reflect.Slice, reflect.Array:
		elems := make([]any, rv.Len())
		for i := range rv.Len() {
			elems[i] = rv.Index(i).Interface()
		}
		return FromNative(elems)
	case reflect.Map:
		if rv.Type().Key().Kind() == reflect.String {
			m := make(map[string]any, rv.Len())
			iter := rv.MapRange()
			for iter.Next() {
				m[iter.Key().String()] = iter.Value().Interface()
			}
			return FromNative(m)
		}
	}

	return cty.NilVal, fmt.Errorf("unsupported value type %T", v)
}
