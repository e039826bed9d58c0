package cfgm

import (
	"fmt"
	"reflect"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
)

// 按值保留、不展开为映射的结构体类型。
var opaqueStructs = map[reflect.Type]bool{
	reflect.TypeFor[time.Time](): true,
}

// fieldKey 返回字段的配置 key（json tag 名），未声明或为 "-" 时返回空字符串。
func fieldKey(field reflect.StructField) string {
	if !field.IsExported() {
		return ""
	}
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}

	return name
}

// defaultsLayer 将结构体默认值转换为合并的第一层。
func defaultsLayer(cfg any) map[string]any {
	m, ok := toConfigValue(reflect.ValueOf(cfg)).(map[string]any)
	if !ok {
		return map[string]any{}
	}

	return m
}

// toConfigValue 将任意 Go 值转换为 map[string]any / []any / 标量。
//
// 结构体只保留带 json tag 的导出字段；nil 指针、切片与映射转换为 nil。
func toConfigValue(v reflect.Value) any {
	if !v.IsValid() {
		return nil
	}

	switch v.Kind() {
	case reflect.Pointer, reflect.Interface:
		if v.IsNil() {
			return nil
		}

		return toConfigValue(v.Elem())

	case reflect.Struct:
		if opaqueStructs[v.Type()] {
			return v.Interface()
		}
		out := make(map[string]any, v.NumField())
		for i := range v.NumField() {
			if key := fieldKey(v.Type().Field(i)); key != "" {
				out[key] = toConfigValue(v.Field(i))
			}
		}

		return out

	case reflect.Slice:
		if v.IsNil() {
			return nil
		}
		fallthrough
	case reflect.Array:
		out := make([]any, v.Len())
		for i := range out {
			out[i] = toConfigValue(v.Index(i))
		}

		return out

	case reflect.Map:
		if v.IsNil() {
			return nil
		}
		out := make(map[string]any, v.Len())
		for iter := v.MapRange(); iter.Next(); {
			out[fmt.Sprint(iter.Key().Interface())] = toConfigValue(iter.Value())
		}

		return out

	default:
		return v.Interface()
	}
}

// decodeConfigMap 使用 json tag 将映射解析到 out，允许弱类型转换。
func decodeConfigMap(data map[string]any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook: mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.TextUnmarshallerHookFunc(),
		),
		Result:           out,
		WeaklyTypedInput: true,
		TagName:          "json",
	})
	if err != nil {
		return err
	}

	return decoder.Decode(data)
}
