package cfgm

import (
	"log/slog"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/urfave/cli/v3"
)

// leaf 配置结构体中的一个叶子配置项。
type leaf struct {
	path string // 点号路径，如 overlay.root
	flag string // CLI flag 名称
	typ  reflect.Type
}

// collectLeaves 以 json tag 为准递归收集叶子配置项。
//
// flag 名称默认由路径的 "." 替换为 "-" 得到，可用 `flag:"name"` tag 覆盖。
func collectLeaves(typ reflect.Type, prefix string) []leaf {
	if typ.Kind() == reflect.Pointer {
		typ = typ.Elem()
	}
	if typ.Kind() != reflect.Struct {
		return nil
	}

	var out []leaf
	for i := range typ.NumField() {
		field := typ.Field(i)
		key := fieldKey(field)
		if key == "" {
			continue
		}

		path := key
		if prefix != "" {
			path = prefix + "." + key
		}

		ft := field.Type
		if ft.Kind() == reflect.Pointer {
			ft = ft.Elem()
		}
		if ft.Kind() == reflect.Struct && !opaqueStructs[ft] {
			out = append(out, collectLeaves(ft, path)...)

			continue
		}

		flag := field.Tag.Get("flag")
		if flag == "" {
			flag = strings.ReplaceAll(path, ".", "-")
		}
		out = append(out, leaf{path: path, flag: flag, typ: ft})
	}

	return out
}

// envName 生成叶子配置项对应的环境变量名。
//
// 示例 (前缀 "APP_")：overlay.root → APP_OVERLAY_ROOT，rev-auth-user → APP_REV_AUTH_USER
func envName(prefix, path string) string {
	return prefix + strings.ToUpper(strings.NewReplacer(".", "_", "-", "_").Replace(path))
}

// applyEnv 将已设置的环境变量写入配置映射，空值同样生效。
//
// 切片类型的值按 "," 拆分；映射类型无法用单个变量表示，不绑定环境变量。
func applyEnv(config map[string]any, leaves []leaf, prefix string) {
	environ := env.ToMap(os.Environ())
	for _, l := range leaves {
		if l.typ.Kind() == reflect.Map {
			continue
		}
		name := envName(prefix, l.path)
		raw, ok := environ[name]
		if !ok {
			continue
		}

		var val any = raw
		if l.typ.Kind() == reflect.Slice {
			items := []any{}
			for item := range strings.SplitSeq(raw, ",") {
				if item = strings.TrimSpace(item); item != "" {
					items = append(items, item)
				}
			}
			val = items
		}
		setByPath(config, l.path, val)
		slog.Debug("Loaded env binding", "env", name, "path", l.path)
	}
}

// applyFlags 将用户显式设置的 CLI flags 写入配置映射。
func applyFlags(cmd *cli.Command, config map[string]any, leaves []leaf) {
	for _, l := range leaves {
		if !cmd.IsSet(l.flag) {
			continue
		}
		if val, ok := flagValue(cmd, l); ok {
			setByPath(config, l.path, val)
			slog.Debug("Loaded CLI flag", "flag", l.flag, "path", l.path)
		}
	}
}

// flagValue 按字段类型读取 flag 值，不支持的类型返回 false。
func flagValue(cmd *cli.Command, l leaf) (any, bool) {
	switch l.typ {
	case reflect.TypeFor[time.Duration]():
		return cmd.Duration(l.flag), true
	case reflect.TypeFor[time.Time]():
		return cmd.Timestamp(l.flag), true
	}

	switch l.typ.Kind() {
	case reflect.String:
		return cmd.String(l.flag), true
	case reflect.Bool:
		return cmd.Bool(l.flag), true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32:
		return cmd.Int(l.flag), true
	case reflect.Int64:
		return cmd.Int64(l.flag), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32:
		return cmd.Uint(l.flag), true
	case reflect.Uint64:
		return cmd.Uint64(l.flag), true
	case reflect.Float32, reflect.Float64:
		return cmd.Float64(l.flag), true
	case reflect.Slice:
		switch l.typ.Elem().Kind() {
		case reflect.String:
			return cmd.StringSlice(l.flag), true
		case reflect.Int:
			return cmd.IntSlice(l.flag), true
		}
	case reflect.Map:
		if l.typ.Key().Kind() == reflect.String && l.typ.Elem().Kind() == reflect.String {
			return cmd.StringMap(l.flag), true
		}
	}

	return nil, false
}

// setByPath 按点号路径写入值，中间缺失或非映射的节点替换为新映射。
func setByPath(dst map[string]any, path string, value any) {
	parts := strings.Split(path, ".")
	cur := dst
	for _, part := range parts[:len(parts)-1] {
		next, ok := cur[part].(map[string]any)
		if !ok {
			next = map[string]any{}
			cur[part] = next
		}
		cur = next
	}
	cur[parts[len(parts)-1]] = value
}
