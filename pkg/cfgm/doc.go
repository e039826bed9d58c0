// Package cfgm 合并多个异构配置源并解析模板变量。
//
// 数据源可以是内联 JSON、文件（JSON/YAML/env/HCL）、URL 或内存中的 map，
// 按给定顺序自左向右深度合并，后者优先，随后执行 ${name} 替换。
//
// # 合并规则
//
//  1. 映射递归合并
//  2. 标量后者覆盖前者，[WithNoneValuesTransparent] 时 null 不覆盖
//  3. 序列默认追加，可通过数据内的元数据 key 或 [WithStrategies] 指定
//     concat / keep / replace / and / or
//
// 详见 [deepmerge] 包。
//
// # 模板替换
//
// ${name} 在合并结果中查找：当前映射优先，随后逐级查找外层映射。
// 只替换一次，找不到的变量替换为空字符串。使用 [WithoutTemplateResolution] 可禁用。
//
//	merged, err := cfgm.Merge(ctx, []any{
//	    `{"a": 1, "b": [2], "c": {"d": "a is ${a}"}}`,
//	    map[string]any{"a": 5, "b": []any{999}},
//	})
//	// {"a": 5, "b": [2, 999], "c": {"d": "a is 5"}}
//
// # 输出
//
// 使用 [Render] 直接得到序列化文本：
//
//	out, err := cfgm.Render(ctx, []any{"base.yaml", "prod.json"}, "yaml")
//
// # 解析到结构体
//
// 定义配置结构体（json 标签）：
//
//	type Config struct {
//	    Name    string        `json:"name"`
//	    Timeout time.Duration `json:"timeout"`
//	}
//
// 结构体默认值作为第一层：
//
//	cfg, err := cfgm.Load(ctx, Config{Name: "default", Timeout: 30 * time.Second},
//	    []any{"config.yaml"},
//	)
//
// # CLI 场景
//
// 优先级 (从低到高)：默认值 → 数据源 → 环境变量 ([WithEnvPrefix]) → CLI flags ([WithCommand])。
//
//	cfg, err := cfgm.LoadCmd(ctx, cmd, DefaultConfig(), cfgm.WithEnvPrefix("MYAPP_"))
package cfgm
