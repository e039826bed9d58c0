// Package deepmerge 提供嵌套映射的深度合并。
//
// 映射递归合并，标量后者覆盖前者，序列按策略合并：
//   - concat - 追加（默认，保留重复项）
//   - keep - 保留 base
//   - replace - 使用 update
//   - and - 交集（有序去重）
//   - or - 并集（有序去重）
//
// # 策略来源
//
// 策略可以写在数据中的保留 key（见 [DefaultMetadataKey]）下，只作用于同级 key：
//
//	{
//	  "hosts": ["b", "c"],
//	  "__CONFIG-MERGER-META__": {"hosts": "or"}
//	}
//
// 也可以通过 [WithStrategies] 以点号路径显式传入，显式策略优先。
// 元数据 key 在合并结果中总会被移除。
//
// # 快速开始
//
//	merged := deepmerge.MergeAll([]map[string]any{defaults, fileCfg, overrides},
//	    deepmerge.WithNoneValuesTransparent(true),
//	)
package deepmerge
