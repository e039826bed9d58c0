// Package templexp 提供配置映射内的 ${name} 变量替换。
//
// 变量从配置本身查找，而不是环境变量：
// 当前映射优先，随后逐级查找外层映射（作用域链）。
// 只做一次替换，替换结果中的 ${...} 保持字面量，强调可读性与可预测性。
//
// # 语义说明
//
//  1. name 为精确的 key，不解析点号路径
//  2. 找不到的变量替换为空字符串
//  3. 序列中的字符串使用所在映射的作用域
//  4. key 按字典序处理，已替换的值对后处理的 key 可见
//
// # 快速开始
//
//	cfg := map[string]any{
//	    "host": "localhost",
//	    "api":  map[string]any{"url": "http://${host}:8080"},
//	}
//	templexp.Resolve(cfg, nil)
//	// cfg["api"]["url"] == "http://localhost:8080"
//
// 详见 [Resolve] 文档。
package templexp
