// Package source 将数据源描述转换为配置映射。
//
// 数据源描述可以是：
//   - map[string]any - 原样返回
//   - 以 "{" 开头、"}" 结尾的字符串 - 按 JSON 解析
//   - 文件路径 - 按扩展名选择解析器
//   - URL - 默认按 JSON 解析，扩展名可覆盖
//
// # 输入格式
//
//   - .json
//   - .yaml / .yml
//   - .env - KEY=value 行，"#" 开头为注释
//   - .hcl - 仅顶层属性，不支持变量与函数
//
// # 错误
//
// 失败时返回包装后的 [ErrUnsupportedFormat]、[ErrSourceUnavailable] 或 [ErrTopLevelType]，
// 加载不会重试。
package source
