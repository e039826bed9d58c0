// Package format 将合并后的配置映射序列化为文本。
//
// 支持的输出格式（见 [Names]）：
//   - dump - 可读的结构化转储（默认）
//   - json - 两空格缩进
//   - yaml
//   - env - 每个顶层 key 一行 key=value
//   - hcl - 顶层属性，key 必须是合法的 HCL 标识符
//
// 未注册的格式名返回 [ErrUnknownOutputFormat]，应在加载数据源之前通过 [Lookup] 校验。
package format
