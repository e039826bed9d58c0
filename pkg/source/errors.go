package source

import "errors"

// 加载数据源时返回的错误，使用 errors.Is 判断。
var (
	// ErrUnsupportedFormat 扩展名缺失或不在支持的输入格式内。
	ErrUnsupportedFormat = errors.New("unsupported input format")
	// ErrSourceUnavailable 路径不存在且不是可访问的 URL。
	ErrSourceUnavailable = errors.New("source unavailable")
	// ErrTopLevelType 解析结果的顶层不是映射。
	ErrTopLevelType = errors.New("top level of data must be a mapping")
)
