package source

import (
	"time"

	"github.com/go-resty/resty/v2"
)

// DefaultTimeout URL 数据源的默认请求超时。
const DefaultTimeout = 30 * time.Second

// Option 加载器选项函数。
type Option func(*Loader)

// WithHTTPClient 使用自定义的 resty 客户端获取 URL 数据源。
func WithHTTPClient(client *resty.Client) Option {
	return func(l *Loader) {
		l.client = client
	}
}

// WithTimeout 设置单个 URL 数据源的请求超时，0 表示不限制。
//
// 超时通过请求 context 生效，不会修改 [WithHTTPClient] 传入的客户端。
func WithTimeout(d time.Duration) Option {
	return func(l *Loader) {
		l.timeout = d
	}
}

// WithConcurrency 设置 [Loader.LoadAll] 的并发数，小于 1 时按 1 处理。
//
// 合并顺序始终与数据源顺序一致，并发只影响加载。
func WithConcurrency(n int) Option {
	return func(l *Loader) {
		l.concurrency = max(n, 1)
	}
}

// WithBaseDir 设置相对路径的解析基准，空字符串表示当前工作目录。
func WithBaseDir(dir string) Option {
	return func(l *Loader) {
		l.baseDir = dir
	}
}
