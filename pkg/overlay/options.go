package overlay

import (
	"time"

	"github.com/lwmacct/251207-go-pkg-cfgmerge/pkg/deepmerge"
	"github.com/lwmacct/251207-go-pkg-cfgmerge/pkg/source"
)

// DefaultName 每个目录中最先合并的片段名称。
const DefaultName = "_default"

// DefaultExtensions 片段文件扩展名的查找顺序，先命中者生效。
var DefaultExtensions = []string{".json", ".yaml", ".yml", ".hcl"}

// Option 叠加解析器选项函数。
type Option func(*Resolver)

// WithCache 使用外部缓存，便于多个解析器共享或手动失效。
func WithCache(cache *Cache) Option {
	return func(r *Resolver) {
		r.cache = cache
	}
}

// WithTTL 为默认缓存设置过期时间，与 [WithCache] 同时使用时无效。
func WithTTL(ttl time.Duration) Option {
	return func(r *Resolver) {
		r.ttl = ttl
	}
}

// WithLoader 设置片段加载器。
func WithLoader(loader *source.Loader) Option {
	return func(r *Resolver) {
		r.loader = loader
	}
}

// WithMergeOptions 设置合并片段时使用的选项。
func WithMergeOptions(opts ...deepmerge.Option) Option {
	return func(r *Resolver) {
		r.mergeOpts = opts
	}
}

// WithExtensions 设置片段扩展名的查找顺序（含前导 "."）。
func WithExtensions(exts ...string) Option {
	return func(r *Resolver) {
		r.extensions = exts
	}
}

// WithDefaultName 覆盖默认片段名称。
func WithDefaultName(name string) Option {
	return func(r *Resolver) {
		r.defaultName = name
	}
}
