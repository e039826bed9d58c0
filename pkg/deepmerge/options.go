package deepmerge

// DefaultMetadataKey 输入映射中携带合并元数据的保留 key。
const DefaultMetadataKey = "__CONFIG-MERGER-META__"

// options 合并选项。
type options struct {
	noneValuesAreTransparent bool
	metadataKey              string
	strategies               map[string]Strategy // 以点号路径为 key 的显式策略
}

// Option 合并选项函数。
type Option func(*options)

func newOptions(opts []Option) *options {
	o := &options{metadataKey: DefaultMetadataKey}
	for _, opt := range opts {
		opt(o)
	}

	return o
}

// WithNoneValuesTransparent 启用后，update 中的 nil 不会覆盖 base 中已存在的值。
func WithNoneValuesTransparent(enabled bool) Option {
	return func(o *options) {
		o.noneValuesAreTransparent = enabled
	}
}

// WithMetadataKey 覆盖保留的元数据 key，空字符串表示不解析数据内的元数据。
func WithMetadataKey(key string) Option {
	return func(o *options) {
		o.metadataKey = key
	}
}

// WithStrategies 以点号路径指定序列合并策略，优先于数据内的元数据。
//
// 示例：
//
//	deepmerge.Merge(base, update, deepmerge.WithStrategies(map[string]deepmerge.Strategy{
//	    "servers.hosts": deepmerge.Or,
//	}))
func WithStrategies(strategies map[string]Strategy) Option {
	return func(o *options) {
		if o.strategies == nil {
			o.strategies = make(map[string]Strategy, len(strategies))
		}
		for path, s := range strategies {
			o.strategies[path] = s
		}
	}
}
