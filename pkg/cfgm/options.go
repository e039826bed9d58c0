package cfgm

import (
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-cfgmerge/pkg/deepmerge"
	"github.com/lwmacct/251207-go-pkg-cfgmerge/pkg/source"
)

// options 合并选项。
type options struct {
	loader      *source.Loader
	mergeOpts   []deepmerge.Option
	noTemplates bool           // 是否禁用模板替换（默认启用）
	rootScope   map[string]any // 最外层作用域，配置中的同名 key 优先
	envPrefix   string
	cmd         *cli.Command
}

// Option 合并选项函数。
type Option func(*options)

func newOptions(opts []Option) *options {
	o := &options{}
	for _, opt := range opts {
		opt(o)
	}
	if o.loader == nil {
		o.loader = source.NewLoader()
	}

	return o
}

// WithLoader 设置数据源加载器，例如需要自定义 HTTP 客户端或并发数时。
func WithLoader(loader *source.Loader) Option {
	return func(o *options) {
		o.loader = loader
	}
}

// WithNoneValuesTransparent 启用后，后加载数据源中的 null 不会覆盖已有值。
func WithNoneValuesTransparent(enabled bool) Option {
	return func(o *options) {
		o.mergeOpts = append(o.mergeOpts, deepmerge.WithNoneValuesTransparent(enabled))
	}
}

// WithMetadataKey 覆盖数据内携带合并策略的保留 key。
func WithMetadataKey(key string) Option {
	return func(o *options) {
		o.mergeOpts = append(o.mergeOpts, deepmerge.WithMetadataKey(key))
	}
}

// WithStrategies 以点号路径显式指定序列合并策略。
//
// 示例：
//
//	cfgm.Merge(ctx, sources, cfgm.WithStrategies(map[string]deepmerge.Strategy{
//	    "plugins": deepmerge.Or,
//	}))
func WithStrategies(strategies map[string]deepmerge.Strategy) Option {
	return func(o *options) {
		o.mergeOpts = append(o.mergeOpts, deepmerge.WithStrategies(strategies))
	}
}

// WithoutTemplateResolution 禁用 ${name} 替换，保留原始字符串。
func WithoutTemplateResolution() Option {
	return func(o *options) {
		o.noTemplates = true
	}
}

// WithRootScope 提供最外层的模板变量，配置中的同名 key 优先。
//
// 示例：
//
//	cfgm.Merge(ctx, sources, cfgm.WithRootScope(map[string]any{"env": "prod"}))
func WithRootScope(vars map[string]any) Option {
	return func(o *options) {
		o.rootScope = vars
	}
}

// WithEnvPrefix 在数据源之后叠加环境变量，仅对 [Load] / [LoadCmd] 生效。
//
// 环境变量名由 json tag 路径生成：前缀 + 大写 key，"." 与 "-" 转为 "_"。
// 已设置但为空的变量同样覆盖，切片按 "," 拆分。
//
// 示例 (前缀为 "MYAPP_")：
//   - MYAPP_DEBUG → debug
//   - MYAPP_SERVER_HOSTS=a,b → server.hosts
func WithEnvPrefix(prefix string) Option {
	return func(o *options) {
		o.envPrefix = prefix
	}
}

// WithCommand 绑定 CLI 命令，显式设置的 flags 最后覆盖（最高优先级），仅对 [Load] / [LoadCmd] 生效。
//
// flag 名称为 json tag 路径中的 "." 替换为 "-"，可通过 `flag:"name"` tag 指定：
//
//	type Config struct {
//	    Hosts []string `json:"hosts" flag:"host"`
//	}
func WithCommand(cmd *cli.Command) Option {
	return func(o *options) {
		o.cmd = cmd
	}
}
