package cfgm

import (
	"context"
	"fmt"
	"log/slog"
	"reflect"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-cfgmerge/pkg/deepmerge"
	"github.com/lwmacct/251207-go-pkg-cfgmerge/pkg/format"
	"github.com/lwmacct/251207-go-pkg-cfgmerge/pkg/templexp"
)

// Merge 加载全部数据源，自左向右深度合并，再执行 ${name} 替换。
//
// 数据源描述见 [source.Loader.Load]，后面的数据源优先。
// 任一数据源加载失败时整体失败，不会返回部分结果。
// 传入的 map 数据源不会被修改。
func Merge(ctx context.Context, sources []any, opts ...Option) (map[string]any, error) {
	return merge(ctx, sources, nil, newOptions(opts))
}

// merge 加载并合并数据源；leaves 非空时在模板替换前叠加环境变量与 CLI flags。
func merge(ctx context.Context, sources []any, leaves []leaf, o *options) (map[string]any, error) {
	loaded, err := o.loader.LoadAll(ctx, sources)
	if err != nil {
		return nil, fmt.Errorf("load sources: %w", err)
	}

	merged := deepmerge.MergeAll(loaded, o.mergeOpts...)

	if o.envPrefix != "" {
		applyEnv(merged, leaves, o.envPrefix)
	}
	if o.cmd != nil {
		applyFlags(o.cmd, merged, leaves)
	}

	if !o.noTemplates {
		var parent *templexp.Scope
		if o.rootScope != nil {
			parent = templexp.NewScope(o.rootScope, nil)
		}
		templexp.Resolve(merged, parent)
	}

	slog.Debug("Merged config sources", "sources", len(sources), "keys", len(merged), "templateResolution", !o.noTemplates)

	return merged, nil
}

// Render 合并数据源并按 formatName 序列化。
//
// 格式名在加载数据源之前校验，未知格式返回 [format.ErrUnknownOutputFormat]。
func Render(ctx context.Context, sources []any, formatName string, opts ...Option) ([]byte, error) {
	w, err := format.Lookup(formatName)
	if err != nil {
		return nil, err
	}

	merged, err := Merge(ctx, sources, opts...)
	if err != nil {
		return nil, err
	}

	out, err := w(merged)
	if err != nil {
		return nil, fmt.Errorf("render %s: %w", formatName, err)
	}

	return out, nil
}

// Load 以结构体默认值为第一层合并数据源，并解析到结构体。
//
// 优先级 (从低到高)：
//  1. 默认值 - defaults
//  2. 数据源 - sources，自左向右
//  3. 环境变量 - [WithEnvPrefix]
//  4. CLI flags - [WithCommand]，仅当用户明确指定时
//
// 配置 key 由 json tag 定义，YAML / JSON / HCL 共享同一套 key。
//
// 示例：
//
//	cfg, err := cfgm.Load(ctx, DefaultConfig(), []any{"config.yaml", "https://cfg.example.com/app.json"},
//	    cfgm.WithEnvPrefix("MYAPP_"),
//	)
func Load[T any](ctx context.Context, defaults T, sources []any, opts ...Option) (*T, error) {
	layers := make([]any, 0, len(sources)+1)
	layers = append(layers, defaultsLayer(defaults))
	layers = append(layers, sources...)

	merged, err := merge(ctx, layers, collectLeaves(reflect.TypeFor[T](), ""), newOptions(opts))
	if err != nil {
		return nil, err
	}

	return Decode[T](merged)
}

// LoadCmd 是 [Load] 的便捷版本，适用于 CLI 场景：注入 [WithCommand]，不加载额外数据源。
//
// 示例：
//
//	cfg, err := cfgm.LoadCmd(ctx, cmd, DefaultConfig(),
//	    cfgm.WithEnvPrefix("MYAPP_"),
//	)
func LoadCmd[T any](ctx context.Context, cmd *cli.Command, defaults T, opts ...Option) (*T, error) {
	return Load(ctx, defaults, nil, append([]Option{WithCommand(cmd)}, opts...)...)
}

// MustLoad 调用 [Load] 并在失败时 panic，适合启动阶段。
func MustLoad[T any](ctx context.Context, defaults T, sources []any, opts ...Option) *T {
	cfg, err := Load(ctx, defaults, sources, opts...)
	if err != nil {
		panic(fmt.Sprintf("cfgm: failed to load config: %v", err))
	}

	return cfg
}

// MustLoadCmd 调用 [LoadCmd] 并在失败时 panic。
func MustLoadCmd[T any](ctx context.Context, cmd *cli.Command, defaults T, opts ...Option) *T {
	cfg, err := LoadCmd(ctx, cmd, defaults, opts...)
	if err != nil {
		panic(fmt.Sprintf("cfgm: failed to load config: %v", err))
	}

	return cfg
}

// Decode 将配置映射解析到结构体。
//
// 使用 json tag，启用弱类型转换，字符串可解析为 time.Duration（如 "30s"）。
func Decode[T any](data map[string]any) (*T, error) {
	var cfg T
	if err := decodeConfigMap(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}
