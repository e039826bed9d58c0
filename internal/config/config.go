// Package config 提供命令行工具的运行配置。
//
// 配置加载优先级 (从低到高)：
//  1. 默认值 - DefaultConfig() 函数中定义
//  2. 环境变量 - CFGMERGE_ 前缀，例如 CFGMERGE_FORMAT=json、CFGMERGE_OVERLAY_ROOT=/etc/app
//  3. CLI flags - 仅当用户显式指定时覆盖
package config

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-cfgmerge/pkg/cfgm"
	"github.com/lwmacct/251207-go-pkg-cfgmerge/pkg/deepmerge"
	"github.com/lwmacct/251207-go-pkg-cfgmerge/pkg/format"
	"github.com/lwmacct/251207-go-pkg-cfgmerge/pkg/source"
)

// EnvPrefix 环境变量前缀。
const EnvPrefix = "CFGMERGE_"

// ErrInvalidConfig 表示运行配置无效（例如未知的输出格式或策略）。
var ErrInvalidConfig = errors.New("invalid configuration")

// Config 运行配置。
//
// 环境变量名由 json tag 路径生成，flag 名称默认与 json tag 相同，不同时由 flag tag 指定。
type Config struct {
	Format                   string        `json:"format" desc:"输出格式"`
	NoneValuesAreTransparent bool          `json:"none_values_are_transparent" desc:"null 不覆盖已有值"`
	MetadataKey              string        `json:"metadata_key" desc:"合并元数据 key"`
	Strategies               []string      `json:"strategies" flag:"strategy" desc:"序列合并策略 path=name"`
	NoTemplates              bool          `json:"no_templates" flag:"no-templates" desc:"禁用模板替换"`
	Timeout                  time.Duration `json:"timeout" desc:"URL 数据源请求超时"`
	Concurrency              int           `json:"concurrency" desc:"数据源并发加载数"`
	Verbose                  bool          `json:"verbose" desc:"输出调试日志"`
	Postmortem               bool          `json:"postmortem" desc:"失败时输出错误链与调用栈"`
	Overlay                  OverlayConfig `json:"overlay" desc:"叠加目录配置"`
}

// OverlayConfig 叠加目录配置。
type OverlayConfig struct {
	Root    string   `json:"root" flag:"root" desc:"片段根目录"`
	Names   []string `json:"names" flag:"name" desc:"片段名称"`
	Folders []string `json:"folders" flag:"folder" desc:"子目录"`
}

// DefaultConfig 返回默认配置。
// 注意：internal/command/command.go 中的 Defaults 变量引用此函数以实现单一配置来源。
func DefaultConfig() Config {
	return Config{
		Format:      format.Default,
		MetadataKey: deepmerge.DefaultMetadataKey,
		Timeout:     source.DefaultTimeout,
		Concurrency: 1,
		Overlay: OverlayConfig{
			Root: ".",
		},
	}
}

// Load 按 默认值 → 环境变量 → CLI flags 加载配置并校验。
//
// cmd 为 nil 时忽略 CLI flags。
func Load(ctx context.Context, cmd *cli.Command) (*Config, error) {
	cfg, err := cfgm.LoadCmd(ctx, cmd, DefaultConfig(),
		cfgm.WithEnvPrefix(EnvPrefix),
		cfgm.WithoutTemplateResolution(),
	)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate 校验输出格式与序列合并策略。
func (c *Config) Validate() error {
	if _, err := format.Lookup(c.Format); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := c.StrategyMap(); err != nil {
		return err
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("%w: concurrency must be positive, got %d", ErrInvalidConfig, c.Concurrency)
	}

	return nil
}

// StrategyMap 将 "path=name" 形式的策略解析为映射。
func (c *Config) StrategyMap() (map[string]deepmerge.Strategy, error) {
	out := make(map[string]deepmerge.Strategy, len(c.Strategies))
	for _, item := range c.Strategies {
		path, name, ok := strings.Cut(item, "=")
		path = strings.TrimSpace(path)
		if !ok || path == "" {
			return nil, fmt.Errorf("%w: strategy %q must be path=name", ErrInvalidConfig, item)
		}
		s, err := deepmerge.ParseStrategy(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		out[path] = s
	}

	return out, nil
}
