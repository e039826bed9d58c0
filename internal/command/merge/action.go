package merge

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-cfgmerge/internal/command"
	"github.com/lwmacct/251207-go-pkg-cfgmerge/internal/config"
	"github.com/lwmacct/251207-go-pkg-cfgmerge/pkg/cfgm"
	"github.com/lwmacct/251207-go-pkg-cfgmerge/pkg/source"
)

// ErrNoSources 未提供任何数据源。
var ErrNoSources = errors.New("at least one source is required")

// Action 加载位置参数中的数据源，合并后写入标准输出。
func Action(ctx context.Context, cmd *cli.Command) error {
	// 加载配置：默认值 → 环境变量 → CLI flags
	cfg, err := config.Load(ctx, cmd)
	if err != nil {
		return err
	}
	command.SetupLogger(cmd.Root().ErrWriter, cfg.Verbose)

	args := cmd.Args().Slice()
	if len(args) == 0 {
		return command.Fail(cmd, cfg, ErrNoSources)
	}

	strategies, err := cfg.StrategyMap()
	if err != nil {
		return err
	}

	sources := make([]any, len(args))
	for i, arg := range args {
		sources[i] = arg
	}

	loader := source.NewLoader(
		source.WithTimeout(cfg.Timeout),
		source.WithConcurrency(cfg.Concurrency),
	)
	opts := []cfgm.Option{
		cfgm.WithLoader(loader),
		cfgm.WithNoneValuesTransparent(cfg.NoneValuesAreTransparent),
		cfgm.WithMetadataKey(cfg.MetadataKey),
		cfgm.WithStrategies(strategies),
	}
	if cfg.NoTemplates {
		opts = append(opts, cfgm.WithoutTemplateResolution())
	}

	slog.Debug("Merging sources", "count", len(sources), "format", cfg.Format)

	out, err := cfgm.Render(ctx, sources, cfg.Format, opts...)
	if err != nil {
		return command.Fail(cmd, cfg, err)
	}

	if _, err := cmd.Root().Writer.Write(out); err != nil {
		return command.Fail(cmd, cfg, fmt.Errorf("write output: %w", err))
	}

	return nil
}
