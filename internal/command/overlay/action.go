package overlay

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-cfgmerge/internal/command"
	"github.com/lwmacct/251207-go-pkg-cfgmerge/internal/config"
	"github.com/lwmacct/251207-go-pkg-cfgmerge/pkg/deepmerge"
	"github.com/lwmacct/251207-go-pkg-cfgmerge/pkg/format"
	"github.com/lwmacct/251207-go-pkg-cfgmerge/pkg/overlay"
	"github.com/lwmacct/251207-go-pkg-cfgmerge/pkg/templexp"
)

// Action 叠加片段后写入标准输出。
func Action(ctx context.Context, cmd *cli.Command) error {
	cfg, err := config.Load(ctx, cmd)
	if err != nil {
		return err
	}
	command.SetupLogger(cmd.Root().ErrWriter, cfg.Verbose)

	strategies, err := cfg.StrategyMap()
	if err != nil {
		return err
	}

	resolver := overlay.New(cfg.Overlay.Root,
		overlay.WithMergeOptions(
			deepmerge.WithNoneValuesTransparent(cfg.NoneValuesAreTransparent),
			deepmerge.WithMetadataKey(cfg.MetadataKey),
			deepmerge.WithStrategies(strategies),
		),
	)

	slog.Debug("Resolving overlay",
		"root", cfg.Overlay.Root,
		"names", cfg.Overlay.Names,
		"folders", cfg.Overlay.Folders,
	)

	merged, err := resolver.Get(ctx, cfg.Overlay.Names, cfg.Overlay.Folders)
	if err != nil {
		return command.Fail(cmd, cfg, err)
	}
	if !cfg.NoTemplates {
		templexp.Resolve(merged, nil)
	}

	out, err := format.Serialize(merged, cfg.Format)
	if err != nil {
		return command.Fail(cmd, cfg, err)
	}
	if _, err := cmd.Root().Writer.Write(out); err != nil {
		return command.Fail(cmd, cfg, fmt.Errorf("write output: %w", err))
	}

	return nil
}
