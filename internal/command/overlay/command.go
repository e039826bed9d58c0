// Package overlay 提供 overlay 命令：按目录与名称叠加配置片段。
package overlay

import (
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-cfgmerge/internal/command"
	"github.com/lwmacct/251207-go-pkg-cfgmerge/internal/config"
)

// Command 叠加命令
var Command = &cli.Command{
	Name:   "overlay",
	Usage:  "按 _default → 名称、根目录 → 子目录的顺序叠加配置片段",
	Action: Action,
	Flags:  Flags(),
	// 单独作为 cfgoverlay 根命令运行时，-v 留给 --verbose
	HideVersion: true,
}

// Flags 返回 overlay 命令的 flags。
func Flags() []cli.Flag {
	return append(command.MergeFlags(),
		&cli.StringFlag{
			Name:    config.FlagRoot,
			Aliases: []string{"r"},
			Value:   command.Defaults.Overlay.Root,
			Usage:   "片段根目录",
		},
		&cli.StringSliceFlag{
			Name:    config.FlagName,
			Aliases: []string{"n"},
			Usage:   "在 _default 之后依次合并的片段名称，可重复",
		},
		&cli.StringSliceFlag{
			Name:  config.FlagFolder,
			Usage: "在根目录之后依次处理的子目录，可重复",
		},
		&cli.StringSliceFlag{
			Name:    config.FlagStrategy,
			Aliases: []string{"s"},
			Usage:   "以点号路径指定序列合并策略，格式 path=name，可重复",
		},
	)
}
