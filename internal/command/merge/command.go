// Package merge 提供根命令：合并多个配置源并按指定格式输出。
package merge

import (
	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-cfgmerge/internal/command"
	"github.com/lwmacct/251207-go-pkg-cfgmerge/internal/config"
)

// ArgsUsage 位置参数说明。
const ArgsUsage = "SOURCE..."

// Flags 返回根命令的 flags。
func Flags() []cli.Flag {
	return append(command.MergeFlags(),
		&cli.StringSliceFlag{
			Name:    config.FlagStrategy,
			Aliases: []string{"s"},
			Usage:   "以点号路径指定序列合并策略，格式 path=name，可重复",
		},
		&cli.DurationFlag{
			Name:  config.FlagTimeout,
			Value: command.Defaults.Timeout,
			Usage: "URL 数据源请求超时",
		},
		&cli.IntFlag{
			Name:  config.FlagConcurrency,
			Value: command.Defaults.Concurrency,
			Usage: "数据源并发加载数",
		},
	)
}
