// Package command 提供 merge 与 overlay 命令共用的 flags、日志与错误输出。
package command

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"runtime/debug"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-cfgmerge/internal/config"
	"github.com/lwmacct/251207-go-pkg-cfgmerge/pkg/format"
)

// Defaults 为默认配置的单一来源。
var Defaults = config.DefaultConfig()

// MergeFlags 返回控制合并行为的 flags。
//
// 每次调用都返回新的 flag 实例，可同时用于多个命令。
func MergeFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    config.FlagFormat,
			Aliases: []string{"f"},
			Value:   Defaults.Format,
			Usage:   fmt.Sprintf("输出格式 %v", format.Names()),
		},
		&cli.BoolFlag{
			Name:  config.FlagNoneTransparent,
			Usage: "null 不覆盖已有值",
		},
		&cli.StringFlag{
			Name:  config.FlagMetadataKey,
			Value: Defaults.MetadataKey,
			Usage: "数据内携带合并策略的保留 key，空字符串表示禁用",
		},
		&cli.BoolFlag{
			Name:  config.FlagNoTemplates,
			Usage: "禁用 ${name} 模板替换",
		},
		&cli.BoolFlag{
			Name:    config.FlagVerbose,
			Aliases: []string{"v"},
			Usage:   "输出调试日志",
		},
		&cli.BoolFlag{
			Name:  config.FlagPostmortem,
			Usage: "失败时输出错误链与调用栈",
		},
	}
}

// SetupLogger 设置默认 slog 日志，verbose 时输出 Debug 级别。
func SetupLogger(w io.Writer, verbose bool) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})))
}

// Postmortem 输出错误链与当前调用栈，用于 --postmortem。
func Postmortem(w io.Writer, err error) {
	_, _ = fmt.Fprintln(w, "postmortem:")
	writeErrorTree(w, err, 1)
	_, _ = fmt.Fprintf(w, "\n%s", debug.Stack())
}

// writeErrorTree 逐层输出错误链，多个 %w 包装的错误按缩进展开为分支。
func writeErrorTree(w io.Writer, err error, depth int) {
	for cur := err; cur != nil; depth++ {
		_, _ = fmt.Fprintf(w, "%s#%d %T: %v\n", strings.Repeat("  ", depth), depth-1, cur, cur)

		switch x := cur.(type) {
		case interface{ Unwrap() []error }:
			for _, child := range x.Unwrap() {
				writeErrorTree(w, child, depth+1)
			}

			return
		default:
			cur = errors.Unwrap(cur)
		}
	}
}

// Fail 在启用 postmortem 时输出诊断信息，并原样返回 err。
func Fail(cmd *cli.Command, cfg *config.Config, err error) error {
	if err != nil && cfg != nil && cfg.Postmortem {
		Postmortem(cmd.Root().ErrWriter, err)
	}

	return err
}
