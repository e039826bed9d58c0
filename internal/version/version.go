// Package version 提供构建版本信息与 version 子命令。
package version

import (
	"context"
	"fmt"
	"runtime/debug"

	"github.com/urfave/cli/v3"
)

// AppRawName 应用名称。
const AppRawName = "cfgmerge"

// 构建时通过 -ldflags "-X" 注入。
var (
	Version   = ""
	GitCommit = ""
)

// GetVersion 返回版本号，未注入时回退到模块构建信息。
func GetVersion() string {
	if Version != "" {
		return Version
	}
	if info, ok := debug.ReadBuildInfo(); ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}

	return "0.0.0-dev"
}

// Command 打印版本信息。
var Command = &cli.Command{
	Name:  "version",
	Usage: "显示版本信息",
	Action: func(_ context.Context, cmd *cli.Command) error {
		_, err := fmt.Fprintf(cmd.Root().Writer, "%s %s", AppRawName, GetVersion())
		if err != nil {
			return err
		}
		if GitCommit != "" {
			_, err = fmt.Fprintf(cmd.Root().Writer, " (%s)", GitCommit)
			if err != nil {
				return err
			}
		}
		_, err = fmt.Fprintln(cmd.Root().Writer)

		return err
	},
}
