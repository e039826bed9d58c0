package main

import (
	"context"
	"fmt"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/lwmacct/251207-go-pkg-cfgmerge/internal/command/merge"
	"github.com/lwmacct/251207-go-pkg-cfgmerge/internal/command/overlay"
	"github.com/lwmacct/251207-go-pkg-cfgmerge/internal/version"
)

func main() {
	// -v 用于 --verbose
	cli.VersionFlag = &cli.BoolFlag{
		Name:  "version",
		Usage: "print the version",
	}

	app := &cli.Command{
		Name:      version.AppRawName,
		Usage:     "合并多个配置源",
		Version:   version.GetVersion(),
		ArgsUsage: merge.ArgsUsage,
		Flags:     merge.Flags(),
		Action:    merge.Action,
		Commands: []*cli.Command{
			version.Command,
			overlay.Command,
		},
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
