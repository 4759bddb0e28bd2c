package app

import (
	"context"

	"github.com/Blackdeer1524/FrameCache/src/cli"
)

var rootCmd = cli.Init("simulator")

func MustExecute(ctx context.Context) {
	initStart()
	rootCmd.MustExecute(ctx)
}
