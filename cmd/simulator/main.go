package main

import (
	"context"

	"github.com/Blackdeer1524/FrameCache/cmd/simulator/app"
)

func main() {
	app.MustExecute(context.Background())
}
