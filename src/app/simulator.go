package app

import (
	"context"
	"fmt"

	"github.com/spf13/afero"
	"go.uber.org/zap"

	"github.com/Blackdeer1524/FrameCache/src"
	"github.com/Blackdeer1524/FrameCache/src/pkg/utils"
	"github.com/Blackdeer1524/FrameCache/src/replacer"
	"github.com/Blackdeer1524/FrameCache/src/sim"
)

// SimulatorEntrypoint replays a workload (a trace file, or a synthetic
// concurrent stress run when no trace is configured) against the
// configured replacement policy.
type SimulatorEntrypoint struct {
	ConfigPath string

	env envVars
	log src.Logger
	r   replacer.Replacer
	fs  afero.Fs
}

func (e *SimulatorEntrypoint) Init(_ context.Context) error {
	e.env = mustLoadEnv(e.ConfigPath)

	var log src.Logger
	if e.env.Environment == EnvDev {
		log = utils.Must(zap.NewDevelopment()).Sugar()
	} else {
		log = utils.Must(zap.NewProduction()).Sugar()
	}

	e.log = log

	e.r = replacer.New(e.env.Algorithm, e.env.NumFrames, e.env.HistoryDepth)
	e.fs = afero.NewOsFs()

	e.log.Infof(
		"simulator configured: algorithm=%s frames=%d k=%d",
		e.env.Algorithm,
		e.env.NumFrames,
		e.env.HistoryDepth,
	)

	return nil
}

func (e *SimulatorEntrypoint) Run(ctx context.Context) error {
	runner := sim.NewRunner(e.log, e.r)

	if e.env.TracePath != "" {
		ops, err := sim.ParseTrace(e.fs, e.env.TracePath)
		if err != nil {
			return fmt.Errorf("parse trace: %w", err)
		}

		stats := runner.Replay(ops)
		e.log.Infof(
			"replayed %d ops: %d accesses, %d evictions, %d failed evictions, %d evictable left",
			len(ops),
			stats.Accesses,
			stats.Evictions,
			stats.FailedEvictions,
			e.r.Size(),
		)

		return nil
	}

	_, err := runner.Stress(
		ctx,
		e.env.StressWorkers,
		e.env.StressFramesPerWorker,
		e.env.StressRounds,
	)
	if err != nil {
		return fmt.Errorf("stress run: %w", err)
	}

	drained := runner.Drain()
	e.log.Infof("drained %d leftover evictable frames", drained)

	return nil
}

func (e *SimulatorEntrypoint) Close() error {
	if e.log != nil {
		return e.log.Sync()
	}

	return nil
}
