package app

import (
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/Blackdeer1524/FrameCache/src/replacer"
)

const (
	EnvDev  = "dev"
	EnvProd = "prod"
)

type envVars struct {
	Environment string `split_words:"true"`

	Algorithm    string `default:"lruk"`
	HistoryDepth uint64 `default:"2" split_words:"true"`
	NumFrames    uint64 `default:"1024" split_words:"true"`

	TracePath string `split_words:"true"`

	StressWorkers         int    `default:"8" split_words:"true"`
	StressRounds          int    `default:"64" split_words:"true"`
	StressFramesPerWorker uint64 `default:"32" split_words:"true"`
}

func mustLoadEnv(configPath string) envVars {
	var env envVars

	if configPath != "" {
		err := godotenv.Load(configPath)
		if err != nil {
			panic(err)
		}
	}

	envconfig.MustProcess("FRAMECACHE", &env)

	if env.Environment != "" && env.Environment != EnvDev && env.Environment != EnvProd {
		panic("invalid environment")
	} else if env.Environment == "" {
		env.Environment = EnvDev
	}

	if env.Algorithm != replacer.AlgorithmLRUK && env.Algorithm != replacer.AlgorithmLRU {
		panic("invalid algorithm, must be lruk or lru")
	}

	if env.HistoryDepth < 1 {
		panic("invalid history depth, must be at least 1")
	}

	if env.NumFrames < 1 {
		panic("invalid frame count, must be at least 1")
	}

	if env.StressWorkers < 1 || env.StressRounds < 1 || env.StressFramesPerWorker < 1 {
		panic("invalid stress parameters, must all be at least 1")
	}

	if uint64(env.StressWorkers)*env.StressFramesPerWorker > env.NumFrames {
		panic("stress workers would touch frames beyond the configured frame count")
	}

	return env
}
