package app

import (
	"github.com/spf13/cobra"

	srcapp "github.com/Blackdeer1524/FrameCache/src/app"
)

func initStart() {
	rootCmd.AddCommand(&cobra.Command{
		Use:   "start",
		Short: "Replays a workload against the configured replacer",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return srcapp.Run(cmd.Context(), &srcapp.SimulatorEntrypoint{
				ConfigPath: rootCmd.Options.ConfigPath,
			})
		},
	})
}
