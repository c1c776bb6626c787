package cmd

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func Run() {
	zerolog.DefaultContextLogger = &log.Logger

	var command = &cobra.Command{
		Use:   "alfaaz",
		Short: "Alfaaz shayari backend",
		Run: func(cmd *cobra.Command, args []string) {
			cmd.HelpFunc()(cmd, args)
		},
	}

	command.AddCommand(serveCmd())
	command.AddCommand(mailerCmd())
	command.AddCommand(taskWorkerCmd())

	if err := command.Execute(); err != nil {
		log.Fatal().Msgf("failed to execute command, err: %v", err.Error())
	}
}
