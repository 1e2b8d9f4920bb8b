package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/emma-community/emma-portal-proxy/internal/cli"
)

func main() {
	command := NewEmmaCtlCommand()
	if err := command.Execute(); err != nil {
		os.Exit(1)
	}
}

func NewEmmaCtlCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "emmactl [flags] [options]",
		Short: "emmactl talks to the emma portal proxy.",
		Run: func(cmd *cobra.Command, args []string) {
			_ = cmd.Help()
			os.Exit(1)
		},
	}
	cmd.AddCommand(cli.NewCmdGet())
	cmd.AddCommand(cli.NewCmdCreate())
	cmd.AddCommand(cli.NewCmdDelete())
	cmd.AddCommand(cli.NewCmdVersion())

	return cmd
}
