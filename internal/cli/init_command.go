package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/temirov/ctxtree/internal/config"
)

const (
	initUse              = "init"
	initShortDescription = "write a default configuration file"
	initLongDescription  = `Write the default ctxtree configuration.
Without flags the file is created as .ctxtree.yaml in the working directory; --global writes ~/.ctxtree/config.yaml instead.`
	globalFlagName        = "global"
	forceFlagName         = "force"
	globalFlagDescription = "write the user-wide configuration file"
	forceFlagDescription  = "overwrite an existing configuration file"
	initCompletedTemplate = "configuration written to %s\n"
)

func createInitCommand() *cobra.Command {
	var globalTarget bool
	var force bool

	initCommand := &cobra.Command{
		Use:   initUse,
		Short: initShortDescription,
		Long:  initLongDescription,
		Args:  cobra.NoArgs,
		RunE: func(command *cobra.Command, arguments []string) error {
			target := config.InitTargetLocal
			if globalTarget {
				target = config.InitTargetGlobal
			}
			writtenPath, initError := config.InitializeConfiguration(config.InitOptions{Target: target, Force: force})
			if initError != nil {
				return initError
			}
			_, printError := fmt.Fprintf(command.OutOrStdout(), initCompletedTemplate, writtenPath)
			return printError
		},
	}
	registerSwitchFlag(initCommand.Flags(), &globalTarget, globalFlagName, "", globalFlagDescription)
	registerSwitchFlag(initCommand.Flags(), &force, forceFlagName, "", forceFlagDescription)
	return initCommand
}
