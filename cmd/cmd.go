package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/dev-mohitbeniwal/listpane/config"
	logger "github.com/dev-mohitbeniwal/listpane/logging"
)

const configFlag = "config"

// Execute runs the root command. It is called by main.main().
func Execute() {
	if err := New().Execute(); err != nil {
		os.Exit(1)
	}
}

func New() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "listpane [sub-command]",
		Short: "SharePoint list and column options for property pane dropdowns",
		Long: `listpane serves the titles of the custom lists of a SharePoint site and the
  columns of a list, cached and de-duplicated, either over HTTP or one-off
  from the command line.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			path, err := cmd.Flags().GetString(configFlag)
			if err != nil {
				return err
			}
			if err := config.InitConfig(path); err != nil {
				return err
			}
			cfg := config.GetConfig()
			return logger.InitLogger(cfg.Log.Dir, cfg.Log.Level)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
		DisableAutoGenTag: true,
		SilenceUsage:      true,
	}

	cmd.PersistentFlags().String(configFlag, "config", "directory holding config.yaml")
	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newListsCmd())
	cmd.AddCommand(newColumnsCmd())
	return cmd
}
