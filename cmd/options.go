package cmd

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/dev-mohitbeniwal/listpane/config"
	"github.com/dev-mohitbeniwal/listpane/controls"
	"github.com/dev-mohitbeniwal/listpane/model"
)

const (
	webURLFlag          = "web-url"
	includeInternalFlag = "include-internal"
)

func newListsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lists",
		Short: "Print the dropdown options for the custom lists of a site",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			webURL, _ := cmd.Flags().GetString(webURLFlag)

			cfg := config.GetConfig()
			a, err := newApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.close()

			d, err := a.factory.NewListDropdown("list", controls.ListDropdownProperties{
				WebAbsoluteURL:   firstNonEmpty(webURL, cfg.SharePoint.WebURL),
				Label:            "List",
				CacheTimeoutSecs: a.cacheTimeoutSecs(),
			})
			if err != nil {
				return err
			}
			result := controls.LoadAll(cmd.Context(), d)[0]
			if result.Err != nil {
				return result.Err
			}
			return printJSON(cmd.OutOrStdout(), result.Options)
		},
	}
	cmd.Flags().String(webURLFlag, "", "absolute URL of the site (defaults to sharepoint.webUrl)")
	return cmd
}

func newColumnsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "columns <list title>...",
		Short: "Print the dropdown options for the columns of one or more lists",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			webURL, _ := cmd.Flags().GetString(webURLFlag)
			includeInternal, _ := cmd.Flags().GetBool(includeInternalFlag)

			cfg := config.GetConfig()
			a, err := newApp(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer a.close()

			loaders := make([]controls.OptionLoader, 0, len(args))
			for _, title := range args {
				d, err := a.factory.NewListColumnDropdown(title, controls.ListColumnDropdownProperties{
					WebAbsoluteURL:         firstNonEmpty(webURL, cfg.SharePoint.WebURL),
					ListTitle:              title,
					Label:                  title,
					IncludeInternalColumns: includeInternal,
					CacheTimeoutSecs:       a.cacheTimeoutSecs(),
				})
				if err != nil {
					return err
				}
				loaders = append(loaders, d)
			}

			options := make(map[string][]model.DropdownOption, len(args))
			for i, result := range controls.LoadAll(cmd.Context(), loaders...) {
				if result.Err != nil {
					return fmt.Errorf("%s: %w", args[i], result.Err)
				}
				options[args[i]] = result.Options
			}
			if len(args) == 1 {
				return printJSON(cmd.OutOrStdout(), options[args[0]])
			}
			return printJSON(cmd.OutOrStdout(), options)
		},
	}
	cmd.Flags().String(webURLFlag, "", "absolute URL of the site (defaults to sharepoint.webUrl)")
	cmd.Flags().Bool(includeInternalFlag, false, "include internal and system columns")
	return cmd
}

func printJSON(w io.Writer, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(out))
	return err
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
