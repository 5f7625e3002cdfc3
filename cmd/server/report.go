package main

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/AngelCh415/campaign-dash/internal/analytics"
	"github.com/AngelCh415/campaign-dash/internal/config"
	"github.com/AngelCh415/campaign-dash/internal/present"
)

func reportCmd(cfg *config.Config) *cobra.Command {
	var campaigns []string
	var none bool
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Print the dashboard view for a campaign selection as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			a := newApp(*cfg)
			var sel *analytics.Selection
			if none || len(campaigns) > 0 {
				s := analytics.NewSelection(campaigns...)
				sel = &s
			}
			dash, err := a.svc.Dashboard(cmd.Context(), sel)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(present.Build(dash))
		},
	}
	cmd.Flags().StringArrayVar(&campaigns, "campaign", nil, "campaign to include (repeatable); default is every campaign")
	cmd.Flags().BoolVar(&none, "none", false, "select no campaign")
	return cmd
}
