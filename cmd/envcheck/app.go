package main

import (
	"github.com/spf13/cobra"

	"github.com/theory-cloud/reactstarter/pkg/appconfig"
)

type appReport struct {
	Schema  string                 `json:"schema" yaml:"schema"`
	Config  appconfig.Config       `json:"config" yaml:"config"`
	Public  appconfig.PublicConfig `json:"public" yaml:"public"`
	Version string                 `json:"version" yaml:"version"`
}

func newAppCommand(d deps) *cobra.Command {
	var src sourceOptions

	cmd := &cobra.Command{
		Use:   "app",
		Short: "Validate the application runtime configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			raw, err := src.load(d)
			if err != nil {
				return err
			}
			cfg, err := appconfig.Parse(raw)
			if err != nil {
				return err
			}
			return writeDocument(cmd.OutOrStdout(), src.output, appReport{
				Schema:  appconfig.Schema.Name(),
				Config:  cfg,
				Public:  cfg.Public(),
				Version: cfg.Version(),
			})
		},
	}

	src.bind(cmd.Flags())
	return cmd
}
