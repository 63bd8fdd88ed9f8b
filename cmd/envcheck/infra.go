package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/theory-cloud/reactstarter/pkg/awsenv"
	"github.com/theory-cloud/reactstarter/pkg/infraconfig"
	"github.com/theory-cloud/reactstarter/pkg/stacks"
)

type infraReport struct {
	Schema      string                           `json:"schema" yaml:"schema"`
	Config      infraconfig.Config               `json:"config" yaml:"config"`
	Tags        infraconfig.TagSet               `json:"tags" yaml:"tags"`
	Environment *infraconfig.ResolvedEnvironment `json:"environment" yaml:"environment"`
	Stacks      []stackReport                    `json:"stacks" yaml:"stacks"`
}

type stackReport struct {
	Name         string `json:"name" yaml:"name"`
	AssetPath    string `json:"assetPath" yaml:"assetPath"`
	CustomDomain bool   `json:"customDomain" yaml:"customDomain"`
	DNSRecord    bool   `json:"dnsRecord" yaml:"dnsRecord"`
}

func newInfraCommand(d deps) *cobra.Command {
	var src sourceOptions
	var discover bool
	var profile string

	cmd := &cobra.Command{
		Use:   "infra",
		Short: "Validate the CDK app configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			raw, err := src.load(d)
			if err != nil {
				return err
			}
			cfg, err := infraconfig.Parse(raw)
			if err != nil {
				return err
			}

			defaults := d.platform()
			if discover {
				found, err := d.discover(cmd.Context(), awsenv.Options{Profile: profile})
				if err != nil {
					return fmt.Errorf("discover aws defaults: %w", err)
				}
				defaults = defaults.Merge(found)
			}

			return writeDocument(cmd.OutOrStdout(), src.output, buildInfraReport(cfg, defaults))
		},
	}

	src.bind(cmd.Flags())
	cmd.Flags().BoolVar(&discover, "discover-aws", false, "fill missing CDK defaults from the AWS config chain and STS")
	cmd.Flags().StringVar(&profile, "profile", "", "shared config profile used with --discover-aws")
	return cmd
}

func buildInfraReport(cfg infraconfig.Config, defaults infraconfig.PlatformDefaults) infraReport {
	report := infraReport{
		Schema: infraconfig.Schema.Name(),
		Config: cfg,
		Tags:   infraconfig.Tags(cfg),
	}
	if env, ok := infraconfig.ResolveEnvironment(cfg, defaults); ok {
		report.Environment = &env
	}
	for _, plan := range []stacks.SitePlan{stacks.UIPlan(cfg), stacks.StorybookPlan(cfg)} {
		report.Stacks = append(report.Stacks, stackReport{
			Name:         plan.StackName,
			AssetPath:    plan.AssetPath,
			CustomDomain: plan.CustomDomain(),
			DNSRecord:    plan.DNSRecord(),
		})
	}
	return report
}
