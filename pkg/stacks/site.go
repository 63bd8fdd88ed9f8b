// Package stacks holds the CDK stacks that consume a validated infraconfig.Config.
package stacks

import (
	"strings"

	"github.com/theory-cloud/reactstarter/pkg/infraconfig"
	"github.com/theory-cloud/reactstarter/pkg/naming"
)

const (
	ComponentUI        = "ui"
	ComponentStorybook = "storybook"

	indexDocument = "index.html"
)

// SitePlan is the set of decisions a static site stack makes from its inputs, kept
// separate from the constructs so it can be inspected without a jsii runtime.
type SitePlan struct {
	StackName  string
	BucketName string
	AssetPath  string

	// Aliases and CertificateARN are set when the domain group allows a custom domain.
	Aliases        []string
	CertificateARN string

	// RecordName, HostedZoneID and HostedZoneName are set when a DNS record is created.
	RecordName     string
	HostedZoneID   string
	HostedZoneName string
}

func (p SitePlan) CustomDomain() bool { return len(p.Aliases) > 0 }

func (p SitePlan) DNSRecord() bool { return p.RecordName != "" }

// PlanSite derives the site plan for one deployable component.
func PlanSite(appName string, env infraconfig.Env, component, assetPath string, domain infraconfig.DomainConfig) SitePlan {
	plan := SitePlan{
		StackName:  naming.StackName(appName, component, string(env)),
		BucketName: naming.ResourceName(appName, component, "assets", string(env)),
		AssetPath:  strings.TrimSpace(assetPath),
	}

	if !domain.CustomDomain() {
		return plan
	}
	plan.Aliases = []string{strings.TrimSpace(domain.DomainName)}
	plan.CertificateARN = strings.TrimSpace(domain.CertificateARN)

	if !domain.DNSRecord() {
		return plan
	}
	plan.RecordName = strings.TrimSpace(domain.DomainName)
	plan.HostedZoneID = strings.TrimSpace(domain.HostedZoneID)
	plan.HostedZoneName = strings.TrimSpace(domain.HostedZoneName)
	return plan
}

// UIPlan plans the main web application site.
func UIPlan(cfg infraconfig.Config) SitePlan {
	return PlanSite(cfg.AppName, cfg.Env, ComponentUI, cfg.AssetPath, cfg.Domain)
}

// StorybookPlan plans the component catalogue site.
func StorybookPlan(cfg infraconfig.Config) SitePlan {
	return PlanSite(cfg.AppName, cfg.Env, ComponentStorybook, cfg.StorybookAssetPath, cfg.StorybookDomain)
}
