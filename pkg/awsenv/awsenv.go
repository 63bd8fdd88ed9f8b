// Package awsenv discovers platform default account/region through the AWS SDK
// credential and config chain.
package awsenv

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/theory-cloud/reactstarter/pkg/infraconfig"
)

type callerIdentityAPI interface {
	GetCallerIdentity(
		ctx context.Context,
		params *sts.GetCallerIdentityInput,
		optFns ...func(*sts.Options),
	) (*sts.GetCallerIdentityOutput, error)
}

type Options struct {
	// Profile selects a shared config profile. Empty uses the default chain.
	Profile string
	// Region overrides the region from the shared config chain.
	Region string
}

// Discover loads the default AWS config and asks STS which account the credentials
// belong to.
func Discover(ctx context.Context, opts Options) (infraconfig.PlatformDefaults, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	var loadOpts []func(*awsconfig.LoadOptions) error
	if p := strings.TrimSpace(opts.Profile); p != "" {
		loadOpts = append(loadOpts, awsconfig.WithSharedConfigProfile(p))
	}
	if r := strings.TrimSpace(opts.Region); r != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(r))
	}

	cfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return infraconfig.PlatformDefaults{}, fmt.Errorf("awsenv: load aws config: %w", err)
	}
	return discoverWith(ctx, cfg, sts.NewFromConfig(cfg))
}

func discoverWith(ctx context.Context, cfg aws.Config, client callerIdentityAPI) (infraconfig.PlatformDefaults, error) {
	if client == nil {
		return infraconfig.PlatformDefaults{}, errors.New("awsenv: sts client is nil")
	}

	out, err := client.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return infraconfig.PlatformDefaults{}, fmt.Errorf("awsenv: get caller identity: %w", err)
	}

	return infraconfig.PlatformDefaults{
		Account: strings.TrimSpace(aws.ToString(out.Account)),
		Region:  strings.TrimSpace(cfg.Region),
	}, nil
}
