package stacks

import (
	"github.com/aws/aws-cdk-go/awscdk/v2"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscertificatemanager"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscloudfront"
	"github.com/aws/aws-cdk-go/awscdk/v2/awscloudfrontorigins"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsroute53"
	"github.com/aws/aws-cdk-go/awscdk/v2/awsroute53targets"
	"github.com/aws/aws-cdk-go/awscdk/v2/awss3"
	"github.com/aws/aws-cdk-go/awscdk/v2/awss3deployment"
	"github.com/aws/constructs-go/constructs/v10"
	"github.com/aws/jsii-runtime-go"
)

type StaticSiteStackProps struct {
	awscdk.StackProps
	Plan SitePlan
}

// NewStaticSiteStack provisions a private bucket served through CloudFront, uploads
// the built assets, and attaches the custom domain when the plan allows it.
func NewStaticSiteStack(scope constructs.Construct, id string, props *StaticSiteStackProps) awscdk.Stack {
	var sprops awscdk.StackProps
	var plan SitePlan
	if props != nil {
		sprops = props.StackProps
		plan = props.Plan
	}
	if sprops.StackName == nil && plan.StackName != "" {
		sprops.StackName = jsii.String(plan.StackName)
	}
	stack := awscdk.NewStack(scope, jsii.String(id), &sprops)

	bucket := awss3.NewBucket(stack, jsii.String("SiteBucket"), &awss3.BucketProps{
		BlockPublicAccess: awss3.BlockPublicAccess_BLOCK_ALL(),
		Encryption:        awss3.BucketEncryption_S3_MANAGED,
		EnforceSSL:        jsii.Bool(true),
		RemovalPolicy:     awscdk.RemovalPolicy_DESTROY,
		AutoDeleteObjects: jsii.Bool(true),
	})

	distProps := &awscloudfront.DistributionProps{
		Comment: jsii.String(plan.StackName),
		DefaultBehavior: &awscloudfront.BehaviorOptions{
			Origin:               awscloudfrontorigins.S3BucketOrigin_WithOriginAccessControl(bucket, nil),
			ViewerProtocolPolicy: awscloudfront.ViewerProtocolPolicy_REDIRECT_TO_HTTPS,
			CachePolicy:          awscloudfront.CachePolicy_CACHING_OPTIMIZED(),
			Compress:             jsii.Bool(true),
		},
		DefaultRootObject:      jsii.String(indexDocument),
		ErrorResponses:         spaErrorResponses(),
		MinimumProtocolVersion: awscloudfront.SecurityPolicyProtocol_TLS_V1_2_2021,
	}
	if plan.CustomDomain() {
		distProps.DomainNames = jsii.Strings(plan.Aliases...)
		distProps.Certificate = awscertificatemanager.Certificate_FromCertificateArn(
			stack, jsii.String("SiteCertificate"), jsii.String(plan.CertificateARN),
		)
	}
	distribution := awscloudfront.NewDistribution(stack, jsii.String("SiteDistribution"), distProps)

	if plan.AssetPath != "" {
		awss3deployment.NewBucketDeployment(stack, jsii.String("SiteDeployment"), &awss3deployment.BucketDeploymentProps{
			Sources:           &[]awss3deployment.ISource{awss3deployment.Source_Asset(jsii.String(plan.AssetPath), nil)},
			DestinationBucket: bucket,
			Distribution:      distribution,
			DistributionPaths: jsii.Strings("/*"),
		})
	}

	if plan.DNSRecord() {
		zone := awsroute53.HostedZone_FromHostedZoneAttributes(stack, jsii.String("SiteZone"), &awsroute53.HostedZoneAttributes{
			HostedZoneId: jsii.String(plan.HostedZoneID),
			ZoneName:     jsii.String(plan.HostedZoneName),
		})
		awsroute53.NewARecord(stack, jsii.String("SiteAliasRecord"), &awsroute53.ARecordProps{
			Zone:       zone,
			RecordName: jsii.String(plan.RecordName),
			Target:     awsroute53.RecordTarget_FromAlias(awsroute53targets.NewCloudFrontTarget(distribution)),
		})
	}

	awscdk.NewCfnOutput(stack, jsii.String("BucketName"), &awscdk.CfnOutputProps{Value: bucket.BucketName()})
	awscdk.NewCfnOutput(stack, jsii.String("DistributionId"), &awscdk.CfnOutputProps{Value: distribution.DistributionId()})
	awscdk.NewCfnOutput(stack, jsii.String("DistributionDomainName"), &awscdk.CfnOutputProps{Value: distribution.DistributionDomainName()})
	if plan.CustomDomain() {
		awscdk.NewCfnOutput(stack, jsii.String("SiteUrl"), &awscdk.CfnOutputProps{Value: jsii.String("https://" + plan.Aliases[0])})
	}

	return stack
}

// Client-side routes are resolved by the SPA, so missing objects serve the index.
func spaErrorResponses() *[]*awscloudfront.ErrorResponse {
	out := make([]*awscloudfront.ErrorResponse, 0, 2)
	for _, status := range []float64{403, 404} {
		out = append(out, &awscloudfront.ErrorResponse{
			HttpStatus:         jsii.Number(status),
			ResponseHttpStatus: jsii.Number(200),
			ResponsePagePath:   jsii.String("/" + indexDocument),
			Ttl:                awscdk.Duration_Seconds(jsii.Number(0)),
		})
	}
	return &out
}
