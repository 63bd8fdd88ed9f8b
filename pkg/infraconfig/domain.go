package infraconfig

import (
	"strings"

	"github.com/theory-cloud/reactstarter/pkg/envschema"
)

// DomainConfig groups the four independently optional custom-domain keys.
//
// The schema does not require them together. Consumers decide per capability:
// CustomDomain gates the CDN alias and certificate, DNSRecord additionally gates the
// Route53 record.
type DomainConfig struct {
	DomainName     string `json:"domainName,omitempty" yaml:"domainName,omitempty"`
	CertificateARN string `json:"certificateArn,omitempty" yaml:"certificateArn,omitempty"`
	HostedZoneID   string `json:"hostedZoneId,omitempty" yaml:"hostedZoneId,omitempty"`
	HostedZoneName string `json:"hostedZoneName,omitempty" yaml:"hostedZoneName,omitempty"`
}

func (d DomainConfig) CustomDomain() bool {
	return present(d.DomainName) && present(d.CertificateARN)
}

func (d DomainConfig) DNSRecord() bool {
	return d.CustomDomain() && present(d.HostedZoneID) && present(d.HostedZoneName)
}

// Empty reports whether none of the four keys were supplied.
func (d DomainConfig) Empty() bool {
	return !present(d.DomainName) && !present(d.CertificateARN) && !present(d.HostedZoneID) && !present(d.HostedZoneName)
}

func present(s string) bool {
	return strings.TrimSpace(s) != ""
}

func domainFromValues(v envschema.Values, prefix string) DomainConfig {
	return DomainConfig{
		DomainName:     v.StringOr(prefix+KeyDomainName, ""),
		CertificateARN: v.StringOr(prefix+KeyCertificateARN, ""),
		HostedZoneID:   v.StringOr(prefix+KeyHostedZoneID, ""),
		HostedZoneName: v.StringOr(prefix+KeyHostedZoneName, ""),
	}
}
