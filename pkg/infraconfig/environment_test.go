package infraconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestResolveEnvironment(t *testing.T) {
	tests := []struct {
		name     string
		cfg      Config
		defaults PlatformDefaults
		want     ResolvedEnvironment
		ok       bool
	}{
		{
			name:     "explicit wins",
			cfg:      Config{Account: "123456789012", Region: "us-west-2"},
			defaults: PlatformDefaults{Account: "111111111111", Region: "us-east-1"},
			want:     ResolvedEnvironment{Account: "123456789012", Region: "us-west-2"},
			ok:       true,
		},
		{
			name:     "platform fallback",
			defaults: PlatformDefaults{Account: "987654321098", Region: "eu-west-1"},
			want:     ResolvedEnvironment{Account: "987654321098", Region: "eu-west-1"},
			ok:       true,
		},
		{
			name:     "mixed sources",
			cfg:      Config{Account: "123456789012"},
			defaults: PlatformDefaults{Region: "eu-west-1"},
			want:     ResolvedEnvironment{Account: "123456789012", Region: "eu-west-1"},
			ok:       true,
		},
		{
			name: "nothing set",
		},
		{
			name:     "account only",
			cfg:      Config{Account: "123456789012"},
			defaults: PlatformDefaults{Account: "111111111111"},
		},
		{
			name:     "region only",
			defaults: PlatformDefaults{Region: "us-east-1"},
		},
		{
			name:     "blank explicit value falls back",
			cfg:      Config{Account: "  ", Region: "us-west-2"},
			defaults: PlatformDefaults{Account: "111111111111"},
			want:     ResolvedEnvironment{Account: "111111111111", Region: "us-west-2"},
			ok:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ResolveEnvironment(tt.cfg, tt.defaults)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProperty_ResolveEnvironmentIsAllOrNothing(t *testing.T) {
	maybe := rapid.SampledFrom([]string{"", "123456789012", "111111111111", "us-east-1", "eu-west-1"})
	rapid.Check(t, func(t *rapid.T) {
		cfg := Config{Account: maybe.Draw(t, "account"), Region: maybe.Draw(t, "region")}
		defaults := PlatformDefaults{Account: maybe.Draw(t, "defaultAccount"), Region: maybe.Draw(t, "defaultRegion")}

		got, ok := ResolveEnvironment(cfg, defaults)
		if !ok {
			if got != (ResolvedEnvironment{}) {
				t.Fatalf("expected empty result when unresolved, got %#v", got)
			}
			if (cfg.Account != "" || defaults.Account != "") && (cfg.Region != "" || defaults.Region != "") {
				t.Fatalf("expected resolution for %#v / %#v", cfg, defaults)
			}
			return
		}
		if cfg.Account != "" && got.Account != cfg.Account {
			t.Fatalf("explicit account lost: %#v", got)
		}
		if cfg.Region != "" && got.Region != cfg.Region {
			t.Fatalf("explicit region lost: %#v", got)
		}
		if got.Account == "" || got.Region == "" {
			t.Fatalf("half pair returned: %#v", got)
		}
	})
}

func TestPlatformDefaultsFromEnv(t *testing.T) {
	t.Setenv(EnvCDKDefaultAccount, " 111111111111 ")
	t.Setenv(EnvCDKDefaultRegion, "")

	d := PlatformDefaultsFromEnv()
	assert.Equal(t, PlatformDefaults{Account: "111111111111"}, d)

	merged := d.Merge(PlatformDefaults{Account: "222222222222", Region: "us-east-2"})
	assert.Equal(t, PlatformDefaults{Account: "111111111111", Region: "us-east-2"}, merged)
}
