// Command envcheck validates the infra or app configuration against the current
// environment and prints the result.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/theory-cloud/reactstarter/pkg/awsenv"
	"github.com/theory-cloud/reactstarter/pkg/envschema"
	"github.com/theory-cloud/reactstarter/pkg/infraconfig"
)

var version = "dev"

const (
	exitOK      = 0
	exitInvalid = 1
	exitFailure = 2
)

// deps are the process touchpoints, replaced in tests.
type deps struct {
	environ  func() map[string]string
	discover func(context.Context, awsenv.Options) (infraconfig.PlatformDefaults, error)
	// platform reads the CDK defaults from the process environment only, as cmd/infra
	// does; --env-file never supplies them.
	platform func() infraconfig.PlatformDefaults
	stdout   io.Writer
	stderr   io.Writer
}

func defaultDeps() deps {
	return deps{
		environ:  envschema.Environ,
		discover: awsenv.Discover,
		platform: infraconfig.PlatformDefaultsFromEnv,
		stdout:   os.Stdout,
		stderr:   os.Stderr,
	}
}

type sourceOptions struct {
	envFile string
	output  string
}

func (o *sourceOptions) bind(fs *pflag.FlagSet) {
	fs.StringVar(&o.envFile, "env-file", "", "dotenv file read before the process environment")
	fs.StringVarP(&o.output, "output", "o", formatYAML, "output format: yaml or json")
}

// load layers the optional dotenv file under the environment snapshot.
func (o *sourceOptions) load(d deps) (map[string]string, error) {
	fileEnv, err := envschema.ReadDotenv(o.envFile)
	if err != nil {
		return nil, err
	}
	return envschema.Layer(fileEnv, d.environ()), nil
}

func main() {
	os.Exit(execute(context.Background(), defaultDeps(), os.Args[1:]))
}

func execute(ctx context.Context, d deps, args []string) int {
	root := newRootCommand(d)
	root.SetArgs(args)
	root.SetOut(d.stdout)
	root.SetErr(d.stderr)

	err := root.ExecuteContext(ctx)
	if err == nil {
		return exitOK
	}

	if verr, ok := envschema.AsValidationError(err); ok {
		fmt.Fprintf(d.stderr, "envcheck: INVALID: %v\n", verr)
		for _, issue := range verr.Issues {
			fmt.Fprintf(d.stderr, "  - %s [%s]\n", issue, issue.Code)
		}
		return exitInvalid
	}
	fmt.Fprintf(d.stderr, "envcheck: FAIL: %v\n", err)
	return exitFailure
}

func newRootCommand(d deps) *cobra.Command {
	root := &cobra.Command{
		Use:     "envcheck",
		Version: version,
		Short:   "Validate react-starter configuration",
		Long: `envcheck validates configuration the same way the CDK app and the config API do.

Values come from the process environment, layered over --env-file when given.
CDK_DEFAULT_ACCOUNT and CDK_DEFAULT_REGION are read from the process environment only.

Examples:
  envcheck infra
  envcheck infra --env-file infra/.env --discover-aws
  envcheck app --output json`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(newInfraCommand(d))
	root.AddCommand(newAppCommand(d))
	return root
}

var errUnknownFormat = errors.New("unknown output format")
