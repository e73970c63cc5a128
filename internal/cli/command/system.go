package command

import (
	"github.com/prometheus/common/expfmt"
	"github.com/urfave/cli/v2"

	"github.com/yndnr/llmops-go/internal/cli/config"
	"github.com/yndnr/llmops-go/internal/infra/buildinfo"
)

// VersionCommand returns the version command.
func VersionCommand() *cli.Command {
	return &cli.Command{
		Name:   "version",
		Usage:  "Show build information",
		Action: systemVersion,
	}
}

// MetricsCommand returns the metrics command.
func MetricsCommand() *cli.Command {
	return &cli.Command{
		Name:   "metrics",
		Usage:  "Print client request and session metrics of this process",
		Action: systemMetrics,
	}
}

func systemVersion(c *cli.Context) error {
	format, err := outputFormat(c, config.DefaultOutput)
	if err != nil {
		return err
	}
	return printTo(c.App.Writer, format, false, buildinfo.Get())
}

// systemMetrics writes the process registry in the Prometheus text format.
// Outside interactive mode the registry only holds this invocation.
func systemMetrics(c *cli.Context) error {
	rt, err := EnsureRuntime(c)
	if err != nil {
		return err
	}

	families, err := rt.Metrics.Gatherer().Gather()
	if err != nil {
		return err
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(rt.Stdout, mf); err != nil {
			return err
		}
	}
	return nil
}
