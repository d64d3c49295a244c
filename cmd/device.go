package cmd

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/raidrisk/raidrisk/array"
	"github.com/raidrisk/raidrisk/device"
	_ "github.com/raidrisk/raidrisk/device/sysfs" // registers the platform device querier
	"github.com/raidrisk/raidrisk/report"
)

var reportFormat string // SMART report output format

// runOperation loads the configuration and dispatches the operation built
// from it against the platform devices.
func runOperation(cmd *cobra.Command, build func(cfg *Config) array.Operation) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		logrus.Fatalf("Failed to load config: %v", err)
	}
	op := build(cfg)

	s := array.Session{
		Array:   cfg.Array(),
		Querier: device.NewPlatformQuerier(device.Options{Smartctl: cfg.Smartctl}),
		Out:     cmd.OutOrStdout(),
		Err:     cmd.ErrOrStderr(),
	}
	if err := array.Run(cmd.Context(), s, op); err != nil {
		logrus.Fatalf("%s failed: %v", cmd.Name(), err)
	}
}

var upCmd = &cobra.Command{
	Use:   "up",
	Short: "Spin up all array disks",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runOperation(cmd, func(*Config) array.Operation { return array.SpinUp{} })
	},
}

var downCmd = &cobra.Command{
	Use:   "down",
	Short: "Spin down all array disks",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runOperation(cmd, func(*Config) array.Operation { return array.SpinDown{} })
	},
}

var devicesCmd = &cobra.Command{
	Use:   "devices",
	Short: "List the devices backing each array member",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		runOperation(cmd, func(*Config) array.Operation { return array.ListTopology{} })
	},
}

var smartCmd = &cobra.Command{
	Use:   "smart",
	Short: "Report SMART health, failure probabilities and data loss risk",
	Long: `Reads SMART attributes of every array device and estimates the annual
failure probability of each disk and the probability of unrecoverable data
loss for each parity level and scrub interval.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		format, err := report.ParseFormat(reportFormat)
		if err != nil {
			logrus.Fatalf("Invalid --format: %v", err)
		}
		runOperation(cmd, func(cfg *Config) array.Operation {
			return array.SmartReport{Format: format, Title: cfg.Title}
		})
	},
}

func init() {
	smartCmd.Flags().StringVar(&reportFormat, "format", "text", "Output format (text, prom)")

	rootCmd.AddCommand(upCmd, downCmd, devicesCmd, smartCmd)
}
