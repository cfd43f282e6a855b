package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	httpcmd "github.com/gbmsdev99/xclinic/cmd/http"
	systemcmd "github.com/gbmsdev99/xclinic/cmd/system"
)

var (
	cfgFile string
)

var rootCmd = &cobra.Command{
	Use:   "xclinic",
	Short: "Clinic front-desk backend: walk-in booking, live queue and records.",
	Long: `XClinic is the backend for a single-doctor clinic front desk.
Patients book a visit without an account and get a daily queue token with a
QR code; staff manage arrivals, consultations, payments and prescriptions.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global config flag, available for all commands.
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")

	// Attach top-level command trees.
	rootCmd.AddCommand(systemcmd.NewSystemCommand())
	rootCmd.AddCommand(httpcmd.NewHTTPCommand())
}
