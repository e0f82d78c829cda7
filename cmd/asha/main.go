package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

var noColor bool

var rootCmd = &cobra.Command{
	Use:   "asha",
	Short: "GraminSeva telephone health advisory service",
	Long: `asha runs the GraminSeva voice advisory service: an IVR that answers
health and agriculture questions over ordinary phone calls, classifies
symptom severity, and refers critical cases to healthcare centers.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "disable colored output")

	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(stopCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(callCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(clearCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the asha version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("asha version %s\n", version)
	},
}
