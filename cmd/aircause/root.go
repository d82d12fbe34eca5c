package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"aircause/backend/pkg/cli"
)

// configEnvVar names the environment variable holding the default config path.
const configEnvVar = "AIRCAUSE_CONFIG"

var (
	// Global flags
	cfgFile string
)

var rootCmd = &cobra.Command{
	Use:   "aircause",
	Short: "AirCause AI - Delhi air quality chat backend",
	Long: `AirCause AI answers questions about Delhi air quality.

The backend accepts a question and optional district data on POST /api/chat,
builds a prompt, and forwards it to the Groq chat-completions API.

Configuration is read from an optional YAML file, a .env file in the working
directory, and environment variables such as PORT and GROQ_API_KEY.

Running aircause without a subcommand starts the server.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServer,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.ExitCode(err))
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", defaultConfigPath(), "config file path (env "+configEnvVar+")")
	addRunFlags(rootCmd)
}

func defaultConfigPath() string {
	if p := os.Getenv(configEnvVar); p != "" {
		return p
	}
	return "config.yaml"
}
