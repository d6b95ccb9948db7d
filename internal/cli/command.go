package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"codeberg.org/snonux/mdtrans/internal"
	"codeberg.org/snonux/mdtrans/internal/language"
)

// CreateRootCommand creates and configures the root cobra command
func CreateRootCommand(flags *Flags) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "mdtrans <input-path> <language-code>",
		Short: "Markdown/MDX documentation translator",
		Long: `mdtrans translates Markdown and MDX documentation files with an LLM.

It parses each document into a tree, translates prose text, allow-listed
component attributes and front-matter fields, repairs formatting
artifacts, and writes the result next to the input as <name>.<lang>.<ext>.

Supported language codes: ` + strings.Join(language.Codes(), ", ") + `

Examples:
  mdtrans docs/guide.md ja                # translate one file to Japanese
  mdtrans docs/ fr                        # translate a whole directory
  mdtrans --provider gemini README.md de  # use the Gemini API instead`,
		Args:    cobra.ExactArgs(2),
		Version: internal.Version,
	}

	setupFlags(rootCmd, flags)

	return rootCmd
}

func setupFlags(cmd *cobra.Command, flags *Flags) {
	// Global flags
	cmd.PersistentFlags().StringVar(&flags.CfgFile, "config", "", "config file (default is $HOME/.mdtrans.yaml)")

	// Local flags
	cmd.Flags().StringVarP(&flags.Provider, "provider", "p", flags.Provider, "Translation provider (openai or gemini)")
	cmd.Flags().StringVarP(&flags.Model, "model", "m", "", "Model identifier (default depends on provider)")
	cmd.Flags().StringVar(&flags.Dictionary, "dictionary", "", "Per-language term dictionary YAML (default dictionary.<lang>.yaml)")
	cmd.Flags().StringVar(&flags.Forbidden, "forbidden", "forbidden.yaml", "Forbidden-term list YAML")
	cmd.Flags().IntVar(&flags.Concurrency, "concurrency", flags.Concurrency, "Maximum in-flight translation requests")
	cmd.Flags().DurationVar(&flags.Stagger, "stagger", flags.Stagger, "Delay between consecutive request starts")
	cmd.Flags().IntVar(&flags.MaxAttempts, "max-attempts", flags.MaxAttempts, "Attempts per fragment before keeping the original")
	cmd.Flags().BoolVar(&flags.NoProgress, "no-progress", false, "Disable the live progress bar")

	// Bind flags to viper
	bindFlagsToViper(cmd)
}

func bindFlagsToViper(cmd *cobra.Command) {
	viper.BindPFlag("translate.provider", cmd.Flags().Lookup("provider"))
	viper.BindPFlag("translate.model", cmd.Flags().Lookup("model"))
	viper.BindPFlag("translate.concurrency", cmd.Flags().Lookup("concurrency"))
	viper.BindPFlag("translate.stagger", cmd.Flags().Lookup("stagger"))
	viper.BindPFlag("translate.max_attempts", cmd.Flags().Lookup("max-attempts"))
	viper.BindPFlag("glossary.dictionary", cmd.Flags().Lookup("dictionary"))
	viper.BindPFlag("glossary.forbidden", cmd.Flags().Lookup("forbidden"))
}

// InitConfig initializes viper configuration
func InitConfig(cfgFile string) {
	if cfgFile != "" {
		// Use config file from the flag
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error getting home directory: %v\n", err)
			return
		}

		// Search config in home directory with name ".mdtrans" (without extension)
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".mdtrans")
	}

	// Environment variables
	viper.SetEnvPrefix("MDTRANS")
	viper.AutomaticEnv()

	// Read config file
	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// GetAPIKey retrieves the credential for a provider from the environment
// or the config file.
func GetAPIKey(provider string) string {
	switch provider {
	case "gemini":
		if key := os.Getenv("GEMINI_API_KEY"); key != "" {
			return key
		}
		return viper.GetString("gemini.api_key")
	default:
		if key := os.Getenv("OPENAI_API_KEY"); key != "" {
			return key
		}
		return viper.GetString("openai.api_key")
	}
}
