package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/mdtrans/internal"
	"codeberg.org/snonux/mdtrans/internal/cli"
	"codeberg.org/snonux/mdtrans/internal/models"
)

func main() {
	var (
		cfgFile  string
		provider string
	)

	rootCmd := &cobra.Command{
		Use:   "lsmodels",
		Short: "List the text generation models available to an API key",
		Long: `lsmodels queries the translation provider's model catalog with the
configured credential and prints identifier and display name for every
model supporting text generation.`,
		Args:    cobra.NoArgs,
		Version: internal.Version,
		RunE: func(cmd *cobra.Command, args []string) error {
			lister := models.NewLister(provider, cli.GetAPIKey(provider))
			return lister.ListAvailableModels(context.Background())
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.mdtrans.yaml)")
	rootCmd.Flags().StringVarP(&provider, "provider", "p", "openai", "Provider catalog to query (openai or gemini)")

	cobra.OnInitialize(func() {
		cli.InitConfig(cfgFile)
	})

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
