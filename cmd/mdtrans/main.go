package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"codeberg.org/snonux/mdtrans/internal/cli"
	"codeberg.org/snonux/mdtrans/internal/glossary"
	"codeberg.org/snonux/mdtrans/internal/language"
	"codeberg.org/snonux/mdtrans/internal/processor"
	"codeberg.org/snonux/mdtrans/internal/translation"
)

func main() {
	// Create flags instance
	flags := cli.NewFlags()

	// Create root command
	rootCmd := cli.CreateRootCommand(flags)

	// Set up command initialization
	cobra.OnInitialize(func() {
		cli.InitConfig(flags.CfgFile)
	})

	// Set the run function
	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return runCommand(cmd, args, flags)
	}

	// Execute command
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func runCommand(cmd *cobra.Command, args []string, flags *cli.Flags) error {
	// Configuration errors are fatal before any file I/O happens.
	lang, err := language.Lookup(args[1])
	if err != nil {
		return err
	}

	ctx := context.Background()

	var provider translation.Provider
	switch flags.Provider {
	case "openai":
		provider, err = translation.NewOpenAIProvider(cli.GetAPIKey(flags.Provider), flags.Model)
	case "gemini":
		provider, err = translation.NewGeminiProvider(ctx, cli.GetAPIKey(flags.Provider), flags.Model)
	default:
		return fmt.Errorf("unsupported provider %q (openai or gemini)", flags.Provider)
	}
	if err != nil {
		return err
	}

	dictPath := flags.Dictionary
	if dictPath == "" {
		dictPath = "dictionary." + lang.Code + ".yaml"
	}
	gloss, err := glossary.Load(dictPath, flags.Forbidden)
	if err != nil {
		return err
	}

	translator := translation.New(provider, translation.NewCache(), lang, gloss, translation.Options{
		MaxAttempts: flags.MaxAttempts,
	})

	proc := processor.New(flags, lang, translator)
	return proc.Run(ctx, args[0])
}
