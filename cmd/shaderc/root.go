package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "shaderc",
	Short: "Shader tokenizer, formatter, and semantic analyser",
	Long:  "shaderc formats and semantically analyses the C-family shader source this project targets.",
}

// Execute runs the root command, printing any returned error to stderr and
// exiting non-zero, matching cmd/funxy's own error-reporting convention.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().String("config", "", "config file (default ./shaderc.toml)")
	rootCmd.PersistentFlags().Bool("cache", false, "consult the analysis cache before re-analysing")
	rootCmd.PersistentFlags().String("color", "auto", "colorize diagnostics: auto, always, never")
	viper.BindPFlag("cache_enable", rootCmd.PersistentFlags().Lookup("cache"))
	viper.BindPFlag("color", rootCmd.PersistentFlags().Lookup("color"))
}

func initConfig() {
	if cfgFile, _ := rootCmd.Flags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("shaderc")
		viper.SetConfigType("toml")
		viper.AddConfigPath(".")
	}
	viper.SetEnvPrefix("SHADERC")
	viper.AutomaticEnv()
	_ = viper.ReadInConfig()
}

// colorEnabled resolves the --color flag/config against the output stream:
// "auto" colors only when stdout is a real terminal, matching
// internal/evaluator/builtins_term.go's isatty.IsTerminal ||
// isatty.IsCygwinTerminal check.
func colorEnabled(mode string) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	default:
		return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}
}
