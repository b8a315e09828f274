package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/shaderkit/shaderc/pkg/shaderkit"
)

var writeInPlace bool

var formatCmd = &cobra.Command{
	Use:   "format [file]",
	Short: "Tokenize and re-print shader source",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runFormat,
}

func init() {
	formatCmd.Flags().BoolVarP(&writeInPlace, "write", "w", false, "write the formatted output back to the file instead of stdout")
	rootCmd.AddCommand(formatCmd)
}

func runFormat(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) == 1 {
		path = args[0]
	}

	var src []byte
	var err error
	if path == "" {
		src, err = io.ReadAll(os.Stdin)
	} else {
		src, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("shaderc format: %w", err)
	}

	out := shaderkit.Format(string(src))

	if writeInPlace && path != "" {
		return os.WriteFile(path, []byte(out), 0o644)
	}
	fmt.Fprint(cmd.OutOrStdout(), out)
	return nil
}
