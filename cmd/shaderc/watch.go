package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/shaderkit/shaderc/internal/config"
	"github.com/shaderkit/shaderc/pkg/shaderkit"
)

var watchCmd = &cobra.Command{
	Use:   "watch <dir>",
	Short: "Re-run the formatter over changed shader files",
	Args:  cobra.ExactArgs(1),
	RunE:  runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

// runWatch watches dir for shader source changes and reformats each one in
// place, debounced the way internal/nebula.Watcher debounces phase-file
// edits: a per-file timestamp map drained by a ticker, rather than acting
// on every individual fsnotify event.
func runWatch(cmd *cobra.Command, args []string) error {
	dir := args[0]
	cfg := config.Load()
	debounce := time.Duration(cfg.WatchDebounceMS) * time.Millisecond
	if debounce <= 0 {
		debounce = 100 * time.Millisecond
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("shaderc watch: %w", err)
	}
	defer fw.Close()

	if err := fw.Add(dir); err != nil {
		return fmt.Errorf("shaderc watch: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "watching %s (debounce %s)\n", dir, debounce)

	pending := make(map[string]time.Time)
	ticker := time.NewTicker(debounce)
	defer ticker.Stop()

	for {
		select {
		case event, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if !isShaderFile(event.Name) {
				continue
			}
			if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) {
				pending[event.Name] = time.Now()
			}
		case <-ticker.C:
			now := time.Now()
			for file, t := range pending {
				if now.Sub(t) >= debounce {
					reformatFile(cmd, file)
					delete(pending, file)
				}
			}
		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "shaderc watch: %v\n", err)
		}
	}
}

func isShaderFile(name string) bool {
	return config.HasSourceExt(filepath.Base(name))
}

func reformatFile(cmd *cobra.Command, path string) {
	src, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "shaderc watch: read %s: %v\n", path, err)
		return
	}
	out := shaderkit.Format(string(src))
	if out == string(src) {
		return
	}
	if err := os.WriteFile(path, []byte(out), 0o644); err != nil {
		fmt.Fprintf(cmd.ErrOrStderr(), "shaderc watch: write %s: %v\n", path, err)
		return
	}
	fmt.Fprintf(cmd.OutOrStdout(), "reformatted %s\n", strings.TrimPrefix(path, "./"))
}
