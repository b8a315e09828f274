package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/shaderkit/shaderc/internal/cache"
	"github.com/shaderkit/shaderc/internal/config"
	"github.com/shaderkit/shaderc/internal/diagnostics"
	"github.com/shaderkit/shaderc/internal/runid"
	"github.com/shaderkit/shaderc/internal/shader/ast"
	"github.com/shaderkit/shaderc/internal/shader/astjson"
	"github.com/shaderkit/shaderc/pkg/shaderkit"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Run semantic analysis over a shader AST (JSON)",
	Long: "analyze reads a JSON-encoded shader AST (see internal/shader/astjson) and\n" +
		"reports the first diagnostic found, or a dependency summary on success.",
	Args: cobra.MaximumNArgs(1),
	RunE: runAnalyze,
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg := config.Load()
	id := runid.New()

	path := ""
	if len(args) == 1 {
		path = args[0]
	}
	var raw []byte
	var err error
	if path == "" {
		raw, err = io.ReadAll(os.Stdin)
	} else {
		raw, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("shaderc analyze: %w", err)
	}

	props, err := inputProps(cfg)
	if err != nil {
		return err
	}

	start := time.Now()
	result, diag, err := analyzeOnce(cmd.Context(), cfg, string(raw), props)
	if err != nil {
		return fmt.Errorf("shaderc analyze [%s]: %w", id, err)
	}
	elapsed := time.Since(start)

	if diag != nil {
		printDiagnostic(cmd.OutOrStdout(), cfg, diag)
		return fmt.Errorf("analysis failed")
	}

	fnCount := int64(len(result.Shader.FnDecls()))
	fmt.Fprintf(cmd.OutOrStdout(), "1 shader, %s functions, %s\n",
		humanize.Comma(fnCount), elapsed.Round(time.Microsecond))
	return nil
}

func inputProps(cfg config.Config) ([]shaderkit.PropDef, error) {
	props := make([]shaderkit.PropDef, 0, len(cfg.InputProps))
	for _, p := range cfg.InputProps {
		ty, ok := astjson.ParseTyName(p.Type)
		if !ok {
			return nil, fmt.Errorf("shaderc analyze: input prop %q: unknown type %q", p.Name, p.Type)
		}
		props = append(props, shaderkit.PropDef{Ident: p.Name, Ty: ty})
	}
	return props, nil
}

// analyzeOnce runs (or replays from cache) a single analysis pass,
// returning the result and the first diagnostic (if analysis failed) as
// data rather than an error, since a diagnostic is an expected outcome and
// not a tool failure.
func analyzeOnce(ctx context.Context, cfg config.Config, src string, props []shaderkit.PropDef) (*shaderkit.Result, *diagnostics.Error, error) {
	var c *cache.Cache
	var key cache.Key
	var cached *cache.Entry
	if cfg.CacheEnable {
		var err error
		c, err = cache.Open(ctx, cfg.CacheDir+"/analysis.db")
		if err != nil {
			return nil, nil, err
		}
		defer c.Close()

		key = cache.NewKey(src, propSig(props))
		if entry, ok, err := c.Get(ctx, key); err != nil {
			return nil, nil, err
		} else if ok {
			cached = &entry
		}
	}

	interner := ast.NewInterner()
	shader, err := astjson.Decode(interner, []byte(src))
	if err != nil {
		return nil, nil, err
	}

	if cached != nil {
		shader.ConstTable = cached.Const
		return &shaderkit.Result{Shader: shader}, cached.Diag, nil
	}

	result, analyzeErr := shaderkit.Analyze(shader, interner, props, cfg.GatherAll)
	var diagErr *diagnostics.Error
	if analyzeErr != nil {
		var ok bool
		diagErr, ok = analyzeErr.(*diagnostics.Error)
		if !ok {
			return nil, nil, analyzeErr
		}
		result = &shaderkit.Result{Shader: shader}
	}

	if c != nil {
		entry := cache.Entry{Diag: diagErr}
		if result != nil {
			entry.Const = result.Shader.ConstTable
		}
		if err := c.Put(ctx, key, entry); err != nil {
			return nil, nil, err
		}
	}
	return result, diagErr, nil
}

func propSig(props []shaderkit.PropDef) string {
	sig := ""
	for _, p := range props {
		sig += p.Ident + ":" + p.Ty.String() + ","
	}
	return sig
}

func printDiagnostic(w io.Writer, cfg config.Config, d *diagnostics.Error) {
	if colorEnabled(cfg.Color) {
		fmt.Fprintf(w, "\x1b[31merror\x1b[0m[%d:%d]: %s\n", d.Span.Line+1, d.Span.Col+1, d.Message)
		return
	}
	fmt.Fprintf(w, "error[%d:%d]: %s\n", d.Span.Line+1, d.Span.Col+1, d.Message)
}
