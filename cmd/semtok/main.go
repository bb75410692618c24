package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dhruvd-1/semtok/internal/server"
	"github.com/dhruvd-1/semtok/pkg/archive"
	"github.com/dhruvd-1/semtok/pkg/codec"
	"github.com/dhruvd-1/semtok/pkg/config"
	"github.com/dhruvd-1/semtok/pkg/evaluate"
	"github.com/dhruvd-1/semtok/pkg/generator"
	jsonx "github.com/dhruvd-1/semtok/pkg/json"
	"github.com/dhruvd-1/semtok/pkg/logger"
	"github.com/dhruvd-1/semtok/pkg/ontology"
	"github.com/dhruvd-1/semtok/pkg/storage"
)

var version = "1.0.0"

type appFlags struct {
	configFile   string
	logLevel     string
	ontologyFile string
	class        string
	archiveCodec string
	noDictionary bool
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	flags := &appFlags{}

	root := &cobra.Command{
		Use:   "semtok",
		Short: "Ontology-guided batch compression for LLM token budgets",
		Long: `semtok compresses batches of JSON records into a compact columnar form
using an ontology to shorten property names, normalize values, and factor
out repeated prefixes, email domains, and strings.`,
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&flags.configFile, "config", "", "path to YAML config file")
	root.PersistentFlags().StringVar(&flags.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&flags.ontologyFile, "ontology", "", "path to ontology snapshot (default: bundled ontology)")

	root.AddCommand(versionCmd())
	root.AddCommand(classesCmd(flags))
	root.AddCommand(compressCmd(flags))
	root.AddCommand(decompressCmd(flags))
	root.AddCommand(evaluateCmd(flags))
	root.AddCommand(generateCmd(flags))
	root.AddCommand(serveCmd(flags))

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func setup(flags *appFlags) (*config.Config, *ontology.Ontology, *codec.Codec, error) {
	cfg := config.DefaultConfig()
	if flags.configFile != "" {
		loaded, err := config.Load(flags.configFile)
		if err != nil {
			return nil, nil, nil, err
		}
		cfg = loaded
	}
	if flags.logLevel != "" {
		cfg.Logging.Level = flags.logLevel
	}
	if flags.archiveCodec != "" {
		cfg.Codec.Archive = flags.archiveCodec
	}
	if flags.noDictionary {
		cfg.Codec.UseDictionary = false
	}

	if err := logger.Init(logger.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
		Encoding:    cfg.Logging.Encoding,
	}); err != nil {
		return nil, nil, nil, err
	}

	ontologyPath := flags.ontologyFile
	if ontologyPath == "" {
		ontologyPath = cfg.Ontology.Path
	}

	ont := ontology.Default()
	if ontologyPath != "" {
		loaded, err := ontology.LoadFile(ontologyPath)
		if err != nil {
			return nil, nil, nil, err
		}
		ont = loaded
	}

	return cfg, ont, codec.New(ont), nil
}

func readRecords(path string) ([]codec.Record, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: operator-supplied path
	if err != nil {
		return nil, err
	}
	var records []codec.Record
	if err := jsonx.Unmarshal(data, &records); err != nil {
		return nil, err
	}
	return records, nil
}

func writeOutput(path string, data []byte, codecName string) error {
	if path == "" || path == "-" {
		_, err := os.Stdout.Write(append(data, '\n'))
		return err
	}
	parsed, err := archive.ParseCodec(codecName)
	if err != nil {
		return err
	}
	return archive.WriteFile(path, data, parsed)
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("semtok v%s\n", version)
			fmt.Printf("Go version: %s\n", runtime.Version())
			fmt.Printf("OS/Arch: %s/%s\n", runtime.GOOS, runtime.GOARCH)
		},
	}
}

func classesCmd(flags *appFlags) *cobra.Command {
	return &cobra.Command{
		Use:   "classes",
		Short: "List ontology classes and their properties",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, ont, _, err := setup(flags)
			if err != nil {
				return err
			}
			for _, name := range ont.ClassNames() {
				props := ont.PropertiesForClass(name, true)
				fmt.Printf("%s (%d properties)\n", name, len(props))
				for _, p := range props {
					fmt.Printf("  - %s\n", p)
				}
			}
			return nil
		},
	}
}

func compressCmd(flags *appFlags) *cobra.Command {
	var input, output string

	cmd := &cobra.Command{
		Use:   "compress",
		Short: "Compress a JSON record batch into an envelope",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, c, err := setup(flags)
			if err != nil {
				return err
			}
			records, err := readRecords(input)
			if err != nil {
				return err
			}

			env := c.CompressBatch(records, flags.class, cfg.Codec.UseDictionary)
			data, err := jsonx.Marshal(env)
			if err != nil {
				return err
			}

			logger.Info("batch compressed",
				zap.Int("records", len(records)),
				zap.Int("envelope_bytes", len(data)))
			return writeOutput(output, data, cfg.Codec.Archive)
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "input JSON file with a record array")
	cmd.Flags().StringVarP(&output, "output", "o", "-", "output file, - for stdout")
	cmd.Flags().StringVar(&flags.class, "class", "", "ontology class for field inference")
	cmd.Flags().StringVar(&flags.archiveCodec, "archive", "", "byte compression for output (none, gzip, zstd, s2, lz4)")
	cmd.Flags().BoolVar(&flags.noDictionary, "no-dictionary", false, "disable the dictionary layer")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func decompressCmd(flags *appFlags) *cobra.Command {
	var input, output string

	cmd := &cobra.Command{
		Use:   "decompress",
		Short: "Restore records from an envelope",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, _, c, err := setup(flags)
			if err != nil {
				return err
			}

			data, err := archive.ReadFile(input, archive.Codec(flags.archiveCodec))
			if err != nil {
				return err
			}
			env := new(codec.Envelope)
			if err := jsonx.Unmarshal(data, env); err != nil {
				return err
			}

			records := c.DecompressBatch(env)
			out, err := jsonx.Marshal(records)
			if err != nil {
				return err
			}

			logger.Info("batch decompressed", zap.Int("records", len(records)))
			return writeOutput(output, out, "none")
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "input envelope file")
	cmd.Flags().StringVarP(&output, "output", "o", "-", "output file, - for stdout")
	cmd.Flags().StringVar(&flags.archiveCodec, "archive", "", "byte compression of the input (inferred from extension when unset)")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func evaluateCmd(flags *appFlags) *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Measure character and token reduction on a batch",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, c, err := setup(flags)
			if err != nil {
				return err
			}
			records, err := readRecords(input)
			if err != nil {
				return err
			}

			report, err := evaluate.New(c).EvaluateBatch(records, flags.class, cfg.Codec.UseDictionary)
			if err != nil {
				return err
			}

			out, err := jsonx.MarshalIndent(map[string]interface{}{
				"num_records": report.Records,
				"reversible":  report.Reversible,
				"metrics":     report.Metrics,
			}, "", "  ")
			if err != nil {
				return err
			}
			fmt.Println(string(out))
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "input JSON file with a record array")
	cmd.Flags().StringVar(&flags.class, "class", "", "ontology class for field inference")
	cmd.Flags().BoolVar(&flags.noDictionary, "no-dictionary", false, "disable the dictionary layer")
	_ = cmd.MarkFlagRequired("input")
	return cmd
}

func generateCmd(flags *appFlags) *cobra.Command {
	var count int
	var seed int64
	var output string

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate synthetic records for an ontology class",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, ont, _, err := setup(flags)
			if err != nil {
				return err
			}

			records, err := generator.New(ont, seed).Records(flags.class, count)
			if err != nil {
				return err
			}
			out, err := jsonx.Marshal(records)
			if err != nil {
				return err
			}
			return writeOutput(output, out, "none")
		},
	}

	cmd.Flags().StringVar(&flags.class, "class", "Customer", "ontology class to generate")
	cmd.Flags().IntVarP(&count, "count", "n", 100, "number of records")
	cmd.Flags().Int64Var(&seed, "seed", 42, "random seed")
	cmd.Flags().StringVarP(&output, "output", "o", "-", "output file, - for stdout")
	return cmd
}

func serveCmd(flags *appFlags) *cobra.Command {
	var withStore bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, ont, c, err := setup(flags)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			var opts []server.Option
			if withStore {
				store, err := storage.Open(ctx, storage.ConfigFromEnv(cfg.Storage))
				if err != nil {
					return err
				}
				defer store.Close()
				opts = append(opts, server.WithStore(store))
			}

			return server.New(cfg, ont, c, opts...).Start(ctx)
		},
	}

	cmd.Flags().BoolVar(&withStore, "with-store", false, "enable Postgres envelope persistence")
	return cmd
}
