package main

import (
	"context"
	"fmt"
	"os"

	"github.com/flaneur2020/pngme/pngme"
	"github.com/flaneur2020/pngme/pngme/config"
	"github.com/flaneur2020/pngme/pngme/logger"
	"github.com/flaneur2020/pngme/pngme/storage"
	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

var (
	configPath string
	logLevel   string
	verbose    bool
	noProgress bool
	compress   bool
	compressed bool

	cfg *config.Config
)

func main() {
	rootCmd := &cobra.Command{
		Use:               "pngme",
		Short:             "Hide messages in png files",
		PersistentPreRunE: setup,
		SilenceUsage:      true,
		SilenceErrors:     true,
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a TOML config file (default "+config.DefaultFile+" if present)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: silent, error, warn, info, debug")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Shorthand for --log-level=info")

	// encode command
	encodeCmd := &cobra.Command{
		Use:   "encode <FILE> <CHUNK_TYPE> <MESSAGE> [OUTPUT_FILE]",
		Short: "Insert a message into a png",
		Args:  cobra.RangeArgs(3, 4),
		RunE:  runEncode,
	}
	encodeCmd.Flags().BoolVar(&compress, "compress", false, "Deflate the message before embedding it")
	encodeCmd.Flags().BoolVar(&noProgress, "no-progress", false, "Disable progress bar")

	// decode command
	decodeCmd := &cobra.Command{
		Use:   "decode <FILE> <CHUNK_TYPE>",
		Short: "Decode a specific chunk type",
		Args:  cobra.ExactArgs(2),
		RunE:  runDecode,
	}
	decodeCmd.Flags().BoolVar(&compressed, "compressed", false, "Inflate the message before printing it")

	// remove command
	removeCmd := &cobra.Command{
		Use:   "remove <FILE> <CHUNK_TYPE>",
		Short: "Delete a message with the provided chunk type",
		Args:  cobra.ExactArgs(2),
		RunE:  runRemove,
	}
	removeCmd.Flags().BoolVar(&noProgress, "no-progress", false, "Disable progress bar")

	// print command
	printCmd := &cobra.Command{
		Use:   "print <FILE>...",
		Short: "Print chunks",
		Args:  cobra.MinimumNArgs(1),
		RunE:  runPrint,
	}

	rootCmd.AddCommand(encodeCmd, decodeCmd, removeCmd, printCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.LoadConfig(configPath)
	if err != nil {
		return err
	}

	levelName := cfg.LogLevel
	if verbose {
		levelName = "info"
	}
	if logLevel != "" {
		levelName = logLevel
	}
	level, err := logger.ParseLogLevel(levelName)
	if err != nil {
		return err
	}
	logger.SetLogLevel(level)
	return nil
}

func newCommands(description string) *pngme.Commands {
	commands := pngme.NewCommands(storage.NewLocalStorage(0644), os.Stdout, os.Stderr)

	showProgress := !noProgress && !cfg.NoProgress
	if !showProgress {
		return commands
	}

	var bar *progressbar.ProgressBar
	return commands.WithProgress(func(current, total int64) {
		if bar == nil && total > 0 {
			bar = progressbar.DefaultBytes(total, description)
		}
		if bar != nil {
			bar.Set64(current)
		}
	})
}

func runEncode(cmd *cobra.Command, args []string) error {
	outputFile := cfg.OutputFile
	if len(args) > 3 {
		outputFile = args[3]
	}

	encodeArgs := pngme.EncodeArgs{
		FilePath:   args[0],
		ChunkType:  args[1],
		Message:    args[2],
		OutputFile: outputFile,
		Compress:   compress || cfg.Compress,
	}
	commands := newCommands(fmt.Sprintf("Writing %s", outputFile))
	return commands.Encode(context.Background(), encodeArgs)
}

func runDecode(cmd *cobra.Command, args []string) error {
	decodeArgs := pngme.DecodeArgs{
		FilePath:   args[0],
		ChunkType:  args[1],
		Compressed: compressed,
	}
	return newCommands("").Decode(context.Background(), decodeArgs)
}

func runRemove(cmd *cobra.Command, args []string) error {
	removeArgs := pngme.RemoveArgs{
		FilePath:  args[0],
		ChunkType: args[1],
	}
	commands := newCommands(fmt.Sprintf("Writing %s", args[0]))
	return commands.Remove(context.Background(), removeArgs)
}

func runPrint(cmd *cobra.Command, args []string) error {
	return newCommands("").Print(context.Background(), pngme.PrintArgs{FilePaths: args})
}
