// Command deltajson streams a JSON-ish text file (or stdin) through the
// deltajson engine a fixed-size chunk at a time, printing the live
// best-effort completion after every chunk. It exists as a manual
// exerciser for the engine, not as a production tool.
package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"

	"github.com/deltajson/deltajson"
)

var (
	chunkSize int
	inputFile string
	verify    bool
	colorize  bool
)

var rootCmd = &cobra.Command{
	Use:          "deltajson",
	Short:        "deltajson",
	SilenceUsage: true,
	Long:         `deltajson streams a file or stdin through the streaming JSON completion engine, chunk by chunk, printing the live completed document.`,
	RunE:         run,
}

func main() {
	rootCmd.Flags().IntVarP(&chunkSize, "chunk-size", "c", 8, "number of bytes fed to the engine per step")
	rootCmd.Flags().StringVarP(&inputFile, "file", "f", "", "input file to stream (defaults to stdin)")
	rootCmd.Flags().BoolVarP(&verify, "verify", "v", false, "double-check every completion against gjson.Valid before printing it")
	rootCmd.Flags().BoolVar(&colorize, "color", true, "colorize the pretty-printed output")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	var r io.Reader = os.Stdin
	if inputFile != "" {
		f, err := os.Open(inputFile)
		if err != nil {
			return fmt.Errorf("deltajson: opening input: %w", err)
		}
		defer f.Close()
		r = f
	}

	opts := []deltajson.Option{
		deltajson.WithLogLevel(slog.LevelWarn),
	}
	if verify {
		opts = append(opts, deltajson.WithReferenceValidator(func(candidate string) bool {
			return gjson.Valid(candidate)
		}))
	}
	engine := deltajson.New(opts...)

	br := bufio.NewReader(r)
	buf := make([]byte, chunkSize)
	var raw []byte

	for {
		n, readErr := br.Read(buf)
		if n > 0 {
			raw = append(raw, buf[:n]...)

			if err := engine.Advance(string(buf[:n])); err != nil {
				if errors.Is(err, deltajson.ErrCorrupted) {
					return fmt.Errorf("deltajson: input corrupted after %d bytes: %w", len(raw), err)
				}
				// ErrNotClosable: fall through and try completion anyway so
				// the caller sees the engine's own verdict below.
			}

			completion, compErr := engine.Completion()
			switch {
			case compErr == nil:
				printCompletion(raw, completion)
			case compErr == deltajson.ErrNotClosable:
				// Nothing printable yet; keep streaming.
			default:
				return fmt.Errorf("deltajson: %w", compErr)
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return fmt.Errorf("deltajson: reading input: %w", readErr)
		}
	}

	if engine.Corrupted() {
		return deltajson.ErrCorrupted
	}
	return nil
}

func printCompletion(raw []byte, completion string) {
	document := append(append([]byte{}, raw...), completion...)
	formatted := pretty.Pretty(document)
	if colorize {
		formatted = pretty.Color(formatted, nil)
	}
	fmt.Fprintln(os.Stdout, "---")
	os.Stdout.Write(formatted)
}
