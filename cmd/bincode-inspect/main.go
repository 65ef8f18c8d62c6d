// Command bincode-inspect decodes bincode wire data against a corpus
// descriptor. Without --hex or --file it opens an interactive TUI for
// browsing descriptors and decoding pasted input.
package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	bincode "github.com/wippyai/bincode"
	"github.com/wippyai/bincode/internal/corpus"
)

func main() {
	var (
		entryName = pflag.String("entry", "", "Corpus descriptor to decode against")
		hexInput  = pflag.String("hex", "", "Wire bytes as hex")
		filePath  = pflag.String("file", "", "Wire bytes from a file")
		cfgName   = pflag.String("config", "standard", "Config: standard, fixed, big, big-fixed")
	)
	pflag.Parse()

	if *hexInput == "" && *filePath == "" {
		if err := runInteractive(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(logger, *entryName, *hexInput, *filePath, *cfgName); err != nil {
		logger.Fatal("inspect failed", zap.Error(err))
	}
}

func run(logger *zap.Logger, entryName, hexInput, filePath, cfgName string) error {
	if entryName == "" {
		return fmt.Errorf("--entry is required with --hex or --file")
	}
	entry := corpus.ByName(entryName)
	if entry == nil {
		return fmt.Errorf("unknown corpus entry %q", entryName)
	}
	cfg, ok := corpus.Configs()[cfgName]
	if !ok {
		return fmt.Errorf("unknown config %q", cfgName)
	}

	var data []byte
	var err error
	switch {
	case hexInput != "":
		data, err = hex.DecodeString(hexInput)
	default:
		data, err = os.ReadFile(filePath)
	}
	if err != nil {
		return err
	}

	value, end, err := bincode.Decode(entry.Desc, data, 0, cfg)
	if err != nil {
		return err
	}
	logger.Info("decoded",
		zap.String("descriptor", entry.Desc.String()),
		zap.Int("bytes", end))
	fmt.Println(renderValue(value, 0))
	if end < len(data) {
		logger.Warn("trailing bytes left undecoded", zap.Int("count", len(data)-end))
	}
	return nil
}
