// Command bincode-fixtures regenerates the conformance fixture corpus:
// one wire file per corpus entry and configuration, plus a manifest with
// BLAKE3 content digests. With --verify it re-reads an existing corpus
// and checks every digest instead.
package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/pflag"
	"github.com/zeebo/blake3"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	bincode "github.com/wippyai/bincode"
	"github.com/wippyai/bincode/internal/corpus"
)

type manifest struct {
	Entries []manifestEntry `yaml:"entries"`
}

type manifestEntry struct {
	Name   string `yaml:"name"`
	Config string `yaml:"config"`
	File   string `yaml:"file"`
	Size   int    `yaml:"size"`
	Blake3 string `yaml:"blake3"`
}

func main() {
	var (
		outDir  = pflag.String("out", "fixtures", "Output directory for fixture files")
		configs = pflag.String("configs", "all", "Comma-separated config names (standard,fixed,big,big-fixed) or 'all'")
		verify  = pflag.Bool("verify", false, "Verify an existing corpus against its manifest instead of writing")
	)
	pflag.Parse()

	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	selected, err := selectConfigs(*configs)
	if err != nil {
		logger.Fatal("bad --configs", zap.Error(err))
	}

	if *verify {
		if err := verifyCorpus(logger, *outDir); err != nil {
			logger.Fatal("verification failed", zap.Error(err))
		}
		logger.Info("corpus verified", zap.String("dir", *outDir))
		return
	}

	if err := writeCorpus(logger, *outDir, selected); err != nil {
		logger.Fatal("generation failed", zap.Error(err))
	}
}

func selectConfigs(spec string) (map[string]bincode.Config, error) {
	all := corpus.Configs()
	if spec == "all" {
		return all, nil
	}
	selected := make(map[string]bincode.Config)
	for _, name := range strings.Split(spec, ",") {
		name = strings.TrimSpace(name)
		cfg, ok := all[name]
		if !ok {
			return nil, fmt.Errorf("unknown config %q", name)
		}
		selected[name] = cfg
	}
	return selected, nil
}

func writeCorpus(logger *zap.Logger, outDir string, configs map[string]bincode.Config) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return err
	}

	cfgNames := make([]string, 0, len(configs))
	for name := range configs {
		cfgNames = append(cfgNames, name)
	}
	sort.Strings(cfgNames)

	var m manifest
	buf := make([]byte, 1<<20)

	for _, cfgName := range cfgNames {
		cfg := configs[cfgName]
		for _, entry := range corpus.Entries() {
			end, err := bincode.Encode(entry.Desc, entry.Value, buf, 0, cfg)
			if err != nil {
				return fmt.Errorf("encode %s under %s: %w", entry.Name, cfgName, err)
			}
			data := buf[:end]

			fileName := entry.Name + "." + cfgName + ".bin"
			if err := os.WriteFile(filepath.Join(outDir, fileName), data, 0o644); err != nil {
				return err
			}

			sum := blake3.Sum256(data)
			m.Entries = append(m.Entries, manifestEntry{
				Name:   entry.Name,
				Config: cfgName,
				File:   fileName,
				Size:   end,
				Blake3: hex.EncodeToString(sum[:]),
			})
			logger.Debug("wrote fixture",
				zap.String("file", fileName),
				zap.Int("bytes", end))
		}
	}

	raw, err := yaml.Marshal(&m)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(outDir, "manifest.yaml"), raw, 0o644); err != nil {
		return err
	}
	logger.Info("corpus written",
		zap.String("dir", outDir),
		zap.Int("fixtures", len(m.Entries)),
		zap.Strings("configs", cfgNames))
	return nil
}

func verifyCorpus(logger *zap.Logger, dir string) error {
	raw, err := os.ReadFile(filepath.Join(dir, "manifest.yaml"))
	if err != nil {
		return fmt.Errorf("read manifest: %w", err)
	}
	var m manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return fmt.Errorf("parse manifest: %w", err)
	}

	configs := corpus.Configs()
	for _, me := range m.Entries {
		data, err := os.ReadFile(filepath.Join(dir, me.File))
		if err != nil {
			return err
		}
		sum := blake3.Sum256(data)
		if hex.EncodeToString(sum[:]) != me.Blake3 {
			return fmt.Errorf("%s: digest mismatch", me.File)
		}

		// Digest intact; the bytes must also still decode.
		entry := corpus.ByName(me.Name)
		cfg, ok := configs[me.Config]
		if entry == nil || !ok {
			logger.Warn("manifest entry has no corpus counterpart",
				zap.String("name", me.Name),
				zap.String("config", me.Config))
			continue
		}
		if _, end, err := bincode.Decode(entry.Desc, data, 0, cfg); err != nil || end != len(data) {
			return fmt.Errorf("%s: decode failed: %v", me.File, err)
		}
	}
	return nil
}
