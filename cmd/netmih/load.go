package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/AiLECS/netMIH"
)

// loadCorpus expands each glob pattern to its matching files and ingests
// every non-empty line of each file as a hash, using the file's path as
// its category.
func loadCorpus(idx *netmih.Index, patterns []string, logger *slog.Logger) error {
	for _, pattern := range patterns {
		files, err := filepath.Glob(pattern)
		if err != nil {
			return fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}
		for _, path := range files {
			hashes, err := readHashLines(path)
			if err != nil {
				return err
			}
			if err := idx.Update(hashes, path); err != nil {
				return fmt.Errorf("ingesting %s: %w", path, err)
			}
			logger.Info("ingested corpus file", "path", path, "hashes", len(hashes))
		}
	}
	return nil
}

func readHashLines(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var hashes []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		hashes = append(hashes, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return hashes, nil
}
