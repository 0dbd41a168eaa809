// Command netmih is the thin CLI front-end for the netmih similarity
// index: it ingests newline-delimited hex hashes from files matched by one
// or more glob patterns, trains the index, and reports every corpus entry
// within a chosen distance of each query hash.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/AiLECS/netMIH"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		preset     string
		hashSize   int
		wordLength int
		threshold  int
		queries    []string
		distance   int
	)

	cmd := &cobra.Command{
		Use:   "netmih [glob ...]",
		Short: "Multi-Index Hashing similarity search over hex-encoded fingerprints",
		Long: "netmih ingests newline-delimited hex fingerprints from files matched by the\n" +
			"given glob patterns (one category per matched file, named after its path),\n" +
			"trains an in-memory MIH index, and reports every match within --distance of\n" +
			"each --query hash.",
		Args: cobra.MinimumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

			cfg, err := resolveConfig(preset, hashSize, wordLength, threshold)
			if err != nil {
				return err
			}

			idx, err := netmih.NewIndex(cfg.HashSize, cfg.WordLength, cfg.MatchThreshold)
			if err != nil {
				return err
			}

			if err := loadCorpus(idx, args, logger); err != nil {
				return err
			}

			start := time.Now()
			count, err := idx.Train()
			if err != nil {
				return err
			}
			logger.Info("trained index", "records", count, "elapsed", time.Since(start))

			if distance < 0 {
				distance = idx.MatchThreshold()
			}
			for _, q := range queries {
				if err := runQuery(idx, q, distance, logger); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&preset, "preset", "", `named configuration preset (currently only "pdq")`)
	cmd.Flags().IntVar(&hashSize, "hash-size", 0, "hash size in bits (H); ignored if --preset is set")
	cmd.Flags().IntVar(&wordLength, "word-length", 0, "MIH word length in bits (W); ignored if --preset is set")
	cmd.Flags().IntVar(&threshold, "threshold", 0, "match threshold in bits (T); ignored if --preset is set")
	cmd.Flags().StringArrayVar(&queries, "query", nil, "hex hash to query (repeatable)")
	cmd.Flags().IntVar(&distance, "distance", -1, "maximum Hamming distance per query (default: the index's match threshold)")

	return cmd
}

func resolveConfig(preset string, hashSize, wordLength, threshold int) (netmih.Config, error) {
	if preset != "" {
		return netmih.NewPresetConfig(netmih.Preset(preset))
	}
	return netmih.NewConfig(hashSize, wordLength, threshold)
}

func runQuery(idx *netmih.Index, hash string, distance int, logger *slog.Logger) error {
	start := time.Now()
	results, err := idx.Query(hash, distance)
	if err != nil {
		return err
	}

	count := 0
	for result := range results {
		fmt.Printf("%s\t%d\t%v\n", result.Hash, result.Distance, result.Categories)
		count++
	}
	logger.Info("query complete", "hash", hash, "distance", distance, "matches", count, "elapsed", time.Since(start))
	return nil
}
