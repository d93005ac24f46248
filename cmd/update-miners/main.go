package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"btc-mining-sim/internal/data"
)

// update-miners merges vendor spec sheets into the miner table. Rows with
// the same model and manufacturer are replaced, new rows are appended.
func main() {
	var (
		outputPath = flag.String("output", "", "Miner table to update (default: MINERS_FILE or ./data/miners.csv)")
		dryRun     = flag.Bool("dry-run", false, "Print the merge result without saving")
	)
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Println("usage: update-miners [--output data/miners.csv] [--dry-run] specs.csv [more.csv ...]")
		os.Exit(2)
	}

	if *outputPath == "" {
		*outputPath = data.GetDefaultMinersPath()
	}

	store, err := data.LoadMiners(*outputPath)
	if err != nil {
		log.Fatalf("Failed to load miners: %v", err)
	}
	fmt.Printf("Loaded %d existing miners from %s\n", len(store.All()), *outputPath)

	added, updated := 0, 0
	for _, path := range flag.Args() {
		f, err := os.Open(path)
		if err != nil {
			log.Fatalf("Failed to open %s: %v", path, err)
		}
		specs, err := data.DecodeMiners(f)
		f.Close()
		if err != nil {
			log.Fatalf("Failed to parse %s: %v", path, err)
		}

		for _, spec := range specs {
			isNew, err := store.Upsert(spec)
			if err != nil {
				log.Printf("Skipping %q from %s: %v", spec.Model, path, err)
				continue
			}
			if isNew {
				added++
			} else {
				updated++
			}
		}
		fmt.Printf("Merged %d rows from %s\n", len(specs), path)
	}

	fmt.Printf("Added %d, updated %d, total %d miners\n", added, updated, len(store.All()))
	if *dryRun {
		return
	}

	if err := store.Save(); err != nil {
		log.Fatalf("Failed to save miners: %v", err)
	}
	fmt.Printf("Saved miners to %s\n", *outputPath)
}
