package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"
)

// GoldenData represents a single test case in the golden file
type GoldenData struct {
	Dimensions       []float64 `json:"dimensions"`
	MinimumCost      float64   `json:"minimum_cost"`
	Parenthesization string    `json:"parenthesization"`
}

func main() {
	outputDir := flag.String("out", "internal/chain/testdata", "Output directory for the golden file")
	flag.Parse()

	if err := os.MkdirAll(*outputDir, 0755); err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output directory: %v\n", err)
		os.Exit(1)
	}

	filename := filepath.Join(*outputDir, "chain_golden.json")
	file, err := os.Create(filename)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating output file: %v\n", err)
		os.Exit(1)
	}
	defer file.Close()

	// Interesting cases:
	// - single matrix
	// - textbook chains (CLRS, common course examples)
	// - ties (equal dimensions), alternating extremes
	// - non-integral dimensions
	targets := [][]float64{
		{10, 20},
		{10, 30, 5, 60},
		{40, 20, 30, 10, 30},
		{10, 20, 30, 40, 30},
		{30, 35, 15, 5, 10, 20, 25},
		{5, 10, 3, 12, 5, 50, 6},
		{2, 2, 2, 2},
		{1, 1, 1, 1, 1},
		{5, 4, 6, 2, 7},
		{3, 7, 2, 9, 4, 6, 1, 8},
		{10, 10, 10, 10, 10, 10},
		{100, 1, 100, 1, 100},
		{1.5, 2, 0.5, 4},
		{7, 3},
	}

	var data []GoldenData

	fmt.Println("Generating golden data...")

	for _, p := range targets {
		cost, paren := bruteForce(p, 1, len(p)-1)
		data = append(data, GoldenData{
			Dimensions:       p,
			MinimumCost:      cost,
			Parenthesization: paren,
		})
		fmt.Printf("Generated %v -> %s\n", p, paren)
	}

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		fmt.Fprintf(os.Stderr, "Error encoding JSON: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Successfully generated golden file at %s\n", filename)
}

// bruteForce tries every parenthesization of A_i..A_j without memoization.
// This serves as our "Oracle": exponential, but independent of the DP tables.
// Splits are tried in increasing order and only a strictly cheaper one
// replaces the current best, so ties resolve to the smallest split.
func bruteForce(p []float64, i, j int) (float64, string) {
	if i == j {
		return 0, fmt.Sprintf("A%d", i)
	}
	var (
		best  float64
		paren string
		found bool
	)
	for k := i; k < j; k++ {
		lc, lp := bruteForce(p, i, k)
		rc, rp := bruteForce(p, k+1, j)
		cost := lc + rc + p[i-1]*p[k]*p[j]
		if !found || cost < best {
			best, paren, found = cost, "("+lp+rp+")", true
		}
	}
	return best, paren
}
