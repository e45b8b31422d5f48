package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gilchrisn/hgpart/internal/hgr"
	"github.com/gilchrisn/hgpart/internal/partition"
	"github.com/gilchrisn/hgpart/internal/score"
)

type scoreOpts struct {
	hgrPath       string
	partitionPath string
	k             int
	epsilon       float64
}

// newScoreCmd verifies an existing partition against a .hgr file and
// reports KM1 and feasibility.
func newScoreCmd() *cobra.Command {
	opts := scoreOpts{k: 64, epsilon: 0.03}

	cmd := &cobra.Command{
		Use:   "score",
		Short: "Verify a partition and report its metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScore(cmd, &opts)
		},
	}

	cmd.Flags().StringVar(&opts.hgrPath, "hgr", "", "path to .hgr file (required)")
	cmd.Flags().StringVar(&opts.partitionPath, "partition", "", "path to partition file (required)")
	cmd.Flags().IntVarP(&opts.k, "k", "k", opts.k, "number of partitions")
	cmd.Flags().Float64VarP(&opts.epsilon, "epsilon", "e", opts.epsilon, "balance epsilon")
	cmd.MarkFlagRequired("hgr")
	cmd.MarkFlagRequired("partition")

	return cmd
}

func runScore(cmd *cobra.Command, opts *scoreOpts) error {
	h, err := hgr.Read(opts.hgrPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", opts.hgrPath, err)
	}
	assign, err := hgr.ReadPartition(opts.partitionPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", opts.partitionPath, err)
	}
	if len(assign) != h.NumVertices() {
		return fmt.Errorf("partition has %d entries, hypergraph has %d vertices", len(assign), h.NumVertices())
	}

	cap := partition.Capacity(h.NumVertices(), opts.k, opts.epsilon)
	result := score.Evaluate(h, assign, opts.k, cap)

	printf("=== Results ===\n")
	printf("Vertices: %d\n", h.NumVertices())
	printf("Hyperedges: %d\n", h.NumEdges())
	printf("Partitions (k): %d\n", opts.k)
	printf("Epsilon: %g\n", opts.epsilon)
	printf("Max allowed size: %d\n", cap)
	printf("Connectivity (KM1): %d\n", result.KM1)
	printf("Max partition size: %d\n", result.MaxBlock)
	printf("Min partition size: %d\n", result.MinBlock)
	if result.Feasible {
		printf("Feasible: YES\n")
	} else {
		printf("Feasible: NO\n")
	}

	return nil
}
