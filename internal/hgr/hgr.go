// Package hgr reads and writes the .hgr hypergraph exchange format and
// the partition-assignment files paired with it.
package hgr

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/gilchrisn/hgpart/internal/hypergraph"
)

// FormatError reports a malformed .hgr file, naming the offending line.
type FormatError struct {
	Line int
	Msg  string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf(".hgr format error at line %d: %s", e.Line, e.Msg)
}

// Read parses a .hgr file at path into a hypergraph.Hypergraph. The format
// is: a header line "M N" (M hyperedges, N vertices), optional "%" comment
// lines, then M lines each listing the 1-indexed vertex ids of one
// hyperedge. Vertex ids are converted to 0-indexed before validation.
func Read(path string) (*hypergraph.Hypergraph, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 16*1024*1024)

	lineNo := 0
	var header []string
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "%") {
			continue
		}
		header = strings.Fields(line)
		break
	}
	if header == nil {
		return nil, &FormatError{Line: lineNo, Msg: "empty .hgr file"}
	}
	if len(header) < 2 {
		return nil, &FormatError{Line: lineNo, Msg: "header must have at least 2 fields: M N"}
	}

	numEdges, err := strconv.Atoi(header[0])
	if err != nil {
		return nil, &FormatError{Line: lineNo, Msg: "invalid hyperedge count: " + header[0]}
	}
	numVertices, err := strconv.Atoi(header[1])
	if err != nil {
		return nil, &FormatError{Line: lineNo, Msg: "invalid vertex count: " + header[1]}
	}

	edges := make([][]int32, 0, numEdges)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "%") {
			continue
		}
		fields := strings.Fields(line)
		pins := make([]int32, len(fields))
		for i, tok := range fields {
			id, err := strconv.Atoi(tok)
			if err != nil {
				return nil, &FormatError{Line: lineNo, Msg: "invalid vertex id: " + tok}
			}
			if id < 1 || id > numVertices {
				return nil, &FormatError{Line: lineNo, Msg: fmt.Sprintf("vertex id %d out of range [1,%d]", id, numVertices)}
			}
			pins[i] = int32(id - 1)
		}
		edges = append(edges, pins)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if len(edges) != numEdges {
		return nil, &FormatError{Line: lineNo, Msg: fmt.Sprintf("header declared %d hyperedges, found %d", numEdges, len(edges))}
	}

	h, err := hypergraph.Build(numVertices, edges)
	if err != nil {
		return nil, fmt.Errorf("build hypergraph from %s: %w", path, err)
	}
	return h, nil
}

// Write serializes h back to .hgr format at path, 0-indexed pins
// converted back to 1-indexed on the way out.
func Write(path string, h *hypergraph.Hypergraph) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	if _, err := fmt.Fprintf(w, "%d %d\n", h.NumEdges(), h.NumVertices()); err != nil {
		return err
	}
	for e := 0; e < h.NumEdges(); e++ {
		pins := h.EdgePins(e)
		toks := make([]string, len(pins))
		for i, v := range pins {
			toks[i] = strconv.Itoa(int(v) + 1)
		}
		if _, err := fmt.Fprintln(w, strings.Join(toks, " ")); err != nil {
			return err
		}
	}
	return w.Flush()
}

// WritePartition writes one 0-indexed block id per line, one line per
// vertex in vertex-id order.
func WritePartition(path string, assign []int32) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := bufio.NewWriter(f)
	for _, b := range assign {
		if _, err := fmt.Fprintln(w, b); err != nil {
			return err
		}
	}
	return w.Flush()
}

// WritePartitionWithTiming writes the partition file plus a sidecar
// "<name>_timing.txt" file holding the elapsed wall-clock seconds on its
// first line and a "run <id>" line on its second. It is
// WritePartitionWithTimingRunID with the run id discarded.
func WritePartitionWithTiming(path string, assign []int32, elapsedSeconds float64) error {
	_, err := WritePartitionWithTimingRunID(path, assign, elapsedSeconds)
	return err
}

// WritePartitionWithTimingRunID writes the partition file and the timing
// sidecar with a random run id stamped into it, so two runs writing to
// the same output path leave a trail distinguishing which run produced
// which timing. The id is returned for callers that want to log or
// report it.
func WritePartitionWithTimingRunID(path string, assign []int32, elapsedSeconds float64) (string, error) {
	if err := WritePartition(path, assign); err != nil {
		return "", err
	}

	ext := filepath.Ext(path)
	timingPath := strings.TrimSuffix(path, ext) + "_timing.txt"
	f, err := os.Create(timingPath)
	if err != nil {
		return "", fmt.Errorf("create %s: %w", timingPath, err)
	}
	defer f.Close()

	runID := uuid.New().String()
	if _, err := fmt.Fprintf(f, "%.3f\n", elapsedSeconds); err != nil {
		return "", err
	}
	if _, err := fmt.Fprintf(f, "run %s\n", runID); err != nil {
		return "", err
	}
	return runID, nil
}

// ReadPartition parses a partition file written by WritePartition back
// into a slice of block ids, one per vertex.
func ReadPartition(path string) ([]int32, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var assign []int32
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		b, err := strconv.Atoi(line)
		if err != nil {
			return nil, &FormatError{Line: lineNo, Msg: "invalid block id: " + line}
		}
		assign = append(assign, int32(b))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return assign, nil
}
