package hgr

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gilchrisn/hgpart/internal/hypergraph"
)

func TestReadWriteRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "instance.hgr")

	h, err := hypergraph.Build(5, [][]int32{{0, 1, 2}, {2, 3}, {3, 4, 0}})
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if err := Write(path, h); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}

	if got.NumVertices() != h.NumVertices() || got.NumEdges() != h.NumEdges() {
		t.Fatalf("round trip mismatch: got (%d,%d), want (%d,%d)",
			got.NumVertices(), got.NumEdges(), h.NumVertices(), h.NumEdges())
	}
	for e := 0; e < h.NumEdges(); e++ {
		wantPins := h.EdgePins(e)
		gotPins := got.EdgePins(e)
		if len(wantPins) != len(gotPins) {
			t.Fatalf("edge %d: pin count mismatch %d vs %d", e, len(gotPins), len(wantPins))
		}
		for i := range wantPins {
			if wantPins[i] != gotPins[i] {
				t.Errorf("edge %d pin %d: got %d, want %d", e, i, gotPins[i], wantPins[i])
			}
		}
	}
}

func TestReadRejectsOutOfRangeVertex(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.hgr")
	writeRaw(t, path, "1 2\n1 5\n")

	if _, err := Read(path); err == nil {
		t.Fatalf("expected error for out-of-range vertex id")
	}
}

func TestReadSkipsCommentsAndBlankLines(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "commented.hgr")
	writeRaw(t, path, "% a comment\n2 3\n\n1 2\n% another comment\n2 3\n")

	h, err := Read(path)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if h.NumVertices() != 3 || h.NumEdges() != 2 {
		t.Fatalf("got (%d,%d), want (3,2)", h.NumVertices(), h.NumEdges())
	}
}

func TestReadRejectsMismatchedEdgeCount(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mismatch.hgr")
	writeRaw(t, path, "2 3\n1 2\n")

	if _, err := Read(path); err == nil {
		t.Fatalf("expected error for hyperedge count mismatch")
	}
}

func TestWritePartitionAndReadBack(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.part")

	assign := []int32{0, 1, 0, 2, 1}
	if err := WritePartition(path, assign); err != nil {
		t.Fatalf("WritePartition: %v", err)
	}

	got, err := ReadPartition(path)
	if err != nil {
		t.Fatalf("ReadPartition: %v", err)
	}
	if len(got) != len(assign) {
		t.Fatalf("len(got) = %d, want %d", len(got), len(assign))
	}
	for i := range assign {
		if got[i] != assign[i] {
			t.Errorf("ReadPartition[%d] = %d, want %d", i, got[i], assign[i])
		}
	}
}

func TestWritePartitionWithTimingCreatesSidecar(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.part")

	if err := WritePartitionWithTiming(path, []int32{0, 1}, 1.5); err != nil {
		t.Fatalf("WritePartitionWithTiming: %v", err)
	}

	timingPath := filepath.Join(dir, "out_timing.txt")
	content, err := os.ReadFile(timingPath)
	if err != nil {
		t.Fatalf("sidecar timing file was not created: %v", err)
	}
	lines := strings.Split(strings.TrimRight(string(content), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("timing file has %d lines, want 2: %q", len(lines), content)
	}
	if lines[0] != "1.500" {
		t.Errorf("timing line = %q, want %q", lines[0], "1.500")
	}
	if !strings.HasPrefix(lines[1], "run ") {
		t.Errorf("run id line = %q, want prefix %q", lines[1], "run ")
	}
}

func TestWritePartitionWithTimingRunIDReturnsUniqueIDs(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.part")

	id1, err := WritePartitionWithTimingRunID(path, []int32{0, 1}, 1.0)
	if err != nil {
		t.Fatalf("WritePartitionWithTimingRunID: %v", err)
	}
	id2, err := WritePartitionWithTimingRunID(path, []int32{0, 1}, 1.0)
	if err != nil {
		t.Fatalf("WritePartitionWithTimingRunID: %v", err)
	}
	if id1 == "" || id2 == "" {
		t.Fatalf("expected non-empty run ids, got %q and %q", id1, id2)
	}
	if id1 == id2 {
		t.Errorf("expected distinct run ids across two writes, got the same: %q", id1)
	}
}

func writeRaw(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("os.WriteFile: %v", err)
	}
}
