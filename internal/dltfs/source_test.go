package dltfs

import (
	"io"
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, data []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sample.dlt")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("writing temp file: %v", err)
	}
	return path
}

func TestPreloadSourceReadAndEOF(t *testing.T) {
	path := writeTemp(t, []byte("hello world"))
	src, err := NewPreloadSource(path)
	if err != nil {
		t.Fatalf("NewPreloadSource: %v", err)
	}
	defer src.Close()

	b, err := src.Read(5)
	if err != nil || string(b) != "hello" {
		t.Fatalf("got %q, %v", b, err)
	}
	if src.Pos() != 5 {
		t.Fatalf("pos = %d, want 5", src.Pos())
	}

	if _, err := src.Read(100); err != io.EOF {
		t.Fatalf("expected io.EOF, got %v", err)
	}
	if src.Overrun() != OverrunEOF {
		t.Fatalf("expected OverrunEOF, got %d", src.Overrun())
	}
}

func TestSplitCoversWholeFile(t *testing.T) {
	data := make([]byte, 100)
	for i := range data {
		data[i] = byte(i)
	}
	path := writeTemp(t, data)
	src, err := NewPreloadSource(path)
	if err != nil {
		t.Fatalf("NewPreloadSource: %v", err)
	}
	defer src.Close()

	chunks, err := src.Split(4)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	if len(chunks) != 4 {
		t.Fatalf("got %d chunks, want 4", len(chunks))
	}

	var reassembled []byte
	for i, c := range chunks {
		for {
			b, err := c.Read(1)
			if err != nil {
				break
			}
			reassembled = append(reassembled, b...)
			// A chunk ends with the read that crosses its fence, the
			// same point at which a parsing task stops.
			if c.Overrun() > 0 {
				break
			}
		}
		_ = i
	}
	if len(reassembled) != len(data) {
		t.Fatalf("reassembled %d bytes, want %d", len(reassembled), len(data))
	}
	for i := range data {
		if reassembled[i] != data[i] {
			t.Fatalf("byte %d mismatch: got %d want %d", i, reassembled[i], data[i])
		}
	}
}

func TestChunkFenceSetsOverrun(t *testing.T) {
	data := make([]byte, 40)
	path := writeTemp(t, data)
	src, err := NewPreloadSource(path)
	if err != nil {
		t.Fatalf("NewPreloadSource: %v", err)
	}
	defer src.Close()

	chunks, err := src.Split(4)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	first := chunks[0]
	if first.Overrun() != 0 {
		t.Fatalf("fresh chunk should have no overrun, got %d", first.Overrun())
	}
	// chunk 0 covers [0,10); reading 15 bytes crosses the fence but not EOF.
	if _, err := first.Read(15); err != nil {
		t.Fatalf("read across fence should succeed: %v", err)
	}
	if first.Overrun() == 0 || first.Overrun() == OverrunEOF {
		t.Fatalf("expected a finite overrun offset, got %d", first.Overrun())
	}
}

func TestEmptyFileSplitReturnsEOF(t *testing.T) {
	path := writeTemp(t, nil)
	src, err := NewPreloadSource(path)
	if err != nil {
		t.Fatalf("NewPreloadSource: %v", err)
	}
	defer src.Close()

	if _, err := src.Split(4); err != io.EOF {
		t.Fatalf("expected io.EOF for empty file split, got %v", err)
	}
}

func TestNotifySuccessSetsOnce(t *testing.T) {
	path := writeTemp(t, []byte("abcdef"))
	src, err := NewPreloadSource(path)
	if err != nil {
		t.Fatalf("NewPreloadSource: %v", err)
	}
	defer src.Close()

	src.NotifySuccess(3)
	src.NotifySuccess(5)
	if src.FirstValidOffset() != 3 {
		t.Fatalf("FirstValidOffset = %d, want 3 (first call wins)", src.FirstValidOffset())
	}
}
