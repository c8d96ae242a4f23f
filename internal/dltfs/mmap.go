//go:build !windows

package dltfs

import (
	"io"
	"os"

	"golang.org/x/sys/unix"
)

// MappedSource memory-maps the file instead of reading it into a heap
// buffer. Grounded on original_source/filereader.cpp's file_map, and on the
// teacher's own use of golang.org/x/sys/unix in cmd/agent-j1939/bus.go for
// its raw CAN_J1939 socket - same package, a different syscall surface.
type MappedSource struct {
	cursor
	owned []byte // non-nil only on the root source that must Munmap
}

func NewMappedSource(path string) (*MappedSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}
	size := info.Size()
	if size == 0 {
		return &MappedSource{cursor: cursor{chunkFence: OverrunEOF}}, nil
	}

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, err
	}
	return &MappedSource{
		cursor: cursor{data: data, length: uint64(size), chunkFence: OverrunEOF},
		owned:  data,
	}, nil
}

func (s *MappedSource) Read(n int) ([]byte, error) { return s.read(n) }

func (s *MappedSource) Close() error {
	if s.owned == nil {
		return nil
	}
	return unix.Munmap(s.owned)
}

func (s *MappedSource) Split(n int) ([]Source, error) {
	if s.length == 0 {
		return nil, io.EOF
	}
	bounds := s.splitBounds(n)
	out := make([]Source, n)
	for i, b := range bounds {
		out[i] = &MappedSource{cursor: cursor{
			data:       s.data,
			length:     s.length,
			pos:        b.begin,
			chunkFence: b.fence,
		}}
	}
	return out, nil
}
