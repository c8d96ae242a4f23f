package dltfs

import (
	"io"
	"os"
)

// PreloadSource reads the whole file into memory up front. Grounded on
// original_source/filereader.cpp's file_precache, the reference
// implementation's default reader.
type PreloadSource struct {
	cursor
}

func NewPreloadSource(path string) (*PreloadSource, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return &PreloadSource{cursor: cursor{
		data:       data,
		length:     uint64(len(data)),
		chunkFence: OverrunEOF,
	}}, nil
}

func (s *PreloadSource) Read(n int) ([]byte, error) { return s.read(n) }

func (s *PreloadSource) Close() error { return nil }

func (s *PreloadSource) Split(n int) ([]Source, error) {
	if s.length == 0 {
		return nil, io.EOF
	}
	bounds := s.splitBounds(n)
	out := make([]Source, n)
	for i, b := range bounds {
		out[i] = &PreloadSource{cursor: cursor{
			data:       s.data,
			length:     s.length,
			pos:        b.begin,
			chunkFence: b.fence,
		}}
	}
	return out, nil
}
