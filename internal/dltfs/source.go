// Package dltfs provides the byte-source abstraction records are parsed
// from: a cloneable cursor over a shared, immutable byte buffer that can be
// split into independent chunks for parallel parsing.
package dltfs

import "io"

// OverrunEOF marks a cursor whose overrun was caused by running off the
// true end of the file, as opposed to merely crossing its chunk fence.
const OverrunEOF = ^uint64(0)

// Source is a cloneable cursor over a DLT file's bytes. A cursor produced by
// Split shares the parent's backing bytes but owns its own position and
// bookkeeping, so it is safe to hand one cursor per goroutine.
type Source interface {
	// Read returns the next n bytes and advances the cursor past them.
	// It returns io.EOF, without advancing, if that would read past the
	// true end of the file.
	Read(n int) ([]byte, error)
	SetPos(pos uint64)
	Pos() uint64
	Len() uint64

	// Split partitions the source into n independent cursors covering
	// contiguous, roughly equal byte ranges of the file.
	Split(n int) ([]Source, error)

	// Overrun is 0 until a read has crossed this cursor's chunk fence,
	// at which point it is the absolute offset immediately after that
	// read; it is OverrunEOF if that crossing ran off the true EOF.
	Overrun() uint64

	// FirstValidOffset is the file offset of the first record this
	// cursor parsed successfully. It is 0 until NotifySuccess is called.
	FirstValidOffset() uint64

	// NotifySuccess records the offset of a successfully parsed record.
	// Only the first call has any effect.
	NotifySuccess(offset uint64)

	Close() error
}

// cursor implements the position/overrun bookkeeping shared by every
// concrete Source. Concrete sources embed it and supply their own backing
// bytes and Close/Split semantics.
type cursor struct {
	data       []byte
	length     uint64
	pos        uint64
	chunkFence uint64 // inclusive: last valid byte offset for this chunk
	overrun    uint64
	firstValid uint64
	firstSet   bool
}

func (c *cursor) Pos() uint64 { return c.pos }
func (c *cursor) Len() uint64 { return c.length }
func (c *cursor) SetPos(pos uint64) {
	c.pos = pos
}
func (c *cursor) Overrun() uint64           { return c.overrun }
func (c *cursor) FirstValidOffset() uint64  { return c.firstValid }

func (c *cursor) NotifySuccess(offset uint64) {
	if !c.firstSet {
		c.firstValid = offset
		c.firstSet = true
	}
}

func (c *cursor) read(n int) ([]byte, error) {
	newPos := c.pos + uint64(n)
	if newPos > c.length {
		c.overrun = OverrunEOF
		return nil, io.EOF
	}
	if newPos > c.chunkFence {
		c.overrun = newPos
	}
	b := c.data[c.pos:newPos]
	c.pos = newPos
	return b, nil
}

type bound struct{ begin, fence uint64 }

// splitBounds computes n contiguous ranges covering the cursor's full
// length: chunk i begins at floor(length/n)*i and its fence is the
// inclusive last byte offset floor(length/n)*(i+1) - 1, exactly as
// original_source/filereader.cpp's reader::split computes reader_begin and
// reader_end. When length is not evenly divisible by n, the last chunk's
// fence falls short of the true end of file by the remainder; a read that
// crosses the fence without also crossing the true end still completes
// (the record straddling the boundary is absorbed into this chunk), so in
// practice the shortfall only strands bytes when no record start lies in
// the final few leftover bytes - the same trade-off the reference
// implementation accepts.
func (c *cursor) splitBounds(n int) []bound {
	out := make([]bound, n)
	for i := 0; i < n; i++ {
		begin := c.length / uint64(n) * uint64(i)
		fenceExclusive := c.length / uint64(n) * uint64(i+1)
		var fence uint64
		if fenceExclusive > 0 {
			fence = fenceExclusive - 1
		}
		out[i] = bound{begin: begin, fence: fence}
	}
	return out
}
