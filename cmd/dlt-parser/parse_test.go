package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildMinimalRecord assembles one minimal non-verbose DLT log record,
// mirroring internal/dltsupervisor's test helper of the same name.
func buildMinimalRecord(id uint32) []byte {
	var buf []byte
	buf = append(buf, 'D', 'L', 'T', 0x01)
	buf = append(buf, 0, 0, 0, 0, 0, 0, 0, 0)
	buf = append(buf, 'E', 'C', 'U', '1')
	buf = append(buf, 0x01, 0x00, 0x00, 18)
	buf = append(buf, 0x00, 0x00)
	buf = append(buf, 'A', 'P', 'P', '1')
	buf = append(buf, 'C', 'T', 'X', '1')
	buf = append(buf, byte(id), byte(id>>8), byte(id>>16), byte(id>>24))
	return buf
}

func TestParseCommandPrintsRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.dlt")
	data := append(buildMinimalRecord(1), buildMinimalRecord(2)...)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"parse", path, "--workers", "1"})
	require.NoError(t, rootCmd.Execute())
}

func TestParseCommandRejectsUnknownReader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.dlt")
	require.NoError(t, os.WriteFile(path, buildMinimalRecord(1), 0o600))

	rootCmd.SetArgs([]string{"parse", path, "--reader", "bogus"})
	err := rootCmd.Execute()
	assert.Error(t, err)
}
