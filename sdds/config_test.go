package sdds

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, DefaultBufferSize, cfg.BufferSize)
	assert.Equal(t, 10, cfg.SeekRetry.Attempts)
	assert.Equal(t, time.Second, cfg.SeekRetry.Delay)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sdds.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
buffer_size: 64
compression: xz
fixed_row_increment: 250
auto_recover: true
longdouble_64bits: true
byte_order: big
seek_retry:
  attempts: 3
  delay: 10ms
logging:
  level: debug
  format: json
`), 0o644))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.BufferSize)
	assert.Equal(t, "xz", cfg.Compression)
	assert.Equal(t, int64(250), cfg.FixedRowIncrement)
	assert.True(t, cfg.AutoRecover)
	assert.True(t, cfg.LongDouble64)
	assert.Equal(t, "big", cfg.ByteOrder)
	assert.Equal(t, 3, cfg.SeekRetry.Attempts)
	assert.Equal(t, 10*time.Millisecond, cfg.SeekRetry.Delay)

	o := defaultOptions()
	WithConfig(cfg)(o)
	require.NoError(t, o.err)
	assert.Equal(t, 64, o.bufferSize)
	assert.Equal(t, CompressionXZ, o.compression)
	assert.True(t, o.compressSet)
	assert.True(t, o.fixedRowCount)
	assert.Equal(t, int64(250), o.increment)
	assert.True(t, o.autoRecover)
	assert.Equal(t, Extended64, o.extended)
	assert.Equal(t, OrderBigEndian, o.order)
	assert.Equal(t, 3, o.retry.Attempts)
	assert.Equal(t, 10*time.Millisecond, o.retry.Delay)
	assert.NotNil(t, o.logger)
}

func TestConfigKeepsDefaults(t *testing.T) {
	cfg, err := ParseConfig([]byte("auto_recover: true\n"))
	require.NoError(t, err)
	assert.Equal(t, DefaultBufferSize, cfg.BufferSize)
	assert.Equal(t, 10, cfg.SeekRetry.Attempts)
}

func TestInvalidConfigFailsOpen(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Compression = "zip"
	_, err := Create(tempPath(t, "data.sdds"), singleColumn(), WithConfig(cfg))
	require.Error(t, err)

	cfg = DefaultConfig()
	cfg.ByteOrder = "middle"
	_, err = Create(tempPath(t, "data.sdds"), singleColumn(), WithConfig(cfg))
	require.Error(t, err)
}

func TestConfigDrivesDataset(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Compression = "gzip"
	cfg.ByteOrder = "big"
	cfg.Logging.Level = ""

	path := tempPath(t, "data.bin")
	writeIndexPages(t, path, 2, 5, WithConfig(cfg))

	data := readFile(t, path)
	require.Greater(t, len(data), 2)
	assert.Equal(t, []byte{0x1f, 0x8b}, data[:2], "gzip magic")

	rd, err := Open(path, singleColumn(), WithConfig(cfg))
	require.NoError(t, err)
	defer rd.Close()
	assert.Equal(t, CompressionGzip, rd.Compression())
	assert.Equal(t, OrderBigEndian, rd.ByteOrder())
	for i := 0; i < 2; i++ {
		page, err := rd.ReadPage()
		require.NoError(t, err)
		assert.Equal(t, 5, page.Rows())
	}
	_, err = rd.ReadPage()
	assert.True(t, errors.Is(err, ErrNoMorePages))
}
