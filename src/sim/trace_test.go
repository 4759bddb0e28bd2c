package sim

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Blackdeer1524/FrameCache/src/replacer"
)

func writeTrace(t *testing.T, fs afero.Fs, content string) string {
	t.Helper()

	path := "workload.trace"
	require.NoError(t, afero.WriteFile(fs, path, []byte(content), 0o644))

	return path
}

func TestParseTrace(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := writeTrace(t, fs, `
# warm up two frames
access 0 scan
access 1
unpin 0
unpin 1

pin 1
evict
remove 1
`)

	ops, err := ParseTrace(fs, path)
	require.NoError(t, err)

	expected := []Op{
		{Kind: OpAccess, Frame: 0, Type: replacer.AccessScan},
		{Kind: OpAccess, Frame: 1, Type: replacer.AccessUnknown},
		{Kind: OpUnpin, Frame: 0},
		{Kind: OpUnpin, Frame: 1},
		{Kind: OpPin, Frame: 1},
		{Kind: OpEvict},
		{Kind: OpRemove, Frame: 1},
	}
	assert.Equal(t, expected, ops)
}

func TestParseTraceErrors(t *testing.T) {
	tests := []struct {
		name  string
		trace string
	}{
		{"unknown op", "touch 1"},
		{"bad frame id", "access seven"},
		{"bad access type", "access 1 write"},
		{"evict with args", "evict 3"},
		{"pin without frame", "pin"},
		{"access with extra args", "access 1 scan now"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fs := afero.NewMemMapFs()
			path := writeTrace(t, fs, "access 0\n"+tt.trace+"\n")

			_, err := ParseTrace(fs, path)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "line 2")
		})
	}
}

func TestParseTraceMissingFile(t *testing.T) {
	fs := afero.NewMemMapFs()

	_, err := ParseTrace(fs, "does-not-exist.trace")
	assert.Error(t, err)
}
