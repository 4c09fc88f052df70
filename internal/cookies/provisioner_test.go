package cookies

import (
	"os"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathWithoutSource(t *testing.T) {
	p := NewProvisioner("")

	path, err := p.Path()
	require.NoError(t, err)
	assert.Empty(t, path)
}

func TestPathWritesBlobVerbatim(t *testing.T) {
	blob := "# Netscape HTTP Cookie File\n.youtube.com\tTRUE\t/\tTRUE\t0\tLOGIN_INFO\ttest"
	p := NewProvisioner(blob)

	path, err := p.Path()
	require.NoError(t, err)
	require.NotEmpty(t, path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, blob, string(data))
}

func TestPathReusedAcrossCalls(t *testing.T) {
	p := NewProvisioner("cookie blob")

	first, err := p.Path()
	require.NoError(t, err)

	second, err := p.Path()
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestPathConcurrent(t *testing.T) {
	p := NewProvisioner("cookie blob")

	const n = 10

	var mu sync.Mutex
	var wg sync.WaitGroup
	paths := make(map[string]bool)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			path, err := p.Path()
			assert.NoError(t, err)

			mu.Lock()
			paths[path] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	// Every caller sees the same jar.
	assert.Len(t, paths, 1)
}
