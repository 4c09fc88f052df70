package staging

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewManagerCreatesRoot(t *testing.T) {
	root := filepath.Join(t.TempDir(), "staging")

	m, err := NewManager(root)
	require.NoError(t, err)

	info, err := os.Stat(root)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, root, m.Root())
}

func TestCreateDirUnique(t *testing.T) {
	m, err := NewManager(t.TempDir())
	require.NoError(t, err)

	first, err := m.CreateDir()
	require.NoError(t, err)

	second, err := m.CreateDir()
	require.NoError(t, err)

	assert.NotEqual(t, first, second)

	for _, dir := range []string{first, second} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
		assert.Equal(t, m.Root(), filepath.Dir(dir))
	}
}

func TestCreateDirConcurrent(t *testing.T) {
	m, err := NewManager(t.TempDir())
	require.NoError(t, err)

	const n = 20

	var mu sync.Mutex
	var wg sync.WaitGroup
	dirs := make(map[string]bool)

	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			dir, err := m.CreateDir()
			assert.NoError(t, err)

			mu.Lock()
			dirs[dir] = true
			mu.Unlock()
		}()
	}
	wg.Wait()

	// Every request got its own directory.
	assert.Len(t, dirs, n)
}

func TestValidName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  bool
	}{
		{"plain basename", "video.mp4", true},
		{"dots inside name", "clip..v2.mp4", true},
		{"empty", "", false},
		{"dot", ".", false},
		{"dotdot", "..", false},
		{"forward slash", "dir/video.mp4", false},
		{"backslash", `dir\video.mp4`, false},
		{"traversal", "../../etc/passwd", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ValidName(tt.input))
		})
	}
}

func TestResolveInvalidNameSkipsFilesystem(t *testing.T) {
	// A root that does not exist: any filesystem access would error
	// with something other than ErrInvalidName.
	m := &Manager{root: filepath.Join(t.TempDir(), "does-not-exist")}

	for _, name := range []string{"../escape.mp4", `..\escape.mp4`, "a/b.mp4", "", ".."} {
		_, err := m.Resolve(name)
		assert.ErrorIs(t, err, ErrInvalidName, "name %q", name)
	}
}

func TestResolveInRoot(t *testing.T) {
	m, err := NewManager(t.TempDir())
	require.NoError(t, err)

	path := filepath.Join(m.Root(), "direct.mp4")
	require.NoError(t, os.WriteFile(path, []byte("data"), 0644))

	got, err := m.Resolve("direct.mp4")
	require.NoError(t, err)
	assert.Equal(t, path, got)
}

func TestResolveInStagingDir(t *testing.T) {
	m, err := NewManager(t.TempDir())
	require.NoError(t, err)

	dir, err := m.CreateDir()
	require.NoError(t, err)

	want := []byte("video bytes")
	path := filepath.Join(dir, "abc123.mp4")
	require.NoError(t, os.WriteFile(path, want, 0644))

	got, err := m.Resolve("abc123.mp4")
	require.NoError(t, err)
	assert.Equal(t, path, got)

	// Repeated resolution returns the same bytes.
	for i := 0; i < 3; i++ {
		data, err := os.ReadFile(got)
		require.NoError(t, err)
		assert.Equal(t, want, data)
	}
}

func TestResolveNotFound(t *testing.T) {
	m, err := NewManager(t.TempDir())
	require.NoError(t, err)

	_, err = m.Resolve("nope.mp4")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolveIgnoresNestedDirectories(t *testing.T) {
	m, err := NewManager(t.TempDir())
	require.NoError(t, err)

	dir, err := m.CreateDir()
	require.NoError(t, err)

	nested := filepath.Join(dir, "deeper")
	require.NoError(t, os.MkdirAll(nested, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(nested, "hidden.mp4"), []byte("x"), 0644))

	// Only root and direct subdirectories are scanned.
	_, err = m.Resolve("hidden.mp4")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolveScopedToRoot(t *testing.T) {
	parent := t.TempDir()

	outside := filepath.Join(parent, "outside")
	require.NoError(t, os.MkdirAll(outside, 0755))
	require.NoError(t, os.WriteFile(filepath.Join(outside, "leak.mp4"), []byte("x"), 0644))

	m, err := NewManager(filepath.Join(parent, "root"))
	require.NoError(t, err)

	_, err = m.Resolve("leak.mp4")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestResolveManyStagedFiles(t *testing.T) {
	m, err := NewManager(t.TempDir())
	require.NoError(t, err)

	var last string
	for i := 0; i < 5; i++ {
		dir, err := m.CreateDir()
		require.NoError(t, err)

		name := fmt.Sprintf("video%d.mp4", i)
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(name), 0644))
		last = name
	}

	got, err := m.Resolve(last)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(got, m.Root()))

	data, err := os.ReadFile(got)
	require.NoError(t, err)
	assert.Equal(t, []byte(last), data)
}
