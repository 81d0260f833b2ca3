package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tendant/simple-license/pkg/simplelicense"
	"github.com/tendant/simple-license/pkg/simplelicense/sink/fs"
)

func setupFSSinkTest(t *testing.T) (*fs.Sink, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "out")
	sink, err := fs.New(fs.Config{BaseDir: dir})
	require.NoError(t, err)
	return sink, dir
}

func TestFSSinkRequiresBaseDir(t *testing.T) {
	_, err := fs.New(fs.Config{})
	assert.Error(t, err)
}

func TestFSSinkDeliver(t *testing.T) {
	sink, dir := setupFSSinkTest(t)

	location, err := sink.Deliver(context.Background(), &simplelicense.PackagedDownload{
		ArchiveName: "track.mp3.zip",
		Archive:     []byte("zip bytes"),
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "track.mp3.zip"), location)

	data, err := os.ReadFile(location)
	require.NoError(t, err)
	assert.Equal(t, []byte("zip bytes"), data)

	got, err := sink.Get("track.mp3.zip")
	require.NoError(t, err)
	assert.Equal(t, data, got)
	assert.Equal(t, dir, sink.BaseDir())
}

func TestFSSinkOverwritesAndLeavesNoTempFiles(t *testing.T) {
	sink, dir := setupFSSinkTest(t)

	for _, content := range []string{"first", "second"} {
		_, err := sink.Deliver(context.Background(), &simplelicense.PackagedDownload{ArchiveName: "a.zip", Archive: []byte(content)})
		require.NoError(t, err)
	}

	got, err := sink.Get("a.zip")
	require.NoError(t, err)
	assert.Equal(t, []byte("second"), got)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{"a.zip", ".simple-license.lock"}, names)
}

func TestFSSinkStripsDirectories(t *testing.T) {
	sink, dir := setupFSSinkTest(t)

	location, err := sink.Deliver(context.Background(), &simplelicense.PackagedDownload{
		ArchiveName: "../../escape.zip",
		Archive:     []byte("x"),
	})
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "escape.zip"), location)
}

func TestFSSinkRejectsInvalidNames(t *testing.T) {
	sink, _ := setupFSSinkTest(t)

	for _, name := range []string{"", ".simple-license.lock"} {
		_, err := sink.Deliver(context.Background(), &simplelicense.PackagedDownload{ArchiveName: name})
		assert.ErrorIs(t, err, simplelicense.ErrInvalidFileName, name)
	}
	_, err := sink.Deliver(context.Background(), nil)
	assert.ErrorIs(t, err, simplelicense.ErrInvalidFileName)
}

func TestFSSinkGetMissing(t *testing.T) {
	sink, _ := setupFSSinkTest(t)
	_, err := sink.Get("missing.zip")
	assert.ErrorIs(t, err, simplelicense.ErrSinkNotFound)
}

func TestFSSinkConcurrentDeliveries(t *testing.T) {
	sink, dir := setupFSSinkTest(t)

	var wg sync.WaitGroup
	for _, name := range []string{"a.zip", "b.zip", "c.zip", "d.zip"} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := sink.Deliver(context.Background(), &simplelicense.PackagedDownload{ArchiveName: name, Archive: []byte(name)})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	for _, name := range []string{"a.zip", "b.zip", "c.zip", "d.zip"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		require.NoError(t, err)
		assert.Equal(t, []byte(name), data)
	}
}
