package fetch_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/hbomb79/backdrop/internal/background"
	"github.com/hbomb79/backdrop/internal/fetch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var errExpected = errors.New("test: expected error")

type mockDownloader struct {
	mock.Mock
}

func (m *mockDownloader) Download(ctx context.Context, req fetch.Request) error {
	args := m.Called(req)
	return args.Error(0)
}

// writesFile simulates a successful download by creating the requested file
func writesFile(args mock.Arguments) {
	//nolint:forcetypeassert
	req := args.Get(0).(fetch.Request)
	_ = os.WriteFile(filepath.Join(req.Dir, req.Filename), []byte("media"), 0o644)
}

var (
	testVideo = background.VideoBackground{URI: "https://example.com/v", Filename: "parkour.mp4", Credit: "bbswitzer", Position: background.Fixed("center")}
	testAudio = background.AudioBackground{URI: "https://example.com/a", Filename: "lofi.mp3", Credit: "Lofi"}
)

func newFetcher(t *testing.T) (*fetch.Fetcher, *mockDownloader, string) {
	root := t.TempDir()
	dl := &mockDownloader{}
	t.Cleanup(func() { dl.AssertExpectations(t) })

	return fetch.New(filepath.Join(root, "video"), filepath.Join(root, "audio"), dl), dl, root
}

func Test_EnsureVideo_DownloadsOnceThenUsesCache(t *testing.T) {
	fetcher, dl, root := newFetcher(t)

	expected := fetch.Request{
		URI:      testVideo.URI,
		Dir:      filepath.Join(root, "video"),
		Filename: "bbswitzer-parkour.mp4",
		Profile:  fetch.VideoProfile,
	}
	dl.On("Download", expected).Run(writesFile).Return(nil).Once()

	require.NoError(t, fetcher.EnsureVideo(context.Background(), testVideo))
	require.NoError(t, fetcher.EnsureVideo(context.Background(), testVideo))

	dl.AssertNumberOfCalls(t, "Download", 1)
	assert.FileExists(t, fetcher.VideoPath(testVideo))
}

func Test_EnsureAudio_UsesAudioProfile(t *testing.T) {
	fetcher, dl, root := newFetcher(t)

	dl.On("Download", fetch.Request{
		URI:      testAudio.URI,
		Dir:      filepath.Join(root, "audio"),
		Filename: "Lofi-lofi.mp3",
		Profile:  fetch.AudioProfile,
	}).Run(writesFile).Return(nil).Once()

	require.NoError(t, fetcher.EnsureAudio(context.Background(), testAudio))
	assert.Equal(t, filepath.Join(root, "audio", "Lofi-lofi.mp3"), fetcher.AudioPath(testAudio))
}

func Test_Ensure_ExistingFileSkipsDownload(t *testing.T) {
	fetcher, dl, _ := newFetcher(t)

	path := fetcher.AudioPath(testAudio)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("cached"), 0o644))

	require.NoError(t, fetcher.EnsureAudio(context.Background(), testAudio))
	dl.AssertNotCalled(t, "Download", mock.Anything)
}

func Test_Ensure_CreatesCacheDirectory(t *testing.T) {
	fetcher, dl, root := newFetcher(t)

	dl.On("Download", mock.Anything).Return(nil).Once()
	require.NoError(t, fetcher.EnsureVideo(context.Background(), testVideo))

	assert.DirExists(t, filepath.Join(root, "video"))
}

func Test_Ensure_DownloadErrorPropagates(t *testing.T) {
	fetcher, dl, _ := newFetcher(t)

	dl.On("Download", mock.Anything).Return(errExpected).Once()
	err := fetcher.EnsureVideo(context.Background(), testVideo)

	assert.ErrorIs(t, err, errExpected)
	assert.NoFileExists(t, fetcher.VideoPath(testVideo))
}

func Test_HasVideo_RequiresRegularFile(t *testing.T) {
	fetcher, dl, _ := newFetcher(t)
	assert.False(t, fetcher.HasVideo(testVideo))

	// A directory squatting on the cache path is not a cached background
	require.NoError(t, os.MkdirAll(fetcher.VideoPath(testVideo), 0o755))
	assert.False(t, fetcher.HasVideo(testVideo))

	dl.On("Download", mock.Anything).Return(nil).Once()
	require.NoError(t, fetcher.EnsureVideo(context.Background(), testVideo))
}

func Test_HasAudio(t *testing.T) {
	fetcher, _, _ := newFetcher(t)
	assert.False(t, fetcher.HasAudio(testAudio))

	path := fetcher.AudioPath(testAudio)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("cached"), 0o644))
	assert.True(t, fetcher.HasAudio(testAudio))
}
