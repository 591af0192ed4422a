package ffmpeg_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/hbomb79/backdrop/internal/ffmpeg"
	"github.com/hbomb79/backdrop/tests/helpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Trim_FailedExitWithPartialOutput(t *testing.T) {
	config, calls := helpers.FakeFfmpeg(t, "600.000000", "-c:v copy")
	output := filepath.Join(t.TempDir(), "job", "background.mp4")

	err := ffmpeg.NewTrimmer(config).Trim(context.Background(), ffmpeg.TrimRequest{
		Input: "/cache/video.mp4", Output: output, Start: 200, Duration: 30, Mode: ffmpeg.StreamCopy,
	})

	var extractErr *ffmpeg.ExtractError
	require.ErrorAs(t, err, &extractErr)
	assert.Equal(t, output, extractErr.Output)
	assert.Contains(t, err.Error(), "exit status 1")
	assert.Len(t, calls(), 1)
}

func Test_Trim_SuccessfulExit(t *testing.T) {
	config, calls := helpers.FakeFfmpeg(t, "600.000000", "-c:v copy")
	output := filepath.Join(t.TempDir(), "job", "background.mp4")

	err := ffmpeg.NewTrimmer(config).Trim(context.Background(), ffmpeg.TrimRequest{
		Input: "/cache/video.mp4", Output: output, Start: 200, Duration: 30, Mode: ffmpeg.Reencode,
	})
	require.NoError(t, err)
	assert.FileExists(t, output)

	invocations := calls()
	require.Len(t, invocations, 1)
	assert.Contains(t, invocations[0], "-c:v libx264")
}

func Test_Trim_StaleOutputIsRemoved(t *testing.T) {
	config, _ := helpers.FakeFfmpeg(t, "600.000000", "-c:v copy")
	output := filepath.Join(t.TempDir(), "background.mp4")
	require.NoError(t, os.WriteFile(output, []byte("previous attempt"), 0o644))

	err := ffmpeg.NewTrimmer(config).Trim(context.Background(), ffmpeg.TrimRequest{
		Input: "/cache/video.mp4", Output: output, Start: 200, Duration: 30, Mode: ffmpeg.StreamCopy,
	})
	assert.Error(t, err)

	content, err := os.ReadFile(output)
	require.NoError(t, err)
	assert.Equal(t, "partial-output", string(content))
}

func Test_Prober_Duration(t *testing.T) {
	config, _ := helpers.FakeFfmpeg(t, "612.480000", "")

	duration, err := ffmpeg.NewProber(config).Duration("/cache/video.mp4")
	require.NoError(t, err)
	assert.InDelta(t, 612.48, duration, 0.001)
}
