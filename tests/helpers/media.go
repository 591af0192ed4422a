package helpers

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/hbomb79/backdrop/internal/ffmpeg"
	"github.com/stretchr/testify/require"
)

// RequireFfmpeg skips the test unless both ffmpeg and ffprobe are available
// on the host, returning a config pointing at them.
func RequireFfmpeg(t *testing.T) ffmpeg.Config {
	if testing.Short() {
		t.Skip("skipping FFmpeg backed test in short mode")
	}

	ffmpegPath, err := exec.LookPath("ffmpeg")
	if err != nil {
		t.Skip("ffmpeg not found in PATH")
	}
	ffprobePath, err := exec.LookPath("ffprobe")
	if err != nil {
		t.Skip("ffprobe not found in PATH")
	}

	return ffmpeg.Config{FfmpegBinaryPath: ffmpegPath, FfprobeBinaryPath: ffprobePath}
}

// GenerateVideo writes a synthetic H.264 test pattern of the length given (in
// seconds) to path. Keyframes are emitted every second so that stream-copy
// trims land close to the requested boundaries.
func GenerateVideo(t *testing.T, config ffmpeg.Config, path string, seconds int) {
	runFfmpeg(t, config, path,
		"-f", "lavfi", "-i", fmt.Sprintf("testsrc=duration=%d:size=160x120:rate=5", seconds),
		"-g", "5", "-c:v", "libx264", "-preset", "ultrafast", "-pix_fmt", "yuv420p",
	)
}

// GenerateAudio writes a synthetic MP3 sine tone of the length given (in seconds) to path.
func GenerateAudio(t *testing.T, config ffmpeg.Config, path string, seconds int) {
	runFfmpeg(t, config, path,
		"-f", "lavfi", "-i", fmt.Sprintf("sine=frequency=440:duration=%d", seconds),
		"-c:a", "libmp3lame",
	)
}

func runFfmpeg(t *testing.T, config ffmpeg.Config, output string, args ...string) {
	require.NoError(t, os.MkdirAll(filepath.Dir(output), 0o755))

	args = append(append([]string{"-y", "-loglevel", "error"}, args...), output)
	cmd := exec.Command(config.FfmpegBinaryPath, args...)
	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out

	require.NoError(t, cmd.Run(), "ffmpeg failed to generate %s: %s", output, out.String())
}

const fakeFfprobeScript = `#!/bin/sh
printf '{"format":{"duration":"%s"},"streams":[]}'
`

const fakeFfmpegScript = `#!/bin/sh
for arg in "$@"; do out="$arg"; done
echo "$*" >> '%s'
printf 'partial-output' > "$out"
case " $* " in *" %s "*) exit 1 ;; esac
exit 0
`

// FakeFfmpeg writes stand-in ffmpeg and ffprobe executables to a temporary
// directory. The fake ffprobe reports every input as being duration seconds
// long. The fake ffmpeg always writes some bytes to its output, and exits
// with status 1 if its arguments contain failOn (ignored if empty). Every
// ffmpeg invocation is recorded; the recorded argument lists are
// returned by the function returned.
func FakeFfmpeg(t *testing.T, duration string, failOn string) (ffmpeg.Config, func() []string) {
	if runtime.GOOS == "windows" {
		t.Skip("fake FFmpeg binaries require a POSIX shell")
	}

	dir := t.TempDir()
	logPath := filepath.Join(dir, "calls.log")
	if failOn == "" {
		failOn = "--never-matches--"
	}

	ffprobePath := filepath.Join(dir, "ffprobe")
	ffmpegPath := filepath.Join(dir, "ffmpeg")
	require.NoError(t, os.WriteFile(ffprobePath, []byte(fmt.Sprintf(fakeFfprobeScript, duration)), 0o755))
	require.NoError(t, os.WriteFile(ffmpegPath, []byte(fmt.Sprintf(fakeFfmpegScript, logPath, failOn)), 0o755))

	calls := func() []string {
		content, err := os.ReadFile(logPath)
		if os.IsNotExist(err) {
			return nil
		}
		require.NoError(t, err)

		return strings.Split(strings.TrimSpace(string(content)), "\n")
	}

	return ffmpeg.Config{FfmpegBinaryPath: ffmpegPath, FfprobeBinaryPath: ffprobePath}, calls
}
