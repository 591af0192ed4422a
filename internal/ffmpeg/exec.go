package ffmpeg

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"

	"github.com/floostack/transcoder"
	"github.com/floostack/transcoder/ffmpeg"
	"github.com/hbomb79/backdrop/pkg/logger"
)

var (
	log = logger.Get("FFmpeg")

	ErrNoOutput = errors.New("ffmpeg produced no output")

	messageMatcher = regexp.MustCompile(`(?s)message: ({.*})`)
)

// ExtractError is returned when FFmpeg fails to produce the requested
// output file, either because the command failed or because it exited
// without writing anything.
type ExtractError struct {
	Input  string
	Output string
	Err    error
}

func (e *ExtractError) Error() string {
	return fmt.Sprintf("failed to extract %s to %s: %s", e.Input, e.Output, e.Err)
}

func (e *ExtractError) Unwrap() error { return e.Err }

type FfmpegProgress struct {
	FramesProcessed string
	CurrentTime     string
	CurrentBitrate  string
	Progress        float64
	Speed           string
}

type TranscodeCommand struct {
	inputPath       string
	outputPath      string
	transcodeConfig *Config
	runningCommand  *exec.Cmd
}

func NewCmd(input string, output string, config *Config) *TranscodeCommand {
	return &TranscodeCommand{input, output, config, nil}
}

// Run executes FFmpeg with the options provided, delivering progress updates to
// the handler (if non-nil). The output directory is created if it is missing.
// A non-zero exit status, or a missing or empty output, is reported as an
// ExtractError even if FFmpeg managed to write part of the output.
func (cmd *TranscodeCommand) Run(ctx context.Context, ffmpegConfig transcoder.Options, updateHandler func(*FfmpegProgress)) error {
	transcoder := ffmpeg.
		New(&ffmpeg.Config{
			ProgressEnabled: true,
			FfmpegBinPath:   cmd.transcodeConfig.FfmpegBinaryPath,
			FfprobeBinPath:  cmd.transcodeConfig.FfprobeBinaryPath,
		}).
		Input(cmd.inputPath).
		Output(cmd.outputPath).
		WithContext(&ctx)

	if err := os.MkdirAll(filepath.Dir(cmd.outputPath), os.ModePerm); err != nil {
		return &ExtractError{cmd.inputPath, cmd.outputPath, err}
	}

	// A stale output from a previous attempt would hide a failure of this one
	if err := os.Remove(cmd.outputPath); err != nil && !errors.Is(err, os.ErrNotExist) {
		return &ExtractError{cmd.inputPath, cmd.outputPath, err}
	}

	progressChannel, err := transcoder.Start(ffmpegConfig)
	if err != nil {
		return &ExtractError{cmd.inputPath, cmd.outputPath, parseFfmpegError(err)}
	}

	cmd.runningCommand = transcoder.GetRunningCmdInstance()

	for prog := range progressChannel {
		if updateHandler == nil {
			continue
		}

		updateHandler(&FfmpegProgress{
			FramesProcessed: prog.GetFramesProcessed(),
			CurrentTime:     prog.GetCurrentTime(),
			CurrentBitrate:  prog.GetCurrentBitrate(),
			Progress:        prog.GetProgress(),
			Speed:           prog.GetSpeed(),
		})
	}

	log.Emit(logger.DEBUG, "FFmpeg command %s has closed progress channel\n", cmd)
	if err := ctx.Err(); err != nil {
		return err
	}

	// The progress channel is closed only after the command has been waited on
	if cmd.runningCommand != nil && cmd.runningCommand.ProcessState != nil && !cmd.runningCommand.ProcessState.Success() {
		ps := cmd.runningCommand.ProcessState
		return &ExtractError{cmd.inputPath, cmd.outputPath, fmt.Errorf("ffmpeg exited with %s", ps)}
	}

	return cmd.verifyOutput()
}

func (cmd *TranscodeCommand) verifyOutput() error {
	info, err := os.Stat(cmd.outputPath)
	if err != nil {
		return &ExtractError{cmd.inputPath, cmd.outputPath, err}
	}
	if info.Size() == 0 {
		return &ExtractError{cmd.inputPath, cmd.outputPath, ErrNoOutput}
	}

	return nil
}

func (cmd *TranscodeCommand) InputPath() string {
	return cmd.inputPath
}

func (cmd *TranscodeCommand) OutputPath() string {
	return cmd.outputPath
}

func (cmd *TranscodeCommand) String() string {
	var pid int = -1
	if cmd.runningCommand != nil && cmd.runningCommand.Process != nil {
		pid = cmd.runningCommand.Process.Pid
	}

	return fmt.Sprintf("{ffmpeg pid=%d | in_path=%s | out_path = %s}", pid, cmd.inputPath, cmd.outputPath)
}

func parseFfmpegError(err error) error {
	// Try and pick out some relevant information from the HUGE
	// output log from ffmpeg. The error we get contains lots of information
	// about how the binary was compiled... this is useless info, we just
	// want the 'message' JSON that is encoded inside.
	groups := messageMatcher.FindStringSubmatch(err.Error())
	if len(groups) == 0 {
		return err
	}

	// ffmpeg error is returned as a JSON encoded string. Unmarshal so we can extract the
	// error string..
	var out map[string]interface{}
	if jsonErr := json.Unmarshal([]byte(groups[1]), &out); jsonErr != nil {
		// We failed to extract the info.. just use the entire string as our error
		return errors.New(groups[1])
	}

	ffmpegException, ok := out["error"].(map[string]interface{})
	if !ok {
		return errors.New(groups[1])
	}
	if msg, ok := ffmpegException["string"].(string); ok {
		return errors.New(msg)
	}

	return errors.New(groups[1])
}
