package video

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// Binaries holds the resolved ffmpeg and ffprobe executables.
type Binaries struct {
	FFmpeg  string
	FFprobe string
}

var lookPath = exec.LookPath

// ErrFFmpegNotFound is returned when no ffmpeg executable can be located.
var ErrFFmpegNotFound = errors.New("ffmpeg not found; install it or set video.ffmpeg_path")

// LocateBinaries resolves ffmpeg and ffprobe. An explicit ffmpeg path wins,
// and an ffprobe next to it is preferred over the one on PATH.
func LocateBinaries(ffmpegPath string) (Binaries, error) {
	bins := Binaries{FFmpeg: ffmpegPath}

	if bins.FFmpeg != "" {
		sibling := filepath.Join(filepath.Dir(bins.FFmpeg), "ffprobe"+executableSuffix())
		if fileExists(sibling) {
			bins.FFprobe = sibling
		}
	} else if found, err := lookPath("ffmpeg"); err == nil {
		bins.FFmpeg = found
	}

	if bins.FFprobe == "" {
		if found, err := lookPath("ffprobe"); err == nil {
			bins.FFprobe = found
		}
	}

	if bins.FFmpeg == "" {
		return Binaries{}, ErrFFmpegNotFound
	}
	return bins, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

func executableSuffix() string {
	if runtime.GOOS == "windows" {
		return ".exe"
	}
	return ""
}
