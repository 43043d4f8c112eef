package meta

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"
	"strconv"
	"strings"

	"github.com/franz/djtool/internal/util"
)

// FFprobeInfo represents the output from ffprobe
type FFprobeInfo struct {
	Format *FFprobeFormat `json:"format"`
}

// FFprobeFormat represents container format metadata
type FFprobeFormat struct {
	Filename   string            `json:"filename"`
	FormatName string            `json:"format_name"`
	Duration   string            `json:"duration"`
	Size       string            `json:"size"`
	BitRate    string            `json:"bit_rate"`
	Tags       map[string]string `json:"tags"`
}

// Tag looks up a tag value case-insensitively. ffprobe preserves whatever
// casing the container used (ARTIST, Artist, artist all occur in the wild).
func (f *FFprobeFormat) Tag(name string) string {
	for k, v := range f.Tags {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}

// DurationSeconds parses the format duration, or 0 if absent
func (f *FFprobeFormat) DurationSeconds() float64 {
	d, err := strconv.ParseFloat(f.Duration, 64)
	if err != nil {
		return 0
	}
	return d
}

// RunFFprobe executes ffprobe and parses the JSON output. The command runs
// under ctx, so a wrapping timeout kills a hung probe rather than the scan.
func RunFFprobe(ctx context.Context, path string) (*FFprobeInfo, error) {
	if _, err := exec.LookPath("ffprobe"); err != nil {
		return nil, util.ErrNotFound
	}

	cmd := exec.CommandContext(ctx, "ffprobe",
		"-v", "quiet",
		"-print_format", "json",
		"-show_format",
		path,
	)

	output, err := cmd.Output()
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("ffprobe timed out: %w", ctx.Err())
		}
		if exitErr, ok := err.(*exec.ExitError); ok {
			return nil, fmt.Errorf("ffprobe failed: %s", string(exitErr.Stderr))
		}
		return nil, fmt.Errorf("ffprobe execution failed: %w", err)
	}

	var info FFprobeInfo
	if err := json.Unmarshal(output, &info); err != nil {
		return nil, fmt.Errorf("failed to parse ffprobe output: %w", err)
	}
	if info.Format == nil {
		return nil, fmt.Errorf("ffprobe returned no format block for %s", path)
	}

	return &info, nil
}

// CheckFFprobeAvailable checks if ffprobe is available in PATH
func CheckFFprobeAvailable() bool {
	_, err := exec.LookPath("ffprobe")
	return err == nil
}
