package ffmpeg

import (
	"context"
	"fmt"
	"os/exec"
	"strconv"
)

// Profile fixes the output geometry shared by every produced clip.
type Profile struct {
	Width  int
	Height int
	FPS    int
}

type Adapter struct {
	ffmpeg  string
	profile Profile
}

func New(ffmpegPath string, p Profile) *Adapter {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	return &Adapter{ffmpeg: ffmpegPath, profile: p}
}

func (a *Adapter) NormalizeImage(ctx context.Context, source, outPath string, seconds float64) error {
	args := []string{
		"-y",
		"-loop", "1",
		"-t", fmtSeconds(seconds),
		"-i", source,
		"-vf", a.scalePad(),
		"-r", strconv.Itoa(a.profile.FPS),
		"-pix_fmt", "yuv420p",
		"-an",
		outPath,
	}
	return a.run(ctx, "normalize image", args)
}

func (a *Adapter) NormalizeVideo(ctx context.Context, source, outPath string, maxSeconds float64) error {
	args := []string{
		"-y",
		"-i", source,
		"-t", fmtSeconds(maxSeconds),
		"-vf", a.scalePad(),
		"-r", strconv.Itoa(a.profile.FPS),
		"-pix_fmt", "yuv420p",
		"-c:a", "aac",
		"-b:a", "128k",
		outPath,
	}
	return a.run(ctx, "normalize video", args)
}

func (a *Adapter) Concatenate(ctx context.Context, listFile, outPath string) error {
	args := []string{
		"-y",
		"-f", "concat",
		"-safe", "0",
		"-i", listFile,
		"-c", "copy",
		outPath,
	}
	return a.run(ctx, "concatenate", args)
}

func (a *Adapter) BlankClip(ctx context.Context, outPath string, seconds float64) error {
	src := fmt.Sprintf("color=c=black:s=%dx%d:d=%s", a.profile.Width, a.profile.Height, fmtSeconds(seconds))
	args := []string{
		"-y",
		"-f", "lavfi",
		"-i", src,
		"-r", strconv.Itoa(a.profile.FPS),
		"-pix_fmt", "yuv420p",
		outPath,
	}
	return a.run(ctx, "blank clip", args)
}

func (a *Adapter) run(ctx context.Context, op string, args []string) error {
	cmd := exec.CommandContext(ctx, a.ffmpeg, args...)
	b, err := cmd.CombinedOutput()
	if err != nil {
		return fmt.Errorf("ffmpeg %s: %w\n%s", op, err, string(b))
	}
	return nil
}

// scalePad preserves aspect ratio, then letterboxes to exactly WxH.
func (a *Adapter) scalePad() string {
	w, h := a.profile.Width, a.profile.Height
	return fmt.Sprintf("scale=w=%d:h=%d:force_original_aspect_ratio=decrease,pad=%d:%d:(ow-iw)/2:(oh-ih)/2", w, h, w, h)
}

func fmtSeconds(sec float64) string {
	return strconv.FormatFloat(sec, 'f', -1, 64)
}
