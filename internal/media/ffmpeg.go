package media

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
)

// DefaultCodec is used when a caller does not specify one.
const DefaultCodec = "libx264"

// ErrNoInput is returned when a concatenation is requested with no clips.
var ErrNoInput = errors.New("media: no input clips provided")

// ProcessingError wraps any ffmpeg/ffprobe failure (corrupt file, codec
// error, unsupported format) behind a single type. Callers do not
// distinguish subtypes; the underlying stderr is carried for the message.
type ProcessingError struct {
	Op     string
	Stderr string
	Err    error
}

func (e *ProcessingError) Error() string {
	msg := fmt.Sprintf("media: %s: %v", e.Op, e.Err)
	if s := strings.TrimSpace(e.Stderr); s != "" {
		msg += ": " + s
	}
	return msg
}

func (e *ProcessingError) Unwrap() error {
	return e.Err
}

// FFmpeg renders clip compositions with the ffmpeg CLI. It is the media
// composition adapter: every operation here shells out, and Render is the
// slow one (seconds to minutes, proportional to duration and resolution).
type FFmpeg struct {
	ffmpegPath  string
	ffprobePath string
	logger      zerolog.Logger
}

// NewFFmpeg creates an adapter using the given binary paths. Empty paths
// default to resolution via PATH.
func NewFFmpeg(ffmpegPath, ffprobePath string, logger zerolog.Logger) *FFmpeg {
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}
	if ffprobePath == "" {
		ffprobePath = "ffprobe"
	}
	return &FFmpeg{ffmpegPath: ffmpegPath, ffprobePath: ffprobePath, logger: logger}
}

// Render encodes the composition to outputPath. This is the only clip
// operation with a filesystem side effect. Concurrent renders to the same
// output path are not coordinated; the last writer wins.
func (f *FFmpeg) Render(ctx context.Context, clip Clip, outputPath, codec string) error {
	args, err := buildRenderArgs(clip, outputPath, codec)
	if err != nil {
		return err
	}
	_, err = f.run(ctx, f.ffmpegPath, "render", args)
	return err
}

// Concatenate joins the videos in order into outputPath using the concat
// demuxer. It tries a stream copy first and falls back to re-encoding when
// the inputs disagree on codecs.
func (f *FFmpeg) Concatenate(ctx context.Context, paths []string, outputPath string) error {
	if len(paths) == 0 {
		return ErrNoInput
	}
	if len(paths) == 1 {
		return copyFile(paths[0], outputPath)
	}

	listFile, err := writeConcatList(paths)
	if err != nil {
		return &ProcessingError{Op: "concatenate", Err: err}
	}
	defer func() { _ = os.Remove(listFile) }()

	copyArgs := []string{"-y", "-f", "concat", "-safe", "0", "-i", listFile, "-c", "copy", outputPath}
	if _, err := f.run(ctx, f.ffmpegPath, "concatenate", copyArgs); err == nil {
		return nil
	}

	reencodeArgs := []string{
		"-y", "-f", "concat", "-safe", "0", "-i", listFile,
		"-c:v", DefaultCodec, "-preset", "fast", "-crf", "23",
		"-c:a", "aac", "-b:a", "128k",
		outputPath,
	}
	_, err = f.run(ctx, f.ffmpegPath, "concatenate", reencodeArgs)
	return err
}

// FirstFrame decodes the first frame of the video as PNG bytes.
func (f *FFmpeg) FirstFrame(ctx context.Context, videoPath string) ([]byte, error) {
	args := []string{"-i", videoPath, "-frames:v", "1", "-f", "image2", "-c:v", "png", "pipe:1"}
	return f.run(ctx, f.ffmpegPath, "first frame", args)
}

// Duration returns the duration of a media file in seconds, via ffprobe.
func (f *FFmpeg) Duration(ctx context.Context, path string) (float64, error) {
	args := []string{
		"-v", "error",
		"-show_entries", "format=duration",
		"-of", "default=noprint_wrappers=1:nokey=1",
		path,
	}
	out, err := f.run(ctx, f.ffprobePath, "probe duration", args)
	if err != nil {
		return 0, err
	}
	var duration float64
	if _, err := fmt.Sscanf(strings.TrimSpace(string(out)), "%f", &duration); err != nil {
		return 0, &ProcessingError{Op: "probe duration", Err: fmt.Errorf("parse duration: %w", err)}
	}
	return duration, nil
}

func (f *FFmpeg) run(ctx context.Context, bin, op string, args []string) ([]byte, error) {
	f.logger.Debug().Str("bin", bin).Strs("args", args).Msg("media: exec")

	cmd := exec.CommandContext(ctx, bin, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("media: %s cancelled: %w", op, ctx.Err())
		}
		return nil, &ProcessingError{Op: op, Stderr: stderr.String(), Err: err}
	}
	return stdout.Bytes(), nil
}

// buildRenderArgs turns a clip description into a single ffmpeg invocation.
// Input order: source video, then one input per image overlay, then the
// audio track if one was attached.
func buildRenderArgs(clip Clip, outputPath, codec string) ([]string, error) {
	if clip.source == "" {
		return nil, &ProcessingError{Op: "render", Err: errors.New("clip has no source video")}
	}
	if outputPath == "" {
		return nil, &ProcessingError{Op: "render", Err: errors.New("output path is required")}
	}
	if codec == "" {
		codec = DefaultCodec
	}

	args := []string{"-y", "-i", clip.source}
	for _, img := range clip.images {
		args = append(args, "-i", img.Path)
	}
	audioIndex := -1
	if clip.audio != "" {
		audioIndex = 1 + len(clip.images)
		args = append(args, "-i", clip.audio)
	}

	var filters []string
	cur := "[0:v]"
	label := 0
	for _, t := range clip.texts {
		next := fmt.Sprintf("[v%d]", label)
		filters = append(filters, cur+drawtextFilter(t)+next)
		cur = next
		label++
	}
	for i, img := range clip.images {
		scaled := fmt.Sprintf("[ovr%d]", i)
		filters = append(filters, fmt.Sprintf("[%d:v]scale=-1:%d%s", i+1, img.ScaleHeight, scaled))
		next := fmt.Sprintf("[v%d]", label)
		filters = append(filters, cur+scaled+overlayFilter(img)+next)
		cur = next
		label++
	}

	if len(filters) > 0 {
		args = append(args, "-filter_complex", strings.Join(filters, ";"), "-map", cur)
	} else {
		args = append(args, "-map", "0:v")
	}

	if audioIndex >= 0 {
		args = append(args, "-map", fmt.Sprintf("%d:a", audioIndex), "-c:a", "aac")
	} else {
		args = append(args, "-map", "0:a?", "-c:a", "copy")
	}

	args = append(args, "-c:v", codec, outputPath)
	return args, nil
}

func drawtextFilter(t TextOverlay) string {
	var b strings.Builder
	b.WriteString("drawtext=text='")
	b.WriteString(escapeDrawtext(t.Text))
	b.WriteString("':fontsize=70:fontcolor=white:")
	b.WriteString(textPosition(t.Pos))
	if t.Duration > 0 {
		fmt.Fprintf(&b, ":enable='between(t,0,%g)'", t.Duration)
	}
	return b.String()
}

func overlayFilter(img ImageOverlay) string {
	var b strings.Builder
	b.WriteString("overlay=")
	b.WriteString(overlayPosition(img.Pos))
	if img.Duration > 0 {
		fmt.Fprintf(&b, ":enable='between(t,0,%g)'", img.Duration)
	}
	return b.String()
}

func textPosition(p Position) string {
	if p.Explicit {
		return fmt.Sprintf("x=%g:y=%g", p.X, p.Y)
	}
	switch p.Anchor {
	case AnchorBottom:
		return "x=(w-text_w)/2:y=h-text_h-10"
	case AnchorTop:
		return "x=(w-text_w)/2:y=10"
	default:
		return "x=(w-text_w)/2:y=(h-text_h)/2"
	}
}

func overlayPosition(p Position) string {
	if p.Explicit {
		return fmt.Sprintf("%g:%g", p.X, p.Y)
	}
	switch p.Anchor {
	case AnchorBottom:
		return "(W-w)/2:H-h-10"
	case AnchorTop:
		return "(W-w)/2:10"
	default:
		return "(W-w)/2:(H-h)/2"
	}
}

// escapeDrawtext protects a caption for use inside the single-quoted
// text='...' option value. The filter tokenizer treats every character
// inside a quoted section literally, including backslashes, so the only
// character that needs handling is the quote itself: close the section,
// emit a backslash-escaped quote, reopen.
func escapeDrawtext(text string) string {
	return strings.ReplaceAll(text, `'`, `'\''`)
}

func writeConcatList(paths []string) (string, error) {
	f, err := os.CreateTemp("", "concat-*.txt")
	if err != nil {
		return "", fmt.Errorf("create concat list: %w", err)
	}

	discard := func(err error) (string, error) {
		_ = f.Close()
		_ = os.Remove(f.Name())
		return "", err
	}

	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			return discard(fmt.Errorf("resolve %s: %w", path, err))
		}
		escaped := strings.ReplaceAll(abs, "'", `'\''`)
		if _, err := fmt.Fprintf(f, "file '%s'\n", escaped); err != nil {
			return discard(fmt.Errorf("write concat list: %w", err))
		}
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(f.Name())
		return "", fmt.Errorf("write concat list: %w", err)
	}
	return f.Name(), nil
}

// copyFile streams src into dst. Inputs can run to gigabytes, so the bytes
// never sit in memory.
func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return &ProcessingError{Op: "concatenate", Err: err}
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return &ProcessingError{Op: "concatenate", Err: err}
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return &ProcessingError{Op: "concatenate", Err: err}
	}
	if err := out.Close(); err != nil {
		return &ProcessingError{Op: "concatenate", Err: err}
	}
	return nil
}
