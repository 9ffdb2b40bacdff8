package ports

import "context"

// Transcoder is the capability boundary around the external media tool.
// All produced clips share one geometry/frame-rate/pixel-format contract
// so Concatenate can join them without re-encoding. Any implementation
// works: an external process, a linked library, or a fake in tests.
type Transcoder interface {
	// NormalizeImage renders a still image into a fixed-duration,
	// audio-less clip at the standard geometry.
	NormalizeImage(ctx context.Context, source, outPath string, seconds float64) error

	// NormalizeVideo trims the source to at most maxSeconds, applies the
	// standard geometry, and re-encodes audio to the fixed codec/bitrate.
	NormalizeVideo(ctx context.Context, source, outPath string, maxSeconds float64) error

	// Concatenate joins the clips named in listFile (one `file '<path>'`
	// line each) into outPath via stream copy, never re-encoding.
	Concatenate(ctx context.Context, listFile, outPath string) error

	// BlankClip generates a black, silent placeholder clip.
	BlankClip(ctx context.Context, outPath string, seconds float64) error
}
