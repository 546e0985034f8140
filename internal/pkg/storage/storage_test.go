package storage

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := NewLocal(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Save(ctx, "ab/blob.txt", strings.NewReader("payload")))

	rc, err := store.Open(ctx, "ab/blob.txt")
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))

	require.NoError(t, store.Remove(ctx, "ab/blob.txt"))
	_, err = store.Open(ctx, "ab/blob.txt")
	assert.Error(t, err)

	// Removing twice is fine.
	assert.NoError(t, store.Remove(ctx, "ab/blob.txt"))
}

func TestFitJPEG(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 800, 400))
	for x := 0; x < 800; x++ {
		for y := 0; y < 400; y++ {
			src.Set(x, y, color.RGBA{R: uint8(x % 256), G: uint8(y % 256), A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, src))

	out, err := NewImageProcessor().FitJPEG(&buf, 200, 200)
	require.NoError(t, err)

	decoded, err := jpeg.Decode(out)
	require.NoError(t, err)

	bounds := decoded.Bounds()
	assert.LessOrEqual(t, bounds.Dx(), 200)
	assert.LessOrEqual(t, bounds.Dy(), 200)
	// Aspect ratio preserved: 800x400 fits 200x200 as 200x100.
	assert.Equal(t, 200, bounds.Dx())
	assert.Equal(t, 100, bounds.Dy())
}

func TestFitJPEGRejectsNonImage(t *testing.T) {
	_, err := NewImageProcessor().FitJPEG(strings.NewReader("definitely not an image"), 200, 200)
	assert.Error(t, err)
}
