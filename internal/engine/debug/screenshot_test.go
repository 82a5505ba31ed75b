package debug

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlipRGBA(t *testing.T) {
	// two rows: bottom red, top blue
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	img, err := FlipRGBA(pixels, 1, 2)
	require.NoError(t, err)

	r, _, b, _ := img.At(0, 0).RGBA()
	assert.Zero(t, r)
	assert.NotZero(t, b)

	r, _, _, _ = img.At(0, 1).RGBA()
	assert.NotZero(t, r)
}

func TestFlipRGBASizeMismatch(t *testing.T) {
	_, err := FlipRGBA(make([]byte, 7), 1, 2)
	assert.Error(t, err)
}

func TestCaptureFromPixels(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	sc := NewScreenshotCapture(dir, "autobahn")
	sc.Now = func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }

	pixels := make([]byte, 4*3*4)
	first, err := sc.CaptureFromPixels(pixels, 4, 3)
	require.NoError(t, err)
	second, err := sc.CaptureFromPixels(pixels, 4, 3)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "autobahn_2024-05-01_12-00-00_001.png"), first)
	assert.NotEqual(t, first, second)

	f, err := os.Open(first)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 4, img.Bounds().Dx())
	assert.Equal(t, 3, img.Bounds().Dy())
}
