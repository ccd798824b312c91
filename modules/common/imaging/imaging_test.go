package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// opaquePNG - 테스트용 단색 PNG 생성
func opaquePNG(t *testing.T, width, height int) []byte {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	red := color.RGBA{R: 255, A: 255}
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, red)
		}
	}

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func decodePNG(t *testing.T, data []byte) image.Image {
	t.Helper()
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	return img
}

func alphaAt(img image.Image, x, y int) uint32 {
	_, _, _, a := img.At(x, y).RGBA()
	return a
}

func TestPadToSquareOutputDimensions(t *testing.T) {
	result, err := PadToSquare(opaquePNG(t, 200, 100), 512)
	require.NoError(t, err)

	img := decodePNG(t, result)
	assert.Equal(t, 512, img.Bounds().Dx())
	assert.Equal(t, 512, img.Bounds().Dy())
}

func TestPadToSquareCentersContentWithTransparentBands(t *testing.T) {
	// 200x100 → 100x50 컨텐츠가 100x100 캔버스 중앙에
	result, err := PadToSquare(opaquePNG(t, 200, 100), 100)
	require.NoError(t, err)

	img := decodePNG(t, result)

	// 중앙은 불투명
	assert.NotZero(t, alphaAt(img, 50, 50))

	// 위/아래 띠는 투명
	assert.Zero(t, alphaAt(img, 50, 10))
	assert.Zero(t, alphaAt(img, 50, 90))
}

func TestPadToSquareDoesNotUpscale(t *testing.T) {
	// 40x40 원본은 100x100 캔버스에서 40x40 그대로 유지되어야 한다
	result, err := PadToSquare(opaquePNG(t, 40, 40), 100)
	require.NoError(t, err)

	img := decodePNG(t, result)

	// 컨텐츠 영역 (30,30)-(70,70)
	assert.NotZero(t, alphaAt(img, 31, 31))
	assert.NotZero(t, alphaAt(img, 68, 68))

	// 바깥쪽은 투명
	assert.Zero(t, alphaAt(img, 10, 50))
	assert.Zero(t, alphaAt(img, 50, 10))
	assert.Zero(t, alphaAt(img, 90, 50))
}

func TestPadToSquareSquareInputFillsCanvas(t *testing.T) {
	result, err := PadToSquare(opaquePNG(t, 300, 300), 100)
	require.NoError(t, err)

	img := decodePNG(t, result)
	assert.NotZero(t, alphaAt(img, 1, 1))
	assert.NotZero(t, alphaAt(img, 98, 98))
	assert.NotZero(t, alphaAt(img, 50, 50))
}

func TestPadToSquareRejectsInvalidInput(t *testing.T) {
	_, err := PadToSquare([]byte("not an image"), 512)
	assert.Error(t, err)

	_, err = PadToSquare(opaquePNG(t, 10, 10), 0)
	assert.Error(t, err)
}

func TestTransparentMaskIsFullyTransparent(t *testing.T) {
	data, err := TransparentMask(64)
	require.NoError(t, err)

	img := decodePNG(t, data)
	require.Equal(t, 64, img.Bounds().Dx())
	require.Equal(t, 64, img.Bounds().Dy())

	for y := 0; y < 64; y += 7 {
		for x := 0; x < 64; x += 7 {
			assert.Zero(t, alphaAt(img, x, y), "pixel (%d,%d) should be transparent", x, y)
		}
	}
}

func TestTransparentMaskRejectsInvalidDimension(t *testing.T) {
	_, err := TransparentMask(-1)
	assert.Error(t, err)
}

func TestCompressPreviewRejectsInvalidPNG(t *testing.T) {
	_, err := CompressPreview([]byte("garbage"), 60.0)
	assert.Error(t, err)
}
