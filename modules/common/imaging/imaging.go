package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg" // JPEG 디코더 등록
	"image/png"
	"log"
	"math"

	_ "github.com/kolesa-team/go-webp/decoder" // WebP 디코더 등록
	"github.com/kolesa-team/go-webp/encoder"
	"github.com/kolesa-team/go-webp/webp"
)

// PadToSquare - 원본 이미지를 dim×dim 투명 정사각 캔버스 중앙에 배치
// 비율은 유지하고, 한 변이 dim을 넘는 경우에만 축소한다 (확대 없음)
func PadToSquare(src []byte, dim int) ([]byte, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("invalid target dimension: %d", dim)
	}

	img, format, err := image.Decode(bytes.NewReader(src))
	if err != nil {
		return nil, fmt.Errorf("failed to decode source image: %w", err)
	}

	bounds := img.Bounds()
	srcWidth := bounds.Dx()
	srcHeight := bounds.Dy()

	// 한 변이 dim을 넘을 때만 축소
	scale := 1.0
	if srcWidth > dim || srcHeight > dim {
		scale = math.Min(float64(dim)/float64(srcWidth), float64(dim)/float64(srcHeight))
	}

	newWidth := int(math.Round(float64(srcWidth) * scale))
	newHeight := int(math.Round(float64(srcHeight) * scale))

	// 투명 캔버스 생성, 중앙 정렬 오프셋
	dst := image.NewRGBA(image.Rect(0, 0, dim, dim))
	xOffset := (dim - newWidth) / 2
	yOffset := (dim - newHeight) / 2

	if scale == 1.0 {
		draw.Draw(dst,
			image.Rect(xOffset, yOffset, xOffset+newWidth, yOffset+newHeight),
			img, bounds.Min, draw.Src)
	} else {
		// Nearest Neighbor 방식으로 리사이즈
		for y := 0; y < newHeight; y++ {
			for x := 0; x < newWidth; x++ {
				srcX := bounds.Min.X + int(float64(x)/scale)
				srcY := bounds.Min.Y + int(float64(y)/scale)
				dst.Set(x+xOffset, y+yOffset, img.At(srcX, srcY))
			}
		}
	}

	log.Printf("🖼️  Padded %s image %dx%d → %dx%d canvas (content %dx%d)",
		format, srcWidth, srcHeight, dim, dim, newWidth, newHeight)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("failed to encode padded image: %w", err)
	}
	return buf.Bytes(), nil
}

// TransparentMask - 완전 투명한 dim×dim PNG 마스크 생성
// 전체가 투명이면 edit API는 이미지 전체를 편집 대상으로 본다
func TransparentMask(dim int) ([]byte, error) {
	if dim <= 0 {
		return nil, fmt.Errorf("invalid mask dimension: %d", dim)
	}

	mask := image.NewRGBA(image.Rect(0, 0, dim, dim))

	var buf bytes.Buffer
	if err := png.Encode(&buf, mask); err != nil {
		return nil, fmt.Errorf("failed to encode mask: %w", err)
	}
	return buf.Bytes(), nil
}

// CompressPreview - 생성 결과 PNG를 모니터 미리보기용 WebP로 변환
func CompressPreview(pngData []byte, quality float32) ([]byte, error) {
	img, err := png.Decode(bytes.NewReader(pngData))
	if err != nil {
		return nil, fmt.Errorf("failed to decode PNG: %w", err)
	}

	options, err := encoder.NewLossyEncoderOptions(encoder.PresetDefault, quality)
	if err != nil {
		return nil, fmt.Errorf("failed to create WebP encoder options: %w", err)
	}

	var webpBuffer bytes.Buffer
	if err := webp.Encode(&webpBuffer, img, options); err != nil {
		return nil, fmt.Errorf("failed to encode WebP: %w", err)
	}

	webpData := webpBuffer.Bytes()

	log.Printf("✅ Preview compressed: %d bytes → %d bytes (%.1f%% reduction)",
		len(pngData), len(webpData),
		float64(len(pngData)-len(webpData))/float64(len(pngData))*100)

	return webpData, nil
}
