package gpu

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, img image.Image) []byte {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestNewTextureFromBytesUploadsPixels(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 3, 2))
	img.SetRGBA(0, 0, color.RGBA{R: 255, A: 255})
	img.SetRGBA(2, 1, color.RGBA{B: 255, A: 255})

	ctx := newFakeContext()
	tex, err := NewTextureFromBytes(ctx, encodePNG(t, img), "Test")
	require.NoError(t, err)

	assert.Equal(t, uint32(3), tex.Width)
	assert.Equal(t, uint32(2), tex.Height)

	require.Len(t, ctx.textures, 1)
	desc := ctx.textures[0]
	assert.Equal(t, wgpu.TextureFormatRGBA8UnormSrgb, desc.Format)
	assert.Equal(t, wgpu.TextureUsageTextureBinding|wgpu.TextureUsageCopyDst, desc.Usage)

	require.Len(t, ctx.textureWrites, 1)
	write := ctx.textureWrites[0]
	assert.Equal(t, uint32(12), write.layout.BytesPerRow)
	assert.Equal(t, uint32(2), write.layout.RowsPerImage)
	require.Len(t, write.data, 3*2*4)

	// First pixel is opaque red.
	assert.Equal(t, []byte{255, 0, 0, 255}, write.data[0:4])
	// Last pixel is opaque blue.
	assert.Equal(t, []byte{0, 0, 255, 255}, write.data[20:24])
}

func TestNewTextureFromBytesConvertsNonRGBA(t *testing.T) {
	// Grayscale PNG decodes to *image.Gray and must be converted.
	img := image.NewGray(image.Rect(0, 0, 2, 2))
	img.SetGray(0, 0, color.Gray{Y: 128})

	ctx := newFakeContext()
	tex, err := NewTextureFromBytes(ctx, encodePNG(t, img), "Gray")
	require.NoError(t, err)
	assert.Equal(t, uint32(2), tex.Width)

	require.Len(t, ctx.textureWrites, 1)
	assert.Len(t, ctx.textureWrites[0].data, 2*2*4)
}

func TestNewTextureFromBytesRejectsGarbage(t *testing.T) {
	ctx := newFakeContext()
	_, err := NewTextureFromBytes(ctx, []byte("not an image"), "Bad")
	require.ErrorIs(t, err, ErrDecode)

	// A failed decode must not touch the device.
	assert.Empty(t, ctx.textures)
	assert.Empty(t, ctx.textureWrites)
}

func TestNewDepthTexture(t *testing.T) {
	ctx := newFakeContext()
	tex, err := NewDepthTexture(ctx, 1280, 720, "Depth")
	require.NoError(t, err)
	assert.Equal(t, uint32(1280), tex.Width)

	require.Len(t, ctx.textures, 1)
	desc := ctx.textures[0]
	assert.Equal(t, DepthFormat, desc.Format)
	assert.Equal(t, wgpu.TextureUsageRenderAttachment|wgpu.TextureUsageTextureBinding, desc.Usage)
}

func TestNewDepthTextureClampsZeroSize(t *testing.T) {
	// Minimized windows report zero dimensions; the attachment must
	// stay valid.
	ctx := newFakeContext()
	_, err := NewDepthTexture(ctx, 0, 0, "Depth")
	require.NoError(t, err)

	desc := ctx.textures[0]
	assert.Equal(t, uint32(1), desc.Size.Width)
	assert.Equal(t, uint32(1), desc.Size.Height)
}
