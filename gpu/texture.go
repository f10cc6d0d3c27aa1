package gpu

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"

	"github.com/cogentcore/webgpu/wgpu"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff"
)

// ErrDecode marks image bytes the decoders could not make sense of.
// It is the only failure a texture load reports as recoverable; device
// errors surface as their own errors and end the program.
var ErrDecode = errors.New("gpu: undecodable image data")

// DepthFormat is the format of every depth attachment in the renderer.
const DepthFormat = wgpu.TextureFormatDepth32Float

// Texture bundles a wgpu texture with its default view and sampler.
type Texture struct {
	Texture *wgpu.Texture
	View    *wgpu.TextureView
	Sampler *wgpu.Sampler

	Width  uint32
	Height uint32
}

// maxTextureDim caps uploads at the guaranteed wgpu 2D texture limit.
// Larger sources are scaled down instead of rejected.
const maxTextureDim = 8192

// decodeRGBA turns encoded image bytes (PNG, JPEG, BMP or TIFF) into a
// tightly packed RGBA image. Non-RGBA sources are converted and
// oversized ones downscaled to fit maxTextureDim.
func decodeRGBA(data []byte) (*image.RGBA, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}

	bounds := src.Bounds()
	width, height := bounds.Dx(), bounds.Dy()
	if width > maxTextureDim || height > maxTextureDim {
		scale := float64(maxTextureDim) / float64(max(width, height))
		width = int(float64(width) * scale)
		height = int(float64(height) * scale)
		scaled := image.NewRGBA(image.Rect(0, 0, width, height))
		draw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), src, bounds, draw.Src, nil)
		return scaled, nil
	}

	if rgba, ok := src.(*image.RGBA); ok && rgba.Stride == rgba.Rect.Dx()*4 {
		return rgba, nil
	}
	rgba := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(rgba, rgba.Bounds(), src, bounds.Min, draw.Src)
	return rgba, nil
}

// NewTextureFromBytes decodes image bytes and uploads them as an
// RGBA8UnormSrgb texture with a default view and a linear sampler.
func NewTextureFromBytes(ctx Context, data []byte, label string) (*Texture, error) {
	rgba, err := decodeRGBA(data)
	if err != nil {
		return nil, err
	}
	return NewTextureFromImage(ctx, rgba, label)
}

// NewTextureFromImage uploads an already decoded RGBA image.
func NewTextureFromImage(ctx Context, rgba *image.RGBA, label string) (*Texture, error) {
	width := uint32(rgba.Rect.Dx())
	height := uint32(rgba.Rect.Dy())

	extent := wgpu.Extent3D{
		Width:              width,
		Height:             height,
		DepthOrArrayLayers: 1,
	}
	texture, err := ctx.CreateTexture(&wgpu.TextureDescriptor{
		Label:         label,
		Size:          extent,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatRGBA8UnormSrgb,
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, err
	}

	err = ctx.WriteTexture(
		texture.AsImageCopy(),
		rgba.Pix,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  4 * width,
			RowsPerImage: height,
		},
		&extent,
	)
	if err != nil {
		return nil, err
	}

	view, err := ctx.CreateTextureView(texture, nil)
	if err != nil {
		return nil, err
	}
	sampler, err := ctx.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         label,
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeNearest,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		LodMinClamp:   0,
		LodMaxClamp:   32,
		Compare:       wgpu.CompareFunctionUndefined,
		MaxAnisotropy: 1,
	})
	if err != nil {
		return nil, err
	}

	return &Texture{
		Texture: texture,
		View:    view,
		Sampler: sampler,
		Width:   width,
		Height:  height,
	}, nil
}

// NewDepthTexture allocates a Depth32Float render attachment matching
// the surface size, with a comparison sampler for shadow-style reads.
func NewDepthTexture(ctx Context, width, height uint32, label string) (*Texture, error) {
	if width == 0 {
		width = 1
	}
	if height == 0 {
		height = 1
	}

	texture, err := ctx.CreateTexture(&wgpu.TextureDescriptor{
		Label: label,
		Size: wgpu.Extent3D{
			Width:              width,
			Height:             height,
			DepthOrArrayLayers: 1,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        DepthFormat,
		Usage:         wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageTextureBinding,
	})
	if err != nil {
		return nil, err
	}
	view, err := ctx.CreateTextureView(texture, nil)
	if err != nil {
		return nil, err
	}
	sampler, err := ctx.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         label,
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		LodMinClamp:   0,
		LodMaxClamp:   100,
		Compare:       wgpu.CompareFunctionLessEqual,
		MaxAnisotropy: 1,
	})
	if err != nil {
		return nil, err
	}

	return &Texture{
		Texture: texture,
		View:    view,
		Sampler: sampler,
		Width:   width,
		Height:  height,
	}, nil
}

// Release frees the GPU resources owned by the texture.
func (t *Texture) Release() {
	if t.Sampler != nil {
		t.Sampler.Release()
	}
	if t.View != nil {
		t.View.Release()
	}
	if t.Texture != nil {
		t.Texture.Release()
	}
}
