package gpu

import (
	"github.com/cogentcore/webgpu/wgpu"

	"github.com/musou1500/learn-wgpu/shaders"
)

// Compute shader workgroup edge for the cubemap converter. Must match
// the @workgroup_size in equirectangular.wgsl.
const cubemapWorkgroupSize = 16

// CubeFaceCount is the number of layers in a cube texture.
const CubeFaceCount = 6

// CubeFormat is the storage format cubemap faces are written in.
const CubeFormat = wgpu.TextureFormatRGBA32Float

// CubeTexture is a six-layer texture with a cube view for sampling and
// a layered view the converter writes faces through. Single mip; callers
// needing filtered mips must generate them elsewhere.
type CubeTexture struct {
	Texture *wgpu.Texture
	// CubeView sees all six layers as a cube; render pipelines sample
	// through it.
	CubeView *wgpu.TextureView
	// LayerView sees the same layers as a 2d array; the converter binds
	// it as a storage texture.
	LayerView *wgpu.TextureView
	Sampler   *wgpu.Sampler

	Width  uint32
	Height uint32
	Format wgpu.TextureFormat
}

// NewCubeTexture allocates a six-layer texture plus its cube and layer
// views and a clamping point sampler.
func NewCubeTexture(ctx Context, width, height uint32, format wgpu.TextureFormat, label string) (*CubeTexture, error) {
	texture, err := ctx.CreateTexture(&wgpu.TextureDescriptor{
		Label: label,
		Size: wgpu.Extent3D{
			Width:              width,
			Height:             height,
			DepthOrArrayLayers: CubeFaceCount,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        format,
		Usage:         wgpu.TextureUsageStorageBinding | wgpu.TextureUsageCopySrc | wgpu.TextureUsageTextureBinding,
	})
	if err != nil {
		return nil, err
	}

	cubeView, err := ctx.CreateTextureView(texture, &wgpu.TextureViewDescriptor{
		Label:           label,
		Format:          format,
		Dimension:       wgpu.TextureViewDimensionCube,
		BaseMipLevel:    0,
		MipLevelCount:   1,
		BaseArrayLayer:  0,
		ArrayLayerCount: CubeFaceCount,
	})
	if err != nil {
		return nil, err
	}
	layerView, err := ctx.CreateTextureView(texture, &wgpu.TextureViewDescriptor{
		Label:           label,
		Format:          format,
		Dimension:       wgpu.TextureViewDimension2DArray,
		BaseMipLevel:    0,
		MipLevelCount:   1,
		BaseArrayLayer:  0,
		ArrayLayerCount: CubeFaceCount,
	})
	if err != nil {
		return nil, err
	}

	// Float32 formats are not filterable without extra device
	// features, so the sampler stays at nearest.
	sampler, err := ctx.CreateSampler(&wgpu.SamplerDescriptor{
		Label:         label,
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeNearest,
		MinFilter:     wgpu.FilterModeNearest,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		LodMinClamp:   0,
		LodMaxClamp:   1,
		Compare:       wgpu.CompareFunctionUndefined,
		MaxAnisotropy: 1,
	})
	if err != nil {
		return nil, err
	}

	return &CubeTexture{
		Texture:   texture,
		CubeView:  cubeView,
		LayerView: layerView,
		Sampler:   sampler,
		Width:     width,
		Height:    height,
		Format:    format,
	}, nil
}

// Release frees the GPU resources owned by the cube texture.
func (t *CubeTexture) Release() {
	if t.Sampler != nil {
		t.Sampler.Release()
	}
	if t.LayerView != nil {
		t.LayerView.Release()
	}
	if t.CubeView != nil {
		t.CubeView.Release()
	}
	if t.Texture != nil {
		t.Texture.Release()
	}
}

// Cubemap converts equirectangular images into cube textures with a
// compute pass. Create it once and reuse it for every conversion; each
// Build call allocates only the per-image resources.
type Cubemap struct {
	pipeline *wgpu.ComputePipeline
	layout   *wgpu.BindGroupLayout
}

func NewCubemap(ctx Context) (*Cubemap, error) {
	module, err := ctx.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          "EquirectShader",
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: shaders.EquirectangularWGSL},
	})
	if err != nil {
		return nil, err
	}
	defer module.Release()

	layout, err := ctx.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label:   "EquirectBGL",
		Entries: converterLayoutEntries(),
	})
	if err != nil {
		return nil, err
	}

	pipelineLayout, err := ctx.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "EquirectPipelineLayout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{layout},
	})
	if err != nil {
		return nil, err
	}
	defer pipelineLayout.Release()

	pipeline, err := ctx.CreateComputePipeline(&wgpu.ComputePipelineDescriptor{
		Label:  "EquirectPipeline",
		Layout: pipelineLayout,
		Compute: wgpu.ProgrammableStageDescriptor{
			Module:     module,
			EntryPoint: "compute_equirect_to_cubemap",
		},
	})
	if err != nil {
		return nil, err
	}

	return &Cubemap{pipeline: pipeline, layout: layout}, nil
}

// converterLayoutEntries is the converter's fixed binding shape: the
// decoded source at 0, the destination face array at 1.
func converterLayoutEntries() []wgpu.BindGroupLayoutEntry {
	return []wgpu.BindGroupLayoutEntry{
		{
			Binding:    0,
			Visibility: wgpu.ShaderStageCompute,
			Texture: wgpu.TextureBindingLayout{
				SampleType:    wgpu.TextureSampleTypeFloat,
				ViewDimension: wgpu.TextureViewDimension2D,
				Multisampled:  false,
			},
		},
		{
			Binding:    1,
			Visibility: wgpu.ShaderStageCompute,
			StorageTexture: wgpu.StorageTextureBindingLayout{
				Access:        wgpu.StorageTextureAccessWriteOnly,
				Format:        CubeFormat,
				ViewDimension: wgpu.TextureViewDimension2DArray,
			},
		},
	}
}

// Build decodes an equirectangular image, uploads it and runs the
// conversion pass, producing a cube texture of dstSize x dstSize faces.
// Decode failures are reported with ErrDecode; everything after the
// decode talks to the device and its errors are not recoverable.
func (c *Cubemap) Build(ctx Context, data []byte, dstSize uint32, label string) (*CubeTexture, error) {
	rgba, err := decodeRGBA(data)
	if err != nil {
		return nil, err
	}

	srcWidth := uint32(rgba.Rect.Dx())
	srcHeight := uint32(rgba.Rect.Dy())
	srcExtent := wgpu.Extent3D{
		Width:              srcWidth,
		Height:             srcHeight,
		DepthOrArrayLayers: 1,
	}
	src, err := ctx.CreateTexture(&wgpu.TextureDescriptor{
		Label:         label,
		Size:          srcExtent,
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        wgpu.TextureFormatRGBA8Unorm,
		Usage:         wgpu.TextureUsageTextureBinding | wgpu.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, err
	}
	defer src.Release()

	err = ctx.WriteTexture(
		src.AsImageCopy(),
		rgba.Pix,
		&wgpu.TextureDataLayout{
			Offset:       0,
			BytesPerRow:  4 * srcWidth,
			RowsPerImage: srcHeight,
		},
		&srcExtent,
	)
	if err != nil {
		return nil, err
	}

	srcView, err := ctx.CreateTextureView(src, nil)
	if err != nil {
		return nil, err
	}
	defer srcView.Release()

	dst, err := NewCubeTexture(ctx, dstSize, dstSize, CubeFormat, label)
	if err != nil {
		return nil, err
	}

	bindGroup, err := ctx.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  label,
		Layout: c.layout,
		Entries: []wgpu.BindGroupEntry{
			{
				Binding:     0,
				TextureView: srcView,
			},
			{
				Binding:     1,
				TextureView: dst.LayerView,
			},
		},
	})
	if err != nil {
		return nil, err
	}
	defer bindGroup.Release()

	encoder, err := ctx.CreateCommandEncoder(nil)
	if err != nil {
		return nil, err
	}
	defer encoder.Release()

	pass := encoder.BeginComputePass(nil)
	pass.SetPipeline(c.pipeline)
	pass.SetBindGroup(0, bindGroup, nil)
	groups := dispatchGroups(dstSize)
	pass.DispatchWorkgroups(groups, groups, CubeFaceCount)
	if err := pass.End(); err != nil {
		return nil, err
	}

	cmd, err := encoder.Finish(nil)
	if err != nil {
		return nil, err
	}
	ctx.Submit(cmd)

	return dst, nil
}

// Release frees the converter's pipeline and layout.
func (c *Cubemap) Release() {
	if c.layout != nil {
		c.layout.Release()
	}
	if c.pipeline != nil {
		c.pipeline.Release()
	}
}

// dispatchGroups covers every destination texel, rounding up when the
// face size is not a workgroup multiple. The shader discards the
// overhang invocations.
func dispatchGroups(size uint32) uint32 {
	return (size + cubemapWorkgroupSize - 1) / cubemapWorkgroupSize
}
