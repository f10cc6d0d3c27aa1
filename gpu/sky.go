package gpu

import (
	"github.com/cogentcore/webgpu/wgpu"

	"github.com/musou1500/learn-wgpu/shaders"
)

// Sky renders the environment cubemap as a fullscreen background. The
// vertex stage synthesizes one oversized triangle at the far plane, so
// the pipeline has no vertex buffer.
type Sky struct {
	Layout    *wgpu.BindGroupLayout
	BindGroup *wgpu.BindGroup
	Pipeline  *wgpu.RenderPipeline
}

func NewSky(ctx Context, env *CubeTexture, cameraLayout *wgpu.BindGroupLayout, colorFormat wgpu.TextureFormat) (*Sky, error) {
	// The environment faces are RGBA32Float, which plain devices cannot
	// filter; both the texture and sampler bindings must say so.
	layout, err := ctx.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "SkyBGL",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageFragment,
				Texture: wgpu.TextureBindingLayout{
					SampleType:    wgpu.TextureSampleTypeUnfilterableFloat,
					ViewDimension: wgpu.TextureViewDimensionCube,
					Multisampled:  false,
				},
			},
			{
				Binding:    1,
				Visibility: wgpu.ShaderStageFragment,
				Sampler: wgpu.SamplerBindingLayout{
					Type: wgpu.SamplerBindingTypeNonFiltering,
				},
			},
		},
	})
	if err != nil {
		return nil, err
	}

	bindGroup, err := ctx.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "SkyBG",
		Layout: layout,
		Entries: []wgpu.BindGroupEntry{
			{
				Binding:     0,
				TextureView: env.CubeView,
			},
			{
				Binding: 1,
				Sampler: env.Sampler,
			},
		},
	})
	if err != nil {
		return nil, err
	}

	pipelineLayout, err := ctx.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "SkyPipelineLayout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{cameraLayout, layout},
	})
	if err != nil {
		return nil, err
	}
	defer pipelineLayout.Release()

	// The triangle sits exactly on the far plane, so the depth test
	// must pass on equality to draw behind everything else.
	pipeline, err := CreateRenderPipeline(ctx, RenderPipelineConfig{
		Label:        "SkyPipeline",
		ShaderCode:   shaders.SkyWGSL,
		Layout:       pipelineLayout,
		VertexType:   nil,
		ColorFormat:  colorFormat,
		DepthFormat:  DepthFormat,
		DepthWrite:   false,
		DepthCompare: wgpu.CompareFunctionLessEqual,
		CullMode:     wgpu.CullModeNone,
	})
	if err != nil {
		return nil, err
	}

	return &Sky{
		Layout:    layout,
		BindGroup: bindGroup,
		Pipeline:  pipeline,
	}, nil
}

// Draw fills the background. Call it before the scene passes of the
// same render pass, or rely on the depth test when drawing last.
func (s *Sky) Draw(pass *wgpu.RenderPassEncoder, cameraBindGroup *wgpu.BindGroup) {
	pass.SetPipeline(s.Pipeline)
	pass.SetBindGroup(0, cameraBindGroup, nil)
	pass.SetBindGroup(1, s.BindGroup, nil)
	pass.Draw(3, 1, 0, 0)
}

// Release frees the sky pipeline and binding.
func (s *Sky) Release() {
	if s.Pipeline != nil {
		s.Pipeline.Release()
	}
	if s.BindGroup != nil {
		s.BindGroup.Release()
	}
	if s.Layout != nil {
		s.Layout.Release()
	}
}
