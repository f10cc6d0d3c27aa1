package gpu

import (
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/musou1500/learn-wgpu/core"
	"github.com/musou1500/learn-wgpu/shaders"
)

// Light is a point light with a marker pipeline that draws a small
// cube at the light position so it is visible while debugging scenes.
type Light struct {
	uniform core.LightUniform

	Buffer    *wgpu.Buffer
	Layout    *wgpu.BindGroupLayout
	BindGroup *wgpu.BindGroup
	Pipeline  *wgpu.RenderPipeline

	mesh *Mesh
}

// NewLight uploads the light uniform and builds the marker pipeline.
// The camera layout is bound at group 0, the light's own at group 1.
// Passing TextureFormatUndefined as depthFormat disables depth testing.
func NewLight(ctx Context, uniform core.LightUniform, colorFormat, depthFormat wgpu.TextureFormat, cameraLayout *wgpu.BindGroupLayout) (*Light, error) {
	buffer, err := ctx.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "Light Buffer",
		Contents: uniform.Bytes(),
		Usage:    wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, err
	}

	layout, err := ctx.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "LightBGL",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:             wgpu.BufferBindingTypeUniform,
					MinBindingSize:   core.LightUniformSize,
					HasDynamicOffset: false,
				},
			},
		},
	})
	if err != nil {
		return nil, err
	}

	bindGroup, err := ctx.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "LightBG",
		Layout: layout,
		Entries: []wgpu.BindGroupEntry{
			{
				Binding: 0,
				Buffer:  buffer,
				Size:    core.LightUniformSize,
			},
		},
	})
	if err != nil {
		return nil, err
	}

	pipelineLayout, err := ctx.CreatePipelineLayout(&wgpu.PipelineLayoutDescriptor{
		Label:            "LightPipelineLayout",
		BindGroupLayouts: []*wgpu.BindGroupLayout{cameraLayout, layout},
	})
	if err != nil {
		return nil, err
	}
	defer pipelineLayout.Release()

	pipeline, err := CreateRenderPipeline(ctx, RenderPipelineConfig{
		Label:        "LightPipeline",
		ShaderCode:   shaders.LightWGSL,
		Layout:       pipelineLayout,
		VertexType:   ModelVertex{},
		ColorFormat:  colorFormat,
		DepthFormat:  depthFormat,
		DepthWrite:   true,
		DepthCompare: wgpu.CompareFunctionLess,
		CullMode:     wgpu.CullModeBack,
	})
	if err != nil {
		return nil, err
	}

	mesh, err := NewMesh(ctx, "Light Marker", CubeVertices(), CubeIndices())
	if err != nil {
		return nil, err
	}

	return &Light{
		uniform:   uniform,
		Buffer:    buffer,
		Layout:    layout,
		BindGroup: bindGroup,
		Pipeline:  pipeline,
		mesh:      mesh,
	}, nil
}

func (l *Light) Position() mgl32.Vec3 { return l.uniform.Position }
func (l *Light) Color() mgl32.Vec3    { return l.uniform.Color }

// SetPosition moves the light and re-uploads its uniform.
func (l *Light) SetPosition(ctx Context, position mgl32.Vec3) error {
	l.uniform.Position = position
	return ctx.WriteBuffer(l.Buffer, 0, l.uniform.Bytes())
}

// SetColor recolors the light and re-uploads its uniform.
func (l *Light) SetColor(ctx Context, color mgl32.Vec3) error {
	l.uniform.Color = color
	return ctx.WriteBuffer(l.Buffer, 0, l.uniform.Bytes())
}

// Draw renders the marker cube. The camera bind group must match the
// layout the pipeline was built with.
func (l *Light) Draw(pass *wgpu.RenderPassEncoder, cameraBindGroup *wgpu.BindGroup) {
	pass.SetPipeline(l.Pipeline)
	pass.SetBindGroup(0, cameraBindGroup, nil)
	pass.SetBindGroup(1, l.BindGroup, nil)
	l.mesh.Draw(pass)
}

// Release frees the light's GPU resources.
func (l *Light) Release() {
	if l.mesh != nil {
		l.mesh.Release()
	}
	if l.Pipeline != nil {
		l.Pipeline.Release()
	}
	if l.BindGroup != nil {
		l.BindGroup.Release()
	}
	if l.Layout != nil {
		l.Layout.Release()
	}
	if l.Buffer != nil {
		l.Buffer.Release()
	}
}
