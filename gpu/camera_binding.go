package gpu

import (
	"github.com/cogentcore/webgpu/wgpu"

	"github.com/musou1500/learn-wgpu/core"
)

// CameraBinding owns the camera uniform buffer and the bind group
// every pipeline reads the camera through at group 0.
type CameraBinding struct {
	Buffer    *wgpu.Buffer
	Layout    *wgpu.BindGroupLayout
	BindGroup *wgpu.BindGroup
}

func NewCameraBinding(ctx Context, uniform *core.CameraUniform) (*CameraBinding, error) {
	buffer, err := ctx.CreateBufferInit(&wgpu.BufferInitDescriptor{
		Label:    "Camera Buffer",
		Contents: uniform.Bytes(),
		Usage:    wgpu.BufferUsageUniform | wgpu.BufferUsageCopyDst,
	})
	if err != nil {
		return nil, err
	}

	layout, err := ctx.CreateBindGroupLayout(&wgpu.BindGroupLayoutDescriptor{
		Label: "CameraBGL",
		Entries: []wgpu.BindGroupLayoutEntry{
			{
				Binding:    0,
				Visibility: wgpu.ShaderStageVertex | wgpu.ShaderStageFragment,
				Buffer: wgpu.BufferBindingLayout{
					Type:             wgpu.BufferBindingTypeUniform,
					MinBindingSize:   core.CameraUniformSize,
					HasDynamicOffset: false,
				},
			},
		},
	})
	if err != nil {
		return nil, err
	}

	bindGroup, err := ctx.CreateBindGroup(&wgpu.BindGroupDescriptor{
		Label:  "CameraBG",
		Layout: layout,
		Entries: []wgpu.BindGroupEntry{
			{
				Binding: 0,
				Buffer:  buffer,
				Size:    core.CameraUniformSize,
			},
		},
	})
	if err != nil {
		return nil, err
	}

	return &CameraBinding{
		Buffer:    buffer,
		Layout:    layout,
		BindGroup: bindGroup,
	}, nil
}

// Upload pushes the current uniform snapshot to the GPU buffer.
func (b *CameraBinding) Upload(ctx Context, uniform *core.CameraUniform) error {
	return ctx.WriteBuffer(b.Buffer, 0, uniform.Bytes())
}

// Release frees the binding's GPU resources.
func (b *CameraBinding) Release() {
	if b.BindGroup != nil {
		b.BindGroup.Release()
	}
	if b.Layout != nil {
		b.Layout.Release()
	}
	if b.Buffer != nil {
		b.Buffer.Release()
	}
}
