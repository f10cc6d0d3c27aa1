// Package gpu wraps the wgpu device surface the renderer needs: texture
// and buffer creation, the equirectangular-to-cubemap converter, and the
// camera and light bindings shared by the render pipelines.
package gpu

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// Context is the slice of the wgpu device and queue the renderer
// allocates resources through. Production code uses DeviceContext;
// tests substitute a recording implementation.
type Context interface {
	CreateBuffer(descriptor *wgpu.BufferDescriptor) (*wgpu.Buffer, error)
	CreateBufferInit(descriptor *wgpu.BufferInitDescriptor) (*wgpu.Buffer, error)
	CreateTexture(descriptor *wgpu.TextureDescriptor) (*wgpu.Texture, error)
	CreateTextureView(texture *wgpu.Texture, descriptor *wgpu.TextureViewDescriptor) (*wgpu.TextureView, error)
	CreateSampler(descriptor *wgpu.SamplerDescriptor) (*wgpu.Sampler, error)
	CreateShaderModule(descriptor *wgpu.ShaderModuleDescriptor) (*wgpu.ShaderModule, error)
	CreateBindGroupLayout(descriptor *wgpu.BindGroupLayoutDescriptor) (*wgpu.BindGroupLayout, error)
	CreateBindGroup(descriptor *wgpu.BindGroupDescriptor) (*wgpu.BindGroup, error)
	CreatePipelineLayout(descriptor *wgpu.PipelineLayoutDescriptor) (*wgpu.PipelineLayout, error)
	CreateComputePipeline(descriptor *wgpu.ComputePipelineDescriptor) (*wgpu.ComputePipeline, error)
	CreateRenderPipeline(descriptor *wgpu.RenderPipelineDescriptor) (*wgpu.RenderPipeline, error)
	CreateCommandEncoder(descriptor *wgpu.CommandEncoderDescriptor) (*wgpu.CommandEncoder, error)
	WriteBuffer(buffer *wgpu.Buffer, offset uint64, data []byte) error
	WriteTexture(destination *wgpu.ImageCopyTexture, data []byte, layout *wgpu.TextureDataLayout, size *wgpu.Extent3D) error
	Submit(commands ...*wgpu.CommandBuffer)
}

// DeviceContext is the Context backed by a real device and queue.
type DeviceContext struct {
	device *wgpu.Device
	queue  *wgpu.Queue
}

func NewDeviceContext(device *wgpu.Device, queue *wgpu.Queue) *DeviceContext {
	return &DeviceContext{device: device, queue: queue}
}

func (c *DeviceContext) Device() *wgpu.Device { return c.device }
func (c *DeviceContext) Queue() *wgpu.Queue   { return c.queue }

func (c *DeviceContext) CreateBuffer(descriptor *wgpu.BufferDescriptor) (*wgpu.Buffer, error) {
	return c.device.CreateBuffer(descriptor)
}

func (c *DeviceContext) CreateBufferInit(descriptor *wgpu.BufferInitDescriptor) (*wgpu.Buffer, error) {
	return c.device.CreateBufferInit(descriptor)
}

func (c *DeviceContext) CreateTexture(descriptor *wgpu.TextureDescriptor) (*wgpu.Texture, error) {
	return c.device.CreateTexture(descriptor)
}

func (c *DeviceContext) CreateTextureView(texture *wgpu.Texture, descriptor *wgpu.TextureViewDescriptor) (*wgpu.TextureView, error) {
	return texture.CreateView(descriptor)
}

func (c *DeviceContext) CreateSampler(descriptor *wgpu.SamplerDescriptor) (*wgpu.Sampler, error) {
	return c.device.CreateSampler(descriptor)
}

func (c *DeviceContext) CreateShaderModule(descriptor *wgpu.ShaderModuleDescriptor) (*wgpu.ShaderModule, error) {
	return c.device.CreateShaderModule(descriptor)
}

func (c *DeviceContext) CreateBindGroupLayout(descriptor *wgpu.BindGroupLayoutDescriptor) (*wgpu.BindGroupLayout, error) {
	return c.device.CreateBindGroupLayout(descriptor)
}

func (c *DeviceContext) CreateBindGroup(descriptor *wgpu.BindGroupDescriptor) (*wgpu.BindGroup, error) {
	return c.device.CreateBindGroup(descriptor)
}

func (c *DeviceContext) CreatePipelineLayout(descriptor *wgpu.PipelineLayoutDescriptor) (*wgpu.PipelineLayout, error) {
	return c.device.CreatePipelineLayout(descriptor)
}

func (c *DeviceContext) CreateComputePipeline(descriptor *wgpu.ComputePipelineDescriptor) (*wgpu.ComputePipeline, error) {
	return c.device.CreateComputePipeline(descriptor)
}

func (c *DeviceContext) CreateRenderPipeline(descriptor *wgpu.RenderPipelineDescriptor) (*wgpu.RenderPipeline, error) {
	return c.device.CreateRenderPipeline(descriptor)
}

func (c *DeviceContext) CreateCommandEncoder(descriptor *wgpu.CommandEncoderDescriptor) (*wgpu.CommandEncoder, error) {
	return c.device.CreateCommandEncoder(descriptor)
}

func (c *DeviceContext) WriteBuffer(buffer *wgpu.Buffer, offset uint64, data []byte) error {
	return c.queue.WriteBuffer(buffer, offset, data)
}

func (c *DeviceContext) WriteTexture(destination *wgpu.ImageCopyTexture, data []byte, layout *wgpu.TextureDataLayout, size *wgpu.Extent3D) error {
	return c.queue.WriteTexture(destination, data, layout, size)
}

func (c *DeviceContext) Submit(commands ...*wgpu.CommandBuffer) {
	c.queue.Submit(commands...)
}
