package gpu

import (
	"github.com/cogentcore/webgpu/wgpu"
)

// fakeContext records every descriptor it is handed and returns empty
// handles. It never talks to a device, so tests can assert on resource
// wiring without a GPU.
type fakeContext struct {
	buffers     []*wgpu.BufferDescriptor
	bufferInits []*wgpu.BufferInitDescriptor
	textures    []*wgpu.TextureDescriptor
	views       []fakeViewCall
	samplers    []*wgpu.SamplerDescriptor
	shaders     []*wgpu.ShaderModuleDescriptor
	layouts     []*wgpu.BindGroupLayoutDescriptor
	bindGroups  []*wgpu.BindGroupDescriptor

	bufferWrites  []fakeBufferWrite
	textureWrites []fakeTextureWrite
	submits       int
}

type fakeViewCall struct {
	texture    *wgpu.Texture
	descriptor *wgpu.TextureViewDescriptor
}

type fakeBufferWrite struct {
	buffer *wgpu.Buffer
	offset uint64
	data   []byte
}

type fakeTextureWrite struct {
	destination *wgpu.ImageCopyTexture
	data        []byte
	layout      *wgpu.TextureDataLayout
	size        *wgpu.Extent3D
}

func newFakeContext() *fakeContext { return &fakeContext{} }

func (c *fakeContext) CreateBuffer(descriptor *wgpu.BufferDescriptor) (*wgpu.Buffer, error) {
	c.buffers = append(c.buffers, descriptor)
	return &wgpu.Buffer{}, nil
}

func (c *fakeContext) CreateBufferInit(descriptor *wgpu.BufferInitDescriptor) (*wgpu.Buffer, error) {
	c.bufferInits = append(c.bufferInits, descriptor)
	return &wgpu.Buffer{}, nil
}

func (c *fakeContext) CreateTexture(descriptor *wgpu.TextureDescriptor) (*wgpu.Texture, error) {
	c.textures = append(c.textures, descriptor)
	return &wgpu.Texture{}, nil
}

func (c *fakeContext) CreateTextureView(texture *wgpu.Texture, descriptor *wgpu.TextureViewDescriptor) (*wgpu.TextureView, error) {
	c.views = append(c.views, fakeViewCall{texture: texture, descriptor: descriptor})
	return &wgpu.TextureView{}, nil
}

func (c *fakeContext) CreateSampler(descriptor *wgpu.SamplerDescriptor) (*wgpu.Sampler, error) {
	c.samplers = append(c.samplers, descriptor)
	return &wgpu.Sampler{}, nil
}

func (c *fakeContext) CreateShaderModule(descriptor *wgpu.ShaderModuleDescriptor) (*wgpu.ShaderModule, error) {
	c.shaders = append(c.shaders, descriptor)
	return &wgpu.ShaderModule{}, nil
}

func (c *fakeContext) CreateBindGroupLayout(descriptor *wgpu.BindGroupLayoutDescriptor) (*wgpu.BindGroupLayout, error) {
	c.layouts = append(c.layouts, descriptor)
	return &wgpu.BindGroupLayout{}, nil
}

func (c *fakeContext) CreateBindGroup(descriptor *wgpu.BindGroupDescriptor) (*wgpu.BindGroup, error) {
	c.bindGroups = append(c.bindGroups, descriptor)
	return &wgpu.BindGroup{}, nil
}

func (c *fakeContext) CreatePipelineLayout(descriptor *wgpu.PipelineLayoutDescriptor) (*wgpu.PipelineLayout, error) {
	return &wgpu.PipelineLayout{}, nil
}

func (c *fakeContext) CreateComputePipeline(descriptor *wgpu.ComputePipelineDescriptor) (*wgpu.ComputePipeline, error) {
	return &wgpu.ComputePipeline{}, nil
}

func (c *fakeContext) CreateRenderPipeline(descriptor *wgpu.RenderPipelineDescriptor) (*wgpu.RenderPipeline, error) {
	return &wgpu.RenderPipeline{}, nil
}

func (c *fakeContext) CreateCommandEncoder(descriptor *wgpu.CommandEncoderDescriptor) (*wgpu.CommandEncoder, error) {
	return &wgpu.CommandEncoder{}, nil
}

func (c *fakeContext) WriteBuffer(buffer *wgpu.Buffer, offset uint64, data []byte) error {
	c.bufferWrites = append(c.bufferWrites, fakeBufferWrite{buffer: buffer, offset: offset, data: data})
	return nil
}

func (c *fakeContext) WriteTexture(destination *wgpu.ImageCopyTexture, data []byte, layout *wgpu.TextureDataLayout, size *wgpu.Extent3D) error {
	c.textureWrites = append(c.textureWrites, fakeTextureWrite{destination: destination, data: data, layout: layout, size: size})
	return nil
}

func (c *fakeContext) Submit(commands ...*wgpu.CommandBuffer) {
	c.submits++
}

var _ Context = (*fakeContext)(nil)
