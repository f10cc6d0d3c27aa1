package gpu

import (
	"fmt"
	"reflect"
	"strconv"

	"github.com/cogentcore/webgpu/wgpu"
)

// RenderPipelineConfig collects what varies between the renderer's
// pipelines; CreateRenderPipeline fills in the parts they share.
type RenderPipelineConfig struct {
	Label      string
	ShaderCode string
	// Layout is optional; without it the pipeline derives bind group
	// layouts from the shader.
	Layout *wgpu.PipelineLayout
	// VertexType is an instance of the vertex struct, nil for
	// pipelines that generate vertices from the vertex index.
	VertexType   any
	ColorFormat  wgpu.TextureFormat
	DepthFormat  wgpu.TextureFormat // TextureFormatUndefined disables the depth test
	DepthWrite   bool
	DepthCompare wgpu.CompareFunction
	Topology     wgpu.PrimitiveTopology
	CullMode     wgpu.CullMode
}

// CreateRenderPipeline compiles the shader and builds a pipeline with
// vs_main/fs_main entry points and the renderer's common state.
func CreateRenderPipeline(ctx Context, config RenderPipelineConfig) (*wgpu.RenderPipeline, error) {
	shader, err := ctx.CreateShaderModule(&wgpu.ShaderModuleDescriptor{
		Label:          config.Label,
		WGSLDescriptor: &wgpu.ShaderModuleWGSLDescriptor{Code: config.ShaderCode},
	})
	if err != nil {
		return nil, err
	}
	defer shader.Release()

	var buffers []wgpu.VertexBufferLayout
	if config.VertexType != nil {
		layout, err := VertexBufferLayout(config.VertexType)
		if err != nil {
			return nil, err
		}
		buffers = append(buffers, layout)
	}

	var depthStencil *wgpu.DepthStencilState
	if config.DepthFormat != wgpu.TextureFormatUndefined {
		depthStencil = &wgpu.DepthStencilState{
			Format:            config.DepthFormat,
			DepthWriteEnabled: config.DepthWrite,
			DepthCompare:      config.DepthCompare,
			StencilFront: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilBack: wgpu.StencilFaceState{
				Compare: wgpu.CompareFunctionAlways,
			},
			StencilReadMask:  0xFFFFFFFF,
			StencilWriteMask: 0xFFFFFFFF,
		}
	}

	topology := config.Topology
	if topology == wgpu.PrimitiveTopology(0) {
		topology = wgpu.PrimitiveTopologyTriangleList
	}

	return ctx.CreateRenderPipeline(&wgpu.RenderPipelineDescriptor{
		Label:  config.Label,
		Layout: config.Layout,
		Vertex: wgpu.VertexState{
			Module:     shader,
			EntryPoint: "vs_main",
			Buffers:    buffers,
		},
		Fragment: &wgpu.FragmentState{
			Module:     shader,
			EntryPoint: "fs_main",
			Targets: []wgpu.ColorTargetState{
				{
					Format:    config.ColorFormat,
					Blend:     nil,
					WriteMask: wgpu.ColorWriteMaskAll,
				},
			},
		},
		Primitive: wgpu.PrimitiveState{
			Topology:  topology,
			FrontFace: wgpu.FrontFaceCCW,
			CullMode:  config.CullMode,
		},
		DepthStencil: depthStencil,
		Multisample: wgpu.MultisampleState{
			Count:                  1,
			Mask:                   0xFFFFFFFF,
			AlphaToCoverageEnabled: false,
		},
	})
}

// VertexBufferLayout derives a vertex layout from struct tags. Fields
// tagged `gpu:"layout"` become attributes; the `format` and `location`
// tags carry the WGSL side of the contract. Untagged fields still
// advance the stride, so padding fields work.
func VertexBufferLayout(vertexType any) (wgpu.VertexBufferLayout, error) {
	t := reflect.TypeOf(vertexType)
	if t.Kind() != reflect.Struct {
		return wgpu.VertexBufferLayout{}, fmt.Errorf("vertex type %T is not a struct", vertexType)
	}

	var attributes []wgpu.VertexAttribute
	var offset uint64

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Tag.Get("gpu") == "layout" {
			format, err := parseVertexFormat(field.Tag.Get("format"))
			if err != nil {
				return wgpu.VertexBufferLayout{}, fmt.Errorf("field %s: %w", field.Name, err)
			}
			location, err := strconv.Atoi(field.Tag.Get("location"))
			if err != nil {
				return wgpu.VertexBufferLayout{}, fmt.Errorf("field %s: bad location tag: %w", field.Name, err)
			}

			attributes = append(attributes, wgpu.VertexAttribute{
				ShaderLocation: uint32(location),
				Offset:         offset,
				Format:         format,
			})
		}

		offset += uint64(field.Type.Size())
	}

	return wgpu.VertexBufferLayout{
		ArrayStride: offset,
		StepMode:    wgpu.VertexStepModeVertex,
		Attributes:  attributes,
	}, nil
}

func parseVertexFormat(name string) (wgpu.VertexFormat, error) {
	switch name {
	case "float32":
		return wgpu.VertexFormatFloat32, nil
	case "float32x2":
		return wgpu.VertexFormatFloat32x2, nil
	case "float32x3":
		return wgpu.VertexFormatFloat32x3, nil
	case "float32x4":
		return wgpu.VertexFormatFloat32x4, nil
	case "uint32":
		return wgpu.VertexFormatUint32, nil
	case "uint32x2":
		return wgpu.VertexFormatUint32x2, nil
	case "uint32x4":
		return wgpu.VertexFormatUint32x4, nil
	default:
		return wgpu.VertexFormat(0), fmt.Errorf("unknown vertex format %q", name)
	}
}
