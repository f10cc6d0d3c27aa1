// Package app owns the window-facing side of the renderer: device
// bring-up, the per-frame update/render loop and input routing.
package app

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"image/png"
	"time"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/musou1500/learn-wgpu/core"
	"github.com/musou1500/learn-wgpu/gpu"
)

// Config carries the startup knobs; zero values fall back to defaults.
type Config struct {
	Width       uint32
	Height      uint32
	Title       string
	SkyImage    string // path to an equirectangular image, empty for the builtin gradient
	SkySize     uint32 // cubemap face edge in texels
	Speed       float32
	Sensitivity float32
	Debug       bool
}

func (c *Config) applyDefaults() {
	if c.Width == 0 {
		c.Width = 1280
	}
	if c.Height == 0 {
		c.Height = 720
	}
	if c.Title == "" {
		c.Title = "learn-wgpu"
	}
	if c.SkySize == 0 {
		c.SkySize = 1080
	}
	if c.Speed == 0 {
		c.Speed = 4.0
	}
	if c.Sensitivity == 0 {
		c.Sensitivity = 0.4
	}
}

// State is the renderer. One instance drives one window; all methods
// run on the main thread between PollEvents calls.
type State struct {
	logger Logger
	assets *Assets

	surface       *wgpu.Surface
	adapter       *wgpu.Adapter
	device        *wgpu.Device
	queue         *wgpu.Queue
	surfaceConfig *wgpu.SurfaceConfiguration
	ctx           *gpu.DeviceContext

	depth *gpu.Texture

	Projection *core.Projection
	Camera     *core.Camera
	Controller *core.CameraController
	uniform    core.CameraUniform
	binding    *gpu.CameraBinding

	light *gpu.Light
	sky   *gpu.Sky
	env   *gpu.CubeTexture

	mousePressed bool
	haveMouse    bool
	lastMouseX   float64
	lastMouseY   float64

	lastFrame time.Time
}

// NewState brings up the device for the given window and builds every
// GPU resource the frame loop needs. Errors here are fatal; there is
// nothing to render without a device.
func NewState(window *glfw.Window, config Config, logger Logger) (*State, error) {
	config.applyDefaults()
	if logger == nil {
		logger = NewDefaultLogger("renderer", config.Debug)
	}
	window.SetTitle(config.Title)

	instance := wgpu.CreateInstance(nil)
	defer instance.Release()

	surface := instance.CreateSurface(wgpuglfw.GetSurfaceDescriptor(window))
	adapter, err := instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		CompatibleSurface: surface,
		PowerPreference:   wgpu.PowerPreferenceHighPerformance,
	})
	if err != nil {
		return nil, err
	}
	device, err := adapter.RequestDevice(&wgpu.DeviceDescriptor{
		Label: "Main Device",
	})
	if err != nil {
		return nil, err
	}
	queue := device.GetQueue()
	ctx := gpu.NewDeviceContext(device, queue)

	caps := surface.GetCapabilities(adapter)
	surfaceConfig := wgpu.SurfaceConfiguration{
		Usage:       wgpu.TextureUsageRenderAttachment,
		Format:      caps.Formats[0],
		Width:       config.Width,
		Height:      config.Height,
		PresentMode: wgpu.PresentModeFifo,
		AlphaMode:   caps.AlphaModes[0],
	}
	surface.Configure(adapter, device, &surfaceConfig)

	depth, err := gpu.NewDepthTexture(ctx, config.Width, config.Height, "Depth Texture")
	if err != nil {
		return nil, err
	}

	projection := core.NewProjection(config.Width, config.Height, mgl32.DegToRad(45), 0.1, 100)
	camera := core.NewCamera(mgl32.Vec3{0, 5, 10}, mgl32.DegToRad(-90), mgl32.DegToRad(-20))
	controller := core.NewCameraController(config.Speed, config.Sensitivity)

	uniform := core.NewCameraUniform()
	uniform.UpdateViewProj(camera, projection)
	binding, err := gpu.NewCameraBinding(ctx, &uniform)
	if err != nil {
		return nil, err
	}

	assets := NewAssets()
	skyData := builtinSkyPNG()
	if config.SkyImage != "" {
		id, err := assets.LoadImageFile(config.SkyImage)
		if err != nil {
			return nil, err
		}
		img, _ := assets.Image(id)
		skyData = img.Data
	}

	converter, err := gpu.NewCubemap(ctx)
	if err != nil {
		return nil, err
	}
	defer converter.Release()

	env, err := converter.Build(ctx, skyData, config.SkySize, "Sky Cubemap")
	if err != nil {
		if !errors.Is(err, gpu.ErrDecode) || config.SkyImage == "" {
			return nil, err
		}
		// A broken sky image is not worth dying over.
		logger.Warnf("sky image %s rejected, using builtin gradient: %v", config.SkyImage, err)
		env, err = converter.Build(ctx, builtinSkyPNG(), config.SkySize, "Sky Cubemap")
		if err != nil {
			return nil, err
		}
	}

	sky, err := gpu.NewSky(ctx, env, binding.Layout, surfaceConfig.Format)
	if err != nil {
		return nil, err
	}

	lightUniform := core.NewLightUniform(mgl32.Vec3{2, 2, 2}, mgl32.Vec3{1, 1, 1})
	light, err := gpu.NewLight(ctx, lightUniform, surfaceConfig.Format, gpu.DepthFormat, binding.Layout)
	if err != nil {
		return nil, err
	}

	logger.Infof("device ready, surface %dx%d format %v", config.Width, config.Height, surfaceConfig.Format)

	return &State{
		logger:        logger,
		assets:        assets,
		surface:       surface,
		adapter:       adapter,
		device:        device,
		queue:         queue,
		surfaceConfig: &surfaceConfig,
		ctx:           ctx,
		depth:         depth,
		Projection:    projection,
		Camera:        camera,
		Controller:    controller,
		uniform:       uniform,
		binding:       binding,
		light:         light,
		sky:           sky,
		env:           env,
		lastFrame:     time.Now(),
	}, nil
}

// Resize reconfigures the surface, projection and depth buffer. Zero
// dimensions (minimized window) are ignored.
func (s *State) Resize(width, height uint32) {
	if width == 0 || height == 0 {
		return
	}

	s.surfaceConfig.Width = width
	s.surfaceConfig.Height = height
	s.surface.Configure(s.adapter, s.device, s.surfaceConfig)
	s.Projection.Resize(width, height)

	s.depth.Release()
	depth, err := gpu.NewDepthTexture(s.ctx, width, height, "Depth Texture")
	if err != nil {
		panic(err)
	}
	s.depth = depth
	s.logger.Debugf("surface resized to %dx%d", width, height)
}

// Update advances the camera by the wall-clock time since the last
// call and uploads the fresh uniform snapshot.
func (s *State) Update() error {
	now := time.Now()
	dt := now.Sub(s.lastFrame)
	s.lastFrame = now

	s.Controller.Update(s.Camera, dt)
	s.uniform.UpdateViewProj(s.Camera, s.Projection)
	return s.binding.Upload(s.ctx, &s.uniform)
}

// Render draws one frame: clear, light marker, then the sky filling
// whatever the depth test left open. A failed surface acquire skips
// the frame; the swapchain recovers on the next resize.
func (s *State) Render() error {
	nextTexture, err := s.surface.GetCurrentTexture()
	if err != nil {
		s.logger.Errorf("surface acquire failed, skipping frame: %v", err)
		return nil
	}
	view, err := nextTexture.CreateView(nil)
	if err != nil {
		return err
	}
	defer view.Release()

	encoder, err := s.ctx.CreateCommandEncoder(nil)
	if err != nil {
		return err
	}
	defer encoder.Release()

	pass := encoder.BeginRenderPass(&wgpu.RenderPassDescriptor{
		ColorAttachments: []wgpu.RenderPassColorAttachment{{
			View:       view,
			LoadOp:     wgpu.LoadOpClear,
			StoreOp:    wgpu.StoreOpStore,
			ClearValue: wgpu.Color{R: 0.1, G: 0.2, B: 0.3, A: 1},
		}},
		DepthStencilAttachment: &wgpu.RenderPassDepthStencilAttachment{
			View:            s.depth.View,
			DepthLoadOp:     wgpu.LoadOpClear,
			DepthStoreOp:    wgpu.StoreOpStore,
			DepthClearValue: 1.0,
		},
	})
	s.light.Draw(pass, s.binding.BindGroup)
	s.sky.Draw(pass, s.binding.BindGroup)
	if err := pass.End(); err != nil {
		s.logger.Errorf("render pass end failed: %v", err)
	}

	cmd, err := encoder.Finish(nil)
	if err != nil {
		return err
	}
	s.ctx.Submit(cmd)
	s.surface.Present()
	return nil
}

// Light exposes the point light for scene setup.
func (s *State) Light() *gpu.Light { return s.light }

// Context exposes the device context for asset uploads.
func (s *State) Context() *gpu.DeviceContext { return s.ctx }

// Assets exposes the asset registry.
func (s *State) Assets() *Assets { return s.assets }

// Release drops every GPU resource the state owns.
func (s *State) Release() {
	s.light.Release()
	s.sky.Release()
	s.env.Release()
	s.binding.Release()
	s.depth.Release()
	s.device.Release()
	s.adapter.Release()
	s.surface.Release()
}

// builtinSkyPNG synthesizes a small equirectangular gradient so the
// renderer works without any asset on disk: pale blue at the zenith
// down to dark ground below the horizon.
func builtinSkyPNG() []byte {
	const width, height = 256, 128
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		t := float64(y) / float64(height-1)
		var c color.RGBA
		if t < 0.5 {
			// Sky half: deep blue to pale horizon.
			k := t * 2
			c = color.RGBA{
				R: uint8(60 + 140*k),
				G: uint8(120 + 100*k),
				B: uint8(200 + 40*k),
				A: 255,
			}
		} else {
			// Ground half: muted brown fading darker.
			k := (t - 0.5) * 2
			c = color.RGBA{
				R: uint8(90 - 50*k),
				G: uint8(70 - 40*k),
				B: uint8(50 - 30*k),
				A: 255,
			}
		}
		for x := 0; x < width; x++ {
			img.SetRGBA(x, y, c)
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		// Encoding an in-memory RGBA image cannot fail.
		panic(err)
	}
	return buf.Bytes()
}
