package main

import (
	"flag"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/musou1500/learn-wgpu/app"
)

func init() {
	runtime.LockOSThread()
}

func main() {
	width := flag.Uint("width", 1280, "Window width")
	height := flag.Uint("height", 720, "Window height")
	title := flag.String("title", "learn-wgpu", "Window title")
	skyImage := flag.String("sky", "", "Equirectangular sky image (PNG, JPEG, BMP or TIFF)")
	skySize := flag.Uint("sky-size", 1080, "Cubemap face size in texels")
	speed := flag.Float64("speed", 4.0, "Camera movement speed")
	sensitivity := flag.Float64("sensitivity", 0.4, "Mouse look sensitivity")
	debug := flag.Bool("debug", false, "Enable debug logging")
	flag.Parse()

	if err := glfw.Init(); err != nil {
		panic(err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	window, err := glfw.CreateWindow(int(*width), int(*height), *title, nil, nil)
	if err != nil {
		panic(err)
	}
	defer window.Destroy()

	logger := app.NewDefaultLogger("renderer", *debug)
	state, err := app.NewState(window, app.Config{
		Width:       uint32(*width),
		Height:      uint32(*height),
		Title:       *title,
		SkyImage:    *skyImage,
		SkySize:     uint32(*skySize),
		Speed:       float32(*speed),
		Sensitivity: float32(*sensitivity),
		Debug:       *debug,
	}, logger)
	if err != nil {
		panic(err)
	}
	defer state.Release()

	state.InstallCallbacks(window)

	for !window.ShouldClose() {
		glfw.PollEvents()
		if err := state.Update(); err != nil {
			panic(err)
		}
		if err := state.Render(); err != nil {
			panic(err)
		}
	}
}
