package app

import (
	"fmt"
	"os"

	"github.com/google/uuid"

	"github.com/musou1500/learn-wgpu/gpu"
)

type AssetId string

func makeAssetId() AssetId {
	return AssetId(uuid.NewString())
}

// ImageAsset keeps the encoded bytes; decoding happens at upload time
// so a bad file surfaces as a recoverable decode error there.
type ImageAsset struct {
	Name string
	Data []byte
}

type MeshAsset struct {
	Name     string
	Vertices []gpu.ModelVertex
	Indices  []uint16
}

// Assets is the registry the renderer resolves handles through.
type Assets struct {
	images map[AssetId]ImageAsset
	meshes map[AssetId]MeshAsset
}

func NewAssets() *Assets {
	return &Assets{
		images: map[AssetId]ImageAsset{},
		meshes: map[AssetId]MeshAsset{},
	}
}

// LoadImageFile reads an image file into the registry without decoding
// it.
func (a *Assets) LoadImageFile(path string) (AssetId, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("load image %s: %w", path, err)
	}
	return a.AddImage(path, data), nil
}

// AddImage registers already loaded image bytes.
func (a *Assets) AddImage(name string, data []byte) AssetId {
	id := makeAssetId()
	a.images[id] = ImageAsset{Name: name, Data: data}
	return id
}

func (a *Assets) Image(id AssetId) (ImageAsset, bool) {
	img, ok := a.images[id]
	return img, ok
}

// AddMesh registers vertex and index data under a fresh handle.
func (a *Assets) AddMesh(name string, vertices []gpu.ModelVertex, indices []uint16) AssetId {
	id := makeAssetId()
	a.meshes[id] = MeshAsset{Name: name, Vertices: vertices, Indices: indices}
	return id
}

func (a *Assets) Mesh(id AssetId) (MeshAsset, bool) {
	mesh, ok := a.meshes[id]
	return mesh, ok
}
