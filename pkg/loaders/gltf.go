package loaders

import (
	"fmt"
	"math"

	"github.com/qmuntal/gltf"

	"github.com/rt1we/go-raytracer/pkg/core"
	"github.com/rt1we/go-raytracer/pkg/geometry"
	"github.com/rt1we/go-raytracer/pkg/material"
)

// MeshData is raw triangle geometry extracted from a glTF document:
// vertex positions plus flat face indices, three per triangle
type MeshData struct {
	Vertices []core.Vec3
	Faces    []int
}

// LoadGLTF reads a .gltf or .glb file and builds a triangle mesh with the
// given material
func LoadGLTF(path string, mat material.Material) (*geometry.TriangleMesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	data, err := ExtractMeshData(doc)
	if err != nil {
		return nil, fmt.Errorf("extract %q: %w", path, err)
	}

	return geometry.NewTriangleMesh(data.Vertices, data.Faces, mat)
}

// ExtractMeshData pulls triangle geometry out of every mesh primitive in
// the document. Non-triangle primitives are skipped.
func ExtractMeshData(doc *gltf.Document) (*MeshData, error) {
	data := &MeshData{}

	for _, m := range doc.Meshes {
		for _, prim := range m.Primitives {
			// Mode 0 covers documents that omit the field entirely
			if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
				continue
			}

			posIdx, hasPositions := prim.Attributes[gltf.POSITION]
			if !hasPositions {
				continue
			}

			positions, err := readVec3Accessor(doc, posIdx)
			if err != nil {
				return nil, fmt.Errorf("mesh %q positions: %w", m.Name, err)
			}

			baseVertex := len(data.Vertices)
			data.Vertices = append(data.Vertices, positions...)

			if prim.Indices != nil {
				indices, err := readIndices(doc, *prim.Indices)
				if err != nil {
					return nil, fmt.Errorf("mesh %q indices: %w", m.Name, err)
				}
				for _, idx := range indices {
					data.Faces = append(data.Faces, baseVertex+idx)
				}
			} else {
				// No index buffer, vertices form sequential triangles
				for i := 0; i+2 < len(positions); i += 3 {
					data.Faces = append(data.Faces, baseVertex+i, baseVertex+i+1, baseVertex+i+2)
				}
			}
		}
	}

	if len(data.Faces) == 0 {
		return nil, fmt.Errorf("document contains no triangle geometry")
	}

	return data, nil
}

// readVec3Accessor reads VEC3 float data from a glTF accessor
func readVec3Accessor(doc *gltf.Document, accessorIdx int) ([]core.Vec3, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorVec3 {
		return nil, fmt.Errorf("expected VEC3 accessor, got %v", accessor.Type)
	}
	if accessor.ComponentType != gltf.ComponentFloat {
		return nil, fmt.Errorf("expected float components, got %v", accessor.ComponentType)
	}

	bufData, start, stride, err := accessorBytes(doc, accessor, 12)
	if err != nil {
		return nil, err
	}

	result := make([]core.Vec3, accessor.Count)
	for i := 0; i < accessor.Count; i++ {
		offset := start + i*stride
		result[i] = core.NewVec3(
			float64(readFloat32(bufData[offset:])),
			float64(readFloat32(bufData[offset+4:])),
			float64(readFloat32(bufData[offset+8:])),
		)
	}

	return result, nil
}

// readIndices reads scalar index data from a glTF accessor, widening the
// 8/16/32-bit component types to int
func readIndices(doc *gltf.Document, accessorIdx int) ([]int, error) {
	accessor := doc.Accessors[accessorIdx]
	if accessor.Type != gltf.AccessorScalar {
		return nil, fmt.Errorf("expected SCALAR accessor, got %v", accessor.Type)
	}

	var componentSize int
	switch accessor.ComponentType {
	case gltf.ComponentUbyte:
		componentSize = 1
	case gltf.ComponentUshort:
		componentSize = 2
	case gltf.ComponentUint:
		componentSize = 4
	default:
		return nil, fmt.Errorf("unsupported index component type: %v", accessor.ComponentType)
	}

	bufData, start, stride, err := accessorBytes(doc, accessor, componentSize)
	if err != nil {
		return nil, err
	}

	result := make([]int, accessor.Count)
	for i := 0; i < accessor.Count; i++ {
		offset := start + i*stride
		switch componentSize {
		case 1:
			result[i] = int(bufData[offset])
		case 2:
			result[i] = int(uint16(bufData[offset]) | uint16(bufData[offset+1])<<8)
		case 4:
			result[i] = int(uint32(bufData[offset]) |
				uint32(bufData[offset+1])<<8 |
				uint32(bufData[offset+2])<<16 |
				uint32(bufData[offset+3])<<24)
		}
	}

	return result, nil
}

// accessorBytes resolves an accessor to its backing byte slice, the start
// offset of the first element, and the element stride
func accessorBytes(doc *gltf.Document, accessor *gltf.Accessor, elementSize int) ([]byte, int, int, error) {
	if accessor.BufferView == nil {
		return nil, 0, 0, fmt.Errorf("accessor has no buffer view")
	}

	bufferView := doc.BufferViews[*accessor.BufferView]
	buffer := doc.Buffers[bufferView.Buffer]
	if buffer.Data == nil {
		return nil, 0, 0, fmt.Errorf("external buffers are not supported")
	}

	start := bufferView.ByteOffset + accessor.ByteOffset
	stride := bufferView.ByteStride
	if stride == 0 {
		stride = elementSize
	}

	end := start + (accessor.Count-1)*stride + elementSize
	if end > len(buffer.Data) {
		return nil, 0, 0, fmt.Errorf("accessor overruns buffer: need %d bytes, have %d", end, len(buffer.Data))
	}

	return buffer.Data, start, stride, nil
}

// readFloat32 reads a little-endian float32
func readFloat32(b []byte) float32 {
	bits := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
	return math.Float32frombits(bits)
}
