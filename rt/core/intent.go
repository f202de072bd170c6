package core

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/google/uuid"
)

// Intent is a mutation request handed to the external store.
type Intent interface {
	isIntent()
}

// SetParentIntent moves Child under Parent, or to the top level when Parent is nil.
type SetParentIntent struct {
	Child  NodeId
	Parent *NodeId
}

// DeleteIntent removes Node and all of its descendants.
type DeleteIntent struct {
	Node NodeId
}

// SetTransformIntent assigns a world space pose to Node.
type SetTransformIntent struct {
	Node        NodeId
	Translation mgl32.Vec3
	Rotation    mgl32.Quat
	Scale       mgl32.Vec3
}

// SpawnIntent creates a new object of Kind under Parent. Token lets the store
// report back which NodeId it allocated.
type SpawnIntent struct {
	Kind   SpawnKind
	Parent *NodeId
	Token  uuid.UUID
}

func (SetParentIntent) isIntent()    {}
func (DeleteIntent) isIntent()       {}
func (SetTransformIntent) isIntent() {}
func (SpawnIntent) isIntent()        {}

func (t SetTransformIntent) Transform() Transform {
	return Transform{Position: t.Translation, Rotation: t.Rotation, Scale: t.Scale}
}

type SpawnKind int

const (
	SpawnEmpty SpawnKind = iota
	SpawnCube
	SpawnSphere
	SpawnPlane
	SpawnDirectionalLight
	SpawnPointLight
	SpawnSpotLight
)

var spawnKindNames = [...]string{
	SpawnEmpty:            "Entity",
	SpawnCube:             "Cube",
	SpawnSphere:           "Sphere",
	SpawnPlane:            "Plane",
	SpawnDirectionalLight: "Directional Light",
	SpawnPointLight:       "Point Light",
	SpawnSpotLight:        "Spot Light",
}

// String returns the default label given to objects of this kind.
func (k SpawnKind) String() string {
	if k < 0 || int(k) >= len(spawnKindNames) {
		return fmt.Sprintf("SpawnKind(%d)", int(k))
	}
	return spawnKindNames[k]
}

// ParseSpawnKind maps a label produced by String back to its kind.
func ParseSpawnKind(s string) (SpawnKind, error) {
	for i, name := range spawnKindNames {
		if name == s {
			return SpawnKind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown spawn kind %q", s)
}
