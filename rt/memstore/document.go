package memstore

import (
	"fmt"
	"os"

	"github.com/gekko3d/sceneedit/rt/core"
	"github.com/gekko3d/sceneedit/rt/geom"
	"github.com/go-gl/mathgl/mgl32"
	"gopkg.in/yaml.v3"
)

// Document is the YAML description of a scene.
//
//	scope: Scene
//	camera: {position: [0, 2, 10], yaw: 0, pitch: -10, fov: 60, width: 1280, height: 720}
//	nodes:
//	  - name: Scene
//	    children:
//	      - {name: Crate, kind: Cube, position: [1, 0, 0], rotation: [0, 45, 0]}
type Document struct {
	Scope  string     `yaml:"scope"`
	Camera *CameraDoc `yaml:"camera"`
	Nodes  []NodeDoc  `yaml:"nodes"`
}

type CameraDoc struct {
	Position [3]float32 `yaml:"position"`
	Yaw      float32    `yaml:"yaw"`   // degrees
	Pitch    float32    `yaml:"pitch"` // degrees
	Fov      float32    `yaml:"fov"`
	Width    int        `yaml:"width"`
	Height   int        `yaml:"height"`
}

type NodeDoc struct {
	Id       uint64      `yaml:"id"`
	Name     *string     `yaml:"name"`
	Kind     string      `yaml:"kind"`
	Hidden   bool        `yaml:"hidden"`
	Position *[3]float32 `yaml:"position"`
	Rotation *[3]float32 `yaml:"rotation"` // Euler XYZ, degrees
	Scale    *[3]float32 `yaml:"scale"`
	Bounds   *BoundsDoc  `yaml:"bounds"`
	Children []NodeDoc   `yaml:"children"`
}

type BoundsDoc struct {
	Min [3]float32 `yaml:"min"`
	Max [3]float32 `yaml:"max"`
}

func ParseDocument(data []byte) (*Document, error) {
	if err := ValidateDocument(data); err != nil {
		return nil, err
	}
	var doc Document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse scene: %w", err)
	}
	return &doc, nil
}

func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}
	return ParseDocument(data)
}

// Decode parses a YAML scene straight into a store.
func Decode(data []byte) (*Store, error) {
	doc, err := ParseDocument(data)
	if err != nil {
		return nil, err
	}
	return doc.Build()
}

// Build creates the store described by the document.
func (d *Document) Build() (*Store, error) {
	s := New()
	for i := range d.Nodes {
		if err := s.addDoc(&d.Nodes[i], nil); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// ScopeRoot resolves the scope name to the first node carrying that label.
func (d *Document) ScopeRoot(s *Store) (*core.NodeId, error) {
	if d.Scope == "" {
		return nil, nil
	}
	for _, rec := range s.Nodes() {
		if rec.Label != nil && *rec.Label == d.Scope {
			return core.Ref(rec.Id), nil
		}
	}
	return nil, fmt.Errorf("scope %q: %w", d.Scope, ErrUnknownNode)
}

// PerspectiveCamera builds the camera of the document, or a default one.
func (d *Document) PerspectiveCamera() *core.PerspectiveCamera {
	cam := core.NewPerspectiveCamera(1280, 720)
	if d.Camera == nil {
		return cam
	}
	c := d.Camera
	cam.Position = mgl32.Vec3(c.Position)
	cam.Yaw = mgl32.DegToRad(c.Yaw)
	cam.Pitch = mgl32.DegToRad(c.Pitch)
	if c.Fov > 0 {
		cam.FovY = c.Fov
	}
	if c.Width > 0 && c.Height > 0 {
		cam.Width, cam.Height = c.Width, c.Height
	}
	return cam
}

func (s *Store) addDoc(nd *NodeDoc, parent *core.NodeId) error {
	n := Node{
		Id:     core.NodeId(nd.Id),
		Hidden: nd.Hidden,
		Parent: parent,
		Local:  core.NewTransform(),
	}
	if nd.Id != 0 {
		if _, dup := s.nodes[n.Id]; dup {
			return fmt.Errorf("node id %d declared twice", nd.Id)
		}
	}

	if nd.Kind != "" {
		kind, err := core.ParseSpawnKind(nd.Kind)
		if err != nil {
			return fmt.Errorf("failed to decode node: %w", err)
		}
		n.Label = core.Label(kind.String())
		n.Bounds = BoundsFor(kind)
	}
	if nd.Name != nil {
		n.Label = core.Label(*nd.Name)
	}
	if nd.Position != nil {
		n.Local.Position = mgl32.Vec3(*nd.Position)
	}
	if nd.Rotation != nil {
		r := *nd.Rotation
		n.Local.Rotation = mgl32.AnglesToQuat(
			mgl32.DegToRad(r[0]), mgl32.DegToRad(r[1]), mgl32.DegToRad(r[2]), mgl32.XYZ)
	}
	if nd.Scale != nil {
		n.Local.Scale = mgl32.Vec3(*nd.Scale)
	}
	if nd.Bounds != nil {
		b := geom.AABB{Min: mgl32.Vec3(nd.Bounds.Min), Max: mgl32.Vec3(nd.Bounds.Max)}
		if !b.Valid() {
			return fmt.Errorf("node %q: bounds min must not exceed max", describe(nd))
		}
		n.Bounds = &b
	}

	id := s.Add(n)
	for i := range nd.Children {
		if err := s.addDoc(&nd.Children[i], core.Ref(id)); err != nil {
			return err
		}
	}
	return nil
}

func describe(nd *NodeDoc) string {
	if nd.Name != nil {
		return *nd.Name
	}
	if nd.Kind != "" {
		return nd.Kind
	}
	return fmt.Sprintf("#%d", nd.Id)
}
