// Package level is the simulation registry the console's native
// bindings reach into. Scripts never see it directly: it is captured
// by host callbacks and mutated through them.
package level

import (
	"fmt"
	"io"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Vec2 is a two-dimensional vector of the simulation's scalar type.
type Vec2 struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Add returns the component sum of two vectors.
func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{v.X + o.X, v.Y + o.Y}
}

// Scale returns the vector scaled by s.
func (v Vec2) Scale(s float64) Vec2 {
	return Vec2{v.X * s, v.Y * s}
}

// RigidRect is a named axis-aligned rigid body. Force accumulates
// between steps and is consumed by integration.
type RigidRect struct {
	ID       string
	Position Vec2
	Velocity Vec2
	Force    Vec2
	Mass     float64
	W, H     float64
}

// Level holds the named rigid bodies of one loaded level.
type Level struct {
	Gravity Vec2
	rects   map[string]*RigidRect
}

// New creates an empty level.
func New() *Level {
	return &Level{rects: make(map[string]*RigidRect)}
}

// AddRect registers a rigid body under its ID, replacing any previous
// body of the same name.
func (l *Level) AddRect(r *RigidRect) {
	if r.Mass == 0 {
		r.Mass = 1
	}
	l.rects[r.ID] = r
}

// Rect looks a rigid body up by name; nil when absent.
func (l *Level) Rect(id string) *RigidRect {
	return l.rects[id]
}

// IDs returns the registered body names in stable order.
func (l *Level) IDs() []string {
	ids := make([]string, 0, len(l.rects))
	for id := range l.rects {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// ApplyForce accumulates a force on the named body. It reports whether
// the body exists.
func (l *Level) ApplyForce(id string, f Vec2) bool {
	r := l.rects[id]
	if r == nil {
		return false
	}

	r.Force = r.Force.Add(f)
	return true
}

// Update advances the simulation by one fixed time step: accumulated
// force plus gravity integrates into velocity, velocity into position,
// and the force accumulator resets.
func (l *Level) Update(dt float64) {
	for _, r := range l.rects {
		acc := l.Gravity.Add(r.Force.Scale(1 / r.Mass))
		r.Velocity = r.Velocity.Add(acc.Scale(dt))
		r.Position = r.Position.Add(r.Velocity.Scale(dt))
		r.Force = Vec2{}
	}
}

// on-disk level definition shape
type levelFile struct {
	Gravity Vec2 `yaml:"gravity"`
	Rects   []struct {
		ID       string  `yaml:"id"`
		Position Vec2    `yaml:"position"`
		Mass     float64 `yaml:"mass"`
		W        float64 `yaml:"w"`
		H        float64 `yaml:"h"`
	} `yaml:"rects"`
}

// Load reads a YAML level definition.
func Load(r io.Reader) (*Level, error) {
	var lf levelFile
	if err := yaml.NewDecoder(r).Decode(&lf); err != nil {
		return nil, fmt.Errorf("could not decode level: %w", err)
	}

	l := New()
	l.Gravity = lf.Gravity
	for _, rf := range lf.Rects {
		if rf.ID == "" {
			return nil, fmt.Errorf("level rect without an id")
		}
		l.AddRect(&RigidRect{
			ID:       rf.ID,
			Position: rf.Position,
			Mass:     rf.Mass,
			W:        rf.W,
			H:        rf.H,
		})
	}

	return l, nil
}

// LoadFile is a convenience wrapper around Load for a file path.
func LoadFile(path string) (*Level, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open level %s: %w", path, err)
	}
	defer f.Close()

	return Load(f)
}
