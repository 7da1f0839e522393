// Copyright (C) 2018 Google Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package plan

import (
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/OpenWSGR/autowsgr/core/math/f64"
	"github.com/OpenWSGR/autowsgr/wsgr/vision"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// MapNode is one node of a campaign map: where the fleet marker sits when
// the fleet is at the node, and which nodes the fleet can move to next.
type MapNode struct {
	Name string
	// Position is the marker anchor in relative screen coordinates.
	Position f64.Point
	// Next lists reachable successor nodes. Empty means unrecorded, not
	// unreachable: trackers fall back to considering every node.
	Next []string
}

// MapData is the node layout of one campaign map. Map files record pixel
// positions at the 960x540 reference resolution; loading normalizes them.
type MapData struct {
	nodes map[string]MapNode
	names []string
}

// mapNodeSchema accepts both node forms: the full mapping
//
//	A: {position: [388, 461], next: [B, C]}
//
// and the legacy bare pair
//
//	A: [388, 461]
type mapNodeSchema struct {
	Position []float64 `yaml:"position"`
	Next     []string  `yaml:"next"`
}

func (n *mapNodeSchema) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind == yaml.SequenceNode {
		return node.Decode(&n.Position)
	}
	type alias mapNodeSchema
	var a alias
	if err := node.Decode(&a); err != nil {
		return err
	}
	*n = mapNodeSchema(a)
	return nil
}

// ReadMap decodes a map data file.
func ReadMap(r io.Reader) (*MapData, error) {
	bytes, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	raw := map[string]mapNodeSchema{}
	if err := yaml.Unmarshal(bytes, &raw); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, errors.New("map data has no nodes")
	}

	m := &MapData{nodes: make(map[string]MapNode, len(raw))}
	for name, s := range raw {
		if len(s.Position) != 2 {
			return nil, errors.Errorf("node %s: position has %d coordinates, want 2", name, len(s.Position))
		}
		x, y := s.Position[0], s.Position[1]
		if x < 0 || x > vision.ReferenceWidth || y < 0 || y > vision.ReferenceHeight {
			return nil, errors.Errorf("node %s: position (%v, %v) outside the %dx%d reference frame",
				name, x, y, vision.ReferenceWidth, vision.ReferenceHeight)
		}
		m.nodes[name] = MapNode{
			Name:     name,
			Position: f64.Pt(x/vision.ReferenceWidth, y/vision.ReferenceHeight),
			Next:     s.Next,
		}
		m.names = append(m.names, name)
	}
	sort.Strings(m.names)
	return m, nil
}

// LoadMap reads a map data file from disk.
func LoadMap(path string) (*MapData, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	m, err := ReadMap(f)
	if err != nil {
		return nil, errors.Wrap(err, path)
	}
	return m, nil
}

// MapPath is the conventional location of a map data file under dir.
func MapPath(dir string, chapter, mapID ID) string {
	return filepath.Join(dir, chapter.String()+"-"+mapID.String()+".yaml")
}

// Node looks up a node by name.
func (m *MapData) Node(name string) (MapNode, bool) {
	n, ok := m.nodes[name]
	return n, ok
}

// Names returns all node names in sorted order.
func (m *MapData) Names() []string {
	return append([]string{}, m.names...)
}

// Nodes returns all nodes in name order.
func (m *MapData) Nodes() []MapNode {
	nodes := make([]MapNode, 0, len(m.names))
	for _, name := range m.names {
		nodes = append(nodes, m.nodes[name])
	}
	return nodes
}

// Next returns the recorded successors of the named node.
func (m *MapData) Next(name string) []string {
	return m.nodes[name].Next
}
