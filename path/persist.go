package path

import (
	"fmt"

	"github.com/jakecoffman/cp"
	"gopkg.in/yaml.v3"

	"github.com/milkweed-games/waypath/geom"
)

// MovementRecord is the serialized form of the kinematic parameters of a
// node.
type MovementRecord struct {
	MaxSpeed              float64 `yaml:"max_speed"`
	MinSpeed              float64 `yaml:"min_speed,omitempty"`
	AccelTravelPercentage float64 `yaml:"accel_travel_percentage,omitempty"`
	DecelTravelPercentage float64 `yaml:"decel_travel_percentage,omitempty"`
	StandbyTime           float64 `yaml:"standby_time,omitempty"`
}

// NodeRecord is the serialized form of a node. Positions are relative to
// the center of the owning entity.
type NodeRecord struct {
	X        float64        `yaml:"x"`
	Y        float64        `yaml:"y"`
	Selected bool           `yaml:"selected,omitempty"`
	Movement MovementRecord `yaml:"movement"`
}

// validate checks the ranges the in-memory movement type enforces by
// contract, since records come from files.
func (r MovementRecord) validate() error {
	switch {
	case r.MaxSpeed <= 0:
		return fmt.Errorf("max speed %g is not higher than 0", r.MaxSpeed)
	case r.MinSpeed < 0:
		return fmt.Errorf("min speed %g is negative", r.MinSpeed)
	case r.MinSpeed > r.MaxSpeed:
		return fmt.Errorf("min speed %g exceeds max speed %g", r.MinSpeed, r.MaxSpeed)
	case r.AccelTravelPercentage < 0 || r.AccelTravelPercentage > 1:
		return fmt.Errorf("accel travel percentage %g is not within 0 and 1", r.AccelTravelPercentage)
	case r.DecelTravelPercentage < 0 || r.DecelTravelPercentage > 1:
		return fmt.Errorf("decel travel percentage %g is not within 0 and 1", r.DecelTravelPercentage)
	case r.AccelTravelPercentage+r.DecelTravelPercentage > 1:
		return fmt.Errorf("accel and decel travel percentages add up to more than 1")
	case r.StandbyTime < 0:
		return fmt.Errorf("standby time %g is negative", r.StandbyTime)
	}

	return nil
}

// Records returns the nodes of the path in serializable form.
func (p *Path) Records() []NodeRecord {
	records := make([]NodeRecord, len(p.nodes))
	for i, node := range p.nodes {
		records[i] = NodeRecord{
			X:        node.pos.X,
			Y:        node.pos.Y,
			Selected: node.selected,
			Movement: MovementRecord{
				MaxSpeed:              node.movement.maxSpeed,
				MinSpeed:              node.movement.minSpeed,
				AccelTravelPercentage: node.movement.accelTravelPercentage,
				DecelTravelPercentage: node.movement.decelTravelPercentage,
				StandbyTime:           node.movement.standbyTime,
			},
		}
	}
	return records
}

// FromRecords rebuilds a path from serialized nodes. Buckets and the
// bounding box are derived, never stored.
func FromRecords(records []NodeRecord) (*Path, error) {
	if len(records) < 2 {
		return nil, fmt.Errorf("a path needs at least 2 nodes, got %d", len(records))
	}

	nodes := make([]Node, len(records))
	for i, r := range records {
		if err := r.Movement.validate(); err != nil {
			return nil, fmt.Errorf("node %d: %w", i, err)
		}

		nodes[i] = Node{
			pos:      cp.Vector{X: r.X, Y: r.Y},
			selected: r.Selected,
			movement: NewMovement(r.Movement.MaxSpeed, r.Movement.AccelTravelPercentage, r.Movement.DecelTravelPercentage, r.Movement.MinSpeed, r.Movement.StandbyTime),
		}
	}

	for i := range nodes {
		prev := nodes[geom.Prev(i, len(nodes))]
		if geom.VecApproxEqualStrict(prev.pos, nodes[i].pos) {
			return nil, fmt.Errorf("consecutive nodes %d and %d coincide at %v", geom.Prev(i, len(nodes)), i, nodes[i].pos)
		}
	}

	return FromNodes(nodes), nil
}

// MarshalPath serializes the path nodes to YAML.
func MarshalPath(p *Path) ([]byte, error) {
	return yaml.Marshal(p.Records())
}

// UnmarshalPath rebuilds a path from YAML produced by MarshalPath.
func UnmarshalPath(data []byte) (*Path, error) {
	var records []NodeRecord
	if err := yaml.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to unmarshal path nodes: %w", err)
	}

	return FromRecords(records)
}
