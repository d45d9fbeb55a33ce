package trajectory

import (
	"io"

	"github.com/go-viper/mapstructure/v2"
	"github.com/golang/geo/r3"
	"github.com/pkg/errors"
	"github.com/yosuke-furukawa/json5/encoding/json5"
	"go.uber.org/multierr"

	"go.viam.com/sparseplan/referenceframe"
	"go.viam.com/sparseplan/spatialmath"
	"go.viam.com/sparseplan/utils"
)

// Point types accepted in a PointConfig.
const (
	CartesianType = "cartesian"
	AxialType     = "axial"
	JointType     = "joint"
)

// PointConfig describes a trajectory point in a file or a generic map.
type PointConfig struct {
	// ID is a UUID or any name; names are mapped to stable IDs with IDFromName. Empty gets a fresh ID.
	ID   string  `json:"id,omitempty"`
	Type string  `json:"type"`
	X    float64 `json:"x"`
	Y    float64 `json:"y"`
	Z    float64 `json:"z"`
	// Yaw about +Z in degrees.
	Theta  float64   `json:"theta"`
	Joints []float64 `json:"joints,omitempty"`
	// Max joint-space distance between an interpolated guess and the pose solved from it.
	Tolerance float64 `json:"tolerance,omitempty"`
}

// Config is a trajectory file.
type Config struct {
	Points []PointConfig `json:"points"`
}

// Point builds the trajectory point described by the config.
func (pc PointConfig) Point() (Point, error) {
	pose := spatialmath.NewPose(r3.Vector{X: pc.X, Y: pc.Y, Z: pc.Z}, spatialmath.NewYawOrientation(utils.DegToRad(pc.Theta)))

	var pt Point
	switch pc.Type {
	case CartesianType, "":
		pt = NewCartPoint(pose)
	case AxialType:
		pt = NewAxialSymmetricPoint(pose)
	case JointType:
		if len(pc.Joints) == 0 {
			return nil, errors.New("joint point needs joints")
		}
		pt = NewJointWaypoint(referenceframe.FloatsToInputs(pc.Joints), pc.Tolerance)
	default:
		return nil, NewUnknownPointTypeError(pc.Type)
	}
	if pc.ID != "" {
		pt.SetID(IDFromName(pc.ID))
	}
	pt.SetTolerance(pc.Tolerance)
	return pt, nil
}

// DecodePointConfig decodes a generic map, e.g. from a JSON "extra" field, into a PointConfig.
func DecodePointConfig(raw map[string]interface{}) (PointConfig, error) {
	var pc PointConfig
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "json",
		Result:           &pc,
		WeaklyTypedInput: true,
		ErrorUnused:      true,
	})
	if err != nil {
		return PointConfig{}, err
	}
	if err := decoder.Decode(raw); err != nil {
		return PointConfig{}, err
	}
	return pc, nil
}

// BuildPoints builds every point in the config. All bad points are reported together.
func (c *Config) BuildPoints() ([]Point, error) {
	var errs error
	points := make([]Point, 0, len(c.Points))
	seen := make(map[ID]struct{}, len(c.Points))
	for i, pc := range c.Points {
		pt, err := pc.Point()
		if err != nil {
			errs = multierr.Append(errs, errors.Wrapf(err, "point %d", i))
			continue
		}
		if _, ok := seen[pt.ID()]; ok {
			errs = multierr.Append(errs, NewDuplicateIDError(pt.ID()))
			continue
		}
		seen[pt.ID()] = struct{}{}
		points = append(points, pt)
	}
	if errs != nil {
		return nil, errs
	}
	return points, nil
}

// ReadConfig decodes a trajectory file. Files are JSON5, so comments are allowed.
func ReadConfig(r io.Reader) (*Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "cannot read trajectory")
	}
	var c Config
	if err := json5.Unmarshal(data, &c); err != nil {
		return nil, errors.Wrap(err, "cannot decode trajectory")
	}
	return &c, nil
}
