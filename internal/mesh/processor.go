package mesh

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/midgard-weld/internal/config"
	"github.com/Faultbox/midgard-weld/internal/logger"
	pmath "github.com/Faultbox/midgard-weld/pkg/math"
	"github.com/Faultbox/midgard-weld/pkg/spatial"
)

// Result holds the output of Processor.Process.
type Result struct {
	// Normals holds one normal per face corner, nil if normal generation
	// is disabled.
	Normals []pmath.Vec3
	// Weld is nil if welding is disabled.
	Weld *WeldResult
}

// Processor runs the configured post-processing steps on meshes.
type Processor struct {
	cfg config.MeshConfig
}

// NewProcessor creates a processor for the given settings.
func NewProcessor(cfg config.MeshConfig) *Processor {
	return &Processor{cfg: cfg}
}

// Setup validates cfg, initializes logging from it and returns a processor.
func Setup(cfg *config.Config) (*Processor, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return nil, fmt.Errorf("initializing logger: %w", err)
	}
	return NewProcessor(cfg.Mesh), nil
}

// Process generates normals and joins vertices of m, modifying it in place.
// Normals are generated first; since welding keeps the face order, they
// stay valid for the welded mesh.
func (p *Processor) Process(m *Mesh) (*Result, error) {
	if err := Validate(m); err != nil {
		return nil, err
	}
	log := logger.Named("mesh").With(zap.String("mesh", m.Name))

	res := &Result{}

	if p.cfg.Normals {
		normals, err := GenerateNormals(m, NormalOptions{MaxSmoothingAngle: p.cfg.MaxSmoothingAngle})
		if err != nil {
			return nil, fmt.Errorf("generating normals: %w", err)
		}
		res.Normals = normals

		degenerate := 0
		for f := range m.Faces {
			if m.FaceNormal(f).IsZero() {
				degenerate++
			}
		}
		if degenerate > 0 {
			log.Warn("degenerate faces", zap.Int("count", degenerate), zap.Int("faces", len(m.Faces)))
		}
		log.Debug("generated normals", zap.Int("corners", len(normals)))
	}

	if p.cfg.Weld {
		eps := p.weldEpsilon(m)
		weld, err := JoinVertices(m, eps)
		if err != nil {
			return nil, fmt.Errorf("joining vertices: %w", err)
		}
		res.Weld = weld

		var reduced float64
		if weld.VerticesIn > 0 {
			reduced = float64(weld.VerticesIn-weld.VerticesOut) / float64(weld.VerticesIn) * 100
		}
		log.Debug("joined vertices",
			zap.Float32("epsilon", eps),
			zap.Int("verts_in", weld.VerticesIn),
			zap.Int("verts_out", weld.VerticesOut),
			zap.Float64("reduced_pct", reduced),
		)
	}

	return res, nil
}

// weldEpsilon resolves the configured weld radius for m.
func (p *Processor) weldEpsilon(m *Mesh) float32 {
	switch {
	case p.cfg.WeldEpsilon < 0:
		return 0
	case p.cfg.WeldEpsilon > 0:
		return p.cfg.WeldEpsilon
	default:
		return spatial.PositionEpsilon(m.view())
	}
}
