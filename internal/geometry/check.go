package geometry

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"runtime"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/san-kum/babymc/internal/csg"
)

// chunkSize is the number of points drawn from one RNG stream. Results do not
// depend on the worker count because streams are keyed by chunk index.
const chunkSize = 2048

// maxReported caps the number of offending points kept in a report.
const maxReported = 16

// CheckOptions configures a partition check.
type CheckOptions struct {
	// Samples is the number of points drawn in each sampling volume.
	Samples int
	Seed    uint64
	Workers int
	// Volumes defaults to the geometry's SampleVolumes.
	Volumes []csg.AABB
	Logger  *zap.Logger
}

// Defect is a sampled point that breaks the partition.
type Defect struct {
	Point r3.Vec
	Cells []string
}

// CheckReport summarises a partition check.
type CheckReport struct {
	Samples  int
	Inside   int
	Overlaps []Defect
	Gaps     []Defect
	Escapes  []Defect

	OverlapCount int
	GapCount     int
	EscapeCount  int

	// Hits counts samples per cell name.
	Hits map[string]int
}

// OK reports whether no defect was found.
func (r *CheckReport) OK() bool {
	return r.OverlapCount == 0 && r.GapCount == 0 && r.EscapeCount == 0
}

// Err converts the first defect to an error.
func (r *CheckReport) Err() error {
	var errs []error
	if len(r.Overlaps) > 0 {
		o := r.Overlaps[0]
		errs = append(errs, &OverlapError{Point: o.Point, Cells: o.Cells})
	}
	if r.GapCount > 0 {
		errs = append(errs, ErrGap)
	}
	if r.EscapeCount > 0 {
		errs = append(errs, ErrOutsideBounds)
	}
	return errors.Join(errs...)
}

type chunkResult struct {
	inside   int
	overlaps []Defect
	gaps     []Defect
	escapes  []Defect
	nOverlap int
	nGap     int
	nEscape  int
	hits     map[string]int
}

// Check samples points and verifies that every point inside the bounding
// volume is claimed by exactly one cell and that no point outside it is
// claimed at all.
func Check(ctx context.Context, g *Geometry, opts CheckOptions) (*CheckReport, error) {
	if opts.Samples <= 0 {
		opts.Samples = 100_000
	}
	if opts.Workers <= 0 {
		opts.Workers = runtime.NumCPU()
	}
	if len(opts.Volumes) == 0 {
		opts.Volumes = g.SampleVolumes
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	bounds := g.Bounds()

	type job struct {
		volume int
		chunk  int
		n      int
	}
	var jobs []job
	for vi := range opts.Volumes {
		for c := 0; c*chunkSize < opts.Samples; c++ {
			n := min(chunkSize, opts.Samples-c*chunkSize)
			jobs = append(jobs, job{volume: vi, chunk: c, n: n})
		}
	}

	results := make([]chunkResult, len(jobs))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(opts.Workers)

	for i, j := range jobs {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			rng := rand.New(rand.NewPCG(opts.Seed+uint64(j.volume), uint64(j.chunk)))
			vol := opts.Volumes[j.volume]
			res := chunkResult{hits: make(map[string]int)}

			for k := 0; k < j.n; k++ {
				p := vol.Lerp(r3.Vec{X: rng.Float64(), Y: rng.Float64(), Z: rng.Float64()})
				claims := g.Claims(p)
				for _, c := range claims {
					res.hits[c.Name]++
				}

				if !bounds.Contains(p) {
					if len(claims) > 0 {
						res.nEscape++
						if len(res.escapes) < maxReported {
							res.escapes = append(res.escapes, defect(p, claims))
						}
					}
					continue
				}

				res.inside++
				switch {
				case len(claims) == 0:
					res.nGap++
					if len(res.gaps) < maxReported {
						res.gaps = append(res.gaps, defect(p, nil))
					}
				case len(claims) > 1:
					res.nOverlap++
					if len(res.overlaps) < maxReported {
						res.overlaps = append(res.overlaps, defect(p, claims))
					}
				}
			}
			results[i] = res
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	report := &CheckReport{Samples: len(opts.Volumes) * opts.Samples, Hits: make(map[string]int)}
	for _, r := range results {
		report.Inside += r.inside
		report.OverlapCount += r.nOverlap
		report.GapCount += r.nGap
		report.EscapeCount += r.nEscape
		report.Overlaps = appendCapped(report.Overlaps, r.overlaps)
		report.Gaps = appendCapped(report.Gaps, r.gaps)
		report.Escapes = appendCapped(report.Escapes, r.escapes)
		for name, n := range r.hits {
			report.Hits[name] += n
		}
	}

	logger.Info("partition check finished",
		zap.Int("samples", report.Samples),
		zap.Int("overlaps", report.OverlapCount),
		zap.Int("gaps", report.GapCount),
		zap.Int("escapes", report.EscapeCount),
	)
	return report, nil
}

func defect(p r3.Vec, claims []*Cell) Defect {
	d := Defect{Point: p}
	for _, c := range claims {
		d.Cells = append(d.Cells, c.Name)
	}
	return d
}

func appendCapped(dst, src []Defect) []Defect {
	for _, d := range src {
		if len(dst) >= maxReported {
			break
		}
		dst = append(dst, d)
	}
	return dst
}

// VolumeEstimate is a Monte Carlo cell volume in cm3 with its standard error.
type VolumeEstimate struct {
	Cell   string
	Volume float64
	StdErr float64
}

// EstimateVolumes computes hit-or-miss volumes of every cell inside box.
func EstimateVolumes(ctx context.Context, g *Geometry, box csg.AABB, samples int, seed uint64) ([]VolumeEstimate, error) {
	if samples <= 0 {
		samples = 100_000
	}
	nChunks := (samples + chunkSize - 1) / chunkSize

	var mu sync.Mutex
	hits := make(map[string]int)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(runtime.NumCPU())
	for c := 0; c < nChunks; c++ {
		eg.Go(func() error {
			if err := egCtx.Err(); err != nil {
				return err
			}
			rng := rand.New(rand.NewPCG(seed, uint64(c)))
			local := make(map[string]int)
			n := min(chunkSize, samples-c*chunkSize)
			for k := 0; k < n; k++ {
				p := box.Lerp(r3.Vec{X: rng.Float64(), Y: rng.Float64(), Z: rng.Float64()})
				for _, cell := range g.Claims(p) {
					local[cell.Name]++
				}
			}
			mu.Lock()
			for name, v := range local {
				hits[name] += v
			}
			mu.Unlock()
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	total := box.Volume()
	out := make([]VolumeEstimate, 0, len(g.Cells))
	for _, c := range g.Cells {
		frac := float64(hits[c.Name]) / float64(samples)
		out = append(out, VolumeEstimate{
			Cell:   c.Name,
			Volume: frac * total,
			StdErr: total * math.Sqrt(frac*(1-frac)/float64(samples)),
		})
	}
	return out, nil
}
