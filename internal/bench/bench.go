// Package bench times the matrix operations the renderer leans on.
package bench

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"time"

	"github.com/san-kum/spinframe/internal/algebra"
	"github.com/san-kum/spinframe/internal/raster"
	"github.com/san-kum/spinframe/internal/rotation"
	"github.com/san-kum/spinframe/internal/scene"
	"golang.org/x/sync/errgroup"
)

// ErrUnknownWorkload is returned by Run for a name not in Workloads.
var ErrUnknownWorkload = errors.New("bench: unknown workload")

// Workload is one timed operation over an n×n input.
type Workload func(m algebra.Matrix) error

var Workloads = map[string]Workload{
	"multiply": func(m algebra.Matrix) error {
		_, err := m.Multiply(m)
		return err
	},
	"scale": func(m algebra.Matrix) error {
		m.Scale(1.1)
		return nil
	},
	"multiply100": func(m algebra.Matrix) error {
		for i := 0; i < 100; i++ {
			if _, err := m.Multiply(m); err != nil {
				return err
			}
		}
		return nil
	},
	"transpose": func(m algebra.Matrix) error {
		m.Transpose()
		return nil
	},
	// render ignores the matrix size beyond using it as the frame edge.
	"render": func(m algebra.Matrix) error {
		r := raster.New(raster.DefaultOptions())
		edge := max(m.Rows(), 1)
		_, _, err := r.Render(edge, edge, rotation.Transform(0.5, 0.25), scene.Default())
		return err
	},
}

func WorkloadNames() []string {
	names := make([]string, 0, len(Workloads))
	for n := range Workloads {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Timer runs a command and measures wall time.
type Timer struct {
	cmd func() error
}

func NewTimer(cmd func() error) *Timer { return &Timer{cmd: cmd} }

// Run executes the command repeat times and returns the summed duration.
func (t *Timer) Run(repeat int) (time.Duration, error) {
	var total time.Duration
	for i := 0; i < repeat; i++ {
		d, err := t.Once()
		if err != nil {
			return total, err
		}
		total += d
	}
	return total, nil
}

func (t *Timer) Once() (time.Duration, error) {
	start := time.Now()
	err := t.cmd()
	return time.Since(start), err
}

// RandomMatrix returns an n×n matrix of values in [-1, 1) drawn from seed.
func RandomMatrix(n int, seed int64) (algebra.Matrix, error) {
	if n <= 0 {
		return algebra.Matrix{}, fmt.Errorf("bench: size %d: %w", n, algebra.ErrInvalidSize)
	}
	rng := rand.New(rand.NewSource(seed))
	rows := make([][]float64, n)
	for i := range rows {
		rows[i] = make([]float64, n)
		for j := range rows[i] {
			rows[i][j] = rng.Float64()*2 - 1
		}
	}
	return algebra.OfRows(rows)
}

type Options struct {
	Workloads []string
	Sizes     []int
	Repeat    int
	Seed      int64
	// Workers bounds how many workloads run at once. Timings are only
	// comparable with Workers == 1.
	Workers int
}

func DefaultOptions() Options {
	return Options{
		Workloads: WorkloadNames(),
		Sizes:     []int{4, 16, 64},
		Repeat:    10,
		Seed:      1,
		Workers:   1,
	}
}

type Result struct {
	Workload string
	Size     int
	Repeat   int
	Total    time.Duration
}

// PerOp is the mean time of one repetition.
func (r Result) PerOp() time.Duration {
	if r.Repeat == 0 {
		return 0
	}
	return r.Total / time.Duration(r.Repeat)
}

// Run times every workload at every size and returns results ordered by
// workload name, then size.
func Run(ctx context.Context, opts Options) ([]Result, error) {
	if opts.Repeat <= 0 {
		opts.Repeat = 1
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	for _, name := range opts.Workloads {
		if _, ok := Workloads[name]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnknownWorkload, name)
		}
	}

	results := make([]Result, len(opts.Workloads)*len(opts.Sizes))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Workers)
	for i, name := range opts.Workloads {
		for j, size := range opts.Sizes {
			name, size := name, size
			idx := i*len(opts.Sizes) + j
			work := Workloads[name]
			g.Go(func() error {
				if err := ctx.Err(); err != nil {
					return err
				}
				m, err := RandomMatrix(size, opts.Seed)
				if err != nil {
					return err
				}
				total, err := NewTimer(func() error { return work(m) }).Run(opts.Repeat)
				if err != nil {
					return fmt.Errorf("bench %s/%d: %w", name, size, err)
				}
				results[idx] = Result{Workload: name, Size: size, Repeat: opts.Repeat, Total: total}
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	sort.SliceStable(results, func(a, b int) bool {
		if results[a].Workload != results[b].Workload {
			return results[a].Workload < results[b].Workload
		}
		return results[a].Size < results[b].Size
	})
	return results, nil
}
