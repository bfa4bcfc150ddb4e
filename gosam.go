/*Package gosam runs semi-analytic galaxy formation over dark matter
merger trees. The root package ties the engine together: it shards a
loader's forests across worker goroutines, where each worker owns one
sam.Run and one io.Saver and shares nothing else.*/
package gosam

import (
	"context"
	"fmt"
	"log"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/gosam-model/gosam/cosmo"
	"github.com/gosam-model/gosam/io"
	"github.com/gosam-model/gosam/physics"
	"github.com/gosam-model/gosam/sam"
	"github.com/gosam-model/gosam/tree"
)

// ManagerConfig collects everything a Manager needs. Loader, Ages and
// NewSaver are required; the zero values of the rest fall back to
// defaults.
type ManagerConfig struct {
	Loader  tree.Loader
	Ages    *cosmo.AgeTable
	Params  physics.Params
	Recipes physics.Recipes

	// NewSaver builds the saver for one worker. Workers never share a
	// saver, so implementations need no locking.
	NewSaver func(worker int) io.Saver

	// Forests restricts the run to these IDs. Nil means everything
	// the loader offers.
	Forests []int

	// Workers is the goroutine count. Anything below one means one
	// worker per CPU.
	Workers int

	Log bool
}

// Manager fans forests out over worker goroutines.
type Manager struct {
	loader tree.Loader
	runs   []*sam.Run
	savers []io.Saver
	shards [][]int

	log bool
	ms  runtime.MemStats
}

// NewManager validates the config, builds one engine Run per worker,
// and splits the forest IDs round-robin across the workers.
func NewManager(cfg *ManagerConfig) (*Manager, error) {
	if cfg.Loader == nil {
		return nil, fmt.Errorf("A Manager needs a forest loader.")
	}
	if cfg.NewSaver == nil {
		return nil, fmt.Errorf("A Manager needs a saver constructor.")
	}

	ids := cfg.Forests
	if ids == nil {
		ids = cfg.Loader.ForestIDs()
	}

	workers := cfg.Workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	if workers > len(ids) && len(ids) > 0 {
		workers = len(ids)
	}

	man := &Manager{
		loader: cfg.Loader,
		runs:   make([]*sam.Run, workers),
		savers: make([]io.Saver, workers),
		shards: make([][]int, workers),
		log:    cfg.Log,
	}

	for i := range man.runs {
		man.savers[i] = cfg.NewSaver(i)
		run, err := sam.NewRun(cfg.Params, cfg.Recipes, cfg.Ages, man.savers[i])
		if err != nil {
			return nil, err
		}
		man.runs[i] = run
	}

	for i, id := range ids {
		w := i % workers
		man.shards[w] = append(man.shards[w], id)
	}

	return man, nil
}

// Workers returns the number of worker goroutines Process will use.
func (man *Manager) Workers() int { return len(man.runs) }

// Savers returns each worker's saver, in worker order.
func (man *Manager) Savers() []io.Saver { return man.savers }

// Diag sums the diagnostics of every worker's Run.
func (man *Manager) Diag() sam.Diag {
	d := sam.Diag{}
	for _, r := range man.runs {
		rd := r.Diag()
		d.Add(&rd)
	}
	return d
}

// Process pushes every forest through the engine. The first failure
// cancels the remaining workers and is returned.
func (man *Manager) Process() error {
	g, ctx := errgroup.WithContext(context.Background())
	for w := range man.runs {
		w := w
		g.Go(func() error { return man.processShard(ctx, w) })
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if man.log {
		d := man.Diag()
		log.Printf(
			"Processed %d forests into %d galaxies. "+
				"%d newborn, %d mergers, %d disruptions.",
			d.Forests, d.Committed, d.Newborn, d.Mergers, d.Disruptions,
		)
		runtime.ReadMemStats(&man.ms)
		log.Printf(
			"Alloc: %5d MB, Sys: %5d MB",
			man.ms.Alloc>>20, man.ms.Sys>>20,
		)
	}
	return nil
}

func (man *Manager) processShard(ctx context.Context, w int) error {
	r := man.runs[w]
	for _, id := range man.shards[w] {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		f, err := man.loader.LoadForest(id)
		if err != nil {
			return err
		}
		if err := r.ProcessForest(f); err != nil {
			return err
		}
	}
	return nil
}

// ShardForests is the static split used to spread forests across
// separate worker processes: worker workerID out of numWorkers takes
// every numWorkers-th ID.
func ShardForests(ids []int, workerID, numWorkers int) []int {
	out := []int{}
	for i, id := range ids {
		if i%numWorkers == workerID {
			out = append(out, id)
		}
	}
	return out
}
