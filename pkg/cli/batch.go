package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/InfinityTools/go-logging"
	"github.com/pbenner/threadpool"

	"github.com/Fepozopo/rasterfx/pkg/stdimg"
)

// BatchJob is one input file of a batch run and the path its result goes to.
type BatchJob struct {
	Input  string
	Output string
}

// PlanBatch maps every input onto outDir, keeping the base name. Two
// inputs with the same base name are an error.
func PlanBatch(inputs []string, outDir string) ([]BatchJob, error) {
	seen := make(map[string]string, len(inputs))
	jobs := make([]BatchJob, 0, len(inputs))
	for _, in := range inputs {
		out := filepath.Join(outDir, filepath.Base(in))
		if prev, ok := seen[out]; ok {
			return nil, fmt.Errorf("%s and %s both write %s", prev, in, out)
		}
		seen[out] = in
		jobs = append(jobs, BatchJob{Input: in, Output: out})
	}
	return jobs, nil
}

// runBatchJob loads, filters and saves a single file.
func runBatchJob(job BatchJob, pipe *stdimg.Pipeline, cfg Config) error {
	img, _, err := LoadImage(job.Input)
	if err != nil {
		return err
	}
	out, err := pipe.Run(stdimg.FitWithin(img, cfg.MaxDim))
	if err != nil {
		return fmt.Errorf("%s: %w", job.Input, err)
	}
	return SaveImage(job.Output, out, cfg)
}

// RunBatch applies params to every job on numThreads workers. Each file
// gets its own random source seeded from params, so results do not depend
// on scheduling.
func RunBatch(jobs []BatchJob, params stdimg.Params, cfg Config, numThreads int) error {
	if len(jobs) == 0 {
		return nil
	}
	if numThreads <= 0 {
		numThreads = runtime.NumCPU()
	}
	if dir := filepath.Dir(jobs[0].Output); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	pipe := stdimg.NewPipeline(params)
	msg := fmt.Sprintf("Processing %d files", len(jobs))
	logging.Log(msg)

	var err error
	if numThreads == 1 {
		for idx, job := range jobs {
			if err = runBatchJob(job, pipe, cfg); err != nil {
				logging.OverridePrefix(false, false, false).Logln("")
				return fmt.Errorf("batch job %d: %w", idx, err)
			}
			logging.LogProgressDot(idx, len(jobs), 79-len(msg))
		}
		logging.OverridePrefix(false, false, false).Logln("")
		return nil
	}

	pool := threadpool.New(numThreads, len(jobs))
	defer pool.Stop()
	g := pool.NewJobGroup()
	var m sync.Mutex
	progressIdx := 0
	for jobIdx, j := range jobs {
		idx := jobIdx
		job := j
		err = pool.AddJob(g, func(pool threadpool.ThreadPool, erf func() error) error {
			if erf() != nil {
				return nil
			}
			if err := runBatchJob(job, pipe, cfg); err != nil {
				return fmt.Errorf("batch job %d: %w", idx, err)
			}
			func() {
				m.Lock()
				defer m.Unlock()
				logging.LogProgressDot(progressIdx, len(jobs), 79-len(msg))
				progressIdx++
			}()
			return nil
		})
		if err != nil {
			break
		}
	}
	if err2 := pool.Wait(g); err2 != nil && err == nil {
		err = err2
	}
	logging.OverridePrefix(false, false, false).Logln("")
	return err
}
