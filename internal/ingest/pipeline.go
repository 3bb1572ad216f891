package ingest

import (
	"pdsite/internal/domain/content"
	"runtime"
	"sort"
	"sync"
)

type Warning struct {
	Path string
	Msg  string
}

func (w Warning) String() string {
	return w.Path + ": " + w.Msg
}

// Result is the outcome of reading one discovered file.
type Result struct {
	Path  string
	Entry content.Entry
	Err   error
}

// Scan reads every allowlisted markdown file directly inside dir using a
// pool of GOMAXPROCS workers. Files outside the allowlist are skipped without
// a result. Per-file failures are reported in Result.Err; only a failure to
// list dir is returned as an error. Results are ordered by path.
func (r *Reader) Scan(dir string) ([]Result, error) {
	files, err := Discover(r.fsys, dir)
	if err != nil {
		return nil, err
	}

	workers := runtime.GOMAXPROCS(0)
	jobs := make(chan SourceFile)
	results := make(chan Result)

	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for sf := range jobs {
				entry, err := r.ReadDocument(sf.Path)
				results <- Result{Path: sf.Path, Entry: entry, Err: err}
			}
		}()
	}

	go func() {
		for _, f := range files {
			if !content.IsAllowed(f.Path) {
				continue
			}
			jobs <- f
		}
		close(jobs)
		wg.Wait()
		close(results)
	}()

	var out []Result
	for res := range results {
		out = append(out, res)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Path < out[j].Path
	})
	return out, nil
}
