// Package extract runs the batch decode pipeline: walk a directory of
// client config files, bind each file to a catalog schema, decode it, and
// hand the result to the resource sink.
package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/lodeworks/lodestone/pkg/catalog"
	"github.com/lodeworks/lodestone/pkg/resource"
	"github.com/lodeworks/lodestone/pkg/schema"
)

const defaultWorkers = 4

// Sink receives extracted resources. *store.ResourceStore satisfies this.
type Sink interface {
	Put(*resource.Resource) (bool, error)
}

// Config holds configuration for the extractor.
type Config struct {
	InputDir string         // Directory of client config files
	Workers  int            // Parallel decode workers (0 = defaultWorkers)
	MaxDepth int            // Decoder nesting ceiling (0 = schema.DefaultMaxDepth)
	Logger   *logrus.Logger // Optional; defaults to the standard logger
}

// FileResult records the outcome of one file.
type FileResult struct {
	File    string
	Schema  string
	Changed bool // a new resource version was created
	Err     error
}

// Summary aggregates one batch run. Failures holds every file that failed
// to decode or persist; one bad file never aborts the batch.
type Summary struct {
	Matched  int
	Skipped  int
	Decoded  int
	Changed  int
	Failures []FileResult
}

// Extractor decodes batches of config files. Each worker owns a private
// cursor per file; the decoder itself is stateless, so one instance is
// shared across workers.
type Extractor struct {
	catalog *catalog.Catalog
	decoder *schema.Decoder
	sink    Sink
	config  Config
	log     *logrus.Logger
}

// New creates an extractor over the given catalog and sink.
func New(cat *catalog.Catalog, sink Sink, config Config) *Extractor {
	if config.Workers <= 0 {
		config.Workers = defaultWorkers
	}
	log := config.Logger
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Extractor{
		catalog: cat,
		decoder: schema.NewDecoder(schema.DecoderConfig{MaxDepth: config.MaxDepth}),
		sink:    sink,
		config:  config,
		log:     log,
	}
}

// Run walks the input directory and decodes every file that matches a
// catalog schema. Unmatched files are skipped with a log line. The returned
// summary is deterministic: failures are sorted by file name.
func (e *Extractor) Run() (*Summary, error) {
	var matched []string
	summary := &Summary{}

	err := filepath.WalkDir(e.config.InputDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if _, ok := e.catalog.MatchFile(path); !ok {
			e.log.WithField("file", path).Debug("no schema matches file, skipping")
			summary.Skipped++
			return nil
		}
		matched = append(matched, path)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk input directory: %w", err)
	}
	summary.Matched = len(matched)

	jobs := make(chan string)
	results := make(chan FileResult)

	var wg sync.WaitGroup
	for i := 0; i < e.config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for path := range jobs {
				results <- e.processFile(path)
			}
		}()
	}

	go func() {
		for _, path := range matched {
			jobs <- path
		}
		close(jobs)
		wg.Wait()
		close(results)
	}()

	for res := range results {
		if res.Err != nil {
			e.log.WithFields(logrus.Fields{
				"file":   res.File,
				"schema": res.Schema,
			}).WithError(res.Err).Warn("file failed to extract")
			summary.Failures = append(summary.Failures, res)
			continue
		}
		summary.Decoded++
		if res.Changed {
			summary.Changed++
		}
	}

	sort.Slice(summary.Failures, func(i, j int) bool {
		return summary.Failures[i].File < summary.Failures[j].File
	})
	return summary, nil
}

// processFile decodes one file against its schema and hands the resource to
// the sink. The whole file is buffered first; the engine never streams.
func (e *Extractor) processFile(path string) FileResult {
	s, ok := e.catalog.MatchFile(path)
	if !ok {
		// Matched during the walk; a vanished schema here is a bug.
		return FileResult{File: path, Err: fmt.Errorf("no schema matches %q", path)}
	}
	res := FileResult{File: path, Schema: s.Name}

	buf, err := os.ReadFile(path)
	if err != nil {
		res.Err = fmt.Errorf("failed to read file: %w", err)
		return res
	}

	doc, err := e.decoder.DecodeDocument(buf, s)
	if err != nil {
		res.Err = err
		return res
	}

	r, err := resource.New(s.Name, filepath.Base(path), doc)
	if err != nil {
		res.Err = err
		return res
	}

	created, err := e.sink.Put(r)
	if err != nil {
		res.Err = fmt.Errorf("failed to persist resource: %w", err)
		return res
	}
	res.Changed = created

	e.log.WithFields(logrus.Fields{
		"file":    path,
		"schema":  s.Name,
		"version": r.Version,
		"changed": created,
	}).Debug("file extracted")
	return res
}
