package subtitle

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/hangfoxy/MoneyPrinterTurbo/internal/logging"
)

// classifies why a file could not be processed
type ErrorKind int

const (
	KindNone ErrorKind = iota
	KindFormat
	KindIO
	KindPrepare
	KindCanceled
	KindUnexpected
)

func (k ErrorKind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindFormat:
		return "format"
	case KindIO:
		return "io"
	case KindPrepare:
		return "prepare"
	case KindCanceled:
		return "canceled"
	default:
		return "unexpected"
	}
}

// outcome of processing one file
type Result struct {
	OK          bool
	Kind        ErrorKind
	Err         error
	InputPath   string
	OutputPath  string
	InputCount  int // records read
	OutputCount int // word entries written
	Skipped     int // malformed blocks dropped by the reader
}

// input/output pair for batch processing
type Job struct {
	InputPath  string
	OutputPath string
}

// PrepareFunc may rewrite records between reading and splitting.
type PrepareFunc func(ctx context.Context, records []Record) ([]Record, error)

// Processor runs the read, split, write pipeline for whole files.
type Processor struct {
	Splitter *Splitter
	// Writer overrides the output format; nil picks one from the output
	// path extension.
	Writer  Writer
	Prepare PrepareFunc
	Logger  *logging.Logger
}

func NewProcessor(logger *logging.Logger) *Processor {
	if logger == nil {
		logger = logging.Nop()
	}
	return &Processor{
		Splitter: NewSplitter(),
		Logger:   logger,
	}
}

// ProcessFile never panics and never returns a bare error: every failure is
// logged with the input path and reported through Result.
func (p *Processor) ProcessFile(
	ctx context.Context,
	inputPath, outputPath string,
) (res Result) {
	res = Result{InputPath: inputPath, OutputPath: outputPath}
	log := p.logger()

	defer func() {
		if r := recover(); r != nil {
			res.OK = false
			res.Kind = KindUnexpected
			res.Err = fmt.Errorf("panic while processing %s: %v", inputPath, r)
		}
		if !res.OK {
			log.Errorw("Failed to process subtitle file",
				"input", inputPath,
				"kind", res.Kind.String(),
				"error", res.Err,
			)
		}
	}()

	if err := ctx.Err(); err != nil {
		return res.fail(KindCanceled, err)
	}

	read, err := ReadFile(inputPath)
	if err != nil {
		return res.fail(KindIO, err)
	}
	res.InputCount = len(read.Records)
	res.Skipped = len(read.Skipped)
	for _, sk := range read.Skipped {
		log.Debugw("Skipped malformed block",
			"input", inputPath,
			"block", sk.Block,
			"lines", sk.Lines,
		)
	}

	records := read.Records
	if p.Prepare != nil {
		records, err = p.Prepare(ctx, records)
		if err != nil {
			if errors.Is(err, context.Canceled) ||
				errors.Is(err, context.DeadlineExceeded) {
				return res.fail(KindCanceled, err)
			}
			return res.fail(KindPrepare, err)
		}
	}

	splitter := p.Splitter
	if splitter == nil {
		splitter = NewSplitter()
	}
	entries, err := splitter.SplitRecords(records)
	if err != nil {
		if errors.Is(err, ErrFormat) {
			return res.fail(KindFormat, err)
		}
		return res.fail(KindUnexpected, err)
	}

	writer := p.Writer
	if writer == nil {
		writer, err = NewWriter(GetFormatFromExtension(outputPath))
		if err != nil {
			return res.fail(KindUnexpected, err)
		}
	}
	if err := writer.Write(entries, outputPath); err != nil {
		return res.fail(KindIO, fmt.Errorf("failed to write subtitles: %w", err))
	}

	res.OK = true
	res.OutputCount = len(entries)
	log.Infow("Processed subtitle file",
		"input", inputPath,
		"output", outputPath,
		"records", res.InputCount,
		"words", res.OutputCount,
		"skipped", res.Skipped,
	)
	return res
}

// ProcessBatch processes jobs with at most concurrency files in flight.
// Results come back in job order; one failing file does not stop the rest.
func (p *Processor) ProcessBatch(
	ctx context.Context,
	jobs []Job,
	concurrency int,
) []Result {
	if concurrency <= 0 {
		concurrency = 3
	}

	results := make([]Result, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for i, job := range jobs {
		g.Go(func() error {
			results[i] = p.ProcessFile(gctx, job.InputPath, job.OutputPath)
			return nil
		})
	}
	_ = g.Wait()

	return results
}

func (p *Processor) logger() *logging.Logger {
	if p.Logger == nil {
		return logging.Nop()
	}
	return p.Logger
}

func (r Result) fail(kind ErrorKind, err error) Result {
	r.OK = false
	r.Kind = kind
	r.Err = err
	return r
}
