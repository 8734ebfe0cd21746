package batch

import (
	"context"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/x/values"
	"github.com/effective-security/xcsr/cnrange"
	"github.com/effective-security/xcsr/cryptoprov"
	"github.com/effective-security/xcsr/cryptoprov/inmemcrypto"
	"github.com/effective-security/xcsr/csr"
	"github.com/effective-security/xcsr/export"
	"github.com/effective-security/xcsr/metricskey"
	"github.com/effective-security/xlog"
	"github.com/jinzhu/copier"
	"golang.org/x/sync/errgroup"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/xcsr", "batch")

var (
	// ErrEmptyRange is returned when the range expression yields no names
	ErrEmptyRange = errors.New("range yields no common names")
	// ErrMissingOutput is returned when the output path is not specified
	ErrMissingOutput = errors.New("output path is not specified")
)

type options struct {
	prov     cryptoprov.Provider
	workers  int
	exporter *export.Exporter
}

// An Option sets options such as key provider, number of workers, etc.
type Option func(*options)

// WithProvider lets to specify the key provider,
// by default the keys are generated in memory.
func WithProvider(prov cryptoprov.Provider) Option {
	return func(o *options) {
		o.prov = prov
	}
}

// WithWorkers lets to specify the number of identities generated in parallel.
// 1 is by default.
func WithWorkers(n int) Option {
	return func(o *options) {
		o.workers = n
	}
}

// WithExporter lets to specify the exporter,
// by default the file is written to the OS file system.
func WithExporter(e *export.Exporter) Option {
	return func(o *options) {
		o.exporter = e
	}
}

// Orchestrator runs batches
type Orchestrator struct {
	gen      *csr.Generator
	workers  int
	exporter *export.Exporter
}

// New returns an orchestrator
func New(opt ...Option) *Orchestrator {
	var o options
	for _, f := range opt {
		f(&o)
	}
	if o.prov == nil {
		o.prov = inmemcrypto.NewProvider()
	}
	if o.exporter == nil {
		o.exporter = export.NewOS()
	}
	return &Orchestrator{
		gen:      csr.NewGenerator(o.prov),
		workers:  values.Select(o.workers > 0, o.workers, 1),
		exporter: o.exporter,
	}
}

// GenerateCSRBatch generates the batch with in-memory keys,
// and writes it to req.OutputPath on the OS file system.
func GenerateCSRBatch(ctx context.Context, req *GenerationRequest) (*Result, error) {
	return New().Run(ctx, req)
}

// Run generates the batch and writes it to req.OutputPath.
// On error no file is created, unless the export itself fails.
func (o *Orchestrator) Run(ctx context.Context, req *GenerationRequest) (*Result, error) {
	if req.OutputPath == "" {
		return nil, errors.WithStack(ErrMissingOutput)
	}

	ids, err := o.Generate(ctx, req)
	if err != nil {
		return nil, err
	}
	defer wipe(ids)

	rows := make([]*export.Record, len(ids))
	for i, id := range ids {
		rows[i] = &id.Record
	}
	if err = o.exporter.Export(rows, req.OutputPath); err != nil {
		return nil, err
	}

	res := &Result{
		Success:    true,
		Message:    fmt.Sprintf("generated %d CSRs", len(ids)),
		Total:      len(ids),
		OutputPath: req.OutputPath,
	}
	logger.KV(xlog.INFO,
		"status", "batch_completed",
		"total", res.Total,
		"output", res.OutputPath)
	return res, nil
}

// Generate returns the identities for every name of the range, in the range order.
// The caller owns the private keys.
func (o *Orchestrator) Generate(ctx context.Context, req *GenerationRequest) ([]*Identity, error) {
	algo, err := csr.ResolveKeyAlgorithm(req.KeyType)
	if err != nil {
		return nil, err
	}
	hash := csr.ResolveHash(req.SignHashAlg)

	names, err := cnrange.Expand(req.CNRange)
	if err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return nil, errors.WithMessagef(ErrEmptyRange, "range %q", req.CNRange)
	}

	defer metricskey.PerfBatch.MeasureSince(time.Now(), algo.Token())

	var shared export.Record
	if err = copier.Copy(&shared, req); err != nil {
		return nil, errors.WithMessage(err, "failed to copy request")
	}
	shared.SignHashAlg = hash.Name()
	shared.KeyPairType = algo.DisplayName()

	logger.KV(xlog.INFO,
		"status", "batch_started",
		"range", req.CNRange,
		"count", len(names),
		"key", shared.KeyPairType,
		"hash", shared.SignHashAlg,
		"workers", o.workers)

	ids := make([]*Identity, len(names))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)

	for i, name := range names {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return errors.WithStack(err)
			}

			csrPEM, keyPEM, err := o.gen.Generate(name, algo, hash)
			if err != nil {
				return err
			}

			id := &Identity{
				CommonName: name,
				Record:     shared,
			}
			id.Subject = req.Subject(name)
			id.CSR = csrPEM
			id.PrivateKey = keyPEM
			ids[i] = id

			logger.KV(xlog.DEBUG, "cn", name, "subject", id.Subject)
			return nil
		})
	}

	err = g.Wait()
	if err == nil && ctx.Err() != nil {
		err = errors.WithStack(ctx.Err())
	}
	if err != nil {
		wipe(ids)
		return nil, err
	}
	return ids, nil
}

func wipe(ids []*Identity) {
	for _, id := range ids {
		if id != nil {
			csr.Wipe(id.PrivateKey)
			id.PrivateKey = nil
		}
	}
}
