package metricskey

import "github.com/effective-security/metrics"

// Perf
var (
	// PerfCryptoOperation is perf metric
	PerfCryptoOperation = metrics.Describe{
		Type:         metrics.TypeSample,
		Name:         "perf_crypto",
		Help:         "perf_crypto provides the sample metrics of crypto operations",
		RequiredTags: []string{"provider", "action"},
	}

	// PerfCSRGenerate is perf metric
	PerfCSRGenerate = metrics.Describe{
		Type:         metrics.TypeSample,
		Name:         "perf_csr",
		Help:         "perf_csr provides the sample metrics of CSR generation",
		RequiredTags: []string{"key_type", "hash"},
	}

	// PerfBatch is perf metric
	PerfBatch = metrics.Describe{
		Type:         metrics.TypeSample,
		Name:         "perf_batch",
		Help:         "perf_batch provides the sample metrics of CSR batches",
		RequiredTags: []string{"key_type"},
	}
)

// Metrics returns slice of metrics from this repo
var Metrics = []*metrics.Describe{
	&PerfCryptoOperation,
	&PerfCSRGenerate,
	&PerfBatch,
}
