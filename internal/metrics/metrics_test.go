package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordAttempt(t *testing.T) {
	before := testutil.ToFloat64(ProviderAttemptsTotal.WithLabelValues("transcriber", "deepgram:nova-2", "error"))
	RecordAttempt("transcriber", "deepgram:nova-2", false)
	after := testutil.ToFloat64(ProviderAttemptsTotal.WithLabelValues("transcriber", "deepgram:nova-2", "error"))
	assert.Equal(t, before+1, after)
}

func TestRecordCleanupErrorsIgnoresZero(t *testing.T) {
	before := testutil.ToFloat64(CleanupErrorsTotal)
	RecordCleanupErrors(0)
	RecordCleanupErrors(2)
	assert.Equal(t, before+2, testutil.ToFloat64(CleanupErrorsTotal))
}

func TestRecordRun(t *testing.T) {
	before := testutil.ToFloat64(PipelineRunsTotal.WithLabelValues("captions", "success"))
	RecordRun("captions", true)
	assert.Equal(t, before+1, testutil.ToFloat64(PipelineRunsTotal.WithLabelValues("captions", "success")))
}
