package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecordLoad(t *testing.T) {
	failedBefore := testutil.ToFloat64(DatasetLoadsTotal.WithLabelValues("failed"))
	successBefore := testutil.ToFloat64(DatasetLoadsTotal.WithLabelValues("success"))

	RecordLoad(errors.New("boom"), 0, 0, time.Now())
	assert.Equal(t, failedBefore+1, testutil.ToFloat64(DatasetLoadsTotal.WithLabelValues("failed")))

	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	RecordLoad(nil, 40, 120, at)
	assert.Equal(t, successBefore+1, testutil.ToFloat64(DatasetLoadsTotal.WithLabelValues("success")))
	assert.Equal(t, 40.0, testutil.ToFloat64(DatasetRows.WithLabelValues("indicators")))
	assert.Equal(t, 120.0, testutil.ToFloat64(DatasetRows.WithLabelValues("trade")))
	assert.Equal(t, float64(at.Unix()), testutil.ToFloat64(DatasetLoadedTimestamp))
}

func TestRecordRender(t *testing.T) {
	before := testutil.ToFloat64(ChartRendersTotal.WithLabelValues("konjunktur", "json", "success"))

	RecordRender("konjunktur", "json", "success", 5*time.Millisecond)

	assert.Equal(t, before+1, testutil.ToFloat64(ChartRendersTotal.WithLabelValues("konjunktur", "json", "success")))
}
