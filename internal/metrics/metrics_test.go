package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecorder(t *testing.T) {
	t.Parallel()
	r := NewRecorder()

	r.ObserveCommit("create project", 3*time.Millisecond)
	r.ObserveCommit("create project", time.Millisecond)
	r.ObserveCommit("apply payment", time.Millisecond)
	r.ObserveRollback("create project", "duplicate", time.Millisecond)
	r.SetCatalogSize(4)

	assert.Equal(t, float64(2), testutil.ToFloat64(r.CommittedCounter("create project")))
	assert.Equal(t, float64(1), testutil.ToFloat64(r.RolledBackCounter("create project", "duplicate")))
	assert.Equal(t, float64(4), testutil.ToFloat64(r.loaded))
	assert.Equal(t, 2, testutil.CollectAndCount(r.duration))

	snap, err := r.Snapshot()
	require.NoError(t, err)
	assert.Equal(t, float64(2), snap.Committed["create project"])
	assert.Equal(t, float64(1), snap.RolledBack["create project/duplicate"])
	assert.Equal(t, []string{"apply payment", "create project"}, snap.Plans())
}

func TestRecorder_NilIsNoop(t *testing.T) {
	t.Parallel()
	var r *Recorder

	assert.NotPanics(t, func() {
		r.ObserveCommit("x", time.Second)
		r.ObserveRollback("x", "other", time.Second)
		r.SetCatalogSize(1)
	})
}
