package progress_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/google/uuid"
	"github.com/lvlath-labs/vgraph/progress"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMilestoneLogsRunIDAndAttrs(t *testing.T) {
	var buf bytes.Buffer
	runID := uuid.New()
	o := progress.New(progress.WithLogger(slog.New(slog.NewJSONHandler(&buf, nil))), progress.WithRunID(runID))

	o.Milestone("divide_node", "node", 3, "pieces", 2)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "divide_node", entry["msg"])
	assert.Equal(t, runID.String(), entry["run_id"])
	assert.EqualValues(t, 3, entry["node"])
}

func TestNilObserverMethodsAreNoOps(t *testing.T) {
	var o *progress.Observer
	assert.NotPanics(t, func() {
		o.Milestone("anything")
		o.Warn("anything")
	})
	assert.Equal(t, uuid.Nil, o.RunID())
}
