package logs

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sst/growingtext/internal/logging"
	"github.com/sst/growingtext/pkg/pubsub"
)

func TestLogsTable_LoadsNewestFirst(t *testing.T) {
	t.Parallel()

	svc := logging.NewService(10)
	t.Cleanup(svc.Shutdown)
	ctx := context.Background()
	require.NoError(t, svc.Create(ctx, logging.Log{Message: "first", Timestamp: time.Unix(1, 0)}))
	require.NoError(t, svc.Create(ctx, logging.Log{Message: "second", Timestamp: time.Unix(2, 0)}))

	tbl, ok := NewLogsTable(svc).(*tableCmp)
	require.True(t, ok)
	tbl.SetSize(80, 10)
	tbl.Update(tbl.Init()())

	rows := tbl.table.Rows()
	require.Len(t, rows, 2)
	assert.Equal(t, "second", rows[0][3])
	assert.Equal(t, "first", rows[1][3])
}

func TestLogsTable_FollowsFeed(t *testing.T) {
	t.Parallel()

	tbl, ok := NewLogsTable(nil).(*tableCmp)
	require.True(t, ok)
	assert.Nil(t, tbl.Init()())

	tbl.Update(pubsub.Event[logging.Log]{
		Type: logging.EventLogCreated,
		Payload: logging.Log{
			ID:         "1",
			Level:      "debug",
			Message:    "fit pass",
			Attributes: map[string]string{"trigger": "layout", "height": "3"},
		},
	})
	tbl.Update(pubsub.Event[logging.Log]{Type: pubsub.EventTypeUpdated, Payload: logging.Log{ID: "2"}})

	rows := tbl.table.Rows()
	require.Len(t, rows, 1)
	assert.Equal(t, "fit pass", rows[0][3])
	assert.Equal(t, "height=3 trigger=layout", rows[0][4])
}

func TestLogsTable_SetSizeSplitsColumns(t *testing.T) {
	t.Parallel()

	tbl := NewLogsTable(nil)
	tbl.SetSize(100, 20)
	w, h := tbl.GetSize()
	assert.Equal(t, 100, w)
	assert.Equal(t, 20, h)

	cols := tbl.(*tableCmp).table.Columns()
	assert.Equal(t, 0, cols[0].Width)
	assert.Equal(t, 100-8-5-8, cols[3].Width+cols[4].Width)
}
