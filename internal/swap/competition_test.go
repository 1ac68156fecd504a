package swap

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/recallnet/js-recall-sub004/internal/domain/model"
)

func TestIsAfterCompetitionStart_StrictBoundary(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	assert.False(t, IsAfterCompetitionStart(start.Add(-time.Second), start))
	assert.False(t, IsAfterCompetitionStart(start, start))
	assert.True(t, IsAfterCompetitionStart(start.Add(time.Millisecond), start))
}

func TestTransfersAfter(t *testing.T) {
	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	transfers := []model.Transfer{
		{TxHash: "0xbefore", Timestamp: start.Add(-time.Minute)},
		{TxHash: "0xat", Timestamp: start},
		{TxHash: "0xafter", Timestamp: start.Add(time.Minute)},
	}

	after := TransfersAfter(transfers, start)
	require.Len(t, after, 1)
	assert.Equal(t, "0xafter", after[0].TxHash)
}
