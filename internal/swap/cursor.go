package swap

import (
	"math"
	"time"
)

// Since is where a sync starts: a wall-clock instant or an explicit block.
type Since struct {
	Time  time.Time
	Block *int64
}

func SinceTime(t time.Time) Since {
	return Since{Time: t}
}

func SinceBlock(block int64) Since {
	return Since{Block: &block}
}

// IsBlock reports whether the start is an explicit block number.
func (s Since) IsBlock() bool {
	return s.Block != nil
}

// StartBlock turns since into a block number on a chain whose head is head.
// A time is converted with the chain's block time and clamped to [0, head].
func StartBlock(since Since, head int64, now time.Time, secondsPerBlock float64) int64 {
	if since.Block != nil {
		if *since.Block < 0 {
			return 0
		}
		return *since.Block
	}
	if secondsPerBlock <= 0 {
		secondsPerBlock = fallbackSecondsPerBlock
	}

	elapsed := now.Sub(since.Time).Seconds()
	if elapsed <= 0 {
		return head
	}
	back := int64(math.Ceil(elapsed / secondsPerBlock))
	from := head - back
	if from < 0 {
		return 0
	}
	if from > head {
		return head
	}
	return from
}
