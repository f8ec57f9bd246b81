package log

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryLoggerSequencesEvents(t *testing.T) {
	l := NewMemoryLogger()
	l.Log(NewTurnSwitchEvent("player"))
	l.Log(NewTurnSwitchEvent("opponent"))

	events := l.Events()
	require.Len(t, events, 2)
	require.Equal(t, 1, events[0].Seq)
	require.Equal(t, 2, events[1].Seq)
	require.Equal(t, 2, l.LastEvent().Seq)
}

func TestMemoryLoggerConcurrentWriters(t *testing.T) {
	l := NewMemoryLogger()

	const (
		writers = 8
		each    = 50
	)
	var wg sync.WaitGroup
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < each; j++ {
				l.Log(NewTurnSwitchEvent("player"))
				l.Events()
			}
		}()
	}
	wg.Wait()

	events := l.Events()
	require.Len(t, events, writers*each)
	for i, e := range events {
		require.Equal(t, i+1, e.Seq)
	}
}
