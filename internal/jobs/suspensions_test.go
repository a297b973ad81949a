package jobs

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"care-hub-go/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubHealer struct {
	healed int
	err    error
	calls  int
}

func (s *stubHealer) HealExpired(context.Context) (int, error) {
	s.calls++
	return s.healed, s.err
}

func TestRunSuspensionSweepLogsResult(t *testing.T) {
	var buf bytes.Buffer
	healer := &stubHealer{healed: 2}
	scheduler := NewScheduler(healer, logger.New(&buf, slog.LevelInfo, "text"))

	scheduler.RunSuspensionSweep()

	assert.Equal(t, 1, healer.calls)
	assert.Contains(t, buf.String(), "healed=2")
}

func TestRunSuspensionSweepLogsFailure(t *testing.T) {
	var buf bytes.Buffer
	scheduler := NewScheduler(&stubHealer{err: errors.New("db down")}, logger.New(&buf, slog.LevelInfo, "text"))

	scheduler.RunSuspensionSweep()

	assert.Contains(t, buf.String(), "suspension sweep failed")
	assert.Contains(t, buf.String(), "db down")
}

func TestStartRejectsBadSchedule(t *testing.T) {
	scheduler := NewScheduler(&stubHealer{}, logger.Discard())

	require.Error(t, scheduler.Start("not a schedule"))
}

func TestStartAndStop(t *testing.T) {
	scheduler := NewScheduler(&stubHealer{}, logger.Discard())

	require.NoError(t, scheduler.Start(""))
	scheduler.Stop(context.Background())
}
