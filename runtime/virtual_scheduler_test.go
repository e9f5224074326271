package runtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestVirtualScheduler_Runs_Tasks_In_Due_Order(t *testing.T) {
	req := require.New(t)
	scheduler := NewVirtualScheduler(start)
	var order []string

	scheduler.Schedule(200*time.Millisecond, func() { order = append(order, "late") })
	scheduler.Schedule(100*time.Millisecond, func() { order = append(order, "first") })
	scheduler.Schedule(100*time.Millisecond, func() { order = append(order, "second") })

	// When time does not reach any task
	req.Zero(scheduler.Advance(50 * time.Millisecond))
	req.Equal(start.Add(50*time.Millisecond), scheduler.Now())

	// When every task is due
	req.Equal(3, scheduler.Advance(time.Second))

	// Then equal due times keep scheduling order
	req.Equal([]string{"first", "second", "late"}, order)
	req.Equal(start.Add(1050*time.Millisecond), scheduler.Now())
	req.Zero(scheduler.Pending())
}

func TestVirtualScheduler_Runs_Tasks_Scheduled_By_Tasks(t *testing.T) {
	req := require.New(t)
	scheduler := NewVirtualScheduler(start)
	var seen []time.Time

	scheduler.Schedule(100*time.Millisecond, func() {
		seen = append(seen, scheduler.Now())
		scheduler.Schedule(time.Second, func() { seen = append(seen, scheduler.Now()) })
	})

	req.Equal(2, scheduler.Advance(2*time.Second))
	req.Equal([]time.Time{start.Add(100 * time.Millisecond), start.Add(1100 * time.Millisecond)}, seen)
}

func TestVirtualScheduler_Negative_Delay_Runs_On_Next_Advance(t *testing.T) {
	req := require.New(t)
	scheduler := NewVirtualScheduler(start)
	ran := false

	scheduler.Schedule(-time.Second, func() { ran = true })

	req.Equal(1, scheduler.Advance(0))
	req.True(ran)
	req.Equal(start, scheduler.Now())
}
