package session

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Tiliavir/campus-timetable/internal/model"
	"github.com/Tiliavir/campus-timetable/internal/schedule"
	"github.com/Tiliavir/campus-timetable/internal/timecalc"
)

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func newManager(ttl time.Duration) (*Manager, *fakeClock) {
	clk := &fakeClock{t: time.Date(2026, 3, 2, 8, 0, 0, 0, time.UTC)}
	return NewManager(ttl).WithClock(clk.now), clk
}

func entry(name string, start, end string) model.Entry {
	return model.Entry{
		Name:       name,
		Weekday:    model.Monday,
		Start:      timecalc.MustClock(start),
		End:        timecalc.MustClock(end),
		Room:       "A101",
		Instructor: "张老师",
	}
}

func TestSessionsAreIsolated(t *testing.T) {
	m, _ := newManager(time.Hour)
	a, b := m.Create(), m.Create()

	_ = a.Do(func(s *schedule.Schedule) error { return s.Add(entry("高数", "08:00", "09:40")) })

	var n int
	_ = b.Do(func(s *schedule.Schedule) error {
		n = s.Len()
		// The same slot is free in another session.
		return s.Add(entry("英语", "08:00", "09:40"))
	})
	if n != 0 {
		t.Errorf("session b sees %d entries of session a", n)
	}
}

func TestGet(t *testing.T) {
	m, _ := newManager(time.Hour)
	s := m.Create()

	got, err := m.Get(s.ID.String())
	if err != nil || got != s {
		t.Fatalf("Get = %v, %v", got, err)
	}
	if _, err := m.Get("not-a-uuid"); !errors.Is(err, ErrInvalidID) {
		t.Errorf("Get(bad) error = %v, want ErrInvalidID", err)
	}
	if _, err := m.Get("6ba7b810-9dad-11d1-80b4-00c04fd430c8"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get(unknown) error = %v, want ErrNotFound", err)
	}

	m.Delete(s.ID)
	if _, err := m.Get(s.ID.String()); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after Delete error = %v, want ErrNotFound", err)
	}
}

func TestIdleExpiry(t *testing.T) {
	m, clk := newManager(30 * time.Minute)
	kept, dropped := m.Create(), m.Create()

	clk.advance(20 * time.Minute)
	if _, err := m.Get(kept.ID.String()); err != nil {
		t.Fatalf("Get: %v", err)
	}
	clk.advance(20 * time.Minute)

	if _, err := m.Get(dropped.ID.String()); !errors.Is(err, ErrNotFound) {
		t.Errorf("idle session still served: %v", err)
	}
	if _, err := m.Get(kept.ID.String()); err != nil {
		t.Errorf("recently used session expired: %v", err)
	}
}

func TestSweep(t *testing.T) {
	m, clk := newManager(time.Minute)
	m.Create()
	m.Create()
	if n := m.Sweep(); n != 0 {
		t.Errorf("Sweep on fresh sessions = %d, want 0", n)
	}
	clk.advance(2 * time.Minute)
	if n := m.Sweep(); n != 2 {
		t.Errorf("Sweep = %d, want 2", n)
	}
	if m.Len() != 0 {
		t.Errorf("Len = %d, want 0", m.Len())
	}
}

func TestDoSerializes(t *testing.T) {
	m, _ := newManager(0)
	s := m.Create()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Do(func(sch *schedule.Schedule) error {
				sch.Append(entry("课", "08:00", "08:01"))
				return nil
			})
		}()
	}
	wg.Wait()

	var n int
	_ = s.Do(func(sch *schedule.Schedule) error { n = sch.Len(); return nil })
	if n != 50 {
		t.Errorf("Len = %d, want 50", n)
	}
}
