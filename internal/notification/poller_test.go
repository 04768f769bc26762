package notification

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
)

type manualTicker struct {
	c       chan time.Time
	stopped chan struct{}
	once    sync.Once
}

func newManualTicker() *manualTicker {
	return &manualTicker{c: make(chan time.Time), stopped: make(chan struct{})}
}

func (m *manualTicker) C() <-chan time.Time { return m.c }
func (m *manualTicker) Stop()               { m.once.Do(func() { close(m.stopped) }) }

type fakeFetcher struct {
	mu     sync.Mutex
	counts []int
	err    error
	calls  int
}

func (f *fakeFetcher) UnreadCount(context.Context) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.err != nil {
		return 0, f.err
	}
	n := f.counts[0]
	if len(f.counts) > 1 {
		f.counts = f.counts[1:]
	}
	return n, nil
}

func (f *fakeFetcher) setErr(err error) {
	f.mu.Lock()
	f.err = err
	f.mu.Unlock()
}

type staticToken string

func (s staticToken) Token(context.Context) (string, error) { return string(s), nil }

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func waitFor(t *testing.T, ch <-chan int, want int) {
	t.Helper()
	for {
		select {
		case got := <-ch:
			if got == want {
				return
			}
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for count %d", want)
		}
	}
}

func TestPoller_FetchesOnStartAndOnTick(t *testing.T) {
	store := NewStore()
	updates := make(chan int, 10)
	store.Subscribe(func(n int) { updates <- n })

	ticker := newManualTicker()
	fetcher := &fakeFetcher{counts: []int{2, 5}}
	p := NewPoller(fetcher, staticToken("tok"), store, time.Minute, func(time.Duration) Ticker { return ticker }, quietLogger())

	p.Start()
	if !p.Started() {
		t.Fatal("Started() = false after Start")
	}
	waitFor(t, updates, 2)

	ticker.c <- time.Now()
	waitFor(t, updates, 5)

	p.Stop(time.Second)
	if p.Started() {
		t.Error("Started() = true after Stop")
	}
	select {
	case <-ticker.stopped:
	case <-time.After(time.Second):
		t.Error("ticker not stopped")
	}
}

func TestPoller_FetchErrorKeepsCount(t *testing.T) {
	store := NewStore()
	store.Set(3)
	fetcher := &fakeFetcher{counts: []int{0}}
	fetcher.setErr(errors.New("network down"))
	p := NewPoller(fetcher, staticToken("tok"), store, time.Minute, nil, quietLogger())

	p.Refresh(context.Background())
	if store.Count() != 3 {
		t.Errorf("Count() = %d, want 3", store.Count())
	}
}

func TestPoller_NoSessionResetsWithoutFetching(t *testing.T) {
	store := NewStore()
	store.Set(4)
	fetcher := &fakeFetcher{counts: []int{9}}
	p := NewPoller(fetcher, staticToken(""), store, time.Minute, nil, quietLogger())

	p.Refresh(context.Background())
	if store.Count() != 0 {
		t.Errorf("Count() = %d, want 0", store.Count())
	}
	if fetcher.calls != 0 {
		t.Errorf("fetcher called %d times without a session", fetcher.calls)
	}
}

func TestPoller_StartTwiceIsNoop(t *testing.T) {
	var created int
	var mu sync.Mutex
	factory := func(time.Duration) Ticker {
		mu.Lock()
		created++
		mu.Unlock()
		return newManualTicker()
	}
	p := NewPoller(&fakeFetcher{counts: []int{1}}, staticToken("tok"), NewStore(), time.Minute, factory, quietLogger())

	p.Start()
	p.Start()
	p.Stop(time.Second)
	p.Stop(time.Second)

	if created != 1 {
		t.Errorf("tickers created = %d, want 1", created)
	}
}

func TestStore_NotifiesOnlyOnChange(t *testing.T) {
	store := NewStore()
	var got []int
	unsubscribe := store.Subscribe(func(n int) { got = append(got, n) })

	store.Set(1)
	store.Set(1)
	store.Set(-2)
	unsubscribe()
	store.Set(7)

	want := []int{1, 0}
	if len(got) != len(want) {
		t.Fatalf("notifications = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("notifications = %v, want %v", got, want)
		}
	}
	if store.Count() != 7 {
		t.Errorf("Count() = %d, want 7", store.Count())
	}
}

func TestStore_ConcurrentSetsDeliverInOrder(t *testing.T) {
	store := NewStore()
	var mu sync.Mutex
	last := -1
	store.Subscribe(func(n int) {
		mu.Lock()
		last = n
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 1; i <= 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			store.Set(n)
			store.Set(n % 3)
		}(i)
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	if last != store.Count() {
		t.Errorf("last delivered = %d, Count() = %d", last, store.Count())
	}
}
