// Package benchmarks
// Author: momentics <momentics@gmail.com>
//
// Performance benchmarks for crsync components.

package benchmarks

import (
	"io"
	"log/slog"
	"strconv"
	"sync"
	"testing"

	"github.com/momentics/crsync/control"
	"github.com/momentics/crsync/facade"
	"github.com/momentics/crsync/internal/concurrency"
)

func quiet() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// BenchmarkMutexContended measures Lock/Unlock under parallel contention.
func BenchmarkMutexContended(b *testing.B) {
	var mu concurrency.Mutex
	counter := 0
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			mu.Lock()
			counter++
			mu.Unlock()
		}
	})
	_ = counter
}

// BenchmarkSignalPingPong measures a notify/wait round trip between two
// threads.
func BenchmarkSignalPingPong(b *testing.B) {
	s := concurrency.NewSignal(nil)
	turn := 0
	sp := concurrency.NewSpawner(concurrency.WithSpawnerLogger(quiet()))
	t := sp.Spawn(func() {
		s.Lock()
		defer s.Unlock()
		for i := 0; i < b.N; i++ {
			for turn != 1 {
				s.Wait()
			}
			turn = 0
			s.Notify()
		}
	})
	if !t.OK() {
		b.Fatal("spawn failed")
	}

	b.ResetTimer()
	s.Lock()
	for i := 0; i < b.N; i++ {
		turn = 1
		s.Notify()
		for turn != 0 {
			s.Wait()
		}
	}
	s.Unlock()
	t.Join()
}

// BenchmarkThreadPoolThroughput measures enqueue-to-completion of empty jobs.
func BenchmarkThreadPoolThroughput(b *testing.B) {
	for _, workers := range []int{1, 4, 8} {
		b.Run(strconv.Itoa(workers)+"w", func(b *testing.B) {
			p := concurrency.NewThreadPool(concurrency.WithLogger(quiet()))
			if err := p.Startup(workers); err != nil {
				b.Fatal(err)
			}
			var wg sync.WaitGroup
			wg.Add(b.N)
			job := func() { wg.Done() }

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				if err := p.Enqueue(job); err != nil {
					b.Fatal(err)
				}
			}
			wg.Wait()
			b.StopTimer()
			p.Shutdown()
		})
	}
}

// BenchmarkFacadeSubmit measures task submission through the facade with
// metrics enabled.
func BenchmarkFacadeSubmit(b *testing.B) {
	cfg := control.DefaultConfig()
	cfg.Metrics.Enabled = true
	rt, err := facade.New(cfg, facade.WithLogger(quiet()))
	if err != nil {
		b.Fatal(err)
	}
	if err := rt.Start(); err != nil {
		b.Fatal(err)
	}
	defer rt.Stop()

	var wg sync.WaitGroup
	wg.Add(b.N)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := rt.Submit(wg.Done); err != nil {
			b.Fatal(err)
		}
	}
	wg.Wait()
}
