package snowflake

import (
	"strconv"
	"sync"
	"testing"
)

func TestGenString(t *testing.T) {
	s := GenString()
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		t.Fatalf("expected decimal id, got %q: %v", s, err)
	}
	if id <= 0 {
		t.Fatalf("expected id > 0, got %d", id)
	}
}

// 并发生成不能重复
func TestGenString_Concurrent(t *testing.T) {
	const (
		goroutines = 20
		perRoutine = 2000
	)

	var (
		wg  sync.WaitGroup
		mu  sync.Mutex
		ids = make(map[string]struct{}, goroutines*perRoutine)
	)

	wg.Add(goroutines)
	for g := 0; g < goroutines; g++ {
		go func() {
			defer wg.Done()
			for i := 0; i < perRoutine; i++ {
				id := GenString()

				mu.Lock()
				if _, exists := ids[id]; exists {
					t.Errorf("duplicate id found in concurrent test: %s", id)
				}
				ids[id] = struct{}{}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
}

// 整体递增, 新笔记的 ID 排在后面
func TestGenString_Order(t *testing.T) {
	prev, _ := strconv.ParseInt(GenString(), 10, 64)
	for i := 0; i < 1000; i++ {
		curr, _ := strconv.ParseInt(GenString(), 10, 64)
		if curr <= prev {
			t.Fatalf("ids not increasing: prev=%d curr=%d", prev, curr)
		}
		prev = curr
	}
}
