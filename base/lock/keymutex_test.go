package lock

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKeyedMutexSerializesSameKey(t *testing.T) {
	req := require.New(t)
	km := NewKeyedMutex()

	count := 0
	wg := sync.WaitGroup{}
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			km.Lock("a")
			count++
			km.Unlock("a")
		}()
	}
	wg.Wait()
	req.Equal(100, count)
	req.Empty(km.locks)
}

func TestKeyedMutexIndependentKeys(t *testing.T) {
	req := require.New(t)
	km := NewKeyedMutex()

	km.Lock(int64(1))
	done := make(chan struct{})
	go func() {
		km.Lock(int64(2))
		km.Unlock(int64(2))
		close(done)
	}()
	<-done
	km.Unlock(int64(1))
	req.Empty(km.locks)
}
