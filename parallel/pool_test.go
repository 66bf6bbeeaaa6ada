package parallel_test

import (
	"sync/atomic"
	"testing"

	"github.com/dargueta/hashpix/parallel"
	"github.com/stretchr/testify/assert"
)

func TestRun__AllJobsComplete(t *testing.T) {
	for _, workers := range []int{1, 2, 7} {
		pool := parallel.Start(workers)
		assert.Equal(t, workers, pool.Workers())

		results := make([]int, 100)
		pool.Run(len(results), func(i int) { results[i] = i * i })
		pool.Close()

		for i, v := range results {
			assert.Equalf(t, i*i, v, "job %d with %d workers", i, workers)
		}
	}
}

func TestRun__Reusable(t *testing.T) {
	pool := parallel.Start(3)
	defer pool.Close()

	var total atomic.Int64
	for range 5 {
		pool.Run(10, func(i int) { total.Add(int64(i)) })
	}
	assert.EqualValues(t, 5*45, total.Load())
}

func TestStart__DefaultWorkers(t *testing.T) {
	pool := parallel.Start(0)
	defer pool.Close()
	assert.GreaterOrEqual(t, pool.Workers(), 1)
}
