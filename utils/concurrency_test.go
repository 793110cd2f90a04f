package utils

import (
	"net/http"
	"sync/atomic"
	"testing"

	"github.com/edumesh/Backend_ELearning/res"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConcurrencyRunsEveryIndex(t *testing.T) {
	var counter int64
	seen := make([]int64, 10)

	errRes := Concurrency(3, 10, func(index int, setError func(errRes *res.ErrorRes)) {
		atomic.AddInt64(&counter, 1)
		atomic.StoreInt64(&seen[index], 1)
	})

	require.Nil(t, errRes)
	assert.Equal(t, int64(10), counter)
	for i, v := range seen {
		assert.Equal(t, int64(1), v, "index %d never ran", i)
	}
}

func TestConcurrencyPropagatesError(t *testing.T) {
	errRes := Concurrency(2, 5, func(index int, setError func(errRes *res.ErrorRes)) {
		if index == 3 {
			setError(&res.ErrorRes{
				Err:        assert.AnError,
				StatusCode: http.StatusServiceUnavailable,
			})
		}
	})

	require.NotNil(t, errRes)
	assert.Equal(t, http.StatusServiceUnavailable, errRes.StatusCode)
}
