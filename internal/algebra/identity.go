package algebra

import (
	"fmt"
	"sync"
)

// maxCachedIdentity bounds the identity cache; larger sizes are rebuilt on
// every call.
const maxCachedIdentity = 16

var identities struct {
	sync.RWMutex
	m map[int]Matrix
}

// Identity returns the n×n identity matrix. Small sizes are memoised for the
// life of the process; sharing is safe because matrices are immutable.
func Identity(n int) (Matrix, error) {
	if n <= 0 {
		return Matrix{}, fmt.Errorf("Identity(%d): %w", n, ErrInvalidSize)
	}
	if n > maxCachedIdentity {
		return identity(n), nil
	}

	identities.RLock()
	m, ok := identities.m[n]
	identities.RUnlock()
	if ok {
		return m, nil
	}

	identities.Lock()
	defer identities.Unlock()
	if m, ok := identities.m[n]; ok {
		return m, nil
	}
	if identities.m == nil {
		identities.m = make(map[int]Matrix)
	}
	m = identity(n)
	identities.m[n] = m
	return m, nil
}

func identity(n int) Matrix {
	m := zeros(n, n)
	for i := 0; i < n; i++ {
		m.data[i*n+i] = 1
	}
	return m
}
