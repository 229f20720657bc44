package memory

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKeyLock_BoundedAndStable(t *testing.T) {
	s := NewStore()

	assert.Same(t, s.keyLock("u1|2025-06-10"), s.keyLock("u1|2025-06-10"))

	seen := map[*sync.Mutex]bool{}
	for i := 0; i < 10000; i++ {
		seen[s.keyLock(fmt.Sprintf("user-%d|2025-06-10", i))] = true
	}
	assert.LessOrEqual(t, len(seen), lockStripes)
}
