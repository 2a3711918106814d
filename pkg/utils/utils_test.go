package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTimeNowIn(t *testing.T) {
	assert.Equal(t, time.UTC, TimeNowIn("").Location())
	assert.Equal(t, time.UTC, TimeNowIn("Not/AZone").Location())

	if _, err := time.LoadLocation("America/New_York"); err != nil {
		t.Skip("tzdata not available")
	}
	assert.Equal(t, "America/New_York", TimeNowIn("America/New_York").Location().String())
}

func TestGoSafe(t *testing.T) {
	done := make(chan struct{})
	GoSafe(func() {
		defer close(done)
		panic("boom")
	})

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("goroutine did not run")
	}
}

func TestToPointer(t *testing.T) {
	v := 3
	p := ToPointer(v)
	*p = 4
	assert.Equal(t, 3, v)
}
