package state

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUpdateInterval(t *testing.T) {
	t.Parallel()

	cases := []struct {
		timer int
		want  time.Duration
	}{
		{-5, DefaultUpdateInterval},
		{0, DefaultUpdateInterval},
		{1, time.Second},
		{15, time.Second},
		{16, 5 * time.Second},
		{3599, 5 * time.Second},
		{3600, 300 * time.Second},
		{86400, 300 * time.Second},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, UpdateInterval(tc.timer), "timer %d", tc.timer)
	}
}

func TestFormatTime(t *testing.T) {
	t.Parallel()

	cases := []struct {
		seconds int
		want    string
	}{
		{0, ""},
		{-3, ""},
		{1, "1s"},
		{99, "99s"},
		{100, "2m"},
		{149, "2m"},
		{150, "3m"},
		{5939, "99m"},
		{5940, "2h"},
		{9000, "3h"},
		{86400, "24h"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, FormatTime(tc.seconds), "seconds %d", tc.seconds)
	}
}

func TestTimeFormatterIsBounded(t *testing.T) {
	t.Parallel()

	f := NewTimeFormatter(8)
	for s := 1; s <= 20; s++ {
		assert.Equal(t, FormatTime(s), f.Format(s))
	}
	assert.Equal(t, 8, f.Len())
	assert.Equal(t, "20s", f.Format(20))
}
