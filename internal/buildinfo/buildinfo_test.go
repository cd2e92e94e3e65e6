package buildinfo

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestString(t *testing.T) {
	v, c, d := Version, Commit, Date
	t.Cleanup(func() { Version, Commit, Date = v, c, d })

	Version, Commit, Date = "v1.0.0", "abc123", "2026-01-02"
	assert.Equal(t, "v1.0.0 (commit abc123, built 2026-01-02)", String())
}
