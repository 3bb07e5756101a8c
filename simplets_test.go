package simplets_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/simplets-git/simplets"
)

func TestVersion(t *testing.T) {
	assert.Equal(t, "v0.4", simplets.Version)
}
