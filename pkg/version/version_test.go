package version_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rshade/fixturegen/pkg/version"
)

func TestGetVersion(t *testing.T) {
	assert.NotEmpty(t, version.GetVersion())
}
