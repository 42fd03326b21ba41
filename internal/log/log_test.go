package log

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "warn")

	logger.Info("suppressed")
	assert.Empty(t, buf.String())

	logger.Warn("emitted")
	assert.Contains(t, buf.String(), "emitted")
}

func TestUnknownLevelDefaultsToInfo(t *testing.T) {
	var buf bytes.Buffer
	logger := NewWithWriter(&buf, "bogus")

	logger.Debug("suppressed")
	assert.Empty(t, buf.String())

	logger.Info("emitted")
	assert.Contains(t, buf.String(), "emitted")
}
