package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainerSizeDisplay(t *testing.T) {
	assert.Equal(t, "50L Keg", ContainerSizeDisplay("50L"))
	assert.Equal(t, "30L Keg", ContainerSizeDisplay("30L"))
	assert.Equal(t, "20L Keg", ContainerSizeDisplay("20L"))
	assert.Equal(t, "24-Pack Flat", ContainerSizeDisplay("flat"))

	// Unknown sizes pass through unchanged
	assert.Equal(t, "10L", ContainerSizeDisplay("10L"))
}
