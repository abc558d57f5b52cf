package helper_test

import (
	"testing"

	"guesthouse/config"
	"guesthouse/helper"

	"github.com/stretchr/testify/assert"
)

func TestRun_UnknownDirection(t *testing.T) {
	err := helper.Run(&config.Config{}, "sideways")

	assert.ErrorIs(t, err, helper.ErrUnknownDirection)
}
