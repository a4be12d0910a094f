package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/theirongolddev/bizdash/internal/config"
)

func TestConfiguredThemesExist(t *testing.T) {
	for _, name := range config.Themes {
		assert.Equal(t, name, ByName(name).Name)
	}
	assert.Len(t, All, len(config.Themes))
}

func TestSetActiveFallsBack(t *testing.T) {
	defer SetActive(FlexokiDark.Name)

	SetActive("terminal")
	assert.Equal(t, Terminal, Active)

	SetActive("no-such-theme")
	assert.Equal(t, FlexokiDark, Active)
}
