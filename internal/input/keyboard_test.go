package input

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	config "github.com/uioperator/uictl/config"
)

func TestTapPressesAndReleases(t *testing.T) {
	ctrl := newFakeController()
	k := NewKeyboard(ctrl, testInputConfig())

	require.NoError(t, k.Tap(context.Background(), "enter"))
	assert.Equal(t, []string{"presskey(enter)", "releasekey(enter)"}, ctrl.calls)
}

func TestTypeUsesConfiguredDelay(t *testing.T) {
	ctrl := newFakeController()
	cfg := config.InputConfig{TypeDelayMs: 7}
	k := NewKeyboard(ctrl, cfg)

	require.NoError(t, k.Type(context.Background(), "hello", -1))
	assert.Equal(t, []string{`type("hello",7ms)`}, ctrl.calls)
}

func TestTypeExplicitDelayOverridesConfig(t *testing.T) {
	ctrl := newFakeController()
	k := NewKeyboard(ctrl, config.InputConfig{TypeDelayMs: 7})

	require.NoError(t, k.Type(context.Background(), "hi", 30*time.Millisecond))
	assert.Equal(t, []string{`type("hi",30ms)`}, ctrl.calls)
}

func TestTypeEmptyTextIsNoop(t *testing.T) {
	ctrl := newFakeController()
	k := NewKeyboard(ctrl, testInputConfig())

	require.NoError(t, k.Type(context.Background(), "", -1))
	assert.Empty(t, ctrl.calls)
}

func TestTypeZeroThresholdDisablesPaste(t *testing.T) {
	ctrl := newFakeController()
	k := NewKeyboard(ctrl, config.InputConfig{TypeDelayMs: 1, PasteThreshold: 0})

	require.NoError(t, k.Type(context.Background(), "some fairly long text", 0))
	require.Len(t, ctrl.calls, 1)
	assert.Contains(t, ctrl.calls[0], "type(")
}

func TestComboPassthrough(t *testing.T) {
	ctrl := newFakeController()
	k := NewKeyboard(ctrl, testInputConfig())

	require.NoError(t, k.Combo(context.Background(), "ctrl+shift+s"))
	assert.Equal(t, []string{"combo(ctrl+shift+s)"}, ctrl.calls)
}

func TestComboRejectsEmpty(t *testing.T) {
	k := NewKeyboard(newFakeController(), testInputConfig())
	assert.Error(t, k.Combo(context.Background(), "   "))
}

func TestComboKeysJoinsNames(t *testing.T) {
	ctrl := newFakeController()
	k := NewKeyboard(ctrl, testInputConfig())

	require.NoError(t, k.ComboKeys(context.Background(), []string{"ctrl", "alt", "t"}))
	assert.Equal(t, []string{"combo(ctrl+alt+t)"}, ctrl.calls)

	assert.Error(t, k.ComboKeys(context.Background(), nil))
}
