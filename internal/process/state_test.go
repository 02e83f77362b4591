package process

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recaf/internal/instrument"
	"recaf/internal/workspace"
)

type stubController struct {
	name     string
	headless bool
}

func (c *stubController) Headless() bool                  { return c.headless }
func (c *stubController) Start(ctx context.Context) error { return nil }

func TestState_SetControllerOnce(t *testing.T) {
	s := NewState()
	assert.Nil(t, s.Controller())

	first := &stubController{name: "first", headless: true}
	require.NoError(t, s.SetController(first))
	assert.True(t, s.Headless())

	second := &stubController{name: "second"}
	err := s.SetController(second)
	assert.ErrorIs(t, err, ErrControllerAlreadySet)

	assert.Same(t, first, s.Controller())
	assert.True(t, s.Headless(), "headless flag must not change after a rejected controller")
}

func TestState_SetControllerDerivesHeadless(t *testing.T) {
	s := NewState()
	require.NoError(t, s.SetController(&stubController{headless: false}))
	assert.False(t, s.Headless())
}

func TestState_SetControllerNil(t *testing.T) {
	s := NewState()
	assert.Error(t, s.SetController(nil))
	assert.Nil(t, s.Controller())
}

func TestState_Workspace(t *testing.T) {
	s := NewState()
	assert.Nil(t, s.Workspace())

	a := workspace.New("a.jar", "/a.jar", workspace.KindArchive, nil)
	b := workspace.New("b.jar", "/b.jar", workspace.KindArchive, nil)

	s.SetWorkspace(a)
	assert.Same(t, a, s.Workspace())
	s.SetWorkspace(b)
	assert.Same(t, b, s.Workspace())
	s.SetWorkspace(nil)
	assert.Nil(t, s.Workspace())
}

func TestState_Instrumentation(t *testing.T) {
	s := NewState()
	assert.Nil(t, s.Instrumentation())

	h := instrument.New(1, "addr")
	require.NoError(t, s.SetInstrumentation(h))
	assert.ErrorIs(t, s.SetInstrumentation(instrument.New(2, "other")), ErrInstrumentationAlreadySet)
	assert.Same(t, h, s.Instrumentation())
	assert.Error(t, NewState().SetInstrumentation(nil))
}

func TestState_MarkInitialized(t *testing.T) {
	s := NewState()
	assert.False(t, s.Initialized())
	assert.True(t, s.MarkInitialized())
	assert.False(t, s.MarkInitialized())
	assert.False(t, s.MarkInitialized())
	assert.True(t, s.Initialized())
}

func TestState_SetHeadless(t *testing.T) {
	s := NewState()
	s.SetHeadless(true)
	assert.True(t, s.Headless())
}
