// 指示: miu200521358
package ui

import (
	"errors"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/require"

	"github.com/miu200521358/mu_twistjoint/pkg/usecase/minteractor"
)

func typeText(m *FormModel, text string) {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(text)})
}

func pressKey(m *FormModel, keyType tea.KeyType) tea.Cmd {
	_, cmd := m.Update(tea.KeyMsg{Type: keyType})
	return cmd
}

func pressSpace(m *FormModel) tea.Cmd {
	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	return cmd
}

func testLabels() FormLabels {
	return FormLabels{
		Title:      "Twist",
		Name:       "Name:",
		JointCount: "# of Joints",
		LocalAxis:  "Axis",
		Create:     "Create",
		Cancel:     "Cancel",
	}
}

func TestFormModelCollectsParams(t *testing.T) {
	var submitted *minteractor.FormParams
	m := NewFormModel(testLabels(), minteractor.DefaultFormParams(), func(params minteractor.FormParams) error {
		submitted = &params
		return nil
	}, nil)

	typeText(m, "twist")
	pressKey(m, tea.KeyTab)
	pressKey(m, tea.KeyBackspace)
	typeText(m, "x")
	typeText(m, "3")
	pressKey(m, tea.KeyTab)
	pressSpace(m)
	pressKey(m, tea.KeyTab)
	pressKey(m, tea.KeyTab)

	require.Equal(t, minteractor.FormParams{BaseName: "twist", Count: 3, ShowLocalAxis: true}, m.Params())

	cmd := pressKey(m, tea.KeyEnter)
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
	require.True(t, m.Closed())
	require.NotNil(t, submitted)
	require.Equal(t, "twist", submitted.BaseName)
	require.Equal(t, 3, submitted.Count)
	require.Empty(t, m.View())
}

func TestFormModelClampsCountToOne(t *testing.T) {
	m := NewFormModel(testLabels(), minteractor.FormParams{Count: 0}, nil, nil)
	require.Equal(t, 1, m.Params().Count)

	pressKey(m, tea.KeyTab)
	pressKey(m, tea.KeyBackspace)
	require.Equal(t, 1, m.Params().Count)

	typeText(m, "0")
	require.Equal(t, 1, m.Params().Count)
}

func TestFormModelStaysOpenOnWarning(t *testing.T) {
	calls := 0
	m := NewFormModel(testLabels(), minteractor.DefaultFormParams(), func(minteractor.FormParams) error {
		calls++
		return errors.New("warning text")
	}, nil)

	for i := 0; i < 4; i++ {
		pressKey(m, tea.KeyTab)
	}
	cmd := pressKey(m, tea.KeyEnter)

	require.Nil(t, cmd)
	require.Equal(t, 1, calls)
	require.False(t, m.Closed())
	require.Equal(t, "warning text", m.Warning())
	require.Contains(t, m.View(), "warning text")
}

func TestFormModelCancel(t *testing.T) {
	canceled := false
	m := NewFormModel(testLabels(), minteractor.DefaultFormParams(), func(minteractor.FormParams) error {
		t.Fatalf("create must not be called")
		return nil
	}, func() {
		canceled = true
	})

	cmd := pressKey(m, tea.KeyEsc)
	require.NotNil(t, cmd)
	require.IsType(t, tea.QuitMsg{}, cmd())
	require.True(t, canceled)
	require.True(t, m.Closed())
}

func TestFormModelFocusWrapsAround(t *testing.T) {
	m := NewFormModel(testLabels(), minteractor.DefaultFormParams(), nil, nil)

	pressKey(m, tea.KeyShiftTab)
	require.Equal(t, focusCancel, m.focus)
	pressKey(m, tea.KeyTab)
	require.Equal(t, focusName, m.focus)

	view := m.View()
	require.Contains(t, view, "Twist")
	require.Contains(t, view, "[ ] Axis")
}
