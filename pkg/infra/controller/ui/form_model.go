// 指示: miu200521358
package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/miu200521358/mu_twistjoint/pkg/usecase/minteractor"
)

// formFocus はフォーム内のフォーカス位置を表す。
type formFocus int

const (
	focusName formFocus = iota
	focusCount
	focusLocalAxis
	focusClearOrient
	focusCreate
	focusCancel
	focusLength
)

// FormLabels はフォームの表示文言を表す。
type FormLabels struct {
	Title           string
	Name            string
	NamePlaceholder string
	JointCount      string
	LocalAxis       string
	ClearOrient     string
	Create          string
	Cancel          string
	Help            string
}

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).MarginBottom(1)
	labelStyle   = lipgloss.NewStyle().Width(14)
	focusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	buttonStyle  = lipgloss.NewStyle().Padding(0, 2).Border(lipgloss.RoundedBorder())
	activeButton = buttonStyle.BorderForeground(lipgloss.Color("205")).Foreground(lipgloss.Color("205"))
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// FormModel は捩りジョイント生成フォームの状態を表す。
type FormModel struct {
	labels        FormLabels
	nameInput     textinput.Model
	countInput    textinput.Model
	showLocalAxis bool
	zeroOrient    bool
	focus         formFocus
	warning       string
	closed        bool

	onCreate func(params minteractor.FormParams) error
	onCancel func()
}

// NewFormModel はフォームを生成する。onCreate が警告を返した場合はフォームを閉じない。
func NewFormModel(
	labels FormLabels,
	defaults minteractor.FormParams,
	onCreate func(params minteractor.FormParams) error,
	onCancel func(),
) *FormModel {
	nameInput := textinput.New()
	nameInput.Placeholder = labels.NamePlaceholder
	nameInput.CharLimit = 64
	nameInput.Width = 30
	nameInput.SetValue(defaults.BaseName)
	nameInput.Focus()

	countInput := textinput.New()
	countInput.CharLimit = 3
	countInput.Width = 6
	count := defaults.Count
	if count < minteractor.DEFAULT_JOINT_COUNT {
		count = minteractor.DEFAULT_JOINT_COUNT
	}
	countInput.SetValue(strconv.Itoa(count))

	return &FormModel{
		labels:        labels,
		nameInput:     nameInput,
		countInput:    countInput,
		showLocalAxis: defaults.ShowLocalAxis,
		zeroOrient:    defaults.ZeroOrient,
		focus:         focusName,
		onCreate:      onCreate,
		onCancel:      onCancel,
	}
}

// Init は初期コマンドを返す。
func (m *FormModel) Init() tea.Cmd {
	return textinput.Blink
}

// Params は入力値から生成パラメータを構築する。ジョイント数は1未満にならない。
func (m *FormModel) Params() minteractor.FormParams {
	count, err := strconv.Atoi(strings.TrimSpace(m.countInput.Value()))
	if err != nil || count < minteractor.DEFAULT_JOINT_COUNT {
		count = minteractor.DEFAULT_JOINT_COUNT
	}
	return minteractor.FormParams{
		BaseName:      strings.TrimSpace(m.nameInput.Value()),
		Count:         count,
		ShowLocalAxis: m.showLocalAxis,
		ZeroOrient:    m.zeroOrient,
	}
}

// Closed はフォームが閉じられたか判定する。
func (m *FormModel) Closed() bool {
	return m.closed
}

// Warning は最後に表示した警告文を返す。
func (m *FormModel) Warning() string {
	return m.warning
}

// SetWarning は警告文を設定する。
func (m *FormModel) SetWarning(text string) {
	m.warning = text
}

// close はフォームを閉じた状態にする。
func (m *FormModel) close() {
	m.closed = true
	m.nameInput.Blur()
	m.countInput.Blur()
}

// Update はキー入力を処理する。
func (m *FormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.closed {
		return m, tea.Quit
	}
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, m.updateInputs(msg)
	}

	switch keyMsg.String() {
	case "ctrl+c", "esc":
		return m, m.cancel()
	case "tab", "down":
		m.moveFocus(1)
		return m, nil
	case "shift+tab", "up":
		m.moveFocus(-1)
		return m, nil
	case "enter":
		switch m.focus {
		case focusCreate:
			return m, m.submit()
		case focusCancel:
			return m, m.cancel()
		case focusLocalAxis, focusClearOrient:
			m.toggle()
		default:
			m.moveFocus(1)
		}
		return m, nil
	case " ":
		switch m.focus {
		case focusLocalAxis, focusClearOrient:
			m.toggle()
			return m, nil
		case focusCreate:
			return m, m.submit()
		case focusCancel:
			return m, m.cancel()
		}
	}
	return m, m.updateInputs(msg)
}

// updateInputs はフォーカス中のテキスト入力へメッセージを渡す。
func (m *FormModel) updateInputs(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.focus {
	case focusName:
		m.nameInput, cmd = m.nameInput.Update(msg)
	case focusCount:
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyRunes {
			for _, r := range keyMsg.Runes {
				if r < '0' || r > '9' {
					return nil
				}
			}
		}
		m.countInput, cmd = m.countInput.Update(msg)
	}
	return cmd
}

// moveFocus はフォーカスを移動する。
func (m *FormModel) moveFocus(delta int) {
	m.focus = formFocus((int(m.focus) + delta + int(focusLength)) % int(focusLength))
	m.nameInput.Blur()
	m.countInput.Blur()
	switch m.focus {
	case focusName:
		m.nameInput.Focus()
	case focusCount:
		m.countInput.Focus()
	}
}

// toggle はフォーカス中のチェックボックスを切り替える。
func (m *FormModel) toggle() {
	switch m.focus {
	case focusLocalAxis:
		m.showLocalAxis = !m.showLocalAxis
	case focusClearOrient:
		m.zeroOrient = !m.zeroOrient
	}
}

// submit は生成コールバックを呼び出す。
func (m *FormModel) submit() tea.Cmd {
	if m.onCreate != nil {
		if err := m.onCreate(m.Params()); err != nil {
			if m.warning == "" {
				m.warning = err.Error()
			}
			return nil
		}
	}
	m.warning = ""
	m.close()
	return tea.Quit
}

// cancel はキャンセルコールバックを呼び出してフォームを閉じる。
func (m *FormModel) cancel() tea.Cmd {
	if m.onCancel != nil {
		m.onCancel()
	}
	m.close()
	return tea.Quit
}

// View はフォームを描画する。
func (m *FormModel) View() string {
	if m.closed {
		return ""
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render(m.labels.Title))
	b.WriteString("\n")
	b.WriteString(m.renderRow(focusName, m.labels.Name, m.nameInput.View()))
	b.WriteString(m.renderRow(focusCount, m.labels.JointCount, m.countInput.View()))
	b.WriteString(m.renderCheckBox(focusLocalAxis, m.labels.LocalAxis, m.showLocalAxis))
	b.WriteString(m.renderCheckBox(focusClearOrient, m.labels.ClearOrient, m.zeroOrient))
	b.WriteString("\n")
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		m.renderButton(focusCreate, m.labels.Create),
		" ",
		m.renderButton(focusCancel, m.labels.Cancel),
	))
	b.WriteString("\n")
	if m.warning != "" {
		b.WriteString(warningStyle.Render(m.warning))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render(m.labels.Help))
	b.WriteString("\n")
	return b.String()
}

// renderRow はラベル付き入力行を描画する。
func (m *FormModel) renderRow(focus formFocus, label string, input string) string {
	rendered := labelStyle.Render(label)
	if m.focus == focus {
		rendered = focusedStyle.Render(labelStyle.Render(label))
	}
	return rendered + input + "\n"
}

// renderCheckBox はチェックボックス行を描画する。
func (m *FormModel) renderCheckBox(focus formFocus, label string, checked bool) string {
	mark := "[ ]"
	if checked {
		mark = "[x]"
	}
	line := mark + " " + label
	if m.focus == focus {
		line = focusedStyle.Render(line)
	}
	return line + "\n"
}

// renderButton はボタンを描画する。
func (m *FormModel) renderButton(focus formFocus, label string) string {
	if m.focus == focus {
		return activeButton.Render(label)
	}
	return buttonStyle.Render(label)
}
