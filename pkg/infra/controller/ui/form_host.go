// 指示: miu200521358
package ui

import (
	"errors"
	"fmt"
	"io"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/text/language"

	"github.com/miu200521358/mu_twistjoint/pkg/adapter/mpresenter/messages"
	"github.com/miu200521358/mu_twistjoint/pkg/domain/model"
	"github.com/miu200521358/mu_twistjoint/pkg/shared/logging"
	"github.com/miu200521358/mu_twistjoint/pkg/usecase/minteractor"
	"github.com/miu200521358/mu_twistjoint/pkg/usecase/port/moutput"
)

// FORM_WINDOW_NAME はフォームの単一インスタンス名。
const FORM_WINDOW_NAME = "joint_twist_UI"

// FormHostDeps はフォームホストの依存を表す。
type FormHostDeps struct {
	Usecase    *minteractor.TwistJointUsecase
	SceneGraph moutput.ISceneGraph
	Order      minteractor.ValidationOrder
	Language   language.Tag
	Logger     logging.ILogger
	Defaults   minteractor.FormParams
	// OnCreated は生成成功時に呼ばれる。
	OnCreated func(result *minteractor.GenerateResult)
}

// FormHost は捩りジョイント生成フォームを1つだけ保持する。
type FormHost struct {
	deps    FormHostDeps
	current *FormWindow
}

// FormWindow は表示中のフォーム1件を表す。
type FormWindow struct {
	Name      string
	model     *FormModel
	program   *tea.Program
	destroyed bool
	result    *minteractor.GenerateResult
}

// NewFormHost はフォームホストを生成する。
func NewFormHost(deps FormHostDeps) *FormHost {
	if deps.Usecase == nil {
		deps.Usecase = minteractor.NewTwistJointUsecase(minteractor.TwistJointUsecaseDeps{SceneGraph: deps.SceneGraph})
	}
	if deps.Logger == nil {
		deps.Logger = logging.DefaultLogger()
	}
	if deps.Defaults.Count < minteractor.DEFAULT_JOINT_COUNT {
		deps.Defaults.Count = minteractor.DEFAULT_JOINT_COUNT
	}
	return &FormHost{deps: deps}
}

// Current は表示中のフォームを返す。表示していない場合は nil。
func (h *FormHost) Current() *FormWindow {
	return h.current
}

// Open は選択状態を検証し、既存フォームを破棄してから新しいフォームを生成する。
func (h *FormHost) Open() (*FormWindow, error) {
	if _, err := h.deps.Usecase.ValidateSelection(h.deps.SceneGraph); err != nil {
		h.logWarning(err)
		return nil, err
	}
	if h.current != nil {
		h.current.Destroy()
		h.current = nil
	}

	window := &FormWindow{Name: FORM_WINDOW_NAME}
	window.model = NewFormModel(
		h.labels(),
		h.deps.Defaults,
		func(params minteractor.FormParams) error {
			_, err := h.Create(window, params)
			return err
		},
		func() {
			h.Cancel(window)
		},
	)
	h.current = window
	return window, nil
}

// Create はフォーム入力で捩りジョイントを生成する。警告時はフォームを開いたままにする。
func (h *FormHost) Create(window *FormWindow, params minteractor.FormParams) (*minteractor.GenerateResult, error) {
	if window == nil || window.destroyed {
		return nil, fmt.Errorf("フォームが閉じられています")
	}
	result, err := h.deps.Usecase.GenerateTwistJoints(minteractor.GenerateRequest{
		Params:     params,
		Order:      h.deps.Order,
		SceneGraph: h.deps.SceneGraph,
	})
	if err != nil {
		text := messages.TranslateError(h.deps.Language, err)
		var warning *model.WarningError
		if errors.As(err, &warning) {
			h.deps.Logger.Warn("%s", text)
		} else {
			h.deps.Logger.Error("%s: %s", messages.Translate(h.deps.Language, messages.MessageGenerateFailed), text)
		}
		window.model.SetWarning(text)
		return nil, err
	}

	window.result = result
	h.deps.Logger.Info(messages.Translate(h.deps.Language, messages.LogGenerateSuccess, len(result.Joints), result.Selected))
	for _, joint := range result.Joints {
		h.deps.Logger.Debug(messages.Translate(h.deps.Language, messages.LogTwistJoint, joint.Name, joint.PositionX, joint.Factor))
	}
	if h.deps.OnCreated != nil {
		h.deps.OnCreated(result)
	}
	h.close(window)
	return result, nil
}

// Cancel はシーンを変更せずにフォームを閉じる。
func (h *FormHost) Cancel(window *FormWindow) {
	h.close(window)
}

// close はフォームを閉じ、単一インスタンス登録を解除する。
func (h *FormHost) close(window *FormWindow) {
	if window == nil {
		return
	}
	window.destroyed = true
	window.model.close()
	if h.current == window {
		h.current = nil
	}
}

// logWarning は警告を翻訳してログへ出力する。
func (h *FormHost) logWarning(err error) {
	h.deps.Logger.Warn("%s", messages.TranslateError(h.deps.Language, err))
}

// labels はフォーム表示文言を翻訳する。
func (h *FormHost) labels() FormLabels {
	tag := h.deps.Language
	return FormLabels{
		Title:           messages.Translate(tag, messages.WindowTitle),
		Name:            messages.Translate(tag, messages.LabelName),
		NamePlaceholder: messages.Translate(tag, messages.LabelNamePlacehold),
		JointCount:      messages.Translate(tag, messages.LabelJointCount),
		LocalAxis:       messages.Translate(tag, messages.LabelLocalAxis),
		ClearOrient:     messages.Translate(tag, messages.LabelClearOrient),
		Create:          messages.Translate(tag, messages.LabelCreate),
		Cancel:          messages.Translate(tag, messages.LabelCancel),
		Help:            messages.Translate(tag, messages.LabelFormHelp),
	}
}

// Model はフォームの状態を返す。
func (w *FormWindow) Model() *FormModel {
	return w.model
}

// Result は生成結果を返す。生成前やキャンセル時は nil。
func (w *FormWindow) Result() *minteractor.GenerateResult {
	return w.result
}

// Destroyed はフォームが破棄済みか判定する。
func (w *FormWindow) Destroyed() bool {
	return w.destroyed
}

// Run はフォームを端末で表示し、閉じられるまで待つ。
func (w *FormWindow) Run(in io.Reader, out io.Writer) error {
	if w.destroyed {
		return fmt.Errorf("フォームは破棄済みです: %s", w.Name)
	}
	options := make([]tea.ProgramOption, 0, 2)
	if in != nil {
		options = append(options, tea.WithInput(in))
	}
	if out != nil {
		options = append(options, tea.WithOutput(out))
	}
	w.program = tea.NewProgram(w.model, options...)
	defer func() {
		w.program = nil
	}()
	if _, err := w.program.Run(); err != nil {
		return fmt.Errorf("フォーム表示に失敗しました: %w", err)
	}
	return nil
}

// Destroy はフォームを破棄する。表示中であれば終了させる。
func (w *FormWindow) Destroy() {
	if w.destroyed {
		return
	}
	w.destroyed = true
	w.model.close()
	if w.program != nil {
		w.program.Quit()
	}
}
