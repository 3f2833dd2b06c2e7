// 指示: miu200521358
package minteractor

import (
	"fmt"
	"strings"

	"github.com/miu200521358/mu_twistjoint/pkg/usecase/port/moutput"
)

// DEFAULT_JOINT_COUNT はフォームのジョイント数初期値。
const DEFAULT_JOINT_COUNT = 1

// FormParams はフォームで入力する生成パラメータを表す。
type FormParams struct {
	BaseName      string
	Count         int
	ShowLocalAxis bool
	ZeroOrient    bool
}

// DefaultFormParams はフォーム初期値を返す。
func DefaultFormParams() FormParams {
	return FormParams{Count: DEFAULT_JOINT_COUNT}
}

// ValidationOrder は入力検証とシーン変更の順序を表す。
type ValidationOrder string

const (
	// ValidationOrderStrict は全検証を終えてからシーンを変更する。
	ValidationOrderStrict ValidationOrder = "strict"
	// ValidationOrderLegacy は名前の数字検証直後にジョイント方向をクリアし、残りの検証をその後に行う。
	ValidationOrderLegacy ValidationOrder = "legacy"
)

// ParseValidationOrder は検証順序名を解析する。空の場合は strict。
func ParseValidationOrder(name string) (ValidationOrder, error) {
	switch ValidationOrder(strings.ToLower(strings.TrimSpace(name))) {
	case "", ValidationOrderStrict:
		return ValidationOrderStrict, nil
	case ValidationOrderLegacy:
		return ValidationOrderLegacy, nil
	}
	return "", fmt.Errorf("検証順序が不正です: %s", name)
}

// SelectionContext は検証済みの選択ジョイントと親ジョイントを表す。
type SelectionContext struct {
	Joint  string
	Parent string
}

// GenerateProgressEventType は生成処理の進捗イベント種別を表す。
type GenerateProgressEventType string

const (
	// GenerateProgressEventTypeSelectionValidated は選択検証完了イベントを表す。
	GenerateProgressEventTypeSelectionValidated GenerateProgressEventType = "selection_validated"
	// GenerateProgressEventTypeParamsValidated はパラメータ検証完了イベントを表す。
	GenerateProgressEventTypeParamsValidated GenerateProgressEventType = "params_validated"
	// GenerateProgressEventTypeOrientCleared はジョイント方向クリア完了イベントを表す。
	GenerateProgressEventTypeOrientCleared GenerateProgressEventType = "orient_cleared"
	// GenerateProgressEventTypeJointCreated は捩りジョイント1本分の生成完了イベントを表す。
	GenerateProgressEventTypeJointCreated GenerateProgressEventType = "joint_created"
	// GenerateProgressEventTypeCompleted は生成完了イベントを表す。
	GenerateProgressEventTypeCompleted GenerateProgressEventType = "completed"
)

// GenerateProgressEvent は生成処理の進捗イベントを表す。
type GenerateProgressEvent struct {
	Type      GenerateProgressEventType
	JointName string
	Index     int
	Total     int
}

// IGenerateProgressReporter は生成処理の進捗通知契約を表す。
type IGenerateProgressReporter interface {
	// ReportGenerateProgress は生成処理進捗を通知する。
	ReportGenerateProgress(event GenerateProgressEvent)
}

// GenerateRequest は捩りジョイント生成要求を表す。
type GenerateRequest struct {
	Params           FormParams
	Order            ValidationOrder
	SceneGraph       moutput.ISceneGraph
	ProgressReporter IGenerateProgressReporter
}

// GeneratedJoint は生成した捩りジョイント1本分の情報を表す。
type GeneratedJoint struct {
	Index           int
	Name            string
	ScalingNodeName string
	PositionX       float64
	Factor          float64
}

// GenerateResult は捩りジョイント生成結果を表す。
type GenerateResult struct {
	Selected      string
	Parent        string
	OrientCleared bool
	Joints        []GeneratedJoint
}

// JointNames は生成したジョイント名を生成順で返す。
func (r *GenerateResult) JointNames() []string {
	if r == nil {
		return nil
	}
	names := make([]string, 0, len(r.Joints))
	for _, joint := range r.Joints {
		names = append(names, joint.Name)
	}
	return names
}

// reportProgress は進捗通知先が設定されていれば通知する。
func reportProgress(reporter IGenerateProgressReporter, event GenerateProgressEvent) {
	if reporter == nil {
		return
	}
	reporter.ReportGenerateProgress(event)
}
