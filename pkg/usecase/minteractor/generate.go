// 指示: miu200521358
package minteractor

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/miu200521358/mu_twistjoint/pkg/domain/model"
	"github.com/miu200521358/mu_twistjoint/pkg/shared/logging"
	"github.com/miu200521358/mu_twistjoint/pkg/usecase/port/moutput"
)

// GenerateTwistJoints は選択ジョイントと親の間に捩りジョイントを生成する。
// 生成した各ジョイントの rotateX は選択ジョイントの rotateX に i/N を掛けた値へ接続される。
func (uc *TwistJointUsecase) GenerateTwistJoints(request GenerateRequest) (*GenerateResult, error) {
	graph := uc.resolveSceneGraph(request.SceneGraph)
	if graph == nil {
		return nil, fmt.Errorf("シーングラフが設定されていません")
	}
	order := request.Order
	if order == "" {
		order = ValidationOrderStrict
	}
	params := request.Params
	reporter := request.ProgressReporter

	if err := validateNameDigits(params.BaseName); err != nil {
		return nil, err
	}
	selection, err := uc.ValidateSelection(graph)
	if err != nil {
		return nil, err
	}
	reportProgress(reporter, GenerateProgressEvent{
		Type:      GenerateProgressEventTypeSelectionValidated,
		JointName: selection.Joint,
		Total:     params.Count,
	})

	result := &GenerateResult{
		Selected: selection.Joint,
		Parent:   selection.Parent,
		Joints:   make([]GeneratedJoint, 0, max(params.Count, 0)),
	}

	switch order {
	case ValidationOrderLegacy:
		// 旧来の順序では方向クリア後に残りの検証を行うため、警告時も方向クリアは残る。
		if err := clearOrientIfRequested(graph, selection.Joint, params, result, reporter); err != nil {
			return nil, err
		}
		if err := validateGenerateParams(params, selection); err != nil {
			return nil, err
		}
	case ValidationOrderStrict:
		if err := validateGenerateParams(params, selection); err != nil {
			return nil, err
		}
		if err := validateNamesAvailable(graph, params); err != nil {
			return nil, err
		}
		if err := clearOrientIfRequested(graph, selection.Joint, params, result, reporter); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("検証順序が不正です: %s", order)
	}
	reportProgress(reporter, GenerateProgressEvent{
		Type:      GenerateProgressEventTypeParamsValidated,
		JointName: selection.Joint,
		Total:     params.Count,
	})

	selPos, err := graph.JointPosition(selection.Joint)
	if err != nil {
		return nil, fmt.Errorf("選択ジョイント位置の取得に失敗しました: %w", err)
	}

	for idx := 1; idx <= params.Count; idx++ {
		generated, err := createTwistJoint(graph, selection, params, selPos, idx)
		if err != nil {
			return nil, fmt.Errorf("捩りジョイント%d本目の生成に失敗しました: %w", idx, err)
		}
		result.Joints = append(result.Joints, generated)
		logTwistJointDebug("捩りジョイント生成: index=%d name=%s md=%s posX=%.5f factor=%.5f",
			generated.Index, generated.Name, generated.ScalingNodeName, generated.PositionX, generated.Factor)
		reportProgress(reporter, GenerateProgressEvent{
			Type:      GenerateProgressEventTypeJointCreated,
			JointName: generated.Name,
			Index:     idx,
			Total:     params.Count,
		})
	}

	if err := graph.Select(selection.Joint); err != nil {
		return nil, fmt.Errorf("選択状態の復元に失敗しました: %w", err)
	}
	reportProgress(reporter, GenerateProgressEvent{
		Type:      GenerateProgressEventTypeCompleted,
		JointName: selection.Joint,
		Index:     params.Count,
		Total:     params.Count,
	})
	return result, nil
}

// createTwistJoint は捩りジョイント1本とスケーリングノードを生成して接続する。
func createTwistJoint(
	graph moutput.ISceneGraph,
	selection *SelectionContext,
	params FormParams,
	selPos model.Vec3,
	idx int,
) (GeneratedJoint, error) {
	requestedName := ""
	if params.BaseName != "" {
		requestedName = twistJointName(params.BaseName, idx)
	}
	jointName, err := graph.CreateJoint(requestedName)
	if err != nil {
		return GeneratedJoint{}, err
	}
	if err := graph.Reparent(jointName, selection.Parent); err != nil {
		return GeneratedJoint{}, err
	}
	if params.ShowLocalAxis {
		if err := graph.SetDisplayLocalAxis(jointName, true); err != nil {
			return GeneratedJoint{}, err
		}
	}

	// 選択ジョイント位置のX成分を親からの距離として i/(N+1) で按分する。
	position := model.NewVec3(selPos.X, 0, 0).Scaled(float64(idx) / float64(params.Count+1))
	factor := float64(idx) / float64(params.Count)
	if err := graph.SetJointPosition(jointName, position); err != nil {
		return GeneratedJoint{}, err
	}
	if err := graph.SetJointOrient(jointName, model.ZERO_VEC3); err != nil {
		return GeneratedJoint{}, err
	}
	if err := graph.SetJointRadius(jointName, model.TWIST_JOINT_RADIUS); err != nil {
		return GeneratedJoint{}, err
	}

	nodeName, err := graph.CreateScalingNode(model.ScalingNodeName(jointName))
	if err != nil {
		return GeneratedJoint{}, err
	}
	if err := graph.SetAttr(model.NewPlug(nodeName, model.ATTR_INPUT2_X), factor); err != nil {
		return GeneratedJoint{}, err
	}
	if err := graph.Connect(
		model.NewPlug(selection.Joint, model.ATTR_ROTATE_X),
		model.NewPlug(nodeName, model.ATTR_INPUT1_X),
		true,
	); err != nil {
		return GeneratedJoint{}, err
	}
	if err := graph.Connect(
		model.NewPlug(nodeName, model.ATTR_OUTPUT_X),
		model.NewPlug(jointName, model.ATTR_ROTATE_X),
		true,
	); err != nil {
		return GeneratedJoint{}, err
	}

	return GeneratedJoint{
		Index:           idx,
		Name:            jointName,
		ScalingNodeName: nodeName,
		PositionX:       position.X,
		Factor:          factor,
	}, nil
}

// clearOrientIfRequested は指定時に選択ジョイントの方向をゼロクリアする。
func clearOrientIfRequested(
	graph moutput.ISceneGraph,
	jointName string,
	params FormParams,
	result *GenerateResult,
	reporter IGenerateProgressReporter,
) error {
	if !params.ZeroOrient {
		return nil
	}
	if err := graph.SetJointOrient(jointName, model.ZERO_VEC3); err != nil {
		return fmt.Errorf("選択ジョイント方向のクリアに失敗しました: %w", err)
	}
	result.OrientCleared = true
	reportProgress(reporter, GenerateProgressEvent{
		Type:      GenerateProgressEventTypeOrientCleared,
		JointName: jointName,
		Total:     params.Count,
	})
	return nil
}

// validateNameDigits は名前に数字が含まれないことを検証する。上付き数字や丸数字 (No) も数字とみなす。
func validateNameDigits(baseName string) error {
	for _, r := range baseName {
		if unicode.IsDigit(r) || unicode.Is(unicode.No, r) {
			return model.NewWarningError(model.WarningNameHasDigits)
		}
	}
	return nil
}

// validateGenerateParams は生成数と名前衝突を検証する。
func validateGenerateParams(params FormParams, selection *SelectionContext) error {
	if params.Count <= 0 {
		return model.NewWarningError(model.WarningCountNotPositive)
	}
	if params.BaseName != "" {
		if strings.Contains(selection.Joint, params.BaseName) || strings.Contains(selection.Parent, params.BaseName) {
			return model.NewWarningError(model.WarningNameCollision)
		}
	}
	if params.Count >= model.MAX_TWIST_JOINT_COUNT {
		return model.NewWarningError(model.WarningCountTooLarge)
	}
	return nil
}

// validateNamesAvailable は生成予定のノード名が未使用であることを検証する。
func validateNamesAvailable(graph moutput.ISceneGraph, params FormParams) error {
	if params.BaseName == "" {
		return nil
	}
	for idx := 1; idx <= params.Count; idx++ {
		jointName := twistJointName(params.BaseName, idx)
		for _, name := range []string{jointName, model.ScalingNodeName(jointName)} {
			if graph.Exists(name) {
				return model.NewWarningError(model.WarningNameExists, name)
			}
		}
	}
	return nil
}

// twistJointName は連番付きの捩りジョイント名を返す。
func twistJointName(baseName string, idx int) string {
	return baseName + strconv.Itoa(idx)
}

// logTwistJointDebug は捩りジョイント生成のDEBUGログを出力する。
func logTwistJointDebug(format string, params ...any) {
	logger := logging.DefaultLogger()
	if logger == nil {
		return
	}
	logger.Debug(format, params...)
}
