// 指示: miu200521358
package minteractor

import (
	"fmt"

	"github.com/miu200521358/mu_twistjoint/pkg/domain/model"
	"github.com/miu200521358/mu_twistjoint/pkg/usecase/port/moutput"
)

// ValidateSelection は選択状態がジョイント1つ (親あり) であることを検証する。シーンは変更しない。
func (uc *TwistJointUsecase) ValidateSelection(graph moutput.ISceneGraph) (*SelectionContext, error) {
	graph = uc.resolveSceneGraph(graph)
	if graph == nil {
		return nil, fmt.Errorf("シーングラフが設定されていません")
	}

	selection := graph.Selection()
	jointCount := 0
	for _, name := range selection {
		nodeType, err := graph.NodeType(name)
		if err == nil && nodeType == model.NODE_TYPE_JOINT {
			jointCount++
		}
	}
	if jointCount == 0 {
		return nil, model.NewWarningError(model.WarningNoJointSelected)
	}
	if len(selection) != 1 {
		return nil, model.NewWarningError(model.WarningMultipleSelected)
	}

	selected := selection[0]
	parent, err := graph.Parent(selected)
	if err != nil {
		return nil, fmt.Errorf("親ジョイントの取得に失敗しました: %w", err)
	}
	if parent == "" {
		return nil, model.NewWarningError(model.WarningJointHasNoParent)
	}
	return &SelectionContext{Joint: selected, Parent: parent}, nil
}
