// 指示: miu200521358
package minteractor

import (
	"fmt"
	"strings"

	"github.com/miu200521358/mu_twistjoint/pkg/domain/model"
	"github.com/miu200521358/mu_twistjoint/pkg/usecase/port/moutput"
)

// SaveScene はシーンを保存する。
func (uc *TwistJointUsecase) SaveScene(rep moutput.ISceneWriter, path string, scene *model.Scene) error {
	writer := rep
	if writer == nil {
		writer = uc.sceneWriter
	}
	if writer == nil {
		return fmt.Errorf("シーン保存リポジトリが設定されていません")
	}
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("保存先パスが未指定です")
	}
	if scene == nil {
		return fmt.Errorf("保存対象シーンが未設定です")
	}
	return writer.Save(path, scene)
}
