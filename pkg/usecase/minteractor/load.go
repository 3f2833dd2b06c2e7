// 指示: miu200521358
package minteractor

import (
	"fmt"
	"strings"

	"github.com/miu200521358/mu_twistjoint/pkg/domain/model"
	"github.com/miu200521358/mu_twistjoint/pkg/usecase/port/moutput"
)

// LoadScene はシーンファイルを読み込む。
func (uc *TwistJointUsecase) LoadScene(rep moutput.ISceneReader, path string) (*model.Scene, error) {
	repo := rep
	if repo == nil {
		repo = uc.sceneReader
	}
	if repo == nil {
		return nil, fmt.Errorf("シーン読み込みリポジトリが設定されていません")
	}
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("シーンファイルパスが未指定です")
	}
	if !repo.CanLoad(path) {
		return nil, fmt.Errorf("シーン形式が未対応です: %s", path)
	}
	scene, err := repo.Load(path)
	if err != nil {
		return nil, err
	}
	if scene == nil {
		return nil, fmt.Errorf("シーン読み込み結果が空です")
	}
	return scene, nil
}
