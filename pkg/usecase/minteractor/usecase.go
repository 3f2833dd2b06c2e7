// 指示: miu200521358
package minteractor

import "github.com/miu200521358/mu_twistjoint/pkg/usecase/port/moutput"

// TwistJointUsecaseDeps は捩りジョイント生成ユースケースの依存を表す。
type TwistJointUsecaseDeps struct {
	SceneGraph  moutput.ISceneGraph
	SceneReader moutput.ISceneReader
	SceneWriter moutput.ISceneWriter
}

// TwistJointUsecase は捩りジョイント生成処理をまとめたユースケースを表す。
type TwistJointUsecase struct {
	sceneGraph  moutput.ISceneGraph
	sceneReader moutput.ISceneReader
	sceneWriter moutput.ISceneWriter
}

// NewTwistJointUsecase は捩りジョイント生成ユースケースを生成する。
func NewTwistJointUsecase(deps TwistJointUsecaseDeps) *TwistJointUsecase {
	return &TwistJointUsecase{
		sceneGraph:  deps.SceneGraph,
		sceneReader: deps.SceneReader,
		sceneWriter: deps.SceneWriter,
	}
}

// resolveSceneGraph は要求側のシーングラフを優先して返す。
func (uc *TwistJointUsecase) resolveSceneGraph(graph moutput.ISceneGraph) moutput.ISceneGraph {
	if graph != nil {
		return graph
	}
	return uc.sceneGraph
}
