// 指示: miu200521358
package moutput

import "github.com/miu200521358/mu_twistjoint/pkg/domain/model"

// ISceneGraph はシーングラフ操作の契約を表す。
type ISceneGraph interface {
	// Selection は選択中ノード名を選択順で返す。
	Selection() []string
	// NodeType はノード種別を返す。
	NodeType(name string) (model.NodeType, error)
	// Exists はノード名が使用済みか判定する。
	Exists(name string) bool
	// Parent は親ジョイント名を返す。親がない場合は空文字。
	Parent(name string) (string, error)
	// JointPosition は親からの相対位置を返す。
	JointPosition(name string) (model.Vec3, error)
	// AttrValue は接続を評価した属性値を返す。
	AttrValue(plug model.Plug) (float64, error)

	// CreateJoint はジョイントを生成し、確定した名前を返す。空名は自動命名。
	CreateJoint(name string) (string, error)
	// Reparent は子ノードの親を付け替える。
	Reparent(child string, parent string) error
	// SetJointOrient はジョイント方向を設定する。
	SetJointOrient(name string, orient model.Vec3) error
	// SetJointPosition は親からの相対位置を設定する。
	SetJointPosition(name string, position model.Vec3) error
	// SetJointRadius は表示半径を設定する。
	SetJointRadius(name string, radius float64) error
	// SetDisplayLocalAxis はローカル軸表示を切り替える。
	SetDisplayLocalAxis(name string, enabled bool) error
	// CreateScalingNode はスケーリングノードを生成し、確定した名前を返す。
	CreateScalingNode(name string) (string, error)
	// SetAttr は属性値を設定する。
	SetAttr(plug model.Plug, value float64) error
	// Connect は属性を接続する。force の場合は既存接続を置き換える。
	Connect(source model.Plug, destination model.Plug, force bool) error
	// Select は選択状態を置き換える。
	Select(names ...string) error
}

// ISceneReader はシーン読み込みの契約を表す。
type ISceneReader interface {
	CanLoad(path string) bool
	Load(path string) (*model.Scene, error)
}

// ISceneWriter はシーン保存の契約を表す。
type ISceneWriter interface {
	Save(path string, scene *model.Scene) error
}
