// 指示: miu200521358
// Package scene_graph はメモリ上のシーンに対するシーングラフ操作を提供する。
package scene_graph

import (
	"fmt"
	"slices"
	"strconv"

	"github.com/miu200521358/mu_twistjoint/pkg/domain/model"
	"github.com/miu200521358/mu_twistjoint/pkg/usecase/port/moutput"
)

var _ moutput.ISceneGraph = (*SceneGraph)(nil)

// SceneGraph はメモリ上のシーンを操作するシーングラフを表す。
type SceneGraph struct {
	scene *model.Scene
}

// NewSceneGraph はシーングラフを生成する。
func NewSceneGraph(scene *model.Scene) *SceneGraph {
	if scene == nil {
		scene = model.NewScene("")
	}
	return &SceneGraph{scene: scene}
}

// Scene は操作対象シーンを返す。
func (g *SceneGraph) Scene() *model.Scene {
	return g.scene
}

// Selection は選択中ノード名を返す。
func (g *SceneGraph) Selection() []string {
	return slices.Clone(g.scene.Selection)
}

// NodeType はノード種別を返す。
func (g *SceneGraph) NodeType(name string) (model.NodeType, error) {
	nodeType := g.scene.NodeType(name)
	if nodeType == model.NODE_TYPE_NONE {
		return nodeType, fmt.Errorf("%w: %s", model.ErrNodeNotFound, name)
	}
	return nodeType, nil
}

// Exists はノード名が使用済みか判定する。
func (g *SceneGraph) Exists(name string) bool {
	return g.scene.Exists(name)
}

// Parent は親ジョイント名を返す。
func (g *SceneGraph) Parent(name string) (string, error) {
	joint, err := g.scene.JointByName(name)
	if err != nil {
		return "", err
	}
	return joint.ParentName, nil
}

// JointPosition は親からの相対位置を返す。
func (g *SceneGraph) JointPosition(name string) (model.Vec3, error) {
	joint, err := g.scene.JointByName(name)
	if err != nil {
		return model.Vec3{}, err
	}
	return joint.Position, nil
}

// CreateJoint はワールド直下にジョイントを生成し、生成したジョイントを選択状態にする。
func (g *SceneGraph) CreateJoint(name string) (string, error) {
	if name == "" {
		name = g.nextDefaultName(model.DEFAULT_JOINT_NAME_PREFIX)
	}
	if err := g.scene.AddJoint(model.NewJointByName(name)); err != nil {
		return "", err
	}
	g.scene.Selection = []string{name}
	return name, nil
}

// Reparent は子ジョイントの親を付け替える。parent が空の場合はワールド直下へ移動する。
func (g *SceneGraph) Reparent(child string, parent string) error {
	childJoint, err := g.scene.JointByName(child)
	if err != nil {
		return err
	}
	if parent == "" {
		childJoint.ParentName = ""
		return nil
	}
	ancestors, err := g.scene.Ancestors(parent)
	if err != nil {
		return err
	}
	if parent == child || slices.Contains(ancestors, child) {
		return fmt.Errorf("%w: %s を %s の子にできません", model.ErrHierarchyCycle, child, parent)
	}
	childJoint.ParentName = parent
	return nil
}

// SetJointOrient はジョイント方向を設定する。
func (g *SceneGraph) SetJointOrient(name string, orient model.Vec3) error {
	joint, err := g.scene.JointByName(name)
	if err != nil {
		return err
	}
	joint.Orient = orient
	return nil
}

// SetJointPosition は親からの相対位置を設定する。
func (g *SceneGraph) SetJointPosition(name string, position model.Vec3) error {
	joint, err := g.scene.JointByName(name)
	if err != nil {
		return err
	}
	joint.Position = position
	return nil
}

// SetJointRadius は表示半径を設定する。
func (g *SceneGraph) SetJointRadius(name string, radius float64) error {
	joint, err := g.scene.JointByName(name)
	if err != nil {
		return err
	}
	if radius < 0 {
		return fmt.Errorf("半径が負数です: %s=%f", name, radius)
	}
	joint.Radius = radius
	return nil
}

// SetDisplayLocalAxis はローカル軸表示を切り替える。
func (g *SceneGraph) SetDisplayLocalAxis(name string, enabled bool) error {
	joint, err := g.scene.JointByName(name)
	if err != nil {
		return err
	}
	joint.DisplayLocalAxis = enabled
	return nil
}

// CreateScalingNode はスケーリングノードを生成する。
func (g *SceneGraph) CreateScalingNode(name string) (string, error) {
	if name == "" {
		name = g.nextDefaultName(model.SCALING_NODE_TYPE)
	}
	if err := g.scene.AddScalingNode(model.NewScalingNodeByName(name)); err != nil {
		return "", err
	}
	return name, nil
}

// SetAttr は属性値を設定する。接続済みの属性には設定できない。
func (g *SceneGraph) SetAttr(plug model.Plug, value float64) error {
	plug = model.NewPlug(plug.Node, plug.Attribute)
	if connection, ok := g.scene.IncomingConnection(plug); ok {
		return fmt.Errorf("%w: %s", model.ErrPlugConnected, connection)
	}
	switch g.scene.NodeType(plug.Node) {
	case model.NODE_TYPE_JOINT:
		joint, _ := g.scene.JointByName(plug.Node)
		return joint.SetAttr(plug.Attribute, value)
	case model.NODE_TYPE_SCALING:
		node, _ := g.scene.ScalingNodeByName(plug.Node)
		return node.SetAttr(plug.Attribute, value)
	}
	return fmt.Errorf("%w: %s", model.ErrNodeNotFound, plug.Node)
}

// Connect は属性を接続する。
func (g *SceneGraph) Connect(source model.Plug, destination model.Plug, force bool) error {
	source = model.NewPlug(source.Node, source.Attribute)
	destination = model.NewPlug(destination.Node, destination.Attribute)
	if err := g.checkAttr(source); err != nil {
		return err
	}
	if err := g.checkAttr(destination); err != nil {
		return err
	}
	if g.scene.NodeType(destination.Node) == model.NODE_TYPE_SCALING &&
		model.IsScalingOutputAttribute(destination.Attribute) {
		return fmt.Errorf("%w: %s", model.ErrReadOnlyAttribute, destination)
	}
	if g.dependsOn(source, destination, map[model.Plug]struct{}{}) {
		return fmt.Errorf("%w: %s -> %s", model.ErrConnectionCycle, source, destination)
	}

	if existing, ok := g.scene.IncomingConnection(destination); ok {
		if existing.Source == source {
			return nil
		}
		if !force {
			return fmt.Errorf("%w: %s", model.ErrPlugConnected, existing)
		}
		g.scene.Connections = slices.DeleteFunc(g.scene.Connections, func(c model.Connection) bool {
			return c.Destination == destination
		})
	}
	g.scene.Connections = append(g.scene.Connections, model.Connection{
		Source:      source,
		Destination: destination,
	})
	return nil
}

// Select は選択状態を置き換える。
func (g *SceneGraph) Select(names ...string) error {
	for _, name := range names {
		if !g.scene.Exists(name) {
			return fmt.Errorf("%w: %s", model.ErrNodeNotFound, name)
		}
	}
	g.scene.Selection = slices.Clone(names)
	return nil
}

// AttrValue は接続を上流へ辿って属性値を評価する。
func (g *SceneGraph) AttrValue(plug model.Plug) (float64, error) {
	return g.evaluate(model.NewPlug(plug.Node, plug.Attribute), map[model.Plug]struct{}{})
}

// evaluate はプラグ値を再帰的に評価する。
func (g *SceneGraph) evaluate(plug model.Plug, visiting map[model.Plug]struct{}) (float64, error) {
	if _, ok := visiting[plug]; ok {
		return 0, fmt.Errorf("%w: %s", model.ErrConnectionCycle, plug)
	}
	visiting[plug] = struct{}{}
	defer delete(visiting, plug)

	if connection, ok := g.scene.IncomingConnection(plug); ok {
		return g.evaluate(connection.Source, visiting)
	}

	switch g.scene.NodeType(plug.Node) {
	case model.NODE_TYPE_JOINT:
		joint, _ := g.scene.JointByName(plug.Node)
		return joint.Attr(plug.Attribute)
	case model.NODE_TYPE_SCALING:
		node, _ := g.scene.ScalingNodeByName(plug.Node)
		if !model.IsScalingOutputAttribute(plug.Attribute) {
			return node.Attr(plug.Attribute)
		}
		_, axis, _ := model.SplitVectorAttribute(plug.Attribute)
		input1, err := g.evaluate(model.NewPlug(plug.Node, model.ATTR_INPUT1+axis), visiting)
		if err != nil {
			return 0, err
		}
		input2, err := g.evaluate(model.NewPlug(plug.Node, model.ATTR_INPUT2+axis), visiting)
		if err != nil {
			return 0, err
		}
		value, err := model.EvaluateScaling(node.Operation, input1, input2)
		if err != nil {
			return 0, fmt.Errorf("%s: %w", plug, err)
		}
		return value, nil
	}
	return 0, fmt.Errorf("%w: %s", model.ErrNodeNotFound, plug.Node)
}

// dependsOn は from の評価が target に依存するか判定する。
func (g *SceneGraph) dependsOn(from model.Plug, target model.Plug, visited map[model.Plug]struct{}) bool {
	if from == target {
		return true
	}
	if _, ok := visited[from]; ok {
		return false
	}
	visited[from] = struct{}{}
	for _, upstream := range g.upstreamPlugs(from) {
		if g.dependsOn(upstream, target, visited) {
			return true
		}
	}
	return false
}

// upstreamPlugs はプラグが直接依存するプラグを返す。
func (g *SceneGraph) upstreamPlugs(plug model.Plug) []model.Plug {
	upstream := make([]model.Plug, 0, 2)
	if connection, ok := g.scene.IncomingConnection(plug); ok {
		upstream = append(upstream, connection.Source)
	}
	if g.scene.NodeType(plug.Node) == model.NODE_TYPE_SCALING && model.IsScalingOutputAttribute(plug.Attribute) {
		_, axis, _ := model.SplitVectorAttribute(plug.Attribute)
		upstream = append(upstream,
			model.NewPlug(plug.Node, model.ATTR_INPUT1+axis),
			model.NewPlug(plug.Node, model.ATTR_INPUT2+axis),
		)
	}
	return upstream
}

// checkAttr はプラグのノードと属性の存在を確認する。
func (g *SceneGraph) checkAttr(plug model.Plug) error {
	switch g.scene.NodeType(plug.Node) {
	case model.NODE_TYPE_JOINT:
		joint, _ := g.scene.JointByName(plug.Node)
		if joint.HasAttr(plug.Attribute) {
			return nil
		}
	case model.NODE_TYPE_SCALING:
		node, _ := g.scene.ScalingNodeByName(plug.Node)
		if node.HasAttr(plug.Attribute) {
			return nil
		}
	default:
		return fmt.Errorf("%w: %s", model.ErrNodeNotFound, plug.Node)
	}
	return fmt.Errorf("%w: %s", model.ErrUnknownAttribute, plug)
}

// nextDefaultName は未使用の連番名を返す。
func (g *SceneGraph) nextDefaultName(prefix string) string {
	for idx := 1; ; idx++ {
		name := prefix + strconv.Itoa(idx)
		if !g.scene.Exists(name) {
			return name
		}
	}
}
