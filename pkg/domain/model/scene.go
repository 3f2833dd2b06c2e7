// 指示: miu200521358
package model

import (
	"fmt"
	"slices"

	"github.com/tiendc/go-deepcopy"
)

// NodeType はシーンノード種別を表す。
type NodeType string

const (
	// NODE_TYPE_NONE は該当ノードなし。
	NODE_TYPE_NONE NodeType = ""
	// NODE_TYPE_JOINT はジョイント。
	NODE_TYPE_JOINT NodeType = "joint"
	// NODE_TYPE_SCALING はスケーリングノード。
	NODE_TYPE_SCALING NodeType = SCALING_NODE_TYPE
)

// Connection は属性間の有向接続を表す。
type Connection struct {
	Source      Plug
	Destination Plug
}

// String は表示用文字列を返す。
func (c Connection) String() string {
	return fmt.Sprintf("%s -> %s", c.Source, c.Destination)
}

// Scene はジョイント・ユーティリティノード・接続・選択状態をまとめたシーンを表す。
type Scene struct {
	Name         string
	Joints       []*Joint
	ScalingNodes []*ScalingNode
	Connections  []Connection
	Selection    []string
}

// NewScene は空のシーンを生成する。
func NewScene(name string) *Scene {
	return &Scene{
		Name:         name,
		Joints:       make([]*Joint, 0),
		ScalingNodes: make([]*ScalingNode, 0),
		Connections:  make([]Connection, 0),
		Selection:    make([]string, 0),
	}
}

// JointByName は名前からジョイントを取得する。
func (s *Scene) JointByName(name string) (*Joint, error) {
	for _, joint := range s.Joints {
		if joint.Name == name {
			return joint, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, name)
}

// ScalingNodeByName は名前からスケーリングノードを取得する。
func (s *Scene) ScalingNodeByName(name string) (*ScalingNode, error) {
	for _, node := range s.ScalingNodes {
		if node.Name == name {
			return node, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, name)
}

// NodeType はノード種別を返す。存在しない場合は NODE_TYPE_NONE。
func (s *Scene) NodeType(name string) NodeType {
	if _, err := s.JointByName(name); err == nil {
		return NODE_TYPE_JOINT
	}
	if _, err := s.ScalingNodeByName(name); err == nil {
		return NODE_TYPE_SCALING
	}
	return NODE_TYPE_NONE
}

// Exists はノード名が使用済みか判定する。
func (s *Scene) Exists(name string) bool {
	return s.NodeType(name) != NODE_TYPE_NONE
}

// AddJoint はジョイントを追加する。
func (s *Scene) AddJoint(joint *Joint) error {
	if joint == nil || joint.Name == "" {
		return fmt.Errorf("ジョイント名が未指定です")
	}
	if s.Exists(joint.Name) {
		return fmt.Errorf("%w: %s", ErrNameExists, joint.Name)
	}
	s.Joints = append(s.Joints, joint)
	return nil
}

// AddScalingNode はスケーリングノードを追加する。
func (s *Scene) AddScalingNode(node *ScalingNode) error {
	if node == nil || node.Name == "" {
		return fmt.Errorf("スケーリングノード名が未指定です")
	}
	if s.Exists(node.Name) {
		return fmt.Errorf("%w: %s", ErrNameExists, node.Name)
	}
	s.ScalingNodes = append(s.ScalingNodes, node)
	return nil
}

// Ancestors は親を辿った祖先ジョイント名を近い順に返す。親参照が循環している場合は ErrHierarchyCycle。
func (s *Scene) Ancestors(name string) ([]string, error) {
	joint, err := s.JointByName(name)
	if err != nil {
		return nil, err
	}
	visited := map[string]struct{}{name: {}}
	ancestors := make([]string, 0)
	for joint.HasParent() {
		parentName := joint.ParentName
		if _, ok := visited[parentName]; ok {
			return nil, fmt.Errorf("%w: %s の親参照が循環しています", ErrHierarchyCycle, name)
		}
		visited[parentName] = struct{}{}
		parent, err := s.JointByName(parentName)
		if err != nil {
			return nil, fmt.Errorf("ジョイント %s の親: %w", joint.Name, err)
		}
		ancestors = append(ancestors, parentName)
		joint = parent
	}
	return ancestors, nil
}

// ValidateHierarchy は全ジョイントの親参照が存在し、循環していないことを検証する。
func (s *Scene) ValidateHierarchy() error {
	for _, joint := range s.Joints {
		if _, err := s.Ancestors(joint.Name); err != nil {
			return err
		}
	}
	return nil
}

// Children は直下の子ジョイントを登録順で返す。
func (s *Scene) Children(name string) []*Joint {
	children := make([]*Joint, 0)
	for _, joint := range s.Joints {
		if joint.ParentName == name {
			children = append(children, joint)
		}
	}
	return children
}

// IncomingConnection は接続先プラグへの接続を返す。
func (s *Scene) IncomingConnection(destination Plug) (Connection, bool) {
	for _, connection := range s.Connections {
		if connection.Destination == destination {
			return connection, true
		}
	}
	return Connection{}, false
}

// OutgoingConnections は接続元プラグからの接続を返す。
func (s *Scene) OutgoingConnections(source Plug) []Connection {
	connections := make([]Connection, 0)
	for _, connection := range s.Connections {
		if connection.Source == source {
			connections = append(connections, connection)
		}
	}
	return connections
}

// IsSelected はノードが選択中か判定する。
func (s *Scene) IsSelected(name string) bool {
	return slices.Contains(s.Selection, name)
}

// Clone はシーンを深いコピーで複製する。
func (s *Scene) Clone() (*Scene, error) {
	var cloned Scene
	if err := deepcopy.Copy(&cloned, *s); err != nil {
		return nil, fmt.Errorf("シーン複製に失敗しました: %w", err)
	}
	return &cloned, nil
}
