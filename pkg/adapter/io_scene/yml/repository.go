// 指示: miu200521358
// Package yml はシーンをYAMLファイルとして読み書きするリポジトリを提供する。
package yml

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/miu200521358/mu_twistjoint/pkg/adapter/scene_graph"
	"github.com/miu200521358/mu_twistjoint/pkg/domain/model"
	"github.com/miu200521358/mu_twistjoint/pkg/usecase/port/moutput"
)

const outputDirMode = 0o755

var (
	_ moutput.ISceneReader = (*YamlRepository)(nil)
	_ moutput.ISceneWriter = (*YamlRepository)(nil)
)

// sceneDocument はYAML上のシーン表現を表す。
type sceneDocument struct {
	Name         string                `yaml:"name,omitempty"`
	Joints       []jointDocument       `yaml:"joints"`
	ScalingNodes []scalingNodeDocument `yaml:"scalingNodes,omitempty"`
	Connections  []connectionDocument  `yaml:"connections,omitempty"`
	Selection    []string              `yaml:"selection,omitempty"`
}

// jointDocument はYAML上のジョイント表現を表す。
type jointDocument struct {
	Name             string    `yaml:"name"`
	Parent           string    `yaml:"parent,omitempty"`
	Position         []float64 `yaml:"position,flow,omitempty"`
	Orient           []float64 `yaml:"orient,flow,omitempty"`
	Rotate           []float64 `yaml:"rotate,flow,omitempty"`
	Radius           *float64  `yaml:"radius,omitempty"`
	DisplayLocalAxis bool      `yaml:"displayLocalAxis,omitempty"`
}

// scalingNodeDocument はYAML上のスケーリングノード表現を表す。
type scalingNodeDocument struct {
	Name      string    `yaml:"name"`
	Operation string    `yaml:"operation,omitempty"`
	Input1    []float64 `yaml:"input1,flow,omitempty"`
	Input2    []float64 `yaml:"input2,flow,omitempty"`
}

// connectionDocument はYAML上の接続表現を表す。
type connectionDocument struct {
	Source      string `yaml:"source"`
	Destination string `yaml:"destination"`
}

// YamlRepository はYAMLシーンファイルのリポジトリを表す。
type YamlRepository struct{}

// NewYamlRepository はYAMLシーンリポジトリを生成する。
func NewYamlRepository() *YamlRepository {
	return &YamlRepository{}
}

// CanLoad は読み込み可能な拡張子か判定する。
func (r *YamlRepository) CanLoad(path string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	return ext == ".yaml" || ext == ".yml"
}

// Load はYAMLファイルからシーンを読み込む。
func (r *YamlRepository) Load(path string) (*model.Scene, error) {
	if !r.CanLoad(path) {
		return nil, fmt.Errorf("シーン形式が未対応です: %s", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("シーンファイルの読み込みに失敗しました: %w", err)
	}
	scene, err := Decode(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if scene.Name == "" {
		scene.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return scene, nil
}

// Save はシーンをYAMLファイルへ保存する。
func (r *YamlRepository) Save(path string, scene *model.Scene) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("保存先パスが未指定です")
	}
	if scene == nil {
		return fmt.Errorf("保存対象シーンが未設定です")
	}
	data, err := Encode(scene)
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, outputDirMode); err != nil {
			return fmt.Errorf("出力先ディレクトリの作成に失敗しました: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("シーンファイルの保存に失敗しました: %w", err)
	}
	return nil
}

// Decode はYAMLバイト列からシーンを構築する。
func Decode(data []byte) (*model.Scene, error) {
	var doc sceneDocument
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("シーンYAMLの解析に失敗しました: %w", err)
	}

	scene := model.NewScene(doc.Name)
	for _, jointDoc := range doc.Joints {
		joint := model.NewJointByName(jointDoc.Name)
		joint.ParentName = jointDoc.Parent
		var err error
		if joint.Position, err = toVec3(jointDoc.Position, model.ZERO_VEC3); err != nil {
			return nil, fmt.Errorf("ジョイント %s の position: %w", jointDoc.Name, err)
		}
		if joint.Orient, err = toVec3(jointDoc.Orient, model.ZERO_VEC3); err != nil {
			return nil, fmt.Errorf("ジョイント %s の orient: %w", jointDoc.Name, err)
		}
		if joint.Rotate, err = toVec3(jointDoc.Rotate, model.ZERO_VEC3); err != nil {
			return nil, fmt.Errorf("ジョイント %s の rotate: %w", jointDoc.Name, err)
		}
		if jointDoc.Radius != nil {
			joint.Radius = *jointDoc.Radius
		}
		joint.DisplayLocalAxis = jointDoc.DisplayLocalAxis
		if err := scene.AddJoint(joint); err != nil {
			return nil, err
		}
	}
	if err := scene.ValidateHierarchy(); err != nil {
		return nil, err
	}

	for _, nodeDoc := range doc.ScalingNodes {
		node := model.NewScalingNodeByName(nodeDoc.Name)
		op, err := parseOperation(nodeDoc.Operation)
		if err != nil {
			return nil, fmt.Errorf("スケーリングノード %s: %w", nodeDoc.Name, err)
		}
		node.Operation = op
		if node.Input1, err = toVec3(nodeDoc.Input1, node.Input1); err != nil {
			return nil, fmt.Errorf("スケーリングノード %s の input1: %w", nodeDoc.Name, err)
		}
		if node.Input2, err = toVec3(nodeDoc.Input2, node.Input2); err != nil {
			return nil, fmt.Errorf("スケーリングノード %s の input2: %w", nodeDoc.Name, err)
		}
		if err := scene.AddScalingNode(node); err != nil {
			return nil, err
		}
	}

	// 接続はシーングラフ経由で追加し、属性・読み取り専用出力・循環を検証する。
	graph := scene_graph.NewSceneGraph(scene)
	for _, connectionDoc := range doc.Connections {
		source, err := model.ParsePlug(connectionDoc.Source)
		if err != nil {
			return nil, err
		}
		destination, err := model.ParsePlug(connectionDoc.Destination)
		if err != nil {
			return nil, err
		}
		if _, ok := scene.IncomingConnection(destination); ok {
			return nil, fmt.Errorf("%w: %s", model.ErrPlugConnected, destination)
		}
		if err := graph.Connect(source, destination, false); err != nil {
			return nil, fmt.Errorf("接続 %s -> %s: %w", source, destination, err)
		}
	}

	for _, name := range doc.Selection {
		if !scene.Exists(name) {
			return nil, fmt.Errorf("選択ノード: %w: %s", model.ErrNodeNotFound, name)
		}
		scene.Selection = append(scene.Selection, name)
	}
	return scene, nil
}

// Encode はシーンをYAMLバイト列へ変換する。
func Encode(scene *model.Scene) ([]byte, error) {
	doc := sceneDocument{
		Name:      scene.Name,
		Joints:    make([]jointDocument, 0, len(scene.Joints)),
		Selection: scene.Selection,
	}
	for _, joint := range scene.Joints {
		radius := joint.Radius
		doc.Joints = append(doc.Joints, jointDocument{
			Name:             joint.Name,
			Parent:           joint.ParentName,
			Position:         fromVec3(joint.Position),
			Orient:           fromVec3(joint.Orient),
			Rotate:           fromVec3(joint.Rotate),
			Radius:           &radius,
			DisplayLocalAxis: joint.DisplayLocalAxis,
		})
	}
	for _, node := range scene.ScalingNodes {
		doc.ScalingNodes = append(doc.ScalingNodes, scalingNodeDocument{
			Name:      node.Name,
			Operation: node.Operation.String(),
			Input1:    []float64{node.Input1.X, node.Input1.Y, node.Input1.Z},
			Input2:    []float64{node.Input2.X, node.Input2.Y, node.Input2.Z},
		})
	}
	for _, connection := range scene.Connections {
		doc.Connections = append(doc.Connections, connectionDocument{
			Source:      connection.Source.String(),
			Destination: connection.Destination.String(),
		})
	}

	var buf bytes.Buffer
	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)
	if err := encoder.Encode(doc); err != nil {
		return nil, fmt.Errorf("シーンYAMLの生成に失敗しました: %w", err)
	}
	if err := encoder.Close(); err != nil {
		return nil, fmt.Errorf("シーンYAMLの生成に失敗しました: %w", err)
	}
	return buf.Bytes(), nil
}

// toVec3 は3要素配列をベクトルへ変換する。空の場合は既定値を返す。
func toVec3(values []float64, fallback model.Vec3) (model.Vec3, error) {
	if len(values) == 0 {
		return fallback, nil
	}
	if len(values) != 3 {
		return model.Vec3{}, fmt.Errorf("要素数が3ではありません: %d", len(values))
	}
	return model.NewVec3(values[0], values[1], values[2]), nil
}

// fromVec3 はベクトルを3要素配列へ変換する。ゼロベクトルは省略する。
func fromVec3(v model.Vec3) []float64 {
	if v.IsZero() {
		return nil
	}
	return []float64{v.X, v.Y, v.Z}
}

// parseOperation は演算名を演算種別へ変換する。
func parseOperation(name string) (model.ScalingOperation, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "multiply":
		return model.SCALING_OPERATION_MULTIPLY, nil
	case "none":
		return model.SCALING_OPERATION_NONE, nil
	case "divide":
		return model.SCALING_OPERATION_DIVIDE, nil
	case "power":
		return model.SCALING_OPERATION_POWER, nil
	}
	return 0, fmt.Errorf("演算種別が不正です: %s", name)
}
