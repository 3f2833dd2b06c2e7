// 指示: miu200521358
package model

import "fmt"

const (
	// DEFAULT_JOINT_RADIUS は新規ジョイントの表示半径。
	DEFAULT_JOINT_RADIUS = 1.0
	// DEFAULT_JOINT_NAME_PREFIX は自動命名時の接頭辞。
	DEFAULT_JOINT_NAME_PREFIX = "joint"
)

// Joint はスケルトン階層上のジョイントを表す。
type Joint struct {
	Name             string
	ParentName       string
	Position         Vec3 // 親からの相対位置
	Orient           Vec3 // ジョイント方向 (度)
	Rotate           Vec3 // 回転 (度)
	Radius           float64
	DisplayLocalAxis bool
}

// NewJointByName は名前を指定してジョイントを生成する。
func NewJointByName(name string) *Joint {
	return &Joint{
		Name:   name,
		Radius: DEFAULT_JOINT_RADIUS,
	}
}

// HasParent は親ジョイントを持つか判定する。
func (j *Joint) HasParent() bool {
	return j != nil && j.ParentName != ""
}

// Attr は属性値を取得する。真偽値属性は 0/1 で返す。
func (j *Joint) Attr(attribute string) (float64, error) {
	attribute = CanonicalAttribute(attribute)
	switch attribute {
	case ATTR_RADIUS:
		return j.Radius, nil
	case ATTR_DISPLAY_LOCAL_AXIS:
		if j.DisplayLocalAxis {
			return 1, nil
		}
		return 0, nil
	}
	vec, axis, err := j.vectorAttr(attribute)
	if err != nil {
		return 0, err
	}
	return vec.Component(axis)
}

// SetAttr は属性値を設定する。
func (j *Joint) SetAttr(attribute string, value float64) error {
	attribute = CanonicalAttribute(attribute)
	switch attribute {
	case ATTR_RADIUS:
		j.Radius = value
		return nil
	case ATTR_DISPLAY_LOCAL_AXIS:
		j.DisplayLocalAxis = value != 0
		return nil
	}
	vec, axis, err := j.vectorAttr(attribute)
	if err != nil {
		return err
	}
	*vec, err = vec.WithComponent(axis, value)
	return err
}

// HasAttr は属性を持つか判定する。
func (j *Joint) HasAttr(attribute string) bool {
	attribute = CanonicalAttribute(attribute)
	if attribute == ATTR_RADIUS || attribute == ATTR_DISPLAY_LOCAL_AXIS {
		return true
	}
	_, _, err := j.vectorAttr(attribute)
	return err == nil
}

// vectorAttr はベクトル属性の格納先と軸を返す。
func (j *Joint) vectorAttr(attribute string) (*Vec3, string, error) {
	base, axis, ok := SplitVectorAttribute(attribute)
	if !ok {
		return nil, "", fmt.Errorf("%w: %s.%s", ErrUnknownAttribute, j.Name, attribute)
	}
	switch base {
	case ATTR_TRANSLATE:
		return &j.Position, axis, nil
	case ATTR_ROTATE:
		return &j.Rotate, axis, nil
	case ATTR_JOINT_ORIENT:
		return &j.Orient, axis, nil
	}
	return nil, "", fmt.Errorf("%w: %s.%s", ErrUnknownAttribute, j.Name, attribute)
}
