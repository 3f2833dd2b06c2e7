// 指示: miu200521358
package model

import (
	"fmt"
	"strings"
)

// 属性名。
const (
	ATTR_TRANSLATE          = "translate"
	ATTR_ROTATE             = "rotate"
	ATTR_JOINT_ORIENT       = "jointOrient"
	ATTR_RADIUS             = "radius"
	ATTR_DISPLAY_LOCAL_AXIS = "displayLocalAxis"
	ATTR_INPUT1             = "input1"
	ATTR_INPUT2             = "input2"
	ATTR_OUTPUT             = "output"
	ATTR_OPERATION          = "operation"

	ATTR_ROTATE_X = ATTR_ROTATE + "X"
	ATTR_INPUT1_X = ATTR_INPUT1 + "X"
	ATTR_INPUT2_X = ATTR_INPUT2 + "X"
	ATTR_OUTPUT_X = ATTR_OUTPUT + "X"
)

// attributeAliases は短縮属性名から正式名への対応。
var attributeAliases = map[string]string{
	"tx":  "translateX",
	"ty":  "translateY",
	"tz":  "translateZ",
	"rx":  "rotateX",
	"ry":  "rotateY",
	"rz":  "rotateZ",
	"jox": "jointOrientX",
	"joy": "jointOrientY",
	"joz": "jointOrientZ",
	"i1x": "input1X",
	"i1y": "input1Y",
	"i1z": "input1Z",
	"i2x": "input2X",
	"i2y": "input2Y",
	"i2z": "input2Z",
	"ox":  "outputX",
	"oy":  "outputY",
	"oz":  "outputZ",
	"op":  ATTR_OPERATION,
	"dla": ATTR_DISPLAY_LOCAL_AXIS,
	"rad": ATTR_RADIUS,
}

// Plug はノード属性の参照 (node.attribute) を表す。
type Plug struct {
	Node      string
	Attribute string
}

// NewPlug は正式属性名に正規化したプラグを生成する。
func NewPlug(node, attribute string) Plug {
	return Plug{Node: node, Attribute: CanonicalAttribute(attribute)}
}

// ParsePlug は "node.attribute" 形式の文字列を解析する。
func ParsePlug(value string) (Plug, error) {
	trimmed := strings.TrimSpace(value)
	idx := strings.LastIndex(trimmed, ".")
	if idx <= 0 || idx == len(trimmed)-1 {
		return Plug{}, fmt.Errorf("プラグ形式が不正です: %q", value)
	}
	return NewPlug(trimmed[:idx], trimmed[idx+1:]), nil
}

// String は "node.attribute" 形式の文字列を返す。
func (p Plug) String() string {
	return p.Node + "." + p.Attribute
}

// CanonicalAttribute は短縮属性名を正式名へ変換する。
func CanonicalAttribute(attribute string) string {
	if canonical, ok := attributeAliases[attribute]; ok {
		return canonical
	}
	return attribute
}

// SplitVectorAttribute は "rotateX" を ("rotate", "X") に分解する。
func SplitVectorAttribute(attribute string) (string, string, bool) {
	if len(attribute) < 2 {
		return "", "", false
	}
	axis := attribute[len(attribute)-1:]
	switch axis {
	case "X", "Y", "Z":
		return attribute[:len(attribute)-1], axis, true
	}
	return "", "", false
}
