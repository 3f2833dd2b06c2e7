// 指示: miu200521358
package model

import (
	"fmt"

	"gopkg.in/Knetic/govaluate.v3"
)

// ScalingOperation はスケーリングノードの演算種別を表す。
type ScalingOperation int

const (
	// SCALING_OPERATION_NONE は input1 をそのまま出力する。
	SCALING_OPERATION_NONE ScalingOperation = 0
	// SCALING_OPERATION_MULTIPLY は input1 * input2 を出力する。
	SCALING_OPERATION_MULTIPLY ScalingOperation = 1
	// SCALING_OPERATION_DIVIDE は input1 / input2 を出力する。
	SCALING_OPERATION_DIVIDE ScalingOperation = 2
	// SCALING_OPERATION_POWER は input1 ** input2 を出力する。
	SCALING_OPERATION_POWER ScalingOperation = 3
)

const (
	// SCALING_NODE_TYPE はスケーリングノードの型名。
	SCALING_NODE_TYPE = "multiplyDivide"
	// SCALING_NODE_SUFFIX は捩りジョイントに対応するスケーリングノード名の接尾辞。
	SCALING_NODE_SUFFIX = "_MD"
)

var scalingExpressions = map[ScalingOperation]*govaluate.EvaluableExpression{}

func init() {
	for op, source := range map[ScalingOperation]string{
		SCALING_OPERATION_NONE:     "input1",
		SCALING_OPERATION_MULTIPLY: "input1 * input2",
		SCALING_OPERATION_DIVIDE:   "input1 / input2",
		SCALING_OPERATION_POWER:    "input1 ** input2",
	} {
		expr, err := govaluate.NewEvaluableExpression(source)
		if err != nil {
			panic(fmt.Sprintf("スケーリング式の解析に失敗しました: %s: %v", source, err))
		}
		scalingExpressions[op] = expr
	}
}

// String は演算名を返す。
func (op ScalingOperation) String() string {
	switch op {
	case SCALING_OPERATION_NONE:
		return "none"
	case SCALING_OPERATION_MULTIPLY:
		return "multiply"
	case SCALING_OPERATION_DIVIDE:
		return "divide"
	case SCALING_OPERATION_POWER:
		return "power"
	}
	return fmt.Sprintf("ScalingOperation(%d)", int(op))
}

// ScalingNode は入力値へ固定係数を掛けて出力するユーティリティノードを表す。
type ScalingNode struct {
	Name      string
	Operation ScalingOperation
	Input1    Vec3
	Input2    Vec3
}

// NewScalingNodeByName は乗算モードのスケーリングノードを生成する。
func NewScalingNodeByName(name string) *ScalingNode {
	return &ScalingNode{
		Name:      name,
		Operation: SCALING_OPERATION_MULTIPLY,
		Input2:    NewVec3(1, 1, 1),
	}
}

// ScalingNodeName はジョイント名に対応するスケーリングノード名を返す。
func ScalingNodeName(jointName string) string {
	return jointName + SCALING_NODE_SUFFIX
}

// Attr は入力属性値を取得する。出力属性は EvaluateScaling で計算する。
func (n *ScalingNode) Attr(attribute string) (float64, error) {
	attribute = CanonicalAttribute(attribute)
	if attribute == ATTR_OPERATION {
		return float64(n.Operation), nil
	}
	vec, axis, err := n.inputAttr(attribute)
	if err != nil {
		return 0, err
	}
	return vec.Component(axis)
}

// SetAttr は入力属性値を設定する。
func (n *ScalingNode) SetAttr(attribute string, value float64) error {
	attribute = CanonicalAttribute(attribute)
	if attribute == ATTR_OPERATION {
		op := ScalingOperation(int(value))
		if _, ok := scalingExpressions[op]; !ok {
			return fmt.Errorf("演算種別が不正です: %v", value)
		}
		n.Operation = op
		return nil
	}
	if IsScalingOutputAttribute(attribute) {
		return fmt.Errorf("%w: %s.%s", ErrReadOnlyAttribute, n.Name, attribute)
	}
	vec, axis, err := n.inputAttr(attribute)
	if err != nil {
		return err
	}
	*vec, err = vec.WithComponent(axis, value)
	return err
}

// HasAttr は属性を持つか判定する。
func (n *ScalingNode) HasAttr(attribute string) bool {
	attribute = CanonicalAttribute(attribute)
	if attribute == ATTR_OPERATION || IsScalingOutputAttribute(attribute) {
		return true
	}
	_, _, err := n.inputAttr(attribute)
	return err == nil
}

// inputAttr は入力ベクトル属性の格納先と軸を返す。
func (n *ScalingNode) inputAttr(attribute string) (*Vec3, string, error) {
	base, axis, ok := SplitVectorAttribute(attribute)
	if ok {
		switch base {
		case ATTR_INPUT1:
			return &n.Input1, axis, nil
		case ATTR_INPUT2:
			return &n.Input2, axis, nil
		}
	}
	return nil, "", fmt.Errorf("%w: %s.%s", ErrUnknownAttribute, n.Name, attribute)
}

// IsScalingOutputAttribute は出力属性か判定する。
func IsScalingOutputAttribute(attribute string) bool {
	base, _, ok := SplitVectorAttribute(CanonicalAttribute(attribute))
	return ok && base == ATTR_OUTPUT
}

// EvaluateScaling は演算種別に従って1成分分の出力値を計算する。
func EvaluateScaling(op ScalingOperation, input1, input2 float64) (float64, error) {
	expr, ok := scalingExpressions[op]
	if !ok {
		return 0, fmt.Errorf("演算種別が不正です: %d", int(op))
	}
	if op == SCALING_OPERATION_DIVIDE && input2 == 0 {
		return 0, ErrDivideByZero
	}
	result, err := expr.Evaluate(map[string]interface{}{
		"input1": input1,
		"input2": input2,
	})
	if err != nil {
		return 0, fmt.Errorf("スケーリング計算に失敗しました: %w", err)
	}
	value, ok := result.(float64)
	if !ok {
		return 0, fmt.Errorf("スケーリング計算結果の型が不正です: %T", result)
	}
	return value, nil
}
