// 指示: miu200521358
package model

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"
)

// Vec3 は3次元ベクトルを表す。
type Vec3 struct {
	r3.Vec
}

// ZERO_VEC3 はゼロベクトル。
var ZERO_VEC3 = Vec3{}

// NewVec3 は成分からベクトルを生成する。
func NewVec3(x, y, z float64) Vec3 {
	return Vec3{Vec: r3.Vec{X: x, Y: y, Z: z}}
}

// Scaled は各成分を倍率で拡大したベクトルを返す。
func (v Vec3) Scaled(factor float64) Vec3 {
	return Vec3{Vec: r3.Scale(factor, v.Vec)}
}

// Length はベクトル長を返す。
func (v Vec3) Length() float64 {
	return r3.Norm(v.Vec)
}

// IsZero はゼロベクトルか判定する。
func (v Vec3) IsZero() bool {
	return v.X == 0 && v.Y == 0 && v.Z == 0
}

// Component は軸名の成分を返す。
func (v Vec3) Component(axis string) (float64, error) {
	switch axis {
	case "X":
		return v.X, nil
	case "Y":
		return v.Y, nil
	case "Z":
		return v.Z, nil
	}
	return 0, fmt.Errorf("軸名が不正です: %s", axis)
}

// WithComponent は軸名の成分を差し替えたベクトルを返す。
func (v Vec3) WithComponent(axis string, value float64) (Vec3, error) {
	switch axis {
	case "X":
		v.X = value
	case "Y":
		v.Y = value
	case "Z":
		v.Z = value
	default:
		return v, fmt.Errorf("軸名が不正です: %s", axis)
	}
	return v, nil
}

// String は表示用文字列を返す。
func (v Vec3) String() string {
	return fmt.Sprintf("[%.5f, %.5f, %.5f]", v.X, v.Y, v.Z)
}
