// 指示: miu200521358
package model

import "errors"

var (
	// ErrNodeNotFound はノードが存在しないエラー。
	ErrNodeNotFound = errors.New("ノードが見つかりません")
	// ErrNameExists はノード名が重複するエラー。
	ErrNameExists = errors.New("同名のノードが既に存在します")
	// ErrUnknownAttribute は属性が存在しないエラー。
	ErrUnknownAttribute = errors.New("属性が見つかりません")
	// ErrPlugConnected は接続先プラグが接続済みのエラー。
	ErrPlugConnected = errors.New("接続先プラグは既に接続されています")
	// ErrConnectionCycle は接続が循環するエラー。
	ErrConnectionCycle = errors.New("接続が循環しています")
	// ErrHierarchyCycle は親子関係が循環するエラー。
	ErrHierarchyCycle = errors.New("親子関係が循環しています")
	// ErrReadOnlyAttribute は出力属性へ書き込もうとしたエラー。
	ErrReadOnlyAttribute = errors.New("出力属性には書き込めません")
	// ErrDivideByZero はゼロ除算エラー。
	ErrDivideByZero = errors.New("ゼロ除算が発生しました")
)
