// 指示: miu200521358
// Package messages はUI表示に使うメッセージキーと翻訳カタログを提供する。
package messages

import "github.com/miu200521358/mu_twistjoint/pkg/domain/model"

// メッセージキー一覧。
const (
	WindowTitle = "捩りジョイント生成"

	LabelName          = "名前"
	LabelJointCount    = "ジョイント数"
	LabelLocalAxis     = "ローカル回転軸表示"
	LabelClearOrient   = "ジョイント方向ゼロクリア"
	LabelCreate        = "ジョイント生成"
	LabelCancel        = "キャンセル"
	LabelFormHelp      = "フォーム操作説明"
	LabelNamePlacehold = "空欄で自動命名"

	MessageLoadFailed     = "読み込み失敗"
	MessageSaveFailed     = "保存失敗"
	MessageGenerateFailed = "生成失敗"

	LogLoadSuccess     = "シーン読み込み成功: %s"
	LogSaveSuccess     = "シーン保存成功: %s"
	LogGenerateSuccess = "捩りジョイント生成成功: %d本 (%s)"
	LogTwistJoint      = "捩りジョイント: %s 位置X=%.4f 係数=%.4f"
)

// 警告メッセージキー。警告IDをそのままキーとする。
const (
	WarningNoJointSelected  = model.WarningNoJointSelected
	WarningMultipleSelected = model.WarningMultipleSelected
	WarningJointHasNoParent = model.WarningJointHasNoParent
	WarningNameHasDigits    = model.WarningNameHasDigits
	WarningCountNotPositive = model.WarningCountNotPositive
	WarningNameCollision    = model.WarningNameCollision
	WarningCountTooLarge    = model.WarningCountTooLarge
	WarningNameExists       = model.WarningNameExists
)
