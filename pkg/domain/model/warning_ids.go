// 指示: miu200521358
package model

const (
	// MAX_TWIST_JOINT_COUNT は捩りジョイント生成数の上限 (この値を含まない)。
	MAX_TWIST_JOINT_COUNT = 20
	// TWIST_JOINT_RADIUS は捩りジョイントの表示半径。
	TWIST_JOINT_RADIUS = 0.2
)

const (
	// WarningNoJointSelected はジョイント未選択警告。
	WarningNoJointSelected = "WarningNoJointSelected"
	// WarningMultipleSelected は複数選択警告。
	WarningMultipleSelected = "WarningMultipleSelected"
	// WarningJointHasNoParent は親ジョイントなし警告。
	WarningJointHasNoParent = "WarningJointHasNoParent"
	// WarningNameHasDigits は名前に数字が含まれる警告。
	WarningNameHasDigits = "WarningNameHasDigits"
	// WarningCountNotPositive は生成数が0以下の警告。
	WarningCountNotPositive = "WarningCountNotPositive"
	// WarningNameCollision は名前が選択/親ジョイント名と衝突する警告。
	WarningNameCollision = "WarningNameCollision"
	// WarningCountTooLarge は生成数が上限以上の警告。
	WarningCountTooLarge = "WarningCountTooLarge"
	// WarningNameExists は生成予定名のノードが既に存在する警告。
	WarningNameExists = "WarningNameExists"
)

// WarningIDs は全警告IDを返す。
func WarningIDs() []string {
	return []string{
		WarningNoJointSelected,
		WarningMultipleSelected,
		WarningJointHasNoParent,
		WarningNameHasDigits,
		WarningCountNotPositive,
		WarningNameCollision,
		WarningCountTooLarge,
		WarningNameExists,
	}
}

// WarningError は利用者へ警告として表示する中断理由を表す。
type WarningError struct {
	ID   string
	Args []any
}

// NewWarningError は警告エラーを生成する。
func NewWarningError(id string, args ...any) *WarningError {
	return &WarningError{ID: id, Args: args}
}

// Error は警告IDを含む文字列を返す。
func (e *WarningError) Error() string {
	if e == nil {
		return ""
	}
	return "warning: " + e.ID
}
