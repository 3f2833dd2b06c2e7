// 指示: miu200521358
package messages

import (
	"errors"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/message/catalog"

	"github.com/miu200521358/mu_twistjoint/pkg/domain/model"
)

// entry は1キー分の翻訳を表す。
type entry struct {
	en string
	ja string
}

var entries = map[string]entry{
	WindowTitle:        {en: "Twist Joint Generator", ja: "捩りジョイント生成"},
	LabelName:          {en: "Name:", ja: "名前:"},
	LabelJointCount:    {en: "# of Joints", ja: "ジョイント数"},
	LabelLocalAxis:     {en: "Display Local Rotation Axis", ja: "ローカル回転軸を表示"},
	LabelClearOrient:   {en: "Zero Out Current Joint Orient", ja: "選択ジョイントの方向をゼロクリア"},
	LabelCreate:        {en: "Create Joints", ja: "ジョイント生成"},
	LabelCancel:        {en: "Cancel", ja: "キャンセル"},
	LabelFormHelp:      {en: "tab: next  space: toggle  enter: press  esc: cancel", ja: "tab: 次へ  space: 切替  enter: 実行  esc: キャンセル"},
	LabelNamePlacehold: {en: "empty for default names", ja: "空欄で自動命名"},

	MessageLoadFailed:     {en: "Failed to load the scene", ja: "シーンの読み込みに失敗しました"},
	MessageSaveFailed:     {en: "Failed to save the scene", ja: "シーンの保存に失敗しました"},
	MessageGenerateFailed: {en: "Failed to generate twist joints", ja: "捩りジョイントの生成に失敗しました"},

	LogLoadSuccess:     {en: "Scene loaded: %s", ja: "シーン読み込み成功: %s"},
	LogSaveSuccess:     {en: "Scene saved: %s", ja: "シーン保存成功: %s"},
	LogGenerateSuccess: {en: "Generated %d twist joints (%s)", ja: "捩りジョイントを%d本生成しました (%s)"},
	LogTwistJoint:      {en: "Twist joint: %s posX=%.4f factor=%.4f", ja: "捩りジョイント: %s 位置X=%.4f 係数=%.4f"},

	WarningNoJointSelected: {
		en: "You need to select a joint.",
		ja: "ジョイントを選択してください。",
	},
	WarningMultipleSelected: {
		en: "Please select only 1 joint.",
		ja: "ジョイントは1つだけ選択してください。",
	},
	WarningJointHasNoParent: {
		en: "The joint selected has no parent. Please select another one",
		ja: "選択したジョイントに親がありません。別のジョイントを選択してください。",
	},
	WarningNameHasDigits: {
		en: "The input should not contain numbers. Please give another name.",
		ja: "名前に数字は使えません。別の名前を入力してください。",
	},
	WarningCountNotPositive: {
		en: "Value must be greater than 0.",
		ja: "ジョイント数は1以上を指定してください。",
	},
	WarningNameCollision: {
		en: "The name may already exist in the scene. Please give another name.",
		ja: "名前がシーン内の既存名と重複する可能性があります。別の名前を入力してください。",
	},
	WarningCountTooLarge: {
		en: "The maximum amount of joints generated should be less than 20.",
		ja: "生成するジョイント数は20未満にしてください。",
	},
	WarningNameExists: {
		en: "A node named %s already exists in the scene. Please give another name.",
		ja: "%s という名前のノードが既に存在します。別の名前を入力してください。",
	},
}

var messageCatalog = buildCatalog()

// buildCatalog は英語・日本語の翻訳カタログを構築する。
func buildCatalog() *catalog.Builder {
	builder := catalog.NewBuilder(catalog.Fallback(language.English))
	for key, texts := range entries {
		if err := builder.SetString(language.English, key, texts.en); err != nil {
			panic(err)
		}
		if err := builder.SetString(language.Japanese, key, texts.ja); err != nil {
			panic(err)
		}
	}
	return builder
}

// Keys は翻訳済みキー一覧を返す。
func Keys() []string {
	keys := make([]string, 0, len(entries))
	for key := range entries {
		keys = append(keys, key)
	}
	return keys
}

// ParseLanguage は言語名から言語タグを解決する。未知の場合は英語。
func ParseLanguage(name string) language.Tag {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return language.English
	}
	tag, err := language.Parse(trimmed)
	if err != nil {
		return language.English
	}
	base, _ := tag.Base()
	if base.String() == "ja" {
		return language.Japanese
	}
	return language.English
}

// NewPrinter は言語タグ用のプリンタを生成する。
func NewPrinter(tag language.Tag) *message.Printer {
	return message.NewPrinter(tag, message.Catalog(messageCatalog))
}

// Translate はキーを翻訳して書式化する。
func Translate(tag language.Tag, key string, args ...any) string {
	return NewPrinter(tag).Sprintf(key, args...)
}

// TranslateError は警告エラーであれば翻訳文を、それ以外はエラー文字列を返す。
func TranslateError(tag language.Tag, err error) string {
	if err == nil {
		return ""
	}
	var warning *model.WarningError
	if errors.As(err, &warning) {
		return Translate(tag, warning.ID, warning.Args...)
	}
	return err.Error()
}
