// 指示: miu200521358
// Package config は設定ファイルと環境変数から実行設定を読み込む。
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
	"golang.org/x/text/language"

	"github.com/miu200521358/mu_twistjoint/pkg/adapter/mpresenter/messages"
	"github.com/miu200521358/mu_twistjoint/pkg/shared/logging"
	"github.com/miu200521358/mu_twistjoint/pkg/usecase/minteractor"
)

const (
	// CONFIG_NAME は設定ファイル名 (拡張子なし)。
	CONFIG_NAME = "twistjoint"
	// ENV_PREFIX は環境変数の接頭辞。
	ENV_PREFIX = "TWISTJOINT"
)

// 設定キー一覧。
const (
	KEY_LOG_LEVEL        = "log_level"
	KEY_LANGUAGE         = "language"
	KEY_DEFAULT_COUNT    = "default_count"
	KEY_SHOW_LOCAL_AXIS  = "show_local_axis"
	KEY_ZERO_ORIENT      = "zero_orient"
	KEY_VALIDATION_ORDER = "validation_order"
)

// Config は実行設定を表す。
type Config struct {
	LogLevel        logging.LogLevel
	Language        language.Tag
	Defaults        minteractor.FormParams
	ValidationOrder minteractor.ValidationOrder
	// ConfigFile は読み込んだ設定ファイル。見つからなかった場合は空。
	ConfigFile string
}

// Load は設定を読み込む。path が空の場合はカレントディレクトリとユーザー設定ディレクトリを探索する。
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetDefault(KEY_LOG_LEVEL, "info")
	v.SetDefault(KEY_LANGUAGE, "ja")
	v.SetDefault(KEY_DEFAULT_COUNT, minteractor.DEFAULT_JOINT_COUNT)
	v.SetDefault(KEY_SHOW_LOCAL_AXIS, false)
	v.SetDefault(KEY_ZERO_ORIENT, false)
	v.SetDefault(KEY_VALIDATION_ORDER, string(minteractor.ValidationOrderStrict))

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(CONFIG_NAME)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "mu_twistjoint"))
		}
	}
	v.SetEnvPrefix(ENV_PREFIX)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("設定ファイルの読み込みに失敗しました: %w", err)
		}
	}
	return fromViper(v)
}

// fromViper はviperの値を検証して設定へ変換する。
func fromViper(v *viper.Viper) (*Config, error) {
	level, err := logging.ParseLogLevel(v.GetString(KEY_LOG_LEVEL))
	if err != nil {
		return nil, err
	}
	order, err := minteractor.ParseValidationOrder(v.GetString(KEY_VALIDATION_ORDER))
	if err != nil {
		return nil, err
	}
	count := v.GetInt(KEY_DEFAULT_COUNT)
	if count < minteractor.DEFAULT_JOINT_COUNT {
		return nil, fmt.Errorf("ジョイント数の初期値は%d以上を指定してください: %d", minteractor.DEFAULT_JOINT_COUNT, count)
	}
	return &Config{
		LogLevel: level,
		Language: messages.ParseLanguage(v.GetString(KEY_LANGUAGE)),
		Defaults: minteractor.FormParams{
			Count:         count,
			ShowLocalAxis: v.GetBool(KEY_SHOW_LOCAL_AXIS),
			ZeroOrient:    v.GetBool(KEY_ZERO_ORIENT),
		},
		ValidationOrder: order,
		ConfigFile:      v.ConfigFileUsed(),
	}, nil
}
