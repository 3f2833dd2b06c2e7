// 指示: miu200521358
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"

	"github.com/miu200521358/mu_twistjoint/pkg/adapter/io_scene/yml"
	"github.com/miu200521358/mu_twistjoint/pkg/adapter/mpresenter/messages"
	"github.com/miu200521358/mu_twistjoint/pkg/adapter/scene_graph"
	"github.com/miu200521358/mu_twistjoint/pkg/domain/model"
	"github.com/miu200521358/mu_twistjoint/pkg/infra/config"
	"github.com/miu200521358/mu_twistjoint/pkg/shared/logging"
	"github.com/miu200521358/mu_twistjoint/pkg/usecase/minteractor"
)

const appName = "mu_twistjoint"

// app はコマンド間で共有する実行状態を保持する。
type app struct {
	in     io.Reader
	out    io.Writer
	errOut io.Writer

	configPath string
	language   string
	logLevel   string

	cfg        *config.Config
	lang       language.Tag
	logger     *logging.Logger
	repository *yml.YamlRepository
	usecase    *minteractor.TwistJointUsecase
}

// main は捩りジョイント生成CLIを実行する。
func main() {
	if err := run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// run はCLI処理全体を実行する。
func run(args []string, in io.Reader, out io.Writer, errOut io.Writer) error {
	a := &app{in: in, out: out, errOut: errOut}
	root := a.newRootCommand()
	root.SetArgs(args)
	root.SetIn(in)
	root.SetOut(out)
	root.SetErr(errOut)
	defer a.close()
	return root.Execute()
}

// newRootCommand はルートコマンドを生成する。
func (a *app) newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           appName,
		Short:         "選択ジョイントと親の間に捩りジョイントを生成する",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup()
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "設定ファイルパス (既定: ./twistjoint.yaml)")
	root.PersistentFlags().StringVar(&a.language, "lang", "", "表示言語 (ja / en)")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "ログレベル (debug / info / warn / error)")

	root.AddCommand(
		a.newGenerateCommand(),
		a.newFormCommand(),
		a.newInspectCommand(),
		a.newRotateCommand(),
	)
	return root
}

// setup は設定・ロガー・ユースケースを初期化する。
func (a *app) setup() error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		level, err := logging.ParseLogLevel(a.logLevel)
		if err != nil {
			return err
		}
		cfg.LogLevel = level
	}
	if a.language != "" {
		cfg.Language = messages.ParseLanguage(a.language)
	}
	a.cfg = cfg
	a.lang = cfg.Language

	a.logger = logging.NewLogger(a.errOut)
	a.logger.SetLevel(cfg.LogLevel)
	logging.SetDefaultLogger(a.logger)
	if cfg.ConfigFile != "" {
		a.logger.Debug("設定ファイル読み込み: %s", cfg.ConfigFile)
	}

	a.repository = yml.NewYamlRepository()
	a.usecase = minteractor.NewTwistJointUsecase(minteractor.TwistJointUsecaseDeps{
		SceneReader: a.repository,
		SceneWriter: a.repository,
	})
	return nil
}

// close はロガーを破棄して既定ロガーを戻す。
func (a *app) close() {
	if a.logger == nil {
		return
	}
	_ = a.logger.Sync()
	logging.SetDefaultLogger(nil)
}

// loadScene はシーンファイルを読み込む。
func (a *app) loadScene(path string) (*model.Scene, error) {
	scene, err := a.usecase.LoadScene(nil, path)
	if err != nil {
		a.logger.Error("%s: %v", messages.Translate(a.lang, messages.MessageLoadFailed), err)
		return nil, fmt.Errorf("シーン読み込みに失敗しました: %w", err)
	}
	a.logger.Info(messages.Translate(a.lang, messages.LogLoadSuccess, path))
	return scene, nil
}

// saveScene はシーンファイルを保存する。
func (a *app) saveScene(path string, scene *model.Scene) error {
	if err := ensureOutputDir(path); err != nil {
		return err
	}
	if err := a.usecase.SaveScene(nil, path, scene); err != nil {
		a.logger.Error("%s: %v", messages.Translate(a.lang, messages.MessageSaveFailed), err)
		return fmt.Errorf("シーン保存に失敗しました: %w", err)
	}
	a.logger.Info(messages.Translate(a.lang, messages.LogSaveSuccess, path))
	return nil
}

// newGraph はシーンからシーングラフを生成し、必要なら選択状態を置き換える。
func newGraph(scene *model.Scene, selectName string) (*scene_graph.SceneGraph, error) {
	graph := scene_graph.NewSceneGraph(scene)
	if strings.TrimSpace(selectName) == "" {
		return graph, nil
	}
	if err := graph.Select(strings.TrimSpace(selectName)); err != nil {
		return nil, fmt.Errorf("選択ジョイントの設定に失敗しました: %w", err)
	}
	return graph, nil
}

// resolveOutputPath は出力シーンパスを解決する。未指定の場合は入力ファイルを上書きする。
func resolveOutputPath(inputPath string, outputPath string) (string, error) {
	if strings.TrimSpace(outputPath) == "" {
		return inputPath, nil
	}
	ext := strings.ToLower(filepath.Ext(outputPath))
	if ext != ".yaml" && ext != ".yml" {
		return "", fmt.Errorf("出力拡張子が .yaml ではありません: %s", outputPath)
	}
	return outputPath, nil
}

// ensureOutputDir は出力先ディレクトリを作成する。
func ensureOutputDir(outputPath string) error {
	dir := filepath.Dir(outputPath)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("出力先ディレクトリの作成に失敗しました: %w", err)
	}
	return nil
}
