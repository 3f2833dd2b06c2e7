// 指示: miu200521358
package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/miu200521358/mu_twistjoint/pkg/adapter/mpresenter/messages"
	"github.com/miu200521358/mu_twistjoint/pkg/domain/model"
	"github.com/miu200521358/mu_twistjoint/pkg/usecase/minteractor"
)

// generateOptions は generate コマンドの引数を保持する。
type generateOptions struct {
	name       string
	count      int
	localAxis  bool
	zeroOrient bool
	order      string
	selectName string
	outputPath string
	dryRun     bool
}

// progressPrinter は生成進捗を出力する。
type progressPrinter struct {
	out io.Writer
}

// ReportGenerateProgress は生成進捗を1行出力する。
func (p progressPrinter) ReportGenerateProgress(event minteractor.GenerateProgressEvent) {
	switch event.Type {
	case minteractor.GenerateProgressEventTypeOrientCleared:
		fmt.Fprintf(p.out, "[%s] ジョイント方向クリア: %s\n", appName, event.JointName)
	case minteractor.GenerateProgressEventTypeJointCreated:
		fmt.Fprintf(p.out, "[%s] 生成 %d/%d: %s\n", appName, event.Index, event.Total, event.JointName)
	}
}

// newGenerateCommand は generate コマンドを生成する。
func (a *app) newGenerateCommand() *cobra.Command {
	opts := generateOptions{}
	cmd := &cobra.Command{
		Use:   "generate <scene.yaml>",
		Short: "選択ジョイントの捩りジョイントを生成する",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			params, order, err := a.resolveGenerateParams(cmd, opts)
			if err != nil {
				return err
			}
			return a.runGenerate(args[0], opts, params, order)
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&opts.name, "name", "n", "", "捩りジョイント名 (空欄で自動命名)")
	flags.IntVarP(&opts.count, "count", "c", minteractor.DEFAULT_JOINT_COUNT, "捩りジョイント数")
	flags.BoolVar(&opts.localAxis, "local-axis", false, "ローカル回転軸を表示する")
	flags.BoolVar(&opts.zeroOrient, "zero-orient", false, "選択ジョイントの方向をゼロクリアする")
	flags.StringVar(&opts.order, "order", "", "検証順序 (strict / legacy)")
	flags.StringVar(&opts.selectName, "select", "", "選択ジョイント名 (シーンの選択状態を置き換える)")
	flags.StringVarP(&opts.outputPath, "out", "o", "", "出力シーンパス (既定: 入力を上書き)")
	flags.BoolVar(&opts.dryRun, "dry-run", false, "保存せずに結果のみ表示する")
	return cmd
}

// resolveGenerateParams は設定値を既定にフラグ指定値で上書きする。
func (a *app) resolveGenerateParams(cmd *cobra.Command, opts generateOptions) (minteractor.FormParams, minteractor.ValidationOrder, error) {
	params := a.cfg.Defaults
	params.BaseName = opts.name
	flags := cmd.Flags()
	if flags.Changed("count") {
		params.Count = opts.count
	}
	if flags.Changed("local-axis") {
		params.ShowLocalAxis = opts.localAxis
	}
	if flags.Changed("zero-orient") {
		params.ZeroOrient = opts.zeroOrient
	}
	order := a.cfg.ValidationOrder
	if flags.Changed("order") {
		parsed, err := minteractor.ParseValidationOrder(opts.order)
		if err != nil {
			return params, order, err
		}
		order = parsed
	}
	return params, order, nil
}

// runGenerate はシーンを読み込み、捩りジョイントを生成して保存する。
func (a *app) runGenerate(inputPath string, opts generateOptions, params minteractor.FormParams, order minteractor.ValidationOrder) error {
	outputPath, err := resolveOutputPath(inputPath, opts.outputPath)
	if err != nil {
		return err
	}
	scene, err := a.loadScene(inputPath)
	if err != nil {
		return err
	}
	graph, err := newGraph(scene, opts.selectName)
	if err != nil {
		return err
	}
	before, err := scene.Clone()
	if err != nil {
		return fmt.Errorf("生成前シーンの複製に失敗しました: %w", err)
	}

	result, err := a.usecase.GenerateTwistJoints(minteractor.GenerateRequest{
		Params:           params,
		Order:            order,
		SceneGraph:       graph,
		ProgressReporter: progressPrinter{out: a.out},
	})
	if err != nil {
		// 警告までに適用済みの変更 (旧来順序での方向クリアなど) は保存せず表示のみ行う。
		if changes := diffScenes(before, graph.Scene()); len(changes) > 0 {
			renderSceneChanges(a.out, changes)
		}
		text := messages.TranslateError(a.lang, err)
		var warning *model.WarningError
		if errors.As(err, &warning) {
			a.logger.Warn("%s", text)
			return fmt.Errorf("%s (%w)", text, err)
		}
		a.logger.Error("%s: %s", messages.Translate(a.lang, messages.MessageGenerateFailed), text)
		return err
	}
	a.logger.Info(messages.Translate(a.lang, messages.LogGenerateSuccess, len(result.Joints), result.Selected))
	renderGenerateResult(a.out, result)
	renderSceneChanges(a.out, diffScenes(before, graph.Scene()))

	if opts.dryRun {
		fmt.Fprintf(a.out, "[%s] ドライラン: 保存を省略しました\n", appName)
		return nil
	}
	if err := a.saveScene(outputPath, graph.Scene()); err != nil {
		return err
	}
	fmt.Fprintf(a.out, "[%s] 生成完了: %s\n", appName, outputPath)
	return nil
}

// renderGenerateResult は生成結果を表形式で出力する。
func renderGenerateResult(out io.Writer, result *minteractor.GenerateResult) {
	table := tablewriter.NewWriter(out)
	table.Header("#", "Joint", "Node", "TranslateX", "Factor")
	for _, joint := range result.Joints {
		table.Append(
			fmt.Sprintf("%d", joint.Index),
			joint.Name,
			joint.ScalingNodeName,
			formatFloat(joint.PositionX),
			formatFloat(joint.Factor),
		)
	}
	table.Render()
}
