// 指示: miu200521358
package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/miu200521358/mu_twistjoint/pkg/infra/controller/ui"
	"github.com/miu200521358/mu_twistjoint/pkg/usecase/minteractor"
)

// newFormCommand は form コマンドを生成する。
func (a *app) newFormCommand() *cobra.Command {
	var selectName string
	var outputPath string
	cmd := &cobra.Command{
		Use:   "form <scene.yaml>",
		Short: "端末フォームで捩りジョイントを生成する",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output, err := resolveOutputPath(args[0], outputPath)
			if err != nil {
				return err
			}
			scene, err := a.loadScene(args[0])
			if err != nil {
				return err
			}
			graph, err := newGraph(scene, selectName)
			if err != nil {
				return err
			}
			before, err := scene.Clone()
			if err != nil {
				return fmt.Errorf("生成前シーンの複製に失敗しました: %w", err)
			}

			host := ui.NewFormHost(ui.FormHostDeps{
				Usecase:    a.usecase,
				SceneGraph: graph,
				Order:      a.cfg.ValidationOrder,
				Language:   a.lang,
				Logger:     a.logger,
				Defaults:   a.cfg.Defaults,
				OnCreated: func(result *minteractor.GenerateResult) {
					renderGenerateResult(a.out, result)
					renderSceneChanges(a.out, diffScenes(before, graph.Scene()))
				},
			})
			window, err := host.Open()
			if err != nil {
				return err
			}
			if err := window.Run(a.in, a.out); err != nil {
				return err
			}
			if window.Result() == nil {
				return nil
			}
			if err := a.saveScene(output, graph.Scene()); err != nil {
				return err
			}
			fmt.Fprintf(a.out, "[%s] 生成完了: %s\n", appName, output)
			return nil
		},
	}
	cmd.Flags().StringVar(&selectName, "select", "", "選択ジョイント名 (シーンの選択状態を置き換える)")
	cmd.Flags().StringVarP(&outputPath, "out", "o", "", "出力シーンパス (既定: 入力を上書き)")
	return cmd
}
