// 指示: miu200521358
package main

import (
	"errors"
	"flag"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/miu200521358/mu_twistjoint/pkg/adapter/io_scene/yml"
	"github.com/miu200521358/mu_twistjoint/pkg/adapter/scene_graph"
	"github.com/miu200521358/mu_twistjoint/pkg/domain/model"
	"github.com/miu200521358/mu_twistjoint/pkg/usecase/minteractor"
)

const (
	batchOutputDirMode = 0o755
	rotationProbe      = 90.0
	tolerance          = 1e-9
)

// twistScenario は1件分の生成シナリオを表す。
type twistScenario struct {
	Name       string
	Parent     string
	Selected   string
	TranslateX float64
	Params     minteractor.FormParams
	Order      minteractor.ValidationOrder
}

var targetScenarios = []twistScenario{
	{Name: "upper_arm_3", Parent: "shoulder", Selected: "upperArm", TranslateX: 10, Params: minteractor.FormParams{BaseName: "twist", Count: 3, ShowLocalAxis: true}},
	{Name: "forearm_default_names", Parent: "elbow", Selected: "wrist", TranslateX: 24.5, Params: minteractor.FormParams{Count: 4}},
	{Name: "thigh_zero_orient", Parent: "hip", Selected: "knee", TranslateX: -42, Params: minteractor.FormParams{BaseName: "thighTwist", Count: 5, ZeroOrient: true}},
	{Name: "max_count_legacy", Parent: "shoulder", Selected: "upperArm", TranslateX: 19, Params: minteractor.FormParams{BaseName: "roll", Count: model.MAX_TWIST_JOINT_COUNT - 1}, Order: minteractor.ValidationOrderLegacy},
}

// batchConfig はバッチ生成の実行設定を表す。
type batchConfig struct {
	OutputRoot string
	DryRun     bool
	FailFast   bool
}

// scenarioEntry は1シナリオ分の入力情報を表す。
type scenarioEntry struct {
	Index      int
	Scenario   twistScenario
	OutputPath string
}

// scenarioResult は1シナリオ分の生成結果を表す。
type scenarioResult struct {
	Entry     scenarioEntry
	Status    string
	Duration  time.Duration
	Err       error
	StageInfo string
}

// generateProgressCollector は捩りジョイント生成の進捗イベントを収集する。
type generateProgressCollector struct {
	eventCounts map[minteractor.GenerateProgressEventType]int
	jointMax    int
}

// main は捩りジョイント生成シナリオを一括実行し、生成結果の回転伝播を検証する。
func main() {
	os.Exit(run())
}

// run は実行設定を解決して一括生成を実行し、終了コードを返す。
func run() int {
	config, err := parseBatchConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "設定解析に失敗しました: %v\n", err)
		return 2
	}
	entries := buildScenarioEntries(config.OutputRoot, targetScenarios)
	if len(entries) == 0 {
		fmt.Fprintln(os.Stderr, "生成対象シナリオがありません")
		return 2
	}

	results := executeBatchGeneration(config, entries)
	printBatchSummary(results)

	for _, result := range results {
		if result.Status == "failed" {
			return 1
		}
	}
	return 0
}

// parseBatchConfig はコマンドライン引数から実行設定を構築する。
func parseBatchConfig() (batchConfig, error) {
	defaultOutputRoot, err := resolveDefaultOutputRoot()
	if err != nil {
		return batchConfig{}, err
	}
	outputRoot := flag.String("output-root", defaultOutputRoot, "生成結果の出力ルートディレクトリ")
	dryRun := flag.Bool("dry-run", false, "生成と検証のみ行い、シーンを保存しない")
	failFast := flag.Bool("fail-fast", false, "失敗時に即時終了する")
	flag.Parse()

	trimmedOutputRoot := strings.TrimSpace(*outputRoot)
	if trimmedOutputRoot == "" {
		return batchConfig{}, errors.New("output-root が空です")
	}
	return batchConfig{
		OutputRoot: filepath.Clean(trimmedOutputRoot),
		DryRun:     *dryRun,
		FailFast:   *failFast,
	}, nil
}

// resolveDefaultOutputRoot はスクリプト配置ディレクトリ基準の既定出力先を返す。
func resolveDefaultOutputRoot() (string, error) {
	_, currentFilePath, _, ok := runtime.Caller(0)
	if !ok {
		return "", errors.New("実行ファイル位置を取得できません")
	}
	return filepath.Join(filepath.Dir(currentFilePath), "output"), nil
}

// buildScenarioEntries はシナリオ一覧から出力先付きエントリを生成する。
func buildScenarioEntries(outputRoot string, scenarios []twistScenario) []scenarioEntry {
	entries := make([]scenarioEntry, 0, len(scenarios))
	for i, scenario := range scenarios {
		fileName := fmt.Sprintf("%03d_%s.yaml", i+1, scenario.Name)
		entries = append(entries, scenarioEntry{
			Index:      i + 1,
			Scenario:   scenario,
			OutputPath: filepath.Join(outputRoot, fileName),
		})
	}
	return entries
}

// executeBatchGeneration は全シナリオを順次実行する。
func executeBatchGeneration(config batchConfig, entries []scenarioEntry) []scenarioResult {
	results := make([]scenarioResult, 0, len(entries))
	repository := yml.NewYamlRepository()
	usecase := minteractor.NewTwistJointUsecase(minteractor.TwistJointUsecaseDeps{
		SceneReader: repository,
		SceneWriter: repository,
	})

	total := len(entries)
	for _, entry := range entries {
		fmt.Printf("[%d/%d] 生成開始: scenario=%s\n", entry.Index, total, entry.Scenario.Name)
		result := runScenario(usecase, config, entry)
		results = append(results, result)
		switch result.Status {
		case "succeeded":
			fmt.Printf("[%d/%d] 生成成功: scenario=%s output=%s elapsed=%s\n", entry.Index, total, entry.Scenario.Name, entry.OutputPath, result.Duration.Round(time.Millisecond))
			fmt.Printf("[%d/%d] 進捗: %s\n", entry.Index, total, result.StageInfo)
		case "dry_run":
			fmt.Printf("[%d/%d] DRY-RUN: scenario=%s %s\n", entry.Index, total, entry.Scenario.Name, result.StageInfo)
		default:
			fmt.Printf("[%d/%d] 生成失敗: scenario=%s reason=%v\n", entry.Index, total, entry.Scenario.Name, result.Err)
			if config.FailFast {
				return results
			}
		}
	}
	return results
}

// runScenario は1シナリオ分の生成・検証・保存を実行する。
func runScenario(usecase *minteractor.TwistJointUsecase, config batchConfig, entry scenarioEntry) scenarioResult {
	result := scenarioResult{Entry: entry, Status: "failed"}
	startedAt := time.Now()

	scene, err := buildScenarioScene(entry.Scenario)
	if err != nil {
		result.Err = err
		return result
	}
	graph := scene_graph.NewSceneGraph(scene)
	collector := newGenerateProgressCollector()
	generated, err := usecase.GenerateTwistJoints(minteractor.GenerateRequest{
		Params:           entry.Scenario.Params,
		Order:            entry.Scenario.Order,
		SceneGraph:       graph,
		ProgressReporter: collector,
	})
	if err != nil {
		result.Err = fmt.Errorf("GenerateTwistJointsに失敗しました: %w", err)
		return result
	}
	if err := verifyGenerated(graph, entry.Scenario, generated); err != nil {
		result.Err = err
		return result
	}
	result.StageInfo = collector.Summary()

	if config.DryRun {
		result.Status = "dry_run"
		return result
	}
	if err := os.MkdirAll(filepath.Dir(entry.OutputPath), batchOutputDirMode); err != nil {
		result.Err = fmt.Errorf("出力ディレクトリ作成に失敗しました: %w", err)
		return result
	}
	if err := usecase.SaveScene(nil, entry.OutputPath, graph.Scene()); err != nil {
		result.Err = fmt.Errorf("SaveSceneに失敗しました: %w", err)
		return result
	}
	reloaded, err := usecase.LoadScene(nil, entry.OutputPath)
	if err != nil {
		result.Err = fmt.Errorf("LoadSceneに失敗しました: %w", err)
		return result
	}
	if err := verifyGenerated(scene_graph.NewSceneGraph(reloaded), entry.Scenario, generated); err != nil {
		result.Err = fmt.Errorf("再読み込み後の検証に失敗しました: %w", err)
		return result
	}

	result.Status = "succeeded"
	result.Duration = time.Since(startedAt)
	return result
}

// buildScenarioScene は root -> parent -> selected のシーンを構築する。
func buildScenarioScene(scenario twistScenario) (*model.Scene, error) {
	scene := model.NewScene(scenario.Name)
	root := model.NewJointByName("root")
	parent := model.NewJointByName(scenario.Parent)
	parent.ParentName = root.Name
	selected := model.NewJointByName(scenario.Selected)
	selected.ParentName = parent.Name
	selected.Position = model.NewVec3(scenario.TranslateX, 0, 0)
	selected.Orient = model.NewVec3(0, 15, 30)
	for _, joint := range []*model.Joint{root, parent, selected} {
		if err := scene.AddJoint(joint); err != nil {
			return nil, fmt.Errorf("シナリオシーンの構築に失敗しました: %w", err)
		}
	}
	scene.Selection = []string{selected.Name}
	return scene, nil
}

// verifyGenerated は生成ジョイントの配置と回転伝播を検証する。
func verifyGenerated(graph *scene_graph.SceneGraph, scenario twistScenario, generated *minteractor.GenerateResult) error {
	count := scenario.Params.Count
	if len(generated.Joints) != count {
		return fmt.Errorf("生成数が不正です: got=%d want=%d", len(generated.Joints), count)
	}
	if err := graph.SetAttr(model.NewPlug(scenario.Selected, model.ATTR_ROTATE_X), rotationProbe); err != nil {
		return fmt.Errorf("回転入力に失敗しました: %w", err)
	}
	for _, joint := range generated.Joints {
		wantX := scenario.TranslateX * float64(joint.Index) / float64(count+1)
		position, err := graph.JointPosition(joint.Name)
		if err != nil {
			return err
		}
		if math.Abs(position.X-wantX) > tolerance {
			return fmt.Errorf("位置が不正です: joint=%s got=%.6f want=%.6f", joint.Name, position.X, wantX)
		}
		rotateX, err := graph.AttrValue(model.NewPlug(joint.Name, model.ATTR_ROTATE_X))
		if err != nil {
			return err
		}
		wantRotate := rotationProbe * float64(joint.Index) / float64(count)
		if math.Abs(rotateX-wantRotate) > tolerance {
			return fmt.Errorf("回転伝播が不正です: joint=%s got=%.6f want=%.6f", joint.Name, rotateX, wantRotate)
		}
		parent, err := graph.Parent(joint.Name)
		if err != nil {
			return err
		}
		if parent != scenario.Parent {
			return fmt.Errorf("親が不正です: joint=%s got=%s want=%s", joint.Name, parent, scenario.Parent)
		}
	}
	return graph.SetAttr(model.NewPlug(scenario.Selected, model.ATTR_ROTATE_X), 0)
}

// printBatchSummary は生成結果の集計を標準出力へ表示する。
func printBatchSummary(results []scenarioResult) {
	succeeded := 0
	failed := 0
	dryRun := 0
	for _, result := range results {
		switch result.Status {
		case "succeeded":
			succeeded++
		case "dry_run":
			dryRun++
		default:
			failed++
		}
	}
	fmt.Printf(
		"バッチ生成サマリ: total=%d succeeded=%d failed=%d dry_run=%d\n",
		len(results),
		succeeded,
		failed,
		dryRun,
	)
}

// newGenerateProgressCollector は生成進捗収集器を生成する。
func newGenerateProgressCollector() *generateProgressCollector {
	return &generateProgressCollector{
		eventCounts: map[minteractor.GenerateProgressEventType]int{},
	}
}

// ReportGenerateProgress は生成進捗イベントを収集する。
func (collector *generateProgressCollector) ReportGenerateProgress(event minteractor.GenerateProgressEvent) {
	if collector == nil {
		return
	}
	collector.eventCounts[event.Type]++
	if event.Type == minteractor.GenerateProgressEventTypeJointCreated && event.Index > collector.jointMax {
		collector.jointMax = event.Index
	}
}

// Summary は収集した進捗の要約文字列を返す。
func (collector *generateProgressCollector) Summary() string {
	if collector == nil || len(collector.eventCounts) == 0 {
		return ""
	}
	types := make([]string, 0, len(collector.eventCounts))
	for stageType, count := range collector.eventCounts {
		types = append(types, fmt.Sprintf("%s=%d", stageType, count))
	}
	sort.Strings(types)
	return fmt.Sprintf("joints=%d stages=%s", collector.jointMax, strings.Join(types, ","))
}
