// 指示: miu200521358
package minteractor

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/miu200521358/mu_twistjoint/pkg/adapter/scene_graph"
	"github.com/miu200521358/mu_twistjoint/pkg/domain/model"
)

// generateProgressCollector は生成進捗イベントを収集する。
type generateProgressCollector struct {
	events []GenerateProgressEvent
}

// ReportGenerateProgress は進捗イベントを保持する。
func (c *generateProgressCollector) ReportGenerateProgress(event GenerateProgressEvent) {
	c.events = append(c.events, event)
}

func TestGenerateTwistJointsUpperArmExample(t *testing.T) {
	scene := newArmScene(t, 10)
	graph := scene_graph.NewSceneGraph(scene)
	uc := NewTwistJointUsecase(TwistJointUsecaseDeps{SceneGraph: graph})

	result, err := uc.GenerateTwistJoints(GenerateRequest{
		Params: FormParams{BaseName: "twist", Count: 3, ShowLocalAxis: true},
	})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	expected := []struct {
		name      string
		positionX float64
		factor    float64
	}{
		{"twist1", 2.5, 1.0 / 3.0},
		{"twist2", 5.0, 2.0 / 3.0},
		{"twist3", 7.5, 1.0},
	}
	if len(result.Joints) != len(expected) {
		t.Fatalf("joint count mismatch: got=%d", len(result.Joints))
	}
	for i, want := range expected {
		got := result.Joints[i]
		if got.Name != want.name || got.ScalingNodeName != want.name+"_MD" {
			t.Fatalf("name mismatch: got=%s/%s want=%s", got.Name, got.ScalingNodeName, want.name)
		}
		joint, err := scene.JointByName(want.name)
		if err != nil {
			t.Fatalf("joint %s missing: %v", want.name, err)
		}
		if joint.ParentName != "shoulder" {
			t.Fatalf("parent mismatch: %s parent=%s", joint.Name, joint.ParentName)
		}
		if math.Abs(joint.Position.X-want.positionX) > 1e-9 || joint.Position.Y != 0 || joint.Position.Z != 0 {
			t.Fatalf("position mismatch: %s got=%v want=%f", joint.Name, joint.Position, want.positionX)
		}
		if !joint.Orient.IsZero() {
			t.Fatalf("orient should be zero: %s %v", joint.Name, joint.Orient)
		}
		if joint.Radius != model.TWIST_JOINT_RADIUS {
			t.Fatalf("radius mismatch: %s %f", joint.Name, joint.Radius)
		}
		if !joint.DisplayLocalAxis {
			t.Fatalf("local axis should be displayed: %s", joint.Name)
		}
		node, err := scene.ScalingNodeByName(want.name + "_MD")
		if err != nil {
			t.Fatalf("scaling node missing: %v", err)
		}
		if math.Abs(node.Input2.X-want.factor) > 1e-9 {
			t.Fatalf("factor mismatch: %s got=%f want=%f", node.Name, node.Input2.X, want.factor)
		}
	}

	upperArm, _ := scene.JointByName("upperArm")
	if upperArm.Orient.Z != 35 {
		t.Fatalf("orient should be kept when flag is off: %v", upperArm.Orient)
	}
	if result.OrientCleared {
		t.Fatalf("orient should not be reported as cleared")
	}
	if len(scene.Connections) != 6 {
		t.Fatalf("connection count mismatch: %d", len(scene.Connections))
	}
	if sel := graph.Selection(); len(sel) != 1 || sel[0] != "upperArm" {
		t.Fatalf("selection should be restored: %v", sel)
	}
}

func TestGenerateTwistJointsDrivesRotationLive(t *testing.T) {
	scene := newArmScene(t, 10)
	graph := scene_graph.NewSceneGraph(scene)
	uc := NewTwistJointUsecase(TwistJointUsecaseDeps{SceneGraph: graph})

	if _, err := uc.GenerateTwistJoints(GenerateRequest{Params: FormParams{BaseName: "twist", Count: 4}}); err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	for _, rotateX := range []float64{90, -48, 0} {
		if err := graph.SetAttr(model.NewPlug("upperArm", model.ATTR_ROTATE_X), rotateX); err != nil {
			t.Fatalf("set rotateX failed: %v", err)
		}
		for idx := 1; idx <= 4; idx++ {
			value, err := graph.AttrValue(model.NewPlug(fmt.Sprintf("twist%d", idx), model.ATTR_ROTATE_X))
			if err != nil {
				t.Fatalf("evaluate failed: %v", err)
			}
			want := rotateX * float64(idx) / 4
			if math.Abs(value-want) > 1e-9 {
				t.Fatalf("rotateX mismatch: twist%d got=%f want=%f", idx, value, want)
			}
		}
	}
}

func TestGenerateTwistJointsDistributionForAllCounts(t *testing.T) {
	const translateX = 13.7
	for count := 1; count < model.MAX_TWIST_JOINT_COUNT; count++ {
		scene := newArmScene(t, translateX)
		uc := NewTwistJointUsecase(TwistJointUsecaseDeps{})
		result, err := uc.GenerateTwistJoints(GenerateRequest{
			Params:     FormParams{BaseName: "seg", Count: count},
			SceneGraph: scene_graph.NewSceneGraph(scene),
		})
		if err != nil {
			t.Fatalf("count=%d generate failed: %v", count, err)
		}
		if len(result.Joints) != count {
			t.Fatalf("count=%d joint count mismatch: %d", count, len(result.Joints))
		}
		for _, generated := range result.Joints {
			i := float64(generated.Index)
			wantX := translateX * i / float64(count+1)
			wantFactor := i / float64(count)
			joint, _ := scene.JointByName(generated.Name)
			node, _ := scene.ScalingNodeByName(generated.ScalingNodeName)
			if math.Abs(joint.Position.X-wantX) > 1e-9 {
				t.Fatalf("count=%d %s position mismatch: got=%f want=%f", count, joint.Name, joint.Position.X, wantX)
			}
			if math.Abs(node.Input2.X-wantFactor) > 1e-9 {
				t.Fatalf("count=%d %s factor mismatch: got=%f want=%f", count, node.Name, node.Input2.X, wantFactor)
			}
		}
	}
}

func TestGenerateTwistJointsWarningsCreateNothing(t *testing.T) {
	cases := []struct {
		name      string
		params    FormParams
		warningID string
	}{
		{name: "digits", params: FormParams{BaseName: "twist2", Count: 3, ZeroOrient: true}, warningID: model.WarningNameHasDigits},
		{name: "superscript digit", params: FormParams{BaseName: "twist²", Count: 2}, warningID: model.WarningNameHasDigits},
		{name: "circled digit", params: FormParams{BaseName: "twist①", Count: 2}, warningID: model.WarningNameHasDigits},
		{name: "arabic-indic digit", params: FormParams{BaseName: "twist٣", Count: 2}, warningID: model.WarningNameHasDigits},
		{name: "zero count", params: FormParams{BaseName: "twist", Count: 0, ZeroOrient: true}, warningID: model.WarningCountNotPositive},
		{name: "negative count", params: FormParams{Count: -2}, warningID: model.WarningCountNotPositive},
		{name: "selected collision", params: FormParams{BaseName: "Arm", Count: 3, ZeroOrient: true}, warningID: model.WarningNameCollision},
		{name: "parent collision", params: FormParams{BaseName: "shoul", Count: 3}, warningID: model.WarningNameCollision},
		{name: "too many", params: FormParams{BaseName: "twist", Count: 20, ZeroOrient: true}, warningID: model.WarningCountTooLarge},
		{name: "far too many", params: FormParams{Count: 200}, warningID: model.WarningCountTooLarge},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			scene := newArmScene(t, 10)
			uc := NewTwistJointUsecase(TwistJointUsecaseDeps{SceneGraph: scene_graph.NewSceneGraph(scene)})
			result, err := uc.GenerateTwistJoints(GenerateRequest{Params: tc.params})
			assertWarning(t, err, tc.warningID)
			if result != nil {
				t.Fatalf("result should be nil on warning")
			}
			if len(scene.Joints) != 2 || len(scene.ScalingNodes) != 1 || len(scene.Connections) != 0 {
				t.Fatalf("scene should be unchanged: joints=%d nodes=%d connections=%d",
					len(scene.Joints), len(scene.ScalingNodes), len(scene.Connections))
			}
			upperArm, _ := scene.JointByName("upperArm")
			if upperArm.Orient.Z != 35 {
				t.Fatalf("strict order should not clear orient on warning: %v", upperArm.Orient)
			}
		})
	}
}

func TestGenerateTwistJointsLegacyOrderClearsOrientBeforeLaterWarnings(t *testing.T) {
	cases := []struct {
		name        string
		params      FormParams
		warningID   string
		wantCleared bool
	}{
		{name: "digits abort first", params: FormParams{BaseName: "t1", Count: 3, ZeroOrient: true}, warningID: model.WarningNameHasDigits, wantCleared: false},
		{name: "zero count", params: FormParams{Count: 0, ZeroOrient: true}, warningID: model.WarningCountNotPositive, wantCleared: true},
		{name: "collision", params: FormParams{BaseName: "upper", Count: 3, ZeroOrient: true}, warningID: model.WarningNameCollision, wantCleared: true},
		{name: "too many", params: FormParams{Count: 25, ZeroOrient: true}, warningID: model.WarningCountTooLarge, wantCleared: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			scene := newArmScene(t, 10)
			uc := NewTwistJointUsecase(TwistJointUsecaseDeps{SceneGraph: scene_graph.NewSceneGraph(scene)})
			_, err := uc.GenerateTwistJoints(GenerateRequest{Params: tc.params, Order: ValidationOrderLegacy})
			assertWarning(t, err, tc.warningID)
			upperArm, _ := scene.JointByName("upperArm")
			if upperArm.Orient.IsZero() != tc.wantCleared {
				t.Fatalf("orient cleared mismatch: got=%v want=%v", upperArm.Orient, tc.wantCleared)
			}
			if len(scene.Joints) != 2 {
				t.Fatalf("no joints should be created: %d", len(scene.Joints))
			}
		})
	}
}

func TestGenerateTwistJointsZeroOrientClearsSelectedJoint(t *testing.T) {
	scene := newArmScene(t, 10)
	collector := &generateProgressCollector{}
	uc := NewTwistJointUsecase(TwistJointUsecaseDeps{SceneGraph: scene_graph.NewSceneGraph(scene)})

	result, err := uc.GenerateTwistJoints(GenerateRequest{
		Params:           FormParams{Count: 2, ZeroOrient: true},
		ProgressReporter: collector,
	})
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}
	if !result.OrientCleared {
		t.Fatalf("orient should be reported as cleared")
	}
	upperArm, _ := scene.JointByName("upperArm")
	if !upperArm.Orient.IsZero() {
		t.Fatalf("orient should be cleared: %v", upperArm.Orient)
	}

	wantTypes := []GenerateProgressEventType{
		GenerateProgressEventTypeSelectionValidated,
		GenerateProgressEventTypeOrientCleared,
		GenerateProgressEventTypeParamsValidated,
		GenerateProgressEventTypeJointCreated,
		GenerateProgressEventTypeJointCreated,
		GenerateProgressEventTypeCompleted,
	}
	if len(collector.events) != len(wantTypes) {
		t.Fatalf("event count mismatch: %+v", collector.events)
	}
	for i, want := range wantTypes {
		if collector.events[i].Type != want {
			t.Fatalf("event %d mismatch: got=%s want=%s", i, collector.events[i].Type, want)
		}
	}
}

func TestGenerateTwistJointsDefaultNamesRepeat(t *testing.T) {
	scene := newArmScene(t, 10)
	graph := scene_graph.NewSceneGraph(scene)
	uc := NewTwistJointUsecase(TwistJointUsecaseDeps{SceneGraph: graph})

	first, err := uc.GenerateTwistJoints(GenerateRequest{Params: FormParams{Count: 3}})
	if err != nil {
		t.Fatalf("first generate failed: %v", err)
	}
	second, err := uc.GenerateTwistJoints(GenerateRequest{Params: FormParams{Count: 3}})
	if err != nil {
		t.Fatalf("second generate failed: %v", err)
	}
	if got := fmt.Sprint(first.JointNames()); got != "[joint1 joint2 joint3]" {
		t.Fatalf("first names mismatch: %s", got)
	}
	if got := fmt.Sprint(second.JointNames()); got != "[joint4 joint5 joint6]" {
		t.Fatalf("second names mismatch: %s", got)
	}
	if len(scene.Joints) != 8 || len(scene.ScalingNodes) != 7 {
		t.Fatalf("scene count mismatch: joints=%d nodes=%d", len(scene.Joints), len(scene.ScalingNodes))
	}
}

func TestGenerateTwistJointsSameBaseNameCollides(t *testing.T) {
	scene := newArmScene(t, 10)
	graph := scene_graph.NewSceneGraph(scene)
	uc := NewTwistJointUsecase(TwistJointUsecaseDeps{SceneGraph: graph})

	request := GenerateRequest{Params: FormParams{BaseName: "twist", Count: 3}}
	if _, err := uc.GenerateTwistJoints(request); err != nil {
		t.Fatalf("first generate failed: %v", err)
	}
	_, err := uc.GenerateTwistJoints(request)
	assertWarning(t, err, model.WarningNameExists)

	request.Order = ValidationOrderLegacy
	_, err = uc.GenerateTwistJoints(request)
	if !errors.Is(err, model.ErrNameExists) {
		t.Fatalf("legacy order should fail on create: %v", err)
	}
	if len(scene.Joints) != 5 {
		t.Fatalf("no extra joints should be created: %d", len(scene.Joints))
	}
}

func TestGenerateTwistJointsRevalidatesSelection(t *testing.T) {
	scene := newArmScene(t, 10)
	scene.Selection = []string{"shoulder"}
	uc := NewTwistJointUsecase(TwistJointUsecaseDeps{SceneGraph: scene_graph.NewSceneGraph(scene)})
	_, err := uc.GenerateTwistJoints(GenerateRequest{Params: FormParams{Count: 2}})
	assertWarning(t, err, model.WarningJointHasNoParent)
}

func TestGenerateTwistJointsRejectsUnknownOrder(t *testing.T) {
	scene := newArmScene(t, 10)
	uc := NewTwistJointUsecase(TwistJointUsecaseDeps{SceneGraph: scene_graph.NewSceneGraph(scene)})
	if _, err := uc.GenerateTwistJoints(GenerateRequest{Params: FormParams{Count: 2}, Order: "random"}); err == nil {
		t.Fatalf("expected error")
	}
}

func TestParseValidationOrder(t *testing.T) {
	for input, want := range map[string]ValidationOrder{"": ValidationOrderStrict, "STRICT": ValidationOrderStrict, " legacy ": ValidationOrderLegacy} {
		got, err := ParseValidationOrder(input)
		if err != nil || got != want {
			t.Fatalf("parse mismatch: input=%q got=%s err=%v", input, got, err)
		}
	}
	if _, err := ParseValidationOrder("later"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestGenerateTwistJointsReturnsOnCyclicHierarchy(t *testing.T) {
	scene := newArmScene(t, 10)
	clavicle := model.NewJointByName("clavicle")
	clavicle.ParentName = "shoulder"
	if err := scene.AddJoint(clavicle); err != nil {
		t.Fatalf("add joint failed: %v", err)
	}
	shoulder, _ := scene.JointByName("shoulder")
	shoulder.ParentName = "clavicle"
	uc := NewTwistJointUsecase(TwistJointUsecaseDeps{SceneGraph: scene_graph.NewSceneGraph(scene)})

	_, err := uc.GenerateTwistJoints(GenerateRequest{Params: FormParams{BaseName: "twist", Count: 3}})
	if !errors.Is(err, model.ErrHierarchyCycle) {
		t.Fatalf("expected hierarchy cycle: %v", err)
	}
}
