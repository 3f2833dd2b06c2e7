// 指示: miu200521358
package model

import (
	"errors"
	"testing"
)

func newArmScene(t *testing.T) *Scene {
	t.Helper()
	scene := NewScene("arm")
	shoulder := NewJointByName("shoulder")
	upperArm := NewJointByName("upperArm")
	upperArm.ParentName = "shoulder"
	upperArm.Position = NewVec3(10, 0, 0)
	for _, joint := range []*Joint{shoulder, upperArm} {
		if err := scene.AddJoint(joint); err != nil {
			t.Fatalf("add joint failed: %v", err)
		}
	}
	return scene
}

func TestSceneRejectsDuplicateNames(t *testing.T) {
	scene := newArmScene(t)
	if err := scene.AddJoint(NewJointByName("upperArm")); !errors.Is(err, ErrNameExists) {
		t.Fatalf("expected ErrNameExists: %v", err)
	}
	if err := scene.AddScalingNode(NewScalingNodeByName("shoulder")); !errors.Is(err, ErrNameExists) {
		t.Fatalf("expected ErrNameExists for scaling node: %v", err)
	}
}

func TestSceneNodeTypeAndChildren(t *testing.T) {
	scene := newArmScene(t)
	if err := scene.AddScalingNode(NewScalingNodeByName("upperArm_MD")); err != nil {
		t.Fatalf("add scaling node failed: %v", err)
	}
	if scene.NodeType("upperArm") != NODE_TYPE_JOINT {
		t.Fatalf("expected joint type")
	}
	if scene.NodeType("upperArm_MD") != NODE_TYPE_SCALING {
		t.Fatalf("expected scaling type")
	}
	if scene.NodeType("missing") != NODE_TYPE_NONE {
		t.Fatalf("expected none type")
	}
	children := scene.Children("shoulder")
	if len(children) != 1 || children[0].Name != "upperArm" {
		t.Fatalf("children mismatch: %v", children)
	}
}

func TestSceneCloneIsIndependent(t *testing.T) {
	scene := newArmScene(t)
	scene.Selection = []string{"upperArm"}
	scene.Connections = append(scene.Connections, Connection{
		Source:      NewPlug("shoulder", "rx"),
		Destination: NewPlug("upperArm", "rx"),
	})

	cloned, err := scene.Clone()
	if err != nil {
		t.Fatalf("clone failed: %v", err)
	}
	clonedArm, err := cloned.JointByName("upperArm")
	if err != nil {
		t.Fatalf("cloned joint missing: %v", err)
	}
	clonedArm.Position.X = 99
	cloned.Selection[0] = "shoulder"

	originalArm, _ := scene.JointByName("upperArm")
	if originalArm.Position.X != 10 {
		t.Fatalf("original position changed: %f", originalArm.Position.X)
	}
	if scene.Selection[0] != "upperArm" {
		t.Fatalf("original selection changed: %v", scene.Selection)
	}
	if len(cloned.Connections) != 1 || cloned.Connections[0].Destination.String() != "upperArm.rotateX" {
		t.Fatalf("connections not cloned: %v", cloned.Connections)
	}
}

func TestParsePlug(t *testing.T) {
	plug, err := ParsePlug("twist1_MD.ox")
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if plug.Node != "twist1_MD" || plug.Attribute != "outputX" {
		t.Fatalf("plug mismatch: %+v", plug)
	}
	for _, invalid := range []string{"", "noattr", ".rotateX", "node."} {
		if _, err := ParsePlug(invalid); err == nil {
			t.Fatalf("expected parse error: %q", invalid)
		}
	}
}

func TestJointAttrRoundTrip(t *testing.T) {
	joint := NewJointByName("twist1")
	if err := joint.SetAttr("dla", 1); err != nil {
		t.Fatalf("set dla failed: %v", err)
	}
	if !joint.DisplayLocalAxis {
		t.Fatalf("expected displayLocalAxis on")
	}
	if err := joint.SetAttr("jointOrientZ", 45); err != nil {
		t.Fatalf("set orient failed: %v", err)
	}
	if joint.Orient.Z != 45 {
		t.Fatalf("orient mismatch: %v", joint.Orient)
	}
	if _, err := joint.Attr("scaleX"); !errors.Is(err, ErrUnknownAttribute) {
		t.Fatalf("expected ErrUnknownAttribute: %v", err)
	}
}

func TestSceneAncestorsDetectsCycle(t *testing.T) {
	scene := newArmScene(t)
	ancestors, err := scene.Ancestors("upperArm")
	if err != nil {
		t.Fatalf("ancestors failed: %v", err)
	}
	if len(ancestors) != 1 || ancestors[0] != "shoulder" {
		t.Fatalf("ancestors mismatch: %v", ancestors)
	}
	if err := scene.ValidateHierarchy(); err != nil {
		t.Fatalf("hierarchy should be valid: %v", err)
	}

	shoulder, _ := scene.JointByName("shoulder")
	shoulder.ParentName = "upperArm"
	if _, err := scene.Ancestors("upperArm"); !errors.Is(err, ErrHierarchyCycle) {
		t.Fatalf("expected hierarchy cycle: %v", err)
	}
	if err := scene.ValidateHierarchy(); !errors.Is(err, ErrHierarchyCycle) {
		t.Fatalf("expected hierarchy cycle: %v", err)
	}

	shoulder.ParentName = "ghost"
	if err := scene.ValidateHierarchy(); !errors.Is(err, ErrNodeNotFound) {
		t.Fatalf("expected missing parent: %v", err)
	}
}

func TestSceneOutgoingConnections(t *testing.T) {
	scene := newArmScene(t)
	source := NewPlug("upperArm", "rx")
	scene.Connections = append(scene.Connections,
		Connection{Source: source, Destination: NewPlug("a_MD", ATTR_INPUT1_X)},
		Connection{Source: source, Destination: NewPlug("b_MD", ATTR_INPUT1_X)},
		Connection{Source: NewPlug("shoulder", ATTR_ROTATE_X), Destination: NewPlug("c_MD", ATTR_INPUT1_X)},
	)
	outgoing := scene.OutgoingConnections(NewPlug("upperArm", ATTR_ROTATE_X))
	if len(outgoing) != 2 {
		t.Fatalf("outgoing count mismatch: %d", len(outgoing))
	}
	if len(scene.OutgoingConnections(NewPlug("upperArm", ATTR_TRANSLATE+"X"))) != 0 {
		t.Fatalf("unexpected outgoing connection")
	}
}
