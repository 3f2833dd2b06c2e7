// 指示: miu200521358
package scene_graph

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/miu200521358/mu_twistjoint/pkg/domain/model"
)

func newArmGraph(t *testing.T) *SceneGraph {
	t.Helper()
	scene := model.NewScene("arm")
	shoulder := model.NewJointByName("shoulder")
	upperArm := model.NewJointByName("upperArm")
	upperArm.ParentName = "shoulder"
	upperArm.Position = model.NewVec3(10, 0, 0)
	require.NoError(t, scene.AddJoint(shoulder))
	require.NoError(t, scene.AddJoint(upperArm))
	return NewSceneGraph(scene)
}

func TestCreateJointAutoNamesAndSelects(t *testing.T) {
	graph := newArmGraph(t)

	first, err := graph.CreateJoint("")
	require.NoError(t, err)
	require.Equal(t, "joint1", first)
	require.Equal(t, []string{"joint1"}, graph.Selection())

	second, err := graph.CreateJoint("")
	require.NoError(t, err)
	require.Equal(t, "joint2", second)

	_, err = graph.CreateJoint("upperArm")
	require.ErrorIs(t, err, model.ErrNameExists)
}

func TestReparentRejectsHierarchyCycle(t *testing.T) {
	graph := newArmGraph(t)
	require.ErrorIs(t, graph.Reparent("shoulder", "upperArm"), model.ErrHierarchyCycle)
	require.ErrorIs(t, graph.Reparent("upperArm", "missing"), model.ErrNodeNotFound)

	name, err := graph.CreateJoint("twist")
	require.NoError(t, err)
	require.NoError(t, graph.Reparent(name, "shoulder"))
	parent, err := graph.Parent(name)
	require.NoError(t, err)
	require.Equal(t, "shoulder", parent)
}

func TestConnectPropagatesThroughScalingNode(t *testing.T) {
	graph := newArmGraph(t)
	joint, err := graph.CreateJoint("twist1")
	require.NoError(t, err)
	node, err := graph.CreateScalingNode(model.ScalingNodeName(joint))
	require.NoError(t, err)

	require.NoError(t, graph.SetAttr(model.NewPlug(node, "input2X"), 0.5))
	require.NoError(t, graph.Connect(model.NewPlug("upperArm", "rotateX"), model.NewPlug(node, "input1X"), true))
	require.NoError(t, graph.Connect(model.NewPlug(node, "outputX"), model.NewPlug(joint, "rotateX"), true))

	require.NoError(t, graph.SetAttr(model.NewPlug("upperArm", "rx"), 90))
	value, err := graph.AttrValue(model.NewPlug(joint, "rotateX"))
	require.NoError(t, err)
	require.InDelta(t, 45.0, value, 1e-9)

	require.NoError(t, graph.SetAttr(model.NewPlug("upperArm", "rx"), -30))
	value, err = graph.AttrValue(model.NewPlug(joint, "rotateX"))
	require.NoError(t, err)
	require.InDelta(t, -15.0, value, 1e-9)

	require.ErrorIs(t, graph.SetAttr(model.NewPlug(joint, "rotateX"), 1), model.ErrPlugConnected)
}

func TestConnectRequiresForceToReplace(t *testing.T) {
	graph := newArmGraph(t)
	source := model.NewPlug("shoulder", "rotateX")
	destination := model.NewPlug("upperArm", "rotateY")
	require.NoError(t, graph.Connect(source, destination, false))
	require.NoError(t, graph.Connect(source, destination, false))
	require.ErrorIs(t, graph.Connect(model.NewPlug("shoulder", "rotateZ"), destination, false), model.ErrPlugConnected)
	require.NoError(t, graph.Connect(model.NewPlug("shoulder", "rotateZ"), destination, true))

	connection, ok := graph.Scene().IncomingConnection(destination)
	require.True(t, ok)
	require.Equal(t, "shoulder.rotateZ", connection.Source.String())
	require.Len(t, graph.Scene().Connections, 1)
}

func TestConnectRejectsCyclesAndOutputs(t *testing.T) {
	graph := newArmGraph(t)
	node, err := graph.CreateScalingNode("")
	require.NoError(t, err)
	require.Equal(t, "multiplyDivide1", node)

	require.NoError(t, graph.Connect(model.NewPlug("upperArm", "rotateX"), model.NewPlug(node, "input1X"), false))
	require.ErrorIs(t,
		graph.Connect(model.NewPlug(node, "outputX"), model.NewPlug("upperArm", "rotateX"), false),
		model.ErrConnectionCycle)
	require.ErrorIs(t,
		graph.Connect(model.NewPlug("upperArm", "rotateY"), model.NewPlug(node, "outputX"), false),
		model.ErrReadOnlyAttribute)
	require.ErrorIs(t,
		graph.Connect(model.NewPlug("upperArm", "scaleX"), model.NewPlug(node, "input1Y"), false),
		model.ErrUnknownAttribute)
}

func TestSelectValidatesNames(t *testing.T) {
	graph := newArmGraph(t)
	require.NoError(t, graph.Select("upperArm"))
	require.Equal(t, []string{"upperArm"}, graph.Selection())
	require.ErrorIs(t, graph.Select("upperArm", "missing"), model.ErrNodeNotFound)
	require.Equal(t, []string{"upperArm"}, graph.Selection())
	require.NoError(t, graph.Select())
	require.Empty(t, graph.Selection())
}

func TestReparentStopsOnCyclicHierarchy(t *testing.T) {
	scene := model.NewScene("broken")
	shoulder := model.NewJointByName("shoulder")
	shoulder.ParentName = "clavicle"
	clavicle := model.NewJointByName("clavicle")
	clavicle.ParentName = "shoulder"
	require.NoError(t, scene.AddJoint(shoulder))
	require.NoError(t, scene.AddJoint(clavicle))
	require.NoError(t, scene.AddJoint(model.NewJointByName("twist1")))
	graph := NewSceneGraph(scene)

	err := graph.Reparent("twist1", "shoulder")
	require.ErrorIs(t, err, model.ErrHierarchyCycle)

	twist, err := scene.JointByName("twist1")
	require.NoError(t, err)
	require.Empty(t, twist.ParentName)
}
