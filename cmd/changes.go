// 指示: miu200521358
package main

import (
	"fmt"
	"io"
	"slices"

	"github.com/olekukonko/tablewriter"

	"github.com/miu200521358/mu_twistjoint/pkg/domain/model"
)

// sceneChange は生成前後のシーン差分1件を表す。
type sceneChange struct {
	Kind   string
	Node   string
	Detail string
}

// diffScenes は生成前の複製と生成後のシーンを比較し、追加・変更を列挙する。
func diffScenes(before *model.Scene, after *model.Scene) []sceneChange {
	changes := make([]sceneChange, 0)
	for _, joint := range after.Joints {
		prev, err := before.JointByName(joint.Name)
		if err != nil {
			changes = append(changes, sceneChange{
				Kind:   "+joint",
				Node:   joint.Name,
				Detail: fmt.Sprintf("parent=%s translate=%s", joint.ParentName, joint.Position),
			})
			continue
		}
		if prev.Orient != joint.Orient {
			changes = append(changes, sceneChange{
				Kind:   "~jointOrient",
				Node:   joint.Name,
				Detail: fmt.Sprintf("%s -> %s", prev.Orient, joint.Orient),
			})
		}
		if prev.ParentName != joint.ParentName {
			changes = append(changes, sceneChange{
				Kind:   "~parent",
				Node:   joint.Name,
				Detail: fmt.Sprintf("%s -> %s", prev.ParentName, joint.ParentName),
			})
		}
	}
	for _, node := range after.ScalingNodes {
		if before.Exists(node.Name) {
			continue
		}
		changes = append(changes, sceneChange{
			Kind:   "+" + model.SCALING_NODE_TYPE,
			Node:   node.Name,
			Detail: fmt.Sprintf("input2X=%s", formatFloat(node.Input2.X)),
		})
	}
	for _, connection := range after.Connections {
		if slices.Contains(before.Connections, connection) {
			continue
		}
		changes = append(changes, sceneChange{
			Kind:   "+connection",
			Node:   connection.Destination.Node,
			Detail: connection.String(),
		})
	}
	return changes
}

// renderSceneChanges はシーン差分を表形式で出力する。
func renderSceneChanges(out io.Writer, changes []sceneChange) {
	if len(changes) == 0 {
		fmt.Fprintf(out, "[%s] シーン変更なし\n", appName)
		return
	}
	table := tablewriter.NewWriter(out)
	table.Header("Change", "Node", "Detail")
	for _, change := range changes {
		table.Append(change.Kind, change.Node, change.Detail)
	}
	table.Render()
}
