package registry_test

import (
	"encoding/json"
	"strings"
	"testing"

	"robotblocks/internal/document"
	"robotblocks/internal/domain"
	"robotblocks/internal/registry"
)

func TestDefinitions_CustomBlocksOnly(t *testing.T) {
	defs := registry.Definitions()
	seen := map[string]bool{}
	for _, d := range defs {
		seen[d["type"].(string)] = true
	}
	for _, s := range registry.Shapes() {
		if s.Builtin == seen[string(s.Type)] {
			t.Errorf("%s: builtin=%v but definition emitted=%v", s.Type, s.Builtin, seen[string(s.Type)])
		}
	}
}

func TestDefinitions_SetPWMMessage(t *testing.T) {
	var def registry.Definition
	for _, d := range registry.Definitions() {
		if d["type"] == string(domain.BlockTypeSetPWM) {
			def = d
		}
	}
	if def == nil {
		t.Fatal("set_pwm definition missing")
	}
	if def["message0"] != "Set PWM  %1  to  %2" {
		t.Errorf("unexpected message0 %q", def["message0"])
	}
	args := def["args0"].([]map[string]any)
	if args[1]["name"] != "VALUE" || args[1]["min"] != -1.0 || args[1]["precision"] != 0.01 {
		t.Errorf("unexpected VALUE arg: %v", args[1])
	}
	if _, err := json.Marshal(def); err != nil {
		t.Fatalf("definition does not marshal: %v", err)
	}
}

func TestDefinitions_StatementInput(t *testing.T) {
	for _, d := range registry.Definitions() {
		if d["type"] != string(domain.BlockTypeRobotInit) {
			continue
		}
		args := d["args1"].([]map[string]any)
		if args[0]["type"] != "input_statement" || args[0]["name"] != "DO" {
			t.Errorf("unexpected statement input: %v", args[0])
		}
		if _, ok := d["previousStatement"]; ok {
			t.Errorf("event block must not have a previous connection")
		}
		return
	}
	t.Fatal("robot_init definition missing")
}

func TestToolbox_OnlyRegisteredTypes(t *testing.T) {
	tb := registry.Toolbox()
	if tb.Kind != "categoryToolbox" {
		t.Fatalf("unexpected kind %q", tb.Kind)
	}
	var names []string
	for _, cat := range tb.Contents {
		names = append(names, cat.Name)
		for _, item := range cat.Contents {
			if _, ok := registry.Lookup(domain.BlockType(item.Type)); !ok {
				t.Errorf("toolbox offers unregistered type %s", item.Type)
			}
			if item.Type == string(domain.BlockTypeInitCANMotor) {
				t.Errorf("init_can_motor should not be offered")
			}
		}
	}
	if got := strings.Join(names, ","); got != "Events,Logic,Math,Motors,Sensors,Controllers,Commands" {
		t.Errorf("unexpected categories %s", got)
	}
}

func TestValidate(t *testing.T) {
	ws, err := document.Decode([]byte(`{"blocks":{"blocks":[
		{"type":"robot_init","inputs":{"DO":{"block":
			{"type":"set_pwm","id":"ok","fields":{"ID":1,"VALUE":0.5},"next":{"block":
			{"type":"set_pwm","id":"range","fields":{"ID":31,"VALUE":1.5},"next":{"block":
			{"type":"set_pwm","id":"step","fields":{"ID":1,"VALUE":0.123},"next":{"block":
			{"type":"init_pwm_motor","id":"enum","fields":{"PWM_PORT":1,"TYPE":"VICTOR"},"next":{"block":
			{"type":"unknown_thing","id":"u"}}}}}}}}}}}}]}}`))
	if err != nil {
		t.Fatalf("decode: %v", err)
	}

	got := map[string]int{}
	for _, v := range registry.Validate(ws) {
		got[v.BlockID+"."+v.Field]++
	}
	want := map[string]int{"range.ID": 1, "range.VALUE": 1, "step.VALUE": 1, "enum.TYPE": 1}
	if len(got) != len(want) {
		t.Fatalf("got violations %v, want %v", got, want)
	}
	for k := range want {
		if got[k] != 1 {
			t.Errorf("missing violation %s (got %v)", k, got)
		}
	}
}
