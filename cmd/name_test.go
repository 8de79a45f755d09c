package cmd

import (
	"testing"

	"github.com/eykd/spicy-go/bdd"
)

func TestNewNameCmd(t *testing.T) {
	tests := []struct {
		name string
		env  string
		args []string
		want string
	}{
		{
			name: "snake and camel case",
			args: []string{"Scenario_add_two_numbers", "ScenarioParseHTTPHeader"},
			want: "Add Two Numbers\nParse HTTP Header\n",
		},
		{
			name: "prefix flag",
			args: []string{"--prefix", "Spec", "SpecAppendItem"},
			want: "Append Item\n",
		},
		{
			name: "prefix from environment",
			env:  "Check",
			args: []string{"CheckFooBar"},
			want: "Foo Bar\n",
		},
		{
			name: "descriptions to method names",
			args: []string{"--method", "User can add an item.", "  "},
			want: "Scenario_user_can_add_an_item\nScenario_unnamed\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(bdd.EnvPrefix, tt.env)
			got, err := runCmd(NewNameCmd(), tt.args...)
			if err != nil {
				t.Fatalf("name error = %v", err)
			}
			if got != tt.want {
				t.Errorf("output = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNewNameCmd_RequiresArgs(t *testing.T) {
	if _, err := runCmd(NewNameCmd()); err == nil {
		t.Error("expected error with no arguments")
	}
}
