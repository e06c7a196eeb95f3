package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/quenio/agerun-go/internal/agent"
	"github.com/quenio/agerun-go/internal/method"
	"github.com/quenio/agerun-go/internal/persist"
	"github.com/quenio/agerun-go/internal/rerrors"
	"github.com/quenio/agerun-go/internal/value"
	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [dir]",
	Short: "Pretty-print a persisted agency.agerun",
	Long: `Load agency.agerun from dir (default ".") and print each agent's
id, bound method, and memory map as indented JSON, via tidwall/pretty.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func runInspect(_ *cobra.Command, args []string) error {
	dir := "."
	if len(args) == 1 {
		dir = args[0]
	}

	m := method.New()
	ag := agent.New()
	log := rerrors.NewLog()
	if err := persist.Load(dir, m, ag, log); err != nil {
		return err
	}
	if !log.Empty() {
		fmt.Fprint(os.Stderr, log.Format())
	}

	for _, a := range sortedByID(ag.All()) {
		fmt.Printf("agent %d  method=%s %s\n", a.ID, a.MethodName, a.Version)
		raw := valueToJSON(a.Memory)
		fmt.Println(string(pretty.Pretty([]byte(raw))))
	}
	return nil
}

func sortedByID(agents []*agent.Agent) []*agent.Agent {
	out := make([]*agent.Agent, len(agents))
	copy(out, agents)
	for i := 1; i < len(out); i++ {
		for j := i; j > 0 && out[j-1].ID > out[j].ID; j-- {
			out[j-1], out[j] = out[j], out[j-1]
		}
	}
	return out
}

// valueToJSON renders a Value's map contents as JSON text for display
// only — a minimal, import-local counterpart to internal/value's gjson/
// sjson projection, kept separate since the CLI has no need for the
// round-trip write-back that package maintains.
func valueToJSON(v *value.Value) string {
	if v == nil {
		return "null"
	}
	switch v.Kind() {
	case value.KindInt:
		return strconv.FormatInt(v.AsInt(), 10)
	case value.KindDouble:
		return strconv.FormatFloat(v.AsDouble(), 'g', -1, 64)
	case value.KindString:
		b, _ := json.Marshal(v.AsString())
		return string(b)
	case value.KindMap:
		var parts []string
		for _, k := range v.Keys() {
			child, _ := v.MapGet(k)
			keyJSON, _ := json.Marshal(k)
			parts = append(parts, string(keyJSON)+":"+valueToJSON(child))
		}
		return "{" + strings.Join(parts, ",") + "}"
	case value.KindList:
		var parts []string
		scratch := v.DeepCopy()
		for i := 0; i < v.ListCount(); i++ {
			parts = append(parts, valueToJSON(scratch.ListRemoveFirst()))
		}
		return "[" + strings.Join(parts, ",") + "]"
	default:
		return "null"
	}
}
