package cmd

import (
	"fmt"
	"os"

	"github.com/quenio/agerun-go/internal/agent"
	"github.com/quenio/agerun-go/internal/method"
	"github.com/quenio/agerun-go/internal/persist"
	"github.com/quenio/agerun-go/internal/rerrors"
	"github.com/quenio/agerun-go/internal/value"
	"github.com/spf13/cobra"
	"github.com/tidwall/gjson"
)

var (
	sendTo   int64
	sendFile string
	sendDir  string
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Enqueue a JSON message onto a persisted agent",
	Long: `Decode the JSON document in --file (via gjson) into a Value and
append it to the queue of agent --to inside the persisted agency in --dir,
so a later "agerun run" resumes processing it.`,
	RunE: runSend,
}

func init() {
	rootCmd.AddCommand(sendCmd)
	sendCmd.Flags().Int64Var(&sendTo, "to", 0, "target agent id")
	sendCmd.Flags().StringVar(&sendFile, "file", "", "path to a JSON message document")
	sendCmd.Flags().StringVar(&sendDir, "dir", ".", "directory holding methodology.agerun/agency.agerun")
}

func runSend(_ *cobra.Command, _ []string) error {
	if sendTo == 0 || sendFile == "" {
		return fmt.Errorf("send: --to and --file are required")
	}

	data, err := os.ReadFile(sendFile)
	if err != nil {
		return fmt.Errorf("send: read %s: %w", sendFile, err)
	}
	msg := valueFromJSON(gjson.ParseBytes(data))

	m := method.New()
	ag := agent.New()
	log := rerrors.NewLog()
	if err := persist.Load(sendDir, m, ag, log); err != nil {
		return err
	}
	if !log.Empty() {
		fmt.Fprint(os.Stderr, log.Format())
	}

	if !ag.Send(sendTo, msg) {
		return fmt.Errorf("send: no such agent %d", sendTo)
	}
	return persist.Save(sendDir, m, ag)
}

// valueFromJSON decodes a gjson.Result into a Value, the same int/double
// disambiguation internal/value uses for its own JSON projection.
func valueFromJSON(r gjson.Result) *value.Value {
	switch r.Type {
	case gjson.String:
		return value.NewString(r.Str)
	case gjson.Number:
		for _, c := range r.Raw {
			if c == '.' || c == 'e' || c == 'E' {
				return value.NewDouble(r.Num)
			}
		}
		return value.NewInt(r.Int())
	case gjson.True, gjson.False:
		if r.Bool() {
			return value.NewInt(1)
		}
		return value.NewInt(0)
	case gjson.JSON:
		if r.IsArray() {
			out := value.NewList()
			r.ForEach(func(_, elem gjson.Result) bool {
				out.ListAppend(valueFromJSON(elem))
				return true
			})
			return out
		}
		out := value.NewMap()
		r.ForEach(func(key, elem gjson.Result) bool {
			out.MapSet(key.Str, valueFromJSON(elem))
			return true
		})
		return out
	default:
		return nil
	}
}
