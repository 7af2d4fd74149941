package maincmd_test

import (
	"testing"

	"github.com/mna/simplelisp/internal/maincmd"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	cases := []struct {
		desc  string
		args  []string
		flags map[string]bool
		err   string // "contains" match, empty means no error
	}{
		{"no command", nil, nil, "no command specified"},
		{"unknown command", []string{"frobnicate", "a.sla"}, nil, "unknown command: frobnicate"},
		{"compile missing path", []string{"compile"}, nil, "exactly one path"},
		{"compile too many paths", []string{"compile", "a.sla", "b.sla"}, nil, "exactly one path"},
		{"compile ok", []string{"compile", "a.sla"}, nil, ""},
		{"run ok", []string{"run", "a.sla"}, nil, ""},
		{"run2 ok", []string{"run2", "a.sla"}, nil, ""},
		{"repl ok", []string{"repl"}, nil, ""},
		{"repl with path", []string{"repl", "a.sla"}, nil, "no path argument"},
	}

	for _, c := range cases {
		t.Run(c.desc, func(t *testing.T) {
			var cmd maincmd.Cmd
			cmd.SetArgs(c.args)
			cmd.SetFlags(c.flags)

			err := cmd.Validate()
			if c.err == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			require.ErrorContains(t, err, c.err)
		})
	}
}

func TestValidateHelpAndVersionSkipCommand(t *testing.T) {
	var cmd maincmd.Cmd
	cmd.Help = true
	cmd.SetArgs(nil)
	require.NoError(t, cmd.Validate())

	cmd = maincmd.Cmd{Version: true}
	cmd.SetArgs(nil)
	require.NoError(t, cmd.Validate())
}
