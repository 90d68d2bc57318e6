// Command reed-demo exercises the value runtime end to end: it loads a
// set of host constants from a TOML file, registers a couple of native
// functions through the bridge, and dumps the resulting values.
package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/alecthomas/kong"

	"github.com/reed-lang/reed/pkg/bridge"
	"github.com/reed-lang/reed/pkg/value"
)

type cli struct {
	Constants string `help:"Path to a TOML file of constants to register." default:"constants.toml"`
}

// constantsFile is the shape of the TOML document cli.Constants points
// at: a flat table of named scalar constants.
type constantsFile struct {
	Constants map[string]interface{} `toml:"constants"`
}

func main() {
	var args cli
	kong.Parse(&args,
		kong.Name("reed-demo"),
		kong.Description("Load constants and native functions into the reed value runtime and dump them."),
		kong.UsageOnError(),
	)

	pool := value.NewPool()

	consts, err := loadConstants(args.Constants)
	if err != nil {
		fmt.Fprintln(os.Stderr, "reed-demo:", err)
		os.Exit(1)
	}

	env := make(map[string]value.Value, len(consts)+2)
	for name, v := range consts {
		env[name] = bridge.FromHost(pool, v)
	}

	env["add"] = bridge.Wrap(pool, func(a, b int64) int64 { return a + b })
	env["greet"] = bridge.Wrap(pool, func(p *value.Pool, name string) value.Value {
		return value.NewStr(p, []byte("hello, "+name), false)
	})

	for _, name := range sortedKeys(env) {
		fmt.Print(name, " = ")
		if err := value.Dump(env[name], os.Stdout, 2); err != nil {
			fmt.Fprintln(os.Stderr, "reed-demo: dump:", err)
			os.Exit(1)
		}
		fmt.Println()
	}
}

func loadConstants(path string) (map[string]interface{}, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return map[string]interface{}{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	var f constantsFile
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse error in %s: %w", path, err)
	}
	return f.Constants, nil
}

func sortedKeys(m map[string]value.Value) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j-1] > keys[j]; j-- {
			keys[j-1], keys[j] = keys[j], keys[j-1]
		}
	}
	return keys
}
