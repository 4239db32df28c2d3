// Package cobra binds command metadata and flags onto spf13/cobra commands
// from a JSON annotation payload plus struct tags, so command beans stay
// plain structs.
package cobra

import (
	"reflect"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/tidwall/gjson"
)

type Command = cobra.Command

type ICobra interface {
	Command() *cobra.Command
}

type singleCobra struct {
	cmd *cobra.Command
}

func (c *singleCobra) Command() *cobra.Command {
	return c.cmd
}

var (
	kindSetters = map[reflect.Kind]func(*pflag.FlagSet, reflect.Value, string, string, string){
		reflect.Int: func(flags *pflag.FlagSet, value reflect.Value, field, short, usage string) {
			wrap[int](value, elseOf(short, flags.IntVar, flags.IntVarP), field, short, usage, int(value.Int()))
		},
		reflect.Int64: func(flags *pflag.FlagSet, value reflect.Value, field, short, usage string) {
			wrap[int64](value, elseOf(short, flags.Int64Var, flags.Int64VarP), field, short, usage, value.Int())
		},
		reflect.Uint: func(flags *pflag.FlagSet, value reflect.Value, field, short, usage string) {
			wrap[uint](value, elseOf(short, flags.UintVar, flags.UintVarP), field, short, usage, uint(value.Uint()))
		},
		reflect.Float64: func(flags *pflag.FlagSet, value reflect.Value, field, short, usage string) {
			wrap[float64](value, elseOf(short, flags.Float64Var, flags.Float64VarP), field, short, usage, value.Float())
		},
		reflect.String: func(flags *pflag.FlagSet, value reflect.Value, field, short, usage string) {
			wrap[string](value, elseOf(short, flags.StringVar, flags.StringVarP), field, short, usage, value.String())
		},
		reflect.Bool: func(flags *pflag.FlagSet, value reflect.Value, field, short, usage string) {
			wrap[bool](value, elseOf(short, flags.BoolVar, flags.BoolVarP), field, short, usage, value.Bool())
		},
	}
)

func elseOf(str string, a1, a2 interface{}) interface{} {
	if strings.TrimSpace(str) == "" {
		return a1
	}
	return a2
}

func wrap[T any](value reflect.Value, f interface{}, field, short, usage string, def T) {
	if !value.CanSet() {
		return
	}
	exec := reflect.ValueOf(f)
	values := []reflect.Value{value.Addr(), reflect.ValueOf(field)}

	if short != "" {
		values = append(values, reflect.ValueOf(short))
	}

	values = append(values, reflect.ValueOf(def), reflect.ValueOf(usage))
	exec.Call(values)
}

// ICobraWrapper builds a command around instance: Use/Short/Long/Version/
// Example and the Run method name come from the JSON config, flags from
// `cobra:"name[,per]"` struct tags.
func ICobraWrapper(instance interface{}, config string, children ...ICobra) (c ICobra) {
	cmd := &cobra.Command{}
	c = &singleCobra{cmd}
	for _, it := range children {
		cmd.AddCommand(it.Command())
	}

	parser := gjson.Parse(config)
	bindField(parser, "Use", func(value string) { cmd.Use = value })
	bindField(parser, "Short", func(value string) { cmd.Short = value })
	bindField(parser, "Long", func(value string) { cmd.Long = value })
	bindField(parser, "Version", func(value string) { cmd.Version = value })
	bindField(parser, "Example", func(value string) { cmd.Example = value })

	value := reflect.ValueOf(instance)
	bindMethod(parser, value, "Run", func(value func(*cobra.Command, []string)) { cmd.Run = value })

	bindTag(cmd, value)
	return
}

func bindField(parser gjson.Result, field string, f func(string)) {
	if result := parser.Get(field); result.Exists() {
		if field = result.String(); field != "" {
			f(field)
		}
	}
}

func bindMethod(parser gjson.Result, value reflect.Value, field string, f func(func(*cobra.Command, []string))) {
	if result := parser.Get(field); result.Exists() {
		if field = result.String(); field == "" {
			return
		}

		method := value.MethodByName(result.String())
		if !method.IsValid() {
			panic("`" + result.String() + "` method is not exist")
		}
		f(func(cmd *cobra.Command, args []string) {
			method.Call([]reflect.Value{reflect.ValueOf(cmd), reflect.ValueOf(args)})
		})
	}
}

func bindTag(cmd *cobra.Command, value reflect.Value) {
	flags := cmd.Flags()
	if value.Kind() == reflect.Ptr {
		value = value.Elem()
	}
	for i := range value.NumField() {
		lookup, ok := value.Type().Field(i).Tag.Lookup("cobra")
		if !ok || lookup == "" {
			continue
		}

		name, scope := splitTag(lookup)
		if name == "" {
			continue
		}

		short, _ := value.Type().Field(i).Tag.Lookup("short")
		usage, _ := value.Type().Field(i).Tag.Lookup("usage")

		if scope == "per" {
			flags = cmd.PersistentFlags()
		}

		setter(flags, value.Field(i), name, short, usage)
	}
}

func splitTag(lookup string) (name, scope string) {
	parts := strings.SplitN(lookup, ",", 2)
	name = strings.TrimSpace(parts[0])
	if len(parts) > 1 {
		scope = strings.TrimSpace(parts[1])
	}
	return
}

func setter(flags *pflag.FlagSet, value reflect.Value, field, short, usage string) {
	if exec, ok := kindSetters[value.Kind()]; ok {
		exec(flags, value, field, short, usage)
	}
}
