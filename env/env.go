package env

import (
	"bytes"
	"os"

	"github.com/3636adesh/spring-proxies/marker"
	"github.com/spf13/viper"
)

type Environment struct {
	Config *viper.Viper
	Args   []string

	Env  []string
	path string
}

// Interception is one configured marker declaration. The table is a list,
// not a map, because viper folds map keys to lower case and type names are
// case-sensitive.
type Interception struct {
	Type       string   `mapstructure:"type"`
	Operations []string `mapstructure:"operations"`
}

func New() (*Environment, error) {
	return NewWithPath("config.yaml")
}

func NewWithPath(path string) (env *Environment, err error) {
	config, err := os.ReadFile(path)
	if err != nil {
		return
	}

	vip := viper.New()
	vip.SetConfigType("yaml")
	if err = vip.ReadConfig(bytes.NewReader(config)); err != nil {
		return
	}

	env = &Environment{
		path:   path,
		Env:    os.Environ(),
		Args:   os.Args[1:],
		Config: vip,
	}
	return
}

// Interceptions returns the declarative marker table:
//
//	interception:
//	  - type: "*main.StandaloneCustomerService"
//	    operations: [Create]
func (env *Environment) Interceptions() (table []Interception, err error) {
	err = env.Config.UnmarshalKey("interception", &table)
	return
}

// LoadMarkers installs the configured marker table into the registry. It
// belongs in the bootstrap phase, before any bean is post-processed.
func (env *Environment) LoadMarkers() (err error) {
	table, err := env.Interceptions()
	if err != nil {
		return
	}

	for _, it := range table {
		marker.RegNamed(it.Type, it.Operations...)
	}
	return
}
