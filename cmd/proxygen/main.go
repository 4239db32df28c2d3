package main

import (
	"os"

	"github.com/3636adesh/spring-proxies/cobra"
	"github.com/3636adesh/spring-proxies/gen"
)

type ProxyGen struct {
	Root string `cobra:"root" short:"r" usage:"package directory to scan for @Proxy / @Delegate annotations"`
	Log  string `cobra:"log" usage:"annotation processor log level"`
}

func (g *ProxyGen) Run(_ *cobra.Command, _ []string) {
	root := g.Root
	if root == "" {
		root, _ = os.Getwd()
	}
	gen.Process(root, g.Log)
}

func main() {
	instance := &ProxyGen{Log: "info"}
	c := cobra.ICobraWrapper(instance, `{
		"Use":   "proxygen",
		"Short": "generate stand-in adapters for annotated contracts and concrete types",
		"Run":   "Run"
	}`)

	if err := c.Command().Execute(); err != nil {
		os.Exit(1)
	}
}
