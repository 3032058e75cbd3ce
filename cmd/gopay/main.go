package main

import (
	"fmt"
	"os"

	"github.com/mwantia/gopay/cmd/gopay/cli"
	"github.com/mwantia/gopay/cmd/gopay/cli/payment"
	"github.com/mwantia/gopay/cmd/gopay/cli/setup"
)

var (
	version = "0.0.1-dev"
	commit  = "main"
)

func main() {
	info := cli.VersionInfo{
		Version: version,
		Commit:  commit,
	}
	root := cli.NewRootCommand(info)

	root.AddCommand(cli.NewVersionCommand(info))

	root.AddCommand(payment.NewMethodsCommand())
	root.AddCommand(payment.NewStoresCommand())

	root.AddCommand(setup.NewDatabaseCommand())
	root.AddCommand(setup.NewConfigCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
