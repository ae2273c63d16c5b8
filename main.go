package main

import (
	"github.com/samber/lo"
	"github.com/vidqueue/vidqueue/cmd"
	"github.com/vidqueue/vidqueue/config"
	"github.com/vidqueue/vidqueue/log"
)

func main() {
	lo.Must0(config.Setup())
	lo.Must0(log.Setup())

	go log.CollectGarbage()

	cmd.Execute()
}
