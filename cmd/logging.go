package cmd

import (
	"github.com/davehc/go-whitted-raytracer/log"
	"github.com/urfave/cli"
)

var logger = log.New("whitted")

func setupLogging(ctx *cli.Context) {
	if ctx.GlobalBool("v") {
		log.SetLevel(log.Info)
	}

	if ctx.GlobalBool("vv") {
		log.SetLevel(log.Debug)
	}
}
