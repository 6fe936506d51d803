package cmd

import (
	"github.com/urfave/cli"

	"github.com/davehc/go-whitted-raytracer/web/server"
)

// Serve starts the HTTP preview server.
func Serve(ctx *cli.Context) error {
	setupLogging(ctx)

	return server.NewServer(ctx.Int("port")).Start()
}
