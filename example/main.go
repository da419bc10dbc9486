package main

import (
	"fmt"
	"os"

	system "github.com/kildevaeld/go-system"
	"github.com/kildevaeld/rask"
	"github.com/kildevaeld/rask/httpcontext"
	"github.com/kildevaeld/rask/middlewares/logger"
	"github.com/kildevaeld/strong"
	"go.uber.org/zap"
)

func main() {
	if err := system.Run(wrappedMain); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err.Error())
	}
}

func wrappedMain(kill system.KillChannel) error {

	log, err := zap.NewDevelopment()
	if err != nil {
		return err
	}

	zap.ReplaceGlobals(log)

	server := rask.NewWithOptions(&rask.Options{
		Debug: true,
	})

	go func() {
		<-kill
		server.Close()
	}()

	server.Use(logger.Logger())

	server.Get("/", func(ctx *httpcontext.Context) error {
		// falls through to the next handler in the group
		return nil
	}, func(ctx *httpcontext.Context) error {
		return ctx.HTML("<h1>Hello, World</h1>")
	})

	server.Get("/world/([^/]+)", func(ctx *httpcontext.Context) error {
		return ctx.HTML(fmt.Sprintf("<h1>Hello %s</h1>", ctx.Params().At(0)))
	}).Get("/error", func(ctx *httpcontext.Context) error {
		return strong.NewHTTPError(strong.StatusUnauthorized, "test")
	})

	server.Use(func(err error, ctx *httpcontext.Context) error {
		zap.L().Warn("unhandled", zap.Error(err))
		return err
	})

	return server.Listen(":3000")
}
