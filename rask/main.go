package main

import (
	"fmt"
	"net/http"
	"os"

	system "github.com/kildevaeld/go-system"
	"github.com/kildevaeld/rask"
	"github.com/kildevaeld/rask/middlewares/logger"
	"github.com/kildevaeld/rask/mountables/filesystem"
	"github.com/spf13/pflag"
	"go.uber.org/zap"
)

func main() {

	if err := system.Run(wrappedMain); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
	}

}

func wrappedMain(kill system.KillChannel) error {

	address := pflag.StringP("address", "H", ":3000", "address")
	debug := pflag.BoolP("debug", "d", false, "debug")

	pflag.Parse()

	if *debug {
		log, err := zap.NewDevelopment()
		if err != nil {
			return err
		}

		zap.ReplaceGlobals(log)
	}

	server := rask.NewWithOptions(&rask.Options{
		Debug: *debug,
	})

	go func() {
		<-kill
		server.Close()
	}()

	cwd, err := os.Getwd()
	if err != nil {
		return err
	}

	server.Use(logger.Logger())
	server.Use(filesystem.New(http.Dir(cwd)))

	zap.L().Info("Started server and listening", zap.String("address", *address))
	return server.Listen(*address)
}
