package main

//go-build: CGO_ENABLED=0

import (
	"flag"

	"github.com/golang/glog"

	"github.com/robotalks/cmdlink/pkg/cli/sh"
	fx "github.com/robotalks/cmdlink/pkg/framework"
	"github.com/robotalks/cmdlink/pkg/l0/comm"
	"github.com/robotalks/cmdlink/pkg/l1"
	"github.com/robotalks/cmdlink/pkg/l1/env"
)

var (
	mode     = "demo"
	interval = fx.DefaultInterval
)

// demoCommands are sent in order in every iteration of demo mode.
var demoCommands = []comm.Command{
	comm.Set{ID: 0x12, Message: comm.MsgB{Value: 12}, DeviceID: 0b001},
	comm.Get{ID: 0x12, Parameter: 12, DeviceID: 0b001},
}

func init() {
	env.SetupFlags()
	flag.StringVar(&mode, "mode", mode, "demo, menu or bridge")
	flag.DurationVar(&interval, "interval", interval, "Interval of demo iterations")
}

func requestStep(requester l1.Requester, cmd comm.Command) fx.Controller {
	return fx.ControlFunc(func(cc fx.ControlContext) error {
		rsp, err := requester.Request(cc.Context(), cmd)
		if err != nil {
			return err
		}
		glog.Infof("[%d] %v -> %v", cc.Iteration(), cmd, rsp)
		return nil
	})
}

func main() {
	flag.Parse()
	defer glog.Flush()

	e := env.NewConfig().MustNewEnv()
	defer e.Close()

	runner := fx.NewRunner().HandleSignals()
	switch mode {
	case "demo":
		loop := fx.NewLoop()
		loop.Interval = interval
		for _, cmd := range demoCommands {
			loop.Add(requestStep(e.Client, cmd))
		}
		runner.Go(fx.NamedRun("demo", loop))
	case "menu":
		sh.New(runner.Context, e.Client).Run()
		return
	case "bridge":
		upstreams, err := e.Config.Upstreams(e.Client)
		if err != nil {
			glog.Exit(err)
		}
		runner.Go(upstreams...)
	default:
		glog.Exitf("unknown mode %q", mode)
	}
	if err := runner.Wait(); err != nil {
		glog.Exit(err)
	}
}
