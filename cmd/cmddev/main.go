package main

import (
	"flag"
	"time"

	"github.com/golang/glog"

	fx "github.com/robotalks/cmdlink/pkg/framework"
	"github.com/robotalks/cmdlink/pkg/l0/comm"
	"github.com/robotalks/cmdlink/pkg/l0/device"
)

var (
	registers     = device.DefaultCapacity
	txCapacity    = comm.DefaultTxCapacity
	statsInterval = 10 * time.Second
)

func init() {
	setupLinkFlags()
	flag.IntVar(&registers, "registers", registers, "Number of registers")
	flag.IntVar(&txCapacity, "tx-capacity", txCapacity, "Transmit queue size in bytes")
	flag.DurationVar(&statsInterval, "stats-interval", statsInterval, "Interval of logging link stats")
}

func main() {
	flag.Parse()
	defer glog.Flush()

	link, readTimeout, err := openLink()
	if err != nil {
		glog.Exitf("open link: %v", err)
	}
	f := comm.NewFIFO(link, device.NewRegisters(registers))
	f.TxCapacity = txCapacity
	f.ReadTimeout = readTimeout

	stats := fx.NewLoop(fx.ControlFunc(func(fx.ControlContext) error {
		st := f.Stats()
		glog.Infof("frames=%d commands=%d resends=%d parse-errors=%d overflows=%d dropped=%d",
			st.Frames, st.Commands, st.Resends, st.ParseErrors, st.Overflows, st.Dropped)
		return nil
	}))
	stats.Interval = statsInterval

	runner := fx.NewRunner().HandleSignals()
	runner.Go(fx.NamedRun("fifo", f), fx.NamedRun("stats", stats))
	if err := runner.Wait(); err != nil {
		glog.Exit(err)
	}
}
