// Command eecsim runs the embedded-course simulator: mock GPIO, ADC and
// I²C peripherals behind the demo screens, with an optional diagnostics
// HTTP server on the side.
package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"eecsim-go/config"
	"eecsim-go/diag"
	"eecsim-go/drivers/aht20"
	"eecsim-go/errcode"
	"eecsim-go/event"
	"eecsim-go/hal/gpio"
	"eecsim-go/hal/sensors"
	"eecsim-go/hal/simi2c"
	"eecsim-go/logx"
	"eecsim-go/metrics"
	"eecsim-go/services/buttons"
	"eecsim-go/services/sensorfeed"
	"eecsim-go/services/sysinfo"
	"eecsim-go/services/wifi"
	"eecsim-go/ui"
)

const version = "0.3.0"

// sysinfoEvery is how many frames pass between host metric collections.
const sysinfoEvery = 40

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "eecsim",
		Short: "EEC embedded-course simulator",
		Long:  "eecsim runs the course's demo screens against mock hardware on the PC.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}
	cmd.AddCommand(newRunCmd())
	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newVersionCmd())
	return cmd
}

func newRunCmd() *cobra.Command {
	var diagAddr string
	cmd := &cobra.Command{
		Use:   "run [demo]",
		Short: "Run the simulator, optionally starting on a named demo",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if len(args) == 1 {
				cfg.Demo = args[0]
			}
			if diagAddr != "" {
				cfg.DiagAddr = diagAddr
			}
			return run(cfg)
		},
	}
	cmd.Flags().StringVar(&diagAddr, "diag", "", "diagnostics HTTP listen address (overrides config)")
	return cmd
}

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the available demo screens",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range ui.DemoNames() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the simulator version",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "eecsim %s\n", version)
		},
	}
}

func run(cfg config.Config) error {
	if !validDemo(cfg.Demo) {
		return &errcode.E{C: errcode.UnknownDemo, Msg: cfg.Demo}
	}
	log := logx.New(logx.Config{Level: logx.ParseLevel(cfg.LogLevel)})
	bus := event.New(event.Config{
		QueueSize:      cfg.QueueSize,
		MaxSubscribers: cfg.MaxSubscribers,
	})

	g := gpio.New()
	sn := sensors.New()

	i2c := simi2c.NewBus()
	i2c.Attach(aht20.Address, simi2c.NewAHT20Model(func() (float32, float32) {
		return sn.Temperature(), sn.Humidity()
	}, 2))
	aht := aht20.New(i2c)
	aht.Configure(aht20.Config{})

	si := sysinfo.New(bus, log, sysinfoEvery)
	app := &ui.App{
		Bus:     bus,
		Log:     log,
		GPIO:    g,
		Sensors: sn,
		Feed:    sensorfeed.New(sn, bus),
		Buttons: buttons.New(g, bus),
		SysInfo: si,
		WiFi:    wifi.New(bus, log, time.Now().UnixNano()),
		AHT:     aht,
	}

	if cfg.DiagAddr != "" {
		reg := metrics.NewRegistry(bus, log)
		srv := diag.NewServer(log, reg, func() any {
			snap := si.Snapshot()
			st := bus.Stats()
			return map[string]any{
				"run_id":    snap.RunID,
				"demo":      cfg.Demo,
				"queue_len": st.QueueLen,
				"published": st.Published,
				"dropped":   st.Dropped,
			}
		})
		if err := srv.Attach(bus); err != nil {
			return err
		}
		go func() {
			log.Infof("diag: listening on %s", cfg.DiagAddr)
			if err := http.ListenAndServe(cfg.DiagAddr, srv); err != nil {
				log.Errorf("diag: %v", err)
			}
		}()
	}

	log.Infof("eecsim %s starting on demo %q", version, cfg.Demo)
	return ui.Run(app, cfg.Demo, time.Duration(cfg.TickMS)*time.Millisecond)
}

func validDemo(name string) bool {
	for _, n := range ui.DemoNames() {
		if n == name {
			return true
		}
	}
	return false
}
