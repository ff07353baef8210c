package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"strings"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
)

var (
	interval   = flag.Int("k", 7, "Work interval in days; one day per interval is taken off")
	inputPath  = flag.String("input", "-", "File of daily revenues separated by whitespace or commas, - for stdin")
	listenAddr = flag.String("listen", "", "Serve the HTTP API on this address instead of printing one schedule")
	watch      = flag.Bool("watch", false, "With -listen, replan whenever -input changes")
	planName   = flag.String("plan", "default", "Plan name used for -input in server mode")
	history    = flag.Int("history", defaultHistory, "Lifecycle events kept per planner")
	verbosity  = flag.Int("v", 0, "Log verbosity")
)

func printSchedule(w io.Writer, revenues []float64, k int) error {
	schedule, err := MaximizeProfits(revenues, k)
	if err != nil {
		return err
	}
	best, err := MaxIntervalProfit(revenues, k)
	if err != nil {
		return err
	}

	days := make([]string, len(schedule.Work))
	for i, work := range schedule.Work {
		if work {
			days[i] = "work"
		} else {
			days[i] = "off"
		}
	}

	fmt.Fprintf(w, "schedule: [%s]\n", strings.Join(days, " "))
	fmt.Fprintf(w, "off days: %v\n", schedule.OffDays())
	fmt.Fprintf(w, "profit: %g\n", schedule.Profit)
	fmt.Fprintf(w, "interval profit: %g\n", best)
	return nil
}

func serve(ctx context.Context, logger logr.Logger) error {
	broker := NewBroker()
	planners := NewPlanners(broker, *history)

	if *watch {
		if *inputPath == "-" {
			return fmt.Errorf("-watch needs a file for -input")
		}
		go func() {
			err := watchInput(ctx, logger.WithName("watch"), planners, *planName, *inputPath, *interval)
			if err != nil && ctx.Err() == nil {
				logger.Error(err, "watcher stopped")
			}
		}()
	}

	return webserver(*listenAddr, logger.WithName("http"), broker, planners)
}

func main() {
	flag.Parse()

	stdr.SetVerbosity(*verbosity)
	logger := stdr.New(log.New(os.Stderr, "", log.LstdFlags))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if *listenAddr != "" {
		if err := serve(ctx, logger); err != nil {
			logger.Error(err, "server exited")
			os.Exit(1)
		}
		return
	}

	revenues, err := ReadRevenues(*inputPath)
	if err != nil {
		logger.Error(err, "reading revenues", "input", *inputPath)
		os.Exit(1)
	}
	logger.V(1).Info("read revenues", "days", len(revenues), "k", *interval)

	if err := printSchedule(os.Stdout, revenues, *interval); err != nil {
		logger.Error(err, "scheduling failed")
		os.Exit(1)
	}
}
