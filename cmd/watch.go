package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/etnz/duoledger"
	"github.com/google/subcommands"
)

type watchCmd struct {
	every time.Duration
}

func (*watchCmd) Name() string     { return "watch" }
func (*watchCmd) Synopsis() string { return "run the sync poller until interrupted" }
func (*watchCmd) Usage() string {
	return `dl watch [-every <interval>]

  Keeps the local ledger in sync: pulls from the relay on every interval and
  whenever another process on this machine writes the ledger. Send SIGHUP to
  force an immediate sync pass. Stop with Ctrl-C.
`
}

func (w *watchCmd) SetFlags(f *flag.FlagSet) {
	f.DurationVar(&w.every, "every", duoledger.DefaultPollInterval, "Interval between sync passes.")
}

func (w *watchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	db, err := OpenDB()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return subcommands.ExitFailure
	}

	if !db.Linked() {
		fmt.Fprintln(os.Stderr, "Error: not linked to any sync session. Run 'dl sync-start' or 'dl sync-join' first.")
		return subcommands.ExitFailure
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	poller := duoledger.NewPoller(db, w.every)

	// SIGHUP forces an immediate pass, like a window regaining focus.
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)
	go func() {
		for range hup {
			poller.Trigger()
		}
	}()

	// Changes written by other processes on this machine also trigger a pass,
	// so a local edit propagates to the relay peer within one interval.
	unsubscribe := db.Subscribe(func() { poller.Trigger() })
	defer unsubscribe()
	go db.Store().Notifier().Watch(ctx, w.every)

	fmt.Printf("Watching sync session %s (every %v)\n", db.SyncKey(), w.every)
	poller.Run(ctx)
	db.Wait()
	fmt.Println("Stopped.")
	return subcommands.ExitSuccess
}
