// Command tusl runs the tusl scripting engine against a file or standard
// input, falling into an interactive prompt when no file is given.
//
// It deliberately does not go looking for an rc file or offer a curses
// front end: those are host concerns, not core ones, and an embedder that
// wants either builds it on top of the library in this module.
package main

import (
	"context"
	"flag"
	"os"
	"time"

	"github.com/tuslvm/tusl"
	"github.com/tuslvm/tusl/internal/logio"
	"github.com/tuslvm/tusl/internal/panicrec"
)

func main() {
	var (
		trace   bool
		dump    bool
		timeout time.Duration
	)
	flag.BoolVar(&trace, "trace", false, "enable trace logging")
	flag.BoolVar(&dump, "dump", false, "print a VM dump after execution")
	flag.DurationVar(&timeout, "timeout", 0, "abort after the given duration")
	flag.Parse()

	log := logio.Logger{}
	log.SetOutput(os.Stderr)
	defer func() { os.Exit(log.ExitCode()) }()

	ctx := context.Background()
	if timeout != 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	opts := []tusl.Option{
		tusl.WithOutputFile("<stdout>", os.Stdout),
		tusl.WithContext(ctx),
	}
	if trace {
		opts = append(opts, tusl.WithLogf(log.Leveledf("TRACE")))
	}
	vm := tusl.New(opts...)
	vm.InstallStandardWords()
	vm.InstallUnsafeWords()
	if trace {
		vm.EnableTracing()
	}
	if dump {
		lw := &logio.Writer{Logf: log.Leveledf("DUMP")}
		defer lw.Close()
		defer vm.Dump(lw)
	}

	err := panicrec.Run("tusl", func() error { return run(vm) })
	var fatal tusl.FatalError
	switch {
	case errFatal(err, &fatal):
		log.Errorf("%s", fatal.Error())
	case err != nil:
		log.ErrorIf(err)
	}
}

func run(vm *tusl.VM) error {
	if flag.NArg() > 0 {
		return vm.Load(flag.Arg(0))
	}
	vm.SetInputFile("<stdin>", os.Stdin)
	vm.InteractiveLoop()
	return nil
}

func errFatal(err error, fatal *tusl.FatalError) bool {
	for err != nil {
		if f, ok := err.(tusl.FatalError); ok {
			*fatal = f
			return true
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return false
		}
		err = u.Unwrap()
	}
	return false
}
