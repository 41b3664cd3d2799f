package commands

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"github.com/agiangrant/orrery"
	"github.com/agiangrant/orrery/config"
	"github.com/agiangrant/orrery/input"
	"github.com/agiangrant/orrery/timer"
)

var (
	runBackend string
	runFrames  uint64
	runTick    time.Duration
	runWatch   bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Open a window and echo its events",
	Long: `Open a window on the configured backend and print every event the
runtime delivers. Escape or closing the window quits.

The mobile backend only receives events from an x/mobile app loop, so on
the command line it runs with an empty event stream.`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringVarP(&runBackend, "backend", "b", "", "sdl, x11, mobile or headless (default from config)")
	runCmd.Flags().Uint64Var(&runFrames, "frames", 0, "quit after this many frames (0 runs until quit)")
	runCmd.Flags().DurationVar(&runTick, "tick", 0, "print a line at this interval from the scheduler")
	runCmd.Flags().BoolVar(&runWatch, "watch", false, "reload key repeat and logging when the config file changes")
	rootCmd.AddCommand(runCmd)
}

// lockedWriter serializes writes from the frame loop and scheduler workers.
type lockedWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (l *lockedWriter) printf(format string, args ...any) {
	l.mu.Lock()
	defer l.mu.Unlock()
	fmt.Fprintf(l.w, format+"\n", args...)
}

func runRun(cmd *cobra.Command, _ []string) error {
	name := runBackend
	if name == "" {
		name = loaded.Backend.Name
	}
	b, err := newBackend(name)
	if err != nil {
		return err
	}

	var schedOpts []timer.Option
	if loaded.Runtime.DriftCorrection {
		schedOpts = append(schedOpts, timer.WithDriftCorrection())
	}
	if loaded.Runtime.MaxScheduled > 0 {
		schedOpts = append(schedOpts, timer.WithMaxConcurrent(loaded.Runtime.MaxScheduled))
	}

	rt := orrery.New(b,
		orrery.WithConfig(loaded.BackendConfig()),
		orrery.WithFrameDelay(loaded.FrameDelay()),
		orrery.WithKeyRepeat(loaded.Runtime.KeyRepeat),
		orrery.WithSchedulerOptions(schedOpts...),
	)
	defer rt.Close()

	out := &lockedWriter{w: cmd.OutOrStdout()}
	echo(rt, out)

	var frames uint64
	rt.OnDraw(func() {
		frames++
		if runFrames > 0 && frames >= runFrames {
			rt.RequestQuit()
		}
	})
	if runTick > 0 {
		rt.SetInterval(runTick, func() { out.printf("tick") })
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	if runWatch && cfgFile != "" {
		errOut := cmd.ErrOrStderr()
		err := watchConfig(ctx, cfgFile, func(cfg config.AppConfig) {
			rt.SetKeyRepeat(cfg.Runtime.KeyRepeat)
			orrery.SetLogger(newLogger(errOut, cfg.Log))
			out.printf("config reloaded")
		})
		if err != nil {
			return err
		}
	}

	if err := rt.StartContext(ctx, nil); err != nil {
		return err
	}
	out.printf("frames %d", rt.Stats().Frames)
	return nil
}

// echo prints one line per callback.
func echo(rt *orrery.Runtime, out *lockedWriter) {
	rt.OnStartup(func() {
		w, h := rt.WindowSize()
		out.printf("startup %dx%d", w, h)
	})
	rt.OnQuit(func() { out.printf("quit") })
	rt.OnResize(func(w, h int) { out.printf("resize %dx%d", w, h) })
	rt.OnVisible(func(v bool) { out.printf("visible %t", v) })
	rt.OnFocus(func(f bool) { out.printf("focus %t", f) })
	rt.OnMoved(func(x, y int) { out.printf("moved %d,%d", x, y) })
	rt.OnKeyPressed(func(k input.Key, mods input.Mod, repeat bool) {
		out.printf("key down %s mods=%s repeat=%t", k, mods, repeat)
		if k == input.KeyEscape {
			rt.RequestQuit()
		}
	})
	rt.OnKeyReleased(func(k input.Key) { out.printf("key up %s", k) })
	rt.OnTextInput(func(text string) { out.printf("text %q", text) })
	rt.OnTextEdited(func(text string, start, length int) {
		out.printf("edit %q start=%d length=%d", text, start, length)
	})
	rt.OnMouseMoved(func(x, y, dx, dy int) { out.printf("mouse move %d,%d delta %d,%d", x, y, dx, dy) })
	rt.OnMousePressed(func(b input.MouseButton, x, y, clicks int) {
		out.printf("mouse down %s %d,%d clicks=%d", b, x, y, clicks)
	})
	rt.OnMouseReleased(func(b input.MouseButton, x, y, clicks int) {
		out.printf("mouse up %s %d,%d clicks=%d", b, x, y, clicks)
	})
	rt.OnWheelMoved(func(dx, dy int) { out.printf("wheel %d,%d", dx, dy) })
	rt.OnMouseFocus(func(inside bool) { out.printf("mouse focus %t", inside) })
	rt.OnFileDropped(func(path string) { out.printf("file %s", path) })
	rt.OnDirectoryDropped(func(path string) { out.printf("directory %s", path) })
}
