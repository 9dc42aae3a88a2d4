package main

import (
	"context"
	"flag"
	"fmt"
	"net/url"
	"os"
	"os/signal"
	"path"
	"syscall"
	"time"

	"github.com/mgutz/logxi" // Using a forked copy of this package results in build issues

	"github.com/go-stack/stack"
	"github.com/karlmutch/errors"

	"golang.org/x/sync/errgroup"

	lightweaver "github.com/Oelderoth/LightWeaver-Module"
	"github.com/Oelderoth/LightWeaver-Module/scene"
	"github.com/Oelderoth/LightWeaver-Module/version"

	"github.com/karlmutch/envflag" // Forked copy of https://github.com/GoBike/envflag
)

var (
	logger = logxi.New("lightweaver")

	verbose    = flag.Bool("v", false, "When enabled will print internal logging for this tool")
	opcServer  = flag.String("opc-server", "", "host:port of the fadecandy server to send frames to, when empty frames are not sent")
	opcChannel = flag.Uint("opc-channel", 0, "OPC channel used when sending frames to the fadecandy server")
	pixels     = flag.Int("pixels", 8, "The number of pixels on the LED strip")
	brightness = flag.Uint("brightness", 255, "The brightness used until a scene changes it, 0 to 255")
	sceneURL   = flag.String("scene", "", "file:// or http:// URL of the scene document to display")
	poll       = flag.Duration("poll", time.Second, "The interval at which the scene document is checked for changes")
	interval   = flag.Duration("interval", 10*time.Millisecond, "The interval between iterations of the render loop")
	preview    = flag.Bool("preview", false, "When enabled will render the pixels on the terminal using 24 bit color")
	driverName = flag.String("driver", driverOPC, "The driver used to display the strip, 'opc' sends frames to the fadecandy server, 'log' logs color changes")
)

const (
	driverOPC = "opc"
	driverLog = "log"
)

func usage() {
	fmt.Fprintln(os.Stderr, path.Base(os.Args[0]))
	fmt.Fprintln(os.Stderr, "usage: ", os.Args[0], "[options]       scene → LightWeaver → OPC      ", version.GitHash, "    ", version.BuildTime)
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "lightweaver animates a strip of LEDs attached to OPC based USB fadecandy boards from a scene document")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Options:")
	fmt.Fprintln(os.Stderr, "")
	flag.PrintDefaults()
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Environment Variables:")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "options can also be extracted from environment variables by changing dashes '-' to underscores and using upper case.")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "log levels are handled by the LOGXI env variables, these are documented at https://github.com/mgutz/logxi")
}

func init() {
	flag.Usage = usage
}

func main() {

	// Parse the CLI flags
	if !flag.Parsed() {
		envflag.Parse()
	}

	// Debug logging is only turned on when the verbose flag is set, otherwise the LOGXI
	// environment variables decide
	//
	if *verbose {
		logger.SetLevel(logxi.LevelDebug)
	}

	logger.Debug(fmt.Sprintf("%s built at %s, against commit id %s\n", os.Args[0], version.BuildTime, version.GitHash))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(-1)
	}
}

func validateFlags() (sceneLoc *url.URL, err errors.Error) {
	if *pixels < 1 || *pixels > 0xFFFF/3 {
		return nil, errors.New("the pixel count must be between 1 and 21845").With("pixels", *pixels).With("stack", stack.Trace().TrimRuntime())
	}
	if *brightness > 255 {
		return nil, errors.New("the brightness must be between 0 and 255").With("brightness", *brightness).With("stack", stack.Trace().TrimRuntime())
	}
	if *opcChannel > 255 {
		return nil, errors.New("the OPC channel must be between 0 and 255").With("channel", *opcChannel).With("stack", stack.Trace().TrimRuntime())
	}
	if *interval <= 0 {
		return nil, errors.New("the render interval must be positive").With("interval", *interval).With("stack", stack.Trace().TrimRuntime())
	}
	if *driverName != driverOPC && *driverName != driverLog {
		return nil, errors.New("the driver must be one of opc or log").With("driver", *driverName).With("stack", stack.Trace().TrimRuntime())
	}
	if len(*sceneURL) == 0 {
		return nil, nil
	}
	sceneLoc, errGo := url.Parse(*sceneURL)
	if errGo != nil {
		return nil, errors.Wrap(errGo).With("url", *sceneURL).With("stack", stack.Trace().TrimRuntime())
	}
	return sceneLoc, nil
}

func run(ctx context.Context) (err errors.Error) {

	sceneLoc, err := validateFlags()
	if err != nil {
		return err
	}

	quitC := make(chan struct{})
	errorC := make(chan errors.Error, 1)

	// A failure in any of the goroutines below cancels ctx and stops the rest
	g, ctx := errgroup.WithContext(ctx)

	updateC := make(chan *lightweaver.Update, 1)

	core := lightweaver.NewCore(startDriver(g, *driverName, *pixels, errorC, quitC), *pixels,
		lightweaver.WithBrightness(uint8(*brightness)),
		lightweaver.WithLogger(logger))
	core.AddPlugin(lightweaver.NewSourcePlugin(updateC))

	g.Go(func() error {
		lightweaver.Run(quitC, core, *interval, logger)
		return nil
	})

	if sceneLoc != nil {
		docC := make(chan *scene.Document, 1)
		watcher := scene.NewWatcher(*sceneLoc, *poll, docC, errorC)
		g.Go(func() error {
			if err := watcher.Run(quitC); err != nil {
				return err
			}
			return nil
		})
		g.Go(func() error {
			relayScenes(docC, updateC, quitC)
			return nil
		})
	} else {
		logger.Warn("no scene was specified, the strip will remain dark")
	}

	// Errors from the background goroutines are logged until a signal is received,
	// or one of the goroutines fails, at which point everything is told to stop
	func() {
		for {
			select {
			case err := <-errorC:
				if err != nil {
					logger.Warn(err.Error())
				}
			case <-ctx.Done():
				close(quitC)
				return
			}
		}
	}()

	errGo := g.Wait()

	if plugin, isPresent := core.PluginOfType(lightweaver.SourcePluginType).(*lightweaver.SourcePlugin); isPresent {
		logger.Info(fmt.Sprintf("%d scene updates were applied", plugin.Applied()))
	}

	if errGo != nil {
		return errors.Wrap(errGo).With("stack", stack.Trace().TrimRuntime())
	}
	return nil
}

// startDriver creates the driver named on the command line.  The opc driver
// publishes frames to the fadecandy gateway and to the monitoring and preview
// subscribers, the log driver only logs
func startDriver(g *errgroup.Group, name string, pixelCount int, errorC chan errors.Error, quitC chan struct{}) (driver lightweaver.Driver) {

	if name == driverLog {
		if *preview {
			logger.Warn("the preview is only available with the opc driver")
		}
		return lightweaver.NewLogDriver(logger)
	}

	gw := &lightweaver.Gateway{Logger: logger}
	frameC, subscribeC := gw.Start(*opcServer, uint8(*opcChannel), lightweaver.DefaultRefresh, errorC, quitC)

	g.Go(func() error {
		runMonitoring(subscribeC, quitC)
		return nil
	})

	if *preview {
		g.Go(func() error {
			runPreview(subscribeC, os.Stdout, quitC)
			return nil
		})
	}

	return lightweaver.NewFrameDriver(pixelCount, frameC)
}

// relayScenes converts scene documents into updates for the core
func relayScenes(docC <-chan *scene.Document, updateC chan<- *lightweaver.Update, quitC <-chan struct{}) {
	for {
		select {
		case doc := <-docC:
			if doc == nil {
				continue
			}
			update := &lightweaver.Update{
				Source:     doc.Source,
				Brightness: doc.Brightness,
			}
			select {
			case updateC <- update:
			case <-quitC:
				return
			}
		case <-quitC:
			return
		}
	}
}
