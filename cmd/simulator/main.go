package main

// The simulator serves scene documents from a scenario directory over HTTP so
// that lightweaver can be exercised without anyone editing scenes by hand.
// A scenario directory contains sub directories named by the second, relative
// to the start of the scenario, at which they become the served document
// root.  A slot directory containing a file named finish restarts the scenario.
//

import (
	"bytes"
	"crypto/md5"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-stack/stack"
	"github.com/karlmutch/envflag" // Forked copy of https://github.com/GoBike/envflag
	"github.com/karlmutch/errors"
	"github.com/mgutz/logxi"

	"github.com/Oelderoth/LightWeaver-Module/scene"
)

var (
	listen       = flag.String("listen", ":8080", "Address to bind to")
	scenarioPath = flag.String("path", "./", "Path served as document root.")
	remote       = flag.Bool("remote", false, "Enable remote management of the scenario being run")
	scale        = flag.Int("scale", 1, "factor by which to accelerate the relative rate of the clock")
	compressTime = flag.Duration("compress-time", time.Duration(25*time.Hour), "Compress time scale to remove specified periods of inactivity")

	// create Logger interface
	logW = logxi.NewLogger(logxi.NewConcurrentWriter(os.Stdout), "lightweaver-simulator")
)

type testSlot struct {
	secondSlot int    // The second at which the served directory activates
	dir        string // The directory that activates
}

type scenario struct {
	path      string
	startTime time.Time
	slots     []*testSlot
	scale     int
	compress  time.Duration

	// This channel forces an immediate reload of the scenario
	forcedLoad chan string

	sync.Mutex
}

func newScenario(path string, scale int, compress time.Duration) (s *scenario) {
	if scale < 1 {
		scale = 1
	}
	return &scenario{
		path:       path,
		startTime:  time.Now().Round(time.Second),
		slots:      []*testSlot{},
		scale:      scale,
		compress:   compress,
		forcedLoad: make(chan string, 1),
	}
}

func main() {

	if !flag.Parsed() {
		envflag.Parse()
	}

	if _, errGo := filepath.Abs(*scenarioPath); errGo != nil {
		logxi.Fatal(errGo.Error())
		os.Exit(-1)
	}

	s := newScenario(*scenarioPath, *scale, *compressTime)

	// Load the inital per second slots from the
	// scenario directory
	if err := s.load(); err != nil {
		logW.Warn(err.Error())
	}

	// Start a service function that tracks over time the slots
	// and scenarios being used
	//
	go s.audit()

	http.Handle("/", s)

	if errGo := http.ListenAndServe(*listen, nil); errGo != nil {
		logW.Warn(errGo.Error())
	}
}

// hashDir will get the MD5 sum of the files inside a slot directory and return it
//
func hashDir(dir string) []byte {
	entries, errGo := os.ReadDir(dir)
	if errGo != nil {
		return []byte{}
	}

	h := md5.New()
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		f, errGo := os.Open(filepath.Join(dir, entry.Name()))
		if errGo != nil {
			return []byte{}
		}
		io.WriteString(h, entry.Name())
		_, errGo = io.Copy(h, f)
		f.Close()
		if errGo != nil {
			return []byte{}
		}
	}
	return h.Sum(nil)
}

// checkScenes decodes every scene document in a slot directory so that broken
// scenes are reported when loading rather than when lightweaver fetches them
func checkScenes(dir string) {
	entries, errGo := os.ReadDir(dir)
	if errGo != nil {
		return
	}
	for _, entry := range entries {
		ext := filepath.Ext(entry.Name())
		if entry.IsDir() || (ext != ".yaml" && ext != ".yml" && ext != ".json") {
			continue
		}
		fn := filepath.Join(dir, entry.Name())
		data, errGo := os.ReadFile(fn)
		if errGo == nil {
			_, errGo = scene.Decode(data)
		}
		if errGo != nil {
			logW.Warn(fmt.Sprintf("scene %s will not be accepted", fn), "error", errGo.Error())
		}
	}
}

// load examines the scenario directory for the serve directories
// that will be used and loads them into the schedule
//
func (s *scenario) load() (err errors.Error) {
	s.Lock()
	defer s.Unlock()

	s.startTime = time.Now().Round(time.Second)
	s.slots = []*testSlot{}

	entries, errGo := os.ReadDir(s.path)
	if errGo != nil {
		return errors.Wrap(errGo).With("path", s.path).With("stack", stack.Trace().TrimRuntime())
	}

	oldHash := []byte{}
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		slot, errGo := strconv.Atoi(entry.Name())
		if errGo != nil {
			continue
		}
		dir := filepath.Join(s.path, entry.Name())

		// The compress-time option is used to collapse uninteresting time periods in the life
		// of the data that is being transmitted.  The collapse will look for dead air, or for
		// directories that are duplicated and remove them.  In this case we will remove duplicates
		// and later on will deal with dead air
		if s.compress < time.Duration(24*time.Hour) {
			newHash := hashDir(dir)
			if len(newHash) != 0 && bytes.Equal(newHash, oldHash) {
				logW.Info("duplicate slot", "dir", dir)
				continue
			}
			oldHash = newHash
		}

		checkScenes(dir)

		s.slots = append(s.slots, &testSlot{
			dir:        dir,
			secondSlot: slot,
		})
	}

	// Sort our slots  ascending order and we are done
	sort.Slice(s.slots, func(i, j int) bool {
		return s.slots[i].secondSlot < s.slots[j].secondSlot
	})

	// Having got the directories in order deal with the case of having large air gaps
	// in the rolling data
	//
	if s.compress < time.Duration(24*time.Hour) {

		lastAbsSlot := 0
		lastAdjSlot := 0
		accumulated := 0

		adjust := int(s.compress.Seconds())
		for i := range s.slots {

			// Adjust the slot time down by the total accumulated seconds that
			// have been removed
			newAbsSlot := s.slots[i].secondSlot
			s.slots[i].secondSlot -= accumulated

			if s.slots[i].secondSlot > lastAdjSlot+adjust {
				dropSecs := s.slots[i].secondSlot - lastAdjSlot - adjust
				logW.Debug(fmt.Sprintf("removing %d seconds between %d (%d) and %d (%d)",
					dropSecs, lastAbsSlot, lastAdjSlot, newAbsSlot, s.slots[i].secondSlot))

				accumulated += dropSecs
				s.slots[i].secondSlot = lastAdjSlot + adjust
			}
			lastAdjSlot = s.slots[i].secondSlot
			lastAbsSlot = newAbsSlot
		}
	}

	logW.Debug(fmt.Sprintf("loaded scenario %s with %d slots", s.path, len(s.slots)))

	if len(s.slots) == 0 {
		return errors.New("scenario has no slot directories").With("path", s.path).With("stack", stack.Trace().TrimRuntime())
	}
	return nil
}

// slotDir returns the directory active at the given time, an empty string is
// returned when the scenario has no slots
func (s *scenario) slotDir(now time.Time) (dir string) {
	s.Lock()
	defer s.Unlock()

	if len(s.slots) == 0 {
		return ""
	}

	second := int(now.Sub(s.startTime).Seconds() * float64(s.scale))
	slot := sort.Search(len(s.slots), func(i int) bool { return s.slots[i].secondSlot > second })

	// slot is the first slot still in the future, the one before it is active
	if slot > 0 {
		slot--
	}
	return s.slots[slot].dir
}

func (s *scenario) audit() {
	tick := time.NewTicker(500 * time.Millisecond)
	defer tick.Stop()

	for {
		select {
		case newPath := <-s.forcedLoad:
			logW.Debug(fmt.Sprintf("forced load of %s occurring", newPath))
			s.Lock()
			s.path = newPath
			s.Unlock()
			if err := s.load(); err != nil {
				logW.Warn(err.Error())
			}

		case <-tick.C:
			dir := s.slotDir(time.Now())
			if len(dir) == 0 {
				continue
			}
			logW.Debug(fmt.Sprintf("using %s", dir))

			if _, errGo := os.Stat(filepath.Join(dir, "finish")); errGo == nil {
				if err := s.load(); err != nil {
					logW.Warn(err.Error())
				}
			}
		}
	}
}

func (s *scenario) serveConfigure(w http.ResponseWriter, r *http.Request) {

	newPath := strings.TrimPrefix(r.URL.Path, "/configure")
	if !path.IsAbs(newPath) {
		http.Error(w, "configure paths must be absolute", http.StatusNotFound)
		return
	}

	select {
	case s.forcedLoad <- newPath:
	case <-time.After(3 * time.Second):
		http.Error(w, "configure path could not be applied immediately", http.StatusServiceUnavailable)
	}
}

func (s *scenario) ServeHTTP(w http.ResponseWriter, r *http.Request) {

	if *remote && strings.HasPrefix(r.URL.Path, "/configure/") {
		s.serveConfigure(w, r)
		return
	}

	// Locate from the current scenario which directory
	// is the appropriate one to serve up
	//
	dir := s.slotDir(time.Now())
	if len(dir) == 0 {
		http.Error(w, "no scenario is loaded", http.StatusNotFound)
		return
	}
	file := filepath.Join(dir, filepath.FromSlash(path.Clean("/"+r.URL.Path)))
	logW.Debug(fmt.Sprintf("serving %s", file))

	http.ServeFile(w, r, file)
}
