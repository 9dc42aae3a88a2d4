package scene

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/cnf/structhash"
	"github.com/go-stack/stack"
	"github.com/karlmutch/errors"
)

// This module implements a watcher for a scene document that may be a local
// file or be served over HTTP.  The document is checked on a regular basis
// and every time its content changes it is decoded and sent on to listeners

type Watcher struct {
	url    url.URL
	poll   time.Duration
	docC   chan<- *Document
	errorC chan<- errors.Error

	client *http.Client
	last   []byte
}

// sceneContent is hashed to detect changes to the document
type sceneContent struct {
	Body string
}

// NewWatcher creates a watcher for a file:// or http(s):// URL
func NewWatcher(url url.URL, poll time.Duration, docC chan<- *Document, errorC chan<- errors.Error) (w *Watcher) {
	if poll <= 0 {
		poll = time.Second
	}
	return &Watcher{
		url:    url,
		poll:   poll,
		docC:   docC,
		errorC: errorC,
		client: &http.Client{Timeout: poll},
		last:   []byte{},
	}
}

// fetch retrieves the raw scene document
//
func (w *Watcher) fetch() (body []byte, err errors.Error) {

	switch w.url.Scheme {
	case "http", "https":
		resp, errGo := w.client.Get(w.url.String())
		if errGo != nil {
			return nil, errors.Wrap(errGo).With("url", w.url.String()).With("stack", stack.Trace().TrimRuntime())
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, errors.New(fmt.Sprintf("unexpected status %s", resp.Status)).With("url", w.url.String()).With("stack", stack.Trace().TrimRuntime())
		}

		body, errGo = io.ReadAll(resp.Body)
		if errGo != nil {
			return nil, errors.Wrap(errGo).With("url", w.url.String()).With("stack", stack.Trace().TrimRuntime())
		}

	case "file", "":
		path := w.url.Path
		if len(path) == 0 {
			path = w.url.Opaque
		}
		var errGo error
		if body, errGo = os.ReadFile(path); errGo != nil {
			return nil, errors.Wrap(errGo).With("path", path).With("stack", stack.Trace().TrimRuntime())
		}

	default:
		return nil, w.validate()
	}
	return body, nil
}

// validate rejects URLs that no amount of retrying will be able to fetch
func (w *Watcher) validate() (err errors.Error) {
	switch w.url.Scheme {
	case "http", "https", "file", "":
		return nil
	}
	errGo := fmt.Errorf("unknown scheme %s for the scene URL", w.url.Scheme)
	return errors.Wrap(errGo).With("url", w.url.String()).With("stack", stack.Trace().TrimRuntime())
}

// Check fetches the document and when it has changed since the last successful
// check decodes it.  changed is false when the document was unchanged
func (w *Watcher) Check() (doc *Document, changed bool, err errors.Error) {
	body, err := w.fetch()
	if err != nil {
		return nil, false, err
	}

	hash := structhash.Md5(sceneContent{Body: string(body)}, 1)
	if bytes.Equal(hash, w.last) {
		return nil, false, nil
	}

	doc, errGo := Decode(body)
	if errGo != nil {
		// Remember the broken document so the error is reported once per edit
		w.last = hash
		return nil, false, errors.Wrap(errGo).With("url", w.url.String()).With("stack", stack.Trace().TrimRuntime())
	}
	w.last = hash
	return doc, true, nil
}

func (w *Watcher) sendError(err errors.Error) {
	go func(err errors.Error) {
		select {
		case w.errorC <- err:
		case <-time.After(500 * time.Millisecond):
			fmt.Fprintf(os.Stderr, "could not send error for scene update %s\n", err.Error())
		}
	}(err)
}

func (w *Watcher) sendScene(quitC <-chan struct{}) {
	doc, changed, err := w.Check()
	if err != nil {
		w.sendError(err)
		return
	}
	if !changed {
		return
	}

	select {
	case w.docC <- doc:
	case <-quitC:
	case <-time.After(w.poll):
		// Forget the document so that the next check delivers it again
		w.last = []byte{}
		w.sendError(errors.New("scene update dropped").With("url", w.url.String()).With("stack", stack.Trace().TrimRuntime()))
	}
}

// Run checks the scene immediately and then every poll interval until quitC is
// closed.  Failed checks are reported on the error channel and retried, an error
// is only returned when the URL can never be fetched
//
func (w *Watcher) Run(quitC <-chan struct{}) (err errors.Error) {

	if err = w.validate(); err != nil {
		return err
	}

	w.sendScene(quitC)

	poll := time.NewTicker(w.poll)
	defer poll.Stop()

	for {
		select {
		case <-poll.C:
			w.sendScene(quitC)

		case <-quitC:
			return nil
		}
	}
}
