//go:build js && wasm

package wasm

import (
	"net/http"
	"syscall/js"

	"github.com/Its-donkey/landing/internal/ui/dom/jsdom"
	"github.com/Its-donkey/landing/internal/ui/page"
	"github.com/Its-donkey/landing/logging"
)

var readyFunc js.Func

// RunApp binds the page behaviors once the document is ready and blocks
// forever.
func RunApp() {
	done := make(chan struct{})
	logger := logging.New("landing-wasm", logging.INFO, logging.ConsoleWriter{})

	document := js.Global().Get("document")
	if document.Get("readyState").String() == "loading" {
		readyFunc = js.FuncOf(func(js.Value, []js.Value) any {
			initPage(logger)
			return nil
		})
		document.Call("addEventListener", "DOMContentLoaded", readyFunc)
	} else {
		initPage(logger)
	}
	<-done
}

func initPage(logger *logging.Logger) {
	doc := jsdom.NewDocument()
	host := jsdom.NewHost()
	handles := page.ResolveHandles(doc)

	timeout := page.MillisAttr(handles.Form, page.TimeoutAttr)
	if timeout <= 0 {
		timeout = page.DefaultRelayTimeout
	}
	page.Init(host, handles, page.Options{
		CarouselInterval: page.MillisAttr(doc.QuerySelector(page.CarouselRoot), page.IntervalAttr),
		Client:           &http.Client{Timeout: timeout},
		Logger:           logger,
	})
}
