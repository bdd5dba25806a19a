package renderer

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Dimensiones A4 en pulgadas. Márgenes en cero: el layout margina por CSS.
const (
	paperWidthInches  = 8.27
	paperHeightInches = 11.69
)

// rodEngine implementa pdfEngine con Chrome headless vía go-rod. El browser
// se conecta perezosamente en el primer Convert y se comparte entre llamadas;
// cada llamada abre una página propia.
type rodEngine struct {
	mu      sync.Mutex
	browser *rod.Browser
	timeout time.Duration
	quiesce time.Duration
}

func newRodEngine(timeout, quiesce time.Duration) *rodEngine {
	return &rodEngine{timeout: timeout, quiesce: quiesce}
}

func (e *rodEngine) ensureBrowser() (*rod.Browser, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.browser != nil {
		return e.browser, nil
	}

	l := launcher.New()
	if bin := os.Getenv("ROD_BROWSER_BIN"); bin != "" {
		l = l.Bin(bin)
	}
	// NoSandbox para CI y contenedores
	if os.Getenv("CI") == "true" || os.Getenv("ROD_BROWSER_BIN") != "" {
		l = l.NoSandbox(true)
	}
	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launching browser: %v", err)
	}

	b := rod.New().ControlURL(u)
	if err := b.Connect(); err != nil {
		return nil, fmt.Errorf("connecting to browser: %v", err)
	}
	e.browser = b
	return b, nil
}

func (e *rodEngine) Convert(ctx context.Context, htmlContent string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	browser, err := e.ensureBrowser()
	if err != nil {
		return nil, err
	}

	tmp, err := os.CreateTemp("", "vitrina-*.html")
	if err != nil {
		return nil, fmt.Errorf("writing temp html: %v", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()
	if _, err := tmp.WriteString(htmlContent); err != nil {
		_ = tmp.Close()
		return nil, fmt.Errorf("writing temp html: %v", err)
	}
	if err := tmp.Close(); err != nil {
		return nil, fmt.Errorf("writing temp html: %v", err)
	}

	page, err := browser.Page(proto.TargetCreateTarget{URL: "file://" + tmpName})
	if err != nil {
		return nil, fmt.Errorf("creating page: %v", err)
	}
	// la página se cierra en todos los caminos; si no, queda un target vivo
	// por cada pedido
	defer func() { _ = page.Close() }()

	timeout := e.timeout
	if deadline, ok := ctx.Deadline(); ok {
		if d := time.Until(deadline); d < timeout {
			timeout = d
		}
		if timeout <= 0 {
			return nil, context.DeadlineExceeded
		}
	}
	p := page.Timeout(timeout)
	if err := p.WaitLoad(); err != nil {
		return nil, fmt.Errorf("loading page: %v", err)
	}
	// esperar a que la red quede quieta para que imágenes y fuentes entren
	// al PDF; la ventana de quiescencia está acotada por el timeout de página
	wait := p.WaitRequestIdle(e.quiesce, nil, nil, nil)
	wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	reader, err := p.PDF(&proto.PagePrintToPDF{
		PaperWidth:      floatPtr(paperWidthInches),
		PaperHeight:     floatPtr(paperHeightInches),
		MarginTop:       floatPtr(0),
		MarginBottom:    floatPtr(0),
		MarginLeft:      floatPtr(0),
		MarginRight:     floatPtr(0),
		PrintBackground: true,
	})
	if err != nil {
		return nil, fmt.Errorf("printing to PDF: %v", err)
	}
	out, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("reading PDF stream: %v", err)
	}
	return out, nil
}

func (e *rodEngine) Close() error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.browser != nil {
		err := e.browser.Close()
		e.browser = nil
		return err
	}
	return nil
}

func floatPtr(v float64) *float64 { return &v }
