package invoice

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"app/internal/domain/model"

	wkhtmltopdf "github.com/SebastiaanKlippert/go-wkhtmltopdf"
)

// 文書エンジンが出力を作れなかった。該当の請求書については致命的
// （自動リトライはしない。注文のステータスはコミット済みのまま）。
var ErrRender = errors.New("invoice render failed")

// RendererはHTMLをページのバイト列にする外部エンジン。
type Renderer interface {
	RenderHTML(ctx context.Context, html []byte) ([]byte, error)
}

// wkhtmltopdfのプロセスを叩く実装。起動失敗はErrRenderに畳む。
type WkhtmltopdfRenderer struct {
	timeout time.Duration
}

func NewWkhtmltopdfRenderer(timeout time.Duration) *WkhtmltopdfRenderer {
	return &WkhtmltopdfRenderer{timeout: timeout}
}

func (r *WkhtmltopdfRenderer) RenderHTML(ctx context.Context, html []byte) ([]byte, error) {
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	pdfg, err := wkhtmltopdf.NewPDFGenerator()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}

	pdfg.PageSize.Set(wkhtmltopdf.PageSizeA4)
	pdfg.MarginTop.Set(10)
	pdfg.MarginBottom.Set(10)
	pdfg.MarginLeft.Set(10)
	pdfg.MarginRight.Set(10)
	pdfg.AddPage(wkhtmltopdf.NewPageReader(bytes.NewReader(html)))

	if err := pdfg.CreateContext(ctx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	return pdfg.Bytes(), nil
}

// Composerは注文スナップショットから請求書PDFを作る。
type Composer struct {
	renderer Renderer
}

func NewComposer(renderer Renderer) *Composer {
	return &Composer{renderer: renderer}
}

func (c *Composer) Render(ctx context.Context, order model.Order) ([]byte, error) {
	doc := Build(order)
	html, err := doc.HTML()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	return c.renderer.RenderHTML(ctx, html)
}
