// Package browser drives WhatsApp Web in a persistent Chrome profile.
package browser

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"github.com/chromedp/chromedp/kb"
	"go.uber.org/zap"

	"github.com/TemirB/kaspi-feedback/internal/config"
	"github.com/TemirB/kaspi-feedback/internal/whatsapp"
)

const (
	gridSelector  = `div[role="grid"]`
	composeMarker = `[data-kf-compose="1"]`
	invalidText   = "Phone number shared via url is invalid"

	actionTimeout = 10 * time.Second
	pollInterval  = 500 * time.Millisecond
)

// Message box candidates, most specific first. The last bare contenteditable
// is the fallback.
var composeSelectors = []string{
	`footer div[contenteditable="true"]`,
	`div[contenteditable="true"][data-tab]`,
	`div[data-testid="conversation-compose-box-input"]`,
}

const fallbackCompose = `div[contenteditable="true"]`

// Browser implements whatsapp.Driver on top of chromedp.
type Browser struct {
	ctx    context.Context
	cancel context.CancelFunc
	cfg    config.WhatsApp
	logger *zap.Logger
}

var _ whatsapp.Driver = (*Browser)(nil)

// New starts Chrome with the session profile in cfg.UserDataDir so a
// previously scanned QR login is reused.
func New(parent context.Context, cfg config.WhatsApp, logger *zap.Logger) (*Browser, error) {
	dir, err := filepath.Abs(cfg.UserDataDir)
	if err != nil {
		return nil, fmt.Errorf("user data dir: %w", err)
	}

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(parent, allocatorOptions(cfg.Headless, dir)...)
	ctx, cancelCtx := chromedp.NewContext(allocCtx,
		chromedp.WithLogf(logger.Sugar().Debugf),
		chromedp.WithErrorf(logger.Sugar().Warnf),
	)
	cancel := func() {
		cancelCtx()
		cancelAlloc()
	}

	if err := chromedp.Run(ctx); err != nil {
		cancel()
		return nil, fmt.Errorf("start browser: %w", err)
	}
	logger.Info("Browser started",
		zap.String("user_data_dir", dir),
		zap.Bool("headless", cfg.Headless),
	)

	return &Browser{
		ctx:    ctx,
		cancel: cancel,
		cfg:    cfg,
		logger: logger,
	}, nil
}

func allocatorOptions(headless bool, dir string) []chromedp.ExecAllocatorOption {
	opts := append([]chromedp.ExecAllocatorOption{}, chromedp.DefaultExecAllocatorOptions[:]...)
	return append(opts,
		chromedp.Flag("headless", headless),
		chromedp.UserDataDir(dir),
		chromedp.Flag("disable-blink-features", "AutomationControlled"),
		chromedp.WindowSize(1280, 900),
	)
}

func (b *Browser) Close() {
	b.cancel()
}

// run executes actions in the browser tab, bounded by timeout and by ctx.
func (b *Browser) run(ctx context.Context, timeout time.Duration, actions ...chromedp.Action) error {
	tctx, cancel := context.WithTimeout(b.ctx, timeout)
	defer cancel()
	stop := context.AfterFunc(ctx, cancel)
	defer stop()

	err := chromedp.Run(tctx, actions...)
	if err != nil && ctx.Err() != nil {
		return ctx.Err()
	}
	return err
}

func (b *Browser) Open(ctx context.Context, link string) error {
	if err := b.run(ctx, actionTimeout, chromedp.Navigate(link)); err != nil {
		return err
	}
	err := b.run(ctx, b.cfg.GridTimeout, chromedp.WaitVisible(gridSelector, chromedp.ByQuery))
	if errors.Is(err, context.DeadlineExceeded) {
		b.logger.Debug("chat grid did not appear, going on")
		return nil
	}
	return err
}

func (b *Browser) InvalidNumber(ctx context.Context) (bool, error) {
	var invalid bool
	err := b.run(ctx, actionTimeout, chromedp.Evaluate(invalidScript(), &invalid))
	return invalid, err
}

func (b *Browser) WaitCompose(ctx context.Context) error {
	deadline := time.Now().Add(b.cfg.ComposeTimeout)
	script := markComposeScript()
	for {
		var found bool
		if err := b.run(ctx, actionTimeout, chromedp.Evaluate(script, &found)); err != nil {
			return err
		}
		if found {
			return b.run(ctx, actionTimeout, chromedp.Click(composeMarker, chromedp.ByQuery))
		}
		if time.Now().After(deadline) {
			return whatsapp.ErrComposeTimeout
		}
		select {
		case <-time.After(pollInterval):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

func (b *Browser) ComposeText(ctx context.Context) (string, error) {
	var text string
	err := b.run(ctx, actionTimeout, chromedp.Evaluate(
		fmt.Sprintf(`(document.querySelector(%q) || {}).innerText || ""`, composeMarker), &text))
	return text, err
}

func (b *Browser) Insert(ctx context.Context, text string) error {
	var ok bool
	if err := b.run(ctx, actionTimeout, chromedp.Evaluate(insertScript(text), &ok)); err != nil {
		return err
	}
	if !ok {
		return errors.New("compose box is gone")
	}
	return nil
}

func (b *Browser) ClickSend(ctx context.Context) (bool, error) {
	var clicked bool
	err := b.run(ctx, actionTimeout, chromedp.Evaluate(clickSendScript, &clicked))
	return clicked, err
}

func (b *Browser) PressEnter(ctx context.Context) error {
	return b.run(ctx, actionTimeout, chromedp.SendKeys(composeMarker, kb.Enter, chromedp.ByQuery))
}

func invalidScript() string {
	return fmt.Sprintf(`!!document.body && document.body.innerText.includes(%q)`, invalidText)
}

// markComposeScript tags the first visible message box with the compose
// marker and reports whether one was found.
func markComposeScript() string {
	sels := jsLiteral(composeSelectors)
	return fmt.Sprintf(`(() => {
	const visible = el => !!el && el.getClientRects().length > 0;
	const last = sel => { const all = document.querySelectorAll(sel); return all.length ? all[all.length - 1] : null; };
	document.querySelectorAll(%q).forEach(el => el.removeAttribute("data-kf-compose"));
	let box = null;
	for (const sel of %s) {
		const el = last(sel);
		if (visible(el)) { box = el; break; }
	}
	if (!box) box = last(%q);
	if (!visible(box)) return false;
	box.setAttribute("data-kf-compose", "1");
	return true;
})()`, composeMarker, sels, fallbackCompose)
}

// jsLiteral encodes v as a JavaScript literal, leaving HTML characters as is.
func jsLiteral(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(v)
	return strings.TrimRight(buf.String(), "\n")
}

func insertScript(text string) string {
	val := jsLiteral(text)
	return fmt.Sprintf(`((val) => {
	const el = document.querySelector(%q);
	if (!el) return false;
	el.focus();
	document.execCommand("selectAll", false, null);
	document.execCommand("insertText", false, val);
	return true;
})(%s)`, composeMarker, val)
}

const clickSendScript = `(() => {
	const visible = el => !!el && el.getClientRects().length > 0;
	const button = document.querySelector('button[aria-label="Send"]');
	if (visible(button)) { button.click(); return true; }
	const icon = document.querySelector('span[data-icon="send"]');
	if (visible(icon)) { (icon.closest("button") || icon).click(); return true; }
	return false;
})()`
