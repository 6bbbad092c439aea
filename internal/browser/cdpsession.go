package browser

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/lorawan-tools/gwprov/internal/logging"
)

// cdpSession implements Session on a DevTools connection to one page.
type cdpSession struct {
	chrome *chromeProcess // nil when attached to an external endpoint
	conn   *cdpConn

	actionTimeout   time.Duration
	navigateTimeout time.Duration

	closeOnce sync.Once
}

// Open launches a browser and attaches a session to its first page.
func Open(ctx context.Context, opts Options) (Session, error) {
	chrome, err := launchChrome(ctx, opts.Headless)
	if err != nil {
		return nil, err
	}

	endpoint, err := chrome.pageEndpoint(ctx)
	if err != nil {
		chrome.kill()
		return nil, err
	}

	session, err := attach(ctx, endpoint, opts)
	if err != nil {
		chrome.kill()
		return nil, err
	}
	session.chrome = chrome

	logging.LogSession(endpoint, "opened")
	return session, nil
}

// attach builds a session on an existing DevTools page endpoint.
// Split out from Open so tests can drive the session against a fake
// endpoint without launching a browser.
func attach(ctx context.Context, wsURL string, opts Options) (*cdpSession, error) {
	conn, err := dialCDP(ctx, wsURL)
	if err != nil {
		return nil, err
	}

	session := &cdpSession{
		conn:            conn,
		actionTimeout:   opts.ActionTimeout,
		navigateTimeout: opts.NavigateTimeout,
	}
	if session.actionTimeout <= 0 {
		session.actionTimeout = DefaultActionTimeout
	}
	if session.navigateTimeout <= 0 {
		session.navigateTimeout = DefaultNavigateTimeout
	}

	if _, err := conn.Call(ctx, "Page.enable", nil); err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to enable page domain: %w", err)
	}
	return session, nil
}

func (s *cdpSession) Navigate(ctx context.Context, url string) error {
	ctx, cancel := context.WithTimeout(ctx, s.navigateTimeout)
	defer cancel()

	if _, err := s.conn.Call(ctx, "Page.navigate", map[string]any{"url": url}); err != nil {
		return newActionError("navigate", url, "navigation failed", err)
	}

	// The navigate command resolves before the document loads. Poll
	// readiness instead of listening for load events.
	for {
		var state string
		if err := s.conn.eval(ctx, "document.readyState", &state); err == nil && state == "complete" {
			return nil
		}

		select {
		case <-ctx.Done():
			return newActionError("navigate", url, "page did not finish loading", ctx.Err())
		case <-time.After(elementPollInterval):
		}
	}
}

func (s *cdpSession) WaitFor(ctx context.Context, selector string) error {
	ctx, cancel := context.WithTimeout(ctx, s.actionTimeout)
	defer cancel()

	expression := fmt.Sprintf("!!document.querySelector(%s)", jsString(selector))
	for {
		var found bool
		if err := s.conn.eval(ctx, expression, &found); err == nil && found {
			return nil
		}

		select {
		case <-ctx.Done():
			return newActionError("wait", selector, "element did not appear", ctx.Err())
		case <-time.After(elementPollInterval):
		}
	}
}

func (s *cdpSession) Fill(ctx context.Context, selector, value string) error {
	ctx, cancel := context.WithTimeout(ctx, s.actionTimeout)
	defer cancel()

	expression := fmt.Sprintf(`(() => {
		const el = document.querySelector(%s);
		if (!el) return false;
		el.value = %s;
		el.dispatchEvent(new Event('input', {bubbles: true}));
		el.dispatchEvent(new Event('change', {bubbles: true}));
		return true;
	})()`, jsString(selector), jsString(value))

	var filled bool
	if err := s.conn.eval(ctx, expression, &filled); err != nil {
		return newActionError("fill", selector, "script failed", err)
	}
	if !filled {
		return newActionError("fill", selector, "element not found", nil)
	}
	return nil
}

func (s *cdpSession) Click(ctx context.Context, selector, text string) error {
	ctx, cancel := context.WithTimeout(ctx, s.actionTimeout)
	defer cancel()

	expression := fmt.Sprintf(`(() => {
		const text = %s;
		const els = Array.from(document.querySelectorAll(%s));
		const match = els.find(el => text === "" || (el.textContent || "").includes(text));
		if (!match) return false;
		match.click();
		return true;
	})()`, jsString(text), jsString(selector))

	var clicked bool
	if err := s.conn.eval(ctx, expression, &clicked); err != nil {
		return newActionError("click", selector, "script failed", err)
	}
	if !clicked {
		return newActionError("click", selector, "no matching element", nil)
	}
	return nil
}

func (s *cdpSession) ClickVisibleUnselected(ctx context.Context, selector, text string) error {
	ctx, cancel := context.WithTimeout(ctx, s.actionTimeout)
	defer cancel()

	// The dropdown renders duplicate option nodes, some hidden and one
	// already active. Click the first candidate that is neither.
	expression := fmt.Sprintf(`(() => {
		const text = %s;
		const els = Array.from(document.querySelectorAll(%s));
		for (const el of els) {
			if (text !== "" && !(el.textContent || "").includes(text)) continue;
			if (el.offsetParent === null) continue;
			if (el.getAttribute('aria-selected') !== 'false') continue;
			el.click();
			return true;
		}
		return false;
	})()`, jsString(text), jsString(selector))

	var clicked bool
	if err := s.conn.eval(ctx, expression, &clicked); err != nil {
		return newActionError("select", selector, "script failed", err)
	}
	if !clicked {
		return newActionError("select", selector, "no visible unselected option", nil)
	}
	return nil
}

func (s *cdpSession) Close() error {
	s.closeOnce.Do(func() {
		_ = s.conn.Close()
		if s.chrome != nil {
			s.chrome.kill()
		}
		logging.LogSession("", "closed")
	})
	return nil
}

// jsString renders s as a JavaScript string literal.
func jsString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
