package browser

import (
	"context"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/exec"
	"runtime"
	"time"

	"go.uber.org/zap"

	"github.com/lorawan-tools/gwprov/internal/logging"
)

// chromeCandidates lists browser binaries to try, most specific first.
func chromeCandidates(goos string) []string {
	switch goos {
	case "darwin":
		return []string{
			"/Applications/Google Chrome.app/Contents/MacOS/Google Chrome",
			"/Applications/Chromium.app/Contents/MacOS/Chromium",
			"google-chrome",
			"chromium",
		}
	case "windows":
		return []string{
			`C:\Program Files\Google\Chrome\Application\chrome.exe`,
			`C:\Program Files (x86)\Google\Chrome\Application\chrome.exe`,
			"chrome.exe",
		}
	default:
		return []string{
			"google-chrome",
			"google-chrome-stable",
			"chromium",
			"chromium-browser",
		}
	}
}

// findChrome returns the first usable browser binary.
func findChrome() (string, error) {
	for _, candidate := range chromeCandidates(runtime.GOOS) {
		if _, err := os.Stat(candidate); err == nil {
			return candidate, nil
		}
		if path, err := exec.LookPath(candidate); err == nil {
			return path, nil
		}
	}
	return "", fmt.Errorf("no Chrome or Chromium binary found")
}

// chromeProcess is a running browser owned by a session.
type chromeProcess struct {
	cmd     *exec.Cmd
	port    int
	dataDir string
}

// launchChrome starts a browser with a DevTools debugging port and
// waits until the endpoint answers.
func launchChrome(ctx context.Context, headless bool) (*chromeProcess, error) {
	binary, err := findChrome()
	if err != nil {
		return nil, err
	}

	port, err := freePort()
	if err != nil {
		return nil, fmt.Errorf("failed to pick a debugging port: %w", err)
	}

	dataDir, err := os.MkdirTemp("", "gwprov-chrome-")
	if err != nil {
		return nil, fmt.Errorf("failed to create browser profile dir: %w", err)
	}

	args := []string{
		fmt.Sprintf("--remote-debugging-port=%d", port),
		"--user-data-dir=" + dataDir,
		"--no-first-run",
		"--no-default-browser-check",
		"--disable-background-networking",
	}
	if headless {
		args = append(args, "--headless=new")
	}
	args = append(args, "about:blank")

	cmd := exec.Command(binary, args...)
	if err := cmd.Start(); err != nil {
		os.RemoveAll(dataDir)
		return nil, fmt.Errorf("failed to start browser %s: %w", binary, err)
	}

	proc := &chromeProcess{cmd: cmd, port: port, dataDir: dataDir}

	if err := proc.waitReady(ctx); err != nil {
		proc.kill()
		return nil, err
	}

	logging.Debug("Browser started",
		zap.String("binary", binary),
		zap.Int("debug_port", port),
		zap.Bool("headless", headless),
	)
	return proc, nil
}

// waitReady polls the DevTools HTTP endpoint until it responds.
func (p *chromeProcess) waitReady(ctx context.Context) error {
	deadline := time.Now().Add(15 * time.Second)
	client := &http.Client{Timeout: time.Second}

	for time.Now().Before(deadline) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(200 * time.Millisecond):
		}

		resp, err := client.Get(fmt.Sprintf("http://127.0.0.1:%d/json/version", p.port))
		if err != nil {
			continue
		}
		resp.Body.Close()
		if resp.StatusCode == http.StatusOK {
			return nil
		}
	}
	return fmt.Errorf("browser debugging endpoint did not come up on port %d", p.port)
}

// pageEndpoint returns the DevTools websocket URL of the first page
// target.
func (p *chromeProcess) pageEndpoint(ctx context.Context) (string, error) {
	client := &http.Client{Timeout: 2 * time.Second}
	deadline := time.Now().Add(10 * time.Second)

	for time.Now().Before(deadline) {
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		default:
		}

		resp, err := client.Get(fmt.Sprintf("http://127.0.0.1:%d/json/list", p.port))
		if err != nil {
			time.Sleep(200 * time.Millisecond)
			continue
		}

		var targets []struct {
			Type                 string `json:"type"`
			WebSocketDebuggerURL string `json:"webSocketDebuggerUrl"`
		}
		err = json.NewDecoder(resp.Body).Decode(&targets)
		resp.Body.Close()
		if err != nil {
			return "", fmt.Errorf("failed to decode target list: %w", err)
		}

		for _, target := range targets {
			if target.Type == "page" && target.WebSocketDebuggerURL != "" {
				return target.WebSocketDebuggerURL, nil
			}
		}
		time.Sleep(200 * time.Millisecond)
	}
	return "", fmt.Errorf("no page target found on port %d", p.port)
}

// kill terminates the browser and removes its temporary profile.
func (p *chromeProcess) kill() {
	if p.cmd != nil && p.cmd.Process != nil {
		_ = p.cmd.Process.Kill()
		_ = p.cmd.Wait()
	}
	if p.dataDir != "" {
		_ = os.RemoveAll(p.dataDir)
	}
}

// freePort asks the kernel for an unused TCP port.
func freePort() (int, error) {
	l, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return 0, err
	}
	defer l.Close()
	return l.Addr().(*net.TCPAddr).Port, nil
}
