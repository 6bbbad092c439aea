package provision

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/lorawan-tools/gwprov/internal/config"
)

// Fallbacks applied when the configuration file leaves a key unset. These
// match the factory defaults of the gateway web interface.
const (
	defaultUsername   = "admin"
	defaultPassword   = "password"
	defaultGatewayIP  = "192.168.1.1"
	defaultScheme     = "http"
	defaultNSAddress  = "192.168.1.1"
	defaultNSPort     = 1884
	defaultNSProtocol = "ChirpStack-v4"
	defaultEncryption = "WPA-PSK"
)

// Settle intervals for device-side processing the UI reports nothing
// about. Save-and-apply rewrites gateway config and needs the longest.
const (
	settleMenu   = 2 * time.Second
	settleSelect = 1 * time.Second
	settleLogin  = 3 * time.Second
	settleSave   = 5 * time.Second
	settleApply  = 10 * time.Second
)

// Steps returns the fixed provisioning sequence for one gateway.
func Steps() []Step {
	return []Step{
		{
			Index:       1,
			Name:        "WiFi Connection",
			Description: "Connect to gateway WiFi network",
			Run:         stepConnect,
		},
		{
			Index:       2,
			Name:        "Browser & Login",
			Description: "Open browser and login to gateway web interface",
			Run:         stepLogin,
		},
		{
			Index:       3,
			Name:        "ChirpStack Config",
			Description: "Configure ChirpStack v4 settings",
			Run:         stepChirpStack,
		},
		{
			Index:        4,
			Name:         "Password Change",
			Description:  "Change admin password for security",
			Precondition: requireKey(config.KeyNewPassword),
			Run:          stepChangePassword,
		},
		{
			Index:       5,
			Name:        "Re-login",
			Description: "Re-login with new password",
			Run:         stepRelogin,
		},
		{
			Index:       6,
			Name:        "Network Config",
			Description: "Configure network settings (Cellular)",
			Run:         stepNetwork,
		},
		{
			Index:        7,
			Name:         "WiFi Security",
			Description:  "Configure WiFi password and security",
			Precondition: requireKey(config.KeyWiFiPassword),
			Run:          stepWiFiSecurity,
		},
	}
}

// requireKey builds a precondition that fails with a ConfigError when the
// secret behind key is absent or empty.
func requireKey(key string) func(cfg *config.Config) error {
	return func(cfg *config.Config) error {
		if !cfg.Has(key) {
			return &ConfigError{Key: key}
		}
		return nil
	}
}

// adminURL resolves the gateway web interface URL. A configured address
// always wins; without one, the resolver (mDNS) is consulted before
// falling back to the conventional gateway IP.
func (e *Env) adminURL(ctx context.Context) string {
	scheme := e.Config.GetString(config.KeyWebProtocol, defaultScheme)
	if !e.Config.Has(config.KeyWebAddress) && e.Resolve != nil {
		if url, err := e.Resolve(ctx); err == nil && url != "" {
			return url
		}
	}
	address := e.Config.GetString(config.KeyWebAddress, defaultGatewayIP)
	return fmt.Sprintf("%s://%s", scheme, address)
}

func stepConnect(ctx context.Context, env *Env) error {
	// Gateway access points broadcast open; no password on join
	return env.Adapter.Connect(ctx, env.SSID, "")
}

func stepLogin(ctx context.Context, env *Env) error {
	username := env.Config.GetString(config.KeyDefaultUsername, defaultUsername)
	password := env.Config.GetString(config.KeyDefaultPassword, defaultPassword)

	session, err := env.Session(ctx)
	if err != nil {
		return err
	}

	if err := session.Navigate(ctx, env.adminURL(ctx)); err != nil {
		return err
	}
	if err := session.WaitFor(ctx, "#username"); err != nil {
		return err
	}
	if err := session.Fill(ctx, "#username", username); err != nil {
		return err
	}
	if err := session.Fill(ctx, "#password", password); err != nil {
		return err
	}
	if err := session.Click(ctx, "button.ui-button", "Login"); err != nil {
		return err
	}
	env.settle(settleLogin)
	return nil
}

func stepChirpStack(ctx context.Context, env *Env) error {
	address := env.Config.GetString(config.KeyChirpstackAddress, defaultNSAddress)
	port := env.Config.GetInt(config.KeyChirpstackPort, defaultNSPort)
	protocol := env.Config.GetString(config.KeyChirpstackProtocol, defaultNSProtocol)

	session, err := env.Session(ctx)
	if err != nil {
		return err
	}

	if err := session.Click(ctx, `a[href="packet"]`, ""); err != nil {
		return err
	}
	env.settle(settleMenu)

	// The forwarder dropdown ships with "Embedded NS" selected
	if err := session.Click(ctx, ".ui-select-button", "Embedded NS"); err != nil {
		return err
	}
	env.settle(settleSelect)

	if err := session.Click(ctx, "a.ui-select-datalist-li", protocol); err != nil {
		return err
	}
	env.settle(settleSelect)

	if err := session.Fill(ctx, "#cs4_address", address); err != nil {
		return err
	}
	if err := session.Fill(ctx, `input[name="cs4_port"]`, strconv.Itoa(port)); err != nil {
		return err
	}
	if err := session.Click(ctx, "button", "Save & Apply"); err != nil {
		return err
	}
	env.settle(settleApply)
	return nil
}

func stepChangePassword(ctx context.Context, env *Env) error {
	oldPassword := env.Config.GetString(config.KeyDefaultPassword, defaultPassword)
	newPassword := env.Config.GetString(config.KeyNewPassword, "")

	session, err := env.Session(ctx)
	if err != nil {
		return err
	}

	if err := session.Click(ctx, `a[href="system"]`, ""); err != nil {
		return err
	}
	env.settle(settleMenu)

	if err := session.Click(ctx, `a[href="/system/general"]`, "User"); err != nil {
		return err
	}
	env.settle(settleMenu)

	if err := session.Fill(ctx, "#old_pwd", oldPassword); err != nil {
		return err
	}
	if err := session.Fill(ctx, "#new_pwd", newPassword); err != nil {
		return err
	}
	if err := session.Fill(ctx, "#check_pwd", newPassword); err != nil {
		return err
	}
	if err := session.Click(ctx, "button", "Save & Apply"); err != nil {
		return err
	}
	env.settle(settleLogin)
	return nil
}

func stepRelogin(ctx context.Context, env *Env) error {
	username := env.Config.GetString(config.KeyNewUsername, defaultUsername)
	password := env.Config.GetString(config.KeyNewPassword, "")

	session, err := env.Session(ctx)
	if err != nil {
		return err
	}

	// The gateway redirects to the login page after the password change
	env.settle(settleMenu)

	if err := session.Fill(ctx, "#username", username); err != nil {
		return err
	}
	if err := session.Fill(ctx, "#password", password); err != nil {
		return err
	}
	if err := session.Click(ctx, "button", "Login"); err != nil {
		return err
	}
	env.settle(settleLogin)
	return nil
}

func stepNetwork(ctx context.Context, env *Env) error {
	session, err := env.Session(ctx)
	if err != nil {
		return err
	}

	if err := session.Click(ctx, `a[href="network"]`, ""); err != nil {
		return err
	}
	env.settle(settleMenu)

	if err := session.Click(ctx, ".ui-select-button", ""); err != nil {
		return err
	}
	env.settle(settleMenu)

	// The WAN dropdown can render duplicate or stale Cellular nodes;
	// only a visible, not-yet-selected one is clickable
	if err := session.ClickVisibleUnselected(ctx, "a.ui-select-datalist-li", "Cellular"); err != nil {
		return err
	}
	env.settle(settleSelect)

	if err := session.Click(ctx, "button", "Save & Apply"); err != nil {
		return err
	}
	env.settle(settleSave)
	return nil
}

func stepWiFiSecurity(ctx context.Context, env *Env) error {
	wifiPassword := env.Config.GetString(config.KeyWiFiPassword, "")
	encryption := env.Config.GetString(config.KeyWiFiEncryption, defaultEncryption)

	session, err := env.Session(ctx)
	if err != nil {
		return err
	}

	if err := session.Click(ctx, `a[href="/network/wlan"]`, "WLAN"); err != nil {
		return err
	}
	env.settle(settleMenu)

	if err := session.Click(ctx, ".ui-select-button", "No Encryption"); err != nil {
		return err
	}
	env.settle(settleSelect)

	if err := session.Click(ctx, "a.ui-select-datalist-li", encryption); err != nil {
		return err
	}
	env.settle(settleSelect)

	if err := session.Fill(ctx, "#ap_pwd", wifiPassword); err != nil {
		return err
	}
	if err := session.Click(ctx, "button", "Save & Apply"); err != nil {
		return err
	}
	env.settle(settleSave)
	return nil
}
