// Package config loads the gwprov YAML configuration file and resolves
// dotted keys against it.
//
// The configuration is read once at startup and is read-only afterwards.
// A missing file or a parse error is fatal: the tool refuses to start a
// provisioning run with an incomplete picture of the credentials and
// network targets it will push to devices.
//
// Lookups never fail. Get, GetString and GetInt take a default and
// return it when the key is absent or has the wrong shape:
//
//	cfg, err := config.Load("config.yaml")
//	if err != nil {
//	    // fatal
//	}
//	addr := cfg.GetString(config.KeyChirpstackAddress, "192.168.1.1")
//	port := cfg.GetInt(config.KeyChirpstackPort, 1883)
//
// The exceptions are the two secrets guarded by hard preconditions
// (credentials.new_password and wifi.password); callers check those
// with Has before the steps that need them run.
package config
