package botcfg

import "gopkg.in/gcfg.v1"
import "log"

type Config struct {
	TGBot struct {
		Token string
	}

	Proxy_SOCKS5 struct {
		Server string
		User   string
		Pass   string
	}

	Redis struct {
		Server string
		Pass   string
		DB     int
	}

	Data struct {
		Dir      string
		Language string
		Currency string
	}
}

func Read(filename string) (Config, error) {
	log.Printf("Reading configuration from: %s", filename)

	var cfg Config
	// sane fallbacks for everything but the token
	cfg.Data.Dir = "user_data"
	cfg.Data.Language = "en"
	cfg.Data.Currency = "USD"

	err := gcfg.ReadFileInto(&cfg, filename)
	if err != nil {
		log.Printf("Could not correctly parse configuration file: %s; error: %s", filename, err)
		return cfg, err
	}

	log.Printf("Configuration has been successfully read from %s: %+v", filename, cfg)
	return cfg, nil
}
