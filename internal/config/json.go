package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] in the shape of the JSON
// configuration file. Durations may be given as strings ("12h") or numbers
// of nanoseconds.
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey     string   `json:"token_sign_key"`
		TokenIssuer      string   `json:"token_issuer"`
		TokenDuration    Duration `json:"token_duration"`
		PasswordHashCost int      `json:"password_hash_cost"`
		SearchLimit      uint64   `json:"search_limit"`
		LogLevel         string   `json:"log_level"`
		Version          string   `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		Objects struct {
			Endpoint  string `json:"endpoint"`
			Region    string `json:"region"`
			Bucket    string `json:"bucket"`
			AccessKey string `json:"access_key"`
			SecretKey string `json:"secret_key"`
			PublicURL string `json:"public_url"`
		} `json:"objects,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
		AllowedOrigins []string `json:"allowed_origins"`
		FrontendURL    string   `json:"frontend_url"`
		CookieName     string   `json:"cookie_name"`
		CookieSecure   bool     `json:"cookie_secure"`
		CookieSameSite string   `json:"cookie_same_site"`
		MaxUploadSize  int64    `json:"max_upload_size"`
	} `json:"server,omitempty"`

	OAuth struct {
		ClientID     string `json:"client_id"`
		ClientSecret string `json:"client_secret"`
		RedirectURL  string `json:"redirect_url"`
	} `json:"oauth,omitempty"`

	Adapter struct {
		Extractor struct {
			URL       string   `json:"url"`
			Timeout   Duration `json:"timeout"`
			TextLimit int      `json:"text_limit"`
		} `json:"extractor,omitempty"`

		AI struct {
			URL     string   `json:"url"`
			APIKey  string   `json:"api_key"`
			Model   string   `json:"model"`
			Timeout Duration `json:"timeout"`
		} `json:"ai,omitempty"`
	} `json:"adapter,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		App: App{
			TokenSignKey:     jsonCfg.App.TokenSignKey,
			TokenIssuer:      jsonCfg.App.TokenIssuer,
			TokenDuration:    time.Duration(jsonCfg.App.TokenDuration),
			PasswordHashCost: jsonCfg.App.PasswordHashCost,
			SearchLimit:      jsonCfg.App.SearchLimit,
			LogLevel:         jsonCfg.App.LogLevel,
			Version:          jsonCfg.App.Version,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
			Objects: Objects{
				Endpoint:  jsonCfg.Storage.Objects.Endpoint,
				Region:    jsonCfg.Storage.Objects.Region,
				Bucket:    jsonCfg.Storage.Objects.Bucket,
				AccessKey: jsonCfg.Storage.Objects.AccessKey,
				SecretKey: jsonCfg.Storage.Objects.SecretKey,
				PublicURL: jsonCfg.Storage.Objects.PublicURL,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
			AllowedOrigins: jsonCfg.Server.AllowedOrigins,
			FrontendURL:    jsonCfg.Server.FrontendURL,
			CookieName:     jsonCfg.Server.CookieName,
			CookieSecure:   jsonCfg.Server.CookieSecure,
			CookieSameSite: jsonCfg.Server.CookieSameSite,
			MaxUploadSize:  jsonCfg.Server.MaxUploadSize,
		},
		OAuth: OAuth{
			ClientID:     jsonCfg.OAuth.ClientID,
			ClientSecret: jsonCfg.OAuth.ClientSecret,
			RedirectURL:  jsonCfg.OAuth.RedirectURL,
		},
		Adapter: Adapter{
			Extractor: Extractor{
				URL:       jsonCfg.Adapter.Extractor.URL,
				Timeout:   time.Duration(jsonCfg.Adapter.Extractor.Timeout),
				TextLimit: jsonCfg.Adapter.Extractor.TextLimit,
			},
			AI: AI{
				URL:     jsonCfg.Adapter.AI.URL,
				APIKey:  jsonCfg.Adapter.AI.APIKey,
				Model:   jsonCfg.Adapter.AI.Model,
				Timeout: time.Duration(jsonCfg.Adapter.AI.Timeout),
			},
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
