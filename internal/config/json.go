package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON tags and
// string-friendly durations for file-based configuration.
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey  string   `json:"token_sign_key"`
		TokenIssuer   string   `json:"token_issuer"`
		TokenDuration Duration `json:"token_duration"`
		AIAPIKey      string   `json:"ai_api_key"`
		AIEndpoint    string   `json:"ai_endpoint"`
		AITimeout     Duration `json:"ai_timeout"`
		Version       string   `json:"version"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			Driver string `json:"driver"`
			DSN    string `json:"dsn"`
		} `json:"db,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Cache struct {
		TTL      Duration `json:"ttl"`
		Capacity int      `json:"capacity"`
	} `json:"cache,omitempty"`

	RateLimit struct {
		General  jsonLimitClass `json:"general,omitempty"`
		Search   jsonLimitClass `json:"search,omitempty"`
		Auth     jsonLimitClass `json:"auth,omitempty"`
		Mutation jsonLimitClass `json:"mutation,omitempty"`
	} `json:"rate_limit,omitempty"`

	Workers struct {
		SweepInterval Duration `json:"sweep_interval"`
		Retention     Duration `json:"retention"`
	} `json:"workers,omitempty"`
}

type jsonLimitClass struct {
	Max    int      `json:"max"`
	Window Duration `json:"window"`
}

func (c jsonLimitClass) toLimitClass() LimitClass {
	return LimitClass{Max: c.Max, Window: time.Duration(c.Window)}
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
			TokenSignKey:  jsonCfg.App.TokenSignKey,
			TokenIssuer:   jsonCfg.App.TokenIssuer,
			TokenDuration: time.Duration(jsonCfg.App.TokenDuration),
			AIAPIKey:      jsonCfg.App.AIAPIKey,
			AIEndpoint:    jsonCfg.App.AIEndpoint,
			AITimeout:     time.Duration(jsonCfg.App.AITimeout),
			Version:       jsonCfg.App.Version,
		},
		Storage: Storage{
			DB: DB{
				Driver: jsonCfg.Storage.DB.Driver,
				DSN:    jsonCfg.Storage.DB.DSN,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Cache: Cache{
			TTL:      time.Duration(jsonCfg.Cache.TTL),
			Capacity: jsonCfg.Cache.Capacity,
		},
		RateLimit: RateLimit{
			General:  jsonCfg.RateLimit.General.toLimitClass(),
			Search:   jsonCfg.RateLimit.Search.toLimitClass(),
			Auth:     jsonCfg.RateLimit.Auth.toLimitClass(),
			Mutation: jsonCfg.RateLimit.Mutation.toLimitClass(),
		},
		Workers: Workers{
			SweepInterval: time.Duration(jsonCfg.Workers.SweepInterval),
			Retention:     time.Duration(jsonCfg.Workers.Retention),
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s".
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
