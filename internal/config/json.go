package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] in the shape of the JSON
// config file. Durations are written as strings ("24h", "30m").
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey     string   `json:"token_sign_key"`
		TokenIssuer      string   `json:"token_issuer"`
		TokenDuration    Duration `json:"token_duration"`
		PasswordHashCost int      `json:"password_hash_cost"`
		ResetTokenTTL    Duration `json:"reset_token_ttl"`
		FrontendURL      string   `json:"frontend_url"`
		Environment      string   `json:"environment"`
		Version          string   `json:"version"`
		AllowedOrigins   []string `json:"allowed_origins"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		Images struct {
			Bucket    string `json:"bucket"`
			Region    string `json:"region"`
			Endpoint  string `json:"endpoint"`
			AccessKey string `json:"access_key"`
			SecretKey string `json:"secret_key"`
			Folder    string `json:"folder"`
			MaxSize   int64  `json:"max_size"`
		} `json:"images,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		GRPCAddress    string   `json:"grpc_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Mail struct {
		Transport   string   `json:"transport"`
		Sender      string   `json:"sender"`
		Region      string   `json:"region"`
		RelayURL    string   `json:"relay_url"`
		RelayAPIKey string   `json:"relay_api_key"`
		Timeout     Duration `json:"timeout"`
	} `json:"mail,omitempty"`

	Workers struct {
		TokenCleanupInterval Duration `json:"token_cleanup_interval"`
	} `json:"workers,omitempty"`
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
			ResetTokenTTL:    time.Duration(jsonCfg.App.ResetTokenTTL),
			FrontendURL:      jsonCfg.App.FrontendURL,
			Environment:      jsonCfg.App.Environment,
			Version:          jsonCfg.App.Version,
			AllowedOrigins:   jsonCfg.App.AllowedOrigins,
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
			Images: Images{
				Bucket:    jsonCfg.Storage.Images.Bucket,
				Region:    jsonCfg.Storage.Images.Region,
				Endpoint:  jsonCfg.Storage.Images.Endpoint,
				AccessKey: jsonCfg.Storage.Images.AccessKey,
				SecretKey: jsonCfg.Storage.Images.SecretKey,
				Folder:    jsonCfg.Storage.Images.Folder,
				MaxSize:   jsonCfg.Storage.Images.MaxSize,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			GRPCAddress:    jsonCfg.Server.GRPCAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Mail: Mail{
			Transport:   jsonCfg.Mail.Transport,
			Sender:      jsonCfg.Mail.Sender,
			Region:      jsonCfg.Mail.Region,
			RelayURL:    jsonCfg.Mail.RelayURL,
			RelayAPIKey: jsonCfg.Mail.RelayAPIKey,
			Timeout:     time.Duration(jsonCfg.Mail.Timeout),
		},
		Workers: Workers{
			TokenCleanupInterval: time.Duration(jsonCfg.Workers.TokenCleanupInterval),
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
