package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

type Application struct {
	Host      string    `koanf:"host"`
	Frontend  Frontend  `koanf:"frontend"`
	Database  Database  `koanf:"db"`
	Auth      Auth      `koanf:"auth"`
	Gateway   Gateway   `koanf:"gateway"`
	Timesheet Timesheet `koanf:"timesheet"`
	Weather   Weather   `koanf:"weather"`
}

type Frontend struct {
	Enabled bool `koanf:"enabled"`
}

type Database struct {
	Host   string `koanf:"host"`
	Port   int    `koanf:"port"`
	User   string `koanf:"user"`
	Pass   string `koanf:"pass"`
	Name   string `koanf:"name"`
	Schema string `koanf:"schema"`
}

// Auth configures the Microsoft identity platform OAuth client used to
// reach the timesheet workflow on the user's behalf.
type Auth struct {
	TenantId     string   `koanf:"tenantid"`
	ClientId     string   `koanf:"clientid"`
	ClientSecret string   `koanf:"clientsecret"`
	Scopes       []string `koanf:"scopes"`
}

// Gateway selects and configures the backend that persists submitted
// timesheets into the spreadsheet store.
type Gateway struct {
	Provider     string       `koanf:"provider"`
	MSFlow       MSFlow       `koanf:"msflow"`
	GoogleSheets GoogleSheets `koanf:"gsheets"`
}

type MSFlow struct {
	ReferenceUrl string `koanf:"referenceurl"`
	SubmitUrl    string `koanf:"submiturl"`
}

type GoogleSheets struct {
	CredentialsFile string `koanf:"credentialsfile"`
	SpreadsheetId   string `koanf:"spreadsheetid"`
}

// Timesheet carries the form policy: the navigable window shape, default
// row times, and whether submission requires a named employee row.
type Timesheet struct {
	SpanDays        int    `koanf:"spandays"`
	WeekStartDay    int    `koanf:"weekstartday"` // 0 = Sunday .. 6 = Saturday
	DisallowFuture  bool   `koanf:"disallowfuture"`
	DefaultTimeIn   string `koanf:"defaulttimein"`
	DefaultTimeOut  string `koanf:"defaulttimeout"`
	RequireEmployee bool   `koanf:"requireemployee"`
	DefaultSite     string `koanf:"defaultsite"`
}

type Weather struct {
	DefaultLatitude  float64                `koanf:"defaultlatitude"`
	DefaultLongitude float64                `koanf:"defaultlongitude"`
	Sites            map[string]Coordinates `koanf:"sites"`
}

type Coordinates struct {
	Latitude  float64 `koanf:"latitude"`
	Longitude float64 `koanf:"longitude"`
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Application{
		Host: "http://localhost:3000",
		Frontend: Frontend{
			Enabled: true,
		},
		Database: Database{
			Host:   "localhost",
			Port:   5432,
			User:   "sitelog",
			Pass:   "",
			Name:   "sitelog",
			Schema: "sitelog",
		},
		Gateway: Gateway{
			Provider: "msflow",
		},
		Timesheet: Timesheet{
			SpanDays:       14,
			WeekStartDay:   4, // Thursday-to-Thursday fortnight
			DisallowFuture: true,
			DefaultTimeIn:  "07:00",
			DefaultTimeOut: "15:30",
			DefaultSite:    "JSBHQ",
		},
		Weather: Weather{
			DefaultLatitude:  -37.8167,
			DefaultLongitude: 145.0,
		},
	}, "koanf"), nil)
	if err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: "SITELOG_",
		TransformFunc: func(k, v string) (string, any) {
			// Transform the key.
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "SITELOG_")), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	return app, nil
}
