package config

import (
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

const DefaultPath = "./config/application.yaml"

const envPrefix = "PORTAL_"

type Application struct {
	Server    Server    `koanf:"server"`
	Frontend  Frontend  `koanf:"frontend"`
	Auth      Auth      `koanf:"auth"`
	Session   Session   `koanf:"session"`
	Dashboard Dashboard `koanf:"dashboard"`
	Database  Database  `koanf:"db"`
}

type Server struct {
	Addr         string        `koanf:"addr"`
	ReadTimeout  time.Duration `koanf:"readtimeout"`
	WriteTimeout time.Duration `koanf:"writetimeout"`
	IdleTimeout  time.Duration `koanf:"idletimeout"`
}

type Frontend struct {
	Enabled bool   `koanf:"enabled"`
	Dir     string `koanf:"dir"`
}

// Auth points at the external authentication service.
type Auth struct {
	BaseUrl string `koanf:"baseurl"`
	// Timeout bounds a single login or signup call; zero leaves it unbounded.
	Timeout time.Duration `koanf:"timeout"`
}

type Session struct {
	TTL           time.Duration `koanf:"ttl"`
	Cookie        string        `koanf:"cookie"`
	Secure        bool          `koanf:"secure"`
	SweepInterval time.Duration `koanf:"sweepinterval"`
}

// Dashboard holds the figures shown on the dashboard widgets.
type Dashboard struct {
	AttendancePercent float64 `koanf:"attendancepercent"`
	PendingLeaves     int     `koanf:"pendingleaves"`
	EmployeeCount     int     `koanf:"employeecount"`
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type Database struct {
	Driver string `koanf:"driver"`
	Host   string `koanf:"host"`
	Port   int    `koanf:"port"`
	User   string `koanf:"user"`
	Pass   string `koanf:"pass"`
	Name   string `koanf:"name"`
	Schema string `koanf:"schema"`
	// Path is the database file used by the sqlite driver.
	Path string `koanf:"path"`
}

func Defaults() Application {
	return Application{
		Server: Server{
			Addr:         ":8181",
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		Frontend: Frontend{
			Enabled: true,
			Dir:     "frontend",
		},
		Auth: Auth{
			BaseUrl: "http://localhost:3000",
		},
		Session: Session{
			TTL:           12 * time.Hour,
			Cookie:        "portal_session",
			SweepInterval: 15 * time.Minute,
		},
		Dashboard: Dashboard{
			AttendancePercent: 96.5,
			PendingLeaves:     2,
			EmployeeCount:     128,
		},
		Database: Database{
			Driver: DriverPostgres,
			Host:   "localhost",
			Port:   5432,
			User:   "portal",
			Pass:   "",
			Name:   "portal",
			Schema: "portal",
			Path:   "portal.db",
		},
	}
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Defaults(), "koanf"), nil)
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
		Prefix: envPrefix,
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, envPrefix)), "_", ".")
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
