//*****************************************************************************
// Copyright 2025 Intel Corporation
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//*****************************************************************************

package config

import (
	"log/slog"
	"net"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/MatusOllah/slogcolor"
	"github.com/fatih/color"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/intel/modelq/internal/client"
	"github.com/intel/modelq/internal/constants"
	"github.com/intel/modelq/internal/utils"
	"github.com/intel/modelq/version"
)

const (
	// Log levels
	LogLevelDebug = "debug"
	LogLevelWarn  = "warn"
	LogLevelError = "error"

	// Default configurations
	DefaultLogLevel = "ERROR"
	DefaultVerbose  = "info"
	DefaultRootDir  = "./"

	// Database types
	DatastoreSQLite = "sqlite"

	// Database file
	DefaultDatabaseFile = "modelq.db"

	// Directory names
	LogsDirectory = "logs"

	// File names
	ServerLogFile  = "server.log"
	ConsoleLogFile = "console.log"

	// Time formats
	DefaultTimeFormat = "2006-01-02 15:04:05"

	// Log file expiration in days
	DefaultLogExpireDays = 7

	// Worker pool defaults
	DefaultWorkers    = 2
	DefaultQueueDepth = 128
	DefaultOrphanTTL  = time.Hour

	// Environment variable keys
	EnvModelQHost  = "MODELQ_HOST"
	EnvModelsDir   = "MODELQ_MODELS_DIR"
	EnvModelSuffix = "MODELQ_MODEL_SUFFIX"
	EnvWorkers     = "MODELQ_WORKERS"
	EnvQueueDepth  = "MODELQ_QUEUE_DEPTH"
	EnvOrphanTTL   = "MODELQ_ORPHAN_TTL"
	EnvConfigFile  = "MODELQ_CONFIG"
)

var GlobalEnvironment *ModelQEnvironment

// ModelQEnvironment holds the resolved runtime configuration. Precedence is
// defaults, then the YAML config file, then MODELQ_* environment variables,
// then command line flags.
type ModelQEnvironment struct {
	ApiHost           string        // host:port the server listens on
	Datastore         string        // path to the datastore file
	DatastoreType     string        // type of the datastore
	Verbose           string        // debug, info or warn
	RootDir           string        // root directory for all assets
	APIVersion        string        // version of this app layer
	SpecVersion       string        // version of the API surface
	LogDir            string        // logs dir
	LogHTTP           string        // path to the http log
	LogLevel          string        // log level
	LogFileExpireDays int           // log file expiration time
	ConsoleLog        string        // server console log path
	ModelsDir         string        // folder holding model artifacts
	ModelSuffix       string        // artifact file suffix
	Workers           int           // broker worker pool size
	QueueDepth        int           // broker submission buffer
	OrphanTTL         time.Duration // reap non-terminal task records older than this
}

var (
	once         sync.Once
	envSingleton *ModelQEnvironment
)

type ModelQClient struct {
	client.Client
}

func NewModelQClient() *ModelQClient {
	return &ModelQClient{
		Client: *client.NewClient(Host(), http.DefaultClient),
	}
}

// configFile is the YAML shape of the optional config file.
type configFile struct {
	Host        string `yaml:"host"`
	ModelsDir   string `yaml:"models_dir"`
	ModelSuffix string `yaml:"model_suffix"`
	Workers     int    `yaml:"workers"`
	QueueDepth  int    `yaml:"queue_depth"`
	OrphanTTL   string `yaml:"orphan_ttl"`
	Verbose     string `yaml:"verbose"`
}

// Host returns the scheme and host. Host can be configured via the
// MODELQ_HOST environment variable. Default is "127.0.0.1:16799".
func Host() *url.URL {
	defaultPort := constants.DefaultHTTPPort

	s := strings.TrimSpace(Var(EnvModelQHost))
	scheme, hostport, ok := strings.Cut(s, "://")
	switch {
	case !ok:
		scheme, hostport = constants.ProtocolHTTP, s
	case scheme == constants.ProtocolHTTPS:
		defaultPort = "443"
	}

	hostport, path, _ := strings.Cut(hostport, "/")
	host, port, err := net.SplitHostPort(hostport)
	if err != nil {
		host, port = constants.DefaultHost, defaultPort
		if ip := net.ParseIP(strings.Trim(hostport, "[]")); ip != nil {
			host = ip.String()
		} else if hostport != "" {
			host = hostport
		}
	}

	if n, err := strconv.ParseInt(port, 10, 32); err != nil || n > 65535 || n < 0 {
		slog.Warn("invalid port, using default", "port", port, "default", defaultPort)
		port = defaultPort
	}

	return &url.URL{
		Scheme: scheme,
		Host:   net.JoinHostPort(host, port),
		Path:   path,
	}
}

// Var returns an environment variable stripped of leading and trailing quotes or spaces
func Var(key string) string {
	return strings.Trim(strings.TrimSpace(os.Getenv(key)), "\"'")
}

func NewModelQEnvironment() *ModelQEnvironment {
	once.Do(func() {
		env := ModelQEnvironment{
			ApiHost:           constants.DefaultHost + ":" + constants.DefaultHTTPPort,
			Datastore:         DefaultDatabaseFile,
			DatastoreType:     DatastoreSQLite,
			LogDir:            LogsDirectory,
			LogHTTP:           ServerLogFile,
			LogLevel:          DefaultLogLevel,
			LogFileExpireDays: DefaultLogExpireDays,
			Verbose:           DefaultVerbose,
			RootDir:           DefaultRootDir,
			APIVersion:        version.ModelQVersion,
			SpecVersion:       version.SpecVersion,
			ConsoleLog:        ConsoleLogFile,
			ModelsDir:         constants.DefaultModelsDirName,
			ModelSuffix:       constants.DefaultModelSuffix,
			Workers:           DefaultWorkers,
			QueueDepth:        DefaultQueueDepth,
			OrphanTTL:         DefaultOrphanTTL,
		}

		env.applyConfigFile()
		env.applyEnvVars()

		var err error
		env.RootDir, err = utils.GetDataDir()
		if err != nil {
			panic("[Init Env] get data dir failed: " + err.Error())
		}
		env.Datastore = utils.GetAbsolutePath(env.Datastore, env.RootDir)
		env.ModelsDir = utils.GetAbsolutePath(env.ModelsDir, env.RootDir)
		env.LogDir = filepath.Join(env.RootDir, env.LogDir)
		env.LogHTTP = filepath.Join(env.LogDir, env.LogHTTP)
		env.ConsoleLog = filepath.Join(env.LogDir, env.ConsoleLog)
		if err := os.MkdirAll(env.LogDir, 0o750); err != nil {
			panic("[Init Env] create logs path : " + err.Error())
		}

		envSingleton = &env
	})
	return envSingleton
}

// applyConfigFile overlays values from the YAML file named by MODELQ_CONFIG.
// A missing file is not an error; a present but unreadable one is fatal.
func (s *ModelQEnvironment) applyConfigFile() {
	path := Var(EnvConfigFile)
	if path == "" {
		return
	}
	data, err := os.ReadFile(path)
	if err != nil {
		panic("[Init Env] read config file: " + err.Error())
	}
	var cf configFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		panic("[Init Env] parse config file: " + err.Error())
	}
	if cf.Host != "" {
		s.ApiHost = cf.Host
	}
	if cf.ModelsDir != "" {
		s.ModelsDir = cf.ModelsDir
	}
	if cf.ModelSuffix != "" {
		s.ModelSuffix = cf.ModelSuffix
	}
	if cf.Workers > 0 {
		s.Workers = cf.Workers
	}
	if cf.QueueDepth > 0 {
		s.QueueDepth = cf.QueueDepth
	}
	if cf.OrphanTTL != "" {
		if d, err := time.ParseDuration(cf.OrphanTTL); err == nil {
			s.OrphanTTL = d
		} else {
			slog.Warn("invalid orphan_ttl in config file, using default", "value", cf.OrphanTTL, "default", s.OrphanTTL)
		}
	}
	if cf.Verbose != "" {
		s.Verbose = cf.Verbose
	}
}

func (s *ModelQEnvironment) applyEnvVars() {
	if host := Var(EnvModelQHost); host != "" {
		s.ApiHost = Host().Host
	}
	if dir := Var(EnvModelsDir); dir != "" {
		s.ModelsDir = dir
	}
	if suffix := Var(EnvModelSuffix); suffix != "" {
		s.ModelSuffix = suffix
	}
	if workersStr := Var(EnvWorkers); workersStr != "" {
		if n, err := strconv.Atoi(workersStr); err == nil && n > 0 {
			s.Workers = n
		} else {
			slog.Warn("invalid worker count, using default", "value", workersStr, "default", s.Workers)
		}
	}
	if depthStr := Var(EnvQueueDepth); depthStr != "" {
		if n, err := strconv.Atoi(depthStr); err == nil && n > 0 {
			s.QueueDepth = n
		} else {
			slog.Warn("invalid queue depth, using default", "value", depthStr, "default", s.QueueDepth)
		}
	}
	if ttlStr := Var(EnvOrphanTTL); ttlStr != "" {
		if d, err := time.ParseDuration(ttlStr); err == nil {
			s.OrphanTTL = d
		} else {
			slog.Warn("invalid orphan TTL, using default", "value", ttlStr, "default", s.OrphanTTL)
		}
	}
}

// FlagSets Define a struct to hold the flag sets and their order
type FlagSets struct {
	Order    []string
	FlagSets map[string]*pflag.FlagSet
}

// NewFlagSets Initialize the FlagSets struct
func NewFlagSets() *FlagSets {
	return &FlagSets{
		Order:    []string{},
		FlagSets: make(map[string]*pflag.FlagSet),
	}
}

// AddFlagSet Add a flag set to the struct and maintain the order
func (fs *FlagSets) AddFlagSet(name string, flagSet *pflag.FlagSet) {
	if _, exists := fs.FlagSets[name]; !exists {
		fs.Order = append(fs.Order, name)
	}
	fs.FlagSets[name] = flagSet
}

// GetFlagSet Get the flag set by name, creating it if it doesn't exist
func (fs *FlagSets) GetFlagSet(name string) *pflag.FlagSet {
	if _, exists := fs.FlagSets[name]; !exists {
		fs.FlagSets[name] = pflag.NewFlagSet(name, pflag.ExitOnError)
		fs.Order = append(fs.Order, name)
	}
	return fs.FlagSets[name]
}

// Flags returns the flag sets for the ModelQEnvironment.
func (s *ModelQEnvironment) Flags() *FlagSets {
	fss := NewFlagSets()
	fs := fss.GetFlagSet("generic")
	fs.StringVar(&s.ApiHost, "app-host", s.ApiHost, "API host")
	fs.StringVar(&s.ModelsDir, "models-dir", s.ModelsDir, "Model artifact folder")
	fs.IntVar(&s.Workers, "workers", s.Workers, "Background worker count")
	fs.StringVar(&s.Verbose, "verbose", s.Verbose, "Log verbosity level")
	return fss
}

func (s *ModelQEnvironment) SetSlogColor() {
	opts := slogcolor.DefaultOptions
	if s.Verbose == LogLevelDebug {
		opts.Level = slog.LevelDebug
	} else if s.Verbose == LogLevelWarn {
		opts.Level = slog.LevelWarn
	} else {
		opts.Level = slog.LevelInfo
	}
	opts.SrcFileMode = slogcolor.Nop
	opts.MsgColor = color.New(color.FgHiYellow)

	slog.SetDefault(slog.New(slogcolor.NewHandler(os.Stderr, opts)))
	_, _ = color.New(color.FgHiCyan).Println(">>>>>> ModelQ Starting : " + time.Now().Format(DefaultTimeFormat) + "\n\n")
	defer func() {
		_, _ = color.New(color.FgHiGreen).Println("\n\n<<<<<< ModelQ Stopped : " + time.Now().Format(DefaultTimeFormat))
	}()
}
