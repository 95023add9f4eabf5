package config

import (
	"flag"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	BackendFile      = "file"
	BackendFirestore = "firestore"
)

type Config struct {
	Env         string            `yaml:"env" env-default:"local"`
	HTTP        HTTPConfig        `yaml:"http"`
	Backend     BackendConfig     `yaml:"backend"`
	Admin       AdminConfig       `yaml:"admin"`
	Documents   DocumentsConfig   `yaml:"documents"`
	FileStorage FileStorageConfig `yaml:"file_storage"`
}

type HTTPConfig struct {
	Host string `yaml:"host"`
	Port string `yaml:"port" env-default:"8080"`
}

// BackendConfig выбор варианта бэкенда; фиксируется на старте процесса
type BackendConfig struct {
	Kind         string          `yaml:"kind" env-default:"file"`
	APIBase      string          `yaml:"api_base"`
	SnapshotBase string          `yaml:"snapshot_base"`
	ReadyTimeout time.Duration   `yaml:"ready_timeout" env-default:"10s"`
	Firestore    FirestoreConfig `yaml:"firestore"`
}

type FirestoreConfig struct {
	ProjectID       string `yaml:"project_id"`
	CredentialsFile string `yaml:"credentials_file"`
	Bucket          string `yaml:"bucket"`
}

// AdminConfig токен записи: общесекретная настройка процесса, не
// пер-пользовательская. В production задается только через окружение.
type AdminConfig struct {
	WriteToken string `yaml:"write_token" env:"ADMIN_WRITE_TOKEN"`
}

type DocumentsConfig struct {
	BaseDir string `yaml:"base_dir" env-default:"./data"`
}

type FileStorageConfig struct {
	BaseDir string `yaml:"base_dir" env-default:"./uploads"`
	BaseURL string `yaml:"base_url" env-default:"/uploads"`
	MaxSize int64  `yaml:"max_size" env-default:"104857600"`
}

func MustLoad() *Config {
	path := fetchConfigPath()
	if path == "" {
		panic("config path is empty")
	}

	return MustLoadPath(path)
}

func MustLoadPath(configPath string) *Config {
	// check if file exists
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		panic("config file does not exist: " + configPath)
	}

	var cfg Config

	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		panic("cannot read config: " + err.Error())
	}

	return &cfg
}

func fetchConfigPath() string {
	var res string

	// --config="path/to/config.yaml"
	flag.StringVar(&res, "config", "", "path to config file")
	flag.Parse()

	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}

	return res
}
