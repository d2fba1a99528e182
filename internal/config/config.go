package config

import (
	"flag"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

type Config struct {
	Env         string            `yaml:"env" env:"ENV" env-default:"local"`
	DSN         string            `yaml:"dsn" env:"DSN" env-required:"true"`
	HTTP        HTTPConfig        `yaml:"http"`
	Redis       RedisConf         `yaml:"redis"`
	ContentAPI  ContentAPIConfig  `yaml:"content_api"`
	Feed        FeedConfig        `yaml:"feed"`
	Carousel    CarouselConfig    `yaml:"carousel"`
	Cache       CacheConfig       `yaml:"cache"`
	ImageHost   ImageHostConfig   `yaml:"image_host"`
	Admin       AdminConfig       `yaml:"admin"`
	Translation TranslationConfig `yaml:"translation"`
}

type HTTPConfig struct {
	Host            string        `yaml:"host"`
	Port            string        `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	ReadTimeout     time.Duration `yaml:"read_timeout" env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env-default:"15s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env-default:"10s"`
	AllowedOrigins  []string      `yaml:"allowed_origins" env:"ALLOWED_ORIGINS" env-separator:","`
}

type RedisConf struct {
	RedisAddr     string `yaml:"redis_addr" env:"REDIS_ADDR"`
	RedisPassword string `yaml:"redispassword" env:"REDIS_PASSWORD"`
	RedisDB       int    `yaml:"redis_db" env:"REDIS_DB"`
}

// ContentAPIConfig points the fetcher at the four content endpoints. BaseURL
// defaults to this server itself.
type ContentAPIConfig struct {
	BaseURL      string        `yaml:"base_url" env:"CONTENT_API_URL" env-default:"http://localhost:8080"`
	GalleryPath  string        `yaml:"gallery_path" env-default:"/api/v1/gallery"`
	AwardsPath   string        `yaml:"awards_path" env-default:"/api/v1/awards"`
	ServicesPath string        `yaml:"services_path" env-default:"/api/v1/services"`
	AboutPath    string        `yaml:"about_path" env-default:"/api/v1/about"`
	Timeout      time.Duration `yaml:"timeout" env-default:"5s"`
}

type FeedConfig struct {
	PageSize int `yaml:"page_size" env-default:"12"`
}

// CarouselConfig holds one autoplay interval per view.
type CarouselConfig struct {
	GalleryInterval time.Duration `yaml:"gallery_interval" env-default:"3s"`
	RecentInterval  time.Duration `yaml:"recent_interval" env-default:"4s"`
	AwardsInterval  time.Duration `yaml:"awards_interval" env-default:"4s"`
}

type CacheConfig struct {
	TTL             time.Duration `yaml:"ttl" env-default:"1m"`
	CleanupInterval time.Duration `yaml:"cleanup_interval" env-default:"5m"`
	RedisTTL        time.Duration `yaml:"redis_ttl" env-default:"10m"`
	RebuildTimeout  time.Duration `yaml:"rebuild_timeout" env-default:"15s"`
}

// ImageHostConfig selects where uploads go: "local" or "s3".
type ImageHostConfig struct {
	Driver  string   `yaml:"driver" env:"IMAGE_HOST_DRIVER" env-default:"local"`
	MaxSize int64    `yaml:"max_size" env-default:"10485760"`
	Local   LocalDir `yaml:"local"`
	S3      S3Config `yaml:"s3"`
}

type LocalDir struct {
	BaseDir string `yaml:"base_dir" env-default:"./uploads"`
	BaseURL string `yaml:"base_url" env-default:"/uploads"`
}

type S3Config struct {
	Endpoint        string `yaml:"endpoint" env:"S3_ENDPOINT"`
	Region          string `yaml:"region" env:"S3_REGION" env-default:"auto"`
	Bucket          string `yaml:"bucket" env:"S3_BUCKET"`
	AccessKeyID     string `yaml:"access_key_id" env:"S3_ACCESS_KEY_ID"`
	SecretAccessKey string `yaml:"secret_access_key" env:"S3_SECRET_ACCESS_KEY"`
	PublicURL       string `yaml:"public_url" env:"S3_PUBLIC_URL"`
}

type AdminConfig struct {
	Username     string        `yaml:"username" env:"ADMIN_USERNAME" env-default:"admin"`
	PasswordHash string        `yaml:"password_hash" env:"ADMIN_PASSWORD_HASH"`
	JWTSecret    string        `yaml:"jwt_secret" env:"JWT_SECRET"`
	TokenTTL     time.Duration `yaml:"token_ttl" env-default:"1h"`
}

// TranslationConfig lists the languages offered next to the base English.
type TranslationConfig struct {
	Languages []string      `yaml:"languages" env:"LANGUAGES" env-separator:"," env-default:"ru"`
	CookieTTL time.Duration `yaml:"cookie_ttl" env-default:"720h"`
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

	// .env is optional, real environment wins
	_ = godotenv.Load()

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
