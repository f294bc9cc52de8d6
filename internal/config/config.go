package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig
	POI        POIConfig
	Routing    RoutingConfig
	Navigation NavigationConfig
	Cluster    ClusterConfig
	Redis      RedisConfig
	Cache      CacheConfig
	Log        LogConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

// POIConfig - параметры загрузки индекса и записей POI со статического хоста
type POIConfig struct {
	IndexURL         string
	ObjectsBaseURL   string
	RequestTimeout   time.Duration
	DefaultLimit     int
	MaxLimit         int
	FetchConcurrency int
}

// RoutingConfig - параметры пешеходного роутинг-сервиса (OSRM-совместимый контракт)
type RoutingConfig struct {
	BaseURL        string
	Profile        string
	RequestTimeout time.Duration
}

// NavigationConfig - параметры симуляции движения аватара
type NavigationConfig struct {
	// Скорость за один тик, в градусах
	Speed float64
	// Порог прибытия к точке маршрута, в градусах
	ArrivalThreshold float64
	// Коэффициент сглаживания bearing за тик (0..1)
	BearingSmoothing float64
	// Дополнительный поворот камеры относительно bearing, в градусах
	CameraBearingOffset float64
	// Интервал тика движения
	UpdateInterval time.Duration
}

// ClusterConfig - параметры визуальной кластеризации (передаются карте, не вычисляются)
type ClusterConfig struct {
	MaxZoom int
	Radius  int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CacheConfig struct {
	IndexCacheTTL  time.Duration
	RecordCacheTTL time.Duration
}

type LogConfig struct {
	Level string
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("API_HOST"),
			Port: viper.GetInt("API_PORT"),
			Env:  viper.GetString("API_ENV"),
		},
		POI: POIConfig{
			IndexURL:         viper.GetString("POI_INDEX_URL"),
			ObjectsBaseURL:   viper.GetString("POI_OBJECTS_BASE_URL"),
			RequestTimeout:   time.Duration(viper.GetInt("POI_REQUEST_TIMEOUT")) * time.Second,
			DefaultLimit:     viper.GetInt("POI_DEFAULT_LIMIT"),
			MaxLimit:         viper.GetInt("POI_MAX_LIMIT"),
			FetchConcurrency: viper.GetInt("POI_FETCH_CONCURRENCY"),
		},
		Routing: RoutingConfig{
			BaseURL:        viper.GetString("ROUTING_BASE_URL"),
			Profile:        viper.GetString("ROUTING_PROFILE"),
			RequestTimeout: time.Duration(viper.GetInt("ROUTING_REQUEST_TIMEOUT")) * time.Second,
		},
		Navigation: NavigationConfig{
			Speed:               viper.GetFloat64("NAV_SPEED"),
			ArrivalThreshold:    viper.GetFloat64("NAV_ARRIVAL_THRESHOLD"),
			BearingSmoothing:    viper.GetFloat64("NAV_BEARING_SMOOTHING"),
			CameraBearingOffset: viper.GetFloat64("NAV_CAMERA_BEARING_OFFSET"),
			UpdateInterval:      time.Duration(viper.GetInt("NAV_UPDATE_INTERVAL_MS")) * time.Millisecond,
		},
		Cluster: ClusterConfig{
			MaxZoom: viper.GetInt("CLUSTER_MAX_ZOOM"),
			Radius:  viper.GetInt("CLUSTER_RADIUS"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Cache: CacheConfig{
			IndexCacheTTL:  time.Duration(viper.GetInt("INDEX_CACHE_TTL")) * time.Second,
			RecordCacheTTL: time.Duration(viper.GetInt("RECORD_CACHE_TTL")) * time.Second,
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
	}

	applyDefaults(cfg)

	return cfg, nil
}

// applyDefaults - значения по умолчанию, если не заданы в окружении
func applyDefaults(cfg *Config) {
	if cfg.POI.RequestTimeout == 0 {
		cfg.POI.RequestTimeout = 15 * time.Second
	}
	if cfg.POI.DefaultLimit == 0 {
		cfg.POI.DefaultLimit = 100
	}
	if cfg.POI.MaxLimit == 0 {
		cfg.POI.MaxLimit = 500
	}
	if cfg.POI.FetchConcurrency == 0 {
		cfg.POI.FetchConcurrency = 8
	}
	if cfg.Routing.BaseURL == "" {
		cfg.Routing.BaseURL = "https://router.project-osrm.org"
	}
	if cfg.Routing.Profile == "" {
		cfg.Routing.Profile = "foot"
	}
	if cfg.Routing.RequestTimeout == 0 {
		cfg.Routing.RequestTimeout = 10 * time.Second
	}
	if cfg.Navigation.Speed == 0 {
		cfg.Navigation.Speed = 0.00002
	}
	if cfg.Navigation.ArrivalThreshold == 0 {
		cfg.Navigation.ArrivalThreshold = 0.00001
	}
	if cfg.Navigation.BearingSmoothing == 0 {
		cfg.Navigation.BearingSmoothing = 0.3
	}
	if cfg.Navigation.CameraBearingOffset == 0 {
		cfg.Navigation.CameraBearingOffset = 5
	}
	if cfg.Navigation.UpdateInterval == 0 {
		cfg.Navigation.UpdateInterval = 50 * time.Millisecond
	}
	if cfg.Cluster.MaxZoom == 0 {
		cfg.Cluster.MaxZoom = 14
	}
	if cfg.Cluster.Radius == 0 {
		cfg.Cluster.Radius = 50
	}
	if cfg.Cache.IndexCacheTTL == 0 {
		cfg.Cache.IndexCacheTTL = time.Hour
	}
	if cfg.Cache.RecordCacheTTL == 0 {
		cfg.Cache.RecordCacheTTL = 6 * time.Hour
	}
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
