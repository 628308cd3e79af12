package config

import (
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	StoreDriverMongo = "mongo"
	StoreDriverMySQL = "mysql"
)

// Config holds the application's configuration values.
type Config struct {
	AppName string `json:"appname"`
	AppEnv  string `json:"appenv"`
	AppPort uint16 `json:"appport"`
	GinMode string `json:"ginmode"`

	StoreDriver string `json:"store_driver"`
	MongoURI    string `json:"mongo_uri"`
	MongoDB     string `json:"mongo_db"`
	DBHost      string `json:"dbhost"`
	DBPort      uint16 `json:"dbport"`
	DBName      string `json:"dbname"`
	DBUSER      string `json:"dbuser"`
	DBPass      string `json:"dbpass"`

	JWTSecret string `json:"-"`

	FirebaseCredFile    string `json:"firebase_cred_json"`
	IdentityCountryCode string `json:"identity_country_code"`
	ModelDir            string `json:"model_dir"`
	TranslateURL        string `json:"translate_url"`
	GeoIPDBPath         string `json:"geoip_db_path"`
	LogFormat           string `json:"log_format"`
}

var config *Config
var once sync.Once

// LoadConfig loads the environment variables from a .env file, and returns a singleton Config instance.
// A missing .env file is not an error; the process environment is used as-is.
func LoadConfig() *Config {
	once.Do(func() {
		if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
			log.Warn().Err(err).Msg("error loading .env file")
		}

		appPort, _ := strconv.ParseUint(getEnv("APPPORT", "8080"), 10, 16)
		dbPort, _ := strconv.ParseUint(getEnv("DBPORT", "3306"), 10, 16)

		config = &Config{
			AppName: getEnv("APPNAME", "Digital Farm Management Portal"),
			AppEnv:  os.Getenv("APPENV"),
			AppPort: uint16(appPort),
			GinMode: getEnv("GINMODE", "release"),

			StoreDriver: getEnv("STORE_DRIVER", StoreDriverMongo),
			MongoURI:    getEnv("MONGO_URI", "mongodb://localhost:27017/"),
			MongoDB:     getEnv("MONGO_DB", "biosecure_portal"),
			DBHost:      os.Getenv("DBHOST"),
			DBPort:      uint16(dbPort),
			DBName:      os.Getenv("DBNAME"),
			DBUSER:      os.Getenv("DBUSER"),
			DBPass:      os.Getenv("DBPASS"),

			JWTSecret: os.Getenv("JWTSECRET"),

			FirebaseCredFile:    getEnv("FIREBASE_CRED_JSON", "serviceAccountKey.json"),
			IdentityCountryCode: getEnv("IDENTITY_COUNTRY_CODE", "+91"),
			ModelDir:            getEnv("MODEL_DIR", "artifacts"),
			TranslateURL:        os.Getenv("TRANSLATE_URL"),
			GeoIPDBPath:         os.Getenv("GEOIP_DB_PATH"),
			LogFormat:           os.Getenv("LOG_FORMAT"),
		}
	})
	return config
}

// ResetConfigForTest drops the cached singleton so the next LoadConfig re-reads the environment.
func ResetConfigForTest() {
	config = nil
	once = sync.Once{}
}

// IsTest reports whether the process runs with APPENV=test.
func (c *Config) IsTest() bool { return c != nil && c.AppEnv == "test" }

// ConnectMySQL establishes a connection to a MySQL database using the configuration values.
// With APPENV=test it opens a private in-memory SQLite database instead.
func ConnectMySQL() (*gorm.DB, error) {
	cfg := LoadConfig()
	gormCfg := &gorm.Config{TranslateError: true}

	if os.Getenv("APPENV") == "test" || cfg.IsTest() {
		db, err := gorm.Open(sqlite.Open("file::memory:"), gormCfg)
		if err != nil {
			return nil, err
		}
		// every new connection would see its own empty memory database
		sqlDB, err := db.DB()
		if err != nil {
			return nil, err
		}
		sqlDB.SetMaxOpenConns(1)
		return db, nil
	}

	// Build the Data Source Name (DSN) using the configuration values.
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?parseTime=true", cfg.DBUSER, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)

	db, err := gorm.Open(mysql.Open(dsn), gormCfg)
	if err != nil {
		return nil, err
	}

	return db, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
