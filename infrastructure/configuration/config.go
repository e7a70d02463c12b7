package configuration

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/viper"

	"meetfood/infrastructure/logger"
)

type Config struct {
	App         App         `json:"app"`
	Database    Database    `json:"database"`
	RedisClient RedisClient `json:"redisClient"`
	S3          S3          `json:"s3"`
	Cognito     Cognito     `json:"cognito"`
	RateLimit   RateLimit   `json:"rateLimit"`
}

type App struct {
	Port      int    `json:"port"`
	SecretKey string `json:"secretKey"`
}

type Database struct {
	Mongo Db `json:"mongo"`
}

type Db struct {
	Name     string `json:"name"`
	Host     string `json:"host"`
	Port     string `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
}

type RedisClient struct {
	Host     string `json:"host"`
	Port     string `json:"port"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// S3 holds one bucket and one public URL prefix per asset class.
type S3 struct {
	Region                string `json:"region"`
	AccessKeyID           string `json:"accessKeyId"`
	SecretAccessKey       string `json:"secretAccessKey"`
	VideoBucket           string `json:"videoBucket"`
	CoverImageBucket      string `json:"coverImageBucket"`
	ProfilePhotoBucket    string `json:"profilePhotoBucket"`
	VideoURLPrefix        string `json:"videoUrlPrefix"`
	CoverImageURLPrefix   string `json:"coverImageUrlPrefix"`
	ProfilePhotoURLPrefix string `json:"profilePhotoUrlPrefix"`
}

type Cognito struct {
	Region     string `json:"region"`
	UserPoolID string `json:"userPoolId"`
	ClientID   string `json:"clientId"`
}

// Issuer is the OIDC issuer URL of the configured user pool.
func (c Cognito) Issuer() string {
	return fmt.Sprintf("https://cognito-idp.%s.amazonaws.com/%s", c.Region, c.UserPoolID)
}

type RateLimit struct {
	MaxRequests   int `json:"maxRequests"`
	WindowSeconds int `json:"windowSeconds"`
}

var C Config

func init() {
	LoadConfig()
	initApp(&C)
	initDatabase(&C)
	initAWS(&C)
}

func LoadConfig() {
	name := getConfig()
	viper.SetConfigName(name)
	viper.SetConfigType("json")
	viper.AddConfigPath(".")
	viper.AddConfigPath("../")
	viper.AddConfigPath("../../")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			logger.GetLogger().Warn("Config file not found")
		} else {
			logger.GetLogger().WithField("error", err).Error("Error reading config file")
		}
	}

	if err := viper.Unmarshal(&C); err != nil {
		logger.GetLogger().WithField("error", err).Error("Viper unable to decode into struct")
	}
	logger.GetLogger().WithField("config", name).Info("Config set up successfully")
}

func getConfig() string {
	name := "config"
	if env := os.Getenv("ENV"); env != "" {
		name = fmt.Sprintf("%s-%s", name, env)
	}
	return name
}

func initApp(C *Config) {
	// Port resolution order (env overrides config): APP_PORT -> PORT -> config -> default 3000
	if v := os.Getenv("APP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			C.App.Port = p
		}
	} else if v := os.Getenv("PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			C.App.Port = p
		}
	}
	if C.App.Port == 0 {
		C.App.Port = 3000
	}
	if v := os.Getenv("SECRET_KEY"); v != "" {
		C.App.SecretKey = v
	}
	if C.RateLimit.MaxRequests == 0 {
		C.RateLimit.MaxRequests = 2000
	}
	if C.RateLimit.WindowSeconds == 0 {
		C.RateLimit.WindowSeconds = 3600
	}
}

func initDatabase(C *Config) {
	if C.Database.Mongo.Host == "" {
		C.Database.Mongo.Host = os.Getenv("MONGO_HOST")
	}
	if C.Database.Mongo.Port == "" {
		if v := os.Getenv("MONGO_PORT"); v != "" {
			C.Database.Mongo.Port = v
		} else {
			C.Database.Mongo.Port = "27017"
		}
	}
	if C.Database.Mongo.User == "" {
		C.Database.Mongo.User = os.Getenv("MONGO_USER")
	}
	if C.Database.Mongo.Password == "" {
		C.Database.Mongo.Password = os.Getenv("MONGO_PASSWORD")
	}
	if C.Database.Mongo.Name == "" {
		if v := os.Getenv("MONGO_DB_NAME"); v != "" {
			C.Database.Mongo.Name = v
		} else {
			C.Database.Mongo.Name = "seefood-database"
		}
	}
}

func initAWS(C *Config) {
	if v := os.Getenv("AWS_REGION"); v != "" && C.S3.Region == "" {
		C.S3.Region = v
	}
	if v := os.Getenv("S3_ACCESS_KEY_ID"); v != "" {
		C.S3.AccessKeyID = v
	}
	if v := os.Getenv("S3_SECRET_ACCESS_KEY"); v != "" {
		C.S3.SecretAccessKey = v
	}
	if v := os.Getenv("COGNITO_USER_POOL_ID"); v != "" {
		C.Cognito.UserPoolID = v
	}
	if v := os.Getenv("COGNITO_CLIENT_ID"); v != "" {
		C.Cognito.ClientID = v
	}
	if C.Cognito.Region == "" {
		C.Cognito.Region = C.S3.Region
	}
	if C.App.SecretKey == "" && C.Cognito.UserPoolID == "" {
		logger.GetLogger().Warn("Neither Cognito user pool nor App.SecretKey configured; token verification will fail.")
	}
}
