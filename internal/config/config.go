// Package config loads the process configuration from environment
// variables into an explicit value object, validated once at startup and
// passed to whatever component needs it. No package-level state.
package config

import (
	"fmt"
	"net/url"
	"os"
)

// StorageDriver identifies a concrete persistent storage implementation.
type StorageDriver string

// Supported storage drivers.
const (
	StorageMemory   StorageDriver = "memory"   // in-memory only (tests / ephemeral)
	StorageSQLite   StorageDriver = "sqlite"   // embedded sqlite file
	StoragePostgres StorageDriver = "postgres" // PostgreSQL server
)

// BlobDriver identifies a blob backend for CSV exports.
type BlobDriver string

// Supported blob drivers.
const (
	BlobFilesystem BlobDriver = "fs"
	BlobS3         BlobDriver = "s3"
	BlobMemory     BlobDriver = "memory"
)

// Postgres holds the discrete connection settings for the postgres driver.
// All five are required when the driver is selected.
type Postgres struct {
	Host     string
	Port     string
	User     string
	Password string
	Database string
}

// DSN composes the connection string in URL form.
func (p Postgres) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(p.User, p.Password),
		Host:   p.Host + ":" + p.Port,
		Path:   "/" + p.Database,
	}
	return u.String()
}

// S3 holds the blob settings for the s3 driver. Bucket is required;
// credentials fall back to the default AWS chain when unset.
type S3 struct {
	Bucket          string
	Region          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
	SessionToken    string
	PathStyle       bool
}

// Config is the full process configuration.
//
//	ROWCORE_STORAGE_DRIVER: memory|sqlite|postgres (default sqlite)
//	ROWCORE_SQLITE_PATH: path to sqlite file (default ./rowcore.db)
//	ROWCORE_POSTGRES_{HOST,PORT,USER,PASSWORD,DATABASE}: required when driver=postgres
//	ROWCORE_BLOB_DRIVER: fs|s3|memory (default fs)
//	ROWCORE_BLOB_FS_ROOT: export directory when driver=fs (default ./exports)
//	ROWCORE_BLOB_S3_BUCKET: required when driver=s3
//	ROWCORE_BLOB_S3_{REGION,ENDPOINT,ACCESS_KEY_ID,SECRET_ACCESS_KEY,SESSION_TOKEN}: optional
//	ROWCORE_BLOB_S3_PATH_STYLE: true|false (default false)
//	ROWCORE_METRICS_ADDR: listen address for the /metrics endpoint (optional)
type Config struct {
	Storage     StorageDriver
	SQLitePath  string
	Postgres    Postgres
	Blob        BlobDriver
	FSRoot      string
	S3          S3
	MetricsAddr string
}

// Load reads and validates the configuration. Missing required variables
// for the selected drivers fail fast with the variable named in the error.
func Load() (Config, error) {
	cfg := Config{
		Storage:     StorageDriver(envDefault("ROWCORE_STORAGE_DRIVER", string(StorageSQLite))),
		SQLitePath:  envDefault("ROWCORE_SQLITE_PATH", "./rowcore.db"),
		Blob:        BlobDriver(envDefault("ROWCORE_BLOB_DRIVER", string(BlobFilesystem))),
		FSRoot:      envDefault("ROWCORE_BLOB_FS_ROOT", "./exports"),
		MetricsAddr: os.Getenv("ROWCORE_METRICS_ADDR"),
	}

	switch cfg.Storage {
	case StorageMemory, StorageSQLite:
	case StoragePostgres:
		var err error
		if cfg.Postgres, err = loadPostgres(); err != nil {
			return Config{}, err
		}
	default:
		return Config{}, fmt.Errorf("unknown storage driver %q", cfg.Storage)
	}

	switch cfg.Blob {
	case BlobFilesystem, BlobMemory:
	case BlobS3:
		var err error
		if cfg.S3, err = loadS3(); err != nil {
			return Config{}, err
		}
	default:
		return Config{}, fmt.Errorf("unknown blob driver %q", cfg.Blob)
	}

	return cfg, nil
}

func loadPostgres() (Postgres, error) {
	p := Postgres{}
	for _, v := range []struct {
		name   string
		target *string
	}{
		{"ROWCORE_POSTGRES_HOST", &p.Host},
		{"ROWCORE_POSTGRES_PORT", &p.Port},
		{"ROWCORE_POSTGRES_USER", &p.User},
		{"ROWCORE_POSTGRES_PASSWORD", &p.Password},
		{"ROWCORE_POSTGRES_DATABASE", &p.Database},
	} {
		val := os.Getenv(v.name)
		if val == "" {
			return Postgres{}, fmt.Errorf("required environment variable %s is not set", v.name)
		}
		*v.target = val
	}
	return p, nil
}

func loadS3() (S3, error) {
	bucket := os.Getenv("ROWCORE_BLOB_S3_BUCKET")
	if bucket == "" {
		return S3{}, fmt.Errorf("required environment variable ROWCORE_BLOB_S3_BUCKET is not set")
	}
	return S3{
		Bucket:          bucket,
		Region:          os.Getenv("ROWCORE_BLOB_S3_REGION"),
		Endpoint:        os.Getenv("ROWCORE_BLOB_S3_ENDPOINT"),
		AccessKeyID:     os.Getenv("ROWCORE_BLOB_S3_ACCESS_KEY_ID"),
		SecretAccessKey: os.Getenv("ROWCORE_BLOB_S3_SECRET_ACCESS_KEY"),
		SessionToken:    os.Getenv("ROWCORE_BLOB_S3_SESSION_TOKEN"),
		PathStyle:       os.Getenv("ROWCORE_BLOB_S3_PATH_STYLE") == "true",
	}, nil
}

func envDefault(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
