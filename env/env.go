package env

import (
	"fmt"
	"os"
	"time"
)

const (
	RestHost           = "REST_HOST"
	MaxFileSize        = "MAX_FILE_SIZE"
	UploadTickInterval = "UPLOAD_TICK_INTERVAL"
	CompletedTaskTTL   = "COMPLETED_TASK_TTL"
	StoreLatencyMin    = "STORE_LATENCY_MIN"
	StoreLatencyMax    = "STORE_LATENCY_MAX"
)

func NewErrNotSet(env string) error {
	return fmt.Errorf("env %s isn't set", env)
}

func Get(key string) (string, error) {
	value := os.Getenv(key)
	if value == "" {
		return "", NewErrNotSet(key)
	}
	return value, nil
}

func GetOptional(key string, optional string) string {
	value := os.Getenv(key)
	if value == "" {
		return optional
	}
	return value
}

func GetDuration(key string, optional time.Duration) (time.Duration, error) {
	value := os.Getenv(key)
	if value == "" {
		return optional, nil
	}

	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("env %s is not a duration: %v", key, err)
	}
	return d, nil
}
