package config

type StorageConfig struct {
	Provider string // local, s3

	// Local
	LocalPath string

	// S3
	S3Bucket  string
	S3Region  string
	S3BaseURL string
}

func loadStorageConfig() *StorageConfig {
	return &StorageConfig{
		Provider:  getEnv("STORAGE_PROVIDER", "local"),
		LocalPath: getEnv("STORAGE_LOCAL_PATH", "./uploads"),
		S3Bucket:  getEnv("STORAGE_S3_BUCKET", ""),
		S3Region:  getEnv("STORAGE_S3_REGION", "us-east-1"),
		S3BaseURL: getEnv("STORAGE_S3_BASE_URL", ""),
	}
}
