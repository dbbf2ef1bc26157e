package totp

// Config carries the environment secret from which the secret-at-rest
// encryption key and the backup-code hashing secret are derived. Loaded
// once at process start via the config package; a missing value fails
// loading, never degrades to an insecure default.
type Config struct {
	// EncryptionSecret feeds DeriveStorageKey. Must be at least 32 bytes.
	EncryptionSecret string `env:"TOTP_ENCRYPTION_SECRET,required"`

	// BackupCodeSecret keys the HMAC over backup codes. Must be set;
	// reusing EncryptionSecret here would tie the two rotation schedules
	// together.
	BackupCodeSecret string `env:"TOTP_BACKUP_CODE_SECRET,required"`
}
