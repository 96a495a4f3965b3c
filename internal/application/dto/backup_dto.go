package dto

// BackupInfoResponse descripción de un backup existente.
type BackupInfoResponse struct {
	Name       string  `json:"name"`
	SizeMB     float64 `json:"size_mb"`
	CreatedAt  string  `json:"created_at"`
	AgeDays    int     `json:"age_days"`
	Compressed bool    `json:"compressed"`
}

// BackupRunResponse resultado de ejecutar un ciclo de backup.
type BackupRunResponse struct {
	Created    *BackupInfoResponse `json:"created,omitempty"`
	Removed    int                 `json:"removed"`
	DurationMS int64               `json:"duration_ms"`
}
