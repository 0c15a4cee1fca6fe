package dto

import "time"

// BackupResponse resultado de POST /api/backups.
type BackupResponse struct {
	Path string `json:"path"`
}

// RestoreBackupRequest body para POST /api/backups/restore.
type RestoreBackupRequest struct {
	Path string `json:"path"`
}

// RestoreBackupResponse resultado de la restauración.
type RestoreBackupResponse struct {
	Restored  bool `json:"restored"`
	Customers int  `json:"customers"`
	Invoices  int  `json:"invoices"`
}

// SnapshotResponse archivo de snapshot disponible.
type SnapshotResponse struct {
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"created_at"`
}
