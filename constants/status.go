package constants

// ScanStatus is the outcome of one queued card scan.
type ScanStatus string

const (
	ScanStatusQueued ScanStatus = "QUEUED"
	ScanStatusOCROK  ScanStatus = "OCR_OK" // text recognized, fields not yet stored
	ScanStatusSaved  ScanStatus = "SAVED"
	ScanStatusFailed ScanStatus = "FAILED"
)
