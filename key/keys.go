// Package key defines the canonical set of configuration identifiers used for centralized settings management.
package key

// Catalog - these keys locate and decode the ordered list of presentations.
const (
	CatalogPath          = "catalog.path"
	CatalogDecodeEscapes = "catalog.decode_escapes"
)

// Downloader - these keys govern rendition selection and segment fetching.
const (
	DownloaderPartsDir          = "downloader.parts_dir"
	DownloaderOutputDir         = "downloader.output_dir"
	DownloaderSegmentTimeout    = "downloader.segment_timeout"
	DownloaderMaxTimeoutRetries = "downloader.max_timeout_retries"
	DownloaderSelection         = "downloader.selection"
	DownloaderResolutions       = "downloader.resolutions"
	DownloaderNaming            = "downloader.naming"
)

// Muxing - these keys configure the external stream-copy step.
const (
	MuxEnabled   = "mux.enabled"
	MuxFFmpeg    = "mux.ffmpeg"
	MuxOverwrite = "mux.overwrite"
)

// Network - these keys shape every outgoing HTTP request.
const (
	NetworkUserAgent      = "network.user_agent"
	NetworkReferer        = "network.referer"
	NetworkTLSFingerprint = "network.tls_fingerprint"
)

// History Tracking - these keys configure the persistence of per-entry outcomes.
const (
	HistorySave = "history.save"
)

// Iconography - these keys manage the visual rendering of UI symbols.
const (
	IconsVariant = "icons.variant"
)

// Logging Infrastructure - these keys manage the application's internal diagnostics and auditing system.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI Execution Environment - these flags and settings govern terminal behavior.
const (
	CliColored      = "cli.colored"
	CliVersionCheck = "cli.version_check"
	CliProgress     = "cli.progress"
)
