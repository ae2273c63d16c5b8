package constant

// Elementary stream and container extensions.
const (
	VideoExt  = ".m4v"
	AudioExt  = ".m4a"
	OutputExt = ".mp4"

	// MarkerSuffix is appended to the hidden in-progress marker of a download target.
	MarkerSuffix = "~"

	// LockFile is created in the parts directory while a queue run owns it.
	LockFile = ".vidqueue.lock"
)
