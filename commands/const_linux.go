package commands

const (
	_etc = "/usr/local/etc/gradebook"

	DEFAULT_CREDENTIALS = _etc + "/sheets/.google/credentials.json"
)
