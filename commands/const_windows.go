package commands

const (
	_etc = `C:\ProgramData\gradebook`

	DEFAULT_CREDENTIALS = _etc + `\sheets\.google\credentials.json`
)
