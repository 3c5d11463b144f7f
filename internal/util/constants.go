package util

const (
	DateFormat     = "2006-01-02"
	TimeFormat     = "2006-01-02 15:04:05"
	FileDateFormat = "20060102_150405"
)
