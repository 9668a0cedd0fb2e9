package formats

// ParseText parses a bare grid file. The ID and name come from the file name
// and the order is left at zero so text levels sort ahead of numbered ones.
func ParseText(data []byte, name string) (Level, error) {
	level := Level{Rows: string(data)}
	fillDefaults(&level, name)
	return level, nil
}
