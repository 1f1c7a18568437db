package grocery

// Classify returns the shopping category for a provider category path. The
// path is walked in the order given and the first tag found in the priority
// table wins. Tags are matched exactly, so "Meat" is not "meat". Paths with
// no known tag fall into CategoryOther.
func Classify(path []string) string {
	for _, tag := range path {
		if c, ok := priority[tag]; ok {
			return c
		}
	}
	return CategoryOther
}
