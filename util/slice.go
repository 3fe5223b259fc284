package util

// HasAny returns true if any element of subList is present in mainList. Both lists must be sorted. It uses two
// pointer intersection algorithm.
func HasAny(mainList, subList []string) bool {
	i, j := 0, 0
	for i < len(mainList) && j < len(subList) {
		switch {
		case mainList[i] == subList[j]:
			return true
		case mainList[i] < subList[j]:
			i++
		default:
			j++
		}
	}
	return false
}
