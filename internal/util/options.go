package util

// OptionAlphabet 固定的选项字母表，选项数量上限即其长度
var OptionAlphabet = []string{"A", "B", "C", "D", "E", "F", "G", "H"}

// OptionLetters 返回前 n 个选项字母
func OptionLetters(n int) ([]string, error) {
	if n < 1 || n > len(OptionAlphabet) {
		return nil, ErrInvalidOptionCount
	}
	letters := make([]string, n)
	copy(letters, OptionAlphabet[:n])
	return letters, nil
}

// ValidateAnswer 校验答案是否落在前 n 个选项字母内
func ValidateAnswer(answer string, numOptions int) bool {
	letters, err := OptionLetters(numOptions)
	if err != nil {
		return false
	}
	for _, l := range letters {
		if answer == l {
			return true
		}
	}
	return false
}
