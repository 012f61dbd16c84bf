package utils

func Map[A any, B any](input []A, mapper func(A) B) []B {
	output := make([]B, len(input))
	for i, item := range input {
		output[i] = mapper(item)
	}
	return output
}

func Filter[A any](input []A, filter func(A) bool) []A {
	output := make([]A, 0)
	for _, item := range input {
		if filter(item) {
			output = append(output, item)
		}
	}
	return output
}

func Contains[A comparable](input []A, item A) bool {
	for _, i := range input {
		if i == item {
			return true
		}
	}
	return false
}

func Keys[A comparable, B any](input map[A]B) []A {
	keys := make([]A, 0, len(input))
	for key := range input {
		keys = append(keys, key)
	}
	return keys
}

func Uniques[A comparable](input []A) []A {
	seen := make(map[A]bool)
	output := make([]A, 0, len(input))
	for _, item := range input {
		if !seen[item] {
			seen[item] = true
			output = append(output, item)
		}
	}
	return output
}

func SumBy[A any](input []A, value func(A) float64) float64 {
	total := 0.0
	for _, item := range input {
		total += value(item)
	}
	return total
}
